package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/itjpay/billing-dashboard/internal/clients/domain"
	"github.com/itjpay/billing-dashboard/internal/export"
	"github.com/itjpay/billing-dashboard/internal/logging"
	"github.com/itjpay/billing-dashboard/internal/metrics"
	plandomain "github.com/itjpay/billing-dashboard/internal/plans/domain"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	maxImportIDAttempts = 3
)

// ImportRow is one accepted line of an import file.
type ImportRow struct {
	Line   int
	Name   string
	Email  string
	PlanID string
}

// DetectFormat maps a file name to an import format.
func DetectFormat(filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	}
	return "", domain.ErrUnsupportedFile
}

// Import parses the file and appends every valid row to the project in file order.
// Nothing is stored when no row is valid.
func (s *ClientService) Import(ctx context.Context, projectID, filename string, r io.Reader) ([]domain.Client, error) {
	log := logging.New(ctx)

	format, err := DetectFormat(filename)
	if err != nil {
		metrics.ImportFailures.WithLabelValues("unsupported_file").Inc()
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(r, domain.MaxImportSize+1))
	if err != nil {
		return nil, fmt.Errorf("read import: %w", err)
	}
	if len(data) > domain.MaxImportSize {
		metrics.ImportFailures.WithLabelValues("too_large").Inc()
		return nil, domain.ErrFileTooLarge
	}

	plans, err := s.projectPlans(ctx, projectID)
	if err != nil {
		return nil, err
	}

	var rows []ImportRow
	switch format {
	case FormatCSV:
		rows = ParseCSV(string(data))
	case FormatXLSX:
		sheet, err := export.ReadFirstSheet(bytes.NewReader(data))
		if err != nil {
			metrics.ImportFailures.WithLabelValues("unreadable").Inc()
			return nil, fmt.Errorf("%w: %v", domain.ErrUnsupportedFile, err)
		}
		rows = ParseSheet(sheet)
	}

	if len(rows) == 0 {
		metrics.ImportFailures.WithLabelValues("no_valid_rows").Inc()
		return nil, domain.ErrNoValidClients
	}

	clients, err := s.appendImported(ctx, projectID, rows, plans)
	if err != nil {
		return nil, err
	}
	s.bumpCounters(ctx, projectID, clients, plans)
	s.dispatch(ctx, clients)

	metrics.ImportedClients.WithLabelValues(format).Add(float64(len(clients)))
	log.Infof("clients.import", "imported %d clients into project %s from %s", len(clients), projectID, filename)
	return clients, nil
}

// ParseCSV splits on newlines and commas without quoting rules. The first
// line is a header; blank lines and rows with fewer than three fields or an
// empty name or email are skipped.
func ParseCSV(content string) []ImportRow {
	lines := strings.Split(content, "\n")
	out := make([]ImportRow, 0, len(lines))
	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if row, ok := toRow(i, strings.Split(line, ",")); ok {
			out = append(out, row)
		}
	}
	return out
}

// ParseSheet applies the CSV column rules to spreadsheet rows.
func ParseSheet(sheet [][]string) []ImportRow {
	out := make([]ImportRow, 0, len(sheet))
	for i := 1; i < len(sheet); i++ {
		if row, ok := toRow(i, sheet[i]); ok {
			out = append(out, row)
		}
	}
	return out
}

func toRow(line int, values []string) (ImportRow, bool) {
	if len(values) < 3 {
		return ImportRow{}, false
	}
	row := ImportRow{
		Line:   line,
		Name:   strings.TrimSpace(values[0]),
		Email:  strings.TrimSpace(values[1]),
		PlanID: strings.TrimSpace(values[2]),
	}
	if row.Name == "" || row.Email == "" {
		return ImportRow{}, false
	}
	return row, true
}

// appendImported stores the batch, drawing a new batch id when an id is taken.
func (s *ClientService) appendImported(ctx context.Context, projectID string, rows []ImportRow, plans []plandomain.Plan) ([]domain.Client, error) {
	for i := 0; i < maxImportIDAttempts; i++ {
		clients := s.buildImported(projectID, s.batchID(), rows, plans)
		err := s.repo.Append(ctx, clients...)
		if err == nil {
			return clients, nil
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, err
		}
		logging.New(ctx).Warnf("clients.import", "import id collision, retrying: %v", err)
	}
	return nil, fmt.Errorf("failed to generate unique import ids: %w", domain.ErrDuplicate)
}

// buildImported ids read import-<unix millis>-<batch>-<line>.
func (s *ClientService) buildImported(projectID, batch string, rows []ImportRow, plans []plandomain.Plan) []domain.Client {
	now := s.now().UTC()
	stamp := now.UnixMilli()

	fallbackID := domain.DefaultPlanID
	if len(plans) > 0 {
		fallbackID = plans[0].ID
	}

	out := make([]domain.Client, 0, len(rows))
	for _, row := range rows {
		planName, planID := domain.DefaultPlanName, fallbackID
		if p := findPlan(plans, row.PlanID); p != nil {
			planName, planID = p.Name, p.ID
		}
		paid := now
		out = append(out, domain.Client{
			ID:          fmt.Sprintf("%s%d-%s-%d", domain.ImportIDPrefix, stamp, batch, row.Line),
			ProjectID:   projectID,
			Name:        row.Name,
			Email:       row.Email,
			Status:      domain.StatusActive,
			Plan:        planName,
			PlanID:      planID,
			Spent:       0,
			LastPayment: &paid,
		})
	}
	return out
}

// Template returns the downloadable import template.
func Template() []byte {
	return []byte("Name,Email,Plan ID\nJohn Doe,john@example.com,plan-1\nJane Smith,jane@example.com,plan-2\n")
}
