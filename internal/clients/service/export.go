package service

import (
	"context"
	"io"

	"github.com/itjpay/billing-dashboard/internal/clients/domain"
	"github.com/itjpay/billing-dashboard/internal/export"
)

// ExportXLSX writes the project's clients matching term as a workbook.
func (s *ClientService) ExportXLSX(ctx context.Context, w io.Writer, projectID, term string) error {
	items, err := s.Filter(ctx, projectID, term)
	if err != nil {
		return err
	}
	return export.WriteXLSX(w, ClientSheet(items))
}

func ClientSheet(items []domain.Client) export.Sheet {
	sh := export.Sheet{
		Name:    "Clients",
		Headers: []string{"ID", "Name", "Email", "Status", "Plan", "Plan ID", "Spent", "Last Payment"},
		Rows:    make([][]any, 0, len(items)),
	}
	for _, c := range items {
		last := ""
		if c.LastPayment != nil {
			last = c.LastPayment.Format("2006-01-02")
		}
		sh.Rows = append(sh.Rows, []any{c.ID, c.Name, c.Email, c.Status, c.Plan, c.PlanID, c.Spent, last})
	}
	return sh
}
