package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/itjpay/billing-dashboard/internal/export"
	"github.com/itjpay/billing-dashboard/internal/logging"
	"github.com/itjpay/billing-dashboard/internal/metrics"
	notifdomain "github.com/itjpay/billing-dashboard/internal/notifications/domain"
	"github.com/itjpay/billing-dashboard/internal/payments/domain"
	"github.com/itjpay/billing-dashboard/internal/payments/repository"
	"github.com/itjpay/billing-dashboard/internal/search"
)

// Notifier receives a notification for every recorded payment outcome.
type Notifier interface {
	Push(ctx context.Context, n notifdomain.Notification) (*notifdomain.Notification, error)
}

// EventSink forwards payment outcomes to outbound webhooks.
type EventSink interface {
	Dispatch(ctx context.Context, event string, data any) int
}

const (
	EventPaymentSuccess = "payment.success"
	EventPaymentFailed  = "payment.failed"
)

type PaymentService struct {
	repo     repository.Repository
	notifier Notifier
	events   EventSink
	now      func() time.Time
}

func NewPaymentService(repo repository.Repository, notifier Notifier) *PaymentService {
	return &PaymentService{repo: repo, notifier: notifier, now: time.Now}
}

// WithEvents enables webhook delivery for recorded payments.
func (s *PaymentService) WithEvents(sink EventSink) *PaymentService {
	s.events = sink
	return s
}

func (s *PaymentService) List(ctx context.Context) ([]domain.Payment, error) {
	return s.repo.List(ctx)
}

func (s *PaymentService) ListByProject(ctx context.Context, projectID string) ([]domain.Payment, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Payment, 0, len(items))
	for _, p := range items {
		if p.ProjectID == projectID {
			out = append(out, p)
		}
	}
	return out, nil
}

// Filter matches client, plan, invoice id or project name. projectID narrows
// the log first when set.
func (s *PaymentService) Filter(ctx context.Context, projectID, term string) ([]domain.Payment, error) {
	var (
		items []domain.Payment
		err   error
	)
	if projectID != "" {
		items, err = s.ListByProject(ctx, projectID)
	} else {
		items, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	return search.Filter(items, term, func(p domain.Payment) []string {
		return []string{p.Client, p.Plan, p.ID, p.ProjectName}
	}), nil
}

// Since returns payments dated at or after t.
func (s *PaymentService) Since(ctx context.Context, t time.Time) ([]domain.Payment, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Payment, 0, len(items))
	for _, p := range items {
		if !p.Date.Before(t) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Record appends a payment to the log and raises a notification for
// successful and failed outcomes.
func (s *PaymentService) Record(ctx context.Context, p domain.Payment) (*domain.Payment, error) {
	p.Client = strings.TrimSpace(p.Client)
	if p.Client == "" {
		return nil, domain.ErrClientEmpty
	}
	if p.Amount < 0 {
		return nil, domain.ErrInvalidAmount
	}
	if !domain.ValidStatus(p.Status) {
		return nil, domain.ErrInvalidStatus
	}
	if p.Date.IsZero() {
		p.Date = s.now().UTC()
	}

	if p.ID != "" {
		if err := s.repo.Add(ctx, &p); err != nil {
			return nil, err
		}
	} else if err := s.addWithGeneratedID(ctx, &p); err != nil {
		return nil, err
	}
	metrics.PaymentsRecorded.WithLabelValues(p.Status).Inc()
	s.notify(ctx, p)
	s.dispatch(ctx, p)
	return &p, nil
}

// addWithGeneratedID retries short invoice ids that collide with an existing one.
func (s *PaymentService) addWithGeneratedID(ctx context.Context, p *domain.Payment) error {
	for i := 0; i < 5; i++ {
		p.ID = "INV-" + strings.ToUpper(uuid.NewString()[:8])
		err := s.repo.Add(ctx, p)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return err
		}
	}
	return fmt.Errorf("failed to generate unique invoice id")
}

func (s *PaymentService) notify(ctx context.Context, p domain.Payment) {
	if s.notifier == nil {
		return
	}

	n := notifdomain.Notification{Date: p.Date}
	switch p.Status {
	case domain.StatusSuccessful:
		n.Title = "Payment received"
		n.Type = notifdomain.TypeSuccess
		n.Message = fmt.Sprintf("Payment of $%.2f received from %s.", p.Amount, p.Client)
	case domain.StatusFailed:
		n.Title = "Payment failed"
		n.Type = notifdomain.TypeError
		n.Message = fmt.Sprintf("Payment for client %s failed.", p.Client)
	default:
		return
	}
	if p.ProjectID != "" {
		id, name := p.ProjectID, p.ProjectName
		n.ProjectID, n.ProjectName = &id, &name
	}

	if _, err := s.notifier.Push(ctx, n); err != nil {
		logging.New(ctx).Warnf("payments.notify", "notify %s: %v", p.ID, err)
	}
}

// dispatch runs in the background; delivery must not hold up the caller.
func (s *PaymentService) dispatch(ctx context.Context, p domain.Payment) {
	if s.events == nil {
		return
	}
	var event string
	switch p.Status {
	case domain.StatusSuccessful:
		event = EventPaymentSuccess
	case domain.StatusFailed:
		event = EventPaymentFailed
	default:
		return
	}
	go s.events.Dispatch(context.WithoutCancel(ctx), event, p)
}

// ExportXLSX writes the filtered log as a workbook.
func (s *PaymentService) ExportXLSX(ctx context.Context, w io.Writer, projectID, term string) error {
	items, err := s.Filter(ctx, projectID, term)
	if err != nil {
		return err
	}
	return export.WriteXLSX(w, PaymentSheet("Payments", items))
}

func PaymentSheet(name string, items []domain.Payment) export.Sheet {
	sh := export.Sheet{
		Name:    name,
		Headers: []string{"Invoice", "Client", "Plan", "Amount", "Status", "Method", "Date", "Project"},
		Rows:    make([][]any, 0, len(items)),
	}
	for _, p := range items {
		sh.Rows = append(sh.Rows, []any{p.ID, p.Client, p.Plan, p.Amount, p.Status, p.Method, p.Date.Format("2006-01-02"), p.ProjectName})
	}
	return sh
}
