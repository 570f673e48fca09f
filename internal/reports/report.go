// Package reports builds the scheduled payment reports run by the worker.
package reports

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/itjpay/billing-dashboard/internal/export"
	"github.com/itjpay/billing-dashboard/internal/logging"
	notifdomain "github.com/itjpay/billing-dashboard/internal/notifications/domain"
	paydomain "github.com/itjpay/billing-dashboard/internal/payments/domain"
	payservice "github.com/itjpay/billing-dashboard/internal/payments/service"
	"github.com/itjpay/billing-dashboard/internal/settings"
)

const ReportWindow = 7 * 24 * time.Hour

var ErrDisabled = errors.New("weekly reports are turned off")

type PaymentSource interface {
	Since(ctx context.Context, t time.Time) ([]paydomain.Payment, error)
}

type PreferenceSource interface {
	Preferences(ctx context.Context) settings.Preferences
}

type Notifier interface {
	Push(ctx context.Context, n notifdomain.Notification) (*notifdomain.Notification, error)
}

type Service struct {
	payments PaymentSource
	prefs    PreferenceSource
	uploader Uploader
	notifier Notifier
}

// NewService wires the weekly report. notifier may be nil.
func NewService(payments PaymentSource, prefs PreferenceSource, uploader Uploader, notifier Notifier) *Service {
	return &Service{payments: payments, prefs: prefs, uploader: uploader, notifier: notifier}
}

type Result struct {
	Location string
	From, To time.Time
	Payments int
	Revenue  float64
	Failed   int
}

// WeeklyReport exports the payments of the seven days before now.
func (s *Service) WeeklyReport(ctx context.Context, now time.Time) (*Result, error) {
	if !s.prefs.Preferences(ctx).WeeklyReports {
		return nil, ErrDisabled
	}

	from := now.Add(-ReportWindow)
	items, err := s.payments.Since(ctx, from)
	if err != nil {
		return nil, err
	}

	res := &Result{From: from, To: now, Payments: len(items)}
	for _, p := range items {
		switch p.Status {
		case paydomain.StatusSuccessful:
			res.Revenue += p.Amount
		case paydomain.StatusFailed:
			res.Failed++
		}
	}

	var buf bytes.Buffer
	err = export.WriteXLSX(&buf,
		export.Sheet{
			Name:    "Summary",
			Headers: []string{"Metric", "Value"},
			Rows: [][]any{
				{"From", from.Format("2006-01-02")},
				{"To", now.Format("2006-01-02")},
				{"Payments", res.Payments},
				{"Revenue", res.Revenue},
				{"Failed payments", res.Failed},
			},
		},
		payservice.PaymentSheet("Payments", items),
	)
	if err != nil {
		return nil, fmt.Errorf("render weekly report: %w", err)
	}

	key := fmt.Sprintf("weekly/payments-%s.xlsx", now.Format("2006-01-02"))
	loc, err := s.uploader.Upload(ctx, key, buf.Bytes(), export.ContentTypeXLSX)
	if err != nil {
		return nil, err
	}
	res.Location = loc
	logging.New(ctx).Infof("reports.weekly", "wrote %d payments to %s", res.Payments, loc)

	if s.notifier != nil {
		_, err := s.notifier.Push(ctx, notifdomain.Notification{
			Title:   "Weekly report ready",
			Message: fmt.Sprintf("%d payments, $%.2f revenue in the last 7 days.", res.Payments, res.Revenue),
			Type:    notifdomain.TypeInfo,
		})
		if err != nil {
			logging.New(ctx).Warnf("reports.weekly", "notify: %v", err)
		}
	}
	return res, nil
}
