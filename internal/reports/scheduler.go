package reports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/itjpay/billing-dashboard/internal/logging"
)

// WeeklySchedule fires every Monday at 06:00 (seconds field first).
const WeeklySchedule = "0 0 6 * * MON"

type Scheduler struct {
	svc  *Service
	cron *cron.Cron
	now  func() time.Time
}

// NewScheduler registers the weekly report under expr.
func NewScheduler(svc *Service, expr string) (*Scheduler, error) {
	s := &Scheduler{svc: svc, cron: cron.New(cron.WithSeconds()), now: time.Now}
	if _, err := s.cron.AddFunc(expr, s.runWeekly); err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", expr, err)
	}
	return s, nil
}

// Run starts the cron loop and blocks until ctx ends; a running job is
// allowed to finish.
func (s *Scheduler) Run(ctx context.Context) {
	log := logging.New(ctx)
	s.cron.Start()
	log.Infof("reports.scheduler", "scheduler started, next weekly report at %s", s.Next().Format(time.RFC1123))

	<-ctx.Done()
	<-s.cron.Stop().Done()
	log.Info("reports.scheduler", "scheduler stopped")
}

func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Schedule.Next(s.now())
}

func (s *Scheduler) runWeekly() {
	ctx := context.Background()
	log := logging.New(ctx)

	res, err := s.svc.WeeklyReport(ctx, s.now())
	switch {
	case errors.Is(err, ErrDisabled):
		log.Info("reports.weekly", "weekly reports disabled, skipping")
	case err != nil:
		log.Error("reports.weekly", err)
	default:
		log.Infof("reports.weekly", "wrote %s (%d payments, $%.2f revenue)", res.Location, res.Payments, res.Revenue)
	}
}
