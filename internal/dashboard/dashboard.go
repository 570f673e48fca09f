// Package dashboard aggregates the headline figures shown on the overview pages.
package dashboard

import (
	"context"
	"sort"
	"time"

	clientdomain "github.com/itjpay/billing-dashboard/internal/clients/domain"
	notifdomain "github.com/itjpay/billing-dashboard/internal/notifications/domain"
	paydomain "github.com/itjpay/billing-dashboard/internal/payments/domain"
	plandomain "github.com/itjpay/billing-dashboard/internal/plans/domain"
	projdomain "github.com/itjpay/billing-dashboard/internal/projects/domain"
)

const recentActivityLimit = 5

type ProjectSource interface {
	List(ctx context.Context) ([]projdomain.Project, error)
	Get(ctx context.Context, id string) (*projdomain.Project, error)
}

type PlanSource interface {
	ListByProject(ctx context.Context, projectID string) ([]plandomain.Plan, error)
}

type ClientSource interface {
	List(ctx context.Context) ([]clientdomain.Client, error)
	ListByProject(ctx context.Context, projectID string) ([]clientdomain.Client, error)
}

type PaymentSource interface {
	List(ctx context.Context) ([]paydomain.Payment, error)
	ListByProject(ctx context.Context, projectID string) ([]paydomain.Payment, error)
}

type NotificationSource interface {
	List(ctx context.Context) ([]notifdomain.Notification, error)
}

type MonthRevenue struct {
	Month   string  `json:"name"`
	Revenue float64 `json:"revenue"`
}

type PlanSubscribers struct {
	PlanID      string `json:"plan_id"`
	Plan        string `json:"name"`
	Subscribers int    `json:"value"`
}

type Overview struct {
	ProjectID      string                     `json:"project_id,omitempty"`
	TotalRevenue   float64                    `json:"total_revenue"`
	ActiveClients  int                        `json:"active_clients"`
	ActivePlans    int                        `json:"active_plans"`
	FailedPayments int                        `json:"failed_payments"`
	Year           int                        `json:"year"`
	RevenueByMonth []MonthRevenue             `json:"revenue_by_month"`
	Subscribers    []PlanSubscribers          `json:"subscribers"`
	RecentActivity []notifdomain.Notification `json:"recent_activity"`
}

type Service struct {
	projects      ProjectSource
	plans         PlanSource
	clients       ClientSource
	payments      PaymentSource
	notifications NotificationSource
}

func NewService(projects ProjectSource, plans PlanSource, clients ClientSource, payments PaymentSource, notifications NotificationSource) *Service {
	return &Service{projects: projects, plans: plans, clients: clients, payments: payments, notifications: notifications}
}

// Overview summarizes one project, or every project when projectID is empty.
func (s *Service) Overview(ctx context.Context, projectID string) (*Overview, error) {
	var (
		projects []projdomain.Project
		clients  []clientdomain.Client
		payments []paydomain.Payment
		err      error
	)
	if projectID != "" {
		p, err := s.projects.Get(ctx, projectID)
		if err != nil {
			return nil, err
		}
		projects = []projdomain.Project{*p}
		if clients, err = s.clients.ListByProject(ctx, projectID); err != nil {
			return nil, err
		}
		if payments, err = s.payments.ListByProject(ctx, projectID); err != nil {
			return nil, err
		}
	} else {
		if projects, err = s.projects.List(ctx); err != nil {
			return nil, err
		}
		if clients, err = s.clients.List(ctx); err != nil {
			return nil, err
		}
		if payments, err = s.payments.List(ctx); err != nil {
			return nil, err
		}
	}

	out := &Overview{ProjectID: projectID}

	for _, c := range clients {
		if c.Status == clientdomain.StatusActive {
			out.ActiveClients++
		}
	}

	for _, proj := range projects {
		plans, err := s.plans.ListByProject(ctx, proj.ID)
		if err != nil {
			return nil, err
		}
		for _, p := range plans {
			if p.Status == plandomain.StatusActive {
				out.ActivePlans++
			}
			out.Subscribers = append(out.Subscribers, PlanSubscribers{PlanID: p.ID, Plan: p.Name, Subscribers: p.Subscribers})
		}
	}
	sort.SliceStable(out.Subscribers, func(i, j int) bool {
		return out.Subscribers[i].Subscribers > out.Subscribers[j].Subscribers
	})

	out.Year, out.RevenueByMonth = revenueByMonth(payments)
	for _, p := range payments {
		switch p.Status {
		case paydomain.StatusSuccessful:
			out.TotalRevenue += p.Amount
		case paydomain.StatusFailed:
			out.FailedPayments++
		}
	}

	notes, err := s.notifications.List(ctx)
	if err != nil {
		return nil, err
	}
	out.RecentActivity = recent(notes, projectID, recentActivityLimit)

	return out, nil
}

// revenueByMonth buckets successful payments of the latest year that has any payment.
func revenueByMonth(payments []paydomain.Payment) (int, []MonthRevenue) {
	year := 0
	for _, p := range payments {
		if y := p.Date.Year(); y > year {
			year = y
		}
	}
	if year == 0 {
		year = time.Now().Year()
	}

	months := make([]MonthRevenue, 12)
	for i := range months {
		months[i].Month = time.Month(i + 1).String()[:3]
	}
	for _, p := range payments {
		if p.Status != paydomain.StatusSuccessful || p.Date.Year() != year {
			continue
		}
		months[p.Date.Month()-1].Revenue += p.Amount
	}
	return year, months
}

// recent expects notes newest first, as the notification repository returns them.
func recent(notes []notifdomain.Notification, projectID string, limit int) []notifdomain.Notification {
	out := make([]notifdomain.Notification, 0, limit)
	for _, n := range notes {
		if projectID != "" && (n.ProjectID == nil || *n.ProjectID != projectID) {
			continue
		}
		out = append(out, n)
		if len(out) == limit {
			break
		}
	}
	return out
}
