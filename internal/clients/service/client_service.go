package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/itjpay/billing-dashboard/internal/clients/domain"
	"github.com/itjpay/billing-dashboard/internal/clients/repository"
	"github.com/itjpay/billing-dashboard/internal/logging"
	plandomain "github.com/itjpay/billing-dashboard/internal/plans/domain"
	projdomain "github.com/itjpay/billing-dashboard/internal/projects/domain"
	"github.com/itjpay/billing-dashboard/internal/search"
)

// PlanLookup resolves the plans a client can be attached to.
type PlanLookup interface {
	ListByProject(ctx context.Context, projectID string) ([]plandomain.Plan, error)
	AddSubscribers(ctx context.Context, id string, delta int) error
}

// Projects validates project ids and keeps project counters current.
type Projects interface {
	Get(ctx context.Context, id string) (*projdomain.Project, error)
	AdjustCounts(ctx context.Context, id string, clients, subscriptions int) error
}

// EventSink forwards client events to outbound webhooks.
type EventSink interface {
	Dispatch(ctx context.Context, event string, data any) int
}

const (
	EventClientCreated       = "client.created"
	EventSubscriptionCreated = "subscription.created"
)

// Subscription is the payload of a subscription.created event.
type Subscription struct {
	ClientID  string `json:"client_id"`
	Client    string `json:"client"`
	Email     string `json:"email"`
	ProjectID string `json:"project_id"`
	PlanID    string `json:"plan_id"`
	Plan      string `json:"plan"`
}

type ClientService struct {
	repo     repository.Repository
	plans    PlanLookup
	projects Projects
	events   EventSink
	now      func() time.Time
	batchID  func() string
}

func NewClientService(repo repository.Repository, plans PlanLookup, projects Projects) *ClientService {
	return &ClientService{
		repo:     repo,
		plans:    plans,
		projects: projects,
		now:      time.Now,
		batchID:  func() string { return uuid.NewString()[:8] },
	}
}

// WithEvents enables webhook delivery for added clients.
func (s *ClientService) WithEvents(sink EventSink) *ClientService {
	s.events = sink
	return s
}

func (s *ClientService) List(ctx context.Context) ([]domain.Client, error) {
	return s.repo.List(ctx)
}

func (s *ClientService) ListByProject(ctx context.Context, projectID string) ([]domain.Client, error) {
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return nil, err
	}
	return s.repo.ListByProject(ctx, projectID)
}

// Filter matches term against client name, email or plan name.
func (s *ClientService) Filter(ctx context.Context, projectID, term string) ([]domain.Client, error) {
	items, err := s.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return search.Filter(items, term, func(c domain.Client) []string {
		return []string{c.Name, c.Email, c.Plan}
	}), nil
}

// Add appends one active client. Existing clients are never touched.
func (s *ClientService) Add(ctx context.Context, projectID string, form domain.ClientForm) (*domain.Client, error) {
	name := strings.TrimSpace(form.Name)
	email := strings.TrimSpace(form.Email)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if email == "" {
		return nil, domain.ErrEmailRequired
	}

	plans, err := s.projectPlans(ctx, projectID)
	if err != nil {
		return nil, err
	}

	planID := strings.TrimSpace(form.PlanID)
	planName := domain.UnknownPlanName
	matched := findPlan(plans, planID)
	if matched != nil {
		planName = matched.Name
	}

	now := s.now().UTC()
	c := domain.Client{
		ID:          uuid.NewString(),
		ProjectID:   projectID,
		Name:        name,
		Email:       email,
		Status:      domain.StatusActive,
		Plan:        planName,
		PlanID:      planID,
		Spent:       0,
		LastPayment: &now,
	}
	if err := s.repo.Append(ctx, c); err != nil {
		return nil, err
	}
	s.bumpCounters(ctx, projectID, []domain.Client{c}, plans)
	s.dispatch(ctx, []domain.Client{c})
	return &c, nil
}

// dispatch runs in the background and raises both events for every client.
func (s *ClientService) dispatch(ctx context.Context, added []domain.Client) {
	if s.events == nil || len(added) == 0 {
		return
	}
	clients := append([]domain.Client(nil), added...)
	go func(ctx context.Context) {
		for _, c := range clients {
			s.events.Dispatch(ctx, EventClientCreated, c)
			s.events.Dispatch(ctx, EventSubscriptionCreated, Subscription{
				ClientID:  c.ID,
				Client:    c.Name,
				Email:     c.Email,
				ProjectID: c.ProjectID,
				PlanID:    c.PlanID,
				Plan:      c.Plan,
			})
		}
	}(context.WithoutCancel(ctx))
}

func (s *ClientService) projectPlans(ctx context.Context, projectID string) ([]plandomain.Plan, error) {
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return nil, err
	}
	return s.plans.ListByProject(ctx, projectID)
}

// bumpCounters is best effort: the clients are already stored.
func (s *ClientService) bumpCounters(ctx context.Context, projectID string, added []domain.Client, plans []plandomain.Plan) {
	log := logging.New(ctx)
	if err := s.projects.AdjustCounts(ctx, projectID, len(added), len(added)); err != nil {
		log.Warnf("clients.counters", "adjust project %s counts: %v", projectID, err)
	}

	perPlan := make(map[string]int)
	for _, c := range added {
		if findPlan(plans, c.PlanID) != nil {
			perPlan[c.PlanID]++
		}
	}
	for id, n := range perPlan {
		if err := s.plans.AddSubscribers(ctx, id, n); err != nil {
			log.Warnf("clients.counters", "add %d subscribers to plan %s: %v", n, id, err)
		}
	}
}

func findPlan(plans []plandomain.Plan, id string) *plandomain.Plan {
	for i := range plans {
		if plans[i].ID == id {
			return &plans[i]
		}
	}
	return nil
}
