package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/itjpay/billing-dashboard/internal/plans/domain"
	"github.com/itjpay/billing-dashboard/internal/plans/repository"
	projdomain "github.com/itjpay/billing-dashboard/internal/projects/domain"
	"github.com/itjpay/billing-dashboard/internal/search"
)

// ProjectLookup is the slice of the projects service plans need.
type ProjectLookup interface {
	Get(ctx context.Context, id string) (*projdomain.Project, error)
}

type PlanService struct {
	repo     repository.Repository
	projects ProjectLookup
}

func NewPlanService(repo repository.Repository, projects ProjectLookup) *PlanService {
	return &PlanService{repo: repo, projects: projects}
}

// ListByProject returns the plans of an existing project.
func (s *PlanService) ListByProject(ctx context.Context, projectID string) ([]domain.Plan, error) {
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return nil, err
	}
	return s.repo.ListByProject(ctx, projectID)
}

func (s *PlanService) Get(ctx context.Context, id string) (*domain.Plan, error) {
	return s.repo.Get(ctx, strings.TrimSpace(id))
}

// Filter matches term against plan name or description.
func (s *PlanService) Filter(ctx context.Context, projectID, term string) ([]domain.Plan, error) {
	items, err := s.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return search.Filter(items, term, func(p domain.Plan) []string {
		return []string{p.Name, p.Description}
	}), nil
}

// Create validates the form and stores an active plan with no subscribers.
func (s *PlanService) Create(ctx context.Context, projectID string, in domain.CreatePlanRequest) (*domain.Plan, error) {
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if in.Price < 0 {
		return nil, domain.ErrInvalidPrice
	}
	freq := strings.ToLower(strings.TrimSpace(in.Frequency))
	if freq == "" {
		freq = domain.FrequencyMonthly
	}
	if !domain.ValidFrequency(freq) {
		return nil, domain.ErrInvalidFrequency
	}

	p := &domain.Plan{
		ID:          uuid.NewString(),
		ProjectID:   projectID,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Frequency:   freq,
		Status:      domain.StatusActive,
		Features:    ParseFeatures(in.Features),
		Subscribers: 0,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// AddSubscribers bumps the subscriber counter of a plan.
func (s *PlanService) AddSubscribers(ctx context.Context, id string, delta int) error {
	return s.repo.AddSubscribers(ctx, id, delta)
}

// ParseFeatures splits a comma list, trimming entries and dropping empty ones.
func ParseFeatures(raw string) []string {
	out := make([]string, 0, 4)
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
