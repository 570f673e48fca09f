package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/itjpay/billing-dashboard/internal/projects/domain"
	"github.com/itjpay/billing-dashboard/internal/projects/repository"
	"github.com/itjpay/billing-dashboard/internal/search"
)

// ProjectService handles project-related business logic
type ProjectService struct {
	repo repository.Repository
	now  func() time.Time
}

// NewProjectService creates a new project service
func NewProjectService(repo repository.Repository) *ProjectService {
	return &ProjectService{
		repo: repo,
		now:  time.Now,
	}
}

// List returns all projects
func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	return s.repo.List(ctx)
}

// Get returns one project or domain.ErrNotFound.
func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

// Filter returns projects whose name or description contains term, ignoring case.
func (s *ProjectService) Filter(ctx context.Context, term string) ([]domain.Project, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return search.Filter(items, term, func(p domain.Project) []string {
		return []string{p.Name, p.Description}
	}), nil
}

// Create adds an active project dated now.
func (s *ProjectService) Create(ctx context.Context, name, description string) (*domain.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}

	p := &domain.Project{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(description),
		Status:      domain.StatusActive,
		Date:        s.now().UTC(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// SetStatus switches a project between active and inactive.
func (s *ProjectService) SetStatus(ctx context.Context, id, status string) (*domain.Project, error) {
	if !domain.ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

// AdjustCounts keeps the denormalized client/plan counts in step with writes elsewhere.
func (s *ProjectService) AdjustCounts(ctx context.Context, id string, clients, subscriptions int) error {
	return s.repo.AdjustCounts(ctx, id, clients, subscriptions)
}
