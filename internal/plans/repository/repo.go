package repository

import (
	"context"
	"sync"

	"github.com/itjpay/billing-dashboard/internal/plans/domain"
)

// Repository is the persistence contract for subscription plans.
type Repository interface {
	ListByProject(ctx context.Context, projectID string) ([]domain.Plan, error)
	Get(ctx context.Context, id string) (*domain.Plan, error)
	Create(ctx context.Context, p *domain.Plan) error
	AddSubscribers(ctx context.Context, id string, delta int) error
}

// MemoryRepository keeps plans in insertion order.
type MemoryRepository struct {
	mu    sync.RWMutex
	items []domain.Plan
}

func NewMemoryRepository(seed []domain.Plan) *MemoryRepository {
	items := make([]domain.Plan, 0, len(seed))
	for _, p := range seed {
		items = append(items, clonePlan(p))
	}
	return &MemoryRepository{items: items}
}

func clonePlan(p domain.Plan) domain.Plan {
	p.Features = append([]string(nil), p.Features...)
	return p
}

func (r *MemoryRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Plan, 0, 4)
	for _, p := range r.items {
		if p.ProjectID == projectID {
			out = append(out, clonePlan(p))
		}
	}
	return out, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*domain.Plan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.items {
		if p.ID == id {
			c := clonePlan(p)
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *MemoryRepository) Create(ctx context.Context, p *domain.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, clonePlan(*p))
	return nil
}

func (r *MemoryRepository) AddSubscribers(ctx context.Context, id string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].Subscribers += delta
			return nil
		}
	}
	return domain.ErrNotFound
}
