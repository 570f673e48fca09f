package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/itjpay/billing-dashboard/internal/projects/domain"
)

// Repository is the persistence contract for projects.
type Repository interface {
	List(ctx context.Context) ([]domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	Create(ctx context.Context, p *domain.Project) error
	UpdateStatus(ctx context.Context, id, status string) (*domain.Project, error)
	// AdjustCounts adds the deltas to the stored client and subscription counts.
	AdjustCounts(ctx context.Context, id string, clients, subscriptions int) error
}

// MemoryRepository keeps projects in process memory, newest first.
type MemoryRepository struct {
	mu    sync.RWMutex
	items []domain.Project
}

func NewMemoryRepository(seed []domain.Project) *MemoryRepository {
	items := append([]domain.Project(nil), seed...)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Date.After(items[j].Date) })
	return &MemoryRepository{items: items}
}

func (r *MemoryRepository) List(ctx context.Context) ([]domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Project(nil), r.items...), nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.items {
		if r.items[i].ID == id {
			p := r.items[i]
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *MemoryRepository) Create(ctx context.Context, p *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append([]domain.Project{*p}, r.items...)
	return nil
}

func (r *MemoryRepository) UpdateStatus(ctx context.Context, id, status string) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].Status = status
			p := r.items[i]
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *MemoryRepository) AdjustCounts(ctx context.Context, id string, clients, subscriptions int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].ClientCount += clients
			r.items[i].SubscriptionCount += subscriptions
			return nil
		}
	}
	return domain.ErrNotFound
}
