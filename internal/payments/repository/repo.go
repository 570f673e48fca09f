package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/itjpay/billing-dashboard/internal/payments/domain"
)

// Repository lists payments newest first.
type Repository interface {
	List(ctx context.Context) ([]domain.Payment, error)
	Get(ctx context.Context, id string) (*domain.Payment, error)
	Add(ctx context.Context, p *domain.Payment) error
}

type MemoryRepository struct {
	mu    sync.RWMutex
	items []domain.Payment
}

func NewMemoryRepository(seed []domain.Payment) *MemoryRepository {
	items := append([]domain.Payment(nil), seed...)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Date.After(items[j].Date) })
	return &MemoryRepository{items: items}
}

func (r *MemoryRepository) List(ctx context.Context) ([]domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Payment(nil), r.items...), nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.items {
		if p.ID == id {
			out := p
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *MemoryRepository) Add(ctx context.Context, p *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.ID == p.ID {
			return domain.ErrDuplicate
		}
	}
	r.items = append([]domain.Payment{*p}, r.items...)
	return nil
}
