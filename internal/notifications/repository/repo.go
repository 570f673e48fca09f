package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/itjpay/billing-dashboard/internal/notifications/domain"
)

// Repository lists notifications newest first.
type Repository interface {
	List(ctx context.Context) ([]domain.Notification, error)
	Add(ctx context.Context, n *domain.Notification) error
	MarkRead(ctx context.Context, id string) (*domain.Notification, error)
	MarkAllRead(ctx context.Context) error
}

type MemoryRepository struct {
	mu    sync.RWMutex
	items []domain.Notification
}

func NewMemoryRepository(seed []domain.Notification) *MemoryRepository {
	items := append([]domain.Notification(nil), seed...)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Date.After(items[j].Date) })
	return &MemoryRepository{items: items}
}

func (r *MemoryRepository) List(ctx context.Context) ([]domain.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Notification(nil), r.items...), nil
}

func (r *MemoryRepository) Add(ctx context.Context, n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append([]domain.Notification{*n}, r.items...)
	return nil
}

func (r *MemoryRepository) MarkRead(ctx context.Context, id string) (*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].Read = true
			n := r.items[i]
			return &n, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *MemoryRepository) MarkAllRead(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		r.items[i].Read = true
	}
	return nil
}
