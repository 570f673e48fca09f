package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/itjpay/billing-dashboard/internal/clients/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Client, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Client, error)
	// Append stores every client or none of them. A taken id fails with
	// domain.ErrDuplicate.
	Append(ctx context.Context, clients ...domain.Client) error
}

type MemoryRepository struct {
	mu    sync.RWMutex
	items []domain.Client
}

func NewMemoryRepository(seed []domain.Client) *MemoryRepository {
	return &MemoryRepository{items: append([]domain.Client(nil), seed...)}
}

func (r *MemoryRepository) List(ctx context.Context) ([]domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Client(nil), r.items...), nil
}

func (r *MemoryRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Client, 0, 8)
	for _, c := range r.items {
		if c.ProjectID == projectID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *MemoryRepository) Append(ctx context.Context, clients ...domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	taken := make(map[string]bool, len(r.items)+len(clients))
	for _, c := range r.items {
		taken[c.ID] = true
	}
	for _, c := range clients {
		if taken[c.ID] {
			return fmt.Errorf("append client %s: %w", c.ID, domain.ErrDuplicate)
		}
		taken[c.ID] = true
	}
	r.items = append(r.items, clients...)
	return nil
}
