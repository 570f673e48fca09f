package repository

import (
	"context"
	"sync"
	"time"

	"github.com/itjpay/billing-dashboard/internal/auth/domain"
)

type Repository interface {
	Get(ctx context.Context, uid string) (*domain.Admin, error)
	Upsert(ctx context.Context, a *domain.Admin) error
	RecordLogin(ctx context.Context, uid string, at time.Time) error
}

type MemoryRepository struct {
	mu     sync.RWMutex
	admins map[string]domain.Admin
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{admins: make(map[string]domain.Admin)}
}

func (r *MemoryRepository) Get(ctx context.Context, uid string) (*domain.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.admins[uid]
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	return &a, nil
}

func (r *MemoryRepository) Upsert(ctx context.Context, a *domain.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.admins[a.UID]; ok {
		a.CreatedAt = old.CreatedAt
		if a.LastLoginAt == nil {
			a.LastLoginAt = old.LastLoginAt
		}
	}
	r.admins[a.UID] = *a
	return nil
}

func (r *MemoryRepository) RecordLogin(ctx context.Context, uid string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.admins[uid]
	if !ok {
		return domain.ErrAdminNotFound
	}
	a.LastLoginAt = &at
	r.admins[uid] = a
	return nil
}
