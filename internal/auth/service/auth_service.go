package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/itjpay/billing-dashboard/internal/auth/domain"
	"github.com/itjpay/billing-dashboard/internal/auth/repository"
)

type AuthService struct {
	repo repository.Repository
	now  func() time.Time
}

func NewAuthService(repo repository.Repository) *AuthService {
	return &AuthService{repo: repo, now: time.Now}
}

func (s *AuthService) Get(ctx context.Context, uid string) (*domain.Admin, error) {
	return s.repo.Get(ctx, uid)
}

// Sync creates or refreshes the admin behind a verified identity and stamps the login.
func (s *AuthService) Sync(ctx context.Context, req domain.SyncRequest) (*domain.Admin, error) {
	req.UID = strings.TrimSpace(req.UID)
	if req.UID == "" {
		return nil, domain.ErrUIDRequired
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		email = req.UID + "@firebase.local"
	}

	now := s.now()
	a := &domain.Admin{
		UID:         req.UID,
		Email:       email,
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
		Role:        domain.RoleAdmin,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	existing, err := s.repo.Get(ctx, req.UID)
	switch {
	case err == nil:
		a.Role = existing.Role
		if a.DisplayName == nil {
			a.DisplayName = existing.DisplayName
		}
		if a.PhotoURL == nil {
			a.PhotoURL = existing.PhotoURL
		}
	case errors.Is(err, domain.ErrAdminNotFound):
	default:
		return nil, err
	}

	if err := s.repo.Upsert(ctx, a); err != nil {
		return nil, err
	}
	if err := s.repo.RecordLogin(ctx, a.UID, now); err != nil {
		return nil, err
	}
	a.LastLoginAt = &now
	return a, nil
}

func (s *AuthService) Update(ctx context.Context, uid string, req domain.UpdateRequest) (*domain.Admin, error) {
	a, err := s.repo.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	if req.DisplayName != nil {
		a.DisplayName = req.DisplayName
	}
	if req.PhotoURL != nil {
		a.PhotoURL = req.PhotoURL
	}
	a.UpdatedAt = s.now()
	if err := s.repo.Upsert(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}
