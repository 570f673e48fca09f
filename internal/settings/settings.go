// Package settings keeps the account profile and notification preferences.
package settings

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"sync"
)

type Account struct {
	BusinessName string `json:"business_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
}

type Preferences struct {
	EmailNotifications bool `json:"email_notifications"`
	PaymentAlerts      bool `json:"payment_alerts"`
	WeeklyReports      bool `json:"weekly_reports"`
	MarketingEmails    bool `json:"marketing_emails"`
}

func DefaultAccount() Account {
	return Account{
		BusinessName: "Acme Inc.",
		Email:        "admin@acme.com",
		Phone:        "+1 (555) 123-4567",
		Address:      "123 Main St, San Francisco, CA 94105",
	}
}

func DefaultPreferences() Preferences {
	return Preferences{
		EmailNotifications: true,
		PaymentAlerts:      true,
		WeeklyReports:      true,
		MarketingEmails:    false,
	}
}

var (
	ErrBusinessNameRequired = errors.New("business name required")
	ErrInvalidEmail         = errors.New("invalid email address")
)

// Service holds a single account's settings in memory.
type Service struct {
	mu      sync.RWMutex
	account Account
	prefs   Preferences
}

func NewService() *Service {
	return &Service{account: DefaultAccount(), prefs: DefaultPreferences()}
}

func (s *Service) Account(ctx context.Context) Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account
}

func (s *Service) UpdateAccount(ctx context.Context, a Account) (Account, error) {
	a.BusinessName = strings.TrimSpace(a.BusinessName)
	a.Email = strings.TrimSpace(a.Email)
	a.Phone = strings.TrimSpace(a.Phone)
	a.Address = strings.TrimSpace(a.Address)

	if a.BusinessName == "" {
		return Account{}, ErrBusinessNameRequired
	}
	if addr, err := mail.ParseAddress(a.Email); err != nil || addr.Address != a.Email {
		return Account{}, ErrInvalidEmail
	}

	s.mu.Lock()
	s.account = a
	s.mu.Unlock()
	return a, nil
}

func (s *Service) Preferences(ctx context.Context) Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

func (s *Service) UpdatePreferences(ctx context.Context, p Preferences) Preferences {
	s.mu.Lock()
	s.prefs = p
	s.mu.Unlock()
	return p
}
