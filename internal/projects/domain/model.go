package domain

import (
	"errors"
	"time"
)

// Project is a billing tenant grouping clients and subscription plans.
// It is storage-agnostic and shared by the repository and HTTP layers.
type Project struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Status            string    `json:"status"`
	ClientCount       int       `json:"clients"`
	SubscriptionCount int       `json:"subscriptions"`
	Date              time.Time `json:"date"`
}

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

var (
	ErrNotFound      = errors.New("project not found")
	ErrInvalidStatus = errors.New("invalid project status")
	ErrNameRequired  = errors.New("project name required")
)

// ValidStatus reports whether s is one of the project statuses.
func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusInactive
}
