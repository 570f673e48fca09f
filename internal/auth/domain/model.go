package domain

import (
	"errors"
	"time"
)

// Admin is a dashboard operator. The identity provider's UID is the primary key.
type Admin struct {
	UID         string     `json:"uid"`
	Email       string     `json:"email"`
	DisplayName *string    `json:"display_name,omitempty"`
	PhotoURL    *string    `json:"photo_url,omitempty"`
	Role        string     `json:"role"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

const RoleAdmin = "admin"

// SyncRequest carries what the identity token and the client know about the admin.
type SyncRequest struct {
	UID         string
	Email       string
	DisplayName *string
	PhotoURL    *string
}

type UpdateRequest struct {
	DisplayName *string
	PhotoURL    *string
}

var (
	ErrAdminNotFound = errors.New("admin not found")
	ErrUIDRequired   = errors.New("admin uid required")
)
