package domain

import (
	"errors"
	"time"
)

type Notification struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Type        string    `json:"type"`
	Read        bool      `json:"read"`
	Date        time.Time `json:"date"`
	ProjectID   *string   `json:"project_id,omitempty"`
	ProjectName *string   `json:"project_name,omitempty"`
}

const (
	TypeSuccess = "success"
	TypeError   = "error"
	TypeWarning = "warning"
	TypeInfo    = "info"
)

func ValidType(t string) bool {
	switch t {
	case TypeSuccess, TypeError, TypeWarning, TypeInfo:
		return true
	}
	return false
}

// Event kinds broadcast to stream subscribers.
const (
	EventCreated = "created"
	EventRead    = "read"
	EventReadAll = "read_all"
)

// Event is what the stream delivers after every change.
type Event struct {
	Kind         string        `json:"kind"`
	Notification *Notification `json:"notification,omitempty"`
	Unread       int           `json:"unread"`
}

var (
	ErrNotFound    = errors.New("notification not found")
	ErrTitleEmpty  = errors.New("notification title required")
	ErrInvalidType = errors.New("invalid notification type")
)
