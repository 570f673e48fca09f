package domain

import (
	"errors"
	"time"
)

// Client is a customer subscribed to one of a project's plans.
type Client struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"project_id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Status      string     `json:"status"`
	Plan        string     `json:"plan"`
	PlanID      string     `json:"plan_id"`
	Spent       float64    `json:"spent"`
	LastPayment *time.Time `json:"last_payment,omitempty"`
	Avatar      string     `json:"avatar,omitempty"`
}

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// ClientForm is the manual add-client input.
type ClientForm struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	PlanID string `json:"plan_id"`
}

const (
	// MaxImportSize bounds uploaded import files.
	MaxImportSize = 5 << 20

	UnknownPlanName  = "Unknown Plan"
	DefaultPlanName  = "Basic Plan"
	DefaultPlanID    = "1"
	ImportIDPrefix   = "import-"
	TemplateFileName = "client-import-template.csv"
)

var (
	ErrNameRequired    = errors.New("client name required")
	ErrEmailRequired   = errors.New("client email required")
	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file exceeds 5MB")
	ErrNoValidClients  = errors.New("no valid clients found in the file")
	ErrDuplicate       = errors.New("client id already exists")
)
