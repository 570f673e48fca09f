package domain

import "errors"

// Plan is a priced recurring offering inside a project.
type Plan struct {
	ID          string   `json:"id"`
	ProjectID   string   `json:"project_id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Frequency   string   `json:"frequency,omitempty"`
	Status      string   `json:"status"`
	Features    []string `json:"features,omitempty"`
	Subscribers int      `json:"subscribers"`
}

const (
	FrequencyMonthly   = "monthly"
	FrequencyQuarterly = "quarterly"
	FrequencyYearly    = "yearly"

	StatusActive   = "active"
	StatusInactive = "inactive"
)

// CreatePlanRequest carries the plan form; Features is a comma-separated list.
type CreatePlanRequest struct {
	Name        string
	Description string
	Price       float64
	Frequency   string
	Features    string
}

var (
	ErrNotFound         = errors.New("plan not found")
	ErrNameRequired     = errors.New("plan name required")
	ErrInvalidPrice     = errors.New("plan price must not be negative")
	ErrInvalidFrequency = errors.New("plan frequency must be monthly, quarterly or yearly")
)

func ValidFrequency(f string) bool {
	switch f {
	case FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return true
	}
	return false
}
