// Package developers manages API keys, outbound webhooks and the API-key
// guard for the public API.
package developers

import (
	"errors"
	"time"
)

type APIKey struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Key         string     `json:"key"`
	Created     time.Time  `json:"created"`
	LastUsed    *time.Time `json:"last_used,omitempty"`
	Status      string     `json:"status"`
	Environment string     `json:"environment"`
}

type Webhook struct {
	ID      string    `json:"id"`
	URL     string    `json:"url"`
	Events  []string  `json:"events"`
	Created time.Time `json:"created"`
	Status  string    `json:"status"`
}

// EventType describes one entry of the webhook event catalogue.
type EventType struct {
	Name        string `json:"name"`
	Group       string `json:"group"`
	Description string `json:"description"`
}

const (
	StatusActive   = "active"
	StatusInactive = "inactive"

	EnvProduction  = "prod"
	EnvDevelopment = "dev"
	EnvTest        = "test"
)

// Only events some service raises are listed; subscribing to anything else is rejected.
const (
	EventPaymentSuccess      = "payment.success"
	EventPaymentFailed       = "payment.failed"
	EventSubscriptionCreated = "subscription.created"
	EventClientCreated       = "client.created"
)

var catalogue = []EventType{
	{EventPaymentSuccess, "Payment Events", "Triggered when a payment is successful"},
	{EventPaymentFailed, "Payment Events", "Triggered when a payment fails"},
	{EventSubscriptionCreated, "Subscription Events", "Triggered when a client subscribes to a plan"},
	{EventClientCreated, "Client Events", "Triggered when a client is created"},
}

// Events returns the webhook event catalogue.
func Events() []EventType {
	return append([]EventType(nil), catalogue...)
}

func knownEvent(name string) bool {
	for _, e := range catalogue {
		if e.Name == name {
			return true
		}
	}
	return false
}

var (
	ErrKeyNotFound     = errors.New("api key not found")
	ErrWebhookNotFound = errors.New("webhook not found")
	ErrNameRequired    = errors.New("key name required")
	ErrInvalidEnv      = errors.New("environment must be prod, dev or test")
	ErrInvalidURL      = errors.New("webhook url must be an absolute http(s) url")
	ErrNoEvents        = errors.New("select at least one event")
	ErrUnknownEvent    = errors.New("unknown webhook event")
	ErrUnauthorized    = errors.New("invalid or inactive api key")
)
