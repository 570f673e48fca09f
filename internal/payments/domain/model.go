package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"
)

// Payment is one entry of the payment log. Client, plan and project names are
// denormalized as the log keeps them even after the records change.
type Payment struct {
	ID          string    `json:"id"`
	Client      string    `json:"client"`
	Plan        string    `json:"plan"`
	Amount      float64   `json:"amount"`
	Status      string    `json:"status"`
	Method      string    `json:"method"`
	Date        time.Time `json:"date"`
	ProjectID   string    `json:"project_id"`
	ProjectName string    `json:"project_name"`
}

const (
	StatusSuccessful = "successful"
	StatusFailed     = "failed"
	StatusPending    = "pending"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusSuccessful, StatusFailed, StatusPending:
		return true
	}
	return false
}

// ExternalID maps a processor reference (a Stripe checkout session or invoice
// id) onto a stable invoice id, so a redelivered event lands on the payment it
// already booked.
func ExternalID(ref string) string {
	sum := sha256.Sum256([]byte(ref))
	return "INV-" + strings.ToUpper(hex.EncodeToString(sum[:4]))
}

var (
	ErrNotFound      = errors.New("payment not found")
	ErrInvalidAmount = errors.New("payment amount must not be negative")
	ErrInvalidStatus = errors.New("invalid payment status")
	ErrClientEmpty   = errors.New("payment client required")
	ErrDuplicate     = errors.New("payment already recorded")
)
