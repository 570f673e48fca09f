// Package checkout runs the hosted checkout: customer details, e-mail
// verification by one-time code, then payment.
package checkout

import (
	"errors"
	"time"
)

const (
	StepCustomerInfo      = "customer-info"
	StepEmailVerification = "email-verification"
	StepPayment           = "payment"
	StepCompleted         = "completed"
)

const (
	SessionTTL  = 10 * time.Minute
	TokenTTL    = 15 * time.Minute
	MaxAttempts = 5
)

type Customer struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type Session struct {
	ID          string    `json:"id"`
	PlanID      string    `json:"plan_id"`
	ProjectID   string    `json:"project_id"`
	Customer    Customer  `json:"customer"`
	Step        string    `json:"step"`
	OTPHash     string    `json:"otp_hash,omitempty"`
	Attempts    int       `json:"attempts"`
	ExpiresAt   time.Time `json:"expires_at"`
	PaymentID   string    `json:"payment_id,omitempty"`
	CheckoutURL string    `json:"checkout_url,omitempty"`
}

// View is the client-facing shape of a session.
type View struct {
	ID        string    `json:"id"`
	PlanID    string    `json:"plan_id"`
	Email     string    `json:"email"`
	Step      string    `json:"step"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *Session) View() View {
	return View{ID: s.ID, PlanID: s.PlanID, Email: s.Customer.Email, Step: s.Step, ExpiresAt: s.ExpiresAt}
}

var (
	ErrSessionNotFound = errors.New("checkout session not found or expired")
	ErrInvalidEmail    = errors.New("please enter a valid email address")
	ErrNameTooShort    = errors.New("name must be at least 2 characters")
	ErrPhoneTooShort   = errors.New("please enter a valid phone number")
	ErrInvalidCode     = errors.New("invalid verification code")
	ErrTooManyAttempts = errors.New("too many verification attempts")
	ErrWrongStep       = errors.New("checkout session is not at this step")
	ErrInvalidToken    = errors.New("invalid or expired checkout token")
	ErrPlanInactive    = errors.New("plan is not available for checkout")
	ErrSessionBusy     = errors.New("checkout session is busy, try again")
)
