package checkout

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/itjpay/billing-dashboard/internal/logging"
	paydomain "github.com/itjpay/billing-dashboard/internal/payments/domain"
	plandomain "github.com/itjpay/billing-dashboard/internal/plans/domain"
	projdomain "github.com/itjpay/billing-dashboard/internal/projects/domain"
)

type PlanLookup interface {
	Get(ctx context.Context, id string) (*plandomain.Plan, error)
}

type ProjectLookup interface {
	Get(ctx context.Context, id string) (*projdomain.Project, error)
}

type PaymentRecorder interface {
	Record(ctx context.Context, p paydomain.Payment) (*paydomain.Payment, error)
}

type Service struct {
	store    Store
	tokens   *Tokens
	mailer   Mailer
	gateway  Gateway
	plans    PlanLookup
	projects ProjectLookup
	payments PaymentRecorder
	now      func() time.Time
}

type Deps struct {
	Store    Store
	Tokens   *Tokens
	Mailer   Mailer
	Gateway  Gateway // nil records payments as pending without a processor
	Plans    PlanLookup
	Projects ProjectLookup
	Payments PaymentRecorder
}

func NewService(d Deps) *Service {
	if d.Mailer == nil {
		d.Mailer = LogMailer{}
	}
	return &Service{
		store:    d.Store,
		tokens:   d.Tokens,
		mailer:   d.Mailer,
		gateway:  d.Gateway,
		plans:    d.Plans,
		projects: d.Projects,
		payments: d.Payments,
		now:      time.Now,
	}
}

// ValidateCustomer applies the customer form rules.
func ValidateCustomer(c Customer) (Customer, error) {
	c.Email = strings.TrimSpace(c.Email)
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)

	if addr, err := mail.ParseAddress(c.Email); err != nil || addr.Address != c.Email {
		return c, ErrInvalidEmail
	}
	if len([]rune(c.Name)) < 2 {
		return c, ErrNameTooShort
	}
	if len(c.Phone) < 10 {
		return c, ErrPhoneTooShort
	}
	return c, nil
}

// Start opens a session for an active plan and mails the first code.
func (s *Service) Start(ctx context.Context, planID string, customer Customer) (*Session, error) {
	customer, err := ValidateCustomer(customer)
	if err != nil {
		return nil, err
	}
	plan, err := s.plans.Get(ctx, strings.TrimSpace(planID))
	if err != nil {
		return nil, err
	}
	if plan.Status != plandomain.StatusActive {
		return nil, ErrPlanInactive
	}

	sess := &Session{
		ID:        uuid.NewString(),
		PlanID:    plan.ID,
		ProjectID: plan.ProjectID,
		Customer:  customer,
	}
	if err := s.sendCode(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// ResendOTP replaces the pending code and resets the attempt counter.
func (s *Service) ResendOTP(ctx context.Context, sessionID string) (*Session, error) {
	unlock, err := s.store.Lock(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Step != StepEmailVerification {
		return nil, ErrWrongStep
	}
	if err := s.sendCode(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Service) sendCode(ctx context.Context, sess *Session) error {
	code, err := newOTP()
	if err != nil {
		return err
	}
	sess.Step = StepEmailVerification
	sess.OTPHash = hashOTP(sess.ID, code)
	sess.Attempts = 0
	sess.ExpiresAt = s.now().Add(SessionTTL)

	if err := s.store.Save(ctx, sess); err != nil {
		return err
	}
	return s.mailer.SendOTP(ctx, sess.Customer.Email, code)
}

// VerifyResult carries the token that unlocks the payment step.
type VerifyResult struct {
	Session   *Session
	Token     string
	ExpiresAt time.Time
}

func (s *Service) Verify(ctx context.Context, sessionID, code string) (*VerifyResult, error) {
	unlock, err := s.store.Lock(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Step != StepEmailVerification {
		return nil, ErrWrongStep
	}
	if sess.Attempts >= MaxAttempts {
		return nil, ErrTooManyAttempts
	}

	code = strings.TrimSpace(code)
	if !otpPattern.MatchString(code) || !otpMatches(sess.ID, code, sess.OTPHash) {
		sess.Attempts++
		if err := s.store.Save(ctx, sess); err != nil {
			return nil, err
		}
		return nil, ErrInvalidCode
	}

	token, exp, err := s.tokens.Issue(sess.ID)
	if err != nil {
		return nil, err
	}
	sess.Step = StepPayment
	sess.OTPHash = ""
	sess.ExpiresAt = exp
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return &VerifyResult{Session: sess, Token: token, ExpiresAt: exp}, nil
}

// PayResult holds either a hosted payment URL or the recorded payment.
type PayResult struct {
	Session     *Session           `json:"session"`
	CheckoutURL string             `json:"checkout_url,omitempty"`
	Payment     *paydomain.Payment `json:"payment,omitempty"`
}

func (s *Service) Pay(ctx context.Context, token string) (*PayResult, error) {
	sessionID, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	unlock, err := s.store.Lock(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Step != StepPayment {
		return nil, ErrWrongStep
	}
	plan, err := s.plans.Get(ctx, sess.PlanID)
	if err != nil {
		return nil, err
	}

	if s.gateway != nil {
		url, err := s.gateway.CreateCheckout(ctx, GatewayRequest{Session: sess, Plan: plan})
		if err != nil {
			return nil, err
		}
		sess.CheckoutURL = url
		if err := s.store.Save(ctx, sess); err != nil {
			return nil, err
		}
		return &PayResult{Session: sess, CheckoutURL: url}, nil
	}

	p, err := s.record(ctx, sess, plan, "", paydomain.StatusPending, "Card")
	if err != nil {
		return nil, err
	}
	return &PayResult{Session: sess, Payment: p}, nil
}

// Complete is called once the processor confirms the hosted payment. A non-empty
// paymentID books the payment under that id; recording it twice fails with
// paydomain.ErrDuplicate.
func (s *Service) Complete(ctx context.Context, sessionID, paymentID string, amount float64) (*paydomain.Payment, error) {
	unlock, err := s.store.Lock(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Step == StepCompleted {
		return nil, ErrWrongStep
	}
	plan, err := s.plans.Get(ctx, sess.PlanID)
	if err != nil {
		return nil, err
	}
	if amount > 0 {
		plan.Price = amount
	}
	return s.record(ctx, sess, plan, paymentID, paydomain.StatusSuccessful, "Stripe")
}

// record must run under the session lock.
func (s *Service) record(ctx context.Context, sess *Session, plan *plandomain.Plan, paymentID, status, method string) (*paydomain.Payment, error) {
	projectName := ""
	if proj, err := s.projects.Get(ctx, sess.ProjectID); err == nil {
		projectName = proj.Name
	} else if !errors.Is(err, projdomain.ErrNotFound) {
		return nil, err
	}

	p, err := s.payments.Record(ctx, paydomain.Payment{
		ID:          paymentID,
		Client:      sess.Customer.Name,
		Plan:        plan.Name,
		Amount:      plan.Price,
		Status:      status,
		Method:      method,
		ProjectID:   sess.ProjectID,
		ProjectName: projectName,
	})
	if errors.Is(err, paydomain.ErrDuplicate) && paymentID != "" {
		// booked by an earlier delivery whose session update was lost
		s.markCompleted(ctx, sess, paymentID)
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	s.markCompleted(ctx, sess, p.ID)
	return p, nil
}

func (s *Service) markCompleted(ctx context.Context, sess *Session, paymentID string) {
	sess.Step = StepCompleted
	sess.PaymentID = paymentID
	if err := s.store.Save(ctx, sess); err != nil {
		logging.New(ctx).Warnf("checkout.complete", "save session %s: %v", sess.ID, err)
	}
}
