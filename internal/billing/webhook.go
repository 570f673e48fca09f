// Package billing receives card processor events and turns them into payment log entries.
package billing

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/itjpay/billing-dashboard/internal/checkout"
	"github.com/itjpay/billing-dashboard/internal/logging"
	paydomain "github.com/itjpay/billing-dashboard/internal/payments/domain"
	plandomain "github.com/itjpay/billing-dashboard/internal/plans/domain"
	projdomain "github.com/itjpay/billing-dashboard/internal/projects/domain"
)

const (
	maxBodyBytes    = int64(65536)
	unknownCustomer = "Unknown customer"
	unknownPlan     = "Unknown Plan"
)

// Completer finishes a checkout session once the processor confirms payment.
type Completer interface {
	Complete(ctx context.Context, sessionID, paymentID string, amount float64) (*paydomain.Payment, error)
}

type PaymentRecorder interface {
	Record(ctx context.Context, p paydomain.Payment) (*paydomain.Payment, error)
}

type PlanLookup interface {
	Get(ctx context.Context, id string) (*plandomain.Plan, error)
}

type ProjectLookup interface {
	Get(ctx context.Context, id string) (*projdomain.Project, error)
}

// WebhookHandler books processor events. Payments are keyed on the Stripe
// object id, so redelivered events are acknowledged without booking again.
type WebhookHandler struct {
	secret    string
	checkouts Completer
	payments  PaymentRecorder
	plans     PlanLookup
	projects  ProjectLookup
}

func NewWebhookHandler(secret string, checkouts Completer, payments PaymentRecorder, plans PlanLookup, projects ProjectLookup) *WebhookHandler {
	return &WebhookHandler{secret: secret, checkouts: checkouts, payments: payments, plans: plans, projects: projects}
}

func (h *WebhookHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/stripe", h.handle)
}

func (h *WebhookHandler) handle(c *gin.Context) {
	log := logging.New(c.Request.Context())

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid payload"})
		return
	}
	if h.secret == "" {
		log.Warn("billing.webhook", "stripe webhook secret missing")
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "webhook not configured"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(body, c.GetHeader("Stripe-Signature"), h.secret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		log.Warnf("billing.webhook", "signature verification failed: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "signature verification failed"})
		return
	}

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted:
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid session payload"})
			return
		}
		if err := h.sessionCompleted(c.Request.Context(), &sess); err != nil {
			log.Error("billing.webhook.session_completed", err)
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to record payment"})
			return
		}
	case stripe.EventTypeInvoicePaymentFailed:
		var inv stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid invoice payload"})
			return
		}
		if err := h.invoiceFailed(c.Request.Context(), &inv); err != nil {
			log.Error("billing.webhook.invoice_failed", err)
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to record payment"})
			return
		}
	default:
		log.Debugf("billing.webhook", "ignoring event %s", event.Type)
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *WebhookHandler) sessionCompleted(ctx context.Context, sess *stripe.CheckoutSession) error {
	amount := float64(sess.AmountTotal) / 100
	paymentID := paydomain.ExternalID(sess.ID)

	if id := sess.Metadata[checkout.MetaSessionID]; id != "" && h.checkouts != nil {
		_, err := h.checkouts.Complete(ctx, id, paymentID, amount)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, checkout.ErrWrongStep), errors.Is(err, paydomain.ErrDuplicate):
			// retried delivery of an event we already booked
			return nil
		case !errors.Is(err, checkout.ErrSessionNotFound):
			return err
		}
	}

	// the local session is gone; book the payment from what Stripe sent
	client := sess.Metadata[checkout.MetaClient]
	if client == "" && sess.CustomerDetails != nil {
		client = sess.CustomerDetails.Name
	}
	if client == "" && sess.CustomerDetails != nil {
		client = sess.CustomerDetails.Email
	}
	if client == "" {
		client = unknownCustomer
	}
	projectID := sess.Metadata[checkout.MetaProjectID]
	_, err := h.payments.Record(ctx, paydomain.Payment{
		ID:          paymentID,
		Client:      client,
		Plan:        h.planName(ctx, sess.Metadata[checkout.MetaPlanID]),
		Amount:      amount,
		Status:      paydomain.StatusSuccessful,
		Method:      "Stripe",
		ProjectID:   projectID,
		ProjectName: h.projectName(ctx, projectID),
	})
	return ignoreDuplicate(err)
}

func (h *WebhookHandler) invoiceFailed(ctx context.Context, inv *stripe.Invoice) error {
	client := inv.CustomerName
	if client == "" {
		client = inv.CustomerEmail
	}
	if client == "" {
		client = unknownCustomer
	}
	p := paydomain.Payment{
		Client:      client,
		Plan:        h.planName(ctx, inv.Metadata[checkout.MetaPlanID]),
		Amount:      float64(inv.AmountDue) / 100,
		Status:      paydomain.StatusFailed,
		Method:      "Stripe",
		ProjectID:   inv.Metadata[checkout.MetaProjectID],
		ProjectName: h.projectName(ctx, inv.Metadata[checkout.MetaProjectID]),
	}
	if inv.ID != "" {
		p.ID = paydomain.ExternalID(inv.ID)
	}
	_, err := h.payments.Record(ctx, p)
	return ignoreDuplicate(err)
}

func ignoreDuplicate(err error) error {
	if errors.Is(err, paydomain.ErrDuplicate) {
		return nil
	}
	return err
}

func (h *WebhookHandler) projectName(ctx context.Context, id string) string {
	if id == "" || h.projects == nil {
		return ""
	}
	p, err := h.projects.Get(ctx, id)
	if err != nil {
		return ""
	}
	return p.Name
}

func (h *WebhookHandler) planName(ctx context.Context, id string) string {
	if id == "" || h.plans == nil {
		return unknownPlan
	}
	p, err := h.plans.Get(ctx, id)
	if err != nil {
		return unknownPlan
	}
	return p.Name
}
