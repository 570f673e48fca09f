package checkout

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"

	plandomain "github.com/itjpay/billing-dashboard/internal/plans/domain"
)

// Metadata keys written on hosted checkout sessions and read back by the webhook.
const (
	MetaSessionID = "checkout_session"
	MetaPlanID    = "plan_id"
	MetaProjectID = "project_id"
	MetaClient    = "client"
)

// GatewayRequest is what the payment step hands to the card processor.
type GatewayRequest struct {
	Session *Session
	Plan    *plandomain.Plan
}

// Gateway starts a hosted payment page and returns its URL.
type Gateway interface {
	CreateCheckout(ctx context.Context, req GatewayRequest) (string, error)
}

// StripeGateway opens Stripe Checkout sessions in subscription mode.
type StripeGateway struct {
	sessions   *session.Client
	successURL string
	cancelURL  string
}

func NewStripeGateway(secretKey, successURL, cancelURL string) *StripeGateway {
	return &StripeGateway{
		sessions:   &session.Client{B: stripe.GetBackend(stripe.APIBackend), Key: secretKey},
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

func (g *StripeGateway) CreateCheckout(ctx context.Context, req GatewayRequest) (string, error) {
	params := BuildSessionParams(req, g.successURL, g.cancelURL)
	params.Context = ctx

	sess, err := g.sessions.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe checkout session: %w", err)
	}
	return sess.URL, nil
}

// BuildSessionParams prices the plan inline so no Stripe price objects are needed.
func BuildSessionParams(req GatewayRequest, successURL, cancelURL string) *stripe.CheckoutSessionParams {
	interval, count := "month", int64(1)
	switch req.Plan.Frequency {
	case plandomain.FrequencyQuarterly:
		count = 3
	case plandomain.FrequencyYearly:
		interval = "year"
	}

	return &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		CustomerEmail: stripe.String(req.Session.Customer.Email),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(string(stripe.CurrencyUSD)),
					UnitAmount: stripe.Int64(int64(math.Round(req.Plan.Price * 100))),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Plan.Name),
					},
					Recurring: &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
						Interval:      stripe.String(interval),
						IntervalCount: stripe.Int64(count),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
		Metadata: map[string]string{
			MetaSessionID: req.Session.ID,
			MetaPlanID:    req.Plan.ID,
			MetaProjectID: req.Session.ProjectID,
			MetaClient:    req.Session.Customer.Name,
		},
	}
}
