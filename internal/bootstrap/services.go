package bootstrap

import (
	"context"
	"time"

	"github.com/itjpay/billing-dashboard/config"
	authsvc "github.com/itjpay/billing-dashboard/internal/auth/service"
	"github.com/itjpay/billing-dashboard/internal/billing"
	"github.com/itjpay/billing-dashboard/internal/checkout"
	clientsvc "github.com/itjpay/billing-dashboard/internal/clients/service"
	"github.com/itjpay/billing-dashboard/internal/dashboard"
	"github.com/itjpay/billing-dashboard/internal/developers"
	notifsvc "github.com/itjpay/billing-dashboard/internal/notifications/service"
	"github.com/itjpay/billing-dashboard/internal/notifications/stream"
	paysvc "github.com/itjpay/billing-dashboard/internal/payments/service"
	plansvc "github.com/itjpay/billing-dashboard/internal/plans/service"
	projsvc "github.com/itjpay/billing-dashboard/internal/projects/service"
	"github.com/itjpay/billing-dashboard/internal/reports"
	"github.com/itjpay/billing-dashboard/internal/seed"
	"github.com/itjpay/billing-dashboard/internal/settings"
)

// Services is the wired application, shared by the API server and the worker.
type Services struct {
	Hub *stream.Hub

	Projects      *projsvc.ProjectService
	Plans         *plansvc.PlanService
	Clients       *clientsvc.ClientService
	Payments      *paysvc.PaymentService
	Notifications *notifsvc.NotificationService
	Keys          *developers.KeyService
	Webhooks      *developers.WebhookService
	Settings      *settings.Service
	Checkout      *checkout.Service
	Billing       *billing.WebhookHandler
	Dashboard     *dashboard.Service
	Reports       *reports.Service
	Auth          *authsvc.AuthService
}

func BuildServices(ctx context.Context, cfg *config.Config, st *Stores) (*Services, error) {
	s := &Services{Hub: stream.NewHub()}

	// with redis, events go through pub/sub so every instance's hub sees them
	var pub notifsvc.Publisher = s.Hub
	if st.Events != nil {
		pub = st.Events
	}
	s.Notifications = notifsvc.NewNotificationService(st.Notifications, pub)

	s.Projects = projsvc.NewProjectService(st.Projects)
	s.Plans = plansvc.NewPlanService(st.Plans, s.Projects)

	s.Keys = developers.NewKeyService(seed.APIKeys(time.Now()))
	s.Webhooks = developers.NewWebhookService(seed.Webhooks())
	dispatcher := developers.NewDispatcher(s.Webhooks, nil)
	s.Clients = clientsvc.NewClientService(st.Clients, s.Plans, s.Projects).WithEvents(dispatcher)
	s.Payments = paysvc.NewPaymentService(st.Payments, s.Notifications).WithEvents(dispatcher)

	s.Settings = settings.NewService()

	var gateway checkout.Gateway
	if cfg.Stripe.SecretKey != "" {
		gateway = checkout.NewStripeGateway(cfg.Stripe.SecretKey, cfg.Stripe.SuccessURL, cfg.Stripe.CancelURL)
	}
	s.Checkout = checkout.NewService(checkout.Deps{
		Store:    st.Checkout,
		Tokens:   checkout.NewTokens(cfg.Checkout.TokenSecret),
		Mailer:   checkout.LogMailer{},
		Gateway:  gateway,
		Plans:    s.Plans,
		Projects: s.Projects,
		Payments: s.Payments,
	})
	s.Billing = billing.NewWebhookHandler(cfg.Stripe.WebhookSecret, s.Checkout, s.Payments, s.Plans, s.Projects)

	s.Dashboard = dashboard.NewService(s.Projects, s.Plans, s.Clients, s.Payments, s.Notifications)

	var uploader reports.Uploader = reports.DirUploader{Dir: cfg.Reports.Dir}
	if cfg.Reports.Bucket != "" {
		u, err := reports.NewS3Uploader(ctx, cfg.Reports.AWSRegion, cfg.Reports.Bucket)
		if err != nil {
			return nil, err
		}
		uploader = u
	}
	s.Reports = reports.NewService(s.Payments, s.Settings, uploader, s.Notifications)

	s.Auth = authsvc.NewAuthService(st.Admins)

	return s, nil
}

// Start runs background loops until ctx ends.
func (s *Services) Start(ctx context.Context, st *Stores) error {
	go s.Hub.Run(ctx)
	if st.Events != nil {
		return st.Events.Subscribe(ctx, s.Hub.Relay(ctx))
	}
	return nil
}
