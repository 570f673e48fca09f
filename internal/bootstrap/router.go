package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpapi "github.com/itjpay/billing-dashboard/internal/api/http"
	"github.com/itjpay/billing-dashboard/internal/api/http/middleware"
	"github.com/itjpay/billing-dashboard/internal/auth"
	authhttp "github.com/itjpay/billing-dashboard/internal/auth/http"
	authmw "github.com/itjpay/billing-dashboard/internal/auth/middleware"
	"github.com/itjpay/billing-dashboard/internal/checkout"
	clienthttp "github.com/itjpay/billing-dashboard/internal/clients/http"
	"github.com/itjpay/billing-dashboard/internal/dashboard"
	"github.com/itjpay/billing-dashboard/internal/developers"
	"github.com/itjpay/billing-dashboard/internal/metrics"
	notifhttp "github.com/itjpay/billing-dashboard/internal/notifications/http"
	payhttp "github.com/itjpay/billing-dashboard/internal/payments/http"
	planhttp "github.com/itjpay/billing-dashboard/internal/plans/http"
	projhttp "github.com/itjpay/billing-dashboard/internal/projects/http"
	"github.com/itjpay/billing-dashboard/internal/settings"
)

// PublicRequestsPerMinute is the per-key budget of the public API.
const PublicRequestsPerMinute = 100

type RouterDeps struct {
	ServiceName string
	Version     string
	CORSOrigins []string
	Stores      *Stores
	Services    *Services
	// TokenVerifier enables Firebase auth on the admin API; nil falls back to OptionalUser.
	TokenVerifier authmw.TokenVerifier
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Accept-Language", middleware.HeaderRequestID},
		ExposeHeaders:    []string{middleware.HeaderRequestID, "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.MetricsMiddleware())

	st, svc := dep.Stores, dep.Services

	var db, rdb httpapi.Pinger
	if st.DB != nil {
		db = st.DB
	}
	if st.Redis != nil {
		rdb = redisPinger{client: st.Redis}
	}
	httpapi.NewHealthHandler(dep.ServiceName, dep.Version, st.Driver, db, rdb).RegisterRoutes(r)
	r.GET("/metrics", metrics.Handler())

	// processor callbacks and the hosted checkout are not behind admin auth
	svc.Billing.Register(r.Group("/webhooks"))
	checkout.NewHandler(svc.Checkout).Register(r.Group("/api/v1/checkout"))

	api := r.Group("/api/v1")
	if dep.TokenVerifier != nil {
		api.Use(authmw.FirebaseAuthMiddleware(dep.TokenVerifier))
	} else {
		api.Use(auth.OptionalUser())
	}

	authhttp.New(svc.Auth).Register(api.Group("/me"))

	projects := api.Group("/projects")
	projhttp.New(svc.Projects).Register(projects)
	planhttp.New(svc.Plans).Register(projects)
	clients := clienthttp.New(svc.Clients)
	clients.Register(projects)
	clients.RegisterTemplate(api.Group("/clients"))

	payhttp.New(svc.Payments).Register(api.Group("/payments"))
	notifhttp.New(svc.Notifications, svc.Hub).Register(api.Group("/notifications"))
	developers.NewHandler(svc.Keys, svc.Webhooks).Register(api.Group("/developers"))
	settings.NewHandler(svc.Settings).Register(api.Group("/settings"))
	dashboard.NewHandler(svc.Dashboard).Register(api.Group("/dashboard"))

	public := r.Group("/public/v1")
	public.Use(
		developers.RequireAPIKey(svc.Keys),
		middleware.RateLimitMiddleware(middleware.NewRateLimiter(PublicRequestsPerMinute, PublicRequestsPerMinute), developers.APIKeyID),
	)
	projhttp.New(svc.Projects).RegisterReadOnly(public.Group("/projects"))
	payhttp.New(svc.Payments).RegisterReadOnly(public.Group("/payments"))

	return r
}
