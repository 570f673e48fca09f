package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestTotal counts HTTP requests by method, route and status.
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "billing_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	// RequestDuration is the latency of HTTP requests.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "billing_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	// ImportedClients counts client rows accepted by file imports.
	ImportedClients = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "billing_clients_imported_total",
			Help: "Client rows accepted by file imports",
		},
		[]string{"format"},
	)
	// ImportFailures counts imports rejected with no stored rows.
	ImportFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "billing_client_import_failures_total",
			Help: "Client imports rejected without storing any row",
		},
		[]string{"reason"},
	)
	// NotificationsPushed counts notifications created, by type.
	NotificationsPushed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "billing_notifications_pushed_total",
			Help: "Notifications created",
		},
		[]string{"type"},
	)
	// PaymentsRecorded counts payment log entries, by status.
	PaymentsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "billing_payments_recorded_total",
			Help: "Payment log entries recorded",
		},
		[]string{"status"},
	)
)

// Handler exposes the default registry for scraping.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
