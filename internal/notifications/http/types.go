package http

import (
	"github.com/itjpay/billing-dashboard/internal/notifications/service"
	"github.com/itjpay/billing-dashboard/internal/notifications/stream"
)

type Handler struct {
	svc *service.NotificationService
	hub *stream.Hub
}

// New builds the handler; hub may be nil, in which case no stream route is mounted.
func New(svc *service.NotificationService, hub *stream.Hub) *Handler {
	return &Handler{svc: svc, hub: hub}
}
