package http

import "github.com/itjpay/billing-dashboard/internal/payments/service"

type Handler struct {
	svc *service.PaymentService
}

func New(svc *service.PaymentService) *Handler {
	return &Handler{svc: svc}
}
