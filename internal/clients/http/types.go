package http

import "github.com/itjpay/billing-dashboard/internal/clients/service"

type Handler struct {
	svc *service.ClientService
}

func New(svc *service.ClientService) *Handler {
	return &Handler{svc: svc}
}
