package http

import "github.com/itjpay/billing-dashboard/internal/plans/service"

type Handler struct {
	svc *service.PlanService
}

func New(svc *service.PlanService) *Handler {
	return &Handler{svc: svc}
}

type createReq struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Frequency   string  `json:"frequency"`
	Features    string  `json:"features"`
}
