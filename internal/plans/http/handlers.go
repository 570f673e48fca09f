package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/itjpay/billing-dashboard/internal/i18n"
	"github.com/itjpay/billing-dashboard/internal/logging"
	"github.com/itjpay/billing-dashboard/internal/plans/domain"
	projdomain "github.com/itjpay/billing-dashboard/internal/projects/domain"
)

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.Filter(c.Request.Context(), c.Param("id"), strings.TrimSpace(c.Query("q")))
	if err != nil {
		writeError(c, "plans.list", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "plans": items})
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.svc.Create(c.Request.Context(), c.Param("id"), domain.CreatePlanRequest{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Frequency:   req.Frequency,
		Features:    req.Features,
	})
	if err != nil {
		writeError(c, "plans.create", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "plan": p, "message": i18n.T(c, i18n.MsgPlanCreated)})
}

func writeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, projdomain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": i18n.T(c, i18n.MsgProjectNotFound)})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrNameRequired),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrInvalidFrequency):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	default:
		logging.New(c.Request.Context()).Error(op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
	}
}
