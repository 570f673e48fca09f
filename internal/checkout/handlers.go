package checkout

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/itjpay/billing-dashboard/internal/i18n"
	"github.com/itjpay/billing-dashboard/internal/logging"
	plandomain "github.com/itjpay/billing-dashboard/internal/plans/domain"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.start)
	rg.POST("/pay", h.pay)
	rg.POST("/:id/resend", h.resend)
	rg.POST("/:id/verify", h.verify)
}

type startReq struct {
	PlanID string `json:"plan_id" binding:"required"`
	Customer
}

type verifyReq struct {
	Code string `json:"code" binding:"required"`
}

type payReq struct {
	Token string `json:"token" binding:"required"`
}

func (h *Handler) start(c *gin.Context) {
	var req startReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body: " + err.Error()})
		return
	}
	sess, err := h.svc.Start(c.Request.Context(), req.PlanID, req.Customer)
	if err != nil {
		writeError(c, "checkout.start", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"ok":      true,
		"session": sess.View(),
		"message": i18n.T(c, i18n.MsgCodeSent, sess.Customer.Email),
	})
}

func (h *Handler) resend(c *gin.Context) {
	sess, err := h.svc.ResendOTP(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, "checkout.resend", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"session": sess.View(),
		"message": i18n.T(c, i18n.MsgCodeSent, sess.Customer.Email),
	})
}

func (h *Handler) verify(c *gin.Context) {
	var req verifyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body: " + err.Error()})
		return
	}
	res, err := h.svc.Verify(c.Request.Context(), c.Param("id"), req.Code)
	if err != nil {
		writeError(c, "checkout.verify", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"session":    res.Session.View(),
		"token":      res.Token,
		"expires_at": res.ExpiresAt,
		"message":    i18n.T(c, i18n.MsgEmailVerified),
	})
}

func (h *Handler) pay(c *gin.Context) {
	var req payReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body: " + err.Error()})
		return
	}
	res, err := h.svc.Pay(c.Request.Context(), req.Token)
	if err != nil {
		writeError(c, "checkout.pay", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":           true,
		"session":      res.Session.View(),
		"checkout_url": res.CheckoutURL,
		"payment":      res.Payment,
		"message":      i18n.T(c, i18n.MsgPaymentInitialized),
	})
}

func writeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, ErrInvalidCode):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": i18n.T(c, i18n.MsgInvalidCode)})
	case errors.Is(err, ErrInvalidEmail), errors.Is(err, ErrNameTooShort), errors.Is(err, ErrPhoneTooShort):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, plandomain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, ErrTooManyAttempts):
		c.JSON(http.StatusTooManyRequests, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, ErrWrongStep), errors.Is(err, ErrPlanInactive), errors.Is(err, ErrSessionBusy):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	default:
		logging.New(c.Request.Context()).Error(op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
	}
}
