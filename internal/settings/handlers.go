package settings

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/itjpay/billing-dashboard/internal/i18n"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/account", h.getAccount)
	rg.PUT("/account", h.putAccount)
	rg.GET("/notifications", h.getPreferences)
	rg.PUT("/notifications", h.putPreferences)
}

func (h *Handler) getAccount(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "account": h.svc.Account(c.Request.Context())})
}

func (h *Handler) putAccount(c *gin.Context) {
	var req Account
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body: " + err.Error()})
		return
	}
	a, err := h.svc.UpdateAccount(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "account": a, "message": i18n.T(c, i18n.MsgAccountSaved)})
}

func (h *Handler) getPreferences(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "preferences": h.svc.Preferences(c.Request.Context())})
}

func (h *Handler) putPreferences(c *gin.Context) {
	// start from current values so partial bodies keep unspecified switches
	req := h.svc.Preferences(c.Request.Context())
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	p := h.svc.UpdatePreferences(c.Request.Context(), req)
	c.JSON(http.StatusOK, gin.H{"ok": true, "preferences": p, "message": i18n.T(c, i18n.MsgPreferencesSaved)})
}
