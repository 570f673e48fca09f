package developers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/itjpay/billing-dashboard/internal/i18n"
)

type Handler struct {
	keys  *KeyService
	hooks *WebhookService
}

func NewHandler(keys *KeyService, hooks *WebhookService) *Handler {
	return &Handler{keys: keys, hooks: hooks}
}

// Register mounts /developers routes.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/keys", h.listKeys)
	rg.POST("/keys", h.createKey)
	rg.POST("/keys/:id/regenerate", h.regenerateKey)
	rg.POST("/keys/:id/revoke", h.revokeKey)

	rg.GET("/webhooks", h.listWebhooks)
	rg.POST("/webhooks", h.createWebhook)
	rg.DELETE("/webhooks/:id", h.deleteWebhook)
	rg.GET("/webhooks/events", h.events)
}

type createKeyReq struct {
	Name        string `json:"name"`
	Environment string `json:"environment"`
}

type createWebhookReq struct {
	URL    string   `json:"url"`
	Events []string `json:"events"`
}

func (h *Handler) listKeys(c *gin.Context) {
	reveal := c.Query("reveal") == "true"
	c.JSON(http.StatusOK, gin.H{"ok": true, "keys": h.keys.List(c.Request.Context(), reveal)})
}

func (h *Handler) createKey(c *gin.Context) {
	var req createKeyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	k, err := h.keys.Create(c.Request.Context(), req.Name, req.Environment)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "key": k, "message": i18n.T(c, i18n.MsgAPIKeyCreated)})
}

func (h *Handler) regenerateKey(c *gin.Context) {
	k, err := h.keys.Regenerate(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "key": k, "message": i18n.T(c, i18n.MsgAPIKeyRegenerated)})
}

func (h *Handler) revokeKey(c *gin.Context) {
	k, err := h.keys.Revoke(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "key": k, "message": i18n.T(c, i18n.MsgAPIKeyRevoked)})
}

func (h *Handler) listWebhooks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "webhooks": h.hooks.List(c.Request.Context())})
}

func (h *Handler) createWebhook(c *gin.Context) {
	var req createWebhookReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	w, err := h.hooks.Create(c.Request.Context(), req.URL, req.Events)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "webhook": w, "message": i18n.T(c, i18n.MsgWebhookCreated)})
}

func (h *Handler) deleteWebhook(c *gin.Context) {
	if err := h.hooks.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": i18n.T(c, i18n.MsgWebhookDeleted)})
}

func (h *Handler) events(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "events": Events()})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrKeyNotFound), errors.Is(err, ErrWebhookNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	}
}
