package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/itjpay/billing-dashboard/internal/i18n"
	"github.com/itjpay/billing-dashboard/internal/logging"
	"github.com/itjpay/billing-dashboard/internal/notifications/domain"
)

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.Filter(c.Request.Context(), strings.TrimSpace(c.Query("q")))
	if err != nil {
		writeError(c, "notifications.list", err)
		return
	}
	unread := 0
	for _, n := range items {
		if !n.Read {
			unread++
		}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "notifications": items, "unread": unread})
}

func (h *Handler) unreadCount(c *gin.Context) {
	n, err := h.svc.UnreadCount(c.Request.Context())
	if err != nil {
		writeError(c, "notifications.unread_count", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "unread": n})
}

func (h *Handler) markRead(c *gin.Context) {
	n, err := h.svc.MarkAsRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, "notifications.mark_read", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "notification": n})
}

func (h *Handler) markAllRead(c *gin.Context) {
	if err := h.svc.MarkAllAsRead(c.Request.Context()); err != nil {
		writeError(c, "notifications.mark_all_read", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": i18n.T(c, i18n.MsgAllMarkedRead)})
}

func writeError(c *gin.Context, op string, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
		return
	}
	logging.New(c.Request.Context()).Error(op, err)
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
}
