package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/itjpay/billing-dashboard/internal/auth"
	"github.com/itjpay/billing-dashboard/internal/auth/domain"
	"github.com/itjpay/billing-dashboard/internal/logging"
)

// GetProfile returns the signed-in admin.
func (h *Handler) GetProfile(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
		return
	}

	a, err := h.authService.Get(c.Request.Context(), uid)
	if err != nil {
		writeError(c, "auth.profile", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "admin": a})
}

// SyncUser records the admin after the frontend signs in with the identity provider.
// The body is optional; token claims win over it for email.
func (h *Handler) SyncUser(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
		return
	}

	var body syncReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON body"})
			return
		}
	}

	email := auth.UserEmail(c)
	if email == "" {
		email = body.Email
	}

	a, err := h.authService.Sync(c.Request.Context(), domain.SyncRequest{
		UID:         uid,
		Email:       email,
		DisplayName: body.DisplayName,
		PhotoURL:    body.PhotoURL,
	})
	if err != nil {
		writeError(c, "auth.sync", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "admin": a})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
		return
	}

	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid request body"})
		return
	}

	a, err := h.authService.Update(c.Request.Context(), uid, domain.UpdateRequest{
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		writeError(c, "auth.update", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "admin": a})
}

func writeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrAdminNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrUIDRequired):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	default:
		logging.New(c.Request.Context()).Error(op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
	}
}
