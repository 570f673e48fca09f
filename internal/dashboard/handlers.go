package dashboard

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/itjpay/billing-dashboard/internal/i18n"
	"github.com/itjpay/billing-dashboard/internal/logging"
	projdomain "github.com/itjpay/billing-dashboard/internal/projects/domain"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.overview)
}

func (h *Handler) overview(c *gin.Context) {
	o, err := h.svc.Overview(c.Request.Context(), strings.TrimSpace(c.Query("project_id")))
	if err != nil {
		if errors.Is(err, projdomain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": i18n.T(c, i18n.MsgProjectNotFound)})
			return
		}
		logging.New(c.Request.Context()).Error("dashboard.overview", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "overview": o})
}
