package http

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/itjpay/billing-dashboard/internal/export"
	"github.com/itjpay/billing-dashboard/internal/logging"
)

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.Filter(c.Request.Context(), strings.TrimSpace(c.Query("project_id")), strings.TrimSpace(c.Query("q")))
	if err != nil {
		logging.New(c.Request.Context()).Error("payments.list", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "payments": items})
}

func (h *Handler) exportXLSX(c *gin.Context) {
	var buf bytes.Buffer
	err := h.svc.ExportXLSX(c.Request.Context(), &buf, strings.TrimSpace(c.Query("project_id")), strings.TrimSpace(c.Query("q")))
	if err != nil {
		logging.New(c.Request.Context()).Error("payments.export", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
		return
	}
	c.Header("Content-Disposition", "attachment; filename=payments-"+time.Now().UTC().Format("20060102")+".xlsx")
	c.Data(http.StatusOK, export.ContentTypeXLSX, buf.Bytes())
}
