package http

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/itjpay/billing-dashboard/internal/clients/domain"
	"github.com/itjpay/billing-dashboard/internal/clients/service"
	"github.com/itjpay/billing-dashboard/internal/export"
	"github.com/itjpay/billing-dashboard/internal/i18n"
	"github.com/itjpay/billing-dashboard/internal/logging"
	projdomain "github.com/itjpay/billing-dashboard/internal/projects/domain"
)

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.Filter(c.Request.Context(), c.Param("id"), strings.TrimSpace(c.Query("q")))
	if err != nil {
		writeError(c, "clients.list", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "clients": items})
}

func (h *Handler) add(c *gin.Context) {
	var req domain.ClientForm
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	client, err := h.svc.Add(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeError(c, "clients.add", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "client": client, "message": i18n.T(c, i18n.MsgClientAdded)})
}

func (h *Handler) importFile(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "file is required"})
		return
	}
	if fh.Size > domain.MaxImportSize {
		writeError(c, "clients.import", domain.ErrFileTooLarge)
		return
	}

	f, err := fh.Open()
	if err != nil {
		writeError(c, "clients.import", fmt.Errorf("open upload: %w", err))
		return
	}
	defer f.Close()

	imported, err := h.svc.Import(c.Request.Context(), c.Param("id"), fh.Filename, f)
	if err != nil {
		writeError(c, "clients.import", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"ok":      true,
		"clients": imported,
		"count":   len(imported),
		"message": i18n.T(c, i18n.MsgClientsImported, len(imported), fh.Filename),
	})
}

func (h *Handler) exportXLSX(c *gin.Context) {
	projectID := c.Param("id")
	var buf bytes.Buffer
	if err := h.svc.ExportXLSX(c.Request.Context(), &buf, projectID, strings.TrimSpace(c.Query("q"))); err != nil {
		writeError(c, "clients.export", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=clients-%s.xlsx", projectID))
	c.Data(http.StatusOK, export.ContentTypeXLSX, buf.Bytes())
}

func (h *Handler) template(c *gin.Context) {
	c.Header("Content-Disposition", "attachment; filename="+domain.TemplateFileName)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", service.Template())
}

func writeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, projdomain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": i18n.T(c, i18n.MsgProjectNotFound)})
	case errors.Is(err, domain.ErrUnsupportedFile):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": i18n.T(c, i18n.MsgInvalidFileType)})
	case errors.Is(err, domain.ErrFileTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"ok": false, "error": i18n.T(c, i18n.MsgFileTooLarge)})
	case errors.Is(err, domain.ErrNoValidClients):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "error": i18n.T(c, i18n.MsgNoValidClients)})
	case errors.Is(err, domain.ErrNameRequired), errors.Is(err, domain.ErrEmailRequired):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "import collided with existing clients, try again"})
	default:
		logging.New(c.Request.Context()).Error(op, err)
		msg := "internal error"
		if op == "clients.import" {
			msg = i18n.T(c, i18n.MsgErrorReadingFile)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": msg})
	}
}
