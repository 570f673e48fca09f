package http

import "github.com/gin-gonic/gin"

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.GET("/export", h.exportXLSX)
}

// RegisterReadOnly exposes the log to API-key clients.
func (h *Handler) RegisterReadOnly(rg *gin.RouterGroup) {
	rg.GET("", h.list)
}
