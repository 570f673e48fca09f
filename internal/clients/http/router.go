package http

import "github.com/gin-gonic/gin"

// Register mounts client routes under a projects group.
func (h *Handler) Register(projects *gin.RouterGroup) {
	projects.GET("/:id/clients", h.list)
	projects.POST("/:id/clients", h.add)
	projects.POST("/:id/clients/import", h.importFile)
	projects.GET("/:id/clients/export", h.exportXLSX)
}

// RegisterTemplate serves the import template at /clients/import-template.
func (h *Handler) RegisterTemplate(rg *gin.RouterGroup) {
	rg.GET("/import-template", h.template)
}
