package http

import "github.com/gin-gonic/gin"

// Register mounts plan routes under a projects group (/projects/:id/plans).
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/:id/plans", h.list)
	rg.POST("/:id/plans", h.create)
}
