package http

import "github.com/gin-gonic/gin"

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.GET("/unread-count", h.unreadCount)
	rg.POST("/:id/read", h.markRead)
	rg.POST("/read-all", h.markAllRead)
	if h.hub != nil {
		rg.GET("/stream", h.hub.ServeWS)
	}
}
