package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	group := g.Group("/waitlist")
	{
		group.POST("", h.Join)
		group.GET("/:id", h.Get)
		group.DELETE("/:id", h.Leave)
	}
}
