package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	group := g.Group("/bookings")
	{
		group.GET("", h.List)
		// "stale" must register before ":id" so gin does not shadow it
		group.GET("/stale", h.ListStale)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.POST("/:id/status", h.AdvanceStatus)
		group.POST("/:id/cancel", h.Cancel)
	}

	g.GET("/availability", h.CheckAvailability)
}
