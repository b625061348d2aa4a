package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	rts := g.Group("/room-types")
	{
		rts.GET("", h.List)
		rts.GET("/:id", h.Get)
		rts.PATCH("/:id", h.Update)
		rts.DELETE("/:id", h.Delete)
	}

	// Nested under the owning listing
	listings := g.Group("/listings/:id/room-types")
	{
		listings.POST("", h.Create)
		listings.GET("", h.ListByListing)
	}
}
