package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hyein-dev/stayhub-backend/internal/pkg/request"
	"github.com/hyein-dev/stayhub-backend/internal/pkg/response"
	"github.com/hyein-dev/stayhub-backend/internal/roomtype"
)

type Handler struct {
	service roomtype.Service
}

func NewHandler(service roomtype.Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /listings/:id/room-types.
func (h *Handler) Create(c *gin.Context) {
	listingID := c.Param("id")
	if _, err := uuid.Parse(listingID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body CreateRoomTypeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	rt, err := h.service.Create(c.Request.Context(), roomtype.CreateRequest{
		ListingID:    listingID,
		Name:         body.Name,
		Capacity:     body.Capacity,
		NightlyPrice: body.NightlyPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewRoomTypeResponse(rt))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	rt, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewRoomTypeResponse(rt))
}

// ListByListing handles GET /listings/:id/room-types.
func (h *Handler) ListByListing(c *gin.Context) {
	listingID := c.Param("id")
	if _, err := uuid.Parse(listingID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	activeOnly := c.Query("active_only") == "true"

	roomTypes, err := h.service.ListByListing(c.Request.Context(), listingID, activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RoomTypeResponse, len(roomTypes))
	for i, rt := range roomTypes {
		items[i] = NewRoomTypeResponse(rt)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) List(c *gin.Context) {
	page, pageSize := request.Page(c, 20, 100)

	filter := roomtype.Filter{
		ListingID:  c.Query("listing_id"),
		ActiveOnly: c.Query("active_only") == "true",
		Page:       page,
		PageSize:   pageSize,
	}

	roomTypes, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RoomTypeResponse, len(roomTypes))
	for i, rt := range roomTypes {
		items[i] = NewRoomTypeResponse(rt)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateRoomTypeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rt, err := h.service.Update(c.Request.Context(), id, roomtype.UpdateRequest{
		Name:         body.Name,
		Capacity:     body.Capacity,
		NightlyPrice: body.NightlyPrice,
		Active:       body.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewRoomTypeResponse(rt))
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
