package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hyein-dev/stayhub-backend/internal/listing"
	"github.com/hyein-dev/stayhub-backend/internal/pkg/request"
	"github.com/hyein-dev/stayhub-backend/internal/pkg/response"
)

type Handler struct {
	service listing.Service
}

func NewHandler(service listing.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateListingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	l, err := h.service.Create(c.Request.Context(), listing.CreateRequest{
		HostID:      body.HostID,
		Name:        body.Name,
		Description: body.Description,
		City:        body.City,
		District:    body.District,
		Township:    body.Township,
		Latitude:    body.Latitude,
		Longitude:   body.Longitude,
		BasePrice:   body.BasePrice,
		Themes:      body.Themes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewListingResponse(l))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	l, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewListingResponse(l))
}

func (h *Handler) List(c *gin.Context) {
	page, pageSize := request.Page(c, 20, 100)

	filter := listing.Filter{
		HostID:        c.Query("host_id"),
		ApprovalState: c.Query("approval_state"),
		Page:          page,
		PageSize:      pageSize,
	}

	listings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ListingResponse, len(listings))
	for i, l := range listings {
		items[i] = NewListingResponse(l)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateListingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	l, err := h.service.Update(c.Request.Context(), id, listing.UpdateRequest{
		Name:        body.Name,
		Description: body.Description,
		City:        body.City,
		District:    body.District,
		Township:    body.Township,
		Latitude:    body.Latitude,
		Longitude:   body.Longitude,
		BasePrice:   body.BasePrice,
		Active:      body.Active,
		Themes:      body.Themes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewListingResponse(l))
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

func (h *Handler) SetApproval(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body SetApprovalBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.service.SetApproval(c.Request.Context(), id, listing.ApprovalState(body.State)); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) UpdateRating(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateRatingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.service.UpdateRatingStats(c.Request.Context(), id, body.Rating, body.ReviewCount); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
