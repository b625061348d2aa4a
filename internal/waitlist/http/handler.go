package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hyein-dev/stayhub-backend/internal/pkg/request"
	"github.com/hyein-dev/stayhub-backend/internal/pkg/response"
	"github.com/hyein-dev/stayhub-backend/internal/waitlist"
)

type Handler struct {
	service waitlist.Service
}

func NewHandler(service waitlist.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Join(c *gin.Context) {
	var body JoinWaitlistBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	checkin, err := request.ParseDate(body.Checkin)
	if err != nil {
		response.Error(c, err)
		return
	}
	checkout, err := request.ParseDate(body.Checkout)
	if err != nil {
		response.Error(c, err)
		return
	}

	entry := &waitlist.Entry{
		UserID:     body.UserID,
		RoomTypeID: body.RoomTypeID,
		Checkin:    checkin,
		Checkout:   checkout,
		PartySize:  body.PartySize,
	}
	if err := h.service.Join(c.Request.Context(), entry); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, toEntryResponse(entry))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	e, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toEntryResponse(e))
}

func (h *Handler) Leave(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body LeaveWaitlistBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.service.Leave(c.Request.Context(), id, body.UserID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
