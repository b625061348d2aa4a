package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hyein-dev/stayhub-backend/internal/booking"
	"github.com/hyein-dev/stayhub-backend/internal/pkg/request"
	"github.com/hyein-dev/stayhub-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingBody
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

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		UserID:     body.UserID,
		RoomTypeID: body.RoomTypeID,
		Checkin:    checkin,
		Checkout:   checkout,
		PartySize:  body.PartySize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) List(c *gin.Context) {
	page, pageSize := request.Page(c, 20, 100)

	filter := booking.Filter{
		UserID:     c.Query("user_id"),
		RoomTypeID: c.Query("room_type_id"),
		ListingID:  c.Query("listing_id"),
		Status:     c.Query("status"),
		Page:       page,
		PageSize:   pageSize,
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

// AdvanceStatus handles POST /bookings/:id/status, driven by external
// payment confirmation and check-in signals.
func (h *Handler) AdvanceStatus(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body AdvanceStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	b, err := h.service.AdvanceStatus(c.Request.Context(), id, booking.Status(body.Status))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// ListStale handles GET /bookings/stale?cutoff=RFC3339, the read path for the
// external housekeeping job that expires abandoned requests.
func (h *Handler) ListStale(c *gin.Context) {
	cutoffStr := c.Query("cutoff")
	cutoff, err := time.Parse(time.RFC3339, cutoffStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cutoff must be an RFC3339 timestamp"})
		return
	}

	bookings, err := h.service.ListStaleRequested(c.Request.Context(), cutoff)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// CheckAvailability handles GET /availability. With room_type_id it answers
// a boolean plus remaining capacity; with listing_id it answers the set of
// bookable room type ids. party_size omitted or 0 means whole-unit mode.
func (h *Handler) CheckAvailability(c *gin.Context) {
	checkin, err := request.ParseDate(c.Query("checkin"))
	if err != nil {
		response.Error(c, err)
		return
	}
	checkout, err := request.ParseDate(c.Query("checkout"))
	if err != nil {
		response.Error(c, err)
		return
	}

	partySize := 0
	if v := c.Query("party_size"); v != "" {
		n, perr := strconv.Atoi(v)
		if perr != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "party_size must be a non-negative integer"})
			return
		}
		partySize = n
	}

	roomTypeID := c.Query("room_type_id")
	listingID := c.Query("listing_id")

	switch {
	case roomTypeID != "":
		if _, err := uuid.Parse(roomTypeID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room_type_id"})
			return
		}
		av, err := h.service.CheckAvailability(c.Request.Context(), roomTypeID, checkin, checkout, partySize)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, AvailabilityResponse{Available: av.Available, Remaining: av.Remaining})

	case listingID != "":
		if _, err := uuid.Parse(listingID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing_id"})
			return
		}
		ids, err := h.service.AvailableRoomTypes(c.Request.Context(), listingID, checkin, checkout, partySize)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, AvailableRoomTypesResponse{RoomTypeIDs: ids})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "room_type_id or listing_id is required"})
	}
}
