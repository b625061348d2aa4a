package http

import (
	"time"

	"github.com/hyein-dev/stayhub-backend/internal/booking"
	"github.com/hyein-dev/stayhub-backend/internal/pkg/request"
)

type CreateBookingBody struct {
	UserID     string `json:"user_id" binding:"required,uuid"`
	RoomTypeID string `json:"room_type_id" binding:"required,uuid"`
	Checkin    string `json:"checkin" binding:"required"`
	Checkout   string `json:"checkout" binding:"required"`
	PartySize  int    `json:"party_size" binding:"required,min=1"`
}

type AdvanceStatusBody struct {
	Status string `json:"status" binding:"required"`
}

type BookingResponse struct {
	ID         string    `json:"id"`
	RoomTypeID string    `json:"room_type_id"`
	ListingID  string    `json:"listing_id"`
	UserID     string    `json:"user_id"`
	Checkin    string    `json:"checkin"`
	Checkout   string    `json:"checkout"`
	PartySize  int       `json:"party_size"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:         b.ID,
		RoomTypeID: b.RoomTypeID,
		ListingID:  b.ListingID,
		UserID:     b.UserID,
		Checkin:    b.Checkin.Format(request.DateLayout),
		Checkout:   b.Checkout.Format(request.DateLayout),
		PartySize:  b.PartySize,
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

type AvailabilityResponse struct {
	Available bool `json:"available"`
	Remaining int  `json:"remaining"`
}

type AvailableRoomTypesResponse struct {
	RoomTypeIDs []string `json:"room_type_ids"`
}
