package http

import (
	"time"

	"github.com/hyein-dev/stayhub-backend/internal/pkg/request"
	"github.com/hyein-dev/stayhub-backend/internal/waitlist"
)

type JoinWaitlistBody struct {
	UserID     string `json:"user_id" binding:"required,uuid"`
	RoomTypeID string `json:"room_type_id" binding:"required,uuid"`
	Checkin    string `json:"checkin" binding:"required"`
	Checkout   string `json:"checkout" binding:"required"`
	PartySize  int    `json:"party_size" binding:"required,min=1"`
}

type LeaveWaitlistBody struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

type WaitlistEntryResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	RoomTypeID string    `json:"room_type_id"`
	ListingID  string    `json:"listing_id"`
	Checkin    string    `json:"checkin"`
	Checkout   string    `json:"checkout"`
	PartySize  int       `json:"party_size"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

func toEntryResponse(e *waitlist.Entry) WaitlistEntryResponse {
	return WaitlistEntryResponse{
		ID:         e.ID,
		UserID:     e.UserID,
		RoomTypeID: e.RoomTypeID,
		ListingID:  e.ListingID,
		Checkin:    e.Checkin.Format(request.DateLayout),
		Checkout:   e.Checkout.Format(request.DateLayout),
		PartySize:  e.PartySize,
		Status:     string(e.Status),
		CreatedAt:  e.CreatedAt,
	}
}
