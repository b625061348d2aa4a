package http

import (
	"time"

	"github.com/hyein-dev/stayhub-backend/internal/roomtype"
)

type CreateRoomTypeBody struct {
	Name         string `json:"name" binding:"required"`
	Capacity     int    `json:"capacity" binding:"min=0"`
	NightlyPrice int    `json:"nightly_price" binding:"min=0"`
}

type UpdateRoomTypeBody struct {
	Name         *string `json:"name"`
	Capacity     *int    `json:"capacity"`
	NightlyPrice *int    `json:"nightly_price"`
	Active       *bool   `json:"active"`
}

type RoomTypeResponse struct {
	ID           string    `json:"id"`
	ListingID    string    `json:"listing_id"`
	Name         string    `json:"name"`
	Capacity     int       `json:"capacity"`
	NightlyPrice int       `json:"nightly_price"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewRoomTypeResponse(rt *roomtype.RoomType) RoomTypeResponse {
	return RoomTypeResponse{
		ID:           rt.ID,
		ListingID:    rt.ListingID,
		Name:         rt.Name,
		Capacity:     rt.Capacity,
		NightlyPrice: rt.NightlyPrice,
		Active:       rt.Active,
		CreatedAt:    rt.CreatedAt,
		UpdatedAt:    rt.UpdatedAt,
	}
}
