package http

import (
	"time"

	"github.com/hyein-dev/stayhub-backend/internal/listing"
)

type CreateListingBody struct {
	HostID      string   `json:"host_id" binding:"required,uuid"`
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	City        string   `json:"city"`
	District    string   `json:"district"`
	Township    string   `json:"township"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	BasePrice   int      `json:"base_price"`
	Themes      []string `json:"themes"`
}

type UpdateListingBody struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	City        *string  `json:"city"`
	District    *string  `json:"district"`
	Township    *string  `json:"township"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	BasePrice   *int     `json:"base_price"`
	Active      *bool    `json:"active"`
	Themes      []string `json:"themes"`
}

type SetApprovalBody struct {
	State string `json:"state" binding:"required"`
}

type UpdateRatingBody struct {
	Rating      float64 `json:"rating" binding:"min=0,max=5"`
	ReviewCount int     `json:"review_count" binding:"min=0"`
}

type ListingResponse struct {
	ID            string    `json:"id"`
	HostID        string    `json:"host_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	City          string    `json:"city"`
	District      string    `json:"district"`
	Township      string    `json:"township"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	BasePrice     int       `json:"base_price"`
	ApprovalState string    `json:"approval_state"`
	Active        bool      `json:"active"`
	Rating        float64   `json:"rating"`
	ReviewCount   int       `json:"review_count"`
	Themes        []string  `json:"themes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewListingResponse(l *listing.Listing) ListingResponse {
	themes := l.Themes
	if themes == nil {
		themes = []string{}
	}
	return ListingResponse{
		ID:            l.ID,
		HostID:        l.HostID,
		Name:          l.Name,
		Description:   l.Description,
		City:          l.City,
		District:      l.District,
		Township:      l.Township,
		Latitude:      l.Latitude,
		Longitude:     l.Longitude,
		BasePrice:     l.BasePrice,
		ApprovalState: string(l.ApprovalState),
		Active:        l.Active,
		Rating:        l.Rating,
		ReviewCount:   l.ReviewCount,
		Themes:        themes,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}
