package roomtype

import (
	"net/http"
	"time"

	"github.com/hyein-dev/stayhub-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "room type not found")
	ErrListingNotFound = apperror.New(http.StatusNotFound, "listing not found")
	ErrEmptyName       = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrInvalidCapacity = apperror.New(http.StatusBadRequest, "capacity cannot be negative")
	ErrInvalidPrice    = apperror.New(http.StatusBadRequest, "nightly price cannot be negative")
)

// RoomType is a bookable unit category within a listing. Capacity is the
// maximum number of simultaneous guests the unit can host on any night.
type RoomType struct {
	ID           string
	ListingID    string
	Name         string
	Capacity     int
	NightlyPrice int
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Filter defines parameters for listing room types.
type Filter struct {
	ListingID  string
	ActiveOnly bool
	Page       int
	PageSize   int
}
