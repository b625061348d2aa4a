package booking

import (
	"net/http"
	"time"

	"github.com/hyein-dev/stayhub-backend/internal/pkg/apperror"
	"github.com/hyein-dev/stayhub-backend/internal/pkg/daterange"
)

var (
	ErrNotFound             = apperror.New(http.StatusNotFound, "booking not found")
	ErrRoomTypeNotFound     = apperror.New(http.StatusNotFound, "room type not found")
	ErrInvalidPartySize     = apperror.New(http.StatusBadRequest, "party size must be at least 1")
	ErrInvalidStatus        = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrInvalidTransition    = apperror.New(http.StatusConflict, "invalid booking status transition")
	ErrCapacityExceeded     = apperror.New(http.StatusConflict, "not enough capacity for the requested window")
	ErrRetryable            = apperror.New(http.StatusServiceUnavailable, "booking contention, please retry")
	ErrConsistencyViolation = apperror.New(http.StatusInternalServerError, "capacity invariant violated after write")
)

// ErrInvalidRange is shared with the date range layer so callers can
// distinguish validation failures from capacity failures.
var ErrInvalidRange = daterange.ErrInvalidRange

type Status string

const (
	StatusRequested Status = "requested"
	StatusConfirmed Status = "confirmed"
	StatusCheckedIn Status = "checked_in"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusRequested, StatusConfirmed, StatusCheckedIn, StatusCancelled:
		return true
	}
	return false
}

// HoldsCapacity reports whether a booking in this status occupies its nights.
// A requested booking holds capacity until it is confirmed, cancelled, or
// expired by the housekeeping job; without that, concurrent requests for the
// last spot could all be admitted.
func (s Status) HoldsCapacity() bool {
	switch s {
	case StatusRequested, StatusConfirmed, StatusCheckedIn:
		return true
	}
	return false
}

// Booking is a stay of PartySize guests in one room type over the half-open
// window [Checkin, Checkout). The window and party size are immutable after
// admission; cancel and rebook to change them.
type Booking struct {
	ID         string
	RoomTypeID string
	ListingID  string
	UserID     string
	Checkin    time.Time
	Checkout   time.Time
	PartySize  int
	Status     Status
	Deleted    bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Window returns the stay window of the booking.
func (b *Booking) Window() daterange.Range {
	return daterange.Range{
		Checkin:  daterange.Normalize(b.Checkin),
		Checkout: daterange.Normalize(b.Checkout),
	}
}

// Filter defines parameters for listing bookings.
type Filter struct {
	UserID     string
	RoomTypeID string
	ListingID  string
	Status     string
	Page       int
	PageSize   int
}
