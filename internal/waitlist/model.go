package waitlist

import (
	"net/http"
	"time"

	"github.com/hyein-dev/stayhub-backend/internal/pkg/apperror"
	"github.com/hyein-dev/stayhub-backend/internal/pkg/daterange"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "waitlist entry not found")
	ErrDuplicateRequest = apperror.New(http.StatusConflict, "already waiting for this room and window")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
	ErrInvalidPartySize = apperror.New(http.StatusBadRequest, "party size must be at least 1")
)

type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusNotified Status = "notified"
)

// Entry is a queued interest in a room type over a stay window, created when
// admission fails on capacity. Oldest entries are notified first.
type Entry struct {
	ID         string
	UserID     string
	RoomTypeID string
	ListingID  string
	Checkin    time.Time
	Checkout   time.Time
	PartySize  int
	Status     Status
	CreatedAt  time.Time
}

// Window returns the desired stay window of the entry.
func (e *Entry) Window() daterange.Range {
	return daterange.Range{
		Checkin:  daterange.Normalize(e.Checkin),
		Checkout: daterange.Normalize(e.Checkout),
	}
}
