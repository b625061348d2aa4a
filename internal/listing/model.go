package listing

import (
	"net/http"
	"time"

	"github.com/hyein-dev/stayhub-backend/internal/pkg/apperror"
)

var (
	ErrNotFound             = apperror.New(http.StatusNotFound, "listing not found")
	ErrEmptyName            = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrInvalidCoordinates   = apperror.New(http.StatusBadRequest, "latitude/longitude out of range")
	ErrInvalidApprovalState = apperror.New(http.StatusBadRequest, "invalid approval state")
	ErrInvalidBasePrice     = apperror.New(http.StatusBadRequest, "base price cannot be negative")
)

type ApprovalState string

const (
	ApprovalPending  ApprovalState = "pending"
	ApprovalApproved ApprovalState = "approved"
	ApprovalRejected ApprovalState = "rejected"
)

func (s ApprovalState) Valid() bool {
	switch s {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	}
	return false
}

// Listing is a host-owned property. Only approved, active listings are
// visible to search and bookable.
type Listing struct {
	ID            string
	HostID        string
	Name          string
	Description   string
	City          string
	District      string
	Township      string
	Latitude      float64
	Longitude     float64
	BasePrice     int
	ApprovalState ApprovalState
	Active        bool
	Rating        float64
	ReviewCount   int
	Themes        []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Filter defines parameters for listing the host/admin inventory view.
type Filter struct {
	HostID        string
	ApprovalState string
	Page          int
	PageSize      int
}
