package booking

import (
	"github.com/hyein-dev/stayhub-backend/internal/pkg/daterange"
)

// CanHost decides whether a room type of the given capacity can take a new
// stay over the window, given the bookings already holding capacity.
//
// With partySize <= 0 the check runs in exclusive mode: the whole unit is
// wanted, so any overlapping holding booking blocks it. With partySize > 0 it
// runs in capacity mode: every night must keep the aggregated guest count
// plus the new party within capacity.
//
// Admission, the availability API, and windowed search all route through this
// function so the three can never disagree.
func CanHost(window daterange.Range, capacity, partySize int, holding []*Booking) bool {
	if partySize <= 0 {
		for _, b := range holding {
			if b.Deleted || !b.Status.HoldsCapacity() {
				continue
			}
			if window.Overlaps(b.Window()) {
				return false
			}
		}
		return true
	}

	load := NightlyLoad(window, holding)
	for _, occupied := range load {
		if occupied+partySize > capacity {
			return false
		}
	}
	return true
}

// RemainingCapacity returns the minimum spare capacity over the window's
// nights. Never negative: an already-violated ledger reports zero.
func RemainingCapacity(window daterange.Range, capacity int, holding []*Booking) int {
	remaining := capacity
	for _, occupied := range NightlyLoad(window, holding) {
		if spare := capacity - occupied; spare < remaining {
			remaining = spare
		}
	}
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Overcommitted reports whether any night of the window exceeds capacity.
// Used by the post-write invariant recheck during admission.
func Overcommitted(window daterange.Range, capacity int, holding []*Booking) bool {
	for _, occupied := range NightlyLoad(window, holding) {
		if occupied > capacity {
			return true
		}
	}
	return false
}
