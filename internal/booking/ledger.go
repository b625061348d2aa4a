package booking

import (
	"time"

	"github.com/hyein-dev/stayhub-backend/internal/pkg/daterange"
)

// NightlyLoad aggregates the committed guest count per night of the window.
// Each capacity-holding booking contributes its party size to every night in
// the intersection of its stay with the window. Cancelled and soft-deleted
// bookings contribute nothing.
func NightlyLoad(window daterange.Range, bookings []*Booking) map[time.Time]int {
	load := make(map[time.Time]int, window.NightCount())
	for night := range window.Nights() {
		load[night] = 0
	}

	for _, b := range bookings {
		if b.Deleted || !b.Status.HoldsCapacity() {
			continue
		}
		shared, ok := window.Intersect(b.Window())
		if !ok {
			continue
		}
		for night := range shared.Nights() {
			load[night] += b.PartySize
		}
	}
	return load
}
