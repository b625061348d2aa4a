package events

import "time"

// CapacityReleased is emitted after a committed booking stops holding its
// nights (cancellation or stale-request expiry). The waitlist consumer uses
// it to wake overlapping waiters.
type CapacityReleased struct {
	RoomTypeID string    `json:"room_type_id"`
	ListingID  string    `json:"listing_id"`
	Checkin    time.Time `json:"checkin"`
	Checkout   time.Time `json:"checkout"`
	ReleasedAt time.Time `json:"released_at"`
}
