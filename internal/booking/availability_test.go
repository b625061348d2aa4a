package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyein-dev/stayhub-backend/internal/pkg/daterange"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func window(t *testing.T, checkin, checkout time.Time) daterange.Range {
	t.Helper()
	r, err := daterange.New(checkin, checkout)
	require.NoError(t, err)
	return r
}

func holdingBooking(checkin, checkout time.Time, partySize int, status Status) *Booking {
	return &Booking{
		Checkin:   checkin,
		Checkout:  checkout,
		PartySize: partySize,
		Status:    status,
	}
}

func TestNightlyLoad(t *testing.T) {
	w := window(t, date(2026, 2, 10), date(2026, 2, 13))

	holding := []*Booking{
		holdingBooking(date(2026, 2, 10), date(2026, 2, 12), 2, StatusConfirmed),
		holdingBooking(date(2026, 2, 11), date(2026, 2, 14), 3, StatusRequested),
		holdingBooking(date(2026, 2, 1), date(2026, 2, 5), 5, StatusConfirmed), // outside the window
	}

	load := NightlyLoad(w, holding)

	assert.Equal(t, map[time.Time]int{
		date(2026, 2, 10): 2,
		date(2026, 2, 11): 5,
		date(2026, 2, 12): 3,
	}, load)
}

func TestNightlyLoadSkipsNonHolding(t *testing.T) {
	w := window(t, date(2026, 2, 10), date(2026, 2, 12))

	cancelled := holdingBooking(date(2026, 2, 10), date(2026, 2, 12), 4, StatusCancelled)
	deleted := holdingBooking(date(2026, 2, 10), date(2026, 2, 12), 4, StatusConfirmed)
	deleted.Deleted = true

	load := NightlyLoad(w, []*Booking{cancelled, deleted})

	for night, occupied := range load {
		assert.Zero(t, occupied, "night %s should be empty", night)
	}
	assert.Len(t, load, 2)
}

func TestCanHostCapacityMode(t *testing.T) {
	w := window(t, date(2026, 2, 10), date(2026, 2, 13))

	tests := []struct {
		name      string
		capacity  int
		partySize int
		holding   []*Booking
		want      bool
	}{
		{
			name:      "empty room admits",
			capacity:  4,
			partySize: 4,
			want:      true,
		},
		{
			name:      "fills to exactly capacity",
			capacity:  6,
			partySize: 3,
			holding: []*Booking{
				holdingBooking(date(2026, 2, 10), date(2026, 2, 13), 3, StatusConfirmed),
			},
			want: true,
		},
		{
			name:      "one over capacity on a single night",
			capacity:  6,
			partySize: 3,
			holding: []*Booking{
				holdingBooking(date(2026, 2, 10), date(2026, 2, 13), 3, StatusConfirmed),
				holdingBooking(date(2026, 2, 12), date(2026, 2, 14), 1, StatusRequested),
			},
			want: false,
		},
		{
			name:      "back to back stays do not collide",
			capacity:  2,
			partySize: 2,
			holding: []*Booking{
				holdingBooking(date(2026, 2, 8), date(2026, 2, 10), 2, StatusConfirmed),
				holdingBooking(date(2026, 2, 13), date(2026, 2, 15), 2, StatusConfirmed),
			},
			want: true,
		},
		{
			name:      "requested bookings count against capacity",
			capacity:  2,
			partySize: 1,
			holding: []*Booking{
				holdingBooking(date(2026, 2, 10), date(2026, 2, 13), 2, StatusRequested),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanHost(w, tt.capacity, tt.partySize, tt.holding))
		})
	}
}

func TestCanHostExclusiveMode(t *testing.T) {
	w := window(t, date(2026, 2, 10), date(2026, 2, 13))

	// partySize 0 requests the whole unit
	assert.True(t, CanHost(w, 4, 0, nil))

	oneGuest := []*Booking{
		holdingBooking(date(2026, 2, 12), date(2026, 2, 14), 1, StatusConfirmed),
	}
	assert.False(t, CanHost(w, 4, 0, oneGuest), "any overlap blocks exclusive use")

	adjacent := []*Booking{
		holdingBooking(date(2026, 2, 13), date(2026, 2, 15), 4, StatusConfirmed),
	}
	assert.True(t, CanHost(w, 4, 0, adjacent))

	cancelled := []*Booking{
		holdingBooking(date(2026, 2, 10), date(2026, 2, 13), 4, StatusCancelled),
	}
	assert.True(t, CanHost(w, 4, 0, cancelled))
}

func TestRemainingCapacity(t *testing.T) {
	w := window(t, date(2026, 2, 10), date(2026, 2, 13))

	holding := []*Booking{
		holdingBooking(date(2026, 2, 10), date(2026, 2, 12), 2, StatusConfirmed),
		holdingBooking(date(2026, 2, 11), date(2026, 2, 13), 3, StatusConfirmed),
	}

	// peak night holds 5 guests
	assert.Equal(t, 1, RemainingCapacity(w, 6, holding))
	assert.Equal(t, 0, RemainingCapacity(w, 5, holding))
	// an overcommitted ledger clamps at zero
	assert.Equal(t, 0, RemainingCapacity(w, 4, holding))
	assert.Equal(t, 6, RemainingCapacity(w, 6, nil))
}

func TestOvercommitted(t *testing.T) {
	w := window(t, date(2026, 2, 10), date(2026, 2, 12))

	holding := []*Booking{
		holdingBooking(date(2026, 2, 10), date(2026, 2, 12), 3, StatusConfirmed),
	}

	assert.False(t, Overcommitted(w, 3, holding))
	assert.True(t, Overcommitted(w, 2, holding))
}
