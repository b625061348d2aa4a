package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		checkin  time.Time
		checkout time.Time
		wantErr  error
	}{
		{"valid one night", date(2026, 2, 10), date(2026, 2, 11), nil},
		{"valid multi night", date(2026, 2, 10), date(2026, 2, 14), nil},
		{"checkout equals checkin", date(2026, 2, 10), date(2026, 2, 10), ErrInvalidRange},
		{"checkout before checkin", date(2026, 2, 12), date(2026, 2, 10), ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.checkin, tt.checkout)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.checkin, r.Checkin)
			assert.Equal(t, tt.checkout, r.Checkout)
		})
	}
}

func TestNewNormalizesToMidnightUTC(t *testing.T) {
	loc := time.FixedZone("KST", 9*3600)
	r, err := New(
		time.Date(2026, 2, 10, 15, 30, 0, 0, loc),
		time.Date(2026, 2, 12, 9, 0, 0, 0, loc),
	)
	require.NoError(t, err)
	assert.Equal(t, date(2026, 2, 10), r.Checkin)
	assert.Equal(t, date(2026, 2, 12), r.Checkout)
}

func TestNights(t *testing.T) {
	r, err := New(date(2026, 2, 10), date(2026, 2, 13))
	require.NoError(t, err)

	var nights []time.Time
	for n := range r.Nights() {
		nights = append(nights, n)
	}
	assert.Equal(t, []time.Time{
		date(2026, 2, 10),
		date(2026, 2, 11),
		date(2026, 2, 12),
	}, nights)
	assert.Equal(t, 3, r.NightCount())
}

func TestNightsRestartable(t *testing.T) {
	r, err := New(date(2026, 2, 10), date(2026, 2, 12))
	require.NoError(t, err)

	seq := r.Nights()

	first := 0
	for range seq {
		first++
		break
	}
	assert.Equal(t, 1, first)

	second := 0
	for range seq {
		second++
	}
	assert.Equal(t, 2, second)
}

func TestOverlaps(t *testing.T) {
	base, err := New(date(2026, 2, 10), date(2026, 2, 14))
	require.NoError(t, err)

	tests := []struct {
		name     string
		checkin  time.Time
		checkout time.Time
		want     bool
	}{
		{"identical", date(2026, 2, 10), date(2026, 2, 14), true},
		{"contained", date(2026, 2, 11), date(2026, 2, 13), true},
		{"partial left", date(2026, 2, 8), date(2026, 2, 11), true},
		{"partial right", date(2026, 2, 13), date(2026, 2, 16), true},
		{"back to back before", date(2026, 2, 8), date(2026, 2, 10), false},
		{"back to back after", date(2026, 2, 14), date(2026, 2, 16), false},
		{"disjoint", date(2026, 3, 1), date(2026, 3, 5), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other, err := New(tt.checkin, tt.checkout)
			require.NoError(t, err)
			assert.Equal(t, tt.want, base.Overlaps(other))
			assert.Equal(t, tt.want, other.Overlaps(base))
		})
	}
}

func TestIntersect(t *testing.T) {
	base, _ := New(date(2026, 2, 10), date(2026, 2, 14))

	other, _ := New(date(2026, 2, 12), date(2026, 2, 20))
	got, ok := base.Intersect(other)
	require.True(t, ok)
	assert.Equal(t, date(2026, 2, 12), got.Checkin)
	assert.Equal(t, date(2026, 2, 14), got.Checkout)

	disjoint, _ := New(date(2026, 2, 14), date(2026, 2, 16))
	_, ok = base.Intersect(disjoint)
	assert.False(t, ok)
}

func TestContains(t *testing.T) {
	r, _ := New(date(2026, 2, 10), date(2026, 2, 12))

	assert.True(t, r.Contains(date(2026, 2, 10)))
	assert.True(t, r.Contains(date(2026, 2, 11)))
	assert.False(t, r.Contains(date(2026, 2, 12))) // checkout night is not part of the stay
	assert.False(t, r.Contains(date(2026, 2, 9)))
}
