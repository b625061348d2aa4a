package daterange

import (
	"iter"
	"net/http"
	"time"

	"github.com/hyein-dev/stayhub-backend/internal/pkg/apperror"
)

var ErrInvalidRange = apperror.New(http.StatusBadRequest, "checkout must be after checkin")

// Range is a half-open stay window [Checkin, Checkout) of calendar nights.
// Both bounds are normalized to midnight UTC.
type Range struct {
	Checkin  time.Time
	Checkout time.Time
}

// New builds a Range from checkin/checkout dates.
// It returns ErrInvalidRange unless checkout is strictly after checkin.
func New(checkin, checkout time.Time) (Range, error) {
	r := Range{
		Checkin:  Normalize(checkin),
		Checkout: Normalize(checkout),
	}
	if !r.Checkout.After(r.Checkin) {
		return Range{}, ErrInvalidRange
	}
	return r, nil
}

// Normalize truncates a timestamp to its calendar date at midnight UTC.
func Normalize(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Nights yields every night of the stay in order, checkin inclusive,
// checkout exclusive. The sequence is restartable: each range-over starts
// again from the first night.
func (r Range) Nights() iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		for d := r.Checkin; d.Before(r.Checkout); d = d.AddDate(0, 0, 1) {
			if !yield(d) {
				return
			}
		}
	}
}

// NightCount returns the number of nights in the window.
func (r Range) NightCount() int {
	return int(r.Checkout.Sub(r.Checkin).Hours() / 24)
}

// Overlaps reports whether two half-open windows share at least one night.
func (r Range) Overlaps(o Range) bool {
	return r.Checkin.Before(o.Checkout) && o.Checkin.Before(r.Checkout)
}

// Intersect returns the shared nights of two windows, if any.
func (r Range) Intersect(o Range) (Range, bool) {
	if !r.Overlaps(o) {
		return Range{}, false
	}
	out := r
	if o.Checkin.After(out.Checkin) {
		out.Checkin = o.Checkin
	}
	if o.Checkout.Before(out.Checkout) {
		out.Checkout = o.Checkout
	}
	return out, true
}

// Contains reports whether the given night falls inside the window.
func (r Range) Contains(night time.Time) bool {
	night = Normalize(night)
	return !night.Before(r.Checkin) && night.Before(r.Checkout)
}
