package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyein-dev/stayhub-backend/internal/booking"
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

// fakeRepository serves a fixed candidate set; the windowless Page/Count pair
// is exercised through searchStatic's caching behavior only.
type fakeRepository struct {
	candidates []*candidate
	pageCalls  int
}

func (r *fakeRepository) Page(_ context.Context, q Query, cfg RankingConfig) ([]Summary, error) {
	r.pageCalls++
	hits := make([]Summary, 0, len(r.candidates))
	for _, c := range r.candidates {
		hit := c.Summary
		hit.Score = cfg.Score(hit.Rating, hit.ReviewCount)
		hits = append(hits, hit)
	}
	sortHits(hits, q)
	return hits, nil
}

func (r *fakeRepository) Count(context.Context, Query) (int, error) {
	return len(r.candidates), nil
}

func (r *fakeRepository) Candidates(context.Context, Query) ([]*candidate, error) {
	return r.candidates, nil
}

// fakeSource holds the capacity-holding bookings per room type.
type fakeSource struct {
	holding map[string][]*booking.Booking
}

func (s *fakeSource) ListHoldingForRoomTypes(_ context.Context, roomTypeIDs []string, window daterange.Range) (map[string][]*booking.Booking, error) {
	out := make(map[string][]*booking.Booking, len(roomTypeIDs))
	for _, id := range roomTypeIDs {
		for _, b := range s.holding[id] {
			if window.Overlaps(b.Window()) {
				out[id] = append(out[id], b)
			}
		}
	}
	return out, nil
}

func testCandidate(listingID string, rating float64, reviews int, rooms ...candidateRoomType) *candidate {
	return &candidate{
		Summary: Summary{
			ListingID:   listingID,
			Name:        "Listing " + listingID,
			Rating:      rating,
			ReviewCount: reviews,
		},
		RoomTypes: rooms,
	}
}

func TestWindowedSearchExcludesFullyBookedWindow(t *testing.T) {
	repo := &fakeRepository{candidates: []*candidate{
		testCandidate("l1", 4.5, 50, candidateRoomType{ID: "r1", Capacity: 2, NightlyPrice: 100}),
		testCandidate("l2", 4.0, 30, candidateRoomType{ID: "r2", Capacity: 2, NightlyPrice: 80}),
	}}

	// r1 is fully booked Feb 10-12
	source := &fakeSource{holding: map[string][]*booking.Booking{
		"r1": {{
			RoomTypeID: "r1",
			Checkin:    date(2026, 2, 10),
			Checkout:   date(2026, 2, 12),
			PartySize:  2,
			Status:     booking.StatusConfirmed,
		}},
	}}

	svc := NewService(repo, source, nil, DefaultRankingConfig())

	w := window(t, date(2026, 2, 10), date(2026, 2, 12))
	res, err := svc.Search(context.Background(), Query{Window: &w, PartySize: 2})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "l2", res.Items[0].ListingID)
	assert.Equal(t, 1, res.TotalElements)

	// the nights after checkout are free again
	w2 := window(t, date(2026, 2, 12), date(2026, 2, 14))
	res, err = svc.Search(context.Background(), Query{Window: &w2, PartySize: 2})
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)
}

func TestWindowedSearchPriceFromQualifyingRoomsOnly(t *testing.T) {
	// the cheap room cannot take the party, so the listing's effective
	// minimum price must come from the big room
	repo := &fakeRepository{candidates: []*candidate{
		testCandidate("l1", 4.5, 50,
			candidateRoomType{ID: "cheap", Capacity: 2, NightlyPrice: 60},
			candidateRoomType{ID: "big", Capacity: 6, NightlyPrice: 140},
		),
	}}
	source := &fakeSource{}

	svc := NewService(repo, source, nil, DefaultRankingConfig())
	w := window(t, date(2026, 2, 10), date(2026, 2, 12))

	res, err := svc.Search(context.Background(), Query{Window: &w, PartySize: 4})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, 140, res.Items[0].MinPrice)
	assert.Equal(t, 6, res.Items[0].MaxPartySize)

	// a price band below the effective minimum excludes the listing
	maxPrice := 100
	res, err = svc.Search(context.Background(), Query{Window: &w, PartySize: 4, MaxPrice: &maxPrice})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
}

func TestWindowedSearchSortAndPagination(t *testing.T) {
	repo := &fakeRepository{candidates: []*candidate{
		testCandidate("l1", 4.8, 150, candidateRoomType{ID: "r1", Capacity: 4, NightlyPrice: 120}),
		testCandidate("l2", 4.9, 3, candidateRoomType{ID: "r2", Capacity: 4, NightlyPrice: 90}),
		testCandidate("l3", 3.5, 400, candidateRoomType{ID: "r3", Capacity: 4, NightlyPrice: 70}),
	}}
	source := &fakeSource{}
	svc := NewService(repo, source, nil, DefaultRankingConfig())
	w := window(t, date(2026, 2, 10), date(2026, 2, 12))

	// default recommend order: proven rating beats sparse high rating
	res, err := svc.Search(context.Background(), Query{Window: &w, PartySize: 2})
	require.NoError(t, err)
	require.Len(t, res.Items, 3)
	assert.Equal(t, "l1", res.Items[0].ListingID)

	// price ascending
	res, err = svc.Search(context.Background(), Query{Window: &w, PartySize: 2, Sort: SortPrice})
	require.NoError(t, err)
	assert.Equal(t, []string{"l3", "l2", "l1"}, listingIDs(res.Items))

	// second page of size 2 holds the remainder, total spans all hits
	res, err = svc.Search(context.Background(), Query{Window: &w, PartySize: 2, Sort: SortPrice, Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"l1"}, listingIDs(res.Items))
	assert.Equal(t, 3, res.TotalElements)

	// page past the end is empty, not an error
	res, err = svc.Search(context.Background(), Query{Window: &w, PartySize: 2, Page: 9, PageSize: 2})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, 3, res.TotalElements)
}

func TestWindowedSearchDeterministicTiebreak(t *testing.T) {
	// identical ratings and prices must still order stably by id
	repo := &fakeRepository{candidates: []*candidate{
		testCandidate("l2", 4.0, 10, candidateRoomType{ID: "r2", Capacity: 2, NightlyPrice: 100}),
		testCandidate("l1", 4.0, 10, candidateRoomType{ID: "r1", Capacity: 2, NightlyPrice: 100}),
	}}
	svc := NewService(repo, &fakeSource{}, nil, DefaultRankingConfig())
	w := window(t, date(2026, 2, 10), date(2026, 2, 12))

	for range 3 {
		res, err := svc.Search(context.Background(), Query{Window: &w, PartySize: 2})
		require.NoError(t, err)
		assert.Equal(t, []string{"l1", "l2"}, listingIDs(res.Items))
	}
}

func TestStaticSearchUsesCacheKey(t *testing.T) {
	a := Query{Keyword: "beach", Themes: []string{"ocean", "family"}}.Normalize()
	b := Query{Keyword: " Beach ", Themes: []string{"family", "ocean"}}.Normalize()
	assert.Equal(t, a.CacheKey(), b.CacheKey(), "keyword case and theme order do not split cache entries")

	w := window(t, date(2026, 2, 10), date(2026, 2, 12))
	c := a
	c.Window = &w
	assert.NotEqual(t, a.CacheKey(), c.CacheKey())
}

func TestQueryNormalize(t *testing.T) {
	q := Query{}.Normalize()
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 20, q.PageSize)
	assert.Equal(t, SortRecommend, q.Sort)
	assert.Equal(t, "desc", q.Order)

	q = Query{PageSize: 500, Sort: SortPrice}.Normalize()
	assert.Equal(t, 100, q.PageSize)
	assert.Equal(t, "asc", q.Order, "price sorts ascending by default")
}

func listingIDs(items []Summary) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ListingID
	}
	return ids
}
