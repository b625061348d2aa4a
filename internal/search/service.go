package search

import (
	"context"
	"sort"

	"github.com/hyein-dev/stayhub-backend/internal/booking"
	"github.com/hyein-dev/stayhub-backend/internal/pkg/cache"
	"github.com/hyein-dev/stayhub-backend/internal/pkg/daterange"
)

// AvailabilitySource provides the capacity-holding bookings the windowed path
// feeds into the evaluator. The booking repository satisfies it, so search
// and admission read the exact same rows.
type AvailabilitySource interface {
	ListHoldingForRoomTypes(ctx context.Context, roomTypeIDs []string, window daterange.Range) (map[string][]*booking.Booking, error)
}

type Service interface {
	Search(ctx context.Context, q Query) (*Result, error)
}

type service struct {
	repo    Repository
	source  AvailabilitySource
	cache   *cache.TwoLevel
	ranking RankingConfig
}

// NewService builds the search index. cache may be nil to disable caching.
func NewService(repo Repository, source AvailabilitySource, c *cache.TwoLevel, ranking RankingConfig) Service {
	return &service{
		repo:    repo,
		source:  source,
		cache:   c,
		ranking: ranking,
	}
}

func (s *service) Search(ctx context.Context, q Query) (*Result, error) {
	q = q.Normalize()

	if q.Window == nil {
		return s.searchStatic(ctx, q)
	}
	return s.searchWindowed(ctx, q)
}

// searchStatic is the windowless path: ranking and pagination in SQL, the
// total via the predicate-only count query, results cached.
func (s *service) searchStatic(ctx context.Context, q Query) (*Result, error) {
	key := q.CacheKey()
	if s.cache != nil {
		var cached Result
		if s.cache.Get(key, &cached) {
			return &cached, nil
		}
	}

	items, err := s.repo.Page(ctx, q, s.ranking)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, q)
	if err != nil {
		return nil, err
	}

	if items == nil {
		items = []Summary{}
	}
	result := &Result{Items: items, TotalElements: total}
	if s.cache != nil {
		s.cache.Set(key, result)
	}
	return result, nil
}

// searchWindowed narrows by static predicates in SQL, then runs the same
// CanHost evaluation admission uses over every candidate room type. Listings
// whose room types cannot all host the window drop out, and price/capacity
// figures come from the qualifying room types only. Results are not cached:
// they move with every admission and cancellation.
func (s *service) searchWindowed(ctx context.Context, q Query) (*Result, error) {
	window := *q.Window

	candidates, err := s.repo.Candidates(ctx, q)
	if err != nil {
		return nil, err
	}

	var roomTypeIDs []string
	for _, c := range candidates {
		for _, rt := range c.RoomTypes {
			roomTypeIDs = append(roomTypeIDs, rt.ID)
		}
	}

	holding, err := s.source.ListHoldingForRoomTypes(ctx, roomTypeIDs, window)
	if err != nil {
		return nil, err
	}

	var hits []Summary
	for _, c := range candidates {
		minPrice := 0
		maxCapacity := 0
		qualified := false

		for _, rt := range c.RoomTypes {
			if q.PartySize > 0 && rt.Capacity < q.PartySize {
				continue
			}
			if !booking.CanHost(window, rt.Capacity, q.PartySize, holding[rt.ID]) {
				continue
			}
			if !qualified || rt.NightlyPrice < minPrice {
				minPrice = rt.NightlyPrice
			}
			if rt.Capacity > maxCapacity {
				maxCapacity = rt.Capacity
			}
			qualified = true
		}
		if !qualified {
			continue
		}

		if q.MinPrice != nil && minPrice < *q.MinPrice {
			continue
		}
		if q.MaxPrice != nil && minPrice > *q.MaxPrice {
			continue
		}

		hit := c.Summary
		hit.MinPrice = minPrice
		hit.MaxPartySize = maxCapacity
		hit.Score = s.ranking.Score(hit.Rating, hit.ReviewCount)
		hits = append(hits, hit)
	}

	sortHits(hits, q)

	total := len(hits)
	start := (q.Page - 1) * q.PageSize
	if start > total {
		start = total
	}
	end := start + q.PageSize
	if end > total {
		end = total
	}

	items := make([]Summary, end-start)
	copy(items, hits[start:end])
	return &Result{Items: items, TotalElements: total}, nil
}

// sortHits mirrors the SQL order clause so the two paths rank identically.
func sortHits(hits []Summary, q Query) {
	desc := q.Order == "desc"

	less := func(a, b Summary) bool {
		var cmp int
		switch q.Sort {
		case SortPrice:
			cmp = a.MinPrice - b.MinPrice
		case SortRating:
			cmp = compareFloat(a.Rating, b.Rating)
		case SortReviewCount:
			cmp = a.ReviewCount - b.ReviewCount
		case SortID:
			cmp = compareString(a.ListingID, b.ListingID)
		default:
			cmp = compareFloat(a.Score, b.Score)
		}
		if cmp != 0 {
			if desc {
				return cmp > 0
			}
			return cmp < 0
		}
		// stable id tiebreak for deterministic paging
		return a.ListingID < b.ListingID
	}

	sort.Slice(hits, func(i, j int) bool { return less(hits[i], hits[j]) })
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
