package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hyein-dev/stayhub-backend/internal/pkg/daterange"
	"github.com/hyein-dev/stayhub-backend/internal/pkg/request"
)

type SortKey string

const (
	SortRecommend   SortKey = "recommend"
	SortPrice       SortKey = "price"
	SortRating      SortKey = "rating"
	SortReviewCount SortKey = "review_count"
	SortID          SortKey = "id"
)

func (k SortKey) Valid() bool {
	switch k {
	case SortRecommend, SortPrice, SortRating, SortReviewCount, SortID:
		return true
	}
	return false
}

// Bounds is a normalized geographic bounding box.
type Bounds struct {
	South float64
	North float64
	West  float64
	East  float64
}

// NewBounds orders the corners so callers may pass them either way around.
func NewBounds(lat1, lat2, lng1, lng2 float64) Bounds {
	return Bounds{
		South: min(lat1, lat2),
		North: max(lat1, lat2),
		West:  min(lng1, lng2),
		East:  max(lng1, lng2),
	}
}

// Query is the full filter set of a listing search. Every field is optional;
// absent filters do not constrain the candidate set.
type Query struct {
	Keyword   string
	Themes    []string
	Bounds    *Bounds
	PartySize int
	MinPrice  *int
	MaxPrice  *int
	Window    *daterange.Range
	Page      int
	PageSize  int
	Sort      SortKey
	Order     string // "asc" or "desc"; empty picks the key's natural order
}

// Normalize fills defaults and clamps pagination.
func (q Query) Normalize() Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 20
	}
	if q.PageSize > 100 {
		q.PageSize = 100
	}
	if !q.Sort.Valid() {
		q.Sort = SortRecommend
	}
	if q.Order != "asc" && q.Order != "desc" {
		q.Order = q.Sort.naturalOrder()
	}
	return q
}

func (k SortKey) naturalOrder() string {
	switch k {
	case SortPrice, SortID:
		return "asc"
	}
	return "desc"
}

// CacheKey renders the query as a canonical string so identical searches hit
// the same cache entry regardless of filter ordering in the request.
func (q Query) CacheKey() string {
	var sb strings.Builder
	sb.WriteString("search:v1")
	fmt.Fprintf(&sb, "|kw=%s", strings.ToLower(strings.TrimSpace(q.Keyword)))

	themes := append([]string{}, q.Themes...)
	sort.Strings(themes)
	fmt.Fprintf(&sb, "|themes=%s", strings.Join(themes, ","))

	if q.Bounds != nil {
		fmt.Fprintf(&sb, "|bbox=%.6f,%.6f,%.6f,%.6f", q.Bounds.South, q.Bounds.North, q.Bounds.West, q.Bounds.East)
	}
	fmt.Fprintf(&sb, "|party=%d", q.PartySize)
	if q.MinPrice != nil {
		fmt.Fprintf(&sb, "|minp=%d", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		fmt.Fprintf(&sb, "|maxp=%d", *q.MaxPrice)
	}
	if q.Window != nil {
		fmt.Fprintf(&sb, "|stay=%s_%s",
			q.Window.Checkin.Format(request.DateLayout),
			q.Window.Checkout.Format(request.DateLayout))
	}
	fmt.Fprintf(&sb, "|page=%d,%d|sort=%s,%s", q.Page, q.PageSize, q.Sort, q.Order)
	return sb.String()
}

// Summary is one ranked search hit.
type Summary struct {
	ListingID        string  `json:"listing_id"`
	Name             string  `json:"name"`
	ShortDescription string  `json:"short_description"`
	City             string  `json:"city"`
	District         string  `json:"district"`
	Township         string  `json:"township"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	MinPrice         int     `json:"min_price"`
	MaxPartySize     int     `json:"max_party_size"`
	Rating           float64 `json:"rating"`
	ReviewCount      int     `json:"review_count"`
	Score            float64 `json:"score"`
}

// Result is one page of hits plus the predicate-wide total.
type Result struct {
	Items         []Summary `json:"items"`
	TotalElements int       `json:"total_elements"`
}

// candidateRoomType is the slice of room type state the windowed path needs.
type candidateRoomType struct {
	ID           string
	Capacity     int
	NightlyPrice int
}

// candidate is a listing passing the static predicates, before availability
// evaluation.
type candidate struct {
	Summary
	BasePrice int
	RoomTypes []candidateRoomType
}
