package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository feeds the search index from the relational store. The windowless
// path ranks and paginates in SQL; the windowed path only narrows by static
// predicates and leaves availability to the evaluator.
type Repository interface {
	// Page returns one ranked page for a query without a stay window.
	Page(ctx context.Context, q Query, cfg RankingConfig) ([]Summary, error)
	// Count is the predicate-only total for the same query; it shares the
	// filter set with Page but skips joins needed only for ranking output.
	Count(ctx context.Context, q Query) (int, error)
	// Candidates returns every listing passing the static predicates along
	// with its active room types, for availability-aware evaluation.
	Candidates(ctx context.Context, q Query) ([]*candidate, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// staticPredicates applies the filters that do not depend on a stay window:
// visibility, keyword, themes, bounding box.
func staticPredicates(b squirrel.SelectBuilder, q Query) squirrel.SelectBuilder {
	b = b.Where(squirrel.Eq{"l.approval_state": "approved"}).
		Where(squirrel.Eq{"l.active": true})

	if kw := strings.TrimSpace(q.Keyword); kw != "" {
		pattern := "%" + kw + "%"
		b = b.Where(squirrel.Or{
			squirrel.ILike{"l.name": pattern},
			squirrel.Expr("concat_ws(' ', l.city, l.district, l.township) ILIKE ?", pattern),
		})
	}
	if len(q.Themes) > 0 {
		b = b.Where(squirrel.Expr(
			"EXISTS (SELECT 1 FROM public.listing_themes lt WHERE lt.listing_id = l.id AND lt.theme = ANY(?))",
			q.Themes,
		))
	}
	if q.Bounds != nil {
		b = b.Where(squirrel.Expr("l.latitude BETWEEN ? AND ?", q.Bounds.South, q.Bounds.North)).
			Where(squirrel.Expr("l.longitude BETWEEN ? AND ?", q.Bounds.West, q.Bounds.East))
	}
	return b
}

// roomStatsJoin aggregates each listing's active room types into a static
// minimum price and maximum capacity, capacity-filtered when a party size is
// requested.
func roomStatsJoin(b squirrel.SelectBuilder, q Query) squirrel.SelectBuilder {
	join := `LEFT JOIN (
		SELECT listing_id, MIN(nightly_price) AS min_price, MAX(capacity) AS max_capacity
		FROM public.room_types
		WHERE active`
	var args []any
	if q.PartySize > 0 {
		join += " AND capacity >= ?"
		args = append(args, q.PartySize)
	}
	join += `
		GROUP BY listing_id
	) rt ON rt.listing_id = l.id`
	return b.JoinClause(squirrel.Expr(join, args...))
}

// staticPricePredicates applies party-size and price-band filters against
// the aggregated room stats (no window: static minimum price).
func staticPricePredicates(b squirrel.SelectBuilder, q Query) squirrel.SelectBuilder {
	if q.PartySize > 0 {
		b = b.Where(squirrel.Expr("COALESCE(rt.max_capacity, 0) >= ?", q.PartySize))
	}
	if q.MinPrice != nil {
		b = b.Where(squirrel.Expr("COALESCE(rt.min_price, l.base_price) >= ?", *q.MinPrice))
	}
	if q.MaxPrice != nil {
		b = b.Where(squirrel.Expr("COALESCE(rt.min_price, l.base_price) <= ?", *q.MaxPrice))
	}
	return b
}

func orderClause(q Query) string {
	dir := "DESC"
	if q.Order == "asc" {
		dir = "ASC"
	}
	// l.id tiebreak keeps paging deterministic for equal sort values
	switch q.Sort {
	case SortPrice:
		return "effective_price " + dir + ", l.id ASC"
	case SortRating:
		return "l.rating " + dir + ", l.id ASC"
	case SortReviewCount:
		return "l.review_count " + dir + ", l.id ASC"
	case SortID:
		return "l.id " + dir
	default:
		return "score " + dir + ", l.id ASC"
	}
}

func (r *pgxRepository) Page(ctx context.Context, q Query, cfg RankingConfig) ([]Summary, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	// Prior constants are configuration, never user input.
	scoreExpr := fmt.Sprintf(
		"(l.review_count * l.rating + %.4f) / (l.review_count + %.4f) AS score",
		cfg.PriorWeight*cfg.PriorMean, cfg.PriorWeight,
	)

	query := psql.Select(
		"l.id", "l.name", "l.description", "l.city", "l.district", "l.township",
		"l.latitude", "l.longitude",
		"COALESCE(rt.min_price, l.base_price) AS effective_price",
		"COALESCE(rt.max_capacity, 0) AS max_capacity",
		"l.rating", "l.review_count",
		scoreExpr,
	).From("public.listings l")

	query = roomStatsJoin(query, q)
	query = staticPredicates(query, q)
	query = staticPricePredicates(query, q)

	offset := (q.Page - 1) * q.PageSize
	query = query.OrderBy(orderClause(q)).
		Limit(uint64(q.PageSize)).
		Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search page query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("search page failed: %w", err)
	}
	defer rows.Close()

	var items []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(
			&s.ListingID, &s.Name, &s.ShortDescription, &s.City, &s.District, &s.Township,
			&s.Latitude, &s.Longitude,
			&s.MinPrice, &s.MaxPartySize,
			&s.Rating, &s.ReviewCount,
			&s.Score,
		); err != nil {
			return nil, fmt.Errorf("scan search hit failed: %w", err)
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

func (r *pgxRepository) Count(ctx context.Context, q Query) (int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	query := psql.Select("count(*)").From("public.listings l")
	query = roomStatsJoin(query, q)
	query = staticPredicates(query, q)
	query = staticPricePredicates(query, q)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build search count query failed: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("search count failed: %w", err)
	}
	return total, nil
}

func (r *pgxRepository) Candidates(ctx context.Context, q Query) ([]*candidate, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	query := psql.Select(
		"l.id", "l.name", "l.description", "l.city", "l.district", "l.township",
		"l.latitude", "l.longitude", "l.base_price", "l.rating", "l.review_count",
	).From("public.listings l")
	query = staticPredicates(query, q)

	sql, args, err := query.OrderBy("l.id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search candidates query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("search candidates failed: %w", err)
	}
	defer rows.Close()

	var candidates []*candidate
	byID := make(map[string]*candidate)
	for rows.Next() {
		var c candidate
		if err := rows.Scan(
			&c.ListingID, &c.Name, &c.ShortDescription, &c.City, &c.District, &c.Township,
			&c.Latitude, &c.Longitude, &c.BasePrice, &c.Rating, &c.ReviewCount,
		); err != nil {
			return nil, fmt.Errorf("scan search candidate failed: %w", err)
		}
		candidates = append(candidates, &c)
		byID[c.ListingID] = &c
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return candidates, nil
	}

	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.ListingID
	}

	rtSQL, rtArgs, err := psql.Select("id", "listing_id", "capacity", "nightly_price").
		From("public.room_types").
		Where(squirrel.Eq{"active": true}).
		Where(squirrel.Eq{"listing_id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build candidate room types query failed: %w", err)
	}

	rtRows, err := r.pool.Query(ctx, rtSQL, rtArgs...)
	if err != nil {
		return nil, fmt.Errorf("candidate room types failed: %w", err)
	}
	defer rtRows.Close()

	for rtRows.Next() {
		var rt candidateRoomType
		var listingID string
		if err := rtRows.Scan(&rt.ID, &listingID, &rt.Capacity, &rt.NightlyPrice); err != nil {
			return nil, fmt.Errorf("scan candidate room type failed: %w", err)
		}
		if c, ok := byID[listingID]; ok {
			c.RoomTypes = append(c.RoomTypes, rt)
		}
	}
	return candidates, rtRows.Err()
}
