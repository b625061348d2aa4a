package listing

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, l *Listing) error
	GetByID(ctx context.Context, id string) (*Listing, error)
	List(ctx context.Context, filter Filter) ([]*Listing, int, error)
	Update(ctx context.Context, l *Listing) error
	Delete(ctx context.Context, id string) error
	SetApprovalState(ctx context.Context, id string, state ApprovalState) error
	UpdateRatingStats(ctx context.Context, id string, rating float64, reviewCount int) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, l *Listing) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.listings").
		Columns(
			"host_id", "name", "description", "city", "district", "township",
			"latitude", "longitude", "base_price", "approval_state", "active",
		).
		Values(
			l.HostID, l.Name, l.Description, l.City, l.District, l.Township,
			l.Latitude, l.Longitude, l.BasePrice, l.ApprovalState, l.Active,
		).
		Suffix("RETURNING id, rating, review_count, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create listing query failed: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).
		Scan(&l.ID, &l.Rating, &l.ReviewCount, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create listing failed: %w", err)
	}

	return r.replaceThemes(ctx, l.ID, l.Themes)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Listing, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "host_id", "name", "description", "city", "district", "township",
		"latitude", "longitude", "base_price", "approval_state", "active",
		"rating", "review_count", "created_at", "updated_at",
	).
		From("public.listings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get listing query failed: %w", err)
	}

	var l Listing
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&l.ID, &l.HostID, &l.Name, &l.Description, &l.City, &l.District, &l.Township,
		&l.Latitude, &l.Longitude, &l.BasePrice, &l.ApprovalState, &l.Active,
		&l.Rating, &l.ReviewCount, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get listing failed: %w", err)
	}

	l.Themes, err = r.themesOf(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Listing, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "host_id", "name", "description", "city", "district", "township",
		"latitude", "longitude", "base_price", "approval_state", "active",
		"rating", "review_count", "created_at", "updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.listings")

	if filter.HostID != "" {
		query = query.Where(squirrel.Eq{"host_id": filter.HostID})
	}
	if filter.ApprovalState != "" {
		query = query.Where(squirrel.Eq{"approval_state": filter.ApprovalState})
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.OrderBy("created_at DESC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list listings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list listings failed: %w", err)
	}
	defer rows.Close()

	var listings []*Listing
	var total int

	for rows.Next() {
		var l Listing
		if err := rows.Scan(
			&l.ID, &l.HostID, &l.Name, &l.Description, &l.City, &l.District, &l.Township,
			&l.Latitude, &l.Longitude, &l.BasePrice, &l.ApprovalState, &l.Active,
			&l.Rating, &l.ReviewCount, &l.CreatedAt, &l.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan listing failed: %w", err)
		}
		listings = append(listings, &l)
	}

	return listings, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, l *Listing) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.listings").
		Set("name", l.Name).
		Set("description", l.Description).
		Set("city", l.City).
		Set("district", l.District).
		Set("township", l.Township).
		Set("latitude", l.Latitude).
		Set("longitude", l.Longitude).
		Set("base_price", l.BasePrice).
		Set("active", l.Active).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": l.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update listing query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update listing failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}

	return r.replaceThemes(ctx, l.ID, l.Themes)
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.listings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete listing query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete listing failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) SetApprovalState(ctx context.Context, id string, state ApprovalState) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.listings").
		Set("approval_state", state).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set approval query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set approval state failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) UpdateRatingStats(ctx context.Context, id string, rating float64, reviewCount int) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.listings").
		Set("rating", rating).
		Set("review_count", reviewCount).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update rating query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update rating stats failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) themesOf(ctx context.Context, listingID string) ([]string, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("theme").
		From("public.listing_themes").
		Where(squirrel.Eq{"listing_id": listingID}).
		OrderBy("theme").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build themes query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get themes failed: %w", err)
	}
	defer rows.Close()

	var themes []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan theme failed: %w", err)
		}
		themes = append(themes, t)
	}
	return themes, nil
}

func (r *pgxRepository) replaceThemes(ctx context.Context, listingID string, themes []string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	query, args, err := psql.Delete("public.listing_themes").
		Where(squirrel.Eq{"listing_id": listingID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build clear themes query failed: %w", err)
	}
	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("clear themes failed: %w", err)
	}

	if len(themes) == 0 {
		return nil
	}

	insert := psql.Insert("public.listing_themes").Columns("listing_id", "theme")
	for _, t := range themes {
		insert = insert.Values(listingID, t)
	}
	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("build insert themes query failed: %w", err)
	}
	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert themes failed: %w", err)
	}
	return nil
}
