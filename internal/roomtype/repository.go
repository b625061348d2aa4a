package roomtype

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, rt *RoomType) error
	GetByID(ctx context.Context, id string) (*RoomType, error)
	List(ctx context.Context, filter Filter) ([]*RoomType, int, error)
	ListByListing(ctx context.Context, listingID string, activeOnly bool) ([]*RoomType, error)
	Update(ctx context.Context, rt *RoomType) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, rt *RoomType) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.room_types").
		Columns("listing_id", "name", "capacity", "nightly_price", "active").
		Values(rt.ListingID, rt.Name, rt.Capacity, rt.NightlyPrice, rt.Active).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create room type query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&rt.ID, &rt.CreatedAt, &rt.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*RoomType, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "listing_id", "name", "capacity", "nightly_price", "active",
		"created_at", "updated_at",
	).
		From("public.room_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get room type query failed: %w", err)
	}

	var rt RoomType
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&rt.ID, &rt.ListingID, &rt.Name, &rt.Capacity, &rt.NightlyPrice, &rt.Active,
		&rt.CreatedAt, &rt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get room type failed: %w", err)
	}
	return &rt, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*RoomType, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "listing_id", "name", "capacity", "nightly_price", "active",
		"created_at", "updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.room_types")

	if filter.ListingID != "" {
		query = query.Where(squirrel.Eq{"listing_id": filter.ListingID})
	}
	if filter.ActiveOnly {
		query = query.Where(squirrel.Eq{"active": true})
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.OrderBy("created_at ASC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list room types query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list room types failed: %w", err)
	}
	defer rows.Close()

	var roomTypes []*RoomType
	var total int

	for rows.Next() {
		var rt RoomType
		if err := rows.Scan(
			&rt.ID, &rt.ListingID, &rt.Name, &rt.Capacity, &rt.NightlyPrice, &rt.Active,
			&rt.CreatedAt, &rt.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan room type failed: %w", err)
		}
		roomTypes = append(roomTypes, &rt)
	}

	return roomTypes, total, nil
}

func (r *pgxRepository) ListByListing(ctx context.Context, listingID string, activeOnly bool) ([]*RoomType, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "listing_id", "name", "capacity", "nightly_price", "active",
		"created_at", "updated_at",
	).
		From("public.room_types").
		Where(squirrel.Eq{"listing_id": listingID})

	if activeOnly {
		query = query.Where(squirrel.Eq{"active": true})
	}

	sql, args, err := query.OrderBy("created_at ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build room types by listing query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("room types by listing failed: %w", err)
	}
	defer rows.Close()

	var roomTypes []*RoomType
	for rows.Next() {
		var rt RoomType
		if err := rows.Scan(
			&rt.ID, &rt.ListingID, &rt.Name, &rt.Capacity, &rt.NightlyPrice, &rt.Active,
			&rt.CreatedAt, &rt.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan room type failed: %w", err)
		}
		roomTypes = append(roomTypes, &rt)
	}
	return roomTypes, nil
}

func (r *pgxRepository) Update(ctx context.Context, rt *RoomType) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.room_types").
		Set("name", rt.Name).
		Set("capacity", rt.Capacity).
		Set("nightly_price", rt.NightlyPrice).
		Set("active", rt.Active).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": rt.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update room type query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update room type failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.room_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete room type query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete room type failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
