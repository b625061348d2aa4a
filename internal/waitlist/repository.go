package waitlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hyein-dev/stayhub-backend/internal/pkg/daterange"
)

type Repository interface {
	Create(ctx context.Context, e *Entry) error
	GetByID(ctx context.Context, id string) (*Entry, error)
	Delete(ctx context.Context, id string) error

	// ListWaitingOverlapping returns WAITING entries for the room type whose
	// desired window overlaps the freed window, oldest first.
	ListWaitingOverlapping(ctx context.Context, roomTypeID string, window daterange.Range) ([]*Entry, error)

	MarkNotified(ctx context.Context, id string) error

	// PurgeOlderThan removes entries past the retention horizon.
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var entryColumns = []string{
	"id", "user_id", "room_type_id", "listing_id",
	"checkin", "checkout", "party_size", "status", "created_at",
}

func scanEntry(row pgx.Row) (*Entry, error) {
	var e Entry
	err := row.Scan(
		&e.ID, &e.UserID, &e.RoomTypeID, &e.ListingID,
		&e.Checkin, &e.Checkout, &e.PartySize, &e.Status, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *pgxRepository) Create(ctx context.Context, e *Entry) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.waitlist_entries").
		Columns("user_id", "room_type_id", "listing_id", "checkin", "checkout", "party_size", "status").
		Values(e.UserID, e.RoomTypeID, e.ListingID, e.Checkin, e.Checkout, e.PartySize, e.Status).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create waitlist entry query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&e.ID, &e.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateRequest
		}
		return fmt.Errorf("create waitlist entry failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Entry, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(entryColumns...).
		From("public.waitlist_entries").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get waitlist entry query failed: %w", err)
	}

	e, err := scanEntry(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get waitlist entry failed: %w", err)
	}
	return e, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.waitlist_entries").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete waitlist entry query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete waitlist entry failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListWaitingOverlapping(ctx context.Context, roomTypeID string, window daterange.Range) ([]*Entry, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(entryColumns...).
		From("public.waitlist_entries").
		Where(squirrel.Eq{"room_type_id": roomTypeID}).
		Where(squirrel.Eq{"status": StatusWaiting}).
		Where(squirrel.Lt{"checkin": window.Checkout}).
		Where(squirrel.Gt{"checkout": window.Checkin}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build waiting entries query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("waiting entries failed: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan waitlist entry failed: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *pgxRepository) MarkNotified(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.waitlist_entries").
		Set("status", StatusNotified).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build mark notified query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("mark notified failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.waitlist_entries").
		Where(squirrel.Lt{"created_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build purge waitlist query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("purge waitlist failed: %w", err)
	}
	return int(ct.RowsAffected()), nil
}
