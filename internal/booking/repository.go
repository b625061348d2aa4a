package booking

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
	// Admit inserts the booking if and only if every night of its window
	// stays within the room type's capacity, serialized per room type.
	// Fills in ID and timestamps on success.
	Admit(ctx context.Context, b *Booking) error

	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	UpdateStatus(ctx context.Context, id string, status Status) error

	// ListHolding returns the capacity-holding bookings of a room type that
	// overlap the window.
	ListHolding(ctx context.Context, roomTypeID string, window daterange.Range) ([]*Booking, error)

	// ListHoldingForRoomTypes is the batch form used by availability checks
	// over a whole listing and by windowed search.
	ListHoldingForRoomTypes(ctx context.Context, roomTypeIDs []string, window daterange.Range) (map[string][]*Booking, error)

	// ListStaleRequested returns non-deleted requested bookings created
	// before the cutoff, for the external housekeeping job.
	ListStaleRequested(ctx context.Context, cutoff time.Time) ([]*Booking, error)
}

type pgxRepository struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
}

func NewPgxRepository(pool *pgxpool.Pool, lockTimeout time.Duration) Repository {
	if lockTimeout <= 0 {
		lockTimeout = 3 * time.Second
	}
	return &pgxRepository{pool: pool, lockTimeout: lockTimeout}
}

var holdingStatuses = []string{
	string(StatusRequested),
	string(StatusConfirmed),
	string(StatusCheckedIn),
}

var bookingColumns = []string{
	"id", "room_type_id", "listing_id", "user_id",
	"checkin", "checkout", "party_size", "status", "deleted",
	"created_at", "updated_at",
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID, &b.RoomTypeID, &b.ListingID, &b.UserID,
		&b.Checkin, &b.Checkout, &b.PartySize, &b.Status, &b.Deleted,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Admit runs the full read-check-write admission inside one transaction,
// holding a row lock on the room type so concurrent admissions for the same
// unit serialize (pessimistic strategy). Lock waits beyond the configured
// timeout surface as ErrRetryable with the transaction rolled back, leaving
// no partial row.
func (r *pgxRepository) Admit(ctx context.Context, b *Booking) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin admission tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())); err != nil {
		return fmt.Errorf("set lock timeout failed: %w", err)
	}

	// Serialization scope: the room type row, not the whole table.
	var capacity int
	var active bool
	err = tx.QueryRow(ctx,
		"SELECT capacity, active FROM public.room_types WHERE id = $1 FOR UPDATE",
		b.RoomTypeID,
	).Scan(&capacity, &active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrRoomTypeNotFound
		}
		if isLockContention(err) {
			return ErrRetryable.WithCause(err)
		}
		return fmt.Errorf("lock room type failed: %w", err)
	}
	if !active {
		return ErrRoomTypeNotFound
	}

	window := b.Window()

	holding, err := r.listHoldingTx(ctx, tx, b.RoomTypeID, window)
	if err != nil {
		return err
	}
	if !CanHost(window, capacity, b.PartySize, holding) {
		return ErrCapacityExceeded
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("room_type_id", "listing_id", "user_id", "checkin", "checkout", "party_size", "status").
		Values(b.RoomTypeID, b.ListingID, b.UserID, b.Checkin, b.Checkout, b.PartySize, b.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert booking query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if isLockContention(err) {
			return ErrRetryable.WithCause(err)
		}
		return fmt.Errorf("insert booking failed: %w", err)
	}

	// Post-write recheck of the invariant including the new row. Can only
	// fail if something bypassed the lock; roll back and page the operator.
	holding, err = r.listHoldingTx(ctx, tx, b.RoomTypeID, window)
	if err != nil {
		return err
	}
	if Overcommitted(window, capacity, holding) {
		return ErrConsistencyViolation
	}

	if err := tx.Commit(ctx); err != nil {
		if isLockContention(err) {
			return ErrRetryable.WithCause(err)
		}
		return fmt.Errorf("commit admission failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) listHoldingTx(ctx context.Context, tx pgx.Tx, roomTypeID string, window daterange.Range) ([]*Booking, error) {
	sql, args, err := holdingQuery([]string{roomTypeID}, window).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build holding bookings query failed: %w", err)
	}

	rows, err := tx.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("holding bookings failed: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

// holdingQuery selects the capacity-holding bookings overlapping the window.
// Half-open overlap: checkin < window end AND checkout > window start.
func holdingQuery(roomTypeIDs []string, window daterange.Range) squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return psql.Select(bookingColumns...).
		From("public.bookings").
		Where(squirrel.Eq{"room_type_id": roomTypeIDs}).
		Where(squirrel.Eq{"deleted": false}).
		Where(squirrel.Eq{"status": holdingStatuses}).
		Where(squirrel.Lt{"checkin": window.Checkout}).
		Where(squirrel.Gt{"checkout": window.Checkin})
}

func collectBookings(rows pgx.Rows) ([]*Booking, error) {
	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *pgxRepository) ListHolding(ctx context.Context, roomTypeID string, window daterange.Range) ([]*Booking, error) {
	sql, args, err := holdingQuery([]string{roomTypeID}, window).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build holding bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("holding bookings failed: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *pgxRepository) ListHoldingForRoomTypes(ctx context.Context, roomTypeIDs []string, window daterange.Range) (map[string][]*Booking, error) {
	byRoom := make(map[string][]*Booking, len(roomTypeIDs))
	if len(roomTypeIDs) == 0 {
		return byRoom, nil
	}

	sql, args, err := holdingQuery(roomTypeIDs, window).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build holding bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("holding bookings failed: %w", err)
	}
	defer rows.Close()

	bookings, err := collectBookings(rows)
	if err != nil {
		return nil, err
	}
	for _, b := range bookings {
		byRoom[b.RoomTypeID] = append(byRoom[b.RoomTypeID], b)
	}
	return byRoom, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns...).
		From("public.bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	columns := append(append([]string{}, bookingColumns...), "count(*) OVER() as total_count")
	query := psql.Select(columns...).
		From("public.bookings").
		Where(squirrel.Eq{"deleted": false})

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	if filter.RoomTypeID != "" {
		query = query.Where(squirrel.Eq{"room_type_id": filter.RoomTypeID})
	}
	if filter.ListingID != "" {
		query = query.Where(squirrel.Eq{"listing_id": filter.ListingID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
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
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.RoomTypeID, &b.ListingID, &b.UserID,
			&b.Checkin, &b.Checkout, &b.PartySize, &b.Status, &b.Deleted,
			&b.CreatedAt, &b.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListStaleRequested(ctx context.Context, cutoff time.Time) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select(bookingColumns...).
		From("public.bookings").
		Where(squirrel.Eq{"status": StatusRequested}).
		Where(squirrel.Eq{"deleted": false}).
		Where(squirrel.Lt{"created_at": cutoff}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build stale requested query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("stale requested bookings failed: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

// isLockContention classifies SQLSTATEs that mean "try again", not "give up".
func isLockContention(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case pgerrcode.LockNotAvailable, pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected:
		return true
	}
	return false
}
