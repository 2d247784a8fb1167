package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rafeeazmi/employee-portal/internal/domain"
)

const schemaLockID int64 = 640217001

// Times are stored as timestamp without time zone: bookings are naive
// wall-clock values. The exclusion constraint rejects overlapping [start, end)
// ranges in the same room even across processes.
const schema = `
CREATE EXTENSION IF NOT EXISTS btree_gist;

CREATE TABLE IF NOT EXISTS room_bookings (
	seq            BIGSERIAL UNIQUE,
	id             UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	room_id        TEXT NOT NULL,
	title          TEXT NOT NULL,
	start_at       TIMESTAMP NOT NULL,
	end_at         TIMESTAMP NOT NULL,
	attendee_count INTEGER NOT NULL CHECK (attendee_count >= 1),
	booked_by      TEXT NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT room_bookings_valid_interval CHECK (start_at < end_at),
	CONSTRAINT room_bookings_no_overlap EXCLUDE USING gist (
		room_id WITH =,
		tsrange(start_at, end_at, '[)') WITH &&
	)
);

CREATE INDEX IF NOT EXISTS room_bookings_room_seq_idx ON room_bookings (room_id, seq);
`

// PostgresStore is a BookingStore backed by a pgx pool.
type PostgresStore struct {
	pool *pgxpool.Pool
	loc  *time.Location
}

// NewPostgresStore reads stored wall-clock times back in loc (time.Local when nil).
func NewPostgresStore(pool *pgxpool.Pool, loc *time.Location) *PostgresStore {
	if loc == nil {
		loc = time.Local
	}
	return &PostgresStore{pool: pool, loc: loc}
}

// EnsureSchema creates the bookings table if needed. Concurrent callers are
// serialized with an advisory lock.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire conn: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, `SELECT pg_advisory_lock($1)`, schemaLockID); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}
	defer func() {
		_, _ = conn.Exec(context.Background(), `SELECT pg_advisory_unlock($1)`, schemaLockID)
	}()

	if _, err := conn.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Insert(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	q := `INSERT INTO room_bookings (room_id, title, start_at, end_at, attendee_count, booked_by)
	      VALUES ($1,$2,$3,$4,$5,$6) RETURNING id::text`

	err := s.pool.QueryRow(ctx, q,
		b.RoomID, b.Title, naive(b.Interval.Start), naive(b.Interval.End), b.AttendeeCount, b.BookedBy,
	).Scan(&b.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23P01":
				return domain.Booking{}, &domain.ConflictError{}
			case "23514":
				if pgErr.ConstraintName == "room_bookings_valid_interval" {
					return domain.Booking{}, domain.ErrInvalidInterval
				}
				return domain.Booking{}, domain.ErrInvalidAttendeeCount
			}
		}
		return domain.Booking{}, fmt.Errorf("insert booking: %w", err)
	}
	return b, nil
}

func (s *PostgresStore) ListByRoom(ctx context.Context, roomID string) ([]domain.Booking, error) {
	q := `SELECT id::text, room_id, title, start_at, end_at, attendee_count, booked_by
	      FROM room_bookings WHERE room_id=$1 ORDER BY seq`
	rows, err := s.pool.Query(ctx, q, roomID)
	if err != nil {
		return nil, fmt.Errorf("list bookings for room %s: %w", roomID, err)
	}
	return s.scanBookings(rows)
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]domain.Booking, error) {
	q := `SELECT id::text, room_id, title, start_at, end_at, attendee_count, booked_by
	      FROM room_bookings ORDER BY seq`
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return s.scanBookings(rows)
}

func (s *PostgresStore) scanBookings(rows pgx.Rows) ([]domain.Booking, error) {
	defer rows.Close()

	out := []domain.Booking{}
	for rows.Next() {
		var (
			b          domain.Booking
			start, end time.Time
		)
		if err := rows.Scan(&b.ID, &b.RoomID, &b.Title, &start, &end, &b.AttendeeCount, &b.BookedBy); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		b.Interval = domain.Interval{Start: wallClock(start, s.loc), End: wallClock(end, s.loc)}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}
	return out, nil
}

// naive drops the zone while keeping the wall clock, matching how a
// timestamp column stores it.
func naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// wallClock reinterprets a zone-less timestamp as a wall-clock time in loc.
func wallClock(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}
