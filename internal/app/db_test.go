package app

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rafeeazmi/employee-portal/internal/domain"
)

func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("skipping Postgres integration tests: TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Skipf("skipping Postgres integration tests: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func TestPostgresStore(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	loc := time.FixedZone("office", 2*60*60)
	store := NewPostgresStore(pool, loc)

	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	// Applying twice must be harmless.
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema again: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE room_bookings RESTART IDENTITY`); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	at := func(h, m int) time.Time { return time.Date(2025, 3, 10, h, m, 0, 0, loc) }
	booking := func(roomID string, start, end time.Time) domain.Booking {
		return domain.Booking{
			RoomID:        roomID,
			Title:         "Standup",
			Interval:      domain.Interval{Start: start, End: end},
			AttendeeCount: 3,
			BookedBy:      "David Kim",
		}
	}

	first, err := store.Insert(ctx, booking("room-1", at(9, 0), at(10, 0)))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if first.ID == "" {
		t.Fatalf("expected id to be assigned")
	}

	t.Run("overlap is refused by the database", func(t *testing.T) {
		_, err := store.Insert(ctx, booking("room-1", at(9, 30), at(10, 30)))
		if !errors.Is(err, domain.ErrSchedulingConflict) {
			t.Fatalf("expected ErrSchedulingConflict, got %v", err)
		}
	})

	t.Run("adjacent and other-room bookings are accepted", func(t *testing.T) {
		if _, err := store.Insert(ctx, booking("room-1", at(10, 0), at(11, 0))); err != nil {
			t.Fatalf("expected adjacent booking to be accepted, got %v", err)
		}
		if _, err := store.Insert(ctx, booking("room-2", at(9, 30), at(10, 30))); err != nil {
			t.Fatalf("expected other-room booking to be accepted, got %v", err)
		}
	})

	t.Run("invalid interval is refused", func(t *testing.T) {
		_, err := store.Insert(ctx, booking("room-3", at(11, 0), at(10, 0)))
		if !errors.Is(err, domain.ErrInvalidInterval) {
			t.Fatalf("expected ErrInvalidInterval, got %v", err)
		}
	})

	t.Run("lists keep insertion order and wall clock", func(t *testing.T) {
		got, err := store.ListByRoom(ctx, "room-1")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 bookings, got %d", len(got))
		}
		if got[0].ID != first.ID {
			t.Fatalf("expected first inserted booking first")
		}
		if !got[0].Interval.Start.Equal(at(9, 0)) || got[0].Interval.Start.Location() != loc {
			t.Fatalf("expected 09:00 in office zone, got %v", got[0].Interval.Start)
		}

		all, err := store.ListAll(ctx)
		if err != nil {
			t.Fatalf("list all: %v", err)
		}
		if len(all) != 3 {
			t.Fatalf("expected 3 bookings, got %d", len(all))
		}

		none, err := store.ListByRoom(ctx, "room-9")
		if err != nil || len(none) != 0 {
			t.Fatalf("expected empty list, got %v %v", none, err)
		}
	})
}
