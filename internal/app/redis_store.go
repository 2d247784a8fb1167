package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/rafeeazmi/employee-portal/internal/domain"
)

const redisTimeLayout = "2006-01-02 15:04:05"

// RedisStore keeps each booking as JSON under booking:<id> and preserves
// insertion order with one ID list per room plus a global list.
type RedisStore struct {
	client *redis.Client
	prefix string
	loc    *time.Location
}

type redisBooking struct {
	ID            string `json:"id"`
	RoomID        string `json:"roomId"`
	Title         string `json:"title"`
	Start         string `json:"start"`
	End           string `json:"end"`
	AttendeeCount int    `json:"attendeeCount"`
	BookedBy      string `json:"bookedBy"`
}

// NewRedisStore namespaces keys with prefix (may be empty).
func NewRedisStore(client *redis.Client, prefix string, loc *time.Location) *RedisStore {
	if loc == nil {
		loc = time.Local
	}
	return &RedisStore{client: client, prefix: prefix, loc: loc}
}

func (s *RedisStore) bookingKey(id string) string { return s.prefix + "booking:" + id }
func (s *RedisStore) roomKey(roomID string) string { return s.prefix + "room:" + roomID + ":bookings" }
func (s *RedisStore) allKey() string               { return s.prefix + "bookings" }

func (s *RedisStore) Insert(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	b.ID = uuid.New().String()
	data, err := json.Marshal(redisBooking{
		ID:            b.ID,
		RoomID:        b.RoomID,
		Title:         b.Title,
		Start:         b.Interval.Start.Format(redisTimeLayout),
		End:           b.Interval.End.Format(redisTimeLayout),
		AttendeeCount: b.AttendeeCount,
		BookedBy:      b.BookedBy,
	})
	if err != nil {
		return domain.Booking{}, fmt.Errorf("encode booking: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, s.bookingKey(b.ID), data, 0)
		p.RPush(ctx, s.roomKey(b.RoomID), b.ID)
		p.RPush(ctx, s.allKey(), b.ID)
		return nil
	})
	if err != nil {
		return domain.Booking{}, fmt.Errorf("store booking: %w", err)
	}
	return b, nil
}

func (s *RedisStore) ListByRoom(ctx context.Context, roomID string) ([]domain.Booking, error) {
	return s.list(ctx, s.roomKey(roomID))
}

func (s *RedisStore) ListAll(ctx context.Context) ([]domain.Booking, error) {
	return s.list(ctx, s.allKey())
}

func (s *RedisStore) list(ctx context.Context, listKey string) ([]domain.Booking, error) {
	ids, err := s.client.LRange(ctx, listKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", listKey, err)
	}
	out := make([]domain.Booking, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.bookingKey(id)
	}
	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("read bookings: %w", err)
	}

	for i, v := range vals {
		raw, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("booking %s is listed but missing", ids[i])
		}
		b, err := s.decode(raw)
		if err != nil {
			return nil, fmt.Errorf("decode booking %s: %w", ids[i], err)
		}
		out = append(out, b)
	}
	return out, nil
}

func (s *RedisStore) decode(raw string) (domain.Booking, error) {
	var rb redisBooking
	if err := json.Unmarshal([]byte(raw), &rb); err != nil {
		return domain.Booking{}, err
	}
	start, err := time.ParseInLocation(redisTimeLayout, rb.Start, s.loc)
	if err != nil {
		return domain.Booking{}, err
	}
	end, err := time.ParseInLocation(redisTimeLayout, rb.End, s.loc)
	if err != nil {
		return domain.Booking{}, err
	}
	return domain.Booking{
		ID:            rb.ID,
		RoomID:        rb.RoomID,
		Title:         rb.Title,
		Interval:      domain.Interval{Start: start, End: end},
		AttendeeCount: rb.AttendeeCount,
		BookedBy:      rb.BookedBy,
	}, nil
}
