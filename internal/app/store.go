package app

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/rafeeazmi/employee-portal/internal/domain"
)

// BookingStore keeps bookings per room. Implementations assign IDs on
// Insert and return bookings in insertion order.
type BookingStore interface {
	Insert(ctx context.Context, b domain.Booking) (domain.Booking, error)
	ListByRoom(ctx context.Context, roomID string) ([]domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
}

// MemoryStore is an arena of bookings with a per-room index into it.
type MemoryStore struct {
	mu       sync.RWMutex
	bookings []domain.Booking
	byRoom   map[string][]int
	newID    func() string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byRoom: make(map[string][]int),
		newID:  func() string { return uuid.New().String() },
	}
}

func (s *MemoryStore) Insert(_ context.Context, b domain.Booking) (domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b.ID = s.newID()
	s.bookings = append(s.bookings, b)
	s.byRoom[b.RoomID] = append(s.byRoom[b.RoomID], len(s.bookings)-1)
	return b, nil
}

func (s *MemoryStore) ListByRoom(_ context.Context, roomID string) ([]domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.byRoom[roomID]
	out := make([]domain.Booking, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.bookings[i])
	}
	return out, nil
}

func (s *MemoryStore) ListAll(_ context.Context) ([]domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Booking, len(s.bookings))
	copy(out, s.bookings)
	return out, nil
}
