package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rafeeazmi/employee-portal/internal/clock"
	"github.com/rafeeazmi/employee-portal/internal/domain"
	"github.com/rafeeazmi/employee-portal/internal/schedule"
)

// BookingPublisher mirrors accepted bookings somewhere else, e.g. a calendar.
type BookingPublisher interface {
	PublishBooking(ctx context.Context, room domain.Room, b domain.Booking) error
}

type BookingService struct {
	store     BookingStore
	rooms     RoomRegistry
	clock     clock.Clock
	publisher BookingPublisher
	logger    *zap.Logger

	officeOpen  time.Duration
	officeClose time.Duration

	mu        sync.Mutex
	roomLocks map[string]*sync.Mutex
}

const (
	defaultOfficeOpen  = 8 * time.Hour
	defaultOfficeClose = 18 * time.Hour
	publishTimeout     = 5 * time.Second
)

type BookingServiceOption func(*BookingService)

func WithPublisher(p BookingPublisher) BookingServiceOption {
	return func(s *BookingService) {
		s.publisher = p
	}
}

func WithLogger(l *zap.Logger) BookingServiceOption {
	return func(s *BookingService) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithOfficeHours sets the window FreeWindows works within. Invalid ranges are ignored.
func WithOfficeHours(open, closing time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		if open >= 0 && open < closing && closing <= 24*time.Hour {
			s.officeOpen, s.officeClose = open, closing
		}
	}
}

func NewBookingService(store BookingStore, rooms RoomRegistry, clk clock.Clock, opts ...BookingServiceOption) *BookingService {
	svc := &BookingService{
		store:       store,
		rooms:       rooms,
		clock:       clk,
		logger:      zap.NewNop(),
		officeOpen:  defaultOfficeOpen,
		officeClose: defaultOfficeClose,
		roomLocks:   make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type CreateBookingInput struct {
	RoomID        string
	Title         string
	Interval      domain.Interval
	AttendeeCount int
	BookedBy      string
}

// RoomWithStatus pairs a room with its occupancy at query time.
type RoomWithStatus struct {
	Room   domain.Room
	Status domain.RoomStatus
}

// lockRoom serializes the list-check-insert sequence for one room.
func (s *BookingService) lockRoom(roomID string) func() {
	s.mu.Lock()
	l, ok := s.roomLocks[roomID]
	if !ok {
		l = &sync.Mutex{}
		s.roomLocks[roomID] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// CreateBooking validates in and stores it unless it conflicts with an
// existing booking in the same room. Checks run in order: interval,
// attendee count, room existence, capacity, conflicts.
func (s *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (domain.Booking, error) {
	if !in.Interval.Valid() {
		return domain.Booking{}, domain.ErrInvalidInterval
	}
	if in.AttendeeCount < 1 {
		return domain.Booking{}, domain.ErrInvalidAttendeeCount
	}
	room, err := s.rooms.GetRoom(ctx, in.RoomID)
	if err != nil {
		return domain.Booking{}, err
	}
	if in.AttendeeCount > room.Capacity {
		return domain.Booking{}, &domain.CapacityError{Capacity: room.Capacity, Requested: in.AttendeeCount}
	}

	booking, err := s.insertIfFree(ctx, domain.Booking{
		RoomID:        room.ID,
		Interval:      in.Interval,
		Title:         in.Title,
		AttendeeCount: in.AttendeeCount,
		BookedBy:      in.BookedBy,
	})
	if err != nil {
		return domain.Booking{}, err
	}

	s.logger.Info("booking created",
		zap.String("booking_id", booking.ID),
		zap.String("room_id", booking.RoomID),
		zap.String("interval", booking.Interval.String()),
		zap.Int("attendees", booking.AttendeeCount),
	)
	s.publish(ctx, room, booking)
	return booking, nil
}

func (s *BookingService) insertIfFree(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	unlock := s.lockRoom(b.RoomID)
	defer unlock()

	existing, err := s.store.ListByRoom(ctx, b.RoomID)
	if err != nil {
		return domain.Booking{}, err
	}
	if conflict, ok := schedule.FindConflict(existing, b.Interval); ok {
		return domain.Booking{}, &domain.ConflictError{Existing: conflict}
	}
	return s.store.Insert(ctx, b)
}

// publish never fails the booking; errors are only logged.
func (s *BookingService) publish(ctx context.Context, room domain.Room, b domain.Booking) {
	if s.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.publisher.PublishBooking(ctx, room, b); err != nil {
		s.logger.Warn("failed to publish booking",
			zap.String("booking_id", b.ID),
			zap.String("room_id", room.ID),
			zap.Error(err),
		)
	}
}

// RoomStatuses returns every room matching f with its status at the
// service clock's current time, in catalogue order.
func (s *BookingService) RoomStatuses(ctx context.Context, f RoomFilter) ([]RoomWithStatus, error) {
	rooms, err := s.rooms.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()

	out := []RoomWithStatus{}
	for _, room := range rooms {
		if !f.matchRoom(room) {
			continue
		}
		bookings, err := s.store.ListByRoom(ctx, room.ID)
		if err != nil {
			return nil, err
		}
		status := schedule.ComputeStatus(bookings, room, now)
		if !f.matchStatus(status.IsAvailable) {
			continue
		}
		out = append(out, RoomWithStatus{Room: room, Status: status})
	}
	return out, nil
}

func (s *BookingService) RoomStatus(ctx context.Context, roomID string) (RoomWithStatus, error) {
	room, err := s.rooms.GetRoom(ctx, roomID)
	if err != nil {
		return RoomWithStatus{}, err
	}
	bookings, err := s.store.ListByRoom(ctx, room.ID)
	if err != nil {
		return RoomWithStatus{}, err
	}
	return RoomWithStatus{Room: room, Status: schedule.ComputeStatus(bookings, room, s.clock.Now())}, nil
}

func (s *BookingService) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	return s.store.ListAll(ctx)
}

// RoomBookings lists one room's bookings; unknown rooms are ErrRoomNotFound.
func (s *BookingService) RoomBookings(ctx context.Context, roomID string) ([]domain.Booking, error) {
	if _, err := s.rooms.GetRoom(ctx, roomID); err != nil {
		return nil, err
	}
	return s.store.ListByRoom(ctx, roomID)
}

// Now exposes the service clock to callers that build request defaults.
func (s *BookingService) Now() time.Time {
	return s.clock.Now()
}
