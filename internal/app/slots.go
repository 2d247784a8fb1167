package app

import (
	"context"
	"time"

	"github.com/rafeeazmi/employee-portal/internal/domain"
	"github.com/rafeeazmi/employee-portal/internal/schedule"
)

// DayAvailability is the free time of one room on one day.
type DayAvailability struct {
	RoomID  string
	Day     time.Time
	Open    time.Time
	Close   time.Time
	Windows []domain.Interval
}

// FreeWindows returns the parts of a room's office hours on day that no
// booking occupies.
func (s *BookingService) FreeWindows(ctx context.Context, roomID string, day time.Time) (DayAvailability, error) {
	room, err := s.rooms.GetRoom(ctx, roomID)
	if err != nil {
		return DayAvailability{}, err
	}
	bookings, err := s.store.ListByRoom(ctx, room.ID)
	if err != nil {
		return DayAvailability{}, err
	}

	midnight := domain.StartOfDay(day)
	windows := schedule.FreeWindows(bookings, midnight, s.officeOpen, s.officeClose)
	if windows == nil {
		windows = []domain.Interval{}
	}
	return DayAvailability{
		RoomID:  room.ID,
		Day:     midnight,
		Open:    midnight.Add(s.officeOpen),
		Close:   midnight.Add(s.officeClose),
		Windows: windows,
	}, nil
}
