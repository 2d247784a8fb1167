package schedule

import (
	"time"

	"github.com/rafeeazmi/employee-portal/internal/domain"
)

// ComputeStatus derives a room's occupancy at now. Only bookings starting on
// now's calendar day are considered. If overlapping bookings both contain now
// the earliest start wins, then the lowest ID.
func ComputeStatus(bookings []domain.Booking, room domain.Room, now time.Time) domain.RoomStatus {
	status := domain.RoomStatus{RoomID: room.ID, IsAvailable: true}

	var (
		current domain.Booking
		found   bool
	)
	for _, b := range bookings {
		if !domain.SameDay(b.Interval.Start, now) || !b.Interval.Contains(now) {
			continue
		}
		if !found || before(b, current) {
			current, found = b, true
		}
	}
	if !found {
		return status
	}

	end := current.Interval.End
	status.IsAvailable = false
	status.CurrentBooking = &current
	status.NextAvailable = &end
	return status
}
