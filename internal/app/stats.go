package app

import (
	"context"

	"github.com/rafeeazmi/employee-portal/internal/domain"
)

// DashboardStats backs the portal's summary cards.
type DashboardStats struct {
	TotalRooms     int
	AvailableRooms int
	OccupiedRooms  int
	BookingsToday  int

	TotalEmployees int
	OnDuty         int
	OnLeave        int
	Remote         int
	OutOfOffice    int
}

// Stats counts rooms by current status, today's bookings and employees
// by status.
func (s *BookingService) Stats(ctx context.Context, employees EmployeeDirectory) (DashboardStats, error) {
	var st DashboardStats

	rooms, err := s.RoomStatuses(ctx, RoomFilter{})
	if err != nil {
		return DashboardStats{}, err
	}
	st.TotalRooms = len(rooms)
	for _, r := range rooms {
		if r.Status.IsAvailable {
			st.AvailableRooms++
		} else {
			st.OccupiedRooms++
		}
	}

	bookings, err := s.store.ListAll(ctx)
	if err != nil {
		return DashboardStats{}, err
	}
	now := s.clock.Now()
	for _, b := range bookings {
		if domain.SameDay(b.Interval.Start, now) {
			st.BookingsToday++
		}
	}

	if employees == nil {
		return st, nil
	}
	staff, err := employees.ListEmployees(ctx, EmployeeFilter{})
	if err != nil {
		return DashboardStats{}, err
	}
	st.TotalEmployees = len(staff)
	for _, e := range staff {
		switch e.Status {
		case domain.EmployeeOnDuty:
			st.OnDuty++
		case domain.EmployeeOnLeave:
			st.OnLeave++
		case domain.EmployeeRemote:
			st.Remote++
		case domain.EmployeeOutOfOffice:
			st.OutOfOffice++
		}
	}
	return st, nil
}
