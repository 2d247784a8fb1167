package app

import (
	"time"

	"github.com/rafeeazmi/employee-portal/internal/domain"
)

type createBookingReq struct {
	RoomID        string `json:"roomId" binding:"required"`
	Title         string `json:"title" binding:"required"`
	StartTime     string `json:"startTime" binding:"required,datetime=2006-01-02 15:04"`
	EndTime       string `json:"endTime" binding:"required,datetime=2006-01-02 15:04"`
	AttendeeCount int    `json:"attendeeCount" binding:"min=1"`
	BookedBy      string `json:"bookedBy" binding:"required"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorResponse struct {
	Message string       `json:"message"`
	Errors  []fieldError `json:"errors,omitempty"`
}

type bookingJSON struct {
	ID            string `json:"id"`
	RoomID        string `json:"roomId"`
	Title         string `json:"title"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	AttendeeCount int    `json:"attendeeCount"`
	BookedBy      string `json:"bookedBy"`
}

type roomJSON struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Location       string       `json:"location"`
	Capacity       int          `json:"capacity"`
	Amenities      []string     `json:"amenities"`
	ImageURL       *string      `json:"imageUrl"`
	IsAvailable    bool         `json:"isAvailable"`
	CurrentBooking *bookingJSON `json:"currentBooking,omitempty"`
	NextAvailable  *string      `json:"nextAvailable,omitempty"`
}

type employeeJSON struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	Phone            *string `json:"phone"`
	Department       string  `json:"department"`
	Position         string  `json:"position"`
	Status           string  `json:"status"`
	AvatarURL        *string `json:"avatarUrl"`
	LeaveStart       *string `json:"leaveStart"`
	LeaveEnd         *string `json:"leaveEnd"`
	AlternateContact *string `json:"alternateContact"`
}

type windowJSON struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type availabilityJSON struct {
	RoomID      string       `json:"roomId"`
	Date        string       `json:"date"`
	OfficeHours windowJSON   `json:"officeHours"`
	Windows     []windowJSON `json:"windows"`
}

type statsJSON struct {
	TotalRooms     int    `json:"totalRooms"`
	AvailableRooms int    `json:"availableRooms"`
	OccupiedRooms  int    `json:"occupiedRooms"`
	BookingsToday  int    `json:"bookingsToday"`
	TotalEmployees int    `json:"totalEmployees"`
	OnDuty         int    `json:"onDuty"`
	OnLeave        int    `json:"onLeave"`
	Remote         int    `json:"remote"`
	OutOfOffice    int    `json:"outOfOffice"`
	CurrentTime    string `json:"currentTime"`
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toBookingJSON(b domain.Booking) bookingJSON {
	return bookingJSON{
		ID:            b.ID,
		RoomID:        b.RoomID,
		Title:         b.Title,
		StartTime:     domain.FormatDateTime(b.Interval.Start),
		EndTime:       domain.FormatDateTime(b.Interval.End),
		AttendeeCount: b.AttendeeCount,
		BookedBy:      b.BookedBy,
	}
}

func toBookingsJSON(bookings []domain.Booking) []bookingJSON {
	out := make([]bookingJSON, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingJSON(b))
	}
	return out
}

func toRoomJSON(r RoomWithStatus) roomJSON {
	amenities := r.Room.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	out := roomJSON{
		ID:          r.Room.ID,
		Name:        r.Room.Name,
		Location:    r.Room.Location,
		Capacity:    r.Room.Capacity,
		Amenities:   amenities,
		ImageURL:    nullable(r.Room.ImageURL),
		IsAvailable: r.Status.IsAvailable,
	}
	if r.Status.CurrentBooking != nil {
		b := toBookingJSON(*r.Status.CurrentBooking)
		out.CurrentBooking = &b
	}
	if r.Status.NextAvailable != nil {
		next := domain.FormatClock(*r.Status.NextAvailable)
		out.NextAvailable = &next
	}
	return out
}

func toEmployeeJSON(e domain.Employee) employeeJSON {
	return employeeJSON{
		ID:               e.ID,
		Name:             e.Name,
		Email:            e.Email,
		Phone:            nullable(e.Phone),
		Department:       e.Department,
		Position:         e.Position,
		Status:           string(e.Status),
		AvatarURL:        nullable(e.AvatarURL),
		LeaveStart:       nullable(e.LeaveStart),
		LeaveEnd:         nullable(e.LeaveEnd),
		AlternateContact: nullable(e.AlternateContact),
	}
}

func toWindowJSON(iv domain.Interval) windowJSON {
	return windowJSON{StartTime: domain.FormatClock(iv.Start), EndTime: domain.FormatClock(iv.End)}
}

func toAvailabilityJSON(d DayAvailability) availabilityJSON {
	windows := make([]windowJSON, 0, len(d.Windows))
	for _, iv := range d.Windows {
		windows = append(windows, toWindowJSON(iv))
	}
	return availabilityJSON{
		RoomID:      d.RoomID,
		Date:        d.Day.Format(domain.DateLayout),
		OfficeHours: windowJSON{StartTime: domain.FormatClock(d.Open), EndTime: domain.FormatClock(d.Close)},
		Windows:     windows,
	}
}

func toStatsJSON(st DashboardStats, now time.Time) statsJSON {
	return statsJSON{
		TotalRooms:     st.TotalRooms,
		AvailableRooms: st.AvailableRooms,
		OccupiedRooms:  st.OccupiedRooms,
		BookingsToday:  st.BookingsToday,
		TotalEmployees: st.TotalEmployees,
		OnDuty:         st.OnDuty,
		OnLeave:        st.OnLeave,
		Remote:         st.Remote,
		OutOfOffice:    st.OutOfOffice,
		CurrentTime:    domain.FormatClock(now),
	}
}
