package domain

import "time"

// Booking reserves a room for an interval. It is immutable once stored.
type Booking struct {
	ID            string
	RoomID        string
	Interval      Interval
	Title         string
	AttendeeCount int
	BookedBy      string
}

// Room is a bookable meeting room. CalendarID, when set, names the Google
// calendar new bookings are mirrored into.
type Room struct {
	ID         string
	Name       string
	Location   string
	Capacity   int
	Amenities  []string
	ImageURL   string
	CalendarID string
}

// RoomStatus is derived per query and never stored.
type RoomStatus struct {
	RoomID         string
	IsAvailable    bool
	CurrentBooking *Booking
	NextAvailable  *time.Time
}
