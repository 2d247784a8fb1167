// Package schedule holds the room availability engine: conflict detection,
// occupancy status and free windows. Everything here is pure.
package schedule

import (
	"github.com/rafeeazmi/employee-portal/internal/domain"
)

// CheckConflict reports whether candidate overlaps any interval in existing.
// existing need not be sorted. Malformed intervals fail with
// domain.ErrInvalidInterval instead of producing an answer.
func CheckConflict(existing []domain.Interval, candidate domain.Interval) (bool, error) {
	if !candidate.Valid() {
		return false, domain.ErrInvalidInterval
	}
	conflict := false
	for _, iv := range existing {
		if !iv.Valid() {
			return false, domain.ErrInvalidInterval
		}
		if candidate.Overlaps(iv) {
			conflict = true
		}
	}
	return conflict, nil
}

// FindConflict returns the earliest-starting booking overlapping candidate
// (ties broken by lowest ID).
func FindConflict(bookings []domain.Booking, candidate domain.Interval) (domain.Booking, bool) {
	var (
		found domain.Booking
		ok    bool
	)
	for _, b := range bookings {
		if !b.Interval.Overlaps(candidate) {
			continue
		}
		if !ok || before(b, found) {
			found, ok = b, true
		}
	}
	return found, ok
}

// Intervals projects bookings onto their intervals.
func Intervals(bookings []domain.Booking) []domain.Interval {
	out := make([]domain.Interval, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, b.Interval)
	}
	return out
}

func before(a, b domain.Booking) bool {
	if !a.Interval.Start.Equal(b.Interval.Start) {
		return a.Interval.Start.Before(b.Interval.Start)
	}
	return a.ID < b.ID
}
