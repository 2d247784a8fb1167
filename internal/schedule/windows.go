package schedule

import (
	"time"

	"github.com/rafeeazmi/employee-portal/internal/domain"
)

// FreeWindows returns the unbooked parts of day between open and closing
// (offsets from midnight), in chronological order.
func FreeWindows(bookings []domain.Booking, day time.Time, open, closing time.Duration) []domain.Interval {
	midnight := domain.StartOfDay(day)
	hours := domain.Interval{Start: midnight.Add(open), End: midnight.Add(closing)}
	if !hours.Valid() {
		return nil
	}

	free := []domain.Interval{hours}
	for _, b := range bookings {
		block := b.Interval
		if !block.Overlaps(hours) {
			continue
		}
		var updated []domain.Interval
		for _, iv := range free {
			if !block.Overlaps(iv) {
				updated = append(updated, iv)
				continue
			}
			if block.Start.After(iv.Start) {
				updated = append(updated, domain.Interval{Start: iv.Start, End: block.Start})
			}
			if block.End.Before(iv.End) {
				updated = append(updated, domain.Interval{Start: block.End, End: iv.End})
			}
		}
		free = updated
	}
	return free
}
