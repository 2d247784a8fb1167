package domain

import (
	"fmt"
	"time"
)

const (
	// DateTimeLayout is the wire format for booking times ("YYYY-MM-DD HH:MM").
	DateTimeLayout = "2006-01-02 15:04"
	DateLayout     = "2006-01-02"
	ClockLayout    = "15:04"
)

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval returns ErrInvalidInterval unless start is strictly before end.
func NewInterval(start, end time.Time) (Interval, error) {
	iv := Interval{Start: start, End: end}
	if !iv.Valid() {
		return Interval{}, ErrInvalidInterval
	}
	return iv, nil
}

// ParseInterval parses two wire-format times in loc.
func ParseInterval(start, end string, loc *time.Location) (Interval, error) {
	s, err := ParseDateTime(start, loc)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseDateTime(end, loc)
	if err != nil {
		return Interval{}, err
	}
	return NewInterval(s, e)
}

func (iv Interval) Valid() bool {
	return iv.Start.Before(iv.End)
}

// Contains reports whether Start <= t < End.
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && t.Before(iv.End)
}

// Overlaps reports whether the two intervals share any instant.
// Touching endpoints do not overlap.
func (iv Interval) Overlaps(o Interval) bool {
	return iv.Start.Before(o.End) && iv.End.After(o.Start)
}

func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

func (iv Interval) String() string {
	return fmt.Sprintf("%s-%s", FormatClock(iv.Start), FormatClock(iv.End))
}

// ParseDateTime parses "YYYY-MM-DD HH:MM" as a wall-clock time in loc.
func ParseDateTime(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateTimeLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date-time %q, want YYYY-MM-DD HH:MM", s)
	}
	return t, nil
}

// ParseDate parses "YYYY-MM-DD" as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}

func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeLayout)
}

func FormatClock(t time.Time) string {
	return t.Format(ClockLayout)
}

// SameDay compares calendar days, reading a in b's location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.In(b.Location()).Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
