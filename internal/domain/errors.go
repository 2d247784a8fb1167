package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInterval      = errors.New("end time must be after start time")
	ErrInvalidAttendeeCount = errors.New("at least 1 attendee required")
	ErrRoomNotFound         = errors.New("room not found")
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrCapacityExceeded     = errors.New("room capacity exceeded")
	ErrSchedulingConflict   = errors.New("time slot conflicts with an existing booking")
)

// ConflictError carries the booking that occupies the requested window.
// Existing may be zero when the store detected the overlap itself.
type ConflictError struct {
	Existing Booking
}

func (e *ConflictError) Error() string {
	if e.Existing.ID == "" {
		return ErrSchedulingConflict.Error()
	}
	return fmt.Sprintf("%s (%s)", ErrSchedulingConflict, e.Existing.Interval)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrSchedulingConflict
}

type CapacityError struct {
	Capacity  int
	Requested int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("Room capacity is %d, but %d attendees requested", e.Capacity, e.Requested)
}

func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacityExceeded
}
