package scheduling

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidHours          = errors.New("enter valid hours")
	ErrOutsideBusinessHours  = errors.New("hours must fall within business hours")
	ErrOverlap               = errors.New("range overlaps an existing range")
	ErrPastDay               = errors.New("cannot select a day in the past")
	ErrPastSlot              = errors.New("cannot book a slot in the past")
	ErrSlotUnavailable       = errors.New("slot is not available")
	ErrInvalidDate           = errors.New("invalid date")
	ErrRangeIndexOutOfBounds = errors.New("range index out of bounds")
)

// RangeError reports why an hour range was rejected. Conflict is set for overlaps.
type RangeError struct {
	Range    HourRange
	Conflict *HourRange
	Err      error
}

func (e *RangeError) Error() string {
	if e.Conflict != nil {
		return fmt.Sprintf("%s: %s conflicts with %s", e.Err, e.Range, *e.Conflict)
	}
	return fmt.Sprintf("%s: %s", e.Err, e.Range)
}

func (e *RangeError) Unwrap() error { return e.Err }

// DayError reports an unknown weekday name.
type DayError struct {
	Input string
}

func (e *DayError) Error() string {
	return fmt.Sprintf("invalid day %q: expected monday to friday", e.Input)
}
