package scheduling

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	SlotLayout = "2006-01-02T15:04:05"
)

// Slot is one bookable hour on a specific date.
type Slot struct {
	Hour      Hour   `json:"hour"`
	Label     string `json:"label"`
	Enabled   bool   `json:"enabled"`
	Blocked   bool   `json:"blocked"`
	Reserved  bool   `json:"reserved"`
	Past      bool   `json:"past"`
	Available bool   `json:"available"`
}

// DayState is everything needed to decide which slots of a date are free.
type DayState struct {
	Date     time.Time
	Ranges   []HourRange
	Blocked  []Hour
	Reserved []Hour
}

// DaySlots evaluates each guest slot of the day. A slot is available when the
// weekday's ranges enable it, it is neither blocked nor reserved, and it has not started.
func DaySlots(state DayState, now time.Time) []Slot {
	blocked := hourSet(state.Blocked)
	reserved := hourSet(state.Reserved)
	_, workday := WeekdayOf(state.Date)

	hours := GuestSlotHours()
	slots := make([]Slot, 0, len(hours))
	for _, h := range hours {
		s := Slot{
			Hour:     h,
			Label:    SlotLabel(h),
			Enabled:  workday && Covered(state.Ranges, h),
			Blocked:  blocked[h],
			Reserved: reserved[h],
			Past:     !SlotTime(state.Date, h).After(now),
		}
		s.Available = s.Enabled && !s.Blocked && !s.Reserved && !s.Past
		slots = append(slots, s)
	}
	return slots
}

// AnyAvailable reports whether at least one slot can be booked.
func AnyAvailable(slots []Slot) bool {
	for _, s := range slots {
		if s.Available {
			return true
		}
	}
	return false
}

// CheckBookable returns nil when the slot at h can be booked given state.
func CheckBookable(state DayState, h Hour, now time.Time) error {
	if !SlotTime(state.Date, h).After(now) {
		return ErrPastSlot
	}
	for _, s := range DaySlots(state, now) {
		if s.Hour == h {
			if s.Available {
				return nil
			}
			return ErrSlotUnavailable
		}
	}
	return ErrSlotUnavailable
}

// SlotTime is the instant the slot at h starts on date's calendar day.
func SlotTime(date time.Time, h Hour) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, int(h), 0, 0, 0, date.Location())
}

// ParseDate reads a "YYYY-MM-DD" date as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %v", ErrInvalidDate, s, err)
	}
	return t, nil
}

// ParseSlot reads "YYYY-MM-DDTHH:00:00" (a space separator is accepted too) and
// splits it into the day and the slot hour.
func ParseSlot(s string, loc *time.Location) (time.Time, Hour, error) {
	s = strings.Replace(strings.TrimSpace(s), " ", "T", 1)
	t, err := time.ParseInLocation(SlotLayout, s, loc)
	if err != nil {
		return time.Time{}, NoHour, fmt.Errorf("%w %q: %v", ErrInvalidDate, s, err)
	}
	if t.Minute() != 0 || t.Second() != 0 {
		return time.Time{}, NoHour, fmt.Errorf("%w %q: slots start on the hour", ErrInvalidDate, s)
	}
	return StartOfDay(t), Hour(t.Hour()), nil
}

// FormatSlot is the inverse of ParseSlot.
func FormatSlot(date time.Time, h Hour) string {
	return SlotTime(date, h).Format(SlotLayout)
}

// CheckSelectableDay rejects dates before today.
func CheckSelectableDay(date, now time.Time) error {
	if StartOfDay(date).Before(StartOfDay(now)) {
		return ErrPastDay
	}
	return nil
}

func hourSet(hours []Hour) map[Hour]bool {
	set := make(map[Hour]bool, len(hours))
	for _, h := range hours {
		set[h] = true
	}
	return set
}
