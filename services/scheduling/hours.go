// Package scheduling holds the calendar arithmetic shared by the backend and the
// client views: business hours, weekly hour ranges, month grids and day slots.
package scheduling

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Hour is a whole hour of the day (0-23). It travels as "HH:00" on the wire.
type Hour int

const (
	// OpeningHour is the first bookable hour of the business day.
	OpeningHour Hour = 8
	// ClosingHour closes the business day; nothing can start at it.
	ClosingHour Hour = 20
)

// NoHour marks an unset selection.
const NoHour Hour = -1

// PossibleHours lists every hour boundary of the business day, 08:00 through 20:00.
func PossibleHours() []Hour {
	hours := make([]Hour, 0, ClosingHour-OpeningHour+1)
	for h := OpeningHour; h <= ClosingHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

// GuestSlotHours lists the start of every one-hour slot a guest can book (08..19).
func GuestSlotHours() []Hour {
	hours := make([]Hour, 0, ClosingHour-OpeningHour)
	for h := OpeningHour; h < ClosingHour; h++ {
		hours = append(hours, h)
	}
	return hours
}

// Valid reports whether h is a real hour of the day.
func (h Hour) Valid() bool {
	return h >= 0 && h <= 23
}

// InBusinessHours reports whether h is one of PossibleHours.
func (h Hour) InBusinessHours() bool {
	return h >= OpeningHour && h <= ClosingHour
}

func (h Hour) String() string {
	if !h.Valid() {
		return "--:--"
	}
	return fmt.Sprintf("%02d:00", int(h))
}

// ParseHour accepts "8", "08", "8:00", "08:00" and "08:00:00".
func ParseHour(s string) (Hour, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return NoHour, fmt.Errorf("empty hour")
	}
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return NoHour, fmt.Errorf("invalid hour %q", s)
	}
	for _, p := range parts[1:] {
		if n, err := strconv.Atoi(p); err != nil || n != 0 {
			return NoHour, fmt.Errorf("invalid hour %q: only whole hours are allowed", s)
		}
	}
	n, err := strconv.Atoi(parts[0])
	if err != nil {
		return NoHour, fmt.Errorf("invalid hour %q", s)
	}
	h := Hour(n)
	if !h.Valid() {
		return NoHour, fmt.Errorf("invalid hour %q", s)
	}
	return h, nil
}

func (h Hour) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

func (h *Hour) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		if !Hour(n).Valid() {
			return fmt.Errorf("invalid hour %d", n)
		}
		*h = Hour(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("hour must be a string or a number: %w", err)
	}
	parsed, err := ParseHour(s)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// SlotLabel renders the one-hour slot starting at h, e.g. "10:00 - 11:00".
func SlotLabel(h Hour) string {
	return fmt.Sprintf("%s - %s", h, h+1)
}
