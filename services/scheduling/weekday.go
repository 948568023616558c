package scheduling

import (
	"strings"
	"time"
)

// Weekday is a working day of the clinic, stored by its lowercase English name.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
)

// PossibleDays are the weekdays availability can be defined for, in display order.
var PossibleDays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

var weekdayAliases = map[string]Weekday{
	"monday":    Monday,
	"tuesday":   Tuesday,
	"wednesday": Wednesday,
	"thursday":  Thursday,
	"friday":    Friday,
	"lunes":     Monday,
	"martes":    Tuesday,
	"miércoles": Wednesday,
	"miercoles": Wednesday,
	"jueves":    Thursday,
	"viernes":   Friday,
}

var weekdayLabels = map[Weekday]string{
	Monday:    "Lunes",
	Tuesday:   "Martes",
	Wednesday: "Miércoles",
	Thursday:  "Jueves",
	Friday:    "Viernes",
}

var weekdayTime = map[Weekday]time.Weekday{
	Monday:    time.Monday,
	Tuesday:   time.Tuesday,
	Wednesday: time.Wednesday,
	Thursday:  time.Thursday,
	Friday:    time.Friday,
}

// ParseWeekday resolves English or Spanish day names, case-insensitively.
func ParseWeekday(s string) (Weekday, error) {
	if d, ok := weekdayAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return d, nil
	}
	return "", &DayError{Input: s}
}

// WeekdayOf maps a calendar date onto a working day; weekends report false.
func WeekdayOf(t time.Time) (Weekday, bool) {
	for d, wd := range weekdayTime {
		if wd == t.Weekday() {
			return d, true
		}
	}
	return "", false
}

func (d Weekday) Valid() bool {
	_, ok := weekdayTime[d]
	return ok
}

// Label is the display name used by the front-end.
func (d Weekday) Label() string {
	if l, ok := weekdayLabels[d]; ok {
		return l
	}
	return string(d)
}

// Index orders days Monday=0 .. Friday=4; unknown days sort last.
func (d Weekday) Index() int {
	for i, pd := range PossibleDays {
		if pd == d {
			return i
		}
	}
	return len(PossibleDays)
}
