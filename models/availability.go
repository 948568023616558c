package models

import (
	"time"

	"consultorio/services/scheduling"
)

// GlobalEnabled is one weekly availability range: every <Day>, from StartHour to EndHour.
type GlobalEnabled struct {
	ID        string             `bson:"id" json:"id"`
	Day       scheduling.Weekday `bson:"day" json:"day"`
	StartHour scheduling.Hour    `bson:"start_hour" json:"start_hour"`
	EndHour   scheduling.Hour    `bson:"end_hour" json:"end_hour"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

func (g GlobalEnabled) Range() scheduling.HourRange {
	return scheduling.HourRange{Start: g.StartHour, End: g.EndHour}
}

// GlobalEnabledInput is the wire form used to add ranges; Day accepts English or Spanish names.
type GlobalEnabledInput struct {
	Day       string          `json:"day"`
	StartHour scheduling.Hour `json:"start_hour"`
	EndHour   scheduling.Hour `json:"end_hour"`
}

func (in GlobalEnabledInput) Range() scheduling.HourRange {
	return scheduling.HourRange{Start: in.StartHour, End: in.EndHour}
}

// ReplaceDayRequest is the editor's bulk save for a single weekday.
type ReplaceDayRequest struct {
	Ranges []scheduling.HourRange `json:"ranges"`
}

// GroupByDay indexes entries by weekday.
func GroupByDay(entries []GlobalEnabled) map[scheduling.Weekday][]scheduling.HourRange {
	out := make(map[scheduling.Weekday][]scheduling.HourRange)
	for _, e := range entries {
		out[e.Day] = append(out[e.Day], e.Range())
	}
	for d := range out {
		scheduling.SortRanges(out[d])
	}
	return out
}

// BlockedHour takes a single hour of a specific date out of the calendar.
type BlockedHour struct {
	ID        string          `bson:"id" json:"id"`
	Date      string          `bson:"date" json:"date"`
	Hour      scheduling.Hour `bson:"hour" json:"hour"`
	Reason    string          `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt time.Time       `bson:"created_at" json:"created_at"`
}

type BlockHourInput struct {
	Date   string          `json:"date" binding:"required"`
	Hour   scheduling.Hour `json:"hour"`
	Reason string          `json:"reason"`
}

type BlockHoursRequest struct {
	Dates []BlockHourInput `json:"dates" binding:"required"`
}

// DayAvailability is the guest-facing answer for one date.
type DayAvailability struct {
	Date  string            `json:"date"`
	Day   string            `json:"day,omitempty"`
	Slots []scheduling.Slot `json:"slots"`
}
