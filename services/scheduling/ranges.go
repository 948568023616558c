package scheduling

import (
	"fmt"
	"sort"
)

// HourRange is a half-open interval [Start, End) of whole hours.
type HourRange struct {
	Start Hour `json:"start_hour" bson:"start_hour"`
	End   Hour `json:"end_hour" bson:"end_hour"`
}

func (r HourRange) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}

// Covers reports whether the slot starting at h lies inside r.
func (r HourRange) Covers(h Hour) bool {
	return r.Start <= h && h < r.End
}

// Overlaps reports whether a and b share at least one hour. Touching ranges do not overlap.
func Overlaps(a, b HourRange) bool {
	return a.Start < b.End && b.Start < a.End
}

// ValidateRange checks a single range in isolation.
func ValidateRange(r HourRange) error {
	if !r.Start.Valid() || !r.End.Valid() || r.Start >= r.End {
		return &RangeError{Range: r, Err: ErrInvalidHours}
	}
	if r.Start < OpeningHour || r.End > ClosingHour {
		return &RangeError{Range: r, Err: ErrOutsideBusinessHours}
	}
	return nil
}

// Covered reports whether any range contains the slot starting at h.
func Covered(ranges []HourRange, h Hour) bool {
	for _, r := range ranges {
		if r.Covers(h) {
			return true
		}
	}
	return false
}

// AvailableStartHours lists the hours a new range may start at: every business hour
// not already covered by an existing range, minus the closing hour.
func AvailableStartHours(existing []HourRange) []Hour {
	var out []Hour
	for _, h := range PossibleHours() {
		if h == ClosingHour || Covered(existing, h) {
			continue
		}
		out = append(out, h)
	}
	return out
}

// AvailableEndHours lists the hours a range starting at start may end at. The scan
// walks forward from start and stops at the first hour that would make the new range
// overlap an existing one, so the last option can touch the next range's start.
func AvailableEndHours(start Hour, existing []HourRange) []Hour {
	if !start.InBusinessHours() || start == ClosingHour || Covered(existing, start) {
		return nil
	}
	var out []Hour
	for end := start + 1; end <= ClosingHour; end++ {
		candidate := HourRange{Start: start, End: end}
		if conflict(existing, candidate) != nil {
			break
		}
		out = append(out, end)
	}
	return out
}

func conflict(existing []HourRange, candidate HourRange) *HourRange {
	for i := range existing {
		if Overlaps(existing[i], candidate) {
			c := existing[i]
			return &c
		}
	}
	return nil
}

// AddRange validates candidate against existing and returns a new, start-sorted list.
func AddRange(existing []HourRange, candidate HourRange) ([]HourRange, error) {
	if err := ValidateRange(candidate); err != nil {
		return existing, err
	}
	if c := conflict(existing, candidate); c != nil {
		return existing, &RangeError{Range: candidate, Conflict: c, Err: ErrOverlap}
	}
	out := make([]HourRange, 0, len(existing)+1)
	out = append(out, existing...)
	out = append(out, candidate)
	SortRanges(out)
	return out, nil
}

// RemoveRange drops the range at index i.
func RemoveRange(existing []HourRange, i int) ([]HourRange, error) {
	if i < 0 || i >= len(existing) {
		return existing, ErrRangeIndexOutOfBounds
	}
	out := make([]HourRange, 0, len(existing)-1)
	out = append(out, existing[:i]...)
	return append(out, existing[i+1:]...), nil
}

// ValidateDay checks a full set of ranges for one weekday.
func ValidateDay(ranges []HourRange) error {
	sorted := make([]HourRange, len(ranges))
	copy(sorted, ranges)
	SortRanges(sorted)
	for i, r := range sorted {
		if err := ValidateRange(r); err != nil {
			return err
		}
		if i > 0 && Overlaps(sorted[i-1], r) {
			prev := sorted[i-1]
			return &RangeError{Range: r, Conflict: &prev, Err: ErrOverlap}
		}
	}
	return nil
}

// SortRanges orders ranges by start, then end.
func SortRanges(ranges []HourRange) {
	sort.SliceStable(ranges, func(i, j int) bool {
		if ranges[i].Start != ranges[j].Start {
			return ranges[i].Start < ranges[j].Start
		}
		return ranges[i].End < ranges[j].End
	})
}
