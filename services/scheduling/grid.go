package scheduling

import "time"

// WeeklyGrid is the admin's week-at-a-glance view: one row per working day and one
// cell per business hour, true where an enabled range covers that hour.
type WeeklyGrid struct {
	Hours []Hour    `json:"hours"`
	Rows  []GridRow `json:"rows"`
}

type GridRow struct {
	Day   Weekday `json:"day"`
	Label string  `json:"label"`
	Cells []bool  `json:"cells"`
}

// BuildWeeklyGrid renders ranges grouped by weekday.
func BuildWeeklyGrid(byDay map[Weekday][]HourRange) WeeklyGrid {
	hours := PossibleHours()
	grid := WeeklyGrid{Hours: hours, Rows: make([]GridRow, 0, len(PossibleDays))}
	for _, d := range PossibleDays {
		row := GridRow{Day: d, Label: d.Label(), Cells: make([]bool, len(hours))}
		for i, h := range hours {
			row.Cells[i] = Covered(byDay[d], h)
		}
		grid.Rows = append(grid.Rows, row)
	}
	return grid
}

// Enabled reports whether the cell for day/hour is lit.
func (g WeeklyGrid) Enabled(day Weekday, h Hour) bool {
	for _, row := range g.Rows {
		if row.Day != day {
			continue
		}
		for i, gh := range g.Hours {
			if gh == h {
				return row.Cells[i]
			}
		}
	}
	return false
}

const (
	gridRows = 6
	gridCols = 7
)

// DayCell is one square of the month calendar. Day is 0 for padding cells.
type DayCell struct {
	Day             int  `json:"day"`
	Past            bool `json:"past"`
	Today           bool `json:"today"`
	Workday         bool `json:"workday"`
	HasAvailability bool `json:"has_availability"`
}

// MonthGrid is a six-week, Sunday-first month calendar.
type MonthGrid struct {
	Year  int                         `json:"year"`
	Month time.Month                  `json:"month"`
	Weeks [gridRows][gridCols]DayCell `json:"weeks"`
}

// BuildMonthGrid lays out the month containing year/month, flagging days before
// now's calendar date as past.
func BuildMonthGrid(year int, month time.Month, now time.Time) MonthGrid {
	loc := now.Location()
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	days := DaysIn(year, month)
	today := StartOfDay(now)

	g := MonthGrid{Year: year, Month: month}
	offset := int(first.Weekday())
	for day := 1; day <= days; day++ {
		pos := offset + day - 1
		date := time.Date(year, month, day, 0, 0, 0, 0, loc)
		_, workday := WeekdayOf(date)
		g.Weeks[pos/gridCols][pos%gridCols] = DayCell{
			Day:     day,
			Past:    date.Before(today),
			Today:   date.Equal(today),
			Workday: workday,
		}
	}
	return g
}

// Days iterates the non-padding cells in calendar order.
func (g *MonthGrid) Days(fn func(cell *DayCell)) {
	for r := range g.Weeks {
		for c := range g.Weeks[r] {
			if g.Weeks[r][c].Day != 0 {
				fn(&g.Weeks[r][c])
			}
		}
	}
}

// DaysIn returns the length of the month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// NextMonth advances one month, wrapping December into January of the next year.
func NextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

// PrevMonth goes back one month, wrapping January into December of the previous year.
func PrevMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
