package availability

import (
	"context"
	"time"

	"consultorio/models"
	"consultorio/services/scheduling"

	"golang.org/x/sync/errgroup"
)

// DayState gathers the weekly ranges, blocks and active reservations for date.
func (s *DefaultAvailabilityService) DayState(ctx context.Context, date time.Time) (scheduling.DayState, error) {
	date = scheduling.StartOfDay(date.In(s.Location()))
	state := scheduling.DayState{Date: date}
	key := date.Format(scheduling.DateLayout)

	if day, ok := scheduling.WeekdayOf(date); ok {
		ranges, err := s.dayRanges(ctx, string(day))
		if err != nil {
			return state, err
		}
		state.Ranges = ranges
	}

	blocked, err := s.Blocked.GetByDate(ctx, key)
	if err != nil {
		return state, err
	}
	for _, b := range blocked {
		state.Blocked = append(state.Blocked, b.Hour)
	}

	reserved, err := s.Reservations.GetActiveByDate(ctx, key)
	if err != nil {
		return state, err
	}
	for _, r := range reserved {
		state.Reserved = append(state.Reserved, r.Hour)
	}
	return state, nil
}

// DaySlots answers the guest calendar for one date. Days before today are rejected.
func (s *DefaultAvailabilityService) DaySlots(ctx context.Context, date string) (*models.DayAvailability, error) {
	d, err := scheduling.ParseDate(date, s.Location())
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := scheduling.CheckSelectableDay(d, now); err != nil {
		return nil, err
	}
	state, err := s.DayState(ctx, d)
	if err != nil {
		return nil, err
	}

	out := &models.DayAvailability{
		Date:  d.Format(scheduling.DateLayout),
		Slots: scheduling.DaySlots(state, now),
	}
	if wd, ok := scheduling.WeekdayOf(d); ok {
		out.Day = wd.Label()
	}
	return out, nil
}

// MonthCalendar lays out a month and flags the days that still have a free slot.
func (s *DefaultAvailabilityService) MonthCalendar(ctx context.Context, year int, month time.Month) (scheduling.MonthGrid, error) {
	now := s.now()
	grid := scheduling.BuildMonthGrid(year, month, now)

	loc := s.Location()
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last := time.Date(year, month, scheduling.DaysIn(year, month), 0, 0, 0, 0, loc)
	from, to := first.Format(scheduling.DateLayout), last.Format(scheduling.DateLayout)

	var (
		weekly       []models.GlobalEnabled
		blocked      []models.BlockedHour
		reservations []models.Reservation
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		weekly, err = s.GetGlobalEnabled(gctx)
		return err
	})
	g.Go(func() (err error) {
		blocked, err = s.Blocked.GetFrom(gctx, from)
		return err
	})
	g.Go(func() (err error) {
		reservations, err = s.Reservations.GetActiveBetween(gctx, from, to)
		return err
	})
	if err := g.Wait(); err != nil {
		return grid, err
	}
	byDay := models.GroupByDay(weekly)

	blockedByDate := make(map[string][]scheduling.Hour)
	for _, b := range blocked {
		if b.Date <= to {
			blockedByDate[b.Date] = append(blockedByDate[b.Date], b.Hour)
		}
	}
	reservedByDate := make(map[string][]scheduling.Hour)
	for _, r := range reservations {
		reservedByDate[r.Date] = append(reservedByDate[r.Date], r.Hour)
	}

	grid.Days(func(cell *scheduling.DayCell) {
		if cell.Past || !cell.Workday {
			return
		}
		date := time.Date(year, month, cell.Day, 0, 0, 0, 0, loc)
		wd, _ := scheduling.WeekdayOf(date)
		key := date.Format(scheduling.DateLayout)
		state := scheduling.DayState{
			Date:     date,
			Ranges:   byDay[wd],
			Blocked:  blockedByDate[key],
			Reserved: reservedByDate[key],
		}
		cell.HasAvailability = scheduling.AnyAvailable(scheduling.DaySlots(state, now))
	})
	return grid, nil
}
