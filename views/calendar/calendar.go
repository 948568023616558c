// Package calendar is the guest-facing month calendar: pick a day, pick a free hour, reserve it.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"consultorio/models"
	"consultorio/services/scheduling"
)

var (
	ErrNoDay      = errors.New("select a day first")
	ErrNoHour     = errors.New("select an hour first")
	ErrInvalidDay = errors.New("day is not in the displayed month")
)

// Backend is the subset of the store the calendar needs.
type Backend interface {
	DaySlots(ctx context.Context, date string) (*models.DayAvailability, error)
	MonthCalendar(ctx context.Context, year, month int) (*scheduling.MonthGrid, error)
	CreateGuestReservation(ctx context.Context, req models.GuestReservationRequest) (*models.Reservation, error)
}

// Guest identifies whoever books without an account.
type Guest struct {
	Name  string
	Phone string
}

type Calendar struct {
	backend Backend
	clock   func() time.Time

	Year  int
	Month time.Month

	selected time.Time
	hour     scheduling.Hour
	slots    []scheduling.Slot
	remote   *scheduling.MonthGrid
}

// New opens the calendar on the current month in loc.
func New(backend Backend, loc *time.Location, clock func() time.Time) *Calendar {
	if clock == nil {
		clock = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	c := &Calendar{
		backend: backend,
		clock:   func() time.Time { return clock().In(loc) },
		hour:    scheduling.NoHour,
	}
	now := c.clock()
	c.Year, c.Month = now.Year(), now.Month()
	return c
}

func (c *Calendar) Next() {
	c.Year, c.Month = scheduling.NextMonth(c.Year, c.Month)
	c.remote = nil
}

func (c *Calendar) Prev() {
	c.Year, c.Month = scheduling.PrevMonth(c.Year, c.Month)
	c.remote = nil
}

// Refresh asks the backend which days of the displayed month still have free slots.
func (c *Calendar) Refresh(ctx context.Context) error {
	grid, err := c.backend.MonthCalendar(ctx, c.Year, int(c.Month))
	if err != nil {
		return err
	}
	c.remote = grid
	return nil
}

// Grid is the displayed month. Availability flags are present after Refresh.
func (c *Calendar) Grid() scheduling.MonthGrid {
	if c.remote != nil && c.remote.Year == c.Year && c.remote.Month == c.Month {
		return *c.remote
	}
	return scheduling.BuildMonthGrid(c.Year, c.Month, c.clock())
}

// SelectDay picks a day of the displayed month. Past days clear the selection.
func (c *Calendar) SelectDay(day int) error {
	if day < 1 || day > scheduling.DaysIn(c.Year, c.Month) {
		c.clearSelection()
		return fmt.Errorf("%w: %d", ErrInvalidDay, day)
	}
	now := c.clock()
	date := time.Date(c.Year, c.Month, day, 0, 0, 0, 0, now.Location())
	if err := scheduling.CheckSelectableDay(date, now); err != nil {
		c.clearSelection()
		return err
	}
	c.selected = date
	c.hour = scheduling.NoHour
	c.slots = nil
	return nil
}

func (c *Calendar) clearSelection() {
	c.selected = time.Time{}
	c.hour = scheduling.NoHour
	c.slots = nil
}

// SelectedDay returns the chosen date, if any.
func (c *Calendar) SelectedDay() (time.Time, bool) {
	return c.selected, !c.selected.IsZero()
}

// SelectedHour returns the chosen hour or scheduling.NoHour.
func (c *Calendar) SelectedHour() scheduling.Hour { return c.hour }

// Slots loads the selected day's slots.
func (c *Calendar) Slots(ctx context.Context) ([]scheduling.Slot, error) {
	if c.selected.IsZero() {
		return nil, ErrNoDay
	}
	day, err := c.backend.DaySlots(ctx, c.selected.Format(scheduling.DateLayout))
	if err != nil {
		return nil, err
	}
	c.slots = day.Slots
	return day.Slots, nil
}

// ToggleHour selects h, or clears the selection when h is already selected.
// Only one hour can be selected at a time.
func (c *Calendar) ToggleHour(h scheduling.Hour) error {
	if c.selected.IsZero() {
		return ErrNoDay
	}
	if c.hour == h {
		c.hour = scheduling.NoHour
		return nil
	}
	if h < scheduling.OpeningHour || h >= scheduling.ClosingHour {
		return scheduling.ErrSlotUnavailable
	}
	if c.slots != nil && !slotAvailable(c.slots, h) {
		return scheduling.ErrSlotUnavailable
	}
	c.hour = h
	return nil
}

func slotAvailable(slots []scheduling.Slot, h scheduling.Hour) bool {
	for _, s := range slots {
		if s.Hour == h {
			return s.Available
		}
	}
	return false
}

// Reserve books the selected day and hour for guest.
func (c *Calendar) Reserve(ctx context.Context, guest Guest) (*models.Reservation, error) {
	if c.selected.IsZero() {
		return nil, ErrNoDay
	}
	if c.hour == scheduling.NoHour {
		return nil, ErrNoHour
	}
	res, err := c.backend.CreateGuestReservation(ctx, models.GuestReservationRequest{
		Date:       scheduling.FormatSlot(c.selected, c.hour),
		GuestName:  guest.Name,
		GuestPhone: guest.Phone,
	})
	if err != nil {
		return nil, err
	}
	c.hour = scheduling.NoHour
	c.slots = nil
	c.remote = nil
	return res, nil
}
