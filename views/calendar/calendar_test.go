package calendar

import (
	"context"
	"testing"
	"time"

	"consultorio/apitest"
	"consultorio/client"
	"consultorio/services/scheduling"
	"consultorio/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCalendar(t *testing.T) *Calendar {
	t.Helper()
	srv := apitest.New(t)
	s := store.New(client.New(srv.APIURL(), nil))
	return New(s, time.UTC, func() time.Time { return apitest.Now })
}

func TestOpensOnCurrentMonthAndNavigates(t *testing.T) {
	c := newCalendar(t)
	assert.Equal(t, 2026, c.Year)
	assert.Equal(t, time.March, c.Month)

	c.Prev()
	c.Prev()
	c.Prev()
	assert.Equal(t, 2025, c.Year)
	assert.Equal(t, time.December, c.Month)
	c.Next()
	assert.Equal(t, time.January, c.Month)
	assert.Equal(t, 2026, c.Grid().Year)
}

func TestSelectDay(t *testing.T) {
	c := newCalendar(t)

	require.NoError(t, c.SelectDay(2))
	day, ok := c.SelectedDay()
	require.True(t, ok)
	assert.Equal(t, "2026-03-02", day.Format(scheduling.DateLayout))

	assert.ErrorIs(t, c.SelectDay(1), scheduling.ErrPastDay)
	_, ok = c.SelectedDay()
	assert.False(t, ok, "a past day clears the selection")

	assert.ErrorIs(t, c.SelectDay(32), ErrInvalidDay)
}

func TestToggleHourAndReserve(t *testing.T) {
	c := newCalendar(t)
	ctx := context.Background()

	assert.ErrorIs(t, c.ToggleHour(10), ErrNoDay)
	_, err := c.Reserve(ctx, Guest{Name: "Luis", Phone: "11"})
	assert.ErrorIs(t, err, ErrNoDay)

	require.NoError(t, c.SelectDay(4))
	_, err = c.Slots(ctx)
	require.NoError(t, err)

	assert.ErrorIs(t, c.ToggleHour(13), scheduling.ErrSlotUnavailable)
	require.NoError(t, c.ToggleHour(10))
	assert.Equal(t, scheduling.Hour(10), c.SelectedHour())
	require.NoError(t, c.ToggleHour(10))
	assert.Equal(t, scheduling.NoHour, c.SelectedHour())

	_, err = c.Reserve(ctx, Guest{Name: "Luis", Phone: "11"})
	assert.ErrorIs(t, err, ErrNoHour)

	require.NoError(t, c.ToggleHour(15))
	require.NoError(t, c.ToggleHour(16), "selecting another hour replaces the first")
	res, err := c.Reserve(ctx, Guest{Name: "Luis", Phone: "1144440000"})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-04", res.Date)
	assert.Equal(t, scheduling.Hour(16), res.Hour)
	assert.Equal(t, scheduling.NoHour, c.SelectedHour())

	slots, err := c.Slots(ctx)
	require.NoError(t, err)
	for _, s := range slots {
		if s.Hour == 16 {
			assert.True(t, s.Reserved)
		}
	}
	assert.ErrorIs(t, c.ToggleHour(16), scheduling.ErrSlotUnavailable)
}

func TestToggleHourRejectsHoursOutsideTheBusinessDay(t *testing.T) {
	c := newCalendar(t)
	require.NoError(t, c.SelectDay(2))

	for _, h := range []scheduling.Hour{33, 24, scheduling.ClosingHour, 7, -3} {
		assert.ErrorIs(t, c.ToggleHour(h), scheduling.ErrSlotUnavailable, "hour %d", h)
		assert.Equal(t, scheduling.NoHour, c.SelectedHour())
	}
	_, err := c.Reserve(context.Background(), Guest{Name: "Luis", Phone: "11"})
	assert.ErrorIs(t, err, ErrNoHour, "nothing may roll over into the next day")

	require.NoError(t, c.ToggleHour(scheduling.ClosingHour-1))
	assert.Equal(t, scheduling.ClosingHour-1, c.SelectedHour())
}

func TestRefreshFlagsAvailability(t *testing.T) {
	c := newCalendar(t)
	require.NoError(t, c.Refresh(context.Background()))

	grid := c.Grid()
	var open, weekend int
	grid.Days(func(cell *scheduling.DayCell) {
		if cell.HasAvailability {
			open++
		}
		if cell.Day == 7 && cell.HasAvailability {
			weekend++
		}
	})
	assert.Positive(t, open)
	assert.Zero(t, weekend, "saturday has no opening hours")

	c.Next()
	grid = c.Grid()
	assert.Equal(t, time.April, grid.Month)
	grid.Days(func(cell *scheduling.DayCell) { assert.False(t, cell.HasAvailability) })
}
