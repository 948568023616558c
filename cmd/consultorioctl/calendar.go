package main

import (
	"context"
	"fmt"
	"time"

	"consultorio/services/scheduling"
	"consultorio/views/calendar"

	"github.com/spf13/cobra"
)

var (
	calYear, calMonth int
	guestName         string
	guestPhone        string
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show the month calendar with the days that still have free hours",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		cal, err := newCalendar()
		if err != nil {
			return err
		}
		if calYear != 0 && calMonth != 0 {
			cal.Year, cal.Month = calYear, time.Month(calMonth)
		}
		if err := cal.Refresh(ctx); err != nil {
			return err
		}
		grid := cal.Grid()
		if ok, err := emit(cmd.OutOrStdout(), grid); ok {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), renderMonth(grid))
		return nil
	},
}

var slotsCmd = &cobra.Command{
	Use:   "slots <YYYY-MM-DD>",
	Short: "List the hours of a day and whether they can be booked",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		cal, err := newCalendar()
		if err != nil {
			return err
		}
		if err := selectDate(cal, args[0]); err != nil {
			return err
		}
		slots, err := cal.Slots(ctx)
		if err != nil {
			return err
		}
		if ok, err := emit(cmd.OutOrStdout(), slots); ok {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), renderSlots(args[0], slots))
		return nil
	},
}

var reserveCmd = &cobra.Command{
	Use:   "reserve <YYYY-MM-DD> <HH:00>",
	Short: "Book a free hour as a guest",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		cal, err := newCalendar()
		if err != nil {
			return err
		}
		if err := selectDate(cal, args[0]); err != nil {
			return err
		}
		hour, err := scheduling.ParseHour(args[1])
		if err != nil {
			return err
		}
		if _, err := cal.Slots(ctx); err != nil {
			return err
		}
		if err := cal.ToggleHour(hour); err != nil {
			return err
		}
		res, err := cal.Reserve(ctx, calendar.Guest{Name: guestName, Phone: guestPhone})
		if err != nil {
			return err
		}
		if ok, err := emit(cmd.OutOrStdout(), res); ok {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render(fmt.Sprintf("reserved %s %s (id %s)", res.Date, res.Hour, res.ID)))
		return nil
	},
}

func init() {
	calendarCmd.Flags().IntVar(&calYear, "year", 0, "year to show (default current)")
	calendarCmd.Flags().IntVar(&calMonth, "month", 0, "month to show, 1-12 (default current)")

	reserveCmd.Flags().StringVar(&guestName, "name", "", "guest name")
	reserveCmd.Flags().StringVar(&guestPhone, "phone", "", "guest phone")
	_ = reserveCmd.MarkFlagRequired("name")
	_ = reserveCmd.MarkFlagRequired("phone")
}

func newCalendar() (*calendar.Calendar, error) {
	loc, err := location()
	if err != nil {
		return nil, err
	}
	return calendar.New(newStore(), loc, time.Now), nil
}

func selectDate(cal *calendar.Calendar, s string) error {
	loc, err := location()
	if err != nil {
		return err
	}
	date, err := scheduling.ParseDate(s, loc)
	if err != nil {
		return err
	}
	cal.Year, cal.Month = date.Year(), date.Month()
	return cal.SelectDay(date.Day())
}
