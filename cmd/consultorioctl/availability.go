package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"consultorio/services/scheduling"
	"consultorio/views/editor"

	"github.com/spf13/cobra"
)

var availabilityCmd = &cobra.Command{
	Use:     "availability",
	Aliases: []string{"avail"},
	Short:   "Show and edit the weekly availability (admin)",
}

var availShowCmd = &cobra.Command{
	Use:   "show [day]",
	Short: "Show the weekly grid, or one day's ranges",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		ed := editor.New(newStore())
		if err := ed.Load(ctx); err != nil {
			return err
		}
		if len(args) == 0 {
			grid := ed.Grid()
			if ok, err := emit(cmd.OutOrStdout(), grid); ok {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderWeek(grid))
			return nil
		}
		if err := ed.SelectDay(args[0]); err != nil {
			return err
		}
		if ok, err := emit(cmd.OutOrStdout(), ed.Draft); ok {
			return err
		}
		printRows(cmd, ed.Day, ed.Draft)
		return nil
	},
}

var availAddCmd = &cobra.Command{
	Use:   "add <day> <start> <end>",
	Short: "Add a range to a weekday",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		ed, err := openDay(ctx, args[0])
		if err != nil {
			return err
		}
		r, err := parseRange(args[1] + "-" + args[2])
		if err != nil {
			return err
		}
		if err := addRange(ed, r); err != nil {
			return err
		}
		return saveDay(ctx, cmd, ed)
	},
}

var availDeleteCmd = &cobra.Command{
	Use:   "delete <day> <index>",
	Short: "Delete the n-th range (from `availability show <day>`) of a weekday",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		ed, err := openDay(ctx, args[0])
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid index %q", args[1])
		}
		if err := ed.Delete(ctx, n-1); err != nil {
			return err
		}
		printRows(cmd, ed.Day, ed.Draft)
		return nil
	},
}

var availSaveCmd = &cobra.Command{
	Use:   "save <day> [HH-HH ...]",
	Short: "Replace all ranges of a weekday; no ranges clears the day",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		ed, err := openDay(ctx, args[0])
		if err != nil {
			return err
		}
		if err := ed.ClearDraft(); err != nil {
			return err
		}
		for _, arg := range args[1:] {
			r, err := parseRange(arg)
			if err != nil {
				return err
			}
			if err := addRange(ed, r); err != nil {
				return err
			}
		}
		return saveDay(ctx, cmd, ed)
	},
}

func init() {
	availabilityCmd.AddCommand(availShowCmd, availAddCmd, availDeleteCmd, availSaveCmd)
}

func openDay(ctx context.Context, day string) (*editor.Editor, error) {
	ed := editor.New(newStore())
	if err := ed.Load(ctx); err != nil {
		return nil, err
	}
	if err := ed.SelectDay(day); err != nil {
		return nil, err
	}
	return ed, nil
}

func addRange(ed *editor.Editor, r scheduling.HourRange) error {
	ed.SetStart(r.Start)
	ed.SetEnd(r.End)
	return ed.Add()
}

// parseRange reads "9-12" or "09:00-12:00".
func parseRange(s string) (scheduling.HourRange, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return scheduling.HourRange{}, fmt.Errorf("invalid range %q: want start-end", s)
	}
	start, err := scheduling.ParseHour(parts[0])
	if err != nil {
		return scheduling.HourRange{}, err
	}
	end, err := scheduling.ParseHour(parts[1])
	if err != nil {
		return scheduling.HourRange{}, err
	}
	return scheduling.HourRange{Start: start, End: end}, nil
}

// saveDay persists the open day and prints what the server kept.
func saveDay(ctx context.Context, cmd *cobra.Command, ed *editor.Editor) error {
	day := ed.Day
	if err := ed.Save(ctx); err != nil {
		return err
	}
	printRows(cmd, day, ed.Rows(day))
	return nil
}

func printRows(cmd *cobra.Command, day scheduling.Weekday, rows []editor.Row) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, headerStyle.Render(day.Label()))
	if len(rows) == 0 {
		fmt.Fprintln(out, takenStyle.Render("  sin horarios"))
		return
	}
	for i, row := range rows {
		fmt.Fprintf(out, "  %d. %s\n", i+1, row.Range)
	}
}
