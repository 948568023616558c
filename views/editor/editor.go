// Package editor drives the admin's weekly availability form.
package editor

import (
	"context"
	"errors"

	"consultorio/models"
	"consultorio/services/scheduling"
	"consultorio/store"
)

var (
	ErrNoDay     = errors.New("select a day first")
	ErrNoChanges = errors.New("nothing to save")
)

// Store is the subset of the state container the editor needs.
type Store interface {
	Snapshot() store.State
	GetGlobalEnabled(ctx context.Context) error
	DeleteGlobalEnabled(ctx context.Context, id string) error
	ReplaceDay(ctx context.Context, day string, ranges []scheduling.HourRange) error
}

// Row is one range of the selected day. ID is empty until the range is saved.
type Row struct {
	ID    string
	Range scheduling.HourRange
}

func (r Row) Persisted() bool { return r.ID != "" }

type Editor struct {
	store   Store
	entries []models.GlobalEnabled

	Day         scheduling.Weekday
	Draft       []Row
	Start       scheduling.Hour
	End         scheduling.Hour
	Err         string
	FormEnabled bool
	HasChanges  bool
}

func New(s Store) *Editor {
	return &Editor{store: s, Start: scheduling.NoHour, End: scheduling.NoHour}
}

// Load fetches the weekly ranges.
func (e *Editor) Load(ctx context.Context) error {
	if err := e.store.GetGlobalEnabled(ctx); err != nil {
		return e.fail(err)
	}
	e.entries = e.store.Snapshot().GlobalEnabled
	return nil
}

// SelectDay copies the day's saved ranges into the draft and opens the form.
func (e *Editor) SelectDay(day string) error {
	d, err := scheduling.ParseWeekday(day)
	if err != nil {
		return e.fail(err)
	}
	e.Day = d
	e.Draft = e.rowsFor(d)
	e.Start, e.End = scheduling.NoHour, scheduling.NoHour
	e.Err = ""
	e.FormEnabled = true
	e.HasChanges = false
	return nil
}

func (e *Editor) rowsFor(d scheduling.Weekday) []Row {
	var rows []Row
	for _, g := range e.entries {
		if g.Day == d {
			rows = append(rows, Row{ID: g.ID, Range: g.Range()})
		}
	}
	sortRows(rows)
	return rows
}

// SetStart picks a start hour and resets the end hour.
func (e *Editor) SetStart(h scheduling.Hour) {
	e.Start = h
	e.End = scheduling.NoHour
}

func (e *Editor) SetEnd(h scheduling.Hour) { e.End = h }

// StartOptions lists hours not covered by the draft.
func (e *Editor) StartOptions() []scheduling.Hour {
	return scheduling.AvailableStartHours(e.ranges())
}

// EndOptions lists valid ends for the chosen start.
func (e *Editor) EndOptions() []scheduling.Hour {
	if e.Start == scheduling.NoHour {
		return nil
	}
	return scheduling.AvailableEndHours(e.Start, e.ranges())
}

// Add appends Start..End to the draft.
func (e *Editor) Add() error {
	if !e.editing() {
		return e.fail(ErrNoDay)
	}
	if e.Start == scheduling.NoHour || e.End == scheduling.NoHour || e.Start >= e.End {
		return e.fail(scheduling.ErrInvalidHours)
	}
	candidate := scheduling.HourRange{Start: e.Start, End: e.End}
	if _, err := scheduling.AddRange(e.ranges(), candidate); err != nil {
		return e.fail(err)
	}
	e.Draft = append(e.Draft, Row{Range: candidate})
	sortRows(e.Draft)
	e.Start, e.End = scheduling.NoHour, scheduling.NoHour
	e.Err = ""
	e.HasChanges = true
	return nil
}

// Delete removes draft row i. Saved rows are deleted on the server right away.
func (e *Editor) Delete(ctx context.Context, i int) error {
	if i < 0 || i >= len(e.Draft) {
		return e.fail(scheduling.ErrRangeIndexOutOfBounds)
	}
	row := e.Draft[i]
	if row.Persisted() {
		if err := e.store.DeleteGlobalEnabled(ctx, row.ID); err != nil {
			return e.fail(err)
		}
		e.entries = e.store.Snapshot().GlobalEnabled
	}
	e.Draft = append(e.Draft[:i:i], e.Draft[i+1:]...)
	e.Err = ""
	e.HasChanges = true
	return nil
}

// ClearDraft empties the selected day so Save closes it entirely.
func (e *Editor) ClearDraft() error {
	if !e.editing() {
		return e.fail(ErrNoDay)
	}
	e.Draft = nil
	e.Err = ""
	e.HasChanges = true
	return nil
}

// Save replaces the selected day's ranges with the draft, then reloads and closes the form.
// The day must be selected again before the next edit.
func (e *Editor) Save(ctx context.Context) error {
	if !e.editing() {
		return e.fail(ErrNoDay)
	}
	if !e.HasChanges {
		return e.fail(ErrNoChanges)
	}
	if err := e.store.ReplaceDay(ctx, string(e.Day), e.ranges()); err != nil {
		return e.fail(err)
	}
	if err := e.Load(ctx); err != nil {
		return err
	}
	e.Day = ""
	e.Draft = nil
	e.Start, e.End = scheduling.NoHour, scheduling.NoHour
	e.Err = ""
	e.FormEnabled = false
	e.HasChanges = false
	return nil
}

// Rows returns the saved ranges of d.
func (e *Editor) Rows(d scheduling.Weekday) []Row {
	return e.rowsFor(d)
}

func (e *Editor) editing() bool {
	return e.FormEnabled && e.Day != ""
}

// Grid renders the week, showing the draft in place of the selected day's saved ranges.
func (e *Editor) Grid() scheduling.WeeklyGrid {
	byDay := models.GroupByDay(e.entries)
	if e.Day != "" && e.FormEnabled {
		byDay[e.Day] = e.ranges()
	}
	return scheduling.BuildWeeklyGrid(byDay)
}

func (e *Editor) ranges() []scheduling.HourRange {
	out := make([]scheduling.HourRange, 0, len(e.Draft))
	for _, r := range e.Draft {
		out = append(out, r.Range)
	}
	return out
}

func (e *Editor) fail(err error) error {
	e.Err = err.Error()
	return err
}

func sortRows(rows []Row) {
	for i := 1; i < len(rows); i++ {
		for j := i; j > 0 && rows[j].Range.Start < rows[j-1].Range.Start; j-- {
			rows[j], rows[j-1] = rows[j-1], rows[j]
		}
	}
}
