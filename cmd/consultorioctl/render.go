package main

import (
	"fmt"
	"strings"

	"consultorio/services/scheduling"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	freeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	takenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	todayStyle  = lipgloss.NewStyle().Underline(true)
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

var monthNames = [...]string{"", "Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre"}

// renderMonth draws a Sunday-first month; days with free slots are highlighted.
func renderMonth(g scheduling.MonthGrid) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s %d", monthNames[g.Month], g.Year)))
	b.WriteString("\n Do  Lu  Ma  Mi  Ju  Vi  Sa\n")
	for _, week := range g.Weeks {
		empty := true
		for _, cell := range week {
			if cell.Day != 0 {
				empty = false
			}
		}
		if empty {
			continue
		}
		for _, cell := range week {
			if cell.Day == 0 {
				b.WriteString("    ")
				continue
			}
			text := fmt.Sprintf("%3d", cell.Day)
			style := takenStyle
			if cell.HasAvailability {
				style = freeStyle
			}
			if cell.Today {
				style = style.Inherit(todayStyle)
			}
			b.WriteString(style.Render(text) + " ")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderSlots(date string, slots []scheduling.Slot) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(date) + "\n")
	for _, s := range slots {
		state := "libre"
		style := freeStyle
		switch {
		case s.Available:
		case s.Reserved:
			state, style = "reservado", takenStyle
		case s.Blocked:
			state, style = "bloqueado", takenStyle
		case s.Past:
			state, style = "pasado", takenStyle
		default:
			state, style = "no disponible", takenStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("  %s  %s", s.Label, state)) + "\n")
	}
	return b.String()
}

// renderWeek draws the weekly availability grid, one column per business hour.
func renderWeek(g scheduling.WeeklyGrid) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-10s", ""))
	for _, h := range g.Hours {
		b.WriteString(fmt.Sprintf("%3d", int(h)))
	}
	b.WriteString("\n")
	for _, row := range g.Rows {
		b.WriteString(headerStyle.Render(fmt.Sprintf("%-10s", row.Label)))
		for _, on := range row.Cells {
			if on {
				b.WriteString(freeStyle.Render("  #"))
			} else {
				b.WriteString(takenStyle.Render("  ."))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
