package reservation

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"consultorio/models"

	"github.com/emersion/go-ical"
)

// ExportICS renders the active reservations of [from, to] as an iCalendar feed.
func (s *DefaultReservationService) ExportICS(ctx context.Context, from, to string) ([]byte, error) {
	list, err := s.ListReservations(ctx, from, to)
	if err != nil {
		return nil, err
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//consultorio//reservas//ES")

	stamp := s.now().UTC()
	loc := s.Slots.Location()
	for _, r := range list {
		if r.Status != models.ReservationActive {
			continue
		}
		start, err := r.Start(loc)
		if err != nil {
			return nil, err
		}
		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, r.ID+"@consultorio")
		event.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
		event.Props.SetDateTime(ical.PropDateTimeStart, start)
		event.Props.SetDateTime(ical.PropDateTimeEnd, start.Add(time.Hour))
		event.Props.SetText(ical.PropSummary, summary(r))
		event.Props.SetText(ical.PropStatus, "CONFIRMED")
		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("failed to encode calendar: %w", err)
	}
	return buf.Bytes(), nil
}

func summary(r models.Reservation) string {
	if r.GuestName != "" {
		return fmt.Sprintf("Consulta: %s (%s)", r.GuestName, r.GuestPhone)
	}
	return "Consulta: paciente " + r.UserID
}
