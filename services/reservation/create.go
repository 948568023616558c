package reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	reservationRepo "consultorio/database/repository/reservation"
	"consultorio/models"
	"consultorio/services/scheduling"
	"consultorio/services/tasks"
	"consultorio/utils"

	"go.uber.org/zap"
)

func (s *DefaultReservationService) CreateReservation(ctx context.Context, userID, slot string) (*models.Reservation, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	return s.book(ctx, slot, &models.Reservation{UserID: userID}, "patient")
}

func (s *DefaultReservationService) CreateGuestReservation(ctx context.Context, req models.GuestReservationRequest) (*models.Reservation, error) {
	name := strings.TrimSpace(req.GuestName)
	phone := strings.TrimSpace(req.GuestPhone)
	if name == "" || phone == "" {
		return nil, ErrMissingGuest
	}
	return s.book(ctx, req.Date, &models.Reservation{GuestName: name, GuestPhone: phone}, "guest")
}

// book checks the slot against the day's state and inserts the reservation. The
// unique index on active (date, hour) decides races the check cannot see.
func (s *DefaultReservationService) book(ctx context.Context, slot string, res *models.Reservation, kind string) (*models.Reservation, error) {
	day, hour, err := scheduling.ParseSlot(slot, s.Slots.Location())
	if err != nil {
		return nil, err
	}
	now := s.now()

	state, err := s.Slots.DayState(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("failed to load day state: %w", err)
	}
	if err := scheduling.CheckBookable(state, hour, now); err != nil {
		utils.Reservations.WithLabelValues("rejected", kind).Inc()
		return nil, err
	}

	res.Date = day.Format(scheduling.DateLayout)
	res.Hour = hour
	if err := s.Repo.Create(ctx, res); err != nil {
		if errors.Is(err, reservationRepo.ErrSlotTaken) {
			utils.Reservations.WithLabelValues("conflict", kind).Inc()
			return nil, scheduling.ErrSlotUnavailable
		}
		return nil, err
	}
	utils.Reservations.WithLabelValues("created", kind).Inc()
	utils.GetLogger().Info("reservation created",
		zap.String("id", res.ID), zap.String("date", res.Date), zap.String("hour", res.Hour.String()), zap.String("kind", kind))

	s.scheduleReminder(ctx, res, scheduling.SlotTime(day, hour), now)
	return res, nil
}

func (s *DefaultReservationService) scheduleReminder(ctx context.Context, res *models.Reservation, start, now time.Time) {
	if s.Queue == nil {
		return
	}
	lead := s.ReminderLead
	if lead <= 0 {
		lead = 24 * time.Hour
	}
	fireAt := start.Add(-lead)
	if !fireAt.After(now) {
		return
	}

	payload := models.ReminderPayload{
		ReservationID: res.ID,
		Slot:          start.Format(scheduling.SlotLayout),
		UserID:        res.UserID,
		GuestName:     res.GuestName,
		GuestPhone:    res.GuestPhone,
	}
	task, opts, err := tasks.NewReminderTask(payload, fireAt)
	if err != nil {
		utils.GetLogger().Error("failed to build reminder task", zap.Error(err))
		return
	}
	if _, err := s.Queue.EnqueueContext(ctx, task, opts...); err != nil {
		utils.GetLogger().Error("failed to enqueue reminder", zap.String("reservationId", res.ID), zap.Error(err))
	}
}
