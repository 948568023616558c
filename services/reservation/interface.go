package reservation

import (
	"context"
	"errors"
	"time"

	reservationRepo "consultorio/database/repository/reservation"
	"consultorio/models"
	"consultorio/services/scheduling"
	"consultorio/services/tasks"
)

var (
	ErrNotFound     = errors.New("reservation not found")
	ErrForbidden    = errors.New("reservation belongs to another user")
	ErrMissingGuest = errors.New("guest name and phone are required")
)

// SlotChecker is the part of the availability service bookings depend on.
type SlotChecker interface {
	DayState(ctx context.Context, date time.Time) (scheduling.DayState, error)
	Location() *time.Location
}

// Actor identifies who asks for a cancellation.
type Actor struct {
	UserID string
	Admin  bool
}

type ReservationService interface {
	CreateReservation(ctx context.Context, userID, slot string) (*models.Reservation, error)
	CreateGuestReservation(ctx context.Context, req models.GuestReservationRequest) (*models.Reservation, error)
	GetReservation(ctx context.Context, id string) (*models.Reservation, error)
	ListReservations(ctx context.Context, from, to string) ([]models.Reservation, error)
	ListUserReservations(ctx context.Context, userID string) ([]models.Reservation, error)
	CancelReservation(ctx context.Context, id string, actor Actor) (*models.Reservation, error)
	ExportICS(ctx context.Context, from, to string) ([]byte, error)
}

// DefaultReservationService is the production implementation. Queue may be nil,
// in which case no reminders are scheduled.
type DefaultReservationService struct {
	Repo         reservationRepo.ReservationRepository
	Slots        SlotChecker
	Queue        tasks.Enqueuer
	ReminderLead time.Duration
	Clock        func() time.Time
}

func (s *DefaultReservationService) now() time.Time {
	loc := s.Slots.Location()
	if s.Clock != nil {
		return s.Clock().In(loc)
	}
	return time.Now().In(loc)
}
