package reservationRepo

import (
	"context"
	"errors"

	"consultorio/models"
	"consultorio/services/scheduling"
)

// ErrSlotTaken is returned by Create when an active reservation already holds the slot.
var ErrSlotTaken = errors.New("slot already reserved")

type ReservationRepository interface {
	Create(ctx context.Context, r *models.Reservation) error
	GetByID(ctx context.Context, id string) (*models.Reservation, error)
	GetActiveByDate(ctx context.Context, date string) ([]models.Reservation, error)
	GetActiveBetween(ctx context.Context, from, to string) ([]models.Reservation, error)
	GetByUser(ctx context.Context, userID string) ([]models.Reservation, error)
	GetAll(ctx context.Context, from string) ([]models.Reservation, error)
	Cancel(ctx context.Context, id string) (*models.Reservation, error)
	IsReserved(ctx context.Context, date string, hour scheduling.Hour) (bool, error)
}
