package reservation

import (
	"context"
	"errors"

	"consultorio/models"
	"consultorio/services/scheduling"
	"consultorio/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func (s *DefaultReservationService) GetReservation(ctx context.Context, id string) (*models.Reservation, error) {
	res, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	return res, err
}

// ListReservations lists every reservation in [from, to]. Empty bounds are open;
// with both empty the listing starts today.
func (s *DefaultReservationService) ListReservations(ctx context.Context, from, to string) ([]models.Reservation, error) {
	loc := s.Slots.Location()
	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if _, err := scheduling.ParseDate(d, loc); err != nil {
			return nil, err
		}
	}
	if from == "" && to == "" {
		from = s.now().Format(scheduling.DateLayout)
	}

	all, err := s.Repo.GetAll(ctx, from)
	if err != nil {
		return nil, err
	}
	if to == "" {
		return all, nil
	}
	out := make([]models.Reservation, 0, len(all))
	for _, r := range all {
		if r.Date <= to {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *DefaultReservationService) ListUserReservations(ctx context.Context, userID string) ([]models.Reservation, error) {
	return s.Repo.GetByUser(ctx, userID)
}

// CancelReservation lets an admin cancel anything and a patient cancel their own.
func (s *DefaultReservationService) CancelReservation(ctx context.Context, id string, actor Actor) (*models.Reservation, error) {
	existing, err := s.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Admin && existing.UserID != actor.UserID {
		return nil, ErrForbidden
	}
	if existing.Status == models.ReservationCancelled {
		return existing, nil
	}

	res, err := s.Repo.Cancel(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	kind := "guest"
	if res.UserID != "" {
		kind = "patient"
	}
	utils.Reservations.WithLabelValues("cancelled", kind).Inc()
	utils.GetLogger().Info("reservation cancelled", zap.String("id", id), zap.Bool("byAdmin", actor.Admin))
	return res, nil
}
