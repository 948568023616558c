package availability

import (
	"context"
	"fmt"

	"consultorio/models"
	"consultorio/services/scheduling"
	"consultorio/utils"

	"go.uber.org/zap"
)

// BlockHours takes specific hours of specific dates out of the calendar.
func (s *DefaultAvailabilityService) BlockHours(ctx context.Context, inputs []models.BlockHourInput) ([]models.BlockedHour, error) {
	if len(inputs) == 0 {
		return nil, ErrNothingToBlock
	}
	hours := make([]models.BlockedHour, 0, len(inputs))
	for _, in := range inputs {
		date, err := scheduling.ParseDate(in.Date, s.Location())
		if err != nil {
			return nil, err
		}
		if !in.Hour.InBusinessHours() || in.Hour >= scheduling.ClosingHour {
			return nil, fmt.Errorf("%w: %s", scheduling.ErrOutsideBusinessHours, in.Hour)
		}
		hours = append(hours, models.BlockedHour{
			Date:   date.Format(scheduling.DateLayout),
			Hour:   in.Hour,
			Reason: in.Reason,
		})
	}

	created, err := s.Blocked.CreateMany(ctx, hours)
	if err != nil {
		return nil, err
	}
	utils.GetLogger().Info("hours blocked", zap.Int("count", len(created)))
	return created, nil
}

// ListBlocked lists blocks dated from onwards, today when from is empty.
func (s *DefaultAvailabilityService) ListBlocked(ctx context.Context, from string) ([]models.BlockedHour, error) {
	if from == "" {
		from = s.now().Format(scheduling.DateLayout)
	} else if _, err := scheduling.ParseDate(from, s.Location()); err != nil {
		return nil, err
	}
	return s.Blocked.GetFrom(ctx, from)
}

func (s *DefaultAvailabilityService) UnblockHour(ctx context.Context, id string) error {
	return s.Blocked.DeleteByID(ctx, id)
}

// PurgePastBlocks drops blocks dated before today.
func (s *DefaultAvailabilityService) PurgePastBlocks(ctx context.Context) (int64, error) {
	return s.Blocked.DeleteBefore(ctx, s.now().Format(scheduling.DateLayout))
}
