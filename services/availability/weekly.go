package availability

import (
	"context"

	"consultorio/models"
	"consultorio/services/scheduling"
	"consultorio/utils"

	"go.uber.org/zap"
)

// GetGlobalEnabled returns every weekly range, read through the Redis cache.
func (s *DefaultAvailabilityService) GetGlobalEnabled(ctx context.Context) ([]models.GlobalEnabled, error) {
	if s.Cache != nil {
		var cached []models.GlobalEnabled
		hit, err := utils.GetJSON(ctx, s.Cache, utils.WeeklyAvailabilityKey, &cached)
		if err != nil {
			utils.GetLogger().Warn("weekly availability cache read failed", zap.Error(err))
		}
		if hit {
			utils.AvailabilityCache.WithLabelValues("hit").Inc()
			return cached, nil
		}
		utils.AvailabilityCache.WithLabelValues("miss").Inc()
	}

	entries, err := s.Weekly.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if err := utils.SetJSON(ctx, s.Cache, utils.WeeklyAvailabilityKey, entries, utils.WeeklyAvailabilityTTL); err != nil {
			utils.GetLogger().Warn("weekly availability cache write failed", zap.Error(err))
		}
	}
	return entries, nil
}

func (s *DefaultAvailabilityService) invalidate(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, utils.WeeklyAvailabilityKey).Err(); err != nil {
		utils.GetLogger().Warn("weekly availability cache invalidation failed", zap.Error(err))
	}
}

func (s *DefaultAvailabilityService) GetGlobalEnabledByDay(ctx context.Context, day string) ([]models.GlobalEnabled, error) {
	d, err := scheduling.ParseWeekday(day)
	if err != nil {
		return nil, err
	}
	all, err := s.GetGlobalEnabled(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.GlobalEnabled{}
	for _, e := range all {
		if e.Day == d {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *DefaultAvailabilityService) dayRanges(ctx context.Context, day string) ([]scheduling.HourRange, error) {
	entries, err := s.GetGlobalEnabledByDay(ctx, day)
	if err != nil {
		return nil, err
	}
	ranges := make([]scheduling.HourRange, 0, len(entries))
	for _, e := range entries {
		ranges = append(ranges, e.Range())
	}
	return ranges, nil
}

// AddGlobalEnabled validates every input against the stored ranges of its day and
// against the other inputs. Nothing is written unless all of them pass.
func (s *DefaultAvailabilityService) AddGlobalEnabled(ctx context.Context, inputs []models.GlobalEnabledInput) ([]models.GlobalEnabled, error) {
	if len(inputs) == 0 {
		return nil, ErrNothingToAdd
	}
	entries := make([]models.GlobalEnabled, 0, len(inputs))
	for _, in := range inputs {
		day, err := scheduling.ParseWeekday(in.Day)
		if err != nil {
			return nil, err
		}
		entries = append(entries, models.GlobalEnabled{Day: day, StartHour: in.StartHour, EndHour: in.EndHour})
	}

	created, err := s.Weekly.CreateChecked(ctx, entries, func(existing []models.GlobalEnabled) error {
		return fitsWeek(existing, entries)
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	utils.GetLogger().Info("weekly availability added", zap.Int("count", len(created)))
	return created, nil
}

// fitsWeek adds entries one by one to the existing ranges of their day.
func fitsWeek(existing, entries []models.GlobalEnabled) error {
	working := models.GroupByDay(existing)
	for _, e := range entries {
		next, err := scheduling.AddRange(working[e.Day], e.Range())
		if err != nil {
			return err
		}
		working[e.Day] = next
	}
	return nil
}

// ReplaceDay swaps the stored ranges of a weekday for ranges.
func (s *DefaultAvailabilityService) ReplaceDay(ctx context.Context, day string, ranges []scheduling.HourRange) ([]models.GlobalEnabled, error) {
	d, err := scheduling.ParseWeekday(day)
	if err != nil {
		return nil, err
	}
	if err := scheduling.ValidateDay(ranges); err != nil {
		return nil, err
	}

	sorted := append([]scheduling.HourRange(nil), ranges...)
	scheduling.SortRanges(sorted)
	entries := make([]models.GlobalEnabled, 0, len(sorted))
	for _, r := range sorted {
		entries = append(entries, models.GlobalEnabled{Day: d, StartHour: r.Start, EndHour: r.End})
	}

	saved, err := s.Weekly.ReplaceDay(ctx, d, entries)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	utils.GetLogger().Info("weekly availability replaced", zap.String("day", string(d)), zap.Int("ranges", len(saved)))
	return saved, nil
}

func (s *DefaultAvailabilityService) DeleteGlobalEnabled(ctx context.Context, id string) error {
	if err := s.Weekly.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *DefaultAvailabilityService) StartHours(ctx context.Context, day string) ([]scheduling.Hour, error) {
	ranges, err := s.dayRanges(ctx, day)
	if err != nil {
		return nil, err
	}
	return scheduling.AvailableStartHours(ranges), nil
}

func (s *DefaultAvailabilityService) EndHours(ctx context.Context, day string, start scheduling.Hour) ([]scheduling.Hour, error) {
	ranges, err := s.dayRanges(ctx, day)
	if err != nil {
		return nil, err
	}
	return scheduling.AvailableEndHours(start, ranges), nil
}

func (s *DefaultAvailabilityService) WeeklyGrid(ctx context.Context) (scheduling.WeeklyGrid, error) {
	all, err := s.GetGlobalEnabled(ctx)
	if err != nil {
		return scheduling.WeeklyGrid{}, err
	}
	return scheduling.BuildWeeklyGrid(models.GroupByDay(all)), nil
}
