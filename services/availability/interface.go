package availability

import (
	"context"
	"errors"
	"time"

	availabilityRepo "consultorio/database/repository/availability"
	blockedRepo "consultorio/database/repository/blocked"
	"consultorio/models"
	"consultorio/services/scheduling"

	"github.com/go-redis/redis/v8"
)

var (
	ErrNothingToAdd   = errors.New("no ranges to add")
	ErrNothingToBlock = errors.New("no hours to block")
)

// AvailabilityService manages the weekly ranges, one-off blocks and the
// slot views derived from them.
type AvailabilityService interface {
	// Weekly ranges
	GetGlobalEnabled(ctx context.Context) ([]models.GlobalEnabled, error)
	GetGlobalEnabledByDay(ctx context.Context, day string) ([]models.GlobalEnabled, error)
	AddGlobalEnabled(ctx context.Context, inputs []models.GlobalEnabledInput) ([]models.GlobalEnabled, error)
	ReplaceDay(ctx context.Context, day string, ranges []scheduling.HourRange) ([]models.GlobalEnabled, error)
	DeleteGlobalEnabled(ctx context.Context, id string) error
	StartHours(ctx context.Context, day string) ([]scheduling.Hour, error)
	EndHours(ctx context.Context, day string, start scheduling.Hour) ([]scheduling.Hour, error)
	WeeklyGrid(ctx context.Context) (scheduling.WeeklyGrid, error)

	// Blocked hours
	BlockHours(ctx context.Context, inputs []models.BlockHourInput) ([]models.BlockedHour, error)
	ListBlocked(ctx context.Context, from string) ([]models.BlockedHour, error)
	UnblockHour(ctx context.Context, id string) error
	PurgePastBlocks(ctx context.Context) (int64, error)

	// Derived views
	DayState(ctx context.Context, date time.Time) (scheduling.DayState, error)
	DaySlots(ctx context.Context, date string) (*models.DayAvailability, error)
	MonthCalendar(ctx context.Context, year int, month time.Month) (scheduling.MonthGrid, error)
	Location() *time.Location
}

// ReservationLookup is the slice of the reservation store availability needs.
type ReservationLookup interface {
	GetActiveByDate(ctx context.Context, date string) ([]models.Reservation, error)
	GetActiveBetween(ctx context.Context, from, to string) ([]models.Reservation, error)
}

// DefaultAvailabilityService is the production implementation. Cache may be nil.
type DefaultAvailabilityService struct {
	Weekly       availabilityRepo.GlobalEnabledRepository
	Blocked      blockedRepo.BlockedHourRepository
	Reservations ReservationLookup
	Cache        *redis.Client
	Loc          *time.Location
	Clock        func() time.Time
}

func (s *DefaultAvailabilityService) Location() *time.Location {
	if s.Loc == nil {
		return time.UTC
	}
	return s.Loc
}

func (s *DefaultAvailabilityService) now() time.Time {
	if s.Clock != nil {
		return s.Clock().In(s.Location())
	}
	return time.Now().In(s.Location())
}
