// File: database/repository/availability/interface.go
package availabilityRepo

import (
	"context"
	"fmt"

	"consultorio/database"
	"consultorio/models"
	"consultorio/services/scheduling"

	"go.mongodb.org/mongo-driver/mongo"
)

// CheckFunc vets new entries against the stored entries of the days they touch.
type CheckFunc func(existing []models.GlobalEnabled) error

// GlobalEnabledRepository stores the weekly availability ranges.
type GlobalEnabledRepository interface {
	GetAll(ctx context.Context) ([]models.GlobalEnabled, error)
	GetByDay(ctx context.Context, day scheduling.Weekday) ([]models.GlobalEnabled, error)
	GetByID(ctx context.Context, id string) (*models.GlobalEnabled, error)
	// CreateChecked inserts entries only if check accepts the current ranges of their days.
	// Writers to the same day are serialized, so check never sees a stale day.
	CreateChecked(ctx context.Context, entries []models.GlobalEnabled, check CheckFunc) ([]models.GlobalEnabled, error)
	ReplaceDay(ctx context.Context, day scheduling.Weekday, entries []models.GlobalEnabled) ([]models.GlobalEnabled, error)
	DeleteByID(ctx context.Context, id string) error
}

type mongoGlobalEnabledRepo struct {
	coll  *mongo.Collection
	locks *mongo.Collection
}

// NewMongoGlobalEnabledRepo constructs a new MongoDB GlobalEnabledRepository.
func NewMongoGlobalEnabledRepo() GlobalEnabledRepository {
	repo := &mongoGlobalEnabledRepo{
		coll:  database.DB().Collection("global_enabled"),
		locks: database.DB().Collection("global_enabled_locks"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		fmt.Printf("failed to create global_enabled indexes: %v\n", err)
	}
	return repo
}
