package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the global_enabled collection.
func (r *mongoGlobalEnabledRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "day", Value: 1}, {Key: "start_hour", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("day_start_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create global_enabled indexes: %w", err)
	}

	// The lock collection must exist before a transaction upserts into it.
	_, err = r.locks.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "day", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_day"),
	})
	if err != nil {
		return fmt.Errorf("failed to create global_enabled_locks index: %w", err)
	}
	return nil
}
