package blockedRepo

import (
	"context"
	"fmt"
	"time"

	"consultorio/database"
	"consultorio/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BlockedHourRepository persists one-off hour blocks on concrete dates.
type BlockedHourRepository interface {
	CreateMany(ctx context.Context, hours []models.BlockedHour) ([]models.BlockedHour, error)
	GetByDate(ctx context.Context, date string) ([]models.BlockedHour, error)
	GetFrom(ctx context.Context, date string) ([]models.BlockedHour, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteBefore(ctx context.Context, date string) (int64, error)
}

type mongoBlockedHourRepo struct {
	coll *mongo.Collection
}

func NewMongoBlockedHourRepo() BlockedHourRepository {
	repo := &mongoBlockedHourRepo{coll: database.DB().Collection("blocked_hours")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create blocked_hours indexes: %v\n", err)
	}
	return repo
}

func (r *mongoBlockedHourRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "date", Value: 1}, {Key: "hour", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	return err
}

// CreateMany inserts the blocks, skipping hours that are already blocked.
func (r *mongoBlockedHourRepo) CreateMany(ctx context.Context, hours []models.BlockedHour) ([]models.BlockedHour, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	out := make([]models.BlockedHour, 0, len(hours))
	for _, h := range hours {
		if h.ID == "" {
			h.ID = uuid.New().String()
		}
		h.CreatedAt = now
		filter := bson.M{"date": h.Date, "hour": h.Hour}
		update := bson.M{"$setOnInsert": h}
		if _, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			return nil, fmt.Errorf("failed to block %s %s: %w", h.Date, h.Hour, err)
		}
		out = append(out, h)
	}
	return out, nil
}

func (r *mongoBlockedHourRepo) GetByDate(ctx context.Context, date string) ([]models.BlockedHour, error) {
	return r.find(ctx, bson.M{"date": date})
}

// GetFrom lists blocks on date or later; dates compare lexically as YYYY-MM-DD.
func (r *mongoBlockedHourRepo) GetFrom(ctx context.Context, date string) ([]models.BlockedHour, error) {
	return r.find(ctx, bson.M{"date": bson.M{"$gte": date}})
}

func (r *mongoBlockedHourRepo) find(ctx context.Context, filter bson.M) ([]models.BlockedHour, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "hour", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blocked hours: %w", err)
	}
	defer cursor.Close(ctx)

	hours := []models.BlockedHour{}
	if err := cursor.All(ctx, &hours); err != nil {
		return nil, fmt.Errorf("error decoding blocked hours: %w", err)
	}
	return hours, nil
}

func (r *mongoBlockedHourRepo) DeleteByID(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoBlockedHourRepo) DeleteBefore(ctx context.Context, date string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"date": bson.M{"$lt": date}})
	if err != nil {
		return 0, fmt.Errorf("failed to purge blocked hours: %w", err)
	}
	return res.DeletedCount, nil
}
