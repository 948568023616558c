// File: database/repository/availability/crud.go
package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"consultorio/models"
	"consultorio/services/scheduling"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var sortByDayAndStart = options.Find().SetSort(bson.D{{Key: "day", Value: 1}, {Key: "start_hour", Value: 1}})

func (r *mongoGlobalEnabledRepo) GetAll(ctx context.Context) ([]models.GlobalEnabled, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.find(ctx, bson.M{})
}

func (r *mongoGlobalEnabledRepo) GetByDay(ctx context.Context, day scheduling.Weekday) ([]models.GlobalEnabled, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.find(ctx, bson.M{"day": day})
}

func (r *mongoGlobalEnabledRepo) find(ctx context.Context, filter bson.M) ([]models.GlobalEnabled, error) {
	cursor, err := r.coll.Find(ctx, filter, sortByDayAndStart)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []models.GlobalEnabled{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("error decoding availability: %w", err)
	}
	return entries, nil
}

func (r *mongoGlobalEnabledRepo) GetByID(ctx context.Context, id string) (*models.GlobalEnabled, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var entry models.GlobalEnabled
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *mongoGlobalEnabledRepo) CreateChecked(ctx context.Context, entries []models.GlobalEnabled, check CheckFunc) ([]models.GlobalEnabled, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	days := touchedDays(entries)
	res, err := r.inTransaction(ctx, days, func(sc mongo.SessionContext) (interface{}, error) {
		existing, err := r.find(sc, bson.M{"day": bson.M{"$in": days}})
		if err != nil {
			return nil, err
		}
		if check != nil {
			if err := check(existing); err != nil {
				return nil, err
			}
		}
		return r.insert(sc, entries)
	})
	if err != nil {
		return nil, err
	}
	return res.([]models.GlobalEnabled), nil
}

// inTransaction runs fn after bumping the lock document of every day. Two
// transactions on the same day write the same document, so one of them hits a
// write conflict and WithTransaction retries it against the committed ranges.
func (r *mongoGlobalEnabledRepo) inTransaction(ctx context.Context, days []scheduling.Weekday, fn func(mongo.SessionContext) (interface{}, error)) (interface{}, error) {
	session, err := r.coll.Database().Client().StartSession()
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	return session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for _, d := range days {
			_, err := r.locks.UpdateOne(sc,
				bson.M{"day": d},
				bson.M{"$inc": bson.M{"version": 1}},
				options.Update().SetUpsert(true))
			if err != nil {
				return nil, fmt.Errorf("failed to lock %s: %w", d, err)
			}
		}
		return fn(sc)
	})
}

func touchedDays(entries []models.GlobalEnabled) []scheduling.Weekday {
	seen := make(map[scheduling.Weekday]bool)
	var days []scheduling.Weekday
	for _, e := range entries {
		if !seen[e.Day] {
			seen[e.Day] = true
			days = append(days, e.Day)
		}
	}
	return days
}

func (r *mongoGlobalEnabledRepo) insert(ctx context.Context, entries []models.GlobalEnabled) ([]models.GlobalEnabled, error) {
	if len(entries) == 0 {
		return []models.GlobalEnabled{}, nil
	}
	now := time.Now()
	docs := make([]interface{}, len(entries))
	out := make([]models.GlobalEnabled, len(entries))
	for i, e := range entries {
		if e.ID == "" {
			e.ID = uuid.New().String()
		}
		e.CreatedAt = now
		docs[i] = e
		out[i] = e
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return nil, fmt.Errorf("failed to insert availability: %w", err)
	}
	return out, nil
}

// ReplaceDay swaps every range of day for entries inside a single transaction.
func (r *mongoGlobalEnabledRepo) ReplaceDay(ctx context.Context, day scheduling.Weekday, entries []models.GlobalEnabled) ([]models.GlobalEnabled, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	res, err := r.inTransaction(ctx, []scheduling.Weekday{day}, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.coll.DeleteMany(sc, bson.M{"day": day}); err != nil {
			return nil, fmt.Errorf("failed to clear %s: %w", day, err)
		}
		return r.insert(sc, entries)
	})
	if err != nil {
		return nil, err
	}
	return res.([]models.GlobalEnabled), nil
}

func (r *mongoGlobalEnabledRepo) DeleteByID(ctx context.Context, id string) error {
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
