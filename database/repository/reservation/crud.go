package reservationRepo

import (
	"context"
	"fmt"
	"time"

	"consultorio/database"
	"consultorio/models"
	"consultorio/services/scheduling"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoReservationRepo struct {
	coll *mongo.Collection
}

func NewMongoReservationRepo() ReservationRepository {
	repo := &mongoReservationRepo{coll: database.DB().Collection("reservations")}
	if err := repo.EnsureIndexes(); err != nil {
		fmt.Printf("%v\n", err)
	}
	return repo
}

var chronological = options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "hour", Value: 1}})

func (r *mongoReservationRepo) Create(ctx context.Context, res *models.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if res.ID == "" {
		res.ID = uuid.New().String()
	}
	res.Status = models.ReservationActive
	res.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, res); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	return nil
}

func (r *mongoReservationRepo) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var res models.Reservation
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *mongoReservationRepo) GetActiveByDate(ctx context.Context, date string) ([]models.Reservation, error) {
	return r.find(ctx, bson.M{"date": date, "status": models.ReservationActive})
}

// GetActiveBetween lists active reservations with from <= date <= to.
func (r *mongoReservationRepo) GetActiveBetween(ctx context.Context, from, to string) ([]models.Reservation, error) {
	return r.find(ctx, bson.M{
		"date":   bson.M{"$gte": from, "$lte": to},
		"status": models.ReservationActive,
	})
}

func (r *mongoReservationRepo) GetByUser(ctx context.Context, userID string) ([]models.Reservation, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

// GetAll lists every reservation dated from onwards; an empty from lists everything.
func (r *mongoReservationRepo) GetAll(ctx context.Context, from string) ([]models.Reservation, error) {
	filter := bson.M{}
	if from != "" {
		filter["date"] = bson.M{"$gte": from}
	}
	return r.find(ctx, filter)
}

func (r *mongoReservationRepo) find(ctx context.Context, filter bson.M) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, chronological)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reservations: %w", err)
	}
	defer cursor.Close(ctx)

	out := []models.Reservation{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding reservations: %w", err)
	}
	return out, nil
}

// Cancel flips an active reservation to cancelled and returns the updated document.
func (r *mongoReservationRepo) Cancel(ctx context.Context, id string) (*models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{"id": id, "status": models.ReservationActive}
	update := bson.M{"$set": bson.M{"status": models.ReservationCancelled, "cancelled_at": now}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var res models.Reservation
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *mongoReservationRepo) IsReserved(ctx context.Context, date string, hour scheduling.Hour) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"date": date, "hour": hour, "status": models.ReservationActive})
	if err != nil {
		return false, fmt.Errorf("failed to check reservation: %w", err)
	}
	return n > 0, nil
}
