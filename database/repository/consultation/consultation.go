package consultationRepo

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

// ConsultationRepository persists contact-form messages.
type ConsultationRepository interface {
	Create(ctx context.Context, c *models.Consultation) error
	GetByID(ctx context.Context, id string) (*models.Consultation, error)
	List(ctx context.Context, deleted bool) ([]models.Consultation, error)
	SetFlag(ctx context.Context, id, field string, value bool) (*models.Consultation, error)
	Delete(ctx context.Context, id string) error
}

type mongoConsultationRepo struct {
	coll *mongo.Collection
}

func NewMongoConsultationRepo() ConsultationRepository {
	repo := &mongoConsultationRepo{coll: database.DB().Collection("consultations")}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := repo.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "is_deleted", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	if err != nil {
		fmt.Printf("failed to create consultation indexes: %v\n", err)
	}
	return repo
}

func (r *mongoConsultationRepo) Create(ctx context.Context, c *models.Consultation) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("failed to save consultation: %w", err)
	}
	return nil
}

func (r *mongoConsultationRepo) GetByID(ctx context.Context, id string) (*models.Consultation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var c models.Consultation
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns the inbox (deleted=false) or the trash (deleted=true), newest first.
func (r *mongoConsultationRepo) List(ctx context.Context, deleted bool) ([]models.Consultation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"is_deleted": deleted}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch consultations: %w", err)
	}
	defer cursor.Close(ctx)

	out := []models.Consultation{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding consultations: %w", err)
	}
	return out, nil
}

// SetFlag sets one boolean field ("is_read" or "is_deleted").
func (r *mongoConsultationRepo) SetFlag(ctx context.Context, id, field string, value bool) (*models.Consultation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var c models.Consultation
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{field: value}}, opts).Decode(&c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *mongoConsultationRepo) Delete(ctx context.Context, id string) error {
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
