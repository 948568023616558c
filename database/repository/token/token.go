package tokenRepo

import (
	"context"
	"fmt"
	"time"

	"consultorio/database"
	"consultorio/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BlockedTokenRepository is the durable JWT blocklist behind logout.
type BlockedTokenRepository interface {
	Block(ctx context.Context, jti string, expiresAt time.Time) error
	IsBlocked(ctx context.Context, jti string) (bool, error)
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type mongoBlockedTokenRepo struct {
	coll *mongo.Collection
}

func NewMongoBlockedTokenRepo() BlockedTokenRepository {
	repo := &mongoBlockedTokenRepo{coll: database.DB().Collection("blocked_tokens")}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := repo.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "jti", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "expires", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
	})
	if err != nil {
		fmt.Printf("failed to create blocked_tokens indexes: %v\n", err)
	}
	return repo
}

func (r *mongoBlockedTokenRepo) Block(ctx context.Context, jti string, expiresAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	doc := models.BlockedToken{JTI: jti, CreatedAt: time.Now(), ExpiresAt: expiresAt}
	_, err := r.coll.UpdateOne(ctx, bson.M{"jti": jti}, bson.M{"$setOnInsert": doc}, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to block token: %w", err)
	}
	return nil
}

func (r *mongoBlockedTokenRepo) IsBlocked(ctx context.Context, jti string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"jti": jti})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// PurgeExpired removes entries the TTL monitor has not reaped yet.
func (r *mongoBlockedTokenRepo) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"expires": bson.M{"$lt": now}})
	if err != nil {
		return 0, fmt.Errorf("failed to purge blocked tokens: %w", err)
	}
	return res.DeletedCount, nil
}
