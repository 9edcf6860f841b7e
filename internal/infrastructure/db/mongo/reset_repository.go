package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dextasynergyservices/myweddingpage/internal/core/domain"
)

const resetTokensCollection = "password_reset_tokens"

type MongoResetTokenRepository struct {
	coll *mongo.Collection
}

func NewResetTokenRepository(db *mongo.Database) *MongoResetTokenRepository {
	return &MongoResetTokenRepository{coll: db.Collection(resetTokensCollection)}
}

// EnsureIndexes creates the unique token index and a TTL index so Mongo
// reaps rows the application never consumed.
func (r *MongoResetTokenRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "token", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "expires_at", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
	})
	if err != nil {
		return fmt.Errorf("ensure reset token indexes: %w", err)
	}
	return nil
}

type mongoResetToken struct {
	Token     string    `bson:"token"`
	UserID    string    `bson:"user_id"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}

func (r *MongoResetTokenRepository) Create(ctx context.Context, token *domain.PasswordResetToken) error {
	doc := mongoResetToken{
		Token:     token.Token,
		UserID:    token.UserID,
		ExpiresAt: token.ExpiresAt,
		CreatedAt: token.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert reset token: %w", err)
	}
	return nil
}

// Consume removes and returns the token in one round trip. FindOneAndDelete
// guarantees at most one caller ever sees a given token.
func (r *MongoResetTokenRepository) Consume(ctx context.Context, token string) (*domain.PasswordResetToken, error) {
	var doc mongoResetToken
	err := r.coll.FindOneAndDelete(ctx, bson.M{"token": token}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrInvalidResetToken
		}
		return nil, fmt.Errorf("consume reset token: %w", err)
	}
	return &domain.PasswordResetToken{
		Token:     doc.Token,
		UserID:    doc.UserID,
		ExpiresAt: doc.ExpiresAt,
		CreatedAt: doc.CreatedAt,
	}, nil
}
