package userRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clipprmobile/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo creates a UserRepository backed by the "users" collection of db.
func NewMongoUserRepo(db *mongo.Database) UserRepository {
	return &MongoUserRepo{coll: db.Collection("users")}
}

// schedulingProjection limits reads to what the engine uses.
var schedulingProjection = bson.M{
	"id":                 1,
	"name":               1,
	"email":              1,
	"homeBaseAddress":    1,
	"defaultGraceTime":   1,
	"transportationMode": 1,
	"workingHours":       1,
	"timezone":           1,
}

// EnsureIndexes creates indexes for fields frequently used in queries.
func (r *MongoUserRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetSchedulingProfile retrieves a user by ID with the scheduling projection.
func (r *MongoUserRepo) GetSchedulingProfile(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOne().SetProjection(schedulingProjection)

	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"id": id}, opts).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user with id %s: %w", id, err)
	}
	return &user, nil
}
