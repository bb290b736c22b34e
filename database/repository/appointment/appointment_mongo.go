package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"clipprmobile/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo creates an AppointmentRepository backed by the "appointments" collection of db.
func NewMongoAppointmentRepo(db *mongo.Database) AppointmentRepository {
	return &MongoAppointmentRepo{coll: db.Collection("appointments")}
}

// EnsureIndexes creates the compound index behind the day query.
func (r *MongoAppointmentRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "scheduledAt", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// rangeFilter matches active appointments starting in [from, to). An empty
// userID matches every user.
func rangeFilter(userID string, from, to time.Time) bson.M {
	filter := bson.M{
		"scheduledAt": bson.M{"$gte": from.UTC(), "$lt": to.UTC()},
		"status":      bson.M{"$ne": models.AppointmentCancelled},
	}
	if userID != "" {
		filter["userId"] = userID
	}
	return filter
}

// GetByUserAndRange retrieves the user's active appointments starting in [from, to).
func (r *MongoAppointmentRepo) GetByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]models.Appointment, error) {
	appointments, err := r.find(ctx, rangeFilter(userID, from, to), nil)
	if err != nil {
		return nil, fmt.Errorf("error fetching appointments for user %s: %w", userID, err)
	}
	return appointments, nil
}

// GetInRange retrieves all active appointments starting in [from, to), with
// only the fields needed to locate them.
func (r *MongoAppointmentRepo) GetInRange(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	projection := bson.M{"id": 1, "userId": 1, "scheduledAt": 1, "address": 1, "status": 1}
	appointments, err := r.find(ctx, rangeFilter("", from, to), projection)
	if err != nil {
		return nil, fmt.Errorf("error fetching appointments in range: %w", err)
	}
	return appointments, nil
}

func (r *MongoAppointmentRepo) find(ctx context.Context, filter bson.M, projection bson.M) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "scheduledAt", Value: 1}})
	if projection != nil {
		opts.SetProjection(projection)
	}
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	appointments := []models.Appointment{}
	for cursor.Next(ctx) {
		var apt models.Appointment
		if err := cursor.Decode(&apt); err != nil {
			return nil, fmt.Errorf("decode appointment: %w", err)
		}
		appointments = append(appointments, apt)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate appointments: %w", err)
	}
	return appointments, nil
}
