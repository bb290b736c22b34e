package appointmentRepo

import (
	"context"
	"os"
	"testing"
	"time"

	"clipprmobile/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestRangeFilter(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	from := time.Date(2024, 3, 4, 0, 0, 0, 0, loc)
	to := from.AddDate(0, 0, 1)

	f := rangeFilter("u1", from, to)
	assert.Equal(t, "u1", f["userId"])
	assert.Equal(t, bson.M{"$ne": models.AppointmentCancelled}, f["status"])

	window := f["scheduledAt"].(bson.M)
	assert.Equal(t, time.UTC, window["$gte"].(time.Time).Location())
	assert.True(t, window["$gte"].(time.Time).Equal(from))
	assert.True(t, window["$lt"].(time.Time).Equal(to))
}

// Runs against a real server when MONGO_TEST_URL is set.
func TestGetByUserAndRangeIntegration(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URL")
	if uri == "" {
		t.Skip("MONGO_TEST_URL not set")
	}
	ctx := context.Background()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	db := client.Database("clipprmobile_test_" + uuid.NewString()[:8])
	t.Cleanup(func() { _ = db.Drop(context.Background()) })

	repo := NewMongoAppointmentRepo(db).(*MongoAppointmentRepo)
	require.NoError(t, repo.EnsureIndexes(ctx))

	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	docs := []interface{}{
		models.Appointment{ID: "late", UserID: "u1", ScheduledAt: day.Add(15 * time.Hour), DurationMinutes: 60, Status: models.AppointmentConfirmed},
		models.Appointment{ID: "early", UserID: "u1", ScheduledAt: day.Add(9 * time.Hour), DurationMinutes: 30, Status: models.AppointmentPending},
		models.Appointment{ID: "cancelled", UserID: "u1", ScheduledAt: day.Add(11 * time.Hour), DurationMinutes: 30, Status: models.AppointmentCancelled},
		models.Appointment{ID: "other-user", UserID: "u2", ScheduledAt: day.Add(10 * time.Hour), DurationMinutes: 30, Status: models.AppointmentConfirmed},
		models.Appointment{ID: "next-day", UserID: "u1", ScheduledAt: day.Add(24 * time.Hour), DurationMinutes: 30, Status: models.AppointmentConfirmed},
	}
	_, err = db.Collection("appointments").InsertMany(ctx, docs)
	require.NoError(t, err)

	got, err := repo.GetByUserAndRange(ctx, "u1", day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "early", got[0].ID)
	assert.Equal(t, "late", got[1].ID)
}

func TestRangeFilterAllUsers(t *testing.T) {
	from := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	f := rangeFilter("", from, from.Add(24*time.Hour))
	_, hasUser := f["userId"]
	assert.False(t, hasUser)
	assert.Contains(t, f, "scheduledAt")
}
