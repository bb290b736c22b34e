package geocoding

import (
	"context"
	"os"
	"testing"
	"time"

	"clipprmobile/models"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingGeocoder struct {
	coords models.Coordinates
	found  bool
	calls  int
}

func (c *countingGeocoder) Geocode(context.Context, string) (models.Coordinates, bool) {
	c.calls++
	return c.coords, c.found
}

func TestCacheKeyNormalises(t *testing.T) {
	assert.Equal(t, cacheKey("12 Main St"), cacheKey("  12   MAIN st "))
	assert.NotEqual(t, cacheKey("12 Main St"), cacheKey("14 Main St"))
	assert.Equal(t, "12 main st", NormalizeAddress(" 12\tMain  ST "))
}

func redisForTest(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	require.NoError(t, client.Ping(context.Background()).Err())
	t.Cleanup(func() {
		client.FlushDB(context.Background())
		_ = client.Close()
	})
	return client
}

func TestCachedGeocoderStoresHits(t *testing.T) {
	client := redisForTest(t)
	next := &countingGeocoder{coords: models.Coordinates{Lat: 1, Lng: 2}, found: true}
	g := NewCachedGeocoder(client, next, time.Minute, nil, nil)

	for i := 0; i < 3; i++ {
		coords, ok := g.Geocode(context.Background(), "1 Cache Lane")
		require.True(t, ok)
		assert.Equal(t, models.Coordinates{Lat: 1, Lng: 2}, coords)
	}
	assert.Equal(t, 1, next.calls)
}

func TestCachedGeocoderDoesNotCacheMisses(t *testing.T) {
	client := redisForTest(t)
	next := &countingGeocoder{found: false}
	g := NewCachedGeocoder(client, next, time.Minute, nil, nil)

	_, ok := g.Geocode(context.Background(), "missing")
	assert.False(t, ok)
	_, ok = g.Geocode(context.Background(), "missing")
	assert.False(t, ok)
	assert.Equal(t, 2, next.calls)
}

func TestCachedGeocoderFallsThroughOnRedisError(t *testing.T) {
	// Nothing listens on this port, so every Redis call fails.
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	next := &countingGeocoder{coords: models.Coordinates{Lat: 3, Lng: 4}, found: true}
	g := NewCachedGeocoder(client, next, time.Minute, nil, nil)

	coords, ok := g.Geocode(context.Background(), "1 Main St")
	require.True(t, ok)
	assert.Equal(t, models.Coordinates{Lat: 3, Lng: 4}, coords)
	assert.Equal(t, 1, next.calls)
}
