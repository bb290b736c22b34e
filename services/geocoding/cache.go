package geocoding

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"clipprmobile/metrics"
	"clipprmobile/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const geocodeCachePrefix = "geo:addr:"

// CachedGeocoder keeps successful lookups in Redis. Misses and Redis errors
// go to the wrapped geocoder; not-found results are never cached.
type CachedGeocoder struct {
	client  *redis.Client
	next    Geocoder
	ttl     time.Duration
	logger  *zap.Logger
	metrics *metrics.Recorder
}

func NewCachedGeocoder(client *redis.Client, next Geocoder, ttl time.Duration, logger *zap.Logger, rec *metrics.Recorder) *CachedGeocoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedGeocoder{client: client, next: next, ttl: ttl, logger: logger, metrics: rec}
}

// NormalizeAddress folds case and whitespace so "12 Main St" and
// "12  main st" are treated as the same address.
func NormalizeAddress(address string) string {
	return strings.Join(strings.Fields(strings.ToLower(address)), " ")
}

func cacheKey(address string) string {
	return geocodeCachePrefix + NormalizeAddress(address)
}

func (c *CachedGeocoder) Geocode(ctx context.Context, address string) (models.Coordinates, bool) {
	if strings.TrimSpace(address) == "" {
		return models.Coordinates{}, false
	}
	key := cacheKey(address)

	data, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		var coords models.Coordinates
		if jsonErr := json.Unmarshal([]byte(data), &coords); jsonErr == nil {
			c.metrics.Geocode(metrics.ResultCacheHit)
			return coords, true
		}
		c.logger.Warn("geocode cache: corrupt entry", zap.String("key", key))
	case err != redis.Nil:
		c.logger.Warn("geocode cache: read failed", zap.String("key", key), zap.Error(err))
	}

	coords, ok := c.next.Geocode(ctx, address)
	if !ok {
		return coords, false
	}

	b, err := json.Marshal(coords)
	if err == nil {
		err = c.client.Set(ctx, key, b, c.ttl).Err()
	}
	if err != nil {
		c.logger.Warn("geocode cache: write failed", zap.String("key", key), zap.Error(err))
	}
	return coords, true
}
