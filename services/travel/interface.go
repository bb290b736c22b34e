package travel

import (
	"context"

	"clipprmobile/models"
)

// Provider estimates travel time between two addresses. It returns either an
// estimate or one of the package errors; it never substitutes fallbacks itself.
type Provider interface {
	Estimate(ctx context.Context, origin, destination string, mode models.TransportMode) (models.TravelEstimate, error)
}
