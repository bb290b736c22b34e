package geocoding

import (
	"context"

	"clipprmobile/models"
)

// Geocoder resolves a free-text address. A failed lookup (network error,
// zero results) is reported as not found, never as an error.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (models.Coordinates, bool)
}
