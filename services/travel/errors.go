package travel

import "errors"

// Expected provider failures. Callers substitute a fallback duration for all of them.
var (
	ErrGeocodeNotFound     = errors.New("address could not be geocoded")
	ErrRouteNotFound       = errors.New("no route between origin and destination")
	ErrProviderUnavailable = errors.New("routing provider unavailable")
	ErrUnsupportedMode     = errors.New("unsupported transport mode")
)
