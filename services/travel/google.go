package travel

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"clipprmobile/metrics"
	"clipprmobile/models"
	"clipprmobile/services/geocoding"

	"go.uber.org/zap"
)

// DefaultTransitMultiplier widens a driving estimate to stand in for transit.
const DefaultTransitMultiplier = 1.5

// directionsResponse is the subset of the Google Directions API response we read.
type directionsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
	Routes       []struct {
		Legs []struct {
			Duration struct {
				Value int `json:"value"` // seconds
			} `json:"duration"`
			Distance struct {
				Value int `json:"value"` // meters
			} `json:"distance"`
		} `json:"legs"`
	} `json:"routes"`
}

// GoogleConfig configures the Directions client.
type GoogleConfig struct {
	APIKey            string
	BaseURL           string
	Timeout           time.Duration
	TransitMultiplier float64
}

// GoogleProvider estimates travel with the Google Directions API, geocoding
// addresses first.
type GoogleProvider struct {
	geocoder          geocoding.Geocoder
	apiKey            string
	baseURL           string
	client            *http.Client
	transitMultiplier float64
	logger            *zap.Logger
	metrics           *metrics.Recorder
}

func NewGoogleProvider(cfg GoogleConfig, geocoder geocoding.Geocoder, logger *zap.Logger, rec *metrics.Recorder) *GoogleProvider {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.TransitMultiplier <= 0 {
		cfg.TransitMultiplier = DefaultTransitMultiplier
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GoogleProvider{
		geocoder:          geocoder,
		apiKey:            cfg.APIKey,
		baseURL:           strings.TrimRight(cfg.BaseURL, "/"),
		client:            &http.Client{Timeout: cfg.Timeout},
		transitMultiplier: cfg.TransitMultiplier,
		logger:            logger,
		metrics:           rec,
	}
}

// Estimate geocodes both addresses and routes between them.
func (p *GoogleProvider) Estimate(ctx context.Context, origin, destination string, mode models.TransportMode) (models.TravelEstimate, error) {
	if !mode.Valid() {
		return models.TravelEstimate{}, fmt.Errorf("%w: %q", ErrUnsupportedMode, mode)
	}
	from, ok := p.geocoder.Geocode(ctx, origin)
	if !ok {
		return models.TravelEstimate{}, fmt.Errorf("origin %q: %w", origin, ErrGeocodeNotFound)
	}
	to, ok := p.geocoder.Geocode(ctx, destination)
	if !ok {
		return models.TravelEstimate{}, fmt.Errorf("destination %q: %w", destination, ErrGeocodeNotFound)
	}
	return p.EstimateCoordinates(ctx, from, to, mode)
}

// EstimateCoordinates routes between two resolved points. Transit is never
// queried directly: it is the driving estimate scaled by the transit multiplier.
func (p *GoogleProvider) EstimateCoordinates(ctx context.Context, from, to models.Coordinates, mode models.TransportMode) (models.TravelEstimate, error) {
	switch mode {
	case models.ModeTransit:
		est, err := p.route(ctx, from, to, models.ModeDriving)
		if err != nil {
			return models.TravelEstimate{}, err
		}
		est.Minutes = int(math.Ceil(float64(est.Minutes) * p.transitMultiplier))
		return est, nil
	case models.ModeDriving, models.ModeWalking, models.ModeCycling:
		return p.route(ctx, from, to, mode)
	default:
		return models.TravelEstimate{}, fmt.Errorf("%w: %q", ErrUnsupportedMode, mode)
	}
}

// googleMode maps our modes onto the Directions API "mode" parameter.
func googleMode(mode models.TransportMode) string {
	if mode == models.ModeCycling {
		return "bicycling"
	}
	return string(mode)
}

func formatLatLng(c models.Coordinates) string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lng, 'f', -1, 64)
}

// secondsToMinutes rounds up so partial minutes never shrink a buffer.
func secondsToMinutes(seconds int) int {
	if seconds <= 0 {
		return 0
	}
	return (seconds + 59) / 60
}

func (p *GoogleProvider) route(ctx context.Context, from, to models.Coordinates, mode models.TransportMode) (models.TravelEstimate, error) {
	params := url.Values{}
	params.Set("origin", formatLatLng(from))
	params.Set("destination", formatLatLng(to))
	params.Set("mode", googleMode(mode))
	params.Set("key", p.apiKey)
	endpoint := p.baseURL + "/maps/api/directions/json?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		p.metrics.Estimate(string(mode), metrics.ResultUnavailable)
		return models.TravelEstimate{}, fmt.Errorf("%w: build request: %v", ErrProviderUnavailable, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.metrics.Estimate(string(mode), metrics.ResultUnavailable)
		return models.TravelEstimate{}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.metrics.Estimate(string(mode), metrics.ResultUnavailable)
		return models.TravelEstimate{}, fmt.Errorf("%w: HTTP %d", ErrProviderUnavailable, resp.StatusCode)
	}

	var data directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		p.metrics.Estimate(string(mode), metrics.ResultUnavailable)
		return models.TravelEstimate{}, fmt.Errorf("%w: decode response: %v", ErrProviderUnavailable, err)
	}

	switch data.Status {
	case "OK":
	case "ZERO_RESULTS", "NOT_FOUND":
		p.metrics.Estimate(string(mode), metrics.ResultNotFound)
		return models.TravelEstimate{}, fmt.Errorf("%w (%s)", ErrRouteNotFound, data.Status)
	default:
		p.logger.Warn("directions: provider refused request",
			zap.String("status", data.Status),
			zap.String("errorMessage", data.ErrorMessage))
		p.metrics.Estimate(string(mode), metrics.ResultUnavailable)
		return models.TravelEstimate{}, fmt.Errorf("%w: status %s", ErrProviderUnavailable, data.Status)
	}

	if len(data.Routes) == 0 || len(data.Routes[0].Legs) == 0 {
		p.metrics.Estimate(string(mode), metrics.ResultNotFound)
		return models.TravelEstimate{}, ErrRouteNotFound
	}

	var seconds, meters int
	for _, leg := range data.Routes[0].Legs {
		seconds += leg.Duration.Value
		meters += leg.Distance.Value
	}
	p.metrics.Estimate(string(mode), metrics.ResultOK)
	return models.TravelEstimate{Minutes: secondsToMinutes(seconds), DistanceMeters: meters}, nil
}
