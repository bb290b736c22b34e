package geocoding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"clipprmobile/metrics"
	"clipprmobile/models"

	"go.uber.org/zap"
)

// geocodeResponse is the subset of the Google Geocoding API response we read.
type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
	Results      []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// GoogleGeocoder calls the Google Geocoding API.
type GoogleGeocoder struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
	metrics *metrics.Recorder
}

// NewGoogleGeocoder builds a geocoder against baseURL (normally
// https://maps.googleapis.com). A non-positive timeout defaults to 5 seconds.
func NewGoogleGeocoder(apiKey, baseURL string, timeout time.Duration, logger *zap.Logger, rec *metrics.Recorder) *GoogleGeocoder {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GoogleGeocoder{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
		metrics: rec,
	}
}

// Geocode returns the first result's location for address.
func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (models.Coordinates, bool) {
	address = strings.TrimSpace(address)
	if address == "" {
		return models.Coordinates{}, false
	}

	params := url.Values{}
	params.Set("address", address)
	params.Set("key", g.apiKey)
	endpoint := g.baseURL + "/maps/api/geocode/json?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		g.logger.Error("geocode: failed to build request", zap.String("address", address), zap.Error(err))
		g.metrics.Geocode(metrics.ResultUnavailable)
		return models.Coordinates{}, false
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Warn("geocode: request failed", zap.String("address", address), zap.Error(err))
		g.metrics.Geocode(metrics.ResultUnavailable)
		return models.Coordinates{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.logger.Warn("geocode: non-OK HTTP status", zap.String("address", address), zap.Int("status", resp.StatusCode))
		g.metrics.Geocode(metrics.ResultUnavailable)
		return models.Coordinates{}, false
	}

	var data geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		g.logger.Warn("geocode: failed to decode response", zap.String("address", address), zap.Error(err))
		g.metrics.Geocode(metrics.ResultUnavailable)
		return models.Coordinates{}, false
	}

	if data.Status != "OK" || len(data.Results) == 0 {
		g.logger.Info("geocode: address not found",
			zap.String("address", address),
			zap.String("status", data.Status),
			zap.String("errorMessage", data.ErrorMessage))
		g.metrics.Geocode(metrics.ResultNotFound)
		return models.Coordinates{}, false
	}

	loc := data.Results[0].Geometry.Location
	g.metrics.Geocode(metrics.ResultOK)
	return models.Coordinates{Lat: loc.Lat, Lng: loc.Lng}, true
}
