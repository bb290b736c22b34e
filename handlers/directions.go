package handlers

import (
	"errors"
	"net/http"
	"strings"

	"clipprmobile/models"
	"clipprmobile/services/geocoding"
	"clipprmobile/services/travel"
	"clipprmobile/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TravelHandler exposes the travel provider and geocoder for diagnostics.
type TravelHandler struct {
	Provider  travel.Provider
	Geocoder  geocoding.Geocoder
	Fallbacks travel.FallbackTable
}

// NewTravelHandler creates a new TravelHandler.
func NewTravelHandler(provider travel.Provider, geocoder geocoding.Geocoder, fallbacks travel.FallbackTable) *TravelHandler {
	return &TravelHandler{Provider: provider, Geocoder: geocoder, Fallbacks: fallbacks}
}

// EstimateTravelHandler returns the travel time between two addresses. When
// the provider cannot answer, the response carries the fallback the buffer
// calculator would use instead.
func (h *TravelHandler) EstimateTravelHandler(c *gin.Context) {
	logger := getLogger(c)
	origin := strings.TrimSpace(c.Query("origin"))
	destination := strings.TrimSpace(c.Query("destination"))
	if origin == "" || destination == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing required query parameters", "origin and destination are required")
		return
	}

	mode := models.ModeDriving
	if raw := c.Query("mode"); raw != "" {
		mode = models.TransportMode(strings.ToLower(raw))
		if !mode.Valid() {
			utils.JSONError(c, http.StatusBadRequest, "Invalid mode", "mode must be driving, walking, cycling or transit")
			return
		}
	}

	est, err := h.Provider.Estimate(c.Request.Context(), origin, destination, mode)
	if err != nil {
		logger.Warn("Travel estimate failed", zap.String("mode", string(mode)), zap.Error(err))
		status := http.StatusBadGateway
		if errors.Is(err, travel.ErrGeocodeNotFound) || errors.Is(err, travel.ErrRouteNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{
			"error":           err.Error(),
			"mode":            mode,
			"fallback":        true,
			"fallbackMinutes": h.Fallbacks.Minutes(mode),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"mode":           mode,
		"minutes":        est.Minutes,
		"distanceMeters": est.DistanceMeters,
		"fallback":       false,
	})
}

// GeocodeHandler resolves an address to coordinates.
func (h *TravelHandler) GeocodeHandler(c *gin.Context) {
	address := strings.TrimSpace(c.Query("address"))
	if address == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing required query parameter: address", "")
		return
	}
	coords, ok := h.Geocoder.Geocode(c.Request.Context(), address)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": address, "location": coords})
}
