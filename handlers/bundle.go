package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Scheduling endpoints
	GetAvailabilityHandler gin.HandlerFunc
	GetCalendarHandler     gin.HandlerFunc
	GetDayBuffersHandler   gin.HandlerFunc

	// Travel diagnostics
	EstimateTravelHandler gin.HandlerFunc
	GeocodeHandler        gin.HandlerFunc

	// Health
	HealthHandler gin.HandlerFunc
}
