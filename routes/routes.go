package routes

import (
	"time"

	"clipprmobile/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterSchedulingRoutes registers availability and day-view endpoints.
func RegisterSchedulingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users/:userID")
	{
		api.GET("/availability", hb.GetAvailabilityHandler)
		api.GET("/calendar", hb.GetCalendarHandler)
		api.GET("/buffers", hb.GetDayBuffersHandler)
	}
}

// RegisterTravelRoutes registers travel diagnostics.
func RegisterTravelRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/travel")
	{
		api.GET("/estimate", hb.EstimateTravelHandler)
		api.GET("/geocode", hb.GeocodeHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterMetricsRoute exposes the Prometheus registry.
func RegisterMetricsRoute(r *gin.Engine, gatherer prometheus.Gatherer) {
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, gatherer prometheus.Gatherer) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	RegisterSchedulingRoutes(r, hb)
	RegisterTravelRoutes(r, hb)
	RegisterHealthRoute(r, hb)
	RegisterMetricsRoute(r, gatherer)
}
