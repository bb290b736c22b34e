package handlers

import (
	"net/http"

	"clipprmobile/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last health snapshot. Mongo is required;
// Redis only backs the geocode cache, so its loss degrades but does not fail.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	state := "ok"
	switch {
	case !status.Mongo:
		code = http.StatusServiceUnavailable
		state = "unavailable"
	case !status.Redis:
		state = "degraded"
	}
	c.JSON(code, gin.H{"status": state, "services": status})
}
