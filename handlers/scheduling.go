package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"clipprmobile/services/scheduling"
	"clipprmobile/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SchedulingHandler serves availability and day views.
type SchedulingHandler struct {
	Service scheduling.SchedulingService
}

// NewSchedulingHandler creates a new SchedulingHandler.
func NewSchedulingHandler(svc scheduling.SchedulingService) *SchedulingHandler {
	return &SchedulingHandler{Service: svc}
}

// GetAvailabilityHandler returns bookable slots for one date, or for
// `days` consecutive dates starting at `date`.
func (h *SchedulingHandler) GetAvailabilityHandler(c *gin.Context) {
	logger := getLogger(c)
	userID := c.Param("userID")
	date := c.Query("date")

	duration, err := strconv.Atoi(c.Query("duration"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid duration", "duration must be a whole number of minutes")
		return
	}

	days := 1
	if raw := c.Query("days"); raw != "" {
		if days, err = strconv.Atoi(raw); err != nil || days < 1 {
			utils.JSONError(c, http.StatusBadRequest, "Invalid days", "days must be a positive number")
			return
		}
	}

	if days == 1 {
		result, err := h.Service.GetAvailableSlots(c.Request.Context(), userID, date, duration)
		if err != nil {
			respondSchedulingError(c, logger, "Failed to compute availability", err)
			return
		}
		c.JSON(http.StatusOK, result)
		return
	}

	dates, err := consecutiveDates(date, days)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid date", err.Error())
		return
	}
	results, err := h.Service.GetAvailabilityForDates(c.Request.Context(), userID, dates, duration)
	if err != nil {
		respondSchedulingError(c, logger, "Failed to compute availability", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// GetCalendarHandler returns the hour grid for a date.
func (h *SchedulingHandler) GetCalendarHandler(c *gin.Context) {
	logger := getLogger(c)
	grid, err := h.Service.GetCalendar(c.Request.Context(), c.Param("userID"), c.Query("date"))
	if err != nil {
		respondSchedulingError(c, logger, "Failed to render calendar", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": c.Query("date"), "hours": grid})
}

// GetDayBuffersHandler returns the travel buffer chain for a date.
func (h *SchedulingHandler) GetDayBuffersHandler(c *gin.Context) {
	logger := getLogger(c)
	buffers, err := h.Service.GetDayBuffers(c.Request.Context(), c.Param("userID"), c.Query("date"))
	if err != nil {
		respondSchedulingError(c, logger, "Failed to compute travel buffers", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": c.Query("date"), "buffers": buffers})
}

func respondSchedulingError(c *gin.Context, logger *zap.Logger, message string, err error) {
	var ve *scheduling.ValidationError
	switch {
	case errors.As(err, &ve):
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", ve.Message)
	case errors.Is(err, scheduling.ErrUserNotFound):
		utils.JSONError(c, http.StatusNotFound, "User not found", "")
	default:
		logger.Error(message, zap.String("userID", c.Param("userID")), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, message, "Please try again later")
	}
}

// consecutiveDates expands a start date into n calendar dates.
func consecutiveDates(start string, n int) ([]string, error) {
	first, err := time.Parse("2006-01-02", start)
	if err != nil {
		return nil, errors.New("date must be formatted as YYYY-MM-DD")
	}
	dates := make([]string, 0, n)
	for i := 0; i < n; i++ {
		dates = append(dates, first.AddDate(0, 0, i).Format("2006-01-02"))
	}
	return dates, nil
}
