package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"clipprmobile/models"
	"clipprmobile/services/scheduling"
	"clipprmobile/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSchedulingService struct {
	err       error
	gotDates  []string
	gotDate   string
	gotUserID string
	gotMins   int
}

func (f *fakeSchedulingService) GetAvailableSlots(_ context.Context, userID, date string, durationMinutes int) (*models.AvailabilityResult, error) {
	f.gotUserID, f.gotDate, f.gotMins = userID, date, durationMinutes
	if f.err != nil {
		return nil, f.err
	}
	return &models.AvailabilityResult{Date: date, Slots: []models.TimeSlotCandidate{}}, nil
}

func (f *fakeSchedulingService) GetAvailabilityForDates(_ context.Context, userID string, dates []string, durationMinutes int) ([]models.AvailabilityResult, error) {
	f.gotUserID, f.gotDates, f.gotMins = userID, dates, durationMinutes
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.AvailabilityResult, len(dates))
	for i, d := range dates {
		out[i] = models.AvailabilityResult{Date: d, Slots: []models.TimeSlotCandidate{}}
	}
	return out, nil
}

func (f *fakeSchedulingService) GetDayBuffers(_ context.Context, userID, date string) ([]models.TravelBuffer, error) {
	f.gotUserID, f.gotDate = userID, date
	if f.err != nil {
		return nil, f.err
	}
	return []models.TravelBuffer{{AppointmentID: "a", TravelMinutes: 10, GraceMinutes: 5, TotalBufferMinutes: 15}}, nil
}

func (f *fakeSchedulingService) GetCalendar(_ context.Context, userID, date string) ([]models.CalendarHourSlot, error) {
	f.gotUserID, f.gotDate = userID, date
	if f.err != nil {
		return nil, f.err
	}
	return []models.CalendarHourSlot{{Hour: 9, Label: "9 AM"}}, nil
}

func schedulingRouter(svc scheduling.SchedulingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewSchedulingHandler(svc)
	r := gin.New()
	r.GET("/api/users/:userID/availability", h.GetAvailabilityHandler)
	r.GET("/api/users/:userID/calendar", h.GetCalendarHandler)
	r.GET("/api/users/:userID/buffers", h.GetDayBuffersHandler)
	return r
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestGetAvailabilityHandlerSingleDate(t *testing.T) {
	svc := &fakeSchedulingService{}
	w := get(schedulingRouter(svc), "/api/users/u1/availability?date=2024-03-04&duration=60")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", svc.gotUserID)
	assert.Equal(t, "2024-03-04", svc.gotDate)
	assert.Equal(t, 60, svc.gotMins)

	var body models.AvailabilityResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "2024-03-04", body.Date)
}

func TestGetAvailabilityHandlerMultipleDays(t *testing.T) {
	svc := &fakeSchedulingService{}
	w := get(schedulingRouter(svc), "/api/users/u1/availability?date=2024-02-28&duration=30&days=3")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"2024-02-28", "2024-02-29", "2024-03-01"}, svc.gotDates)

	var body struct {
		Results []models.AvailabilityResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Results, 3)
}

func TestGetAvailabilityHandlerBadQuery(t *testing.T) {
	r := schedulingRouter(&fakeSchedulingService{})
	for _, target := range []string{
		"/api/users/u1/availability?date=2024-03-04",
		"/api/users/u1/availability?date=2024-03-04&duration=abc",
		"/api/users/u1/availability?date=2024-03-04&duration=30&days=0",
		"/api/users/u1/availability?date=tomorrow&duration=30&days=2",
	} {
		assert.Equal(t, http.StatusBadRequest, get(r, target).Code, target)
	}
}

func TestSchedulingHandlersMapErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", scheduling.NewValidationError("bad date"), http.StatusBadRequest},
		{"not found", scheduling.ErrUserNotFound, http.StatusNotFound},
		{"internal", errors.New("mongo down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := schedulingRouter(&fakeSchedulingService{err: tc.err})
			assert.Equal(t, tc.want, get(r, "/api/users/u1/availability?date=2024-03-04&duration=30").Code)
			assert.Equal(t, tc.want, get(r, "/api/users/u1/calendar?date=2024-03-04").Code)
			assert.Equal(t, tc.want, get(r, "/api/users/u1/buffers?date=2024-03-04").Code)
		})
	}
}

func TestGetCalendarHandler(t *testing.T) {
	svc := &fakeSchedulingService{}
	w := get(schedulingRouter(svc), "/api/users/u7/calendar?date=2024-03-04")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u7", svc.gotUserID)
	var body struct {
		Date  string                    `json:"date"`
		Hours []models.CalendarHourSlot `json:"hours"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "2024-03-04", body.Date)
	require.Len(t, body.Hours, 1)
	assert.Equal(t, "9 AM", body.Hours[0].Label)
}

func TestGetDayBuffersHandler(t *testing.T) {
	w := get(schedulingRouter(&fakeSchedulingService{}), "/api/users/u1/buffers?date=2024-03-04")

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Buffers []models.TravelBuffer `json:"buffers"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Buffers, 1)
	assert.Equal(t, 15, body.Buffers[0].TotalBufferMinutes)
}

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", HealthHandler)

	utils.CheckHealth(context.Background(), nil, nil)
	w := get(r, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"unavailable"`)
}
