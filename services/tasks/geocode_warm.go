package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const TypeWarmGeocodes = "geocode:warm"

// WarmGeocodesPayload asks the worker to geocode the addresses of
// appointments starting within the next WindowHours.
type WarmGeocodesPayload struct {
	WindowHours int `json:"windowHours"`
}

// NewWarmGeocodesTask builds the periodic warm-up task. Only one may be
// queued at a time.
func NewWarmGeocodesTask(window time.Duration) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(WarmGeocodesPayload{WindowHours: int(window / time.Hour)})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeWarmGeocodes, b)
	opts := []asynq.Option{
		asynq.Unique(window),
		asynq.MaxRetry(2),
		asynq.Timeout(10 * time.Minute),
	}
	return task, opts, nil
}

// ParseWarmGeocodesPayload decodes a task payload.
func ParseWarmGeocodesPayload(task *asynq.Task) (WarmGeocodesPayload, error) {
	var p WarmGeocodesPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid %s payload: %w", TypeWarmGeocodes, err)
	}
	if p.WindowHours <= 0 {
		return p, fmt.Errorf("invalid %s payload: window must be positive, got %d", TypeWarmGeocodes, p.WindowHours)
	}
	return p, nil
}
