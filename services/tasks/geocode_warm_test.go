package tasks

import (
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWarmGeocodesTaskRoundTrip(t *testing.T) {
	task, opts, err := NewWarmGeocodesTask(36 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, TypeWarmGeocodes, task.Type())
	assert.NotEmpty(t, opts)

	p, err := ParseWarmGeocodesPayload(task)
	require.NoError(t, err)
	assert.Equal(t, 36, p.WindowHours)
}

func TestParseWarmGeocodesPayloadRejectsBadInput(t *testing.T) {
	_, err := ParseWarmGeocodesPayload(asynq.NewTask(TypeWarmGeocodes, []byte("{")))
	assert.Error(t, err)

	_, err = ParseWarmGeocodesPayload(asynq.NewTask(TypeWarmGeocodes, []byte(`{"windowHours":0}`)))
	assert.Error(t, err)
}
