package device_test

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-graph/engine/device"
	"github.com/Carmen-Shannon/oxy-graph/engine/device/recorder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckDrainsQueue(t *testing.T) {
	rec := recorder.New()
	first := errors.New("first")
	rec.PushError(first)
	rec.PushError(errors.New("second"))

	err := device.Check(rec, "frame")
	require.ErrorIs(t, err, first)
	assert.NoError(t, rec.Error(), "queue should be empty after Check")
	assert.NoError(t, device.Check(rec, "frame"))
}

func TestCheckBoundsDrain(t *testing.T) {
	rec := recorder.New()
	for i := 0; i < 20; i++ {
		rec.PushError(errors.New("lost context"))
	}
	require.Error(t, device.Check(rec, "frame"))
	assert.Error(t, rec.Error(), "errors past the drain bound stay queued")
}

func TestRangeClamp(t *testing.T) {
	r := device.Range{Min: 1, Max: 4}
	assert.Equal(t, float32(4), r.Clamp(8))
	assert.Equal(t, float32(1), r.Clamp(0.5))
	assert.Equal(t, float32(2.5), r.Clamp(2.5))
	assert.Equal(t, float32(9), device.Range{Min: 2, Max: 1}.Clamp(9))
}

func TestHandleValid(t *testing.T) {
	assert.False(t, device.InvalidHandle.Valid())
	assert.True(t, device.Handle(0).Valid())
}
