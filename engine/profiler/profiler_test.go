package profiler

import (
	"bytes"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTick_LogsOncePerInterval(t *testing.T) {
	var buf bytes.Buffer
	clock := time.Unix(0, 0)
	p := NewProfiler(
		WithLogger(log.New(&buf, "", 0)),
		WithInterval(time.Second),
		WithClock(func() time.Time { return clock }),
	)

	for range 24 {
		clock = clock.Add(40 * time.Millisecond)
		p.Record(3, 90)
		assert.False(t, p.Tick())
	}
	assert.Empty(t, buf.String())

	clock = clock.Add(40 * time.Millisecond)
	p.Record(3, 90)
	assert.True(t, p.Tick())

	out := buf.String()
	assert.Contains(t, out, "[Profiler] FPS: 25.00")
	assert.Contains(t, out, "Draws: 3.0/frame")
	assert.Contains(t, out, "Vertices: 90.0/frame")
}

func TestTick_ResetsCountersAfterLogging(t *testing.T) {
	var buf bytes.Buffer
	clock := time.Unix(0, 0)
	p := NewProfiler(
		WithLogger(log.New(&buf, "", 0)),
		WithInterval(time.Second),
		WithClock(func() time.Time { return clock }),
	)

	clock = clock.Add(2 * time.Second)
	p.Record(10, 10)
	assert.True(t, p.Tick())

	buf.Reset()
	clock = clock.Add(time.Second)
	p.Record(1, 4)
	assert.True(t, p.Tick())
	assert.Contains(t, buf.String(), "FPS: 1.00")
	assert.Contains(t, buf.String(), "Draws: 1.0/frame")
}
