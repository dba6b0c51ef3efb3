package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadless_StopsAfterFrameLimit(t *testing.T) {
	h := NewHeadless(640, 480, 3)
	count := 0
	for h.IsRunning() {
		h.PollEvents()
		h.SwapBuffers()
		count++
	}
	assert.Equal(t, 3, count)
	assert.Equal(t, 3, h.Frames())
	assert.Equal(t, 640, h.Width())
	assert.Equal(t, 480, h.Height())
}

func TestHeadless_UnlimitedUntilRequestClose(t *testing.T) {
	h := NewHeadless(1, 1, 0)
	for range 100 {
		require.True(t, h.IsRunning())
		h.SwapBuffers()
	}
	h.RequestClose()
	assert.False(t, h.IsRunning())
}

func TestHeadless_ScheduledEventsRunInFrameOrder(t *testing.T) {
	h := NewHeadless(100, 100, 4)
	var got []string

	h.SetMouseDownCallback(func(button uint32, x, y float64) { got = append(got, "down") })
	h.SetMouseMoveCallback(func(x, y float64) { got = append(got, "move") })
	h.SetMouseUpCallback(func(button uint32, x, y float64) { got = append(got, "up") })

	h.Schedule(2, func() { h.MouseUp(0, 1, 1) })
	h.Schedule(0, func() { h.MouseDown(0, 0, 0) })
	h.Schedule(1, func() { h.MouseMove(1, 1) })
	h.Schedule(1, func() { h.MouseMove(2, 2) })

	var perFrame []int
	for h.IsRunning() {
		before := len(got)
		h.PollEvents()
		perFrame = append(perFrame, len(got)-before)
		h.SwapBuffers()
	}

	assert.Equal(t, []string{"down", "move", "move", "up"}, got)
	assert.Equal(t, []int{1, 2, 1, 0}, perFrame)
}

func TestHeadless_ResizeAndKeysDispatch(t *testing.T) {
	h := NewHeadless(10, 10, 1)
	var size [2]int
	var keys []uint32
	var scroll float32
	h.SetResizeCallback(func(w, hh int) { size = [2]int{w, hh} })
	h.SetKeyDownCallback(func(k, mods uint32) { keys = append(keys, k) })
	h.SetKeyUpCallback(func(k, mods uint32) { keys = append(keys, k+1000) })
	h.SetScrollCallback(func(d float32) { scroll = d })

	h.Resize(300, 200)
	h.KeyDown(65, 0)
	h.KeyUp(65, 0)
	h.Scroll(-1.5)

	assert.Equal(t, [2]int{300, 200}, size)
	assert.Equal(t, 300, h.Width())
	assert.Equal(t, []uint32{65, 1065}, keys)
	assert.Equal(t, float32(-1.5), scroll)
}

func TestHeadless_CloseTwiceFails(t *testing.T) {
	h := NewHeadless(1, 1, 0)
	require.NoError(t, h.Close())
	assert.False(t, h.IsRunning())
	assert.Error(t, h.Close())
}

func TestHeadless_NilCallbacksAreSafe(t *testing.T) {
	h := NewHeadless(1, 1, 0)
	assert.NotPanics(t, func() {
		h.Resize(2, 2)
		h.KeyDown(1, 0)
		h.KeyUp(1, 0)
		h.MouseDown(0, 0, 0)
		h.MouseUp(0, 0, 0)
		h.MouseMove(0, 0)
		h.Scroll(1)
	})
}
