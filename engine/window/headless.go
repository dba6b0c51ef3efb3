package window

import (
	"errors"
	"sort"
)

// Headless is an off-screen Window for running the engine without a display.
// It stops after a fixed number of presented frames and can replay scripted input.
type Headless interface {
	Window

	// Frames returns how many frames have been presented.
	Frames() int

	// Schedule queues fn to run during the PollEvents call that precedes frame number frame.
	// Frames are numbered from 0; events scheduled for the same frame run in scheduling order.
	//
	// Parameters:
	//   - frame: the frame the event belongs to
	//   - fn: the event, typically calling one of the dispatch methods below
	Schedule(frame int, fn func())

	// Resize changes the framebuffer size and fires the resize callback.
	Resize(width, height int)

	// KeyDown fires the key-down callback.
	KeyDown(keyCode, mods uint32)

	// KeyUp fires the key-up callback.
	KeyUp(keyCode, mods uint32)

	// MouseDown fires the mouse-down callback.
	MouseDown(button uint32, x, y float64)

	// MouseUp fires the mouse-up callback.
	MouseUp(button uint32, x, y float64)

	// MouseMove fires the mouse-move callback.
	MouseMove(x, y float64)

	// Scroll fires the scroll callback.
	Scroll(delta float32)
}

type scheduledEvent struct {
	frame int
	seq   int
	fn    func()
}

type headless struct {
	callbacks

	width, height int
	limit         int
	frames        int
	closed        bool
	stopRequested bool

	events []scheduledEvent
	seq    int
}

var _ Headless = &headless{}

// NewHeadless creates an off-screen surface.
//
// Parameters:
//   - width: framebuffer width in pixels
//   - height: framebuffer height in pixels
//   - frames: frames to present before IsRunning turns false, or 0 to run until closed
//
// Returns:
//   - Headless: the surface
func NewHeadless(width, height, frames int) Headless {
	return &headless{width: width, height: height, limit: frames}
}

func (h *headless) IsRunning() bool {
	if h.closed || h.stopRequested {
		return false
	}
	return h.limit <= 0 || h.frames < h.limit
}

func (h *headless) PollEvents() {
	if len(h.events) == 0 {
		return
	}
	sort.SliceStable(h.events, func(i, j int) bool {
		if h.events[i].frame != h.events[j].frame {
			return h.events[i].frame < h.events[j].frame
		}
		return h.events[i].seq < h.events[j].seq
	})
	n := 0
	for n < len(h.events) && h.events[n].frame <= h.frames {
		n++
	}
	due := h.events[:n]
	h.events = append([]scheduledEvent(nil), h.events[n:]...)
	for _, ev := range due {
		ev.fn()
	}
}

func (h *headless) SwapBuffers() {
	if !h.closed {
		h.frames++
	}
}

func (h *headless) Width() int {
	return h.width
}

func (h *headless) Height() int {
	return h.height
}

func (h *headless) RequestClose() {
	h.stopRequested = true
}

func (h *headless) Close() error {
	if h.closed {
		return errors.New("headless surface already closed")
	}
	h.closed = true
	return nil
}

func (h *headless) Frames() int {
	return h.frames
}

func (h *headless) Schedule(frame int, fn func()) {
	h.events = append(h.events, scheduledEvent{frame: frame, seq: h.seq, fn: fn})
	h.seq++
}

func (h *headless) Resize(width, height int) {
	h.width, h.height = width, height
	if h.onResize != nil {
		h.onResize(width, height)
	}
}

func (h *headless) KeyDown(keyCode, mods uint32) {
	if h.onKeyDown != nil {
		h.onKeyDown(keyCode, mods)
	}
}

func (h *headless) KeyUp(keyCode, mods uint32) {
	if h.onKeyUp != nil {
		h.onKeyUp(keyCode, mods)
	}
}

func (h *headless) MouseDown(button uint32, x, y float64) {
	if h.onMouseDown != nil {
		h.onMouseDown(button, x, y)
	}
}

func (h *headless) MouseUp(button uint32, x, y float64) {
	if h.onMouseUp != nil {
		h.onMouseUp(button, x, y)
	}
}

func (h *headless) MouseMove(x, y float64) {
	if h.onMouseMove != nil {
		h.onMouseMove(x, y)
	}
}

func (h *headless) Scroll(delta float32) {
	if h.onScroll != nil {
		h.onScroll(delta)
	}
}
