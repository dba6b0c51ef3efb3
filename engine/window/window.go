package window

import (
	"fmt"
)

// Surface is what the engine loop presents frames to: an on-screen window or a headless stand-in.
type Surface interface {
	// IsRunning returns true while the surface should keep receiving frames.
	//
	// Returns:
	//   - bool: true if running, false once closed
	IsRunning() bool

	// PollEvents dispatches pending input and window events to the registered callbacks.
	PollEvents()

	// SwapBuffers presents the frame drawn since the previous swap.
	SwapBuffers()

	// Width returns the framebuffer width in pixels.
	Width() int

	// Height returns the framebuffer height in pixels.
	Height() int

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// Close releases the surface. Further calls return an error.
	//
	// Returns:
	//   - error: error if the surface was already closed
	Close() error
}

// Window is a Surface that also delivers keyboard and mouse input.
type Window interface {
	Surface

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving scroll delta (positive = up/zoom in, negative = down/zoom out)
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback sets the callback for key press and repeat events.
	//
	// Parameters:
	//   - callback: function receiving the key code and modifier bits (see common key codes)
	SetKeyDownCallback(callback func(keyCode uint32, mods uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the key code and modifier bits
	SetKeyUpCallback(callback func(keyCode uint32, mods uint32))

	// SetMouseDownCallback sets the callback for mouse button presses.
	//
	// Parameters:
	//   - callback: function receiving the button and the cursor position in window pixels
	SetMouseDownCallback(callback func(button uint32, x, y float64))

	// SetMouseUpCallback sets the callback for mouse button releases.
	//
	// Parameters:
	//   - callback: function receiving the button and the cursor position in window pixels
	SetMouseUpCallback(callback func(button uint32, x, y float64))

	// SetMouseMoveCallback sets the callback for cursor movement.
	//
	// Parameters:
	//   - callback: function receiving the cursor position in window pixels
	SetMouseMoveCallback(callback func(x, y float64))

	// RequestClose asks the window to stop running after the current frame.
	RequestClose()
}

// callbacks holds the event handlers shared by every Window implementation.
type callbacks struct {
	onResize    func(width, height int)
	onScroll    func(delta float32)
	onKeyDown   func(keyCode uint32, mods uint32)
	onKeyUp     func(keyCode uint32, mods uint32)
	onMouseDown func(button uint32, x, y float64)
	onMouseUp   func(button uint32, x, y float64)
	onMouseMove func(x, y float64)
}

func (c *callbacks) SetResizeCallback(callback func(width, height int)) {
	c.onResize = callback
}

func (c *callbacks) SetScrollCallback(callback func(delta float32)) {
	c.onScroll = callback
}

func (c *callbacks) SetKeyDownCallback(callback func(keyCode uint32, mods uint32)) {
	c.onKeyDown = callback
}

func (c *callbacks) SetKeyUpCallback(callback func(keyCode uint32, mods uint32)) {
	c.onKeyUp = callback
}

func (c *callbacks) SetMouseDownCallback(callback func(button uint32, x, y float64)) {
	c.onMouseDown = callback
}

func (c *callbacks) SetMouseUpCallback(callback func(button uint32, x, y float64)) {
	c.onMouseUp = callback
}

func (c *callbacks) SetMouseMoveCallback(callback func(x, y float64)) {
	c.onMouseMove = callback
}

// engineWindow is the GLFW-backed Window owning an OpenGL context.
type engineWindow struct {
	callbacks

	// title is the window title displayed in the title bar.
	title string

	maxWidth  int
	maxHeight int
	minWidth  int
	minHeight int

	// width and height are the framebuffer size in pixels, which differs from the
	// requested window size on high-DPI displays.
	width  int
	height int

	// samples is the MSAA sample count requested for the default framebuffer.
	samples int

	// swapInterval is the number of screen refreshes to wait per buffer swap.
	swapInterval int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any
}

var _ Window = &engineWindow{}

// NewWindow opens a window with a current OpenGL 3.3 core context on the calling thread.
// The caller must keep issuing GL calls and event polling from this thread.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the opened window
//   - error: error if GLFW or the context cannot be initialized
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:        "oxy-graph",
		maxWidth:     3840,
		maxHeight:    2160,
		minWidth:     100,
		minHeight:    100,
		width:        500,
		height:       500,
		samples:      4,
		swapInterval: 1,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	return w, nil
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) PollEvents() {
	platformProcessMessages(w)
}

func (w *engineWindow) SwapBuffers() {
	platformSwapBuffers(w)
}

func (w *engineWindow) RequestClose() {
	platformRequestClose(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}
