package engine

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/device"
	"github.com/Carmen-Shannon/oxy-graph/engine/profiler"
	"github.com/Carmen-Shannon/oxy-graph/engine/scene"
	"github.com/Carmen-Shannon/oxy-graph/engine/window"
)

// DefaultDrawRate is the number of frames drawn per second when none is configured.
const DefaultDrawRate = 30

// ErrNotConfigured is returned by Run and Frame when the engine has no surface or device.
var ErrNotConfigured = errors.New("engine requires a surface and a device")

// engine implements the Engine interface.
// Every device call happens on the goroutine that calls Run, which must own the GL context.
type engine struct {
	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	surface window.Surface
	device  device.Device

	profiler         *profiler.Profiler
	profilingEnabled bool

	drawRate   int
	clearColor common.Color4

	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	scenes map[int]scene.Scene

	frames     uint64
	lastFrame  time.Time
	lastStats  scene.FrameStats
	closedOnce sync.Once
}

// Engine is the main entry point for the engine.
// It owns the draw loop: poll input, tick, clear, draw every active scene in z-order, present.
type Engine interface {
	// Surface returns the surface frames are presented to.
	//
	// Returns:
	//   - window.Surface: the surface
	Surface() window.Surface

	// Device returns the graphics device scenes draw on.
	//
	// Returns:
	//   - device.Device: the device
	Device() device.Device

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetDrawRate sets the target number of frames per second.
	//
	// Parameters:
	//   - dps: draws per second (defaults to DefaultDrawRate if <= 0)
	SetDrawRate(dps int)

	// DrawRate returns the target number of frames per second.
	DrawRate() int

	// SetClearColor sets the color the framebuffer is cleared to before each frame.
	//
	// Parameters:
	//   - c: clear color
	SetClearColor(c common.Color4)

	// SetTickCallback registers the function called once per frame before any scene draws.
	// Use this for animation and input-driven state changes.
	//
	// Parameters:
	//   - callback: function receiving the time since the previous frame in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called after the scenes draw and before the frame is presented.
	//
	// Parameters:
	//   - callback: function receiving the time since the previous frame in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// AddScene registers a scene at the given z-index key.
	// Scenes are drawn in ascending key order.
	//
	// Parameters:
	//   - key: the z-index determining draw order (lower draws first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key. The scene is not closed.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// Frame draws and presents exactly one frame.
	//
	// Returns:
	//   - error: the joined scene draw errors, or ErrNotConfigured
	Frame() error

	// Frames returns how many frames have been presented.
	Frames() uint64

	// LastStats returns the draw statistics summed over all scenes for the most recent frame.
	LastStats() scene.FrameStats

	// Run draws frames at the configured rate until the surface stops or Quit is called.
	// Changes made with SetDrawRate apply from the next frame. A scene that leaves its transform
	// stack unbalanced stops the loop.
	//
	// Returns:
	//   - error: ErrNotConfigured if the engine has no surface or device, or the frame error
	//     wrapping scene.ErrUnbalancedTransformStack
	Run() error

	// Quit stops Run after the current frame. Safe to call from any goroutine and more than once.
	Quit()

	// Close releases every registered scene and then the surface. Subsequent calls are no-ops.
	//
	// Returns:
	//   - error: error if the surface fails to close
	Close() error
}

// NewEngine creates a new Engine instance with the provided options.
// When a surface is configured its resize events update the device viewport and every scene's camera.
//
// Parameters:
//   - options: functional options for engine configuration (surface, device, draw rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		quitChannel: make(chan struct{}),
		scenes:      make(map[int]scene.Scene),
		profiler:    profiler.NewProfiler(),
		drawRate:    DefaultDrawRate,
		clearColor:  common.Color4{A: 1},
	}

	for _, opt := range options {
		opt(e)
	}

	if e.surface != nil {
		e.surface.SetResizeCallback(e.resize)
	}

	return e
}

func (e *engine) Surface() window.Surface {
	return e.surface
}

func (e *engine) Device() device.Device {
	return e.device
}

// resize propagates a framebuffer size change to the device viewport and scene cameras.
func (e *engine) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if e.device != nil {
		e.device.Viewport(0, 0, width, height)
	}
	for _, s := range e.scenes {
		if c := s.Camera(); c != nil {
			c.Resize(width, height)
		}
	}
}

func (e *engine) Run() error {
	if e.surface == nil || e.device == nil {
		return ErrNotConfigured
	}
	e.resize(e.surface.Width(), e.surface.Height())
	common.Logger().Info("engine started", "draws_per_second", e.drawRate, "scenes", len(e.scenes))

	timer := time.NewTimer(0)
	defer timer.Stop()

	for e.surface.IsRunning() {
		select {
		case <-e.quitChannel:
			common.Logger().Info("engine stopped", "frames", e.frames)
			return nil
		default:
		}

		start := time.Now()
		if err := e.Frame(); err != nil {
			if errors.Is(err, scene.ErrUnbalancedTransformStack) {
				common.Logger().Error("engine stopped on corrupted frame state", "frames", e.frames, "error", err)
				return err
			}
			common.Logger().Warn("frame failed", "frame", e.frames, "error", err)
		}

		// Callbacks may have changed the rate during the frame.
		period := time.Second / time.Duration(e.drawRate)
		if remaining := period - time.Since(start); remaining > 0 {
			timer.Reset(remaining)
			select {
			case <-e.quitChannel:
			case <-timer.C:
			}
		}
	}

	common.Logger().Info("engine stopped", "frames", e.frames)
	return nil
}

func (e *engine) Frame() error {
	if e.surface == nil || e.device == nil {
		return ErrNotConfigured
	}

	now := time.Now()
	if e.lastFrame.IsZero() {
		e.lastFrame = now
	}
	dt := float32(now.Sub(e.lastFrame).Seconds())
	e.lastFrame = now

	e.surface.PollEvents()

	if e.tickCallback != nil {
		e.tickCallback(dt)
	}

	e.device.Clear(e.clearColor)

	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	var errs []error
	var total scene.FrameStats
	for _, k := range keys {
		s := e.scenes[k]
		if !s.Active() {
			continue
		}
		if err := s.Draw(); err != nil {
			errs = append(errs, fmt.Errorf("scene %d: %w", k, err))
		}
		st := s.Stats()
		total.Nodes += st.Nodes
		total.DrawCalls += st.DrawCalls
		total.Vertices += st.Vertices
		total.SkippedDraws += st.SkippedDraws
		total.MaxDepth = max(total.MaxDepth, st.MaxDepth)
	}
	e.lastStats = total

	if e.renderCallback != nil {
		e.renderCallback(dt)
	}

	e.surface.SwapBuffers()
	e.frames++

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Record(total.DrawCalls, total.Vertices)
		e.profiler.Tick()
	}

	return errors.Join(errs...)
}

func (e *engine) Frames() uint64 {
	return e.frames
}

func (e *engine) LastStats() scene.FrameStats {
	return e.lastStats
}

// Quit signals Run to return. Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) Close() error {
	var err error
	e.closedOnce.Do(func() {
		e.Quit()
		for _, s := range e.scenes {
			s.Close()
		}
		if e.surface != nil {
			err = e.surface.Close()
		}
	})
	return err
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetDrawRate(dps int) {
	if dps <= 0 {
		dps = DefaultDrawRate
	}
	e.drawRate = dps
}

func (e *engine) DrawRate() int {
	return e.drawRate
}

func (e *engine) SetClearColor(c common.Color4) {
	e.clearColor = c
}

// SetTickCallback registers the function called each frame before drawing.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

// SetRenderCallback registers the function called each frame after drawing.
func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.scenes[key] = s
	if c := s.Camera(); c != nil && e.surface != nil {
		c.Resize(e.surface.Width(), e.surface.Height())
	}
}

func (e *engine) RemoveScene(key int) {
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}
