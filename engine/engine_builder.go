package engine

import (
	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/config"
	"github.com/Carmen-Shannon/oxy-graph/engine/device"
	"github.com/Carmen-Shannon/oxy-graph/engine/profiler"
	"github.com/Carmen-Shannon/oxy-graph/engine/scene"
	"github.com/Carmen-Shannon/oxy-graph/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler.
//
// Parameters:
//   - p: the profiler to feed
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithDrawRate sets the target frames per second.
// Values <= 0 will be treated as DefaultDrawRate.
//
// Parameters:
//   - dps: target draws per second
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithDrawRate(dps int) EngineBuilderOption {
	return func(e *engine) {
		e.SetDrawRate(dps)
	}
}

// WithClearColor sets the framebuffer clear color.
//
// Parameters:
//   - c: clear color
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithClearColor(c common.Color4) EngineBuilderOption {
	return func(e *engine) {
		e.clearColor = c
	}
}

// WithSurface sets the surface frames are presented to: a window.Window or a window.Headless.
//
// Parameters:
//   - s: the surface
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSurface(s window.Surface) EngineBuilderOption {
	return func(e *engine) {
		e.surface = s
	}
}

// WithDevice sets the graphics device scenes draw on.
//
// Parameters:
//   - dev: the device
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithDevice(dev device.Device) EngineBuilderOption {
	return func(e *engine) {
		e.device = dev
	}
}

// WithScene registers a scene at the given z-index key.
//
// Parameters:
//   - key: the z-index determining draw order
//   - s: the scene
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(key int, s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scenes[key] = s
	}
}

// WithConfig applies the render section of an application configuration:
// draw rate, clear color and profiling.
//
// Parameters:
//   - cfg: the configuration
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithConfig(cfg config.Config) EngineBuilderOption {
	return func(e *engine) {
		e.SetDrawRate(cfg.Render.DrawsPerSecond)
		e.clearColor = cfg.Render.ClearColor
		e.profilingEnabled = cfg.Render.Profiling
	}
}
