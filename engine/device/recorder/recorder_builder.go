package recorder

import "github.com/Carmen-Shannon/oxy-graph/engine/device"

// RecorderBuilderOption is a functional option for configuring a Recorder.
type RecorderBuilderOption func(r *Recorder)

// WithLimits sets the capabilities the recorder reports and clamps against.
//
// Parameters:
//   - limits: the line width and point size ranges
//
// Returns:
//   - RecorderBuilderOption: option function to apply
func WithLimits(limits device.Limits) RecorderBuilderOption {
	return func(r *Recorder) {
		r.limits = limits
	}
}
