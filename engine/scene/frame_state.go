package scene

import (
	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/device"
	"github.com/Carmen-Shannon/oxy-graph/engine/shader"
)

// DefaultColor is the color geometry draws with when no presentation node encloses it.
var DefaultColor = common.Color4{R: 1, G: 1, B: 1, A: 1}

// FrameStats counts what one traversal submitted to the device.
type FrameStats struct {
	// Nodes is the number of nodes visited.
	Nodes int

	// DrawCalls is the number of draw submissions issued.
	DrawCalls int

	// Vertices is the total vertex count across all draw submissions.
	Vertices int

	// SkippedDraws counts geometry nodes that had nothing visible to draw.
	SkippedDraws int

	// MaxDepth is the deepest transform stack reached.
	MaxDepth int
}

// FrameState is the mutable state threaded by reference through one traversal.
// Nodes that change it must undo their change before returning to their parent.
// It is not safe for concurrent use.
type FrameState struct {
	// Device receives every uniform upload, state toggle and draw submission.
	Device device.Device

	// ModelMatrix is the current composite object-to-world transform.
	ModelMatrix common.Matrix4x4

	// ProjectionView is fixed for the frame and combined with ModelMatrix per draw.
	ProjectionView common.Matrix4x4

	// Handles is the handle table of the most recently entered shader node.
	Handles shader.HandleTable

	// Color is the color published by the nearest presentation ancestor, or DefaultColor when
	// HasColor is unset.
	Color    common.Color4
	HasColor bool

	// Blending mirrors whether blending is currently enabled on the device.
	Blending bool

	Stats FrameStats

	stack []common.Matrix4x4
}

// NewFrameState creates a frame state bound to a device with an identity transform.
//
// Parameters:
//   - dev: the device traversal draws on
//
// Returns:
//   - *FrameState: the initialized state
func NewFrameState(dev device.Device) *FrameState {
	s := &FrameState{
		Device:         dev,
		ProjectionView: common.Identity4(),
		stack:          make([]common.Matrix4x4, 0, 16),
	}
	s.Reset()
	return s
}

// Reset prepares the state for a new traversal. The projection-view matrix is kept;
// everything a traversal mutates returns to its initial value.
func (s *FrameState) Reset() {
	s.ModelMatrix = common.Identity4()
	s.Handles = shader.NewHandleTable()
	s.Color = DefaultColor
	s.HasColor = false
	s.Blending = false
	s.Stats = FrameStats{}
	s.stack = s.stack[:0]
}

// PushTransform saves the current model matrix.
func (s *FrameState) PushTransform() {
	s.stack = append(s.stack, s.ModelMatrix)
	if len(s.stack) > s.Stats.MaxDepth {
		s.Stats.MaxDepth = len(s.stack)
	}
}

// PopTransform restores the most recently saved model matrix.
// Popping an empty stack leaves the model matrix unchanged and reports false.
//
// Returns:
//   - bool: false if there was nothing to pop
func (s *FrameState) PopTransform() bool {
	n := len(s.stack)
	if n == 0 {
		common.Logger().Error("transform stack underflow")
		return false
	}
	s.ModelMatrix = s.stack[n-1]
	s.stack = s.stack[:n-1]
	return true
}

// Depth returns the number of saved transforms.
func (s *FrameState) Depth() int {
	return len(s.stack)
}

// PublishTransforms uploads the model matrix, its normal matrix and the composite
// projection-view-model matrix to whichever of those uniforms the active shader resolved.
func (s *FrameState) PublishTransforms() {
	if h := s.Handles.Get(shader.SlotModelMatrix); h.Valid() {
		s.Device.UniformMatrix4(h, s.ModelMatrix)
	}
	if h := s.Handles.Get(shader.SlotNormalMatrix); h.Valid() {
		normal, ok := s.ModelMatrix.NormalMatrix()
		if !ok {
			common.Logger().Debug("model matrix is singular, normal matrix left uninverted")
		}
		s.Device.UniformMatrix4(h, normal)
	}
	if h := s.Handles.Get(shader.SlotPVM); h.Valid() {
		s.Device.UniformMatrix4(h, s.ProjectionView.Mul(s.ModelMatrix))
	}
}

// PublishColor uploads a color to the active shader's color uniform, if it has one.
func (s *FrameState) PublishColor(c common.Color4) {
	if h := s.Handles.Get(shader.SlotColor); h.Valid() {
		s.Device.UniformVec4(h, c.Array())
	}
}
