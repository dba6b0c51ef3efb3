package scene

import (
	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/camera"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithRoot attaches the root node of the scene graph.
//
// Parameters:
//   - root: the root node
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithRoot(root Node) SceneBuilderOption {
	return func(s *scene) {
		s.root = root
	}
}

// WithCamera sets the camera supplying the projection-view matrix.
//
// Parameters:
//   - cam: the camera
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCamera(cam camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		s.cam = cam
	}
}

// WithProjectionView fixes the projection-view matrix for scenes without a camera.
//
// Parameters:
//   - pv: the projection-view matrix
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithProjectionView(pv common.Matrix4x4) SceneBuilderOption {
	return func(s *scene) {
		s.state.ProjectionView = pv
	}
}
