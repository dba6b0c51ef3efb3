package camera

// OrthoCameraBuilderOption is a functional option for configuring an OrthoCamera.
type OrthoCameraBuilderOption func(*orthoCamera)

// WithHalfExtent sets the world distance from the origin to the nearest window edge.
// Non-positive values are ignored.
//
// Parameters:
//   - extent: half extent along the smaller framebuffer dimension
//
// Returns:
//   - OrthoCameraBuilderOption: functional option to set the half extent
func WithHalfExtent(extent float32) OrthoCameraBuilderOption {
	return func(c *orthoCamera) {
		if extent > 0 {
			c.halfExtent = extent
		}
	}
}

// PerspectiveCameraBuilderOption is a functional option for configuring a PerspectiveCamera.
type PerspectiveCameraBuilderOption func(*perspectiveCamera)

// WithController attaches the orbit controller that owns the eye and target.
//
// Parameters:
//   - controller: the orbit controller
//
// Returns:
//   - PerspectiveCameraBuilderOption: functional option to set the controller
func WithController(controller OrbitController) PerspectiveCameraBuilderOption {
	return func(c *perspectiveCamera) {
		c.controller = controller
	}
}

// WithFov sets the vertical field of view in degrees.
//
// Parameters:
//   - deg: field of view in degrees
//
// Returns:
//   - PerspectiveCameraBuilderOption: functional option to set the field of view
func WithFov(deg float32) PerspectiveCameraBuilderOption {
	return func(c *perspectiveCamera) {
		c.fov = deg
	}
}

// WithAspect sets the initial aspect ratio. Resize overrides it.
//
// Parameters:
//   - aspect: width divided by height
//
// Returns:
//   - PerspectiveCameraBuilderOption: functional option to set the aspect ratio
func WithAspect(aspect float32) PerspectiveCameraBuilderOption {
	return func(c *perspectiveCamera) {
		if aspect > 0 {
			c.aspect = aspect
		}
	}
}

// WithClip sets the near and far clipping distances.
//
// Parameters:
//   - near: near plane distance, must be positive
//   - far: far plane distance, must exceed near
//
// Returns:
//   - PerspectiveCameraBuilderOption: functional option to set the clip planes
func WithClip(near, far float32) PerspectiveCameraBuilderOption {
	return func(c *perspectiveCamera) {
		if near > 0 && far > near {
			c.near = near
			c.far = far
		}
	}
}
