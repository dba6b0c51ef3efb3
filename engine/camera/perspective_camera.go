package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-graph/common"
)

// PerspectiveCamera is a look-at camera whose eye and target are owned by an OrbitController.
type PerspectiveCamera interface {
	Camera

	// Controller returns the attached orbit controller.
	Controller() OrbitController

	// SetController replaces the attached orbit controller.
	//
	// Parameters:
	//   - controller: the new controller, must not be nil
	SetController(controller OrbitController)

	// View returns the look-at matrix for the controller's current position and target.
	View() common.Matrix4x4

	// Projection returns the perspective projection matrix.
	Projection() common.Matrix4x4

	// Fov returns the vertical field of view in degrees.
	Fov() float32

	// SetFov sets the vertical field of view in degrees.
	SetFov(deg float32)

	// Aspect returns the viewport aspect ratio (width/height).
	Aspect() float32

	// Clip returns the near and far clipping distances.
	Clip() (near, far float32)
}

type perspectiveCamera struct {
	mu         *sync.Mutex
	controller OrbitController

	fov    float32
	aspect float32
	near   float32
	far    float32
}

var _ PerspectiveCamera = &perspectiveCamera{}

// NewPerspectiveCamera creates a perspective camera.
// Defaults to a 70 degree field of view, square aspect, and clip planes at 1 and 200.
// When no controller is supplied a default orbit controller is attached.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - PerspectiveCamera: the newly created camera
func NewPerspectiveCamera(options ...PerspectiveCameraBuilderOption) PerspectiveCamera {
	c := &perspectiveCamera{
		mu:     &sync.Mutex{},
		fov:    70,
		aspect: 1,
		near:   1,
		far:    200,
	}
	for _, option := range options {
		option(c)
	}
	if c.controller == nil {
		c.controller = NewOrbitController()
	}
	return c
}

func (c *perspectiveCamera) ProjectionView() common.Matrix4x4 {
	return c.Projection().Mul(c.View())
}

func (c *perspectiveCamera) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = float32(width) / float32(height)
}

func (c *perspectiveCamera) Controller() OrbitController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *perspectiveCamera) SetController(controller OrbitController) {
	if controller == nil {
		panic("camera: nil orbit controller")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = controller
}

func (c *perspectiveCamera) View() common.Matrix4x4 {
	ctrl := c.Controller()
	return common.LookAt(ctrl.Position(), ctrl.Target(), ctrl.Up())
}

func (c *perspectiveCamera) Projection() common.Matrix4x4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.Perspective(c.fov, c.aspect, c.near, c.far)
}

func (c *perspectiveCamera) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *perspectiveCamera) SetFov(deg float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = common.Clamp(deg, 1, 179)
}

func (c *perspectiveCamera) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *perspectiveCamera) Clip() (near, far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near, c.far
}
