package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-graph/common"
)

// DefaultHalfExtent is the distance from the origin to the nearest edge of an orthographic world window.
const DefaultHalfExtent float32 = 5

// Camera supplies the projection-view matrix a scene uploads to every shader node it traverses.
type Camera interface {
	// ProjectionView returns the combined projection and view matrix.
	//
	// Returns:
	//   - common.Matrix4x4: projection * view
	ProjectionView() common.Matrix4x4

	// Resize adapts the camera to a new framebuffer size. Non-positive sizes are ignored.
	//
	// Parameters:
	//   - width: framebuffer width in pixels
	//   - height: framebuffer height in pixels
	Resize(width, height int)
}

// OrthoCamera is a 2D camera whose world window keeps a fixed half extent along the
// smaller framebuffer dimension and stretches along the larger one.
type OrthoCamera interface {
	Camera

	// Bounds returns the current world window.
	//
	// Returns:
	//   - left, right, bottom, top: world window extents
	Bounds() (left, right, bottom, top float32)

	// ScreenToWorld maps a window position (origin top-left, y down) to world coordinates.
	//
	// Parameters:
	//   - x, y: cursor position in pixels
	//
	// Returns:
	//   - common.Point2: the world-space point under the cursor
	ScreenToWorld(x, y float64) common.Point2
}

type orthoCamera struct {
	mu *sync.Mutex

	halfExtent    float32
	width, height int

	left, right, bottom, top float32
	projection               common.Matrix4x4
	inverse                  common.Matrix4x4
}

var _ OrthoCamera = &orthoCamera{}

// NewOrthoCamera creates an orthographic camera for a framebuffer of the given size.
//
// Parameters:
//   - width: framebuffer width in pixels
//   - height: framebuffer height in pixels
//   - options: functional options to configure the camera
//
// Returns:
//   - OrthoCamera: the newly created camera
func NewOrthoCamera(width, height int, options ...OrthoCameraBuilderOption) OrthoCamera {
	c := &orthoCamera{
		mu:         &sync.Mutex{},
		halfExtent: DefaultHalfExtent,
		width:      1,
		height:     1,
	}
	for _, option := range options {
		option(c)
	}
	if width > 0 && height > 0 {
		c.width, c.height = width, height
	}
	c.update()
	return c
}

func (c *orthoCamera) ProjectionView() common.Matrix4x4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projection
}

func (c *orthoCamera) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.width = width
	c.height = height
	c.update()
}

func (c *orthoCamera) Bounds() (left, right, bottom, top float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.left, c.right, c.bottom, c.top
}

func (c *orthoCamera) ScreenToWorld(x, y float64) common.Point2 {
	c.mu.Lock()
	defer c.mu.Unlock()

	ndc := common.Point3{
		X: float32(2*x/float64(c.width) - 1),
		Y: float32(1 - 2*y/float64(c.height)),
	}
	p := c.inverse.TransformPoint(ndc)
	return common.Point2{X: p.X, Y: p.Y}
}

// update recomputes the world window and its matrices. Caller must hold the mutex.
func (c *orthoCamera) update() {
	w, h := float32(c.width), float32(c.height)
	if w >= h {
		c.top = c.halfExtent
		c.right = c.halfExtent * w / h
	} else {
		c.right = c.halfExtent
		c.top = c.halfExtent * h / w
	}
	c.left, c.bottom = -c.right, -c.top

	c.projection = common.Ortho2D(c.left, c.right, c.bottom, c.top)
	c.inverse, _ = c.projection.Inverse()
}
