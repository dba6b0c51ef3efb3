package scene

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/camera"
	"github.com/Carmen-Shannon/oxy-graph/engine/device"
)

// ErrUnbalancedTransformStack is returned by Draw when a traversal leaves saved transforms on the stack.
var ErrUnbalancedTransformStack = errors.New("unbalanced transform stack")

// Scene is the application context for one scene graph: it owns the root node and the frame state,
// and draws the graph once per call to Draw. There is no process-wide scene state; everything a
// traversal needs is reachable from here.
// Scenes can be hot-swapped via the Active flag.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently drawn by the engine.
	Active() bool

	// SetActive sets whether this scene is drawn by the engine.
	SetActive(active bool)

	// Device returns the device the scene draws on.
	Device() device.Device

	// Root returns the root node, or nil if none is attached.
	Root() Node

	// SetRoot replaces the root node. The previous root is returned to the caller, not destroyed.
	//
	// Parameters:
	//   - root: the new root
	//
	// Returns:
	//   - Node: the previous root, or nil
	SetRoot(root Node) Node

	// Camera returns the camera supplying the projection-view matrix, or nil.
	Camera() camera.Camera

	// SetCamera sets the camera queried for the projection-view matrix at the start of each Draw.
	SetCamera(cam camera.Camera)

	// ProjectionView returns the matrix used by the last or next traversal.
	ProjectionView() common.Matrix4x4

	// SetProjectionView fixes the projection-view matrix. It is overridden on each Draw while a camera is set.
	SetProjectionView(pv common.Matrix4x4)

	// Draw traverses the graph once with a freshly reset frame state. Device errors reported during
	// the frame are logged and do not fail the draw.
	//
	// Returns:
	//   - error: wraps ErrUnbalancedTransformStack if the traversal did not restore the stack
	Draw() error

	// Stats returns the statistics of the last Draw.
	Stats() FrameStats

	// DeviceError returns the first device error reported during the last Draw, or nil.
	DeviceError() error

	// Close destroys the root subtree and releases every GPU resource it owns. Safe to call more than once.
	Close()
}

type scene struct {
	name   string
	active bool
	dev    device.Device
	root   Node
	cam    camera.Camera
	state  *FrameState

	stats     FrameStats
	deviceErr error
	closed    bool
}

var _ Scene = &scene{}

// NewScene creates a scene drawing on dev. Panics if dev is nil.
//
// Parameters:
//   - name: the name of the scene
//   - dev: the device to draw on (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, dev device.Device, options ...SceneBuilderOption) Scene {
	if dev == nil {
		panic("scene: NewScene requires a non-nil Device")
	}
	s := &scene{
		name:  name,
		dev:   dev,
		state: NewFrameState(dev),
	}
	for _, opt := range options {
		opt(s)
	}
	common.Logger().Info("scene created", "name", s.name, "active", s.active)
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) SetName(name string) {
	s.name = name
}

func (s *scene) Active() bool {
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.active = active
}

func (s *scene) Device() device.Device {
	return s.dev
}

func (s *scene) Root() Node {
	return s.root
}

func (s *scene) SetRoot(root Node) Node {
	prev := s.root
	s.root = root
	return prev
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.cam = cam
}

func (s *scene) ProjectionView() common.Matrix4x4 {
	return s.state.ProjectionView
}

func (s *scene) SetProjectionView(pv common.Matrix4x4) {
	s.state.ProjectionView = pv
}

func (s *scene) Draw() error {
	s.state.Reset()
	if s.cam != nil {
		s.state.ProjectionView = s.cam.ProjectionView()
	}

	if s.root != nil && !s.closed {
		s.root.Traverse(s.state)
	}

	var err error
	if depth := s.state.Depth(); depth != 0 {
		common.Logger().Error("transform stack not restored after traversal", "scene", s.name, "depth", depth)
		err = fmt.Errorf("%w: scene %q finished at depth %d", ErrUnbalancedTransformStack, s.name, depth)
	}
	if s.state.Blending {
		common.Logger().Error("blending left enabled after traversal", "scene", s.name)
		s.dev.DisableBlend()
	}

	s.deviceErr = device.Check(s.dev, "scene "+s.name)
	s.stats = s.state.Stats
	s.state.Reset()
	return err
}

func (s *scene) Stats() FrameStats {
	return s.stats
}

func (s *scene) DeviceError() error {
	return s.deviceErr
}

func (s *scene) Close() {
	if s.closed {
		return
	}
	s.closed = true
	if s.root != nil {
		s.root.Destroy()
	}
	common.Logger().Info("scene closed", "name", s.name)
}
