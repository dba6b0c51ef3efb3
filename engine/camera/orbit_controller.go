package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/chewxy/math32"
)

// UpAxis selects which world axis points up for an orbit controller.
type UpAxis int

const (
	// UpY orbits in the XZ plane with +Y up.
	UpY UpAxis = iota
	// UpZ orbits in the XY plane with +Z up. Azimuth 0 places the eye on -Y.
	UpZ
)

// OrbitController owns a camera's eye position in spherical coordinates (radius, azimuth, elevation)
// around a target point.
type OrbitController interface {
	// Position returns the eye position computed from the target and spherical coordinates.
	Position() common.Point3

	// Target returns the look-at point.
	Target() common.Point3

	// SetTarget moves the look-at point and recomputes the eye position.
	//
	// Parameters:
	//   - target: world-space pivot
	SetTarget(target common.Point3)

	// Up returns the world up direction for the configured axis.
	Up() common.Vector3

	// Zoom changes the radius. Positive delta moves closer to the target.
	//
	// Parameters:
	//   - delta: zoom amount scaled by the zoom speed
	Zoom(delta float32)

	// OrbitLeft rotates the eye left around the target by one orbit step.
	OrbitLeft()

	// OrbitRight rotates the eye right around the target by one orbit step.
	OrbitRight()

	// OrbitUp raises the eye by one orbit step, clamped to the maximum elevation.
	OrbitUp()

	// OrbitDown lowers the eye by one orbit step, clamped to the minimum elevation.
	OrbitDown()

	// Radius returns the distance from the target.
	Radius() float32

	// Azimuth returns the horizontal angle in radians.
	Azimuth() float32

	// Elevation returns the vertical angle from the horizontal plane in radians.
	Elevation() float32
}

type orbitController struct {
	mu *sync.Mutex

	axis     UpAxis
	position common.Point3
	target   common.Point3

	radius    float32
	azimuth   float32
	elevation float32

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	orbitSpeed float32
	zoomSpeed  float32
}

var _ OrbitController = &orbitController{}

// NewOrbitController creates an orbit controller.
// Defaults to a Y-up axis, radius 10 and a slight downward view.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - OrbitController: the newly created controller
func NewOrbitController(options ...OrbitControllerBuilderOption) OrbitController {
	oc := &orbitController{
		mu:           &sync.Mutex{},
		axis:         UpY,
		radius:       10,
		elevation:    math32.Pi / 6,
		minRadius:    1,
		maxRadius:    1000,
		minElevation: -(math32.Pi/2 - 0.1),
		maxElevation: math32.Pi/2 - 0.1,
		orbitSpeed:   0.03,
		zoomSpeed:    1,
	}
	for _, option := range options {
		option(oc)
	}
	oc.radius = common.Clamp(oc.radius, oc.minRadius, oc.maxRadius)
	oc.elevation = common.Clamp(oc.elevation, oc.minElevation, oc.maxElevation)
	oc.updatePosition()
	return oc
}

// updatePosition recomputes the eye from spherical coordinates. Caller must hold the mutex.
func (oc *orbitController) updatePosition() {
	cosElev, sinElev := math32.Cos(oc.elevation), math32.Sin(oc.elevation)
	cosAzim, sinAzim := math32.Cos(oc.azimuth), math32.Sin(oc.azimuth)

	offset := common.Vector3{X: oc.radius * cosElev * sinAzim}
	switch oc.axis {
	case UpZ:
		offset.Y = -oc.radius * cosElev * cosAzim
		offset.Z = oc.radius * sinElev
	default:
		offset.Y = oc.radius * sinElev
		offset.Z = oc.radius * cosElev * cosAzim
	}
	oc.position = oc.target.Add(offset)
}

func (oc *orbitController) Position() common.Point3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.position
}

func (oc *orbitController) Target() common.Point3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.target
}

func (oc *orbitController) SetTarget(target common.Point3) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.target = target
	oc.updatePosition()
}

func (oc *orbitController) Up() common.Vector3 {
	if oc.axis == UpZ {
		return common.Vector3{Z: 1}
	}
	return common.Vector3{Y: 1}
}

func (oc *orbitController) Zoom(delta float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.radius = common.Clamp(oc.radius-delta*oc.zoomSpeed, oc.minRadius, oc.maxRadius)
	oc.updatePosition()
}

func (oc *orbitController) OrbitLeft() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.azimuth -= oc.orbitSpeed
	oc.updatePosition()
}

func (oc *orbitController) OrbitRight() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.azimuth += oc.orbitSpeed
	oc.updatePosition()
}

func (oc *orbitController) OrbitUp() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.elevation = common.Clamp(oc.elevation+oc.orbitSpeed, oc.minElevation, oc.maxElevation)
	oc.updatePosition()
}

func (oc *orbitController) OrbitDown() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.elevation = common.Clamp(oc.elevation-oc.orbitSpeed, oc.minElevation, oc.maxElevation)
	oc.updatePosition()
}

func (oc *orbitController) Radius() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.radius
}

func (oc *orbitController) Azimuth() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.azimuth
}

func (oc *orbitController) Elevation() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.elevation
}
