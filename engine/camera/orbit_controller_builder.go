package camera

import "github.com/Carmen-Shannon/oxy-graph/common"

// OrbitControllerBuilderOption is a functional option for configuring an OrbitController.
type OrbitControllerBuilderOption func(*orbitController)

// WithUpAxis selects the world up axis.
//
// Parameters:
//   - axis: UpY or UpZ
//
// Returns:
//   - OrbitControllerBuilderOption: functional option to set the up axis
func WithUpAxis(axis UpAxis) OrbitControllerBuilderOption {
	return func(oc *orbitController) {
		oc.axis = axis
	}
}

// WithTarget sets the look-at point.
//
// Parameters:
//   - target: world-space pivot
//
// Returns:
//   - OrbitControllerBuilderOption: functional option to set the target
func WithTarget(target common.Point3) OrbitControllerBuilderOption {
	return func(oc *orbitController) {
		oc.target = target
	}
}

// WithRadius sets the initial distance from the target.
//
// Parameters:
//   - radius: orbit radius, clamped to the radius limits
//
// Returns:
//   - OrbitControllerBuilderOption: functional option to set the radius
func WithRadius(radius float32) OrbitControllerBuilderOption {
	return func(oc *orbitController) {
		oc.radius = radius
	}
}

// WithRadiusLimits bounds the orbit radius.
//
// Parameters:
//   - minRadius: closest allowed distance
//   - maxRadius: farthest allowed distance
//
// Returns:
//   - OrbitControllerBuilderOption: functional option to set the radius limits
func WithRadiusLimits(minRadius, maxRadius float32) OrbitControllerBuilderOption {
	return func(oc *orbitController) {
		if minRadius > 0 && maxRadius >= minRadius {
			oc.minRadius = minRadius
			oc.maxRadius = maxRadius
		}
	}
}

// WithAzimuth sets the initial horizontal angle in radians.
//
// Returns:
//   - OrbitControllerBuilderOption: functional option to set the azimuth
func WithAzimuth(azimuth float32) OrbitControllerBuilderOption {
	return func(oc *orbitController) {
		oc.azimuth = azimuth
	}
}

// WithElevation sets the initial vertical angle in radians (0 = horizontal).
//
// Returns:
//   - OrbitControllerBuilderOption: functional option to set the elevation
func WithElevation(elevation float32) OrbitControllerBuilderOption {
	return func(oc *orbitController) {
		oc.elevation = elevation
	}
}

// WithOrbitSpeed sets the angle in radians applied by each Orbit* call.
//
// Returns:
//   - OrbitControllerBuilderOption: functional option to set the orbit speed
func WithOrbitSpeed(speed float32) OrbitControllerBuilderOption {
	return func(oc *orbitController) {
		oc.orbitSpeed = speed
	}
}

// WithZoomSpeed sets the radius change per unit of zoom delta.
//
// Returns:
//   - OrbitControllerBuilderOption: functional option to set the zoom speed
func WithZoomSpeed(speed float32) OrbitControllerBuilderOption {
	return func(oc *orbitController) {
		oc.zoomSpeed = speed
	}
}
