package camera

import "github.com/go-gl/mathgl/mgl32"

// ControllerBuilderOption is a functional option for configuring an orbit
// Controller.
type ControllerBuilderOption func(*orbitController)

// WithRadius sets the initial orbit radius (distance from target).
//
// Parameters:
//   - radius: distance from the orbit target
//
// Returns:
//   - ControllerBuilderOption: functional option to set the radius
func WithRadius(radius float32) ControllerBuilderOption {
	return func(cc *orbitController) {
		cc.radius = radius
	}
}

// WithAzimuth sets the initial horizontal angle around the Y axis.
//
// Parameters:
//   - azimuth: horizontal angle in radians (0 = +Z axis)
//
// Returns:
//   - ControllerBuilderOption: functional option to set the azimuth
func WithAzimuth(azimuth float32) ControllerBuilderOption {
	return func(cc *orbitController) {
		cc.azimuth = azimuth
	}
}

// WithElevation sets the initial vertical angle from the horizontal plane.
//
// Parameters:
//   - elevation: vertical angle in radians (0 = horizontal)
//
// Returns:
//   - ControllerBuilderOption: functional option to set the elevation
func WithElevation(elevation float32) ControllerBuilderOption {
	return func(cc *orbitController) {
		cc.elevation = elevation
	}
}

// WithTarget sets the look-at point.
//
// Parameters:
//   - target: world-space coordinates of the orbit pivot
//
// Returns:
//   - ControllerBuilderOption: functional option to set the target
func WithTarget(target mgl32.Vec3) ControllerBuilderOption {
	return func(cc *orbitController) {
		cc.target = target
	}
}

// WithRadiusBounds sets the minimum and maximum orbit radius.
//
// Parameters:
//   - minRadius: closest allowed distance to the target
//   - maxRadius: farthest allowed distance from the target
//
// Returns:
//   - ControllerBuilderOption: functional option to set the radius bounds
func WithRadiusBounds(minRadius, maxRadius float32) ControllerBuilderOption {
	return func(cc *orbitController) {
		cc.minRadius = minRadius
		cc.maxRadius = maxRadius
	}
}

// WithElevationBounds sets the minimum and maximum elevation angle.
//
// Parameters:
//   - minElevation: lowest allowed angle in radians
//   - maxElevation: highest allowed angle in radians
//
// Returns:
//   - ControllerBuilderOption: functional option to set the elevation bounds
func WithElevationBounds(minElevation, maxElevation float32) ControllerBuilderOption {
	return func(cc *orbitController) {
		cc.minElevation = minElevation
		cc.maxElevation = maxElevation
	}
}

// WithZoomSpeed sets the radius change per zoom step.
//
// Parameters:
//   - speed: world units per scroll step
//
// Returns:
//   - ControllerBuilderOption: functional option to set the zoom speed
func WithZoomSpeed(speed float32) ControllerBuilderOption {
	return func(cc *orbitController) {
		cc.zoomSpeed = speed
	}
}

// WithPanSpeed sets the translation scale applied to pan deltas.
//
// Parameters:
//   - speed: world units per pan delta unit
//
// Returns:
//   - ControllerBuilderOption: functional option to set the pan speed
func WithPanSpeed(speed float32) ControllerBuilderOption {
	return func(cc *orbitController) {
		cc.panSpeed = speed
	}
}

// WithMouseSensitivity sets the drag-to-radians factor used by callers
// feeding mouse deltas into SetAzimuth and SetElevation.
//
// Parameters:
//   - sensitivity: radians per pixel of mouse movement
//
// Returns:
//   - ControllerBuilderOption: functional option to set the sensitivity
func WithMouseSensitivity(sensitivity float32) ControllerBuilderOption {
	return func(cc *orbitController) {
		cc.mouseSensitivity = sensitivity
	}
}
