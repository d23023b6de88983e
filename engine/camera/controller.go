package camera

import (
	"sync"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Controller owns the camera's positional state. The orbit implementation
// tracks spherical coordinates (radius, azimuth, elevation) around a target
// point; pan methods translate both position and target along the camera's
// local axes so the orbit relationship is preserved. Thread-safe.
type Controller interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space camera position
	Position() mgl32.Vec3

	// Target returns the look-at point.
	//
	// Returns:
	//   - mgl32.Vec3: world-space target position
	Target() mgl32.Vec3

	// SetTarget sets the look-at point and recomputes the position from the
	// spherical coordinates.
	//
	// Parameters:
	//   - target: world-space coordinates
	SetTarget(target mgl32.Vec3)

	// Radius returns the current distance from the target.
	//
	// Returns:
	//   - float32: the orbit radius
	Radius() float32

	// SetRadius sets the orbit radius, clamped to the radius bounds.
	//
	// Parameters:
	//   - radius: new distance from the target
	SetRadius(radius float32)

	// Azimuth returns the horizontal angle around the Y axis.
	//
	// Returns:
	//   - float32: azimuth in radians
	Azimuth() float32

	// SetAzimuth sets the horizontal angle and recomputes the position.
	//
	// Parameters:
	//   - azimuth: new horizontal angle in radians
	SetAzimuth(azimuth float32)

	// Elevation returns the vertical angle from the horizontal plane.
	//
	// Returns:
	//   - float32: elevation in radians
	Elevation() float32

	// SetElevation sets the vertical angle, clamped to the elevation
	// bounds.
	//
	// Parameters:
	//   - elevation: new vertical angle in radians
	SetElevation(elevation float32)

	// MouseSensitivity returns the drag-to-radians factor for orbiting.
	//
	// Returns:
	//   - float32: radians per pixel of mouse movement
	MouseSensitivity() float32

	// Zoom adjusts the orbit radius by delta scaled with the zoom speed.
	// Positive delta zooms in.
	//
	// Parameters:
	//   - delta: zoom amount, usually a scroll wheel step
	Zoom(delta float32)

	// PanForward translates the camera and target along the camera's
	// forward axis by delta scaled with the pan speed.
	//
	// Parameters:
	//   - delta: pan amount, positive moves forward
	PanForward(delta float32)

	// PanRight translates the camera and target along the camera's right
	// axis by delta scaled with the pan speed.
	//
	// Parameters:
	//   - delta: pan amount, positive moves right
	PanRight(delta float32)

	// PanUp translates the camera and target along the camera's up axis by
	// delta scaled with the pan speed.
	//
	// Parameters:
	//   - delta: pan amount, positive moves up
	PanUp(delta float32)
}

type orbitController struct {
	mu sync.Mutex

	// position is derived from target plus the spherical coordinates and
	// recomputed on every mutation.
	position mgl32.Vec3
	target   mgl32.Vec3

	radius    float32
	azimuth   float32
	elevation float32

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	mouseSensitivity float32
	zoomSpeed        float32
	panSpeed         float32
}

var _ Controller = &orbitController{}

// NewController creates an orbit controller with the given options.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the configured controller
func NewController(options ...ControllerBuilderOption) Controller {
	cc := &orbitController{
		radius:    50,
		elevation: math32.Pi / 6,

		minRadius:    1,
		maxRadius:    1000,
		minElevation: -math32.Pi/2 + 0.1,
		maxElevation: math32.Pi/2 - 0.1,

		mouseSensitivity: 0.005,
		zoomSpeed:        4,
		panSpeed:         1,
	}
	for _, option := range options {
		option(cc)
	}
	cc.updatePosition()
	return cc
}

// updatePosition recomputes the position from the spherical coordinates.
// Called whenever radius, azimuth, elevation, or target changes; the caller
// holds the lock.
func (cc *orbitController) updatePosition() {
	cosElev := math32.Cos(cc.elevation)
	cc.position = cc.target.Add(mgl32.Vec3{
		cc.radius * cosElev * math32.Sin(cc.azimuth),
		cc.radius * math32.Sin(cc.elevation),
		cc.radius * cosElev * math32.Cos(cc.azimuth),
	})
}

// localAxes derives the right, up, and forward unit vectors consistent with
// the view matrix. Zero vectors come back if position and target coincide.
// The caller holds the lock.
func (cc *orbitController) localAxes() (right, up, forward mgl32.Vec3) {
	backward := cc.position.Sub(cc.target)
	if backward.Len() < 1e-8 {
		return
	}
	backward = backward.Normalize()

	right = mgl32.Vec3{0, 1, 0}.Cross(backward)
	if right.Len() < 1e-8 {
		return
	}
	right = right.Normalize()

	up = backward.Cross(right)
	forward = backward.Mul(-1)
	return right, up, forward
}

func (cc *orbitController) Position() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position
}

func (cc *orbitController) Target() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target
}

func (cc *orbitController) SetTarget(target mgl32.Vec3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = target
	cc.updatePosition()
}

func (cc *orbitController) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *orbitController) SetRadius(radius float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius = mgl32.Clamp(radius, cc.minRadius, cc.maxRadius)
	cc.updatePosition()
}

func (cc *orbitController) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *orbitController) SetAzimuth(azimuth float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth = azimuth
	cc.updatePosition()
}

func (cc *orbitController) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation
}

func (cc *orbitController) SetElevation(elevation float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevation = mgl32.Clamp(elevation, cc.minElevation, cc.maxElevation)
	cc.updatePosition()
}

func (cc *orbitController) MouseSensitivity() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.mouseSensitivity
}

func (cc *orbitController) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius = mgl32.Clamp(cc.radius-delta*cc.zoomSpeed, cc.minRadius, cc.maxRadius)
	cc.updatePosition()
}

func (cc *orbitController) PanForward(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	_, _, forward := cc.localAxes()
	cc.pan(forward.Mul(delta * cc.panSpeed))
}

func (cc *orbitController) PanRight(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	right, _, _ := cc.localAxes()
	cc.pan(right.Mul(delta * cc.panSpeed))
}

func (cc *orbitController) PanUp(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	_, up, _ := cc.localAxes()
	cc.pan(up.Mul(delta * cc.panSpeed))
}

// pan translates position and target together; the caller holds the lock.
func (cc *orbitController) pan(offset mgl32.Vec3) {
	cc.target = cc.target.Add(offset)
	cc.position = cc.position.Add(offset)
}
