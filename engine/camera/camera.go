// Package camera derives view and projection matrices from perspective
// settings and an attached positional controller. The orbit controller
// tracks spherical coordinates around a target point, which suits demo and
// editor style navigation.
package camera

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/prism3d/prism-go/common"
)

type cameraImpl struct {
	mu sync.Mutex

	up mgl32.Vec3

	fov    float32
	aspect float32
	near   float32
	far    float32

	view     mgl32.Mat4
	proj     mgl32.Mat4
	viewProj mgl32.Mat4

	controller Controller
}

// Camera holds perspective settings and computes view/projection matrices
// from the attached Controller each frame via Update. Matrix getters return
// the values of the last Update, so callers decide when recomputation
// happens. Thread-safe.
type Camera interface {
	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// SetFov sets the vertical field of view in radians.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// SetAspect sets the aspect ratio (width / height). Non-positive values
	// are ignored, which covers minimized windows reporting a zero size.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// SetNear sets the near clipping plane distance.
	//
	// Parameters:
	//   - near: near plane distance
	SetNear(near float32)

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// SetFar sets the far clipping plane distance.
	//
	// Parameters:
	//   - far: far plane distance
	SetFar(far float32)

	// Up returns the camera's up vector.
	//
	// Returns:
	//   - mgl32.Vec3: the up vector
	Up() mgl32.Vec3

	// SetUp sets the camera's up vector.
	//
	// Parameters:
	//   - up: the up vector
	SetUp(up mgl32.Vec3)

	// Controller returns the attached positional controller.
	//
	// Returns:
	//   - Controller: the attached controller
	Controller() Controller

	// Update reads position and target from the controller and recomputes
	// the view, projection, and combined matrices. Call once per frame
	// before reading matrices.
	Update()

	// ViewMatrix returns the view matrix of the last Update.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the projection matrix of the last Update.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns the combined matrix of the last Update.
	//
	// Returns:
	//   - mgl32.Mat4: projection multiplied by view
	ViewProjectionMatrix() mgl32.Mat4

	// Frustum extracts the world-space frustum planes from the combined
	// matrix of the last Update, ready for sphere culling.
	//
	// Returns:
	//   - common.Frustum: the six frustum planes, normalized
	Frustum() common.Frustum
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera with the given options. Defaults to a 60 degree
// vertical field of view, 16:9 aspect, 0.1 near, 1000 far, and a fresh orbit
// controller. The matrices are seeded so the camera is usable before the
// first explicit Update.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the configured camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		up:         mgl32.Vec3{0, 1, 0},
		fov:        mgl32.DegToRad(60),
		aspect:     16.0 / 9.0,
		near:       0.1,
		far:        1000,
		controller: NewController(),
	}
	for _, opt := range options {
		opt(c)
	}
	c.update()
	return c
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) SetUp(up mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = up
}

func (c *cameraImpl) Controller() Controller {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.update()
}

// update recomputes the matrices; the caller holds the camera lock. The
// controller has its own lock and nothing acquires the two in the opposite
// order.
func (c *cameraImpl) update() {
	eye := c.controller.Position()
	target := c.controller.Target()
	c.view = mgl32.LookAtV(eye, target, c.up)
	c.proj = mgl32.Perspective(c.fov, c.aspect, c.near, c.far)
	c.viewProj = c.proj.Mul4(c.view)
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.proj
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProj
}

func (c *cameraImpl) Frustum() common.Frustum {
	c.mu.Lock()
	vp := c.viewProj
	c.mu.Unlock()
	return common.ExtractFrustumFromMatrix(vp[:])
}
