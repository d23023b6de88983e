package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func testFrustum() Frustum {
	proj := mgl32.Perspective(mgl32.DegToRad(60), 16.0/9.0, 0.1, 100)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
	vp := proj.Mul4(view)
	return ExtractFrustumFromMatrix(vp[:])
}

func TestExtractFrustumFromMatrix(t *testing.T) {
	f := testFrustum()

	for i, p := range f.Planes {
		length := math.Sqrt(float64(
			p.Normal[0]*p.Normal[0] + p.Normal[1]*p.Normal[1] + p.Normal[2]*p.Normal[2],
		))
		assert.InDelta(t, 1.0, length, 1e-5, "plane %d normal length", i)
	}

	// The camera sits at z=5 looking down -z, so the near plane faces away
	// from the camera and the origin is on its positive side.
	origin := [3]float32{0, 0, 0}
	nearDist := f.Planes[FrustumNear].Normal[2]*origin[2] + f.Planes[FrustumNear].Distance
	assert.Greater(t, nearDist, float32(0))
}

func TestFrustumIntersectsSphere(t *testing.T) {
	f := testFrustum()

	assert.True(t, f.IntersectsSphere([3]float32{0, 0, 0}, 1))
	assert.True(t, f.IntersectsSphere([3]float32{0, 0, -50}, 1))

	// Behind the camera.
	assert.False(t, f.IntersectsSphere([3]float32{0, 0, 20}, 1))
	// Far outside the side planes.
	assert.False(t, f.IntersectsSphere([3]float32{-200, 0, 0}, 1))
	// Beyond the far plane.
	assert.False(t, f.IntersectsSphere([3]float32{0, 0, -200}, 1))

	// Between the camera and the near plane, but the radius reaches inside.
	assert.True(t, f.IntersectsSphere([3]float32{0, 0, 4.95}, 1))
	assert.False(t, f.IntersectsSphere([3]float32{0, 0, 4.95}, 0.01))
}
