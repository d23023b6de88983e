package opengl

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prism3d/prism-go/engine/renderer"
	"github.com/prism3d/prism-go/engine/resource"
	"github.com/prism3d/prism-go/engine/texture"
)

func TestInitializeCoreProfile(t *testing.T) {
	g := newFakeGL()
	r := NewRenderer(g).(*glRenderer)

	require.NoError(t, r.Initialize())
	assert.Equal(t, []string{
		fmt.Sprintf("PixelStorei(%d,1)", UNPACK_ALIGNMENT),
		fmt.Sprintf("Enable(%d)", TEXTURE_CUBE_MAP_SEAMLESS),
		"GenVertexArray()=1",
		"BindVertexArray(1)",
		fmt.Sprintf("Enable(%d)", VERTEX_PROGRAM_POINT_SIZE),
	}, g.calls, "core contexts need a vertex array object and skip point sprites")

	assert.EqualValues(t, 1, r.coreVAO)
	assert.Zero(t, r.defaultFBO)
}

func TestInitializeCompatibilityProfile(t *testing.T) {
	g := newFakeGL()
	g.integers[CONTEXT_PROFILE_MASK] = 0
	r := NewRenderer(g).(*glRenderer)

	require.NoError(t, r.Initialize())
	assert.Equal(t, []string{
		fmt.Sprintf("PixelStorei(%d,1)", UNPACK_ALIGNMENT),
		fmt.Sprintf("Enable(%d)", TEXTURE_CUBE_MAP_SEAMLESS),
		fmt.Sprintf("Enable(%d)", VERTEX_PROGRAM_POINT_SIZE),
		fmt.Sprintf("Enable(%d)", POINT_SPRITE),
	}, g.calls)
	assert.Zero(t, r.coreVAO)
}

func TestInitializeESContext(t *testing.T) {
	g := newFakeGL()
	g.strs[VERSION] = "OpenGL ES 2.0"
	g.strs[SHADING_LANGUAGE_VERSION] = "OpenGL ES GLSL ES 1.00"
	g.exts = nil
	r := NewRenderer(baselineOnly{g}).(*glRenderer)

	require.NoError(t, r.Initialize())
	assert.Equal(t, []string{
		fmt.Sprintf("PixelStorei(%d,1)", UNPACK_ALIGNMENT),
	}, g.calls, "a baseline context gets the pack alignment and nothing else")
}

func TestInitializeNonZeroDefaultFramebuffer(t *testing.T) {
	g := newFakeGL()
	g.integers[FRAMEBUFFER_BINDING] = 3
	r := NewRenderer(g).(*glRenderer)
	require.NoError(t, r.Initialize())
	assert.EqualValues(t, 3, r.defaultFBO, "the window system's framebuffer is the screen")

	fb := texture.NewFrameBuffer(16, 16, 1)
	fb.AddColorBuffer(texture.FormatRGBA8)
	require.NoError(t, r.SetFrameBuffer(fb))
	require.NoError(t, r.SetFrameBuffer(nil))
	assert.Equal(t, fmt.Sprintf("BindFramebuffer(%d,3)", FRAMEBUFFER), g.last("BindFramebuffer("),
		"unbinding restores the window framebuffer, not object zero")
}

func TestInvalidateState(t *testing.T) {
	r, g := newTestRenderer(t)
	img := rgbaImage(2, 2)
	tex := texture.NewTexture2D(img)
	require.NoError(t, r.SetTexture(0, tex))

	g.reset()
	r.InvalidateState()
	assert.Empty(t, g.calls, "invalidation only forgets, it does not touch the driver")

	require.NoError(t, r.SetTexture(0, tex))
	assert.Equal(t, []string{
		fmt.Sprintf("BindTexture(%d,%d)", TEXTURE_2D, img.ID()),
	}, g.calls, "a forgotten binding re-emits, the uploaded data does not")
}

func TestDisposeDeletesAtFrameEnd(t *testing.T) {
	r, g := newTestRenderer(t)

	vb := positionBuffer(resource.UsageStatic, 4)
	require.NoError(t, r.UpdateBufferData(vb))
	img := rgbaImage(2, 2)
	require.NoError(t, r.SetTexture(0, texture.NewTexture2D(img)))
	g.reset()

	r.Dispose(vb)
	r.Dispose(img)
	assert.Empty(t, g.calls, "disposal waits for the frame boundary")

	bufID, texID := vb.ID(), img.ID()
	r.PostFrame()
	assert.Equal(t, []string{
		fmt.Sprintf("DeleteBuffer(%d)", bufID),
		fmt.Sprintf("DeleteTexture(%d)", texID),
	}, g.calls)
	assert.Zero(t, vb.ID())
	assert.Zero(t, img.ID())

	snap := r.Statistics().Snapshot()
	assert.EqualValues(t, 1, snap.Frames)
	assert.Equal(t, 0, snap.Buffers)
	assert.Equal(t, 0, snap.Textures)
	assert.Equal(t, int64(48), snap.Memory, "memory counts lifetime uploads, not alive bytes")

	g.reset()
	r.PostFrame()
	assert.Empty(t, g.calls, "the disposal queue drains once")
	assert.EqualValues(t, 2, r.Statistics().Snapshot().Frames)
}

func TestCleanupDeletesEverything(t *testing.T) {
	r, g := newTestRenderer(t)

	require.NoError(t, r.UpdateBufferData(positionBuffer(resource.UsageStatic, 4)))
	require.NoError(t, r.SetTexture(0, texture.NewTexture2D(rgbaImage(2, 2))))
	g.reset()

	r.Cleanup()
	assert.Equal(t, 1, g.count("DeleteBuffer("))
	assert.Equal(t, 1, g.count("DeleteTexture("))

	snap := r.Statistics().Snapshot()
	assert.Equal(t, 0, snap.Buffers)
	assert.Equal(t, 0, snap.Textures)
	assert.Equal(t, int64(0), snap.Memory)
}

func TestResetObjectsAfterContextLoss(t *testing.T) {
	r, g := newTestRenderer(t)

	vb := positionBuffer(resource.UsageStatic, 4)
	require.NoError(t, r.UpdateBufferData(vb))
	img := rgbaImage(2, 2)
	require.NoError(t, r.SetTexture(0, texture.NewTexture2D(img)))
	g.reset()

	r.ResetObjects()
	assert.Empty(t, g.calls, "the old object names died with the context")
	assert.Zero(t, vb.ID())
	assert.Zero(t, img.ID())
	assert.True(t, vb.UpdateNeeded())
	assert.True(t, img.UpdateNeeded())
	assert.Equal(t, int64(0), r.Statistics().Snapshot().Memory)

	require.NoError(t, r.UpdateBufferData(vb))
	assert.NotZero(t, vb.ID())
	assert.Equal(t, 1, g.count("GenBuffer("), "reset objects re-upload from their CPU copies")
}

func TestSetDefaultAnisotropicFilter(t *testing.T) {
	r, _ := newTestRenderer(t)

	err := r.SetDefaultAnisotropicFilter(0)
	require.ErrorIs(t, err, renderer.ErrIllegalArgument)
	assert.ErrorContains(t, err, "anisotropic filter level 0, must be at least 1")
	assert.Equal(t, 1, r.DefaultAnisotropicFilter())

	require.NoError(t, r.SetDefaultAnisotropicFilter(4))
	assert.Equal(t, 4, r.DefaultAnisotropicFilter())

	clamped, _ := newTestRenderer(t, WithDefaultAnisotropicFilter(0))
	assert.Equal(t, 1, clamped.DefaultAnisotropicFilter(), "the option clamps instead of failing")
}

func TestSetMainFrameBufferSrgb(t *testing.T) {
	r, g := newTestRenderer(t)

	r.SetMainFrameBufferSrgb(true)
	assert.Equal(t, []string{fmt.Sprintf("Enable(%d)", FRAMEBUFFER_SRGB)}, g.calls)

	g.reset()
	r.SetMainFrameBufferSrgb(false)
	assert.Equal(t, []string{fmt.Sprintf("Disable(%d)", FRAMEBUFFER_SRGB)}, g.calls)

	t.Run("without hardware support", func(t *testing.T) {
		g := newFakeGL()
		g.strs[VERSION] = "2.1"
		g.strs[SHADING_LANGUAGE_VERSION] = "1.20"
		g.exts = nil
		r := newTestRendererOn(t, gl2Only{g}, g)

		r.SetMainFrameBufferSrgb(true)
		r.SetMainFrameBufferSrgb(false)
		assert.Empty(t, g.calls)
	})
}
