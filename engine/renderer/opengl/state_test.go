package opengl

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prism3d/prism-go/common"
	"github.com/prism3d/prism-go/engine/renderer"
)

// passthroughState builds a descriptor that matches the shadow context right
// after a reset, so applying it emits nothing.
func passthroughState() *renderer.RenderState {
	return &renderer.RenderState{
		DepthWrite:       true,
		DepthFunc:        renderer.TestLess,
		ColorWrite:       true,
		FrontStencilFunc: renderer.TestAlways,
		BackStencilFunc:  renderer.TestAlways,
		LineWidth:        1,
	}
}

func TestApplyRenderStateMirrorsResetContext(t *testing.T) {
	r, g := newTestRenderer(t)

	require.NoError(t, r.ApplyRenderState(passthroughState()))
	assert.Empty(t, g.calls, "a descriptor equal to the shadow context must emit nothing")
}

func TestApplyDefaultRenderState(t *testing.T) {
	r, g := newTestRenderer(t)

	rs := renderer.DefaultRenderState()
	require.NoError(t, r.ApplyRenderState(&rs))
	assert.Equal(t, []string{
		fmt.Sprintf("Enable(%d)", DEPTH_TEST),
		fmt.Sprintf("DepthFunc(%d)", LEQUAL),
		fmt.Sprintf("Enable(%d)", CULL_FACE),
		fmt.Sprintf("CullFace(%d)", BACK),
	}, g.calls, "only the fields differing from the reset context may emit")

	g.reset()
	again := renderer.DefaultRenderState()
	require.NoError(t, r.ApplyRenderState(&again))
	assert.Empty(t, g.calls, "reapplying the same descriptor must emit nothing")
}

func TestApplyRenderStateSingleFieldDeltas(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(rs *renderer.RenderState)
		want   string
	}{
		{
			"depth write off",
			func(rs *renderer.RenderState) { rs.DepthWrite = false },
			"DepthMask(false)",
		},
		{
			"color write off",
			func(rs *renderer.RenderState) { rs.ColorWrite = false },
			"ColorMask(false,false,false,false)",
		},
		{
			"wireframe on",
			func(rs *renderer.RenderState) { rs.Wireframe = true },
			fmt.Sprintf("PolygonMode(%d,%d)", FRONT_AND_BACK, LINE),
		},
		{
			"cull off",
			func(rs *renderer.RenderState) { rs.CullMode = renderer.CullOff },
			fmt.Sprintf("Disable(%d)", CULL_FACE),
		},
		{
			"depth func",
			func(rs *renderer.RenderState) { rs.DepthFunc = renderer.TestGreater },
			fmt.Sprintf("DepthFunc(%d)", GREATER),
		},
		{
			"line width",
			func(rs *renderer.RenderState) { rs.LineWidth = 2.5 },
			"LineWidth(2.5)",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, g := newTestRenderer(t)
			base := renderer.DefaultRenderState()
			require.NoError(t, r.ApplyRenderState(&base))
			g.reset()

			rs := renderer.DefaultRenderState()
			tc.mutate(&rs)
			require.NoError(t, r.ApplyRenderState(&rs))
			assert.Equal(t, []string{tc.want}, g.calls, "one changed field must emit exactly one call")
		})
	}
}

func TestDepthFuncDeferredWhileTestingOff(t *testing.T) {
	r, g := newTestRenderer(t)

	rs := passthroughState()
	rs.DepthFunc = renderer.TestGreater
	require.NoError(t, r.ApplyRenderState(rs))
	assert.Empty(t, g.calls, "the depth function must not emit while testing is off")

	rs.DepthTest = true
	require.NoError(t, r.ApplyRenderState(rs))
	assert.Equal(t, []string{
		fmt.Sprintf("Enable(%d)", DEPTH_TEST),
		fmt.Sprintf("DepthFunc(%d)", GREATER),
	}, g.calls, "enabling the test must flush the pending function")
}

func TestWireframeNeedsPolygonModeSupport(t *testing.T) {
	g := newFakeGL()
	r := newTestRendererOn(t, baselineOnly{g}, g)

	rs := passthroughState()
	rs.Wireframe = true
	require.NoError(t, r.ApplyRenderState(rs))
	assert.Empty(t, g.calls, "wireframe must be ignored without the polygon mode entry point")
}

func TestBlendModeFactorsEmittedOncePerMode(t *testing.T) {
	r, g := newTestRenderer(t)

	rs := passthroughState()
	rs.BlendMode = renderer.BlendAlpha
	require.NoError(t, r.ApplyRenderState(rs))
	assert.Equal(t, []string{
		fmt.Sprintf("Enable(%d)", BLEND),
		fmt.Sprintf("BlendFunc(%d,%d)", SRC_ALPHA, ONE_MINUS_SRC_ALPHA),
	}, g.calls)

	g.reset()
	require.NoError(t, r.ApplyRenderState(rs))
	assert.Empty(t, g.calls, "the same named mode must not re-emit its factors")

	rs.BlendMode = renderer.BlendAdditive
	require.NoError(t, r.ApplyRenderState(rs))
	assert.Equal(t, []string{
		fmt.Sprintf("BlendFunc(%d,%d)", ONE, ONE),
	}, g.calls, "switching named modes re-emits factors but not the toggle")

	g.reset()
	rs.BlendMode = renderer.BlendOff
	require.NoError(t, r.ApplyRenderState(rs))
	assert.Equal(t, []string{
		fmt.Sprintf("Disable(%d)", BLEND),
	}, g.calls)
}

func TestBlendCustomReexaminesFactors(t *testing.T) {
	r, g := newTestRenderer(t)

	rs := passthroughState()
	rs.BlendMode = renderer.BlendCustom
	rs.SrcFactorRGB = renderer.BlendFuncSrcAlpha
	rs.DstFactorRGB = renderer.BlendFuncOneMinusSrcAlpha
	rs.SrcFactorAlpha = renderer.BlendFuncOne
	rs.DstFactorAlpha = renderer.BlendFuncOne

	require.NoError(t, r.ApplyRenderState(rs))
	assert.Equal(t, []string{
		fmt.Sprintf("Enable(%d)", BLEND),
		fmt.Sprintf("BlendFuncSeparate(%d,%d,%d,%d)", SRC_ALPHA, ONE_MINUS_SRC_ALPHA, ONE, ONE),
	}, g.calls)

	g.reset()
	require.NoError(t, r.ApplyRenderState(rs))
	assert.Empty(t, g.calls, "identical custom factors must not re-emit")

	rs.DstFactorRGB = renderer.BlendFuncOne
	require.NoError(t, r.ApplyRenderState(rs))
	assert.Equal(t, []string{
		fmt.Sprintf("BlendFuncSeparate(%d,%d,%d,%d)", SRC_ALPHA, ONE, ONE, ONE),
	}, g.calls, "changed custom factors must re-emit even though the mode is unchanged")
}

func TestBlendEquationEmission(t *testing.T) {
	r, g := newTestRenderer(t)

	rs := passthroughState()
	rs.BlendMode = renderer.BlendCustom
	rs.SrcFactorRGB = renderer.BlendFuncOne
	rs.DstFactorRGB = renderer.BlendFuncOne
	rs.SrcFactorAlpha = renderer.BlendFuncOne
	rs.DstFactorAlpha = renderer.BlendFuncOne
	rs.BlendEquation = renderer.BlendEqMin
	rs.BlendEquationAlpha = renderer.BlendEqAlphaMax

	require.NoError(t, r.ApplyRenderState(rs))
	assert.Equal(t, 1, g.count("BlendEquationSeparate("))
	assert.Equal(t, fmt.Sprintf("BlendEquationSeparate(%d,%d)", MIN, MAX),
		g.last("BlendEquationSeparate("))

	g.reset()
	rs.BlendEquationAlpha = renderer.BlendEqAlphaInheritColor
	require.NoError(t, r.ApplyRenderState(rs))
	assert.Equal(t, []string{
		fmt.Sprintf("BlendEquationSeparate(%d,%d)", MIN, MIN),
	}, g.calls, "inherit must resolve the alpha equation to the color one")
}

func TestStencilBundleEmission(t *testing.T) {
	r, g := newTestRenderer(t)

	rs := passthroughState()
	rs.StencilTest = true
	rs.FrontStencilDepthPass = renderer.StencilReplace
	rs.FrontStencilFunc = renderer.TestEqual

	require.NoError(t, r.ApplyRenderState(rs))
	assert.Equal(t, []string{
		fmt.Sprintf("Enable(%d)", STENCIL_TEST),
		fmt.Sprintf("StencilOpSeparate(%d,%d,%d,%d)", FRONT, KEEP, KEEP, REPLACE),
		fmt.Sprintf("StencilOpSeparate(%d,%d,%d,%d)", BACK, KEEP, KEEP, KEEP),
		fmt.Sprintf("StencilFuncSeparate(%d,%d,0,%d)", FRONT, EQUAL, uint32(0xFFFFFFFF)),
		fmt.Sprintf("StencilFuncSeparate(%d,%d,0,%d)", BACK, ALWAYS, uint32(0xFFFFFFFF)),
	}, g.calls, "any stencil change re-emits the whole bundle")

	g.reset()
	require.NoError(t, r.ApplyRenderState(rs))
	assert.Empty(t, g.calls)

	rs.StencilTest = false
	require.NoError(t, r.ApplyRenderState(rs))
	assert.Equal(t, []string{
		fmt.Sprintf("Disable(%d)", STENCIL_TEST),
	}, g.calls)
}

func TestPolyOffsetTransitions(t *testing.T) {
	r, g := newTestRenderer(t)

	rs := passthroughState()
	rs.PolyOffset = true
	rs.PolyOffsetFactor = 1
	rs.PolyOffsetUnits = 2
	require.NoError(t, r.ApplyRenderState(rs))
	assert.Equal(t, []string{
		fmt.Sprintf("Enable(%d)", POLYGON_OFFSET_FILL),
		"PolygonOffset(1,2)",
	}, g.calls)

	g.reset()
	rs.PolyOffsetFactor = 3
	require.NoError(t, r.ApplyRenderState(rs))
	assert.Equal(t, []string{"PolygonOffset(3,2)"}, g.calls, "a factor change alone must not re-toggle")

	g.reset()
	rs.PolyOffset = false
	require.NoError(t, r.ApplyRenderState(rs))
	assert.Equal(t, []string{
		fmt.Sprintf("Disable(%d)", POLYGON_OFFSET_FILL),
	}, g.calls)
}

func TestShadowMatchesAppliedState(t *testing.T) {
	r, g := newTestRenderer(t)

	rs := renderer.DefaultRenderState()
	rs.Wireframe = true
	rs.DepthFunc = renderer.TestGreaterOrEqual
	rs.DepthWrite = false
	rs.PolyOffset = true
	rs.PolyOffsetFactor = 0.5
	rs.PolyOffsetUnits = 1.5
	rs.CullMode = renderer.CullFront
	rs.BlendMode = renderer.BlendCustom
	rs.SrcFactorRGB = renderer.BlendFuncDstColor
	rs.DstFactorRGB = renderer.BlendFuncZero
	rs.SrcFactorAlpha = renderer.BlendFuncOne
	rs.DstFactorAlpha = renderer.BlendFuncOneMinusSrcAlpha
	rs.BlendEquation = renderer.BlendEqSubtract
	rs.BlendEquationAlpha = renderer.BlendEqAlphaAdd
	rs.StencilTest = true
	rs.BackStencilDepthFail = renderer.StencilInvert
	rs.LineWidth = 4

	require.NoError(t, r.ApplyRenderState(&rs))

	ctx := r.ctx
	assert.Equal(t, rs.Wireframe, ctx.wireframe)
	assert.Equal(t, rs.DepthTest, ctx.depthTest)
	assert.Equal(t, rs.DepthFunc, ctx.depthFunc)
	assert.Equal(t, rs.DepthWrite, ctx.depthWrite)
	assert.Equal(t, rs.ColorWrite, ctx.colorWrite)
	assert.Equal(t, rs.PolyOffset, ctx.polyOffsetEnabled)
	assert.Equal(t, rs.PolyOffsetFactor, ctx.polyOffsetFactor)
	assert.Equal(t, rs.PolyOffsetUnits, ctx.polyOffsetUnits)
	assert.Equal(t, rs.CullMode, ctx.cullMode)
	assert.Equal(t, rs.BlendMode, ctx.blendMode)
	assert.Equal(t, rs.SrcFactorRGB, ctx.srcFactorRGB)
	assert.Equal(t, rs.DstFactorRGB, ctx.dstFactorRGB)
	assert.Equal(t, rs.SrcFactorAlpha, ctx.srcFactorAlpha)
	assert.Equal(t, rs.DstFactorAlpha, ctx.dstFactorAlpha)
	assert.Equal(t, rs.BlendEquation, ctx.blendEquation)
	assert.Equal(t, rs.BlendEquationAlpha, ctx.blendEquationAlpha)
	assert.Equal(t, rs.StencilTest, ctx.stencilTest)
	assert.Equal(t, rs.BackStencilDepthFail, ctx.backStencilDepthFail)
	assert.Equal(t, rs.LineWidth, ctx.lineWidth)

	g.reset()
	require.NoError(t, r.ApplyRenderState(&rs))
	assert.Empty(t, g.calls, "the shadow copy must capture every applied field")
}

func TestApplyRenderStateRejectsUnknownEnums(t *testing.T) {
	r, _ := newTestRenderer(t)

	rs := passthroughState()
	rs.BlendMode = renderer.BlendMode(99)
	assert.ErrorIs(t, r.ApplyRenderState(rs), renderer.ErrUnsupportedOperation)

	rs = passthroughState()
	rs.CullMode = renderer.FaceCullMode(99)
	assert.ErrorIs(t, r.ApplyRenderState(rs), renderer.ErrUnsupportedOperation)

	rs = passthroughState()
	rs.DepthTest = true
	rs.DepthFunc = renderer.TestFunction(99)
	assert.ErrorIs(t, r.ApplyRenderState(rs), renderer.ErrUnsupportedOperation)
}

func TestViewportAndClipRect(t *testing.T) {
	r, g := newTestRenderer(t)

	r.SetViewport(0, 0, 800, 600)
	r.SetViewport(0, 0, 800, 600)
	assert.Equal(t, []string{"Viewport(0,0,800,600)"}, g.calls, "an unchanged viewport must not re-emit")

	g.reset()
	r.SetClipRect(10, 20, 100, 50)
	assert.Equal(t, []string{
		fmt.Sprintf("Enable(%d)", SCISSOR_TEST),
		"Scissor(10,20,100,50)",
	}, g.calls)

	g.reset()
	r.SetClipRect(10, 20, 100, 50)
	assert.Empty(t, g.calls)

	r.SetClipRect(10, 20, 200, 50)
	assert.Equal(t, []string{"Scissor(10,20,200,50)"}, g.calls, "a moved rect re-emits only the scissor box")

	g.reset()
	r.ClearClipRect()
	assert.Equal(t, []string{fmt.Sprintf("Disable(%d)", SCISSOR_TEST)}, g.calls)

	g.reset()
	r.ClearClipRect()
	assert.Empty(t, g.calls, "clearing an inactive clip rect must be a no-op")
}

func TestClearBuffersForcesWriteMasks(t *testing.T) {
	r, g := newTestRenderer(t)

	rs := passthroughState()
	rs.DepthWrite = false
	rs.ColorWrite = false
	require.NoError(t, r.ApplyRenderState(rs))
	g.reset()

	r.ClearBuffers(true, true, true)
	assert.Equal(t, []string{
		"ColorMask(true,true,true,true)",
		"DepthMask(true)",
		fmt.Sprintf("Clear(%d)", COLOR_BUFFER_BIT|DEPTH_BUFFER_BIT|STENCIL_BUFFER_BIT),
	}, g.calls, "clears must push the write masks open first")
	assert.True(t, r.ctx.colorWrite)
	assert.True(t, r.ctx.depthWrite)

	g.reset()
	r.ClearBuffers(false, false, false)
	assert.Empty(t, g.calls)
}

func TestSetBackgroundColor(t *testing.T) {
	r, g := newTestRenderer(t)

	r.SetBackgroundColor(common.Color{R: 0.25, G: 0.5, B: 0.75, A: 1})
	r.SetBackgroundColor(common.Color{R: 0.25, G: 0.5, B: 0.75, A: 1})
	assert.Equal(t, []string{"ClearColor(0.25,0.5,0.75,1)"}, g.calls)
}

func TestDepthRangeAndAlphaToCoverage(t *testing.T) {
	r, g := newTestRenderer(t)

	r.SetDepthRange(0.1, 0.9)
	r.SetDepthRange(0.1, 0.9)
	assert.Equal(t, 2, g.count("DepthRange("), "the depth range is not shadowed")

	g.reset()
	r.SetAlphaToCoverage(true)
	r.SetAlphaToCoverage(false)
	assert.Equal(t, []string{
		fmt.Sprintf("Enable(%d)", SAMPLE_ALPHA_TO_COVERAGE),
		fmt.Sprintf("Disable(%d)", SAMPLE_ALPHA_TO_COVERAGE),
	}, g.calls)
}
