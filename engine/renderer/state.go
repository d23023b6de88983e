package renderer

// BlendMode selects how fragment output combines with the framebuffer.
type BlendMode int

const (
	// BlendOff disables blending; fragment output overwrites the target.
	BlendOff BlendMode = iota

	// BlendAdditive adds fragment color to the target (One, One).
	BlendAdditive

	// BlendPremultAlpha blends colors that already carry premultiplied
	// alpha (One, OneMinusSrcAlpha).
	BlendPremultAlpha

	// BlendAlphaAdditive adds alpha-scaled fragment color (SrcAlpha, One).
	BlendAlphaAdditive

	// BlendColor blends by color (One, OneMinusSrcColor).
	BlendColor

	// BlendAlpha is conventional transparency
	// (SrcAlpha, OneMinusSrcAlpha).
	BlendAlpha

	// BlendAlphaSumA blends color by alpha while accumulating alpha
	// coverage (SrcAlpha, OneMinusSrcAlpha, One, One).
	BlendAlphaSumA

	// BlendModulate multiplies fragment and target color (DstColor, Zero).
	BlendModulate

	// BlendModulateX2 multiplies then doubles (DstColor, SrcColor).
	BlendModulateX2

	// BlendScreen brightens like a projected image
	// (One, OneMinusSrcColor).
	BlendScreen

	// BlendExclusion is the photographic exclusion composite
	// (OneMinusDstColor, OneMinusSrcColor).
	BlendExclusion

	// BlendCustom uses the render state's explicit blend factors and
	// equations. Unlike the named modes, custom parameters are re-examined
	// on every apply because they may vary continuously.
	BlendCustom
)

// BlendEquation selects the operator combining scaled source and
// destination color.
type BlendEquation int

const (
	// BlendEqAdd computes src + dst. Required by all named blend modes.
	BlendEqAdd BlendEquation = iota

	// BlendEqSubtract computes src - dst.
	BlendEqSubtract

	// BlendEqReverseSubtract computes dst - src.
	BlendEqReverseSubtract

	// BlendEqMin keeps the componentwise minimum.
	BlendEqMin

	// BlendEqMax keeps the componentwise maximum.
	BlendEqMax
)

// BlendEquationAlpha selects the operator for the alpha channel, or
// inherits the color equation.
type BlendEquationAlpha int

const (
	// BlendEqAlphaInheritColor reuses the color equation for alpha.
	BlendEqAlphaInheritColor BlendEquationAlpha = iota

	// BlendEqAlphaAdd computes srcA + dstA.
	BlendEqAlphaAdd

	// BlendEqAlphaSubtract computes srcA - dstA.
	BlendEqAlphaSubtract

	// BlendEqAlphaReverseSubtract computes dstA - srcA.
	BlendEqAlphaReverseSubtract

	// BlendEqAlphaMin keeps the minimum alpha.
	BlendEqAlphaMin

	// BlendEqAlphaMax keeps the maximum alpha.
	BlendEqAlphaMax
)

// BlendFunc is one scaling factor of the blend function.
type BlendFunc int

const (
	// BlendFuncZero scales by 0.
	BlendFuncZero BlendFunc = iota

	// BlendFuncOne scales by 1.
	BlendFuncOne

	// BlendFuncSrcColor scales by the source color.
	BlendFuncSrcColor

	// BlendFuncOneMinusSrcColor scales by 1 - source color.
	BlendFuncOneMinusSrcColor

	// BlendFuncDstColor scales by the destination color.
	BlendFuncDstColor

	// BlendFuncOneMinusDstColor scales by 1 - destination color.
	BlendFuncOneMinusDstColor

	// BlendFuncSrcAlpha scales by the source alpha.
	BlendFuncSrcAlpha

	// BlendFuncOneMinusSrcAlpha scales by 1 - source alpha.
	BlendFuncOneMinusSrcAlpha

	// BlendFuncDstAlpha scales by the destination alpha.
	BlendFuncDstAlpha

	// BlendFuncOneMinusDstAlpha scales by 1 - destination alpha.
	BlendFuncOneMinusDstAlpha

	// BlendFuncSrcAlphaSaturate scales by min(srcA, 1-dstA); source factor
	// only.
	BlendFuncSrcAlphaSaturate
)

// FaceCullMode selects which triangle winding is discarded.
type FaceCullMode int

const (
	// CullOff renders both faces.
	CullOff FaceCullMode = iota

	// CullFront discards front faces.
	CullFront

	// CullBack discards back faces.
	CullBack

	// CullFrontAndBack discards all triangles, leaving points and lines.
	CullFrontAndBack
)

// TestFunction is a comparison used by depth and stencil tests.
type TestFunction int

const (
	// TestNever always fails.
	TestNever TestFunction = iota

	// TestAlways always passes.
	TestAlways

	// TestEqual passes when the values are equal.
	TestEqual

	// TestNotEqual passes when the values differ.
	TestNotEqual

	// TestLess passes when the incoming value is smaller.
	TestLess

	// TestLessOrEqual passes when the incoming value is not larger.
	TestLessOrEqual

	// TestGreater passes when the incoming value is larger.
	TestGreater

	// TestGreaterOrEqual passes when the incoming value is not smaller.
	TestGreaterOrEqual
)

// StencilOperation mutates the stencil value when its trigger fires.
type StencilOperation int

const (
	// StencilKeep leaves the stencil value unchanged.
	StencilKeep StencilOperation = iota

	// StencilZero clears the stencil value.
	StencilZero

	// StencilReplace writes the reference value.
	StencilReplace

	// StencilIncrement increments, clamping at the maximum.
	StencilIncrement

	// StencilIncrementWrap increments, wrapping to zero.
	StencilIncrementWrap

	// StencilDecrement decrements, clamping at zero.
	StencilDecrement

	// StencilDecrementWrap decrements, wrapping to the maximum.
	StencilDecrementWrap

	// StencilInvert bitwise-inverts the stencil value.
	StencilInvert
)

// RenderState is the caller-specified target pipeline configuration for the
// next draw. It is a plain value: the backend diffs it against its shadow
// state and emits only the driver calls for fields that changed.
type RenderState struct {
	// Wireframe renders polygons as outlines. Desktop profiles only;
	// embedded profiles silently ignore it.
	Wireframe bool

	// DepthTest enables the depth buffer comparison.
	DepthTest bool

	// DepthWrite enables writing passing fragments to the depth buffer.
	DepthWrite bool

	// DepthFunc is the depth comparison, examined only while DepthTest is
	// enabled.
	DepthFunc TestFunction

	// ColorWrite enables writing to all color channels.
	ColorWrite bool

	// PolyOffset enables depth offsetting of filled polygons.
	PolyOffset bool

	// PolyOffsetFactor scales the maximum depth slope of the polygon.
	PolyOffsetFactor float32

	// PolyOffsetUnits scales the minimum resolvable depth difference.
	PolyOffsetUnits float32

	// CullMode selects which faces are discarded.
	CullMode FaceCullMode

	// BlendMode selects the framebuffer blending configuration.
	BlendMode BlendMode

	// BlendEquation is the color operator for BlendCustom.
	BlendEquation BlendEquation

	// BlendEquationAlpha is the alpha operator for BlendCustom.
	BlendEquationAlpha BlendEquationAlpha

	// SrcFactorRGB is the custom source color factor.
	SrcFactorRGB BlendFunc

	// DstFactorRGB is the custom destination color factor.
	DstFactorRGB BlendFunc

	// SrcFactorAlpha is the custom source alpha factor.
	SrcFactorAlpha BlendFunc

	// DstFactorAlpha is the custom destination alpha factor.
	DstFactorAlpha BlendFunc

	// StencilTest enables the stencil test. Changing any stencil field
	// reconfigures the full front/back stencil bundle at once.
	StencilTest bool

	// FrontStencilStencilFail fires when the front-face stencil test fails.
	FrontStencilStencilFail StencilOperation

	// FrontStencilDepthFail fires when the front-face depth test fails.
	FrontStencilDepthFail StencilOperation

	// FrontStencilDepthPass fires when the front-face depth test passes.
	FrontStencilDepthPass StencilOperation

	// BackStencilStencilFail fires when the back-face stencil test fails.
	BackStencilStencilFail StencilOperation

	// BackStencilDepthFail fires when the back-face depth test fails.
	BackStencilDepthFail StencilOperation

	// BackStencilDepthPass fires when the back-face depth test passes.
	BackStencilDepthPass StencilOperation

	// FrontStencilFunc is the front-face stencil comparison.
	FrontStencilFunc TestFunction

	// BackStencilFunc is the back-face stencil comparison.
	BackStencilFunc TestFunction

	// LineWidth is the rasterized width of lines, at least 1.
	LineWidth float32
}

// DefaultRenderState creates the conventional opaque-geometry state: depth
// test and write on with a less-or-equal comparison, back-face culling,
// blending off, color writes on.
//
// Returns:
//   - RenderState: the default state descriptor
func DefaultRenderState() RenderState {
	return RenderState{
		DepthTest:        true,
		DepthWrite:       true,
		DepthFunc:        TestLessOrEqual,
		ColorWrite:       true,
		CullMode:         CullBack,
		BlendMode:        BlendOff,
		SrcFactorRGB:     BlendFuncOne,
		DstFactorRGB:     BlendFuncZero,
		SrcFactorAlpha:   BlendFuncOne,
		DstFactorAlpha:   BlendFuncZero,
		FrontStencilFunc: TestAlways,
		BackStencilFunc:  TestAlways,
		LineWidth:        1,
	}
}
