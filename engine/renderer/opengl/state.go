package opengl

import (
	"fmt"

	"github.com/prism3d/prism-go/common"
	"github.com/prism3d/prism-go/engine/renderer"
)

// Engine enum to GL constant tables. The enums are dense from zero, so a
// bounds check is the whole validity test; holes do not exist.

var testFuncValues = [...]uint32{
	renderer.TestNever:          NEVER,
	renderer.TestAlways:         ALWAYS,
	renderer.TestEqual:          EQUAL,
	renderer.TestNotEqual:       NOTEQUAL,
	renderer.TestLess:           LESS,
	renderer.TestLessOrEqual:    LEQUAL,
	renderer.TestGreater:        GREATER,
	renderer.TestGreaterOrEqual: GEQUAL,
}

func convertTestFunction(fn renderer.TestFunction) (uint32, error) {
	if fn >= 0 && int(fn) < len(testFuncValues) {
		return testFuncValues[fn], nil
	}
	return 0, fmt.Errorf("%w: unrecognized test function %d", renderer.ErrUnsupportedOperation, fn)
}

var stencilOpValues = [...]uint32{
	renderer.StencilKeep:          KEEP,
	renderer.StencilZero:          ZERO,
	renderer.StencilReplace:       REPLACE,
	renderer.StencilIncrement:     INCR,
	renderer.StencilIncrementWrap: INCR_WRAP,
	renderer.StencilDecrement:     DECR,
	renderer.StencilDecrementWrap: DECR_WRAP,
	renderer.StencilInvert:        INVERT,
}

func convertStencilOperation(op renderer.StencilOperation) (uint32, error) {
	if op >= 0 && int(op) < len(stencilOpValues) {
		return stencilOpValues[op], nil
	}
	return 0, fmt.Errorf("%w: unrecognized stencil operation %d", renderer.ErrUnsupportedOperation, op)
}

var blendFuncValues = [...]uint32{
	renderer.BlendFuncZero:             ZERO,
	renderer.BlendFuncOne:              ONE,
	renderer.BlendFuncSrcColor:         SRC_COLOR,
	renderer.BlendFuncOneMinusSrcColor: ONE_MINUS_SRC_COLOR,
	renderer.BlendFuncDstColor:         DST_COLOR,
	renderer.BlendFuncOneMinusDstColor: ONE_MINUS_DST_COLOR,
	renderer.BlendFuncSrcAlpha:         SRC_ALPHA,
	renderer.BlendFuncOneMinusSrcAlpha: ONE_MINUS_SRC_ALPHA,
	renderer.BlendFuncDstAlpha:         DST_ALPHA,
	renderer.BlendFuncOneMinusDstAlpha: ONE_MINUS_DST_ALPHA,
	renderer.BlendFuncSrcAlphaSaturate: SRC_ALPHA_SATURATE,
}

func convertBlendFunc(f renderer.BlendFunc) (uint32, error) {
	if f >= 0 && int(f) < len(blendFuncValues) {
		return blendFuncValues[f], nil
	}
	return 0, fmt.Errorf("%w: unrecognized blend factor %d", renderer.ErrUnsupportedOperation, f)
}

var blendEqValues = [...]uint32{
	renderer.BlendEqAdd:             FUNC_ADD,
	renderer.BlendEqSubtract:        FUNC_SUBTRACT,
	renderer.BlendEqReverseSubtract: FUNC_REVERSE_SUBTRACT,
	renderer.BlendEqMin:             MIN,
	renderer.BlendEqMax:             MAX,
}

func convertBlendEquation(eq renderer.BlendEquation) (uint32, error) {
	if eq >= 0 && int(eq) < len(blendEqValues) {
		return blendEqValues[eq], nil
	}
	return 0, fmt.Errorf("%w: unrecognized blend equation %d", renderer.ErrUnsupportedOperation, eq)
}

var blendEqAlphaValues = [...]uint32{
	renderer.BlendEqAlphaInheritColor:    0, // resolved to the color equation
	renderer.BlendEqAlphaAdd:             FUNC_ADD,
	renderer.BlendEqAlphaSubtract:        FUNC_SUBTRACT,
	renderer.BlendEqAlphaReverseSubtract: FUNC_REVERSE_SUBTRACT,
	renderer.BlendEqAlphaMin:             MIN,
	renderer.BlendEqAlphaMax:             MAX,
}

func convertBlendEquationAlpha(eq renderer.BlendEquationAlpha) (uint32, error) {
	if eq > renderer.BlendEqAlphaInheritColor && int(eq) < len(blendEqAlphaValues) {
		return blendEqAlphaValues[eq], nil
	}
	return 0, fmt.Errorf("%w: unrecognized alpha blend equation %d", renderer.ErrUnsupportedOperation, eq)
}

var cullFaceValues = [...]uint32{
	renderer.CullOff:          0, // handled before conversion
	renderer.CullFront:        FRONT,
	renderer.CullBack:         BACK,
	renderer.CullFrontAndBack: FRONT_AND_BACK,
}

func convertCullMode(mode renderer.FaceCullMode) (uint32, error) {
	if mode > renderer.CullOff && int(mode) < len(cullFaceValues) {
		return cullFaceValues[mode], nil
	}
	return 0, fmt.Errorf("%w: unrecognized face cull mode %d", renderer.ErrUnsupportedOperation, mode)
}

func (r *glRenderer) ApplyRenderState(rs *renderer.RenderState) error {
	ctx := r.ctx

	if r.gl2 != nil && rs.Wireframe != ctx.wireframe {
		if rs.Wireframe {
			r.gl2.PolygonMode(FRONT_AND_BACK, LINE)
		} else {
			r.gl2.PolygonMode(FRONT_AND_BACK, FILL)
		}
		ctx.wireframe = rs.Wireframe
	}

	if rs.DepthTest != ctx.depthTest {
		if rs.DepthTest {
			r.gl.Enable(DEPTH_TEST)
		} else {
			r.gl.Disable(DEPTH_TEST)
		}
		ctx.depthTest = rs.DepthTest
	}
	// The depth function only matters while testing is on; deferring the
	// comparison until then avoids emitting for state objects that toggle
	// the test off.
	if rs.DepthTest && rs.DepthFunc != ctx.depthFunc {
		fn, err := convertTestFunction(rs.DepthFunc)
		if err != nil {
			return err
		}
		r.gl.DepthFunc(fn)
		ctx.depthFunc = rs.DepthFunc
	}

	if rs.DepthWrite != ctx.depthWrite {
		r.gl.DepthMask(rs.DepthWrite)
		ctx.depthWrite = rs.DepthWrite
	}

	if rs.ColorWrite != ctx.colorWrite {
		r.gl.ColorMask(rs.ColorWrite, rs.ColorWrite, rs.ColorWrite, rs.ColorWrite)
		ctx.colorWrite = rs.ColorWrite
	}

	if rs.PolyOffset {
		if !ctx.polyOffsetEnabled {
			r.gl.Enable(POLYGON_OFFSET_FILL)
			r.gl.PolygonOffset(rs.PolyOffsetFactor, rs.PolyOffsetUnits)
			ctx.polyOffsetEnabled = true
			ctx.polyOffsetFactor = rs.PolyOffsetFactor
			ctx.polyOffsetUnits = rs.PolyOffsetUnits
		} else if rs.PolyOffsetFactor != ctx.polyOffsetFactor || rs.PolyOffsetUnits != ctx.polyOffsetUnits {
			r.gl.PolygonOffset(rs.PolyOffsetFactor, rs.PolyOffsetUnits)
			ctx.polyOffsetFactor = rs.PolyOffsetFactor
			ctx.polyOffsetUnits = rs.PolyOffsetUnits
		}
	} else if ctx.polyOffsetEnabled {
		r.gl.Disable(POLYGON_OFFSET_FILL)
		ctx.polyOffsetEnabled = false
		ctx.polyOffsetFactor = 0
		ctx.polyOffsetUnits = 0
	}

	if rs.CullMode != ctx.cullMode {
		if rs.CullMode == renderer.CullOff {
			r.gl.Disable(CULL_FACE)
		} else {
			face, err := convertCullMode(rs.CullMode)
			if err != nil {
				return err
			}
			r.gl.Enable(CULL_FACE)
			r.gl.CullFace(face)
		}
		ctx.cullMode = rs.CullMode
	}

	if rs.BlendMode == renderer.BlendCustom {
		// Custom factors bypass the mode diff: the mode value alone no
		// longer identifies the blend configuration.
		r.changeBlendMode(renderer.BlendCustom)
		if err := r.blendFuncSeparate(rs.SrcFactorRGB, rs.DstFactorRGB, rs.SrcFactorAlpha, rs.DstFactorAlpha); err != nil {
			return err
		}
		if err := r.blendEquationSeparate(rs.BlendEquation, rs.BlendEquationAlpha); err != nil {
			return err
		}
	} else if rs.BlendMode != ctx.blendMode {
		r.changeBlendMode(rs.BlendMode)

		var err error
		switch rs.BlendMode {
		case renderer.BlendOff:
		case renderer.BlendAdditive:
			err = r.blendFunc(renderer.BlendFuncOne, renderer.BlendFuncOne)
		case renderer.BlendAlphaAdditive:
			err = r.blendFunc(renderer.BlendFuncSrcAlpha, renderer.BlendFuncOne)
		case renderer.BlendAlpha:
			err = r.blendFunc(renderer.BlendFuncSrcAlpha, renderer.BlendFuncOneMinusSrcAlpha)
		case renderer.BlendAlphaSumA:
			err = r.blendFuncSeparate(
				renderer.BlendFuncSrcAlpha, renderer.BlendFuncOneMinusSrcAlpha,
				renderer.BlendFuncOne, renderer.BlendFuncOne)
		case renderer.BlendPremultAlpha:
			err = r.blendFunc(renderer.BlendFuncOne, renderer.BlendFuncOneMinusSrcAlpha)
		case renderer.BlendModulate:
			err = r.blendFunc(renderer.BlendFuncDstColor, renderer.BlendFuncZero)
		case renderer.BlendModulateX2:
			err = r.blendFunc(renderer.BlendFuncDstColor, renderer.BlendFuncSrcColor)
		case renderer.BlendColor, renderer.BlendScreen:
			err = r.blendFunc(renderer.BlendFuncOne, renderer.BlendFuncOneMinusSrcColor)
		case renderer.BlendExclusion:
			err = r.blendFunc(renderer.BlendFuncOneMinusDstColor, renderer.BlendFuncOneMinusSrcColor)
		default:
			return fmt.Errorf("%w: unrecognized blend mode %d", renderer.ErrUnsupportedOperation, rs.BlendMode)
		}
		if err != nil {
			return err
		}

		// The named modes all blend with the add equation.
		if err := r.blendEquationSeparate(renderer.BlendEqAdd, renderer.BlendEqAlphaInheritColor); err != nil {
			return err
		}
	}

	if ctx.stencilTest != rs.StencilTest ||
		ctx.frontStencilStencilFail != rs.FrontStencilStencilFail ||
		ctx.frontStencilDepthFail != rs.FrontStencilDepthFail ||
		ctx.frontStencilDepthPass != rs.FrontStencilDepthPass ||
		ctx.backStencilStencilFail != rs.BackStencilStencilFail ||
		ctx.backStencilDepthFail != rs.BackStencilDepthFail ||
		ctx.backStencilDepthPass != rs.BackStencilDepthPass ||
		ctx.frontStencilFunc != rs.FrontStencilFunc ||
		ctx.backStencilFunc != rs.BackStencilFunc {

		ctx.stencilTest = rs.StencilTest
		ctx.frontStencilStencilFail = rs.FrontStencilStencilFail
		ctx.frontStencilDepthFail = rs.FrontStencilDepthFail
		ctx.frontStencilDepthPass = rs.FrontStencilDepthPass
		ctx.backStencilStencilFail = rs.BackStencilStencilFail
		ctx.backStencilDepthFail = rs.BackStencilDepthFail
		ctx.backStencilDepthPass = rs.BackStencilDepthPass
		ctx.frontStencilFunc = rs.FrontStencilFunc
		ctx.backStencilFunc = rs.BackStencilFunc

		if rs.StencilTest {
			frontSfail, err := convertStencilOperation(rs.FrontStencilStencilFail)
			if err != nil {
				return err
			}
			frontDfail, err := convertStencilOperation(rs.FrontStencilDepthFail)
			if err != nil {
				return err
			}
			frontDpass, err := convertStencilOperation(rs.FrontStencilDepthPass)
			if err != nil {
				return err
			}
			backSfail, err := convertStencilOperation(rs.BackStencilStencilFail)
			if err != nil {
				return err
			}
			backDfail, err := convertStencilOperation(rs.BackStencilDepthFail)
			if err != nil {
				return err
			}
			backDpass, err := convertStencilOperation(rs.BackStencilDepthPass)
			if err != nil {
				return err
			}
			frontFunc, err := convertTestFunction(rs.FrontStencilFunc)
			if err != nil {
				return err
			}
			backFunc, err := convertTestFunction(rs.BackStencilFunc)
			if err != nil {
				return err
			}

			r.gl.Enable(STENCIL_TEST)
			r.gl.StencilOpSeparate(FRONT, frontSfail, frontDfail, frontDpass)
			r.gl.StencilOpSeparate(BACK, backSfail, backDfail, backDpass)
			r.gl.StencilFuncSeparate(FRONT, frontFunc, 0, 0xFFFFFFFF)
			r.gl.StencilFuncSeparate(BACK, backFunc, 0, 0xFFFFFFFF)
		} else {
			r.gl.Disable(STENCIL_TEST)
		}
	}

	if rs.LineWidth != ctx.lineWidth {
		r.gl.LineWidth(rs.LineWidth)
		ctx.lineWidth = rs.LineWidth
	}

	return nil
}

// changeBlendMode flips the BLEND toggle when crossing into or out of
// BlendOff and records the new mode.
func (r *glRenderer) changeBlendMode(mode renderer.BlendMode) {
	if mode == r.ctx.blendMode {
		return
	}
	if mode == renderer.BlendOff {
		r.gl.Disable(BLEND)
	} else if r.ctx.blendMode == renderer.BlendOff {
		r.gl.Enable(BLEND)
	}
	r.ctx.blendMode = mode
}

// blendEquationSeparate emits the equation pair when either differs from
// the shadow copy. InheritColor resolves to the converted color equation.
func (r *glRenderer) blendEquationSeparate(eq renderer.BlendEquation, eqAlpha renderer.BlendEquationAlpha) error {
	ctx := r.ctx
	if eq == ctx.blendEquation && eqAlpha == ctx.blendEquationAlpha {
		return nil
	}
	glEq, err := convertBlendEquation(eq)
	if err != nil {
		return err
	}
	glEqAlpha := glEq
	if eqAlpha != renderer.BlendEqAlphaInheritColor {
		glEqAlpha, err = convertBlendEquationAlpha(eqAlpha)
		if err != nil {
			return err
		}
	}
	r.gl.BlendEquationSeparate(glEq, glEqAlpha)
	ctx.blendEquation = eq
	ctx.blendEquationAlpha = eqAlpha
	return nil
}

// blendFunc emits the two-factor form, which assigns the same factors to
// color and alpha; the shadow copy tracks all four.
func (r *glRenderer) blendFunc(sfactor, dfactor renderer.BlendFunc) error {
	ctx := r.ctx
	if sfactor == ctx.srcFactorRGB && dfactor == ctx.dstFactorRGB &&
		sfactor == ctx.srcFactorAlpha && dfactor == ctx.dstFactorAlpha {
		return nil
	}
	src, err := convertBlendFunc(sfactor)
	if err != nil {
		return err
	}
	dst, err := convertBlendFunc(dfactor)
	if err != nil {
		return err
	}
	r.gl.BlendFunc(src, dst)
	ctx.srcFactorRGB = sfactor
	ctx.dstFactorRGB = dfactor
	ctx.srcFactorAlpha = sfactor
	ctx.dstFactorAlpha = dfactor
	return nil
}

func (r *glRenderer) blendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha renderer.BlendFunc) error {
	ctx := r.ctx
	if srcRGB == ctx.srcFactorRGB && dstRGB == ctx.dstFactorRGB &&
		srcAlpha == ctx.srcFactorAlpha && dstAlpha == ctx.dstFactorAlpha {
		return nil
	}
	glSrcRGB, err := convertBlendFunc(srcRGB)
	if err != nil {
		return err
	}
	glDstRGB, err := convertBlendFunc(dstRGB)
	if err != nil {
		return err
	}
	glSrcAlpha, err := convertBlendFunc(srcAlpha)
	if err != nil {
		return err
	}
	glDstAlpha, err := convertBlendFunc(dstAlpha)
	if err != nil {
		return err
	}
	r.gl.BlendFuncSeparate(glSrcRGB, glDstRGB, glSrcAlpha, glDstAlpha)
	ctx.srcFactorRGB = srcRGB
	ctx.dstFactorRGB = dstRGB
	ctx.srcFactorAlpha = srcAlpha
	ctx.dstFactorAlpha = dstAlpha
	return nil
}

func (r *glRenderer) SetViewport(x, y, width, height int) {
	ctx := r.ctx
	if x != ctx.viewX || y != ctx.viewY || width != ctx.viewWidth || height != ctx.viewHeight {
		r.gl.Viewport(int32(x), int32(y), int32(width), int32(height))
		ctx.viewX, ctx.viewY = x, y
		ctx.viewWidth, ctx.viewHeight = width, height
	}
}

func (r *glRenderer) SetClipRect(x, y, width, height int) {
	ctx := r.ctx
	if !ctx.clipRect {
		r.gl.Enable(SCISSOR_TEST)
		ctx.clipRect = true
	}
	if x != ctx.clipX || y != ctx.clipY || width != ctx.clipWidth || height != ctx.clipHeight {
		r.gl.Scissor(int32(x), int32(y), int32(width), int32(height))
		ctx.clipX, ctx.clipY = x, y
		ctx.clipWidth, ctx.clipHeight = width, height
	}
}

func (r *glRenderer) ClearClipRect() {
	ctx := r.ctx
	if !ctx.clipRect {
		return
	}
	r.gl.Disable(SCISSOR_TEST)
	ctx.clipRect = false
	ctx.clipX, ctx.clipY = 0, 0
	ctx.clipWidth, ctx.clipHeight = 0, 0
}

func (r *glRenderer) SetBackgroundColor(c common.Color) {
	ctx := r.ctx
	if ctx.clearColor != [4]float32{c.R, c.G, c.B, c.A} {
		r.gl.ClearColor(c.R, c.G, c.B, c.A)
		ctx.clearColor = [4]float32{c.R, c.G, c.B, c.A}
	}
}

func (r *glRenderer) ClearBuffers(color, depth, stencil bool) {
	ctx := r.ctx
	var bits uint32
	if color {
		// Clears write through the color mask, so force it on first.
		if !ctx.colorWrite {
			r.gl.ColorMask(true, true, true, true)
			ctx.colorWrite = true
		}
		bits = COLOR_BUFFER_BIT
	}
	if depth {
		// Same for the depth mask: a disabled mask swallows depth clears.
		if !ctx.depthWrite {
			r.gl.DepthMask(true)
			ctx.depthWrite = true
		}
		bits |= DEPTH_BUFFER_BIT
	}
	if stencil {
		bits |= STENCIL_BUFFER_BIT
	}
	if bits != 0 {
		r.gl.Clear(bits)
	}
}

func (r *glRenderer) SetDepthRange(near, far float32) {
	r.gl.DepthRange(float64(near), float64(far))
}

func (r *glRenderer) SetAlphaToCoverage(enabled bool) {
	if !r.caps.Contains(renderer.CapMultisample) {
		return
	}
	if enabled {
		r.gl.Enable(SAMPLE_ALPHA_TO_COVERAGE)
	} else {
		r.gl.Disable(SAMPLE_ALPHA_TO_COVERAGE)
	}
}
