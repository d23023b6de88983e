package opengl

import (
	"github.com/prism3d/prism-go/engine/renderer"
	"github.com/prism3d/prism-go/engine/renderer/shader"
	"github.com/prism3d/prism-go/engine/resource"
	"github.com/prism3d/prism-go/engine/texture"
)

// Draw/read buffer shadow values that are not attachment slots. Slot
// indices 0..99 mean a single attachment; drawBufMRT+n means n attachments
// bound at once.
const (
	drawBufNone    = -2 // no color buffer bound (GL_NONE)
	drawBufInitial = -1 // whatever the context started with
	drawBufMRT     = 100
)

// renderContext is the shadow copy of the OpenGL context's state. Every
// mutable piece of context state the renderer touches has a field here;
// state-setting paths compare against it and skip driver calls whose
// effect is already in place. reset() returns it to the assumed defaults
// of a fresh context, which forces re-emission on next use.
type renderContext struct {
	// pipeline state, mirroring renderer.RenderState
	wireframe          bool
	depthTest          bool
	depthWrite         bool
	depthFunc          renderer.TestFunction
	colorWrite         bool
	polyOffsetEnabled  bool
	polyOffsetFactor   float32
	polyOffsetUnits    float32
	cullMode           renderer.FaceCullMode
	blendMode          renderer.BlendMode
	blendEquation      renderer.BlendEquation
	blendEquationAlpha renderer.BlendEquationAlpha
	srcFactorRGB       renderer.BlendFunc
	dstFactorRGB       renderer.BlendFunc
	srcFactorAlpha     renderer.BlendFunc
	dstFactorAlpha     renderer.BlendFunc
	lineWidth          float32

	stencilTest             bool
	frontStencilStencilFail renderer.StencilOperation
	frontStencilDepthFail   renderer.StencilOperation
	frontStencilDepthPass   renderer.StencilOperation
	backStencilStencilFail  renderer.StencilOperation
	backStencilDepthFail    renderer.StencilOperation
	backStencilDepthPass    renderer.StencilOperation
	frontStencilFunc        renderer.TestFunction
	backStencilFunc         renderer.TestFunction

	// clear, viewport, scissor
	clearColor [4]float32
	viewX      int
	viewY      int
	viewWidth  int
	viewHeight int
	clipRect   bool
	clipX      int
	clipY      int
	clipWidth  int
	clipHeight int

	// program and buffer bindings; boundShaderObject keeps the object so
	// the draw path can reach its attribute location cache
	boundShaderProgram uint32
	boundShader        resource.Ref
	boundShaderObject  *shader.Shader
	boundElementVBO    uint32
	boundArrayVBO      uint32

	// framebuffer bindings; boundFrameBuffer keeps the object so switching
	// away can regenerate mipmaps of its render targets
	boundFBO         uint32
	boundFrameBuffer *texture.FrameBuffer
	boundRB          uint32
	boundDrawBuf     int
	boundReadBuf     int
	initialDrawBuf   uint32
	initialReadBuf   uint32

	// texture units
	activeUnit    int
	boundTextures []resource.Ref

	// vertex attribute slots
	attribIndexList idList
	boundAttribs    []resource.Ref
	attribDivisors  []int
}

func newRenderContext() *renderContext {
	ctx := &renderContext{}
	ctx.reset()
	return ctx
}

// reset forgets all tracked state, restoring the assumed defaults of a
// fresh context. Slice lengths are kept; they are sized once from the
// hardware limits at initialization.
func (ctx *renderContext) reset() {
	ctx.wireframe = false
	ctx.depthTest = false
	ctx.depthWrite = true
	ctx.depthFunc = renderer.TestLess
	ctx.colorWrite = true
	ctx.polyOffsetEnabled = false
	ctx.polyOffsetFactor = 0
	ctx.polyOffsetUnits = 0
	ctx.cullMode = renderer.CullOff
	ctx.blendMode = renderer.BlendOff
	ctx.blendEquation = renderer.BlendEqAdd
	ctx.blendEquationAlpha = renderer.BlendEqAlphaInheritColor
	ctx.srcFactorRGB = -1
	ctx.dstFactorRGB = -1
	ctx.srcFactorAlpha = -1
	ctx.dstFactorAlpha = -1
	ctx.stencilTest = false
	ctx.frontStencilStencilFail = renderer.StencilKeep
	ctx.frontStencilDepthFail = renderer.StencilKeep
	ctx.frontStencilDepthPass = renderer.StencilKeep
	ctx.backStencilStencilFail = renderer.StencilKeep
	ctx.backStencilDepthFail = renderer.StencilKeep
	ctx.backStencilDepthPass = renderer.StencilKeep
	ctx.frontStencilFunc = renderer.TestAlways
	ctx.backStencilFunc = renderer.TestAlways
	ctx.lineWidth = 1

	ctx.clearColor = [4]float32{0, 0, 0, 0}
	ctx.viewX, ctx.viewY, ctx.viewWidth, ctx.viewHeight = 0, 0, 0, 0
	ctx.clipRect = false
	ctx.clipX, ctx.clipY, ctx.clipWidth, ctx.clipHeight = 0, 0, 0, 0

	ctx.boundShaderProgram = 0
	ctx.boundShader = resource.Ref{}
	ctx.boundShaderObject = nil
	ctx.boundElementVBO = 0
	ctx.boundArrayVBO = 0

	ctx.boundFBO = 0
	ctx.boundFrameBuffer = nil
	ctx.boundRB = 0
	ctx.boundDrawBuf = drawBufInitial
	ctx.boundReadBuf = drawBufInitial

	ctx.activeUnit = 0
	for i := range ctx.boundTextures {
		ctx.boundTextures[i] = resource.Ref{}
	}

	ctx.attribIndexList.reset()
	for i := range ctx.boundAttribs {
		ctx.boundAttribs[i] = resource.Ref{}
	}
	for i := range ctx.attribDivisors {
		ctx.attribDivisors[i] = -1
	}
}

// sizeForLimits allocates the per-unit and per-slot tracking slices once
// the hardware limits are known.
func (ctx *renderContext) sizeForLimits(textureUnits, vertexAttribs int) {
	ctx.boundTextures = make([]resource.Ref, textureUnits)
	ctx.boundAttribs = make([]resource.Ref, vertexAttribs)
	ctx.attribDivisors = make([]int, vertexAttribs)
	for i := range ctx.attribDivisors {
		ctx.attribDivisors[i] = -1
	}
}
