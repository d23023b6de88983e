package opengl

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/prism3d/prism-go/engine/renderer"
	"github.com/prism3d/prism-go/engine/texture"
)

// glRenderer implements renderer.Renderer over the GL interface family.
// All driver traffic funnels through it; the shadow context filters out
// calls whose effect is already in place.
type glRenderer struct {
	gl    GL
	gl2   GL2
	gl3   GL3
	gl4   GL4
	glext GLExt
	glfbo GLFbo

	ctx        *renderContext
	caps       renderer.CapabilitySet
	limits     map[renderer.Limit]int
	stats      *renderer.Statistics
	objects    *objectManager
	extensions mapset.Set[string]

	linearizeSrgb      bool
	defaultAnisoFilter int
	validation         bool

	defaultFBO     uint32
	mainFBOverride *texture.FrameBuffer
	coreVAO        uint32
}

var _ renderer.Renderer = &glRenderer{}

// Option configures a renderer before first use.
type Option func(*glRenderer)

// WithValidation enables debug validation of uniform values: NaN and Inf
// components are rejected before they reach the driver. Meant for
// development builds; the checks cost a pass over every uploaded value.
//
// Returns:
//   - Option: the configuration function
func WithValidation() Option {
	return func(r *glRenderer) {
		r.validation = true
	}
}

// WithDefaultAnisotropicFilter presets the anisotropy level used by
// textures that leave their own level at 0.
//
// Parameters:
//   - level: the filtering level, clamped up to 1
//
// Returns:
//   - Option: the configuration function
func WithDefaultAnisotropicFilter(level int) Option {
	return func(r *glRenderer) {
		if level < 1 {
			level = 1
		}
		r.defaultAnisoFilter = level
	}
}

// WithLinearizeSrgbImages makes images tagged as sRGB upload through sRGB
// internal formats from the start.
//
// Returns:
//   - Option: the configuration function
func WithLinearizeSrgbImages() Option {
	return func(r *glRenderer) {
		r.linearizeSrgb = true
	}
}

// NewRenderer creates a renderer over a GL binding. The binding is probed
// once for the optional interface groups (GL2, GL3, GL4, GLExt, GLFbo);
// features whose entry points are missing never get emitted, whatever the
// detected capabilities claim.
//
// Parameters:
//   - g: the driver binding; gl41.New() for a real context, a fake in tests
//   - options: configuration applied before first use
//
// Returns:
//   - renderer.Renderer: the renderer; call Initialize on the context
//     thread before anything else
func NewRenderer(g GL, options ...Option) renderer.Renderer {
	r := &glRenderer{
		gl:                 g,
		ctx:                newRenderContext(),
		caps:               renderer.NewCapabilitySet(),
		limits:             make(map[renderer.Limit]int),
		stats:              &renderer.Statistics{},
		objects:            newObjectManager(),
		extensions:         mapset.NewThreadUnsafeSet[string](),
		defaultAnisoFilter: 1,
	}
	r.gl2, _ = g.(GL2)
	r.gl3, _ = g.(GL3)
	r.gl4, _ = g.(GL4)
	r.glext, _ = g.(GLExt)
	r.glfbo, _ = g.(GLFbo)

	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *glRenderer) Initialize() error {
	if err := r.loadCapabilities(); err != nil {
		return err
	}
	r.ctx.sizeForLimits(r.limits[renderer.LimitTextureUnits], r.limits[renderer.LimitVertexAttributes])

	// Engine images are tightly packed, never row-aligned.
	r.gl.PixelStorei(UNPACK_ALIGNMENT, 1)

	if r.caps.Contains(renderer.CapSeamlessCubemap) {
		r.gl.Enable(TEXTURE_CUBE_MAP_SEAMLESS)
	}

	if r.caps.Contains(renderer.CapCoreProfile) {
		if r.gl3 == nil {
			return fmt.Errorf("%w: core profile context without GL3 entry points", renderer.ErrUnsupportedOperation)
		}
		// Core has no default vertex array object; one is required for any
		// attribute state to exist.
		r.coreVAO = r.gl3.GenVertexArray()
		r.gl3.BindVertexArray(r.coreVAO)
	}

	if r.gl2 != nil {
		r.gl.Enable(VERTEX_PROGRAM_POINT_SIZE)
		if !r.caps.Contains(renderer.CapCoreProfile) {
			r.gl.Enable(POINT_SPRITE)
		}
	}

	r.InvalidateState()

	// Some window systems hand over a non-zero framebuffer as the screen.
	if binding := r.gl.GetInteger(FRAMEBUFFER_BINDING); binding > 0 {
		r.defaultFBO = uint32(binding)
		r.ctx.boundFBO = uint32(binding)
	}
	return nil
}

func (r *glRenderer) Capabilities() renderer.CapabilitySet {
	return r.caps
}

func (r *glRenderer) Limits() map[renderer.Limit]int {
	return r.limits
}

func (r *glRenderer) Statistics() *renderer.Statistics {
	return r.stats
}

func (r *glRenderer) InvalidateState() {
	r.ctx.reset()
	if r.gl2 != nil {
		r.ctx.initialDrawBuf = uint32(r.gl.GetInteger(DRAW_BUFFER))
		r.ctx.initialReadBuf = uint32(r.gl.GetInteger(READ_BUFFER))
	}
}

func (r *glRenderer) ResetObjects() {
	r.objects.resetObjects()
	r.stats.ClearMemory()
	r.InvalidateState()
	renderer.Logger().Debug("gl objects reset after context loss")
}

func (r *glRenderer) Cleanup() {
	r.objects.deleteAllObjects(r)
	r.stats.ClearMemory()
	r.InvalidateState()
	renderer.Logger().Debug("gl objects deleted, state invalidated")
}

func (r *glRenderer) Dispose(obj any) {
	r.objects.disposeLater(obj)
}

func (r *glRenderer) PostFrame() {
	r.objects.deleteDisposed(r)
	r.stats.NewFrame()
}

func (r *glRenderer) SetDefaultAnisotropicFilter(level int) error {
	if level < 1 {
		return fmt.Errorf("%w: anisotropic filter level %d, must be at least 1", renderer.ErrIllegalArgument, level)
	}
	r.defaultAnisoFilter = level
	return nil
}

func (r *glRenderer) DefaultAnisotropicFilter() int {
	return r.defaultAnisoFilter
}

func (r *glRenderer) SetLinearizeSrgbImages(enabled bool) {
	if r.linearizeSrgb != enabled {
		r.linearizeSrgb = enabled
		renderer.Logger().Debug("srgb image linearization changed", "enabled", enabled)
	}
}

func (r *glRenderer) SetMainFrameBufferSrgb(enabled bool) {
	if !r.caps.Contains(renderer.CapSrgb) {
		if enabled {
			renderer.Logger().Warn("srgb framebuffer requested but not supported by hardware")
		}
		return
	}
	if enabled {
		r.gl.Enable(FRAMEBUFFER_SRGB)
	} else {
		r.gl.Disable(FRAMEBUFFER_SRGB)
	}
}
