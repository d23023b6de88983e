package opengl

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeGL implements the whole GL interface family, recording every command
// as a formatted line. Query entry points answer from the configurable
// tables below and stay out of the log, so call counts reflect emitted
// driver work only.
//
// The zero value is not usable; newFakeGL returns a fake that reports a
// fully featured 4.1 core context.
type fakeGL struct {
	calls []string

	integers map[uint32]int32
	floats   map[uint32]float32
	strs     map[uint32]string
	exts     []string

	attribLocs   map[string]int32
	uniformLocs  map[string]int32
	blockIdx     map[string]uint32
	resourceIdx  map[string]uint32
	compileOK    int32
	linkOK       int32
	shaderLog    string
	programLog   string
	fboStatus    uint32
	lastReadByte byte

	nextID uint32
}

var (
	_ GL4   = &fakeGL{}
	_ GLExt = &fakeGL{}
	_ GLFbo = &fakeGL{}
)

func newFakeGL() *fakeGL {
	return &fakeGL{
		integers: map[uint32]int32{
			CONTEXT_PROFILE_MASK:               CONTEXT_CORE_PROFILE_BIT,
			FRAMEBUFFER_BINDING:                0,
			DRAW_BUFFER:                        BACK,
			READ_BUFFER:                        BACK,
			MAX_TEXTURE_SIZE:                   8192,
			MAX_CUBE_MAP_TEXTURE_SIZE:          8192,
			MAX_3D_TEXTURE_SIZE:                2048,
			MAX_ARRAY_TEXTURE_LAYERS:           256,
			MAX_COMBINED_TEXTURE_IMAGE_UNITS:   32,
			MAX_VERTEX_TEXTURE_IMAGE_UNITS:     16,
			MAX_VERTEX_ATTRIBS:                 16,
			MAX_COLOR_TEXTURE_SAMPLES:          8,
			MAX_DEPTH_TEXTURE_SAMPLES:          8,
			MAX_RENDERBUFFER_SIZE:              8192,
			MAX_COLOR_ATTACHMENTS:              8,
			MAX_SAMPLES:                        8,
			MAX_DRAW_BUFFERS:                   8,
			MAX_PATCH_VERTICES:                 32,
			MAX_UNIFORM_BUFFER_BINDINGS:        84,
			MAX_SHADER_STORAGE_BUFFER_BINDINGS: 16,
		},
		floats: map[uint32]float32{
			MAX_TEXTURE_MAX_ANISOTROPY: 16,
		},
		strs: map[uint32]string{
			VENDOR:                   "Prism Project",
			RENDERER:                 "Recording Fake",
			VERSION:                  "4.1 fake-1.0",
			SHADING_LANGUAGE_VERSION: "4.10",
		},
		exts: []string{
			"GL_EXT_texture_filter_anisotropic",
			"GL_ARB_shader_storage_buffer_object",
		},
		attribLocs:   map[string]int32{},
		uniformLocs:  map[string]int32{},
		blockIdx:     map[string]uint32{},
		resourceIdx:  map[string]uint32{},
		compileOK:    TRUE,
		linkOK:       TRUE,
		fboStatus:    FRAMEBUFFER_COMPLETE,
		lastReadByte: 0x7F,
	}
}

func (f *fakeGL) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

// count reports how many recorded calls start with prefix.
func (f *fakeGL) count(prefix string) int {
	n := 0
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

// last returns the most recent call starting with prefix, or "".
func (f *fakeGL) last(prefix string) string {
	for i := len(f.calls) - 1; i >= 0; i-- {
		if strings.HasPrefix(f.calls[i], prefix) {
			return f.calls[i]
		}
	}
	return ""
}

// reset clears the call log, keeping configured answers and id counters.
func (f *fakeGL) reset() {
	f.calls = f.calls[:0]
}

func (f *fakeGL) genID() uint32 {
	f.nextID++
	return f.nextID
}

// Baseline entry points.

func (f *fakeGL) ActiveTexture(unit uint32) { f.record("ActiveTexture(%d)", unit) }
func (f *fakeGL) AttachShader(program, shader uint32) {
	f.record("AttachShader(%d,%d)", program, shader)
}
func (f *fakeGL) BindBuffer(target, buffer uint32) { f.record("BindBuffer(%d,%d)", target, buffer) }
func (f *fakeGL) BindTexture(target, texture uint32) {
	f.record("BindTexture(%d,%d)", target, texture)
}
func (f *fakeGL) BlendEquationSeparate(modeRGB, modeAlpha uint32) {
	f.record("BlendEquationSeparate(%d,%d)", modeRGB, modeAlpha)
}
func (f *fakeGL) BlendFunc(sfactor, dfactor uint32) {
	f.record("BlendFunc(%d,%d)", sfactor, dfactor)
}
func (f *fakeGL) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32) {
	f.record("BlendFuncSeparate(%d,%d,%d,%d)", srcRGB, dstRGB, srcAlpha, dstAlpha)
}
func (f *fakeGL) BufferData(target uint32, size int, data []byte, usage uint32) {
	f.record("BufferData(%d,%d,%s,%d)", target, size, dataTag(data), usage)
}
func (f *fakeGL) BufferSubData(target uint32, offset int, data []byte) {
	f.record("BufferSubData(%d,%d,%d)", target, offset, len(data))
}
func (f *fakeGL) Clear(mask uint32) { f.record("Clear(%d)", mask) }
func (f *fakeGL) ClearColor(r, g, b, a float32) {
	f.record("ClearColor(%g,%g,%g,%g)", r, g, b, a)
}
func (f *fakeGL) ColorMask(r, g, b, a bool) { f.record("ColorMask(%t,%t,%t,%t)", r, g, b, a) }
func (f *fakeGL) CompileShader(shader uint32) { f.record("CompileShader(%d)", shader) }
func (f *fakeGL) CreateProgram() uint32 {
	id := f.genID()
	f.record("CreateProgram()=%d", id)
	return id
}
func (f *fakeGL) CreateShader(xtype uint32) uint32 {
	id := f.genID()
	f.record("CreateShader(%d)=%d", xtype, id)
	return id
}
func (f *fakeGL) CullFace(mode uint32) { f.record("CullFace(%d)", mode) }
func (f *fakeGL) DeleteBuffer(buffer uint32) { f.record("DeleteBuffer(%d)", buffer) }
func (f *fakeGL) DeleteProgram(program uint32) {
	f.record("DeleteProgram(%d)", program)
}
func (f *fakeGL) DeleteShader(shader uint32) { f.record("DeleteShader(%d)", shader) }
func (f *fakeGL) DeleteTexture(texture uint32) { f.record("DeleteTexture(%d)", texture) }
func (f *fakeGL) DepthFunc(fn uint32) { f.record("DepthFunc(%d)", fn) }
func (f *fakeGL) DepthMask(flag bool) { f.record("DepthMask(%t)", flag) }
func (f *fakeGL) DepthRange(near, far float64) { f.record("DepthRange(%g,%g)", near, far) }
func (f *fakeGL) DetachShader(program, shader uint32) {
	f.record("DetachShader(%d,%d)", program, shader)
}
func (f *fakeGL) Disable(capability uint32) { f.record("Disable(%d)", capability) }
func (f *fakeGL) DisableVertexAttribArray(index uint32) {
	f.record("DisableVertexAttribArray(%d)", index)
}
func (f *fakeGL) DrawArrays(mode uint32, first, count int32) {
	f.record("DrawArrays(%d,%d,%d)", mode, first, count)
}
func (f *fakeGL) DrawRangeElements(mode uint32, start, end uint32, count int32, xtype uint32, offset int) {
	f.record("DrawRangeElements(%d,%d,%d,%d,%d,%d)", mode, start, end, count, xtype, offset)
}
func (f *fakeGL) Enable(capability uint32) { f.record("Enable(%d)", capability) }
func (f *fakeGL) EnableVertexAttribArray(index uint32) {
	f.record("EnableVertexAttribArray(%d)", index)
}
func (f *fakeGL) GenBuffer() uint32 {
	id := f.genID()
	f.record("GenBuffer()=%d", id)
	return id
}
func (f *fakeGL) GenTexture() uint32 {
	id := f.genID()
	f.record("GenTexture()=%d", id)
	return id
}
func (f *fakeGL) GetAttribLocation(program uint32, name string) int32 {
	if loc, ok := f.attribLocs[name]; ok {
		return loc
	}
	return -1
}
func (f *fakeGL) GetError() uint32 { return 0 }
func (f *fakeGL) GetFloat(pname uint32) float32 {
	return f.floats[pname]
}
func (f *fakeGL) GetInteger(pname uint32) int32 {
	if pname == NUM_EXTENSIONS {
		return int32(len(f.exts))
	}
	return f.integers[pname]
}
func (f *fakeGL) GetProgramInfoLog(program uint32) string { return f.programLog }
func (f *fakeGL) GetProgramParameter(program, pname uint32) int32 {
	if pname == LINK_STATUS {
		return f.linkOK
	}
	return 0
}
func (f *fakeGL) GetShaderInfoLog(shader uint32) string { return f.shaderLog }
func (f *fakeGL) GetShaderParameter(shader, pname uint32) int32 {
	if pname == COMPILE_STATUS {
		return f.compileOK
	}
	return 0
}
func (f *fakeGL) GetString(name uint32) string {
	if name == EXTENSIONS {
		return strings.Join(f.exts, " ")
	}
	return f.strs[name]
}
func (f *fakeGL) GetUniformLocation(program uint32, name string) int32 {
	if loc, ok := f.uniformLocs[name]; ok {
		return loc
	}
	return -1
}
func (f *fakeGL) LineWidth(width float32) { f.record("LineWidth(%g)", width) }
func (f *fakeGL) LinkProgram(program uint32) {
	f.record("LinkProgram(%d)", program)
}
func (f *fakeGL) PixelStorei(pname uint32, param int32) {
	f.record("PixelStorei(%d,%d)", pname, param)
}
func (f *fakeGL) PolygonOffset(factor, units float32) {
	f.record("PolygonOffset(%g,%g)", factor, units)
}
func (f *fakeGL) ReadPixels(x, y, width, height int32, format, xtype uint32, dst []byte) {
	f.record("ReadPixels(%d,%d,%d,%d,%d,%d,%d)", x, y, width, height, format, xtype, len(dst))
	for i := range dst {
		dst[i] = f.lastReadByte
	}
}
func (f *fakeGL) Scissor(x, y, width, height int32) {
	f.record("Scissor(%d,%d,%d,%d)", x, y, width, height)
}
func (f *fakeGL) ShaderSource(shader uint32, source string) {
	f.record("ShaderSource(%d,%d bytes)", shader, len(source))
}
func (f *fakeGL) StencilFuncSeparate(face, fn uint32, ref int32, mask uint32) {
	f.record("StencilFuncSeparate(%d,%d,%d,%d)", face, fn, ref, mask)
}
func (f *fakeGL) StencilOpSeparate(face, sfail, dpfail, dppass uint32) {
	f.record("StencilOpSeparate(%d,%d,%d,%d)", face, sfail, dpfail, dppass)
}
func (f *fakeGL) TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, data []byte) {
	f.record("TexImage2D(%d,%d,%d,%d,%d,%d,%d,%s)",
		target, level, internalFormat, width, height, format, xtype, dataTag(data))
}
func (f *fakeGL) TexParameterf(target, pname uint32, param float32) {
	f.record("TexParameterf(%d,%d,%g)", target, pname, param)
}
func (f *fakeGL) TexParameteri(target, pname uint32, param int32) {
	f.record("TexParameteri(%d,%d,%d)", target, pname, param)
}
func (f *fakeGL) TexSubImage2D(target uint32, level, xoffset, yoffset, width, height int32, format, xtype uint32, data []byte) {
	f.record("TexSubImage2D(%d,%d,%d,%d,%d,%d,%d,%d,%s)",
		target, level, xoffset, yoffset, width, height, format, xtype, dataTag(data))
}
func (f *fakeGL) Uniform1f(location int32, v0 float32) { f.record("Uniform1f(%d,%g)", location, v0) }
func (f *fakeGL) Uniform1fv(location int32, values []float32) {
	f.record("Uniform1fv(%d,%v)", location, values)
}
func (f *fakeGL) Uniform1i(location, v0 int32) { f.record("Uniform1i(%d,%d)", location, v0) }
func (f *fakeGL) Uniform1iv(location int32, values []int32) {
	f.record("Uniform1iv(%d,%v)", location, values)
}
func (f *fakeGL) Uniform2f(location int32, v0, v1 float32) {
	f.record("Uniform2f(%d,%g,%g)", location, v0, v1)
}
func (f *fakeGL) Uniform2fv(location int32, values []float32) {
	f.record("Uniform2fv(%d,%v)", location, values)
}
func (f *fakeGL) Uniform3f(location int32, v0, v1, v2 float32) {
	f.record("Uniform3f(%d,%g,%g,%g)", location, v0, v1, v2)
}
func (f *fakeGL) Uniform3fv(location int32, values []float32) {
	f.record("Uniform3fv(%d,%v)", location, values)
}
func (f *fakeGL) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	f.record("Uniform4f(%d,%g,%g,%g,%g)", location, v0, v1, v2, v3)
}
func (f *fakeGL) Uniform4fv(location int32, values []float32) {
	f.record("Uniform4fv(%d,%v)", location, values)
}
func (f *fakeGL) UniformMatrix3fv(location int32, values []float32) {
	f.record("UniformMatrix3fv(%d,%v)", location, values)
}
func (f *fakeGL) UniformMatrix4fv(location int32, values []float32) {
	f.record("UniformMatrix4fv(%d,%v)", location, values)
}
func (f *fakeGL) UseProgram(program uint32) { f.record("UseProgram(%d)", program) }
func (f *fakeGL) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	f.record("VertexAttribPointer(%d,%d,%d,%t,%d,%d)", index, size, xtype, normalized, stride, offset)
}
func (f *fakeGL) Viewport(x, y, width, height int32) {
	f.record("Viewport(%d,%d,%d,%d)", x, y, width, height)
}

// Desktop GL2 entry points.

func (f *fakeGL) DrawBuffer(mode uint32) { f.record("DrawBuffer(%d)", mode) }
func (f *fakeGL) PolygonMode(face, mode uint32) {
	f.record("PolygonMode(%d,%d)", face, mode)
}
func (f *fakeGL) ReadBuffer(mode uint32) { f.record("ReadBuffer(%d)", mode) }
func (f *fakeGL) TexImage3D(target uint32, level, internalFormat, width, height, depth int32, format, xtype uint32, data []byte) {
	f.record("TexImage3D(%d,%d,%d,%d,%d,%d,%d,%d,%s)",
		target, level, internalFormat, width, height, depth, format, xtype, dataTag(data))
}
func (f *fakeGL) TexSubImage3D(target uint32, level, xoffset, yoffset, zoffset, width, height, depth int32, format, xtype uint32, data []byte) {
	f.record("TexSubImage3D(%d,%d,%d,%d,%d,%d,%d,%d,%d,%d,%s)",
		target, level, xoffset, yoffset, zoffset, width, height, depth, format, xtype, dataTag(data))
}

// GL3 entry points.

func (f *fakeGL) BindBufferBase(target uint32, index uint32, buffer uint32) {
	f.record("BindBufferBase(%d,%d,%d)", target, index, buffer)
}
func (f *fakeGL) BindFragDataLocation(program uint32, color uint32, name string) {
	f.record("BindFragDataLocation(%d,%d,%s)", program, color, name)
}
func (f *fakeGL) BindVertexArray(array uint32) { f.record("BindVertexArray(%d)", array) }
func (f *fakeGL) DeleteVertexArray(array uint32) {
	f.record("DeleteVertexArray(%d)", array)
}
func (f *fakeGL) GenVertexArray() uint32 {
	id := f.genID()
	f.record("GenVertexArray()=%d", id)
	return id
}
func (f *fakeGL) GetStringi(name uint32, index uint32) string {
	if name == EXTENSIONS && int(index) < len(f.exts) {
		return f.exts[index]
	}
	return ""
}
func (f *fakeGL) GetUniformBlockIndex(program uint32, name string) uint32 {
	if idx, ok := f.blockIdx[name]; ok {
		return idx
	}
	return INVALID_INDEX
}
func (f *fakeGL) UniformBlockBinding(program, blockIndex, blockBinding uint32) {
	f.record("UniformBlockBinding(%d,%d,%d)", program, blockIndex, blockBinding)
}

// GL4 entry points.

func (f *fakeGL) GetProgramResourceIndex(program uint32, programInterface uint32, name string) uint32 {
	if idx, ok := f.resourceIdx[name]; ok {
		return idx
	}
	return INVALID_INDEX
}
func (f *fakeGL) PatchParameter(count int32) { f.record("PatchParameter(%d)", count) }
func (f *fakeGL) ShaderStorageBlockBinding(program, blockIndex, blockBinding uint32) {
	f.record("ShaderStorageBlockBinding(%d,%d,%d)", program, blockIndex, blockBinding)
}

// Extension entry points.

func (f *fakeGL) DrawArraysInstanced(mode uint32, first, count, primCount int32) {
	f.record("DrawArraysInstanced(%d,%d,%d,%d)", mode, first, count, primCount)
}
func (f *fakeGL) DrawBuffers(bufs []uint32) { f.record("DrawBuffers(%v)", bufs) }
func (f *fakeGL) DrawElementsInstanced(mode uint32, count int32, xtype uint32, offset int, primCount int32) {
	f.record("DrawElementsInstanced(%d,%d,%d,%d,%d)", mode, count, xtype, offset, primCount)
}
func (f *fakeGL) TexImage2DMultisample(target uint32, samples int32, internalFormat uint32, width, height int32, fixedSampleLocations bool) {
	f.record("TexImage2DMultisample(%d,%d,%d,%d,%d,%t)",
		target, samples, internalFormat, width, height, fixedSampleLocations)
}
func (f *fakeGL) TexImage3DMultisample(target uint32, samples int32, internalFormat uint32, width, height, depth int32, fixedSampleLocations bool) {
	f.record("TexImage3DMultisample(%d,%d,%d,%d,%d,%d,%t)",
		target, samples, internalFormat, width, height, depth, fixedSampleLocations)
}
func (f *fakeGL) VertexAttribDivisor(index uint32, divisor uint32) {
	f.record("VertexAttribDivisor(%d,%d)", index, divisor)
}

// Framebuffer object entry points.

func (f *fakeGL) BindFramebuffer(target, framebuffer uint32) {
	f.record("BindFramebuffer(%d,%d)", target, framebuffer)
}
func (f *fakeGL) BindRenderbuffer(target, renderbuffer uint32) {
	f.record("BindRenderbuffer(%d,%d)", target, renderbuffer)
}
func (f *fakeGL) BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter uint32) {
	f.record("BlitFramebuffer(%d,%d,%d,%d,%d,%d,%d,%d,%d,%d)",
		srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1, mask, filter)
}
func (f *fakeGL) CheckFramebufferStatus(target uint32) uint32 { return f.fboStatus }
func (f *fakeGL) DeleteFramebuffer(framebuffer uint32) {
	f.record("DeleteFramebuffer(%d)", framebuffer)
}
func (f *fakeGL) DeleteRenderbuffer(renderbuffer uint32) {
	f.record("DeleteRenderbuffer(%d)", renderbuffer)
}
func (f *fakeGL) FramebufferRenderbuffer(target, attachment, renderbufferTarget, renderbuffer uint32) {
	f.record("FramebufferRenderbuffer(%d,%d,%d,%d)", target, attachment, renderbufferTarget, renderbuffer)
}
func (f *fakeGL) FramebufferTexture2D(target, attachment, texTarget, texture uint32, level int32) {
	f.record("FramebufferTexture2D(%d,%d,%d,%d,%d)", target, attachment, texTarget, texture, level)
}
func (f *fakeGL) FramebufferTextureLayer(target, attachment, texture uint32, level, layer int32) {
	f.record("FramebufferTextureLayer(%d,%d,%d,%d,%d)", target, attachment, texture, level, layer)
}
func (f *fakeGL) GenFramebuffer() uint32 {
	id := f.genID()
	f.record("GenFramebuffer()=%d", id)
	return id
}
func (f *fakeGL) GenRenderbuffer() uint32 {
	id := f.genID()
	f.record("GenRenderbuffer()=%d", id)
	return id
}
func (f *fakeGL) GenerateMipmap(target uint32) { f.record("GenerateMipmap(%d)", target) }
func (f *fakeGL) RenderbufferStorage(target, internalFormat uint32, width, height int32) {
	f.record("RenderbufferStorage(%d,%d,%d,%d)", target, internalFormat, width, height)
}
func (f *fakeGL) RenderbufferStorageMultisample(target uint32, samples int32, internalFormat uint32, width, height int32) {
	f.record("RenderbufferStorageMultisample(%d,%d,%d,%d,%d)", target, samples, internalFormat, width, height)
}

func dataTag(data []byte) string {
	if data == nil {
		return "nil"
	}
	return fmt.Sprintf("%d", len(data))
}

// Narrowing wrappers hide the optional interface groups from NewRenderer's
// probes, standing in for hardware without those entry points.
type (
	baselineOnly struct{ GL }
	gl2Only      struct{ GL2 }
	gl3Only      struct{ GL3 }
	gl4Only      struct{ GL4 }
)

// newTestRenderer builds an initialized renderer over a fresh fake and clears
// the initialization traffic from the log, so tests start from an empty call
// record and the reset shadow context.
func newTestRenderer(t *testing.T, options ...Option) (*glRenderer, *fakeGL) {
	t.Helper()
	g := newFakeGL()
	return newTestRendererOn(t, g, g, options...), g
}

// newTestRendererOn initializes a renderer over an already configured or
// narrowed fake. The recorder is the fake backing g, kept separate so tests
// can reach the log behind a narrowing wrapper.
func newTestRendererOn(t *testing.T, g GL, recorder *fakeGL, options ...Option) *glRenderer {
	t.Helper()
	r := NewRenderer(g, options...).(*glRenderer)
	require.NoError(t, r.Initialize())
	recorder.reset()
	return r
}
