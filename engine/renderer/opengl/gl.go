// Package opengl implements the engine's Renderer interface on top of an
// OpenGL context. It keeps a shadow copy of the context state and emits a
// driver call only when the desired state or binding differs from the
// shadow copy, so the driver never sees redundant work.
//
// The package talks to the driver exclusively through the GL interface
// family below. The gl41 subpackage binds the family to a real 4.1 core
// context; tests substitute a recording fake.
package opengl

// GL is the baseline driver contract: the entry points shared by OpenGL 2
// and OpenGL ES 2 that the renderer cannot run without. Enum-typed
// parameters carry raw GL constant values.
//
// Optional feature groups live on GL2, GL3, GL4, GLExt, and GLFbo; the
// renderer probes for them with type assertions at construction and guards
// every use behind the detected capability set.
type GL interface {
	ActiveTexture(unit uint32)
	AttachShader(program, shader uint32)
	BindBuffer(target, buffer uint32)
	BindTexture(target, texture uint32)
	BlendEquationSeparate(modeRGB, modeAlpha uint32)
	BlendFunc(sfactor, dfactor uint32)
	BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32)

	// BufferData allocates the bound buffer to size bytes and fills it
	// from data when data is non-nil; len(data) must then equal size.
	BufferData(target uint32, size int, data []byte, usage uint32)
	BufferSubData(target uint32, offset int, data []byte)

	Clear(mask uint32)
	ClearColor(r, g, b, a float32)
	ColorMask(r, g, b, a bool)
	CompileShader(shader uint32)
	CreateProgram() uint32
	CreateShader(xtype uint32) uint32
	CullFace(mode uint32)
	DeleteBuffer(buffer uint32)
	DeleteProgram(program uint32)
	DeleteShader(shader uint32)
	DeleteTexture(texture uint32)
	DepthFunc(fn uint32)
	DepthMask(flag bool)
	DepthRange(near, far float64)
	DetachShader(program, shader uint32)
	Disable(capability uint32)
	DisableVertexAttribArray(index uint32)
	DrawArrays(mode uint32, first, count int32)

	// DrawRangeElements draws indexed primitives; offset is a byte offset
	// into the bound element array buffer.
	DrawRangeElements(mode uint32, start, end uint32, count int32, xtype uint32, offset int)

	Enable(capability uint32)
	EnableVertexAttribArray(index uint32)
	GenBuffer() uint32
	GenTexture() uint32
	GetAttribLocation(program uint32, name string) int32
	GetError() uint32
	GetFloat(pname uint32) float32
	GetInteger(pname uint32) int32
	GetProgramInfoLog(program uint32) string
	GetProgramParameter(program, pname uint32) int32
	GetShaderInfoLog(shader uint32) string
	GetShaderParameter(shader, pname uint32) int32
	GetString(name uint32) string
	GetUniformLocation(program uint32, name string) int32
	LineWidth(width float32)
	LinkProgram(program uint32)
	PixelStorei(pname uint32, param int32)
	PolygonOffset(factor, units float32)
	ReadPixels(x, y, width, height int32, format, xtype uint32, dst []byte)
	Scissor(x, y, width, height int32)
	ShaderSource(shader uint32, source string)
	StencilFuncSeparate(face, fn uint32, ref int32, mask uint32)
	StencilOpSeparate(face, sfail, dpfail, dppass uint32)

	// TexImage2D uploads a texture level; nil data allocates storage
	// without filling it.
	TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, data []byte)
	TexParameterf(target, pname uint32, param float32)
	TexParameteri(target, pname uint32, param int32)
	TexSubImage2D(target uint32, level, xoffset, yoffset, width, height int32, format, xtype uint32, data []byte)

	Uniform1f(location int32, v0 float32)
	Uniform1fv(location int32, values []float32)
	Uniform1i(location, v0 int32)
	Uniform1iv(location int32, values []int32)
	Uniform2f(location int32, v0, v1 float32)
	Uniform2fv(location int32, values []float32)
	Uniform3f(location int32, v0, v1, v2 float32)
	Uniform3fv(location int32, values []float32)
	Uniform4f(location int32, v0, v1, v2, v3 float32)
	Uniform4fv(location int32, values []float32)
	UniformMatrix3fv(location int32, values []float32)
	UniformMatrix4fv(location int32, values []float32)
	UseProgram(program uint32)

	// VertexAttribPointer wires an attribute slot to the bound array
	// buffer; offset is a byte offset into that buffer.
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int)
	Viewport(x, y, width, height int32)
}

// GL2 adds the desktop-only entry points absent from ES 2.
type GL2 interface {
	GL

	DrawBuffer(mode uint32)
	PolygonMode(face, mode uint32)
	ReadBuffer(mode uint32)
	TexImage3D(target uint32, level, internalFormat, width, height, depth int32, format, xtype uint32, data []byte)
	TexSubImage3D(target uint32, level, xoffset, yoffset, zoffset, width, height, depth int32, format, xtype uint32, data []byte)
}

// GL3 adds the OpenGL 3 core entry points the renderer uses: vertex array
// objects, indexed strings, and uniform buffer blocks.
type GL3 interface {
	GL2

	BindBufferBase(target uint32, index uint32, buffer uint32)
	BindFragDataLocation(program uint32, color uint32, name string)
	BindVertexArray(array uint32)
	DeleteVertexArray(array uint32)
	GenVertexArray() uint32
	GetStringi(name uint32, index uint32) string
	GetUniformBlockIndex(program uint32, name string) uint32
	UniformBlockBinding(program, blockIndex, blockBinding uint32)
}

// GL4 adds the OpenGL 4 entry points for tessellation patches and shader
// storage blocks.
type GL4 interface {
	GL3

	GetProgramResourceIndex(program uint32, programInterface uint32, name string) uint32
	PatchParameter(count int32)
	ShaderStorageBlockBinding(program, blockIndex, blockBinding uint32)
}

// GLExt groups entry points that arrived as extensions and may exist on
// otherwise GL2-level hardware: instanced drawing, multisample textures,
// and multiple draw buffers. Guarded by the corresponding capabilities.
type GLExt interface {
	DrawArraysInstanced(mode uint32, first, count, primCount int32)
	DrawBuffers(bufs []uint32)
	DrawElementsInstanced(mode uint32, count int32, xtype uint32, offset int, primCount int32)
	TexImage2DMultisample(target uint32, samples int32, internalFormat uint32, width, height int32, fixedSampleLocations bool)
	TexImage3DMultisample(target uint32, samples int32, internalFormat uint32, width, height, depth int32, fixedSampleLocations bool)
	VertexAttribDivisor(index uint32, divisor uint32)
}

// GLFbo groups the framebuffer object entry points, available either as
// the EXT extension or in core GL3. Guarded by CapFrameBuffer.
type GLFbo interface {
	BindFramebuffer(target, framebuffer uint32)
	BindRenderbuffer(target, renderbuffer uint32)
	BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter uint32)
	CheckFramebufferStatus(target uint32) uint32
	DeleteFramebuffer(framebuffer uint32)
	DeleteRenderbuffer(renderbuffer uint32)
	FramebufferRenderbuffer(target, attachment, renderbufferTarget, renderbuffer uint32)
	FramebufferTexture2D(target, attachment, texTarget, texture uint32, level int32)
	FramebufferTextureLayer(target, attachment, texture uint32, level, layer int32)
	GenFramebuffer() uint32
	GenRenderbuffer() uint32
	GenerateMipmap(target uint32)
	RenderbufferStorage(target, internalFormat uint32, width, height int32)
	RenderbufferStorageMultisample(target uint32, samples int32, internalFormat uint32, width, height int32)
}
