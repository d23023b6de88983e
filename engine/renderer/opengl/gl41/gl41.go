// Package gl41 binds the renderer's GL interface family to a real OpenGL
// 4.1 core context through the go-gl bindings. The binding is generated with
// all extensions, so the instancing, framebuffer, and storage-block entry
// points resolve where the driver exports them; the renderer's capability
// detection keeps unsupported ones uncalled.
package gl41

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Context forwards every renderer driver call to the loaded OpenGL entry
// points. It holds no state of its own; all methods must run on the thread
// that owns the GL context.
type Context struct{}

// New loads the OpenGL entry points from the current context and returns a
// binding over them. The context must be current on the calling thread,
// typically right after glfw's MakeContextCurrent.
//
// Returns:
//   - *Context: the driver binding to hand to opengl.NewRenderer
//   - error: an error when the entry points cannot be loaded
func New() (*Context, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("loading opengl entry points: %w", err)
	}
	return &Context{}, nil
}

// cstr returns a null-terminated C string for name lookups. The go-gl
// bindings hand the pointer straight to the driver.
func cstr(name string) *uint8 {
	return gl.Str(name + "\x00")
}

// bytesPtr returns the address of a byte slice's data, or nil for empty
// slices, which GL reads as "allocate without filling".
func bytesPtr(data []byte) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return gl.Ptr(data)
}

func floatsPtr(values []float32) *float32 {
	if len(values) == 0 {
		return nil
	}
	return &values[0]
}

func intsPtr(values []int32) *int32 {
	if len(values) == 0 {
		return nil
	}
	return &values[0]
}

func (c *Context) ActiveTexture(unit uint32)            { gl.ActiveTexture(unit) }
func (c *Context) AttachShader(program, shader uint32)  { gl.AttachShader(program, shader) }
func (c *Context) BindBuffer(target, buffer uint32)     { gl.BindBuffer(target, buffer) }
func (c *Context) BindTexture(target, texture uint32)   { gl.BindTexture(target, texture) }
func (c *Context) BlendFunc(sfactor, dfactor uint32)    { gl.BlendFunc(sfactor, dfactor) }
func (c *Context) Clear(mask uint32)                    { gl.Clear(mask) }
func (c *Context) ClearColor(r, g, b, a float32)        { gl.ClearColor(r, g, b, a) }
func (c *Context) ColorMask(r, g, b, a bool)            { gl.ColorMask(r, g, b, a) }
func (c *Context) CompileShader(shader uint32)          { gl.CompileShader(shader) }
func (c *Context) CreateProgram() uint32                { return gl.CreateProgram() }
func (c *Context) CreateShader(xtype uint32) uint32     { return gl.CreateShader(xtype) }
func (c *Context) CullFace(mode uint32)                 { gl.CullFace(mode) }
func (c *Context) DeleteProgram(program uint32)         { gl.DeleteProgram(program) }
func (c *Context) DeleteShader(shader uint32)           { gl.DeleteShader(shader) }
func (c *Context) DepthFunc(fn uint32)                  { gl.DepthFunc(fn) }
func (c *Context) DepthMask(flag bool)                  { gl.DepthMask(flag) }
func (c *Context) DepthRange(near, far float64)         { gl.DepthRange(near, far) }
func (c *Context) DetachShader(program, shader uint32)  { gl.DetachShader(program, shader) }
func (c *Context) Disable(capability uint32)            { gl.Disable(capability) }
func (c *Context) DisableVertexAttribArray(index uint32) { gl.DisableVertexAttribArray(index) }
func (c *Context) Enable(capability uint32)             { gl.Enable(capability) }
func (c *Context) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }
func (c *Context) GetError() uint32                     { return gl.GetError() }
func (c *Context) LineWidth(width float32)              { gl.LineWidth(width) }
func (c *Context) LinkProgram(program uint32)           { gl.LinkProgram(program) }
func (c *Context) PixelStorei(pname uint32, param int32) { gl.PixelStorei(pname, param) }
func (c *Context) PolygonOffset(factor, units float32)  { gl.PolygonOffset(factor, units) }
func (c *Context) UseProgram(program uint32)            { gl.UseProgram(program) }

func (c *Context) BlendEquationSeparate(modeRGB, modeAlpha uint32) {
	gl.BlendEquationSeparate(modeRGB, modeAlpha)
}

func (c *Context) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32) {
	gl.BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha)
}

func (c *Context) BufferData(target uint32, size int, data []byte, usage uint32) {
	gl.BufferData(target, size, bytesPtr(data), usage)
}

func (c *Context) BufferSubData(target uint32, offset int, data []byte) {
	gl.BufferSubData(target, offset, len(data), bytesPtr(data))
}

func (c *Context) DeleteBuffer(buffer uint32) {
	gl.DeleteBuffers(1, &buffer)
}

func (c *Context) DeleteTexture(texture uint32) {
	gl.DeleteTextures(1, &texture)
}

func (c *Context) DrawArrays(mode uint32, first, count int32) {
	gl.DrawArrays(mode, first, count)
}

func (c *Context) DrawRangeElements(mode uint32, start, end uint32, count int32, xtype uint32, offset int) {
	gl.DrawRangeElements(mode, start, end, count, xtype, gl.PtrOffset(offset))
}

func (c *Context) GenBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

func (c *Context) GenTexture() uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	return id
}

func (c *Context) GetAttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, cstr(name))
}

func (c *Context) GetFloat(pname uint32) float32 {
	var v float32
	gl.GetFloatv(pname, &v)
	return v
}

func (c *Context) GetInteger(pname uint32) int32 {
	var v int32
	gl.GetIntegerv(pname, &v)
	return v
}

func (c *Context) GetProgramInfoLog(program uint32) string {
	var length int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &length)
	if length == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(length+1))
	gl.GetProgramInfoLog(program, length, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (c *Context) GetProgramParameter(program, pname uint32) int32 {
	var v int32
	gl.GetProgramiv(program, pname, &v)
	return v
}

func (c *Context) GetShaderInfoLog(shader uint32) string {
	var length int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &length)
	if length == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(length+1))
	gl.GetShaderInfoLog(shader, length, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (c *Context) GetShaderParameter(shader, pname uint32) int32 {
	var v int32
	gl.GetShaderiv(shader, pname, &v)
	return v
}

func (c *Context) GetString(name uint32) string {
	p := gl.GetString(name)
	if p == nil {
		return ""
	}
	return gl.GoStr(p)
}

func (c *Context) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, cstr(name))
}

func (c *Context) ReadPixels(x, y, width, height int32, format, xtype uint32, dst []byte) {
	gl.ReadPixels(x, y, width, height, format, xtype, bytesPtr(dst))
}

func (c *Context) Scissor(x, y, width, height int32) {
	gl.Scissor(x, y, width, height)
}

func (c *Context) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (c *Context) StencilFuncSeparate(face, fn uint32, ref int32, mask uint32) {
	gl.StencilFuncSeparate(face, fn, ref, mask)
}

func (c *Context) StencilOpSeparate(face, sfail, dpfail, dppass uint32) {
	gl.StencilOpSeparate(face, sfail, dpfail, dppass)
}

func (c *Context) TexImage2D(target uint32, level, internalFormat, width, height int32, format, xtype uint32, data []byte) {
	gl.TexImage2D(target, level, internalFormat, width, height, 0, format, xtype, bytesPtr(data))
}

func (c *Context) TexParameterf(target, pname uint32, param float32) {
	gl.TexParameterf(target, pname, param)
}

func (c *Context) TexParameteri(target, pname uint32, param int32) {
	gl.TexParameteri(target, pname, param)
}

func (c *Context) TexSubImage2D(target uint32, level, xoffset, yoffset, width, height int32, format, xtype uint32, data []byte) {
	gl.TexSubImage2D(target, level, xoffset, yoffset, width, height, format, xtype, bytesPtr(data))
}

func (c *Context) Uniform1f(location int32, v0 float32) { gl.Uniform1f(location, v0) }
func (c *Context) Uniform1i(location, v0 int32)         { gl.Uniform1i(location, v0) }

func (c *Context) Uniform1fv(location int32, values []float32) {
	gl.Uniform1fv(location, int32(len(values)), floatsPtr(values))
}

func (c *Context) Uniform1iv(location int32, values []int32) {
	gl.Uniform1iv(location, int32(len(values)), intsPtr(values))
}

func (c *Context) Uniform2f(location int32, v0, v1 float32) {
	gl.Uniform2f(location, v0, v1)
}

func (c *Context) Uniform2fv(location int32, values []float32) {
	gl.Uniform2fv(location, int32(len(values)/2), floatsPtr(values))
}

func (c *Context) Uniform3f(location int32, v0, v1, v2 float32) {
	gl.Uniform3f(location, v0, v1, v2)
}

func (c *Context) Uniform3fv(location int32, values []float32) {
	gl.Uniform3fv(location, int32(len(values)/3), floatsPtr(values))
}

func (c *Context) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	gl.Uniform4f(location, v0, v1, v2, v3)
}

func (c *Context) Uniform4fv(location int32, values []float32) {
	gl.Uniform4fv(location, int32(len(values)/4), floatsPtr(values))
}

func (c *Context) UniformMatrix3fv(location int32, values []float32) {
	gl.UniformMatrix3fv(location, int32(len(values)/9), false, floatsPtr(values))
}

func (c *Context) UniformMatrix4fv(location int32, values []float32) {
	gl.UniformMatrix4fv(location, int32(len(values)/16), false, floatsPtr(values))
}

func (c *Context) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointer(index, size, xtype, normalized, stride, gl.PtrOffset(offset))
}

func (c *Context) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (c *Context) DrawBuffer(mode uint32) { gl.DrawBuffer(mode) }
func (c *Context) ReadBuffer(mode uint32) { gl.ReadBuffer(mode) }

func (c *Context) PolygonMode(face, mode uint32) {
	gl.PolygonMode(face, mode)
}

func (c *Context) TexImage3D(target uint32, level, internalFormat, width, height, depth int32, format, xtype uint32, data []byte) {
	gl.TexImage3D(target, level, internalFormat, width, height, depth, 0, format, xtype, bytesPtr(data))
}

func (c *Context) TexSubImage3D(target uint32, level, xoffset, yoffset, zoffset, width, height, depth int32, format, xtype uint32, data []byte) {
	gl.TexSubImage3D(target, level, xoffset, yoffset, zoffset, width, height, depth, format, xtype, bytesPtr(data))
}

func (c *Context) BindBufferBase(target uint32, index uint32, buffer uint32) {
	gl.BindBufferBase(target, index, buffer)
}

func (c *Context) BindFragDataLocation(program uint32, color uint32, name string) {
	gl.BindFragDataLocation(program, color, cstr(name))
}

func (c *Context) BindVertexArray(array uint32) { gl.BindVertexArray(array) }

func (c *Context) DeleteVertexArray(array uint32) {
	gl.DeleteVertexArrays(1, &array)
}

func (c *Context) GenVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id
}

func (c *Context) GetStringi(name uint32, index uint32) string {
	p := gl.GetStringi(name, index)
	if p == nil {
		return ""
	}
	return gl.GoStr(p)
}

func (c *Context) GetUniformBlockIndex(program uint32, name string) uint32 {
	return gl.GetUniformBlockIndex(program, cstr(name))
}

func (c *Context) UniformBlockBinding(program, blockIndex, blockBinding uint32) {
	gl.UniformBlockBinding(program, blockIndex, blockBinding)
}

func (c *Context) GetProgramResourceIndex(program uint32, programInterface uint32, name string) uint32 {
	return gl.GetProgramResourceIndex(program, programInterface, cstr(name))
}

func (c *Context) PatchParameter(count int32) {
	gl.PatchParameteri(gl.PATCH_VERTICES, count)
}

func (c *Context) ShaderStorageBlockBinding(program, blockIndex, blockBinding uint32) {
	gl.ShaderStorageBlockBinding(program, blockIndex, blockBinding)
}

func (c *Context) DrawArraysInstanced(mode uint32, first, count, primCount int32) {
	gl.DrawArraysInstanced(mode, first, count, primCount)
}

func (c *Context) DrawBuffers(bufs []uint32) {
	if len(bufs) == 0 {
		return
	}
	gl.DrawBuffers(int32(len(bufs)), &bufs[0])
}

func (c *Context) DrawElementsInstanced(mode uint32, count int32, xtype uint32, offset int, primCount int32) {
	gl.DrawElementsInstanced(mode, count, xtype, gl.PtrOffset(offset), primCount)
}

func (c *Context) TexImage2DMultisample(target uint32, samples int32, internalFormat uint32, width, height int32, fixedSampleLocations bool) {
	gl.TexImage2DMultisample(target, samples, internalFormat, width, height, fixedSampleLocations)
}

func (c *Context) TexImage3DMultisample(target uint32, samples int32, internalFormat uint32, width, height, depth int32, fixedSampleLocations bool) {
	gl.TexImage3DMultisample(target, samples, internalFormat, width, height, depth, fixedSampleLocations)
}

func (c *Context) VertexAttribDivisor(index uint32, divisor uint32) {
	gl.VertexAttribDivisor(index, divisor)
}

func (c *Context) BindFramebuffer(target, framebuffer uint32) {
	gl.BindFramebuffer(target, framebuffer)
}

func (c *Context) BindRenderbuffer(target, renderbuffer uint32) {
	gl.BindRenderbuffer(target, renderbuffer)
}

func (c *Context) BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter uint32) {
	gl.BlitFramebuffer(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1, mask, filter)
}

func (c *Context) CheckFramebufferStatus(target uint32) uint32 {
	return gl.CheckFramebufferStatus(target)
}

func (c *Context) DeleteFramebuffer(framebuffer uint32) {
	gl.DeleteFramebuffers(1, &framebuffer)
}

func (c *Context) DeleteRenderbuffer(renderbuffer uint32) {
	gl.DeleteRenderbuffers(1, &renderbuffer)
}

func (c *Context) FramebufferRenderbuffer(target, attachment, renderbufferTarget, renderbuffer uint32) {
	gl.FramebufferRenderbuffer(target, attachment, renderbufferTarget, renderbuffer)
}

func (c *Context) FramebufferTexture2D(target, attachment, texTarget, texture uint32, level int32) {
	gl.FramebufferTexture2D(target, attachment, texTarget, texture, level)
}

func (c *Context) FramebufferTextureLayer(target, attachment, texture uint32, level, layer int32) {
	gl.FramebufferTextureLayer(target, attachment, texture, level, layer)
}

func (c *Context) GenFramebuffer() uint32 {
	var id uint32
	gl.GenFramebuffers(1, &id)
	return id
}

func (c *Context) GenRenderbuffer() uint32 {
	var id uint32
	gl.GenRenderbuffers(1, &id)
	return id
}

func (c *Context) GenerateMipmap(target uint32) {
	gl.GenerateMipmap(target)
}

func (c *Context) RenderbufferStorage(target, internalFormat uint32, width, height int32) {
	gl.RenderbufferStorage(target, internalFormat, width, height)
}

func (c *Context) RenderbufferStorageMultisample(target uint32, samples int32, internalFormat uint32, width, height int32) {
	gl.RenderbufferStorageMultisample(target, samples, internalFormat, width, height)
}
