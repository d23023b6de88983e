package renderer

import (
	"github.com/prism3d/prism-go/common"
	"github.com/prism3d/prism-go/engine/mesh"
	"github.com/prism3d/prism-go/engine/renderer/shader"
	"github.com/prism3d/prism-go/engine/texture"
)

// Renderer is the hardware-facing half of the engine: it owns one graphics
// context, tracks the state and resources bound to it, and turns meshes,
// shaders, textures, and framebuffers into driver calls.
//
// Implementations keep a shadow copy of the context state and skip every
// driver call whose effect is already in place, so callers hand over full
// descriptions (a complete RenderState, a whole Mesh) without worrying
// about redundant work. All methods must be called from the thread that
// owns the context; the interface is not safe for concurrent use.
type Renderer interface {
	// Initialize queries the context's version, extensions, and limits,
	// derives the capability set, and applies one-time context defaults.
	// Must be called once, on the context thread, before any other method.
	//
	// Returns:
	//   - error: an error if the context misses the minimum feature level
	Initialize() error

	// Capabilities retrieves the feature set detected at initialization.
	//
	// Returns:
	//   - CapabilitySet: the detected capabilities; read-only after Initialize
	Capabilities() CapabilitySet

	// Limits retrieves the numeric hardware limits queried at
	// initialization.
	//
	// Returns:
	//   - map[Limit]int: the live limit table; read-only after Initialize
	Limits() map[Limit]int

	// Statistics retrieves the per-frame counter block. Callers snapshot it
	// for display and the renderer resets the per-frame counters in
	// PostFrame.
	//
	// Returns:
	//   - *Statistics: the live counters, owned by the renderer
	Statistics() *Statistics

	// InvalidateState forgets every assumption about the context's current
	// state, forcing the next use of each state group to re-emit it. Call
	// after foreign code has touched the context.
	InvalidateState()

	// ResetObjects marks every GPU object created by this renderer as dead
	// and in need of re-upload, without touching the driver. Call after a
	// context loss, when the old object names are gone anyway.
	ResetObjects()

	// Cleanup deletes every GPU object created by this renderer and resets
	// the shadow state. The renderer stays usable; objects re-upload on
	// next use.
	Cleanup()

	// Dispose schedules a GPU-backed object for deletion in the next
	// PostFrame, instead of the immediate Delete* calls. Use it when the
	// object may still be referenced by work submitted this frame.
	// Accepted kinds: shaders, shader sources, buffer objects, vertex
	// buffers, images, and framebuffers.
	//
	// Parameters:
	//   - obj: the object to delete at frame end
	Dispose(obj any)

	// PostFrame runs end-of-frame housekeeping: deletes disposed objects
	// and advances the statistics frame.
	PostFrame()

	// ApplyRenderState diffs the given pipeline state against the shadow
	// copy and emits driver calls only for the groups that differ.
	//
	// Parameters:
	//   - rs: the complete desired pipeline state
	//
	// Returns:
	//   - error: an error if the state names a mode the hardware lacks
	ApplyRenderState(rs *RenderState) error

	// SetViewport assigns the viewport rectangle, skipping the driver call
	// when the rectangle is unchanged.
	//
	// Parameters:
	//   - x, y: lower-left corner in pixels
	//   - width, height: extent in pixels
	SetViewport(x, y, width, height int)

	// SetClipRect enables scissor testing with the given rectangle,
	// skipping the driver calls when already in effect.
	//
	// Parameters:
	//   - x, y: lower-left corner in pixels
	//   - width, height: extent in pixels
	SetClipRect(x, y, width, height int)

	// ClearClipRect disables scissor testing if it was enabled.
	ClearClipRect()

	// SetBackgroundColor assigns the color buffers are cleared to,
	// skipping the driver call when unchanged.
	//
	// Parameters:
	//   - c: the clear color
	SetBackgroundColor(c common.Color)

	// ClearBuffers clears the selected buffers of the bound framebuffer.
	// Clearing forces the color and depth write masks on first, since
	// masked-off buffers ignore clears.
	//
	// Parameters:
	//   - color, depth, stencil: which buffers to clear
	ClearBuffers(color, depth, stencil bool)

	// SetDepthRange assigns the depth range mapping. Always emitted; the
	// call is rare and cheap.
	//
	// Parameters:
	//   - near, far: the window-space depth bounds
	SetDepthRange(near, far float32)

	// SetAlphaToCoverage toggles alpha-to-coverage. Silently ignored on
	// hardware without multisampling.
	//
	// Parameters:
	//   - enabled: true to derive coverage from alpha
	SetAlphaToCoverage(enabled bool)

	// SetDefaultAnisotropicFilter assigns the anisotropy level used by
	// textures that leave their own level at 0.
	//
	// Parameters:
	//   - level: the filtering level, at least 1
	//
	// Returns:
	//   - error: an error if level is less than 1
	SetDefaultAnisotropicFilter(level int) error

	// DefaultAnisotropicFilter retrieves the current default anisotropy
	// level.
	//
	// Returns:
	//   - int: the level textures with anisotropy 0 resolve to
	DefaultAnisotropicFilter() int

	// SetMainFrameBufferSrgb toggles sRGB encoding of the default
	// framebuffer. Logged and ignored on hardware without sRGB support.
	//
	// Parameters:
	//   - enabled: true to gamma-encode on write
	SetMainFrameBufferSrgb(enabled bool)

	// SetLinearizeSrgbImages selects whether images tagged as sRGB upload
	// through sRGB internal formats, so sampling linearizes in hardware.
	// Takes effect for textures uploaded afterwards.
	//
	// Parameters:
	//   - enabled: true to linearize tagged images on sample
	SetLinearizeSrgbImages(enabled bool)

	// SetShader compiles and links the shader if needed, binds its program
	// if not already bound, and flushes changed uniform values.
	//
	// Parameters:
	//   - sh: the shader to make current; must have sources attached
	//
	// Returns:
	//   - error: a compile, link, or argument error
	SetShader(sh *shader.Shader) error

	// DeleteShader deletes the shader's program and source objects from the
	// driver and forgets its locations.
	//
	// Parameters:
	//   - sh: the shader to delete
	DeleteShader(sh *shader.Shader)

	// DeleteShaderSource deletes a single compiled source object, for
	// sources shared across shaders.
	//
	// Parameters:
	//   - src: the source to delete
	DeleteShaderSource(src *shader.Source)

	// SetFrameBuffer binds the given framebuffer as the render target,
	// creating or updating its driver objects first. Passing nil binds the
	// main framebuffer (or the main override, when one is set). Binding a
	// framebuffer resets the viewport to cover it; binding the main
	// framebuffer leaves the viewport alone. Render targets sampled with a
	// mip filter get their mip chain regenerated when rendering switches
	// away from them.
	//
	// Parameters:
	//   - fb: the target, or nil for the main framebuffer
	//
	// Returns:
	//   - error: an error if the framebuffer is unsupported or incomplete
	SetFrameBuffer(fb *texture.FrameBuffer) error

	// SetMainFrameBufferOverride substitutes a framebuffer for the default
	// one: subsequent SetFrameBuffer(nil) calls bind it instead. Pass nil
	// to restore the real default.
	//
	// Parameters:
	//   - fb: the stand-in framebuffer, or nil
	SetMainFrameBufferOverride(fb *texture.FrameBuffer)

	// ReadFrameBuffer reads back the color pixels of a framebuffer into
	// dst as tightly packed RGBA bytes. Reads the framebuffer's full size,
	// or the current viewport when fb is nil.
	//
	// Parameters:
	//   - fb: the source, or nil for the main framebuffer
	//   - dst: destination for width*height*4 bytes
	//
	// Returns:
	//   - error: an error if dst is too small or readback is unsupported
	ReadFrameBuffer(fb *texture.FrameBuffer, dst []byte) error

	// ReadFrameBufferWithFormat reads back a framebuffer's pixels in the
	// given format instead of the RGBA default.
	//
	// Parameters:
	//   - fb: the source, or nil for the main framebuffer
	//   - dst: destination for width*height*PixelBytes bytes
	//   - format: the texture format to read as
	//
	// Returns:
	//   - error: an error if dst is too small or the format cannot be read
	ReadFrameBufferWithFormat(fb *texture.FrameBuffer, dst []byte, format texture.Format) error

	// CopyFrameBuffer blits color (and optionally depth) from one
	// framebuffer to another, resolving multisampled sources.
	//
	// Parameters:
	//   - src: the source, or nil for the main framebuffer
	//   - dst: the destination, or nil for the main framebuffer
	//   - copyDepth: true to also blit the depth buffer
	//
	// Returns:
	//   - error: an error if the hardware cannot blit
	CopyFrameBuffer(src, dst *texture.FrameBuffer, copyDepth bool) error

	// DeleteFrameBuffer deletes the framebuffer and its renderbuffer
	// attachments from the driver. Attached textures are deleted
	// separately through DeleteImage.
	//
	// Parameters:
	//   - fb: the framebuffer to delete
	DeleteFrameBuffer(fb *texture.FrameBuffer)

	// SetTexture binds a texture to a unit, uploading the image and
	// re-applying changed sampler parameters first. Binds already in
	// effect emit nothing.
	//
	// Parameters:
	//   - unit: the texture unit
	//   - tex: the texture to bind
	//
	// Returns:
	//   - error: an error if the unit or image is unusable on this hardware
	SetTexture(unit int, tex *texture.Texture) error

	// ModifyTexture overwrites a rectangle of a previously uploaded 2D
	// texture with the pixels of another image.
	//
	// Parameters:
	//   - tex: the destination texture
	//   - pixels: the source image; its full extent is written
	//   - x, y: destination offset in pixels
	//
	// Returns:
	//   - error: an error if the formats or bounds do not line up
	ModifyTexture(tex *texture.Texture, pixels *texture.Image, x, y int) error

	// DeleteImage deletes the driver texture behind an image and resets the
	// image's handle.
	//
	// Parameters:
	//   - img: the image to delete
	DeleteImage(img *texture.Image)

	// UpdateBufferData creates or updates the driver buffer behind a
	// vertex buffer, uploading only the dirty byte ranges when the buffer
	// already exists at the right size.
	//
	// Parameters:
	//   - vb: the vertex or index buffer to flush
	//
	// Returns:
	//   - error: an error for CPU-only buffers
	UpdateBufferData(vb *mesh.VertexBuffer) error

	// UpdateBufferObject creates or updates the driver buffer behind a
	// uniform or shader storage buffer and binds it to its binding point.
	//
	// Parameters:
	//   - bo: the buffer object to flush
	//
	// Returns:
	//   - error: an error if the hardware lacks the block type
	UpdateBufferObject(bo *shader.BufferObject) error

	// DeleteBuffer deletes the driver buffer behind a vertex buffer and
	// resets its handle.
	//
	// Parameters:
	//   - vb: the buffer to delete
	DeleteBuffer(vb *mesh.VertexBuffer)

	// DeleteBufferObject deletes the driver buffer behind a uniform or
	// storage buffer and resets its handle.
	//
	// Parameters:
	//   - bo: the buffer object to delete
	DeleteBufferObject(bo *shader.BufferObject)

	// RenderMesh draws a mesh with the bound shader and state: flushes
	// dirty vertex buffers, wires enabled attribute arrays, and issues the
	// draw call, instanced when count exceeds 1 or the mesh carries
	// per-instance data. Meshes with nothing to draw are skipped.
	//
	// Parameters:
	//   - m: the mesh to draw
	//   - lod: index into the mesh's LOD index buffers; 0 without LOD
	//   - count: instance count; 1 for plain draws
	//
	// Returns:
	//   - error: an argument or capability error
	RenderMesh(m *mesh.Mesh, lod, count int) error
}
