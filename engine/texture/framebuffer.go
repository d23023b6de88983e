package texture

import (
	"github.com/prism3d/prism-go/engine/resource"
)

// RenderBuffer is one framebuffer attachment: either a texture target,
// when Texture is non-nil, or an offscreen renderbuffer identified by the
// embedded handle. Face and layer select a cube face or array layer of a
// texture target; -1 means whole texture.
type RenderBuffer struct {
	resource.Handle

	tex    *Texture
	format Format
	face   int
	layer  int
}

func newRenderBuffer(tex *Texture, format Format) *RenderBuffer {
	rb := &RenderBuffer{
		tex:    tex,
		format: format,
		face:   -1,
		layer:  -1,
	}
	rb.SetUpdateNeeded()
	return rb
}

// Texture retrieves the texture target of the attachment.
//
// Returns:
//   - *Texture: the target, nil for offscreen renderbuffers
func (rb *RenderBuffer) Texture() *Texture {
	return rb.tex
}

// Format retrieves the pixel format the attachment stores.
//
// Returns:
//   - Format: the texture image format, or the renderbuffer storage format
func (rb *RenderBuffer) Format() Format {
	return rb.format
}

// Face retrieves the cube map face the attachment renders into.
//
// Returns:
//   - int: a face index 0..5, or -1 when no face was selected
func (rb *RenderBuffer) Face() int {
	return rb.face
}

// Layer retrieves the array layer the attachment renders into.
//
// Returns:
//   - int: the layer, or -1 for whole-texture attachment
func (rb *RenderBuffer) Layer() int {
	return rb.layer
}

// FrameBuffer is an offscreen render target: zero or more color
// attachments, an optional depth attachment, and a sample count. With
// several color attachments either one is selected through the target
// index or all are written at once in multi-target mode.
type FrameBuffer struct {
	resource.Handle

	name        string
	width       int
	height      int
	samples     int
	colorBufs   []*RenderBuffer
	depthBuf    *RenderBuffer
	multiTarget bool
	targetIndex int
}

// NewFrameBuffer creates a framebuffer shell; attachments are added
// separately.
//
// Parameters:
//   - width, height: target dimensions in pixels
//   - samples: multisample count, 1 for single-sampled
//
// Returns:
//   - *FrameBuffer: the new framebuffer, marked for driver-side creation
func NewFrameBuffer(width, height, samples int) *FrameBuffer {
	if samples < 1 {
		samples = 1
	}
	fb := &FrameBuffer{
		width:   width,
		height:  height,
		samples: samples,
	}
	fb.SetUpdateNeeded()
	return fb
}

// Name retrieves the debug name.
//
// Returns:
//   - string: the name set with SetName, or ""
func (fb *FrameBuffer) Name() string {
	return fb.name
}

// SetName assigns a debug name used in log output.
//
// Parameters:
//   - name: the name
func (fb *FrameBuffer) SetName(name string) {
	fb.name = name
}

// Width retrieves the target width in pixels.
//
// Returns:
//   - int: the width
func (fb *FrameBuffer) Width() int {
	return fb.width
}

// Height retrieves the target height in pixels.
//
// Returns:
//   - int: the height
func (fb *FrameBuffer) Height() int {
	return fb.height
}

// Samples retrieves the multisample count.
//
// Returns:
//   - int: 1 for single-sampled targets
func (fb *FrameBuffer) Samples() int {
	return fb.samples
}

// AddColorTexture appends a texture color attachment.
//
// Parameters:
//   - tex: the texture rendered into; its image becomes the storage
//
// Returns:
//   - *RenderBuffer: the new attachment
func (fb *FrameBuffer) AddColorTexture(tex *Texture) *RenderBuffer {
	var format Format
	if tex != nil && tex.Image() != nil {
		format = tex.Image().Format()
	}
	rb := newRenderBuffer(tex, format)
	fb.colorBufs = append(fb.colorBufs, rb)
	fb.SetUpdateNeeded()
	return rb
}

// AddColorTextureFace appends a color attachment targeting one cube map
// face.
//
// Parameters:
//   - tex: a cube map texture
//   - face: the face index 0..5
//
// Returns:
//   - *RenderBuffer: the new attachment
func (fb *FrameBuffer) AddColorTextureFace(tex *Texture, face int) *RenderBuffer {
	rb := fb.AddColorTexture(tex)
	rb.face = face
	return rb
}

// AddColorTextureLayer appends a color attachment targeting one array
// layer.
//
// Parameters:
//   - tex: an array texture
//   - layer: the layer index
//
// Returns:
//   - *RenderBuffer: the new attachment
func (fb *FrameBuffer) AddColorTextureLayer(tex *Texture, layer int) *RenderBuffer {
	rb := fb.AddColorTexture(tex)
	rb.layer = layer
	return rb
}

// AddColorBuffer appends an offscreen renderbuffer color attachment.
//
// Parameters:
//   - format: the storage format
//
// Returns:
//   - *RenderBuffer: the new attachment
func (fb *FrameBuffer) AddColorBuffer(format Format) *RenderBuffer {
	rb := newRenderBuffer(nil, format)
	fb.colorBufs = append(fb.colorBufs, rb)
	fb.SetUpdateNeeded()
	return rb
}

// SetDepthTexture assigns a depth texture attachment, replacing any
// previous depth attachment.
//
// Parameters:
//   - tex: a texture with a depth-format image
//
// Returns:
//   - *RenderBuffer: the new attachment
func (fb *FrameBuffer) SetDepthTexture(tex *Texture) *RenderBuffer {
	var format Format
	if tex != nil && tex.Image() != nil {
		format = tex.Image().Format()
	}
	fb.depthBuf = newRenderBuffer(tex, format)
	fb.SetUpdateNeeded()
	return fb.depthBuf
}

// SetDepthBuffer assigns an offscreen renderbuffer depth attachment,
// replacing any previous depth attachment.
//
// Parameters:
//   - format: a depth storage format
//
// Returns:
//   - *RenderBuffer: the new attachment
func (fb *FrameBuffer) SetDepthBuffer(format Format) *RenderBuffer {
	fb.depthBuf = newRenderBuffer(nil, format)
	fb.SetUpdateNeeded()
	return fb.depthBuf
}

// ColorBuffers retrieves the color attachments in slot order.
//
// Returns:
//   - []*RenderBuffer: the live attachment list; may be empty
func (fb *FrameBuffer) ColorBuffers() []*RenderBuffer {
	return fb.colorBufs
}

// ColorBuffer retrieves the first color attachment.
//
// Returns:
//   - *RenderBuffer: the attachment, nil when there are none
func (fb *FrameBuffer) ColorBuffer() *RenderBuffer {
	if len(fb.colorBufs) == 0 {
		return nil
	}
	return fb.colorBufs[0]
}

// DepthBuffer retrieves the depth attachment.
//
// Returns:
//   - *RenderBuffer: the attachment, nil when there is none
func (fb *FrameBuffer) DepthBuffer() *RenderBuffer {
	return fb.depthBuf
}

// MultiTarget reports whether drawing writes all color attachments at
// once.
//
// Returns:
//   - bool: true when multi-target rendering is enabled
func (fb *FrameBuffer) MultiTarget() bool {
	return fb.multiTarget
}

// SetMultiTarget toggles writing to all color attachments at once, which
// requires hardware MRT support when more than one attachment exists.
//
// Parameters:
//   - multi: true to write all attachments
func (fb *FrameBuffer) SetMultiTarget(multi bool) {
	fb.multiTarget = multi
}

// TargetIndex retrieves the color attachment drawn into when
// multi-target mode is off.
//
// Returns:
//   - int: the attachment slot
func (fb *FrameBuffer) TargetIndex() int {
	return fb.targetIndex
}

// SetTargetIndex selects the color attachment drawn into when
// multi-target mode is off.
//
// Parameters:
//   - index: the attachment slot
func (fb *FrameBuffer) SetTargetIndex(index int) {
	fb.targetIndex = index
}

// Reset forgets the driver objects behind the framebuffer and all of its
// attachments. Used after deletion and context loss.
func (fb *FrameBuffer) Reset() {
	fb.Handle.Reset()
	for _, rb := range fb.colorBufs {
		rb.Handle.Reset()
	}
	if fb.depthBuf != nil {
		fb.depthBuf.Handle.Reset()
	}
}
