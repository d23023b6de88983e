package opengl

import (
	"fmt"

	"github.com/prism3d/prism-go/engine/renderer"
	"github.com/prism3d/prism-go/engine/texture"
)

// attachmentSlot resolves the GL attachment point for a renderbuffer. A
// negative index marks the depth attachment, whose point depends on
// whether the format carries stencil bits.
func attachmentSlot(rb *texture.RenderBuffer, index int) (uint32, error) {
	if index < 0 {
		if rb.Format() == texture.FormatDepth24Stencil8 {
			return DEPTH_STENCIL_ATTACHMENT, nil
		}
		return DEPTH_ATTACHMENT, nil
	}
	if index >= 16 {
		return 0, fmt.Errorf("%w: color attachment index %d outside the supported range [0,16)",
			renderer.ErrIllegalArgument, index)
	}
	return COLOR_ATTACHMENT0 + uint32(index), nil
}

func (r *glRenderer) bindFrameBuffer(id uint32, fb *texture.FrameBuffer) {
	if r.ctx.boundFBO != id {
		r.glfbo.BindFramebuffer(FRAMEBUFFER, id)
		r.ctx.boundFBO = id
		r.stats.OnFrameBufferUse(true)
	} else {
		r.stats.OnFrameBufferUse(false)
	}
	r.ctx.boundFrameBuffer = fb
}

func (r *glRenderer) SetFrameBuffer(fb *texture.FrameBuffer) error {
	if fb == nil && r.mainFBOverride != nil {
		fb = r.mainFBOverride
	}
	if r.ctx.boundFrameBuffer == fb && (fb == nil || !fb.UpdateNeeded()) {
		return nil
	}
	if r.glfbo == nil || !r.caps.Contains(renderer.CapFrameBuffer) {
		return fmt.Errorf("%w: framebuffer objects not supported", renderer.ErrUnsupportedHardware)
	}

	// Render targets sampled with a mip filter need their chain redone
	// after being drawn into; do it when rendering switches away.
	if prev := r.ctx.boundFrameBuffer; prev != nil && prev != fb {
		for _, rb := range prev.ColorBuffers() {
			tex := rb.Texture()
			if tex == nil || !tex.MinFilter().UsesMips() {
				continue
			}
			img := tex.Image()
			if img == nil || img.ID() == 0 {
				continue
			}
			if err := r.SetTexture(0, tex); err != nil {
				return err
			}
			target, err := r.convertTextureType(tex.Type(), img.Samples(), rb.Face())
			if err != nil {
				return err
			}
			r.glfbo.GenerateMipmap(target)
			img.SetMipsGenerated(true)
		}
	}

	if fb == nil {
		r.bindFrameBuffer(r.defaultFBO, nil)
		return r.setReadDrawBuffers(nil)
	}

	if len(fb.ColorBuffers()) == 0 && fb.DepthBuffer() == nil {
		return fmt.Errorf("%w: framebuffer %q has no attachments", renderer.ErrIllegalArgument, fb.Name())
	}
	if fb.UpdateNeeded() {
		if err := r.updateFrameBuffer(fb); err != nil {
			return err
		}
	} else {
		r.bindFrameBuffer(fb.ID(), fb)
		if err := r.setReadDrawBuffers(fb); err != nil {
			return err
		}
		if r.validation {
			if err := r.checkFrameBufferError(fb); err != nil {
				return err
			}
		}
	}
	r.SetViewport(0, 0, fb.Width(), fb.Height())
	return nil
}

func (r *glRenderer) SetMainFrameBufferOverride(fb *texture.FrameBuffer) {
	r.mainFBOverride = fb
}

// updateFrameBuffer (re)creates the driver FBO and walks every attachment,
// leaving the framebuffer bound with its read/draw buffers selected.
func (r *glRenderer) updateFrameBuffer(fb *texture.FrameBuffer) error {
	if fb.ID() == 0 {
		id := r.glfbo.GenFramebuffer()
		if id == 0 {
			return fmt.Errorf("%w: driver returned no framebuffer object for %q",
				renderer.ErrInvalidState, fb.Name())
		}
		fb.SetID(id)
		r.objects.register(fb)
		r.stats.OnNewFrameBuffer()
	}
	r.bindFrameBuffer(fb.ID(), fb)

	if depth := fb.DepthBuffer(); depth != nil {
		if err := r.updateFrameBufferAttachment(fb, depth, -1); err != nil {
			return err
		}
	}
	for i, rb := range fb.ColorBuffers() {
		if err := r.updateFrameBufferAttachment(fb, rb, i); err != nil {
			return err
		}
	}
	if err := r.setReadDrawBuffers(fb); err != nil {
		return err
	}
	if err := r.checkFrameBufferError(fb); err != nil {
		return err
	}
	fb.ClearUpdateNeeded()
	return nil
}

func (r *glRenderer) updateFrameBufferAttachment(fb *texture.FrameBuffer, rb *texture.RenderBuffer, index int) error {
	slot, err := attachmentSlot(rb, index)
	if err != nil {
		return err
	}
	if rb.Texture() != nil {
		return r.updateRenderTexture(fb, rb, slot)
	}
	needAttach := rb.ID() == 0
	if err := r.updateRenderBuffer(fb, rb); err != nil {
		return err
	}
	if needAttach {
		r.glfbo.FramebufferRenderbuffer(FRAMEBUFFER, slot, RENDERBUFFER, rb.ID())
	}
	return nil
}

// updateRenderTexture uploads the attachment's texture if needed and
// attaches its image, honoring cube-face and array-layer selection.
func (r *glRenderer) updateRenderTexture(fb *texture.FrameBuffer, rb *texture.RenderBuffer, slot uint32) error {
	tex := rb.Texture()
	img := tex.Image()
	if img == nil {
		return fmt.Errorf("%w: attachment texture %q has no image", renderer.ErrInvalidState, tex.Name())
	}
	if img.Samples() != fb.Samples() {
		img.SetSamples(fb.Samples())
	}
	if img.UpdateNeeded() {
		if err := r.checkNonPowerOfTwo(tex); err != nil {
			return err
		}
		if err := r.updateTexImageData(img, tex.Type(), 0); err != nil {
			return err
		}
		if err := r.setupTextureParams(0, tex); err != nil {
			return err
		}
	}

	if rb.Layer() < 0 {
		target, err := r.convertTextureType(tex.Type(), img.Samples(), rb.Face())
		if err != nil {
			return err
		}
		r.glfbo.FramebufferTexture2D(FRAMEBUFFER, slot, target, img.ID(), 0)
	} else {
		r.glfbo.FramebufferTextureLayer(FRAMEBUFFER, slot, img.ID(), 0, int32(rb.Layer()))
	}
	return nil
}

// updateRenderBuffer (re)creates the offscreen renderbuffer behind an
// attachment and allocates its storage at the framebuffer's size.
func (r *glRenderer) updateRenderBuffer(fb *texture.FrameBuffer, rb *texture.RenderBuffer) error {
	if rb.ID() == 0 {
		id := r.glfbo.GenRenderbuffer()
		if id == 0 {
			return fmt.Errorf("%w: driver returned no renderbuffer object", renderer.ErrInvalidState)
		}
		rb.SetID(id)
		r.objects.register(rb)
	}
	if r.ctx.boundRB != rb.ID() {
		r.glfbo.BindRenderbuffer(RENDERBUFFER, rb.ID())
		r.ctx.boundRB = rb.ID()
	}

	if limit := r.limits[renderer.LimitRenderBufferSize]; fb.Width() > limit || fb.Height() > limit {
		return fmt.Errorf("%w: framebuffer %dx%d exceeds the maximum renderbuffer size %d",
			renderer.ErrUnsupportedHardware, fb.Width(), fb.Height(), limit)
	}
	info, err := r.convertTextureFormat(rb.Format(), texture.SpaceLinear)
	if err != nil {
		return err
	}

	if fb.Samples() > 1 {
		if !r.caps.Contains(renderer.CapFrameBufferMultisample) {
			return fmt.Errorf("%w: multisampled framebuffers not supported", renderer.ErrUnsupportedHardware)
		}
		samples := fb.Samples()
		if limit := r.limits[renderer.LimitFrameBufferSamples]; limit > 0 && samples > limit {
			samples = limit
		}
		r.glfbo.RenderbufferStorageMultisample(RENDERBUFFER, int32(samples), info.internal,
			int32(fb.Width()), int32(fb.Height()))
	} else {
		r.glfbo.RenderbufferStorage(RENDERBUFFER, info.internal, int32(fb.Width()), int32(fb.Height()))
	}
	return nil
}

// setReadDrawBuffers selects which color attachments rendering writes and
// reads. Draw/read buffer selection is per-framebuffer driver state; the
// scalar shadow works because every framebuffer's selection is set right
// here whenever it changes.
func (r *glRenderer) setReadDrawBuffers(fb *texture.FrameBuffer) error {
	if r.gl2 == nil {
		return nil
	}
	if fb == nil {
		if r.ctx.boundDrawBuf != drawBufInitial {
			r.gl2.DrawBuffer(r.ctx.initialDrawBuf)
			r.ctx.boundDrawBuf = drawBufInitial
		}
		if r.ctx.boundReadBuf != drawBufInitial {
			r.gl2.ReadBuffer(r.ctx.initialReadBuf)
			r.ctx.boundReadBuf = drawBufInitial
		}
		return nil
	}

	bufs := fb.ColorBuffers()
	if len(bufs) == 0 {
		// Depth-only rendering must not scan out to a color buffer.
		if r.ctx.boundDrawBuf != drawBufNone {
			r.gl2.DrawBuffer(NONE)
			r.ctx.boundDrawBuf = drawBufNone
		}
		if r.ctx.boundReadBuf != drawBufNone {
			r.gl2.ReadBuffer(NONE)
			r.ctx.boundReadBuf = drawBufNone
		}
		return nil
	}

	if limit := r.limits[renderer.LimitFrameBufferAttachments]; len(bufs) > limit {
		return fmt.Errorf("%w: framebuffer %q carries %d color attachments, hardware supports %d",
			renderer.ErrUnsupportedHardware, fb.Name(), len(bufs), limit)
	}
	if fb.MultiTarget() {
		if r.glext == nil || !r.caps.Contains(renderer.CapFrameBufferMRT) {
			return fmt.Errorf("%w: multiple render targets not supported", renderer.ErrUnsupportedHardware)
		}
		if limit := r.limits[renderer.LimitFrameBufferMRTs]; len(bufs) > limit {
			return fmt.Errorf("%w: framebuffer %q writes %d targets at once, hardware supports %d",
				renderer.ErrUnsupportedHardware, fb.Name(), len(bufs), limit)
		}
		if r.ctx.boundDrawBuf != drawBufMRT+len(bufs) {
			attachments := make([]uint32, len(bufs))
			for i := range attachments {
				attachments[i] = COLOR_ATTACHMENT0 + uint32(i)
			}
			r.glext.DrawBuffers(attachments)
			r.ctx.boundDrawBuf = drawBufMRT + len(bufs)
		}
	} else {
		index := fb.TargetIndex()
		if index < 0 || index >= len(bufs) {
			return fmt.Errorf("%w: target index %d selects no color attachment of framebuffer %q",
				renderer.ErrIllegalArgument, index, fb.Name())
		}
		if r.ctx.boundDrawBuf != index {
			r.gl2.DrawBuffer(COLOR_ATTACHMENT0 + uint32(index))
			r.ctx.boundDrawBuf = index
		}
	}
	return nil
}

var frameBufferStatusMessages = map[uint32]string{
	FRAMEBUFFER_UNDEFINED:                     "the default framebuffer does not exist",
	FRAMEBUFFER_INCOMPLETE_ATTACHMENT:         "an attachment is incomplete",
	FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT: "no image is attached",
	FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER:        "a draw buffer selects a missing attachment",
	FRAMEBUFFER_INCOMPLETE_READ_BUFFER:        "the read buffer selects a missing attachment",
	FRAMEBUFFER_UNSUPPORTED:                   "the attachment format combination is not supported",
	FRAMEBUFFER_INCOMPLETE_MULTISAMPLE:        "attachments disagree on sample counts",
	FRAMEBUFFER_INCOMPLETE_LAYER_TARGETS:      "attachments mix layered and unlayered targets",
}

func (r *glRenderer) checkFrameBufferError(fb *texture.FrameBuffer) error {
	status := r.glfbo.CheckFramebufferStatus(FRAMEBUFFER)
	if status == FRAMEBUFFER_COMPLETE {
		return nil
	}
	if msg, ok := frameBufferStatusMessages[status]; ok {
		return fmt.Errorf("%w: framebuffer %q incomplete: %s", renderer.ErrInvalidState, fb.Name(), msg)
	}
	return fmt.Errorf("%w: framebuffer %q incomplete: unexpected status 0x%04X",
		renderer.ErrInvalidState, fb.Name(), status)
}

func (r *glRenderer) ReadFrameBuffer(fb *texture.FrameBuffer, dst []byte) error {
	return r.readFrameBufferPixels(fb, dst, texture.FormatRGBA8)
}

func (r *glRenderer) ReadFrameBufferWithFormat(fb *texture.FrameBuffer, dst []byte, format texture.Format) error {
	return r.readFrameBufferPixels(fb, dst, format)
}

func (r *glRenderer) readFrameBufferPixels(fb *texture.FrameBuffer, dst []byte, format texture.Format) error {
	var x, y, w, h int
	if fb != nil {
		if fb.Samples() > 1 {
			return fmt.Errorf("%w: framebuffer %q is multisampled, resolve it through CopyFrameBuffer first",
				renderer.ErrIllegalArgument, fb.Name())
		}
		if fb.ColorBuffer() == nil {
			return fmt.Errorf("%w: framebuffer %q has no color attachment to read",
				renderer.ErrIllegalArgument, fb.Name())
		}
		w, h = fb.Width(), fb.Height()
	} else {
		x, y, w, h = r.ctx.viewX, r.ctx.viewY, r.ctx.viewWidth, r.ctx.viewHeight
	}

	pixelBytes := format.PixelBytes()
	if pixelBytes == 0 {
		return fmt.Errorf("%w: format %v has no packed pixel size", renderer.ErrUnsupportedOperation, format)
	}
	if need := w * h * pixelBytes; len(dst) < need {
		return fmt.Errorf("%w: destination holds %d bytes, the %dx%d %v readback needs %d",
			renderer.ErrIllegalArgument, len(dst), w, h, format, need)
	}

	if err := r.SetFrameBuffer(fb); err != nil {
		return err
	}
	if fb != nil && r.gl2 != nil && r.ctx.boundReadBuf != 0 {
		r.gl2.ReadBuffer(COLOR_ATTACHMENT0)
		r.ctx.boundReadBuf = 0
	}
	info, err := r.convertTextureFormat(format, texture.SpaceLinear)
	if err != nil {
		return err
	}
	r.gl.ReadPixels(int32(x), int32(y), int32(w), int32(h), info.format, info.xtype, dst)
	return nil
}

func (r *glRenderer) CopyFrameBuffer(src, dst *texture.FrameBuffer, copyDepth bool) error {
	if r.glfbo == nil || !r.caps.Contains(renderer.CapFrameBufferBlit) {
		return fmt.Errorf("%w: framebuffer blitting not supported", renderer.ErrUnsupportedHardware)
	}
	if r.mainFBOverride != nil {
		if src == nil {
			src = r.mainFBOverride
		}
		if dst == nil {
			dst = r.mainFBOverride
		}
	}
	if src != nil && dst != nil && src.Samples() > 1 && dst.Samples() > 1 && src.Samples() != dst.Samples() {
		return fmt.Errorf("%w: multisampled blit needs equal sample counts, source has %d and destination %d",
			renderer.ErrIllegalArgument, src.Samples(), dst.Samples())
	}

	prevFBO := r.ctx.boundFBO
	prevFB := r.ctx.boundFrameBuffer
	if src != nil && src.UpdateNeeded() {
		if err := r.updateFrameBuffer(src); err != nil {
			return err
		}
	}
	if dst != nil && dst.UpdateNeeded() {
		if err := r.updateFrameBuffer(dst); err != nil {
			return err
		}
	}

	var srcW, srcH, dstW, dstH int
	if src == nil {
		r.glfbo.BindFramebuffer(READ_FRAMEBUFFER, r.defaultFBO)
		srcW, srcH = r.ctx.viewWidth, r.ctx.viewHeight
	} else {
		r.glfbo.BindFramebuffer(READ_FRAMEBUFFER, src.ID())
		srcW, srcH = src.Width(), src.Height()
	}
	if dst == nil {
		r.glfbo.BindFramebuffer(DRAW_FRAMEBUFFER, r.defaultFBO)
		dstW, dstH = r.ctx.viewWidth, r.ctx.viewHeight
	} else {
		r.glfbo.BindFramebuffer(DRAW_FRAMEBUFFER, dst.ID())
		dstW, dstH = dst.Width(), dst.Height()
	}

	mask := uint32(COLOR_BUFFER_BIT)
	if copyDepth {
		mask |= DEPTH_BUFFER_BIT
	}
	r.glfbo.BlitFramebuffer(0, 0, int32(srcW), int32(srcH), 0, 0, int32(dstW), int32(dstH), mask, NEAREST)

	// Rebinding the plain target replaces both scratch bindings.
	r.glfbo.BindFramebuffer(FRAMEBUFFER, prevFBO)
	r.ctx.boundFBO = prevFBO
	r.ctx.boundFrameBuffer = prevFB
	return nil
}

func (r *glRenderer) DeleteFrameBuffer(fb *texture.FrameBuffer) {
	if fb.ID() == 0 {
		renderer.Logger().Debug("framebuffer was never created, nothing to delete", "name", fb.Name())
		return
	}
	if r.ctx.boundFBO == fb.ID() {
		r.bindFrameBuffer(r.defaultFBO, nil)
	}
	for _, rb := range fb.ColorBuffers() {
		r.deleteRenderBuffer(rb)
	}
	if depth := fb.DepthBuffer(); depth != nil {
		r.deleteRenderBuffer(depth)
	}
	r.glfbo.DeleteFramebuffer(fb.ID())
	r.objects.unregister(fb)
	r.stats.OnDeleteFrameBuffer()
	fb.Reset()
}

// deleteRenderBuffer drops the driver renderbuffer behind an attachment.
// Texture attachments carry no renderbuffer id and pass through untouched.
func (r *glRenderer) deleteRenderBuffer(rb *texture.RenderBuffer) {
	if rb.ID() == 0 {
		return
	}
	r.glfbo.DeleteRenderbuffer(rb.ID())
	if r.ctx.boundRB == rb.ID() {
		r.ctx.boundRB = 0
	}
	r.objects.unregister(rb)
	rb.Handle.Reset()
}
