package opengl

import (
	"fmt"

	"github.com/prism3d/prism-go/engine/renderer"
	"github.com/prism3d/prism-go/engine/texture"
)

// glTextureFormat is one row of the format table: the internal format plus
// the unpack format/type pair describing uploaded pixel data.
type glTextureFormat struct {
	internal uint32
	format   uint32
	xtype    uint32
}

var textureFormats = [...]glTextureFormat{
	texture.FormatAlpha8:          {ALPHA8, ALPHA, UNSIGNED_BYTE},
	texture.FormatLuminance8:      {LUMINANCE8, LUMINANCE, UNSIGNED_BYTE},
	texture.FormatR8:              {R8, RED, UNSIGNED_BYTE},
	texture.FormatRG8:             {RG8, RG, UNSIGNED_BYTE},
	texture.FormatRGB8:            {RGB8, RGB, UNSIGNED_BYTE},
	texture.FormatRGBA8:           {RGBA8, RGBA, UNSIGNED_BYTE},
	texture.FormatSRGB8:           {SRGB8, RGB, UNSIGNED_BYTE},
	texture.FormatSRGB8A8:         {SRGB8_ALPHA8, RGBA, UNSIGNED_BYTE},
	texture.FormatRGB565:          {RGB565, RGB, UNSIGNED_SHORT_5_6_5},
	texture.FormatRGB5A1:          {RGB5_A1, RGBA, UNSIGNED_SHORT_5_5_5_1},
	texture.FormatR16F:            {R16F, RED, HALF_FLOAT},
	texture.FormatR32F:            {R32F, RED, FLOAT},
	texture.FormatRG16F:           {RG16F, RG, HALF_FLOAT},
	texture.FormatRG32F:           {RG32F, RG, FLOAT},
	texture.FormatRGB16F:          {RGB16F, RGB, HALF_FLOAT},
	texture.FormatRGB32F:          {RGB32F, RGB, FLOAT},
	texture.FormatRGBA16F:         {RGBA16F, RGBA, HALF_FLOAT},
	texture.FormatRGBA32F:         {RGBA32F, RGBA, FLOAT},
	texture.FormatDepth16:         {DEPTH_COMPONENT16, DEPTH_COMPONENT, UNSIGNED_SHORT},
	texture.FormatDepth24:         {DEPTH_COMPONENT24, DEPTH_COMPONENT, UNSIGNED_INT},
	texture.FormatDepth32F:        {DEPTH_COMPONENT32F, DEPTH_COMPONENT, FLOAT},
	texture.FormatDepth24Stencil8: {DEPTH24_STENCIL8, DEPTH_STENCIL, UNSIGNED_INT_24_8},
}

// srgbInternalFormats swaps in the sRGB internal format for color images
// tagged as sRGB when linearization is enabled.
var srgbInternalFormats = map[texture.Format]uint32{
	texture.FormatRGB8:  SRGB8,
	texture.FormatRGBA8: SRGB8_ALPHA8,
}

func (r *glRenderer) convertTextureFormat(f texture.Format, space texture.ColorSpace) (glTextureFormat, error) {
	if f < 0 || int(f) >= len(textureFormats) {
		return glTextureFormat{}, fmt.Errorf("%w: unrecognized image format %d", renderer.ErrUnsupportedOperation, f)
	}
	if f.IsDepth() && !r.caps.Contains(renderer.CapDepthTexture) {
		return glTextureFormat{}, fmt.Errorf("%w: depth texture format %v not supported", renderer.ErrUnsupportedHardware, f)
	}
	if f.IsFloat() && !f.IsDepth() && !r.caps.Contains(renderer.CapFloatTexture) {
		return glTextureFormat{}, fmt.Errorf("%w: float texture format %v not supported", renderer.ErrUnsupportedHardware, f)
	}

	info := textureFormats[f]
	switch f {
	case texture.FormatSRGB8, texture.FormatSRGB8A8:
		if !r.caps.Contains(renderer.CapSrgb) {
			return glTextureFormat{}, fmt.Errorf("%w: sRGB texture formats not supported", renderer.ErrUnsupportedHardware)
		}
	default:
		if r.linearizeSrgb && space == texture.SpaceSRGB && r.caps.Contains(renderer.CapSrgb) {
			if internal, ok := srgbInternalFormats[f]; ok {
				info.internal = internal
			}
		}
	}
	return info, nil
}

// convertTextureType resolves the GL bind target for a texture type. A
// non-negative face selects one cube map face target instead of the cube
// map itself.
func (r *glRenderer) convertTextureType(t texture.Type, samples, face int) (uint32, error) {
	if samples > 1 && !r.caps.Contains(renderer.CapTextureMultisample) {
		return 0, fmt.Errorf("%w: multisample textures not supported", renderer.ErrUnsupportedHardware)
	}
	switch t {
	case texture.Tex2D:
		if samples > 1 {
			return TEXTURE_2D_MULTISAMPLE, nil
		}
		return TEXTURE_2D, nil
	case texture.TexArray:
		if r.gl2 == nil || !r.caps.Contains(renderer.CapTextureArray) {
			return 0, fmt.Errorf("%w: array textures not supported", renderer.ErrUnsupportedHardware)
		}
		if samples > 1 {
			return TEXTURE_2D_MULTISAMPLE_ARRAY, nil
		}
		return TEXTURE_2D_ARRAY, nil
	case texture.Tex3D:
		if r.gl2 == nil || !r.caps.Contains(renderer.CapTexture3D) {
			return 0, fmt.Errorf("%w: 3D textures not supported", renderer.ErrUnsupportedHardware)
		}
		return TEXTURE_3D, nil
	case texture.TexCubeMap:
		if face >= 0 {
			return TEXTURE_CUBE_MAP_POSITIVE_X + uint32(face), nil
		}
		return TEXTURE_CUBE_MAP, nil
	default:
		return 0, fmt.Errorf("%w: unrecognized texture type %d", renderer.ErrUnsupportedOperation, t)
	}
}

var magFilterValues = [...]int32{
	texture.MagNearest: NEAREST,
	texture.MagLinear:  LINEAR,
}

func convertMagFilter(f texture.MagFilter) (int32, error) {
	if f >= 0 && int(f) < len(magFilterValues) {
		return magFilterValues[f], nil
	}
	return 0, fmt.Errorf("%w: unrecognized mag filter %d", renderer.ErrUnsupportedOperation, f)
}

var minFilterValues = [...]int32{
	texture.MinNearest:           NEAREST,
	texture.MinLinear:            LINEAR,
	texture.MinNearestMipNearest: NEAREST_MIPMAP_NEAREST,
	texture.MinLinearMipNearest:  LINEAR_MIPMAP_NEAREST,
	texture.MinNearestMipLinear:  NEAREST_MIPMAP_LINEAR,
	texture.MinTrilinear:         LINEAR_MIPMAP_LINEAR,
}

// minFilterNoMipValues degrades mip-using filters to their base filter for
// textures without a mip chain, where a mip filter would sample nothing.
var minFilterNoMipValues = [...]int32{
	texture.MinNearest:           NEAREST,
	texture.MinLinear:            LINEAR,
	texture.MinNearestMipNearest: NEAREST,
	texture.MinLinearMipNearest:  LINEAR,
	texture.MinNearestMipLinear:  NEAREST,
	texture.MinTrilinear:         LINEAR,
}

func convertMinFilter(f texture.MinFilter, haveMips bool) (int32, error) {
	if f < 0 || int(f) >= len(minFilterValues) {
		return 0, fmt.Errorf("%w: unrecognized min filter %d", renderer.ErrUnsupportedOperation, f)
	}
	if haveMips {
		return minFilterValues[f], nil
	}
	return minFilterNoMipValues[f], nil
}

var wrapValues = [...]int32{
	texture.WrapRepeat:         REPEAT,
	texture.WrapMirroredRepeat: MIRRORED_REPEAT,
	texture.WrapEdgeClamp:      CLAMP_TO_EDGE,
}

func convertWrap(w texture.Wrap) (int32, error) {
	if w >= 0 && int(w) < len(wrapValues) {
		return wrapValues[w], nil
	}
	return 0, fmt.Errorf("%w: unrecognized wrap mode %d", renderer.ErrUnsupportedOperation, w)
}

// npotClampAxes lists, per texture type, the wrap axes that partial NPOT
// hardware requires clamped to the edge.
var npotClampAxes = [...][]texture.WrapAxis{
	texture.Tex2D:      {texture.WrapS, texture.WrapT},
	texture.TexCubeMap: {texture.WrapS, texture.WrapT, texture.WrapR},
	texture.TexArray:   {texture.WrapS, texture.WrapT},
	texture.Tex3D:      {texture.WrapS, texture.WrapT, texture.WrapR},
}

// checkNonPowerOfTwo validates an image against the hardware's NPOT tier
// before upload. Full support passes everything; partial support passes
// unmipped, edge-clamped sampling only; no support rejects NPOT outright.
func (r *glRenderer) checkNonPowerOfTwo(tex *texture.Texture) error {
	img := tex.Image()
	if !img.NPOT() || r.caps.Contains(renderer.CapNonPowerOfTwoTextures) {
		return nil
	}
	if !r.caps.Contains(renderer.CapPartialNonPowerOfTwoTextures) {
		return fmt.Errorf("%w: non-power-of-two textures not supported, image is %dx%d",
			renderer.ErrUnsupportedHardware, img.Width(), img.Height())
	}
	if tex.MinFilter().UsesMips() || img.HasMips() {
		return fmt.Errorf("%w: mipmapped non-power-of-two textures not supported",
			renderer.ErrUnsupportedHardware)
	}
	if tex.Type() < 0 || int(tex.Type()) >= len(npotClampAxes) {
		return fmt.Errorf("%w: unrecognized texture type %d", renderer.ErrUnsupportedOperation, tex.Type())
	}
	for _, axis := range npotClampAxes[tex.Type()] {
		if tex.Wrap(axis) != texture.WrapEdgeClamp {
			return fmt.Errorf("%w: repeating non-power-of-two textures not supported",
				renderer.ErrUnsupportedHardware)
		}
	}
	return nil
}

// bindTextureAndUnit makes the unit active and binds the image's texture
// to it, each only when the shadow state differs.
func (r *glRenderer) bindTextureAndUnit(target uint32, img *texture.Image, unit int) {
	if r.ctx.activeUnit != unit {
		r.gl.ActiveTexture(TEXTURE0 + uint32(unit))
		r.ctx.activeUnit = unit
	}
	ref := img.Ref()
	if r.ctx.boundTextures[unit] != ref {
		r.gl.BindTexture(target, img.ID())
		r.ctx.boundTextures[unit] = ref
		r.stats.OnTextureUse(true)
	} else {
		r.stats.OnTextureUse(false)
	}
}

func (r *glRenderer) SetTexture(unit int, tex *texture.Texture) error {
	if limit := r.limits[renderer.LimitTextureUnits]; unit < 0 || unit >= limit {
		return fmt.Errorf("%w: texture unit %d, hardware supports [0,%d)",
			renderer.ErrIllegalArgument, unit, limit)
	}
	img := tex.Image()
	if img == nil {
		return fmt.Errorf("%w: texture %q has no image", renderer.ErrInvalidState, tex.Name())
	}
	if img.UpdateNeeded() || (img.GenerateMips() && !img.MipsGenerated()) {
		if err := r.checkNonPowerOfTwo(tex); err != nil {
			return err
		}
		if err := r.updateTexImageData(img, tex.Type(), unit); err != nil {
			return err
		}
	}
	return r.setupTextureParams(unit, tex)
}

// updateTexImageData (re)creates the driver texture behind an image and
// uploads every data slice and mip level.
func (r *glRenderer) updateTexImageData(img *texture.Image, texType texture.Type, unit int) error {
	if img.ID() == 0 {
		img.SetID(r.gl.GenTexture())
		r.objects.register(img)
		r.stats.OnNewTexture()
	}

	if img.Samples() > 1 {
		if !r.caps.Contains(renderer.CapTextureMultisample) {
			return fmt.Errorf("%w: multisample textures not supported", renderer.ErrUnsupportedHardware)
		}
		if img.HasExplicitMips() || img.GenerateMips() {
			return fmt.Errorf("%w: multisample textures cannot carry mipmaps", renderer.ErrUnsupportedOperation)
		}
		limitKey := renderer.LimitColorTextureSamples
		if img.Format().IsDepth() {
			limitKey = renderer.LimitDepthTextureSamples
		}
		if limit := r.limits[limitKey]; limit > 0 && img.Samples() > limit {
			renderer.Logger().Warn("sample count clamped to hardware limit",
				"format", img.Format().String(), "requested", img.Samples(), "limit", limit)
			img.ClampSamples(limit)
		}
	}

	target, err := r.convertTextureType(texType, img.Samples(), -1)
	if err != nil {
		return err
	}
	r.bindTextureAndUnit(target, img, unit)

	// Size limits are validated before the first upload call so the
	// driver never sees a partial object.
	if target == TEXTURE_CUBE_MAP {
		if limit := r.limits[renderer.LimitCubemapSize]; img.Width() > limit || img.Height() > limit {
			return fmt.Errorf("%w: cubemap %dx%d exceeds the maximum cubemap size %d",
				renderer.ErrUnsupportedHardware, img.Width(), img.Height(), limit)
		}
		if img.Width() != img.Height() {
			return fmt.Errorf("%w: cubemap faces must be square, got %dx%d",
				renderer.ErrIllegalArgument, img.Width(), img.Height())
		}
	} else {
		if limit := r.limits[renderer.LimitTextureSize]; img.Width() > limit || img.Height() > limit {
			return fmt.Errorf("%w: texture %dx%d exceeds the maximum texture size %d",
				renderer.ErrUnsupportedHardware, img.Width(), img.Height(), limit)
		}
	}

	switch texType {
	case texture.TexCubeMap:
		if len(img.Data()) != 6 {
			return fmt.Errorf("%w: cubemap image carries %d faces, needs 6",
				renderer.ErrIllegalArgument, len(img.Data()))
		}
		for i := range 6 {
			if err := r.uploadTextureLevels(img, TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), i, 1); err != nil {
				return err
			}
		}
	case texture.TexArray:
		layers := len(img.Data())
		if limit := r.limits[renderer.LimitTextureArrayLayers]; layers > limit {
			return fmt.Errorf("%w: texture array with %d layers exceeds the layer limit %d",
				renderer.ErrUnsupportedHardware, layers, limit)
		}
		// Allocate the whole stack first, then fill layer by layer.
		// Multisample stacks carry no data and only get the allocation.
		if err := r.uploadTextureLevels(img, target, -1, layers); err != nil {
			return err
		}
		if img.Samples() <= 1 {
			for i := range layers {
				if err := r.uploadTextureLevels(img, target, i, layers); err != nil {
					return err
				}
			}
		}
	case texture.Tex3D:
		if limit := r.limits[renderer.LimitTexture3DSize]; img.Width() > limit || img.Height() > limit || img.Depth() > limit {
			return fmt.Errorf("%w: 3D texture %dx%dx%d exceeds the maximum 3D size %d",
				renderer.ErrUnsupportedHardware, img.Width(), img.Height(), img.Depth(), limit)
		}
		if err := r.uploadTextureLevels(img, target, 0, 1); err != nil {
			return err
		}
	default:
		if err := r.uploadTextureLevels(img, target, 0, 1); err != nil {
			return err
		}
	}

	if !img.HasExplicitMips() && img.GenerateMips() && len(img.Data()) > 0 {
		if r.glfbo == nil {
			return fmt.Errorf("%w: mipmap generation requires framebuffer support", renderer.ErrUnsupportedHardware)
		}
		r.glfbo.GenerateMipmap(target)
		img.SetMipsGenerated(true)
	}

	img.ClearUpdateNeeded()
	return nil
}

// uploadTextureLevels issues the upload calls for one data slice of an
// image: every mip level of one cube face, one array layer (or the stack
// allocation when index is -1), the 3D volume, or the single 2D slice.
func (r *glRenderer) uploadTextureLevels(img *texture.Image, target uint32, index, sliceCount int) error {
	info, err := r.convertTextureFormat(img.Format(), img.ColorSpace())
	if err != nil {
		return err
	}

	var data []byte
	if index >= 0 && index < len(img.Data()) {
		data = img.Data()[index]
	}

	sizes := img.MipmapSizes()
	if len(sizes) == 0 {
		if data != nil {
			sizes = []int32{int32(len(data))}
		} else {
			sizes = []int32{0}
		}
	}

	pos := 0
	for level, size := range sizes {
		w := max(1, img.Width()>>level)
		h := max(1, img.Height()>>level)
		d := max(1, img.Depth()>>level)

		var levelData []byte
		if data != nil {
			if pos+int(size) > len(data) {
				return fmt.Errorf("%w: mip level %d spans [%d,%d) beyond the %d data bytes",
					renderer.ErrIllegalArgument, level, pos, pos+int(size), len(data))
			}
			levelData = data[pos : pos+int(size)]
		}

		switch {
		case target == TEXTURE_3D:
			r.gl2.TexImage3D(target, int32(level), int32(info.internal), int32(w), int32(h), int32(d),
				info.format, info.xtype, levelData)
		case target == TEXTURE_2D_ARRAY:
			if index < 0 {
				r.gl2.TexImage3D(target, int32(level), int32(info.internal), int32(w), int32(h), int32(sliceCount),
					info.format, info.xtype, nil)
			} else {
				r.gl2.TexSubImage3D(target, int32(level), 0, 0, int32(index), int32(w), int32(h), 1,
					info.format, info.xtype, levelData)
			}
		case target == TEXTURE_2D_MULTISAMPLE_ARRAY:
			r.glext.TexImage3DMultisample(target, int32(img.Samples()), info.internal, int32(w), int32(h),
				int32(max(d, sliceCount)), true)
		case img.Samples() > 1:
			r.glext.TexImage2DMultisample(target, int32(img.Samples()), info.internal, int32(w), int32(h), true)
		default:
			r.gl.TexImage2D(target, int32(level), int32(info.internal), int32(w), int32(h),
				info.format, info.xtype, levelData)
		}
		pos += int(size)
	}
	return nil
}

// setupTextureParams re-applies the sampler parameters that differ from
// the image's applied-parameter cache and leaves the texture bound to the
// unit.
func (r *glRenderer) setupTextureParams(unit int, tex *texture.Texture) error {
	img := tex.Image()
	target, err := r.convertTextureType(tex.Type(), img.Samples(), -1)
	if err != nil {
		return err
	}

	// Multisample targets carry no sampler state.
	if img.Samples() > 1 {
		r.bindTextureAndUnit(target, img, unit)
		return nil
	}

	haveMips := img.HasMips() || img.GenerateMips()
	last := img.LastState()

	if last.MagFilter != tex.MagFilter() {
		magFilter, err := convertMagFilter(tex.MagFilter())
		if err != nil {
			return err
		}
		r.bindTextureAndUnit(target, img, unit)
		r.gl.TexParameteri(target, TEXTURE_MAG_FILTER, magFilter)
		last.MagFilter = tex.MagFilter()
	}
	if last.MinFilter != tex.MinFilter() {
		minFilter, err := convertMinFilter(tex.MinFilter(), haveMips)
		if err != nil {
			return err
		}
		r.bindTextureAndUnit(target, img, unit)
		r.gl.TexParameteri(target, TEXTURE_MIN_FILTER, minFilter)
		last.MinFilter = tex.MinFilter()
	}

	if r.caps.Contains(renderer.CapTextureFilterAnisotropic) {
		aniso := tex.Anisotropy()
		if aniso == 0 {
			aniso = r.defaultAnisoFilter
		}
		if limit := r.limits[renderer.LimitTextureAnisotropy]; limit > 0 {
			aniso = min(aniso, limit)
		}
		if last.Anisotropy != aniso {
			r.bindTextureAndUnit(target, img, unit)
			r.gl.TexParameterf(target, TEXTURE_MAX_ANISOTROPY, float32(aniso))
			last.Anisotropy = aniso
		}
	}

	switch tex.Type() {
	case texture.Tex3D, texture.TexCubeMap:
		if r.gl2 != nil && last.WrapR != tex.Wrap(texture.WrapR) {
			wrap, err := convertWrap(tex.Wrap(texture.WrapR))
			if err != nil {
				return err
			}
			r.bindTextureAndUnit(target, img, unit)
			r.gl.TexParameteri(target, TEXTURE_WRAP_R, wrap)
			last.WrapR = tex.Wrap(texture.WrapR)
		}
		fallthrough
	case texture.Tex2D, texture.TexArray:
		if last.WrapT != tex.Wrap(texture.WrapT) {
			wrap, err := convertWrap(tex.Wrap(texture.WrapT))
			if err != nil {
				return err
			}
			r.bindTextureAndUnit(target, img, unit)
			r.gl.TexParameteri(target, TEXTURE_WRAP_T, wrap)
			last.WrapT = tex.Wrap(texture.WrapT)
		}
		if last.WrapS != tex.Wrap(texture.WrapS) {
			wrap, err := convertWrap(tex.Wrap(texture.WrapS))
			if err != nil {
				return err
			}
			r.bindTextureAndUnit(target, img, unit)
			r.gl.TexParameteri(target, TEXTURE_WRAP_S, wrap)
			last.WrapS = tex.Wrap(texture.WrapS)
		}
	}

	if r.gl2 != nil && last.Compare != tex.Compare() {
		r.bindTextureAndUnit(target, img, unit)
		if tex.Compare() == texture.CompareOff {
			r.gl.TexParameteri(target, TEXTURE_COMPARE_MODE, NONE)
		} else {
			r.gl.TexParameteri(target, TEXTURE_COMPARE_MODE, COMPARE_REF_TO_TEXTURE)
			if tex.Compare() == texture.CompareLess {
				r.gl.TexParameteri(target, TEXTURE_COMPARE_FUNC, LESS)
			} else {
				r.gl.TexParameteri(target, TEXTURE_COMPARE_FUNC, LEQUAL)
			}
		}
		last.Compare = tex.Compare()
	}

	// Even with every parameter already in place the caller expects the
	// texture bound to the unit afterwards.
	r.bindTextureAndUnit(target, img, unit)
	return nil
}

func (r *glRenderer) ModifyTexture(tex *texture.Texture, pixels *texture.Image, x, y int) error {
	if tex.Type() != texture.Tex2D {
		return fmt.Errorf("%w: partial updates only apply to 2D textures, got %v",
			renderer.ErrUnsupportedOperation, tex.Type())
	}
	dst := tex.Image()
	if pixels.Format() != dst.Format() {
		return fmt.Errorf("%w: pixel format %v does not match texture format %v",
			renderer.ErrIllegalArgument, pixels.Format(), dst.Format())
	}
	if x < 0 || y < 0 || x+pixels.Width() > dst.Width() || y+pixels.Height() > dst.Height() {
		return fmt.Errorf("%w: region %dx%d at (%d,%d) lies outside the %dx%d texture",
			renderer.ErrIllegalArgument, pixels.Width(), pixels.Height(), x, y, dst.Width(), dst.Height())
	}
	if len(pixels.Data()) == 0 || len(pixels.Data()[0]) == 0 {
		return fmt.Errorf("%w: replacement image carries no pixel data", renderer.ErrIllegalArgument)
	}

	if err := r.SetTexture(0, tex); err != nil {
		return err
	}
	info, err := r.convertTextureFormat(pixels.Format(), pixels.ColorSpace())
	if err != nil {
		return err
	}
	r.gl.TexSubImage2D(TEXTURE_2D, 0, int32(x), int32(y), int32(pixels.Width()), int32(pixels.Height()),
		info.format, info.xtype, pixels.Data()[0])
	return nil
}

func (r *glRenderer) DeleteImage(img *texture.Image) {
	if img.ID() == 0 {
		renderer.Logger().Debug("image was never uploaded, nothing to delete")
		return
	}
	r.gl.DeleteTexture(img.ID())
	r.objects.unregister(img)
	r.stats.OnDeleteTexture()
	img.Reset()
}
