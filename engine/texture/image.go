package texture

import (
	"github.com/prism3d/prism-go/engine/resource"
)

// Format is the pixel layout of an image. The set is closed; the backend
// maps each entry to driver constants through a fixed table and rejects
// anything else.
type Format int

const (
	// FormatAlpha8 is 8-bit alpha only.
	FormatAlpha8 Format = iota

	// FormatLuminance8 is 8-bit luminance replicated to RGB.
	FormatLuminance8

	// FormatR8 is one 8-bit channel.
	FormatR8

	// FormatRG8 is two 8-bit channels.
	FormatRG8

	// FormatRGB8 is three 8-bit channels.
	FormatRGB8

	// FormatRGBA8 is four 8-bit channels, the engine default.
	FormatRGBA8

	// FormatSRGB8 is RGB8 with sRGB encoding.
	FormatSRGB8

	// FormatSRGB8A8 is RGBA8 with sRGB-encoded color channels.
	FormatSRGB8A8

	// FormatRGB565 is packed 16-bit color.
	FormatRGB565

	// FormatRGB5A1 is packed 16-bit color with 1-bit alpha.
	FormatRGB5A1

	// FormatR16F, FormatR32F, FormatRG16F, and FormatRG32F are
	// floating-point one- and two-channel formats.
	FormatR16F
	FormatR32F
	FormatRG16F
	FormatRG32F

	// FormatRGB16F, FormatRGB32F, FormatRGBA16F, and FormatRGBA32F are
	// floating-point color formats.
	FormatRGB16F
	FormatRGB32F
	FormatRGBA16F
	FormatRGBA32F

	// FormatDepth16, FormatDepth24, and FormatDepth32F are depth formats.
	FormatDepth16
	FormatDepth24
	FormatDepth32F

	// FormatDepth24Stencil8 packs depth with an 8-bit stencil.
	FormatDepth24Stencil8

	numFormats // keep last
)

var formatNames = [...]string{
	FormatAlpha8:          "Alpha8",
	FormatLuminance8:      "Luminance8",
	FormatR8:              "R8",
	FormatRG8:             "RG8",
	FormatRGB8:            "RGB8",
	FormatRGBA8:           "RGBA8",
	FormatSRGB8:           "SRGB8",
	FormatSRGB8A8:         "SRGB8A8",
	FormatRGB565:          "RGB565",
	FormatRGB5A1:          "RGB5A1",
	FormatR16F:            "R16F",
	FormatR32F:            "R32F",
	FormatRG16F:           "RG16F",
	FormatRG32F:           "RG32F",
	FormatRGB16F:          "RGB16F",
	FormatRGB32F:          "RGB32F",
	FormatRGBA16F:         "RGBA16F",
	FormatRGBA32F:         "RGBA32F",
	FormatDepth16:         "Depth16",
	FormatDepth24:         "Depth24",
	FormatDepth32F:        "Depth32F",
	FormatDepth24Stencil8: "Depth24Stencil8",
}

// String retrieves the format name for error messages.
//
// Returns:
//   - string: the format name, or "Format(?)" for unknown values
func (f Format) String() string {
	if f >= 0 && int(f) < len(formatNames) {
		return formatNames[f]
	}
	return "Format(?)"
}

// IsDepth reports whether the format stores depth values.
//
// Returns:
//   - bool: true for the Depth* formats
func (f Format) IsDepth() bool {
	switch f {
	case FormatDepth16, FormatDepth24, FormatDepth32F, FormatDepth24Stencil8:
		return true
	default:
		return false
	}
}

// IsFloat reports whether the format stores floating-point channels.
//
// Returns:
//   - bool: true for the 16F/32F formats
func (f Format) IsFloat() bool {
	switch f {
	case FormatR16F, FormatR32F, FormatRG16F, FormatRG32F,
		FormatRGB16F, FormatRGB32F, FormatRGBA16F, FormatRGBA32F, FormatDepth32F:
		return true
	default:
		return false
	}
}

var formatPixelBytes = [...]int{
	FormatAlpha8:          1,
	FormatLuminance8:      1,
	FormatR8:              1,
	FormatRG8:             2,
	FormatRGB8:            3,
	FormatRGBA8:           4,
	FormatSRGB8:           3,
	FormatSRGB8A8:         4,
	FormatRGB565:          2,
	FormatRGB5A1:          2,
	FormatR16F:            2,
	FormatR32F:            4,
	FormatRG16F:           4,
	FormatRG32F:           8,
	FormatRGB16F:          6,
	FormatRGB32F:          12,
	FormatRGBA16F:         8,
	FormatRGBA32F:         16,
	FormatDepth16:         2,
	FormatDepth24:         4,
	FormatDepth32F:        4,
	FormatDepth24Stencil8: 4,
}

// PixelBytes retrieves the packed size of one pixel.
//
// Returns:
//   - int: bytes per pixel, 0 for unknown formats
func (f Format) PixelBytes() int {
	if f >= 0 && int(f) < len(formatPixelBytes) {
		return formatPixelBytes[f]
	}
	return 0
}

// ColorSpace tags how an image's color channels are encoded.
type ColorSpace int

const (
	// SpaceLinear marks channels already in linear light.
	SpaceLinear ColorSpace = iota

	// SpaceSRGB marks gamma-encoded channels; when sRGB linearization is
	// enabled the backend uploads such images through an sRGB internal
	// format so sampling linearizes in hardware.
	SpaceSRGB
)

// Image is the pixel container behind textures and framebuffer attachments:
// format, dimensions, one data slice per face or layer, optional
// pre-computed mip sizes, and a multisample count. The embedded handle
// tracks the driver texture object; LastTextureState caches the sampler
// parameters most recently applied to it.
type Image struct {
	resource.Handle

	format      Format
	colorSpace  ColorSpace
	width       int
	height      int
	depth       int
	data        [][]byte
	mipmapSizes []int32
	samples     int

	generateMips  bool
	mipsGenerated bool

	lastState LastTextureState
}

// NewImage creates an image marked for upload.
//
// Parameters:
//   - format: the pixel layout
//   - width, height: dimensions in pixels
//   - data: zero slices for a render target, one for a 2D image, six for a
//     cube map, N for an array; retained, not copied
//
// Returns:
//   - *Image: the new image
func NewImage(format Format, width, height int, data ...[]byte) *Image {
	img := &Image{
		format:  format,
		width:   width,
		height:  height,
		depth:   0,
		data:    data,
		samples: 1,
	}
	img.lastState.Reset()
	img.SetUpdateNeeded()
	return img
}

// Format retrieves the pixel layout.
//
// Returns:
//   - Format: the layout given at construction
func (img *Image) Format() Format {
	return img.format
}

// ColorSpace retrieves the channel encoding tag.
//
// Returns:
//   - ColorSpace: SpaceLinear unless marked otherwise
func (img *Image) ColorSpace() ColorSpace {
	return img.colorSpace
}

// SetColorSpace tags the channel encoding and marks the image for
// re-upload, since the internal format choice depends on it.
//
// Parameters:
//   - cs: the channel encoding
func (img *Image) SetColorSpace(cs ColorSpace) {
	img.colorSpace = cs
	img.SetUpdateNeeded()
}

// Width retrieves the pixel width.
//
// Returns:
//   - int: the width
func (img *Image) Width() int {
	return img.width
}

// Height retrieves the pixel height.
//
// Returns:
//   - int: the height
func (img *Image) Height() int {
	return img.height
}

// Depth retrieves the third dimension: slice count for 3D images, 0
// otherwise.
//
// Returns:
//   - int: the depth
func (img *Image) Depth() int {
	return img.depth
}

// SetDepth assigns the third dimension of a 3D image.
//
// Parameters:
//   - depth: the slice count
func (img *Image) SetDepth(depth int) {
	img.depth = depth
	img.SetUpdateNeeded()
}

// Data retrieves the pixel slices, one per face or layer.
//
// Returns:
//   - [][]byte: the live slices; may be empty for render targets
func (img *Image) Data() [][]byte {
	return img.data
}

// SetData replaces one pixel slice and marks the image for re-upload.
//
// Parameters:
//   - index: face or layer index
//   - data: the new pixels; retained, not copied
func (img *Image) SetData(index int, data []byte) {
	for len(img.data) <= index {
		img.data = append(img.data, nil)
	}
	img.data[index] = data
	img.SetUpdateNeeded()
}

// MipmapSizes retrieves the explicit per-level byte sizes when the data
// slices carry pre-computed mip chains.
//
// Returns:
//   - []int32: level sizes, nil when the image has no explicit mips
func (img *Image) MipmapSizes() []int32 {
	return img.mipmapSizes
}

// SetMipmapSizes declares that each data slice is a concatenated mip chain
// with the given per-level byte sizes.
//
// Parameters:
//   - sizes: bytes per level, finest first
func (img *Image) SetMipmapSizes(sizes []int32) {
	img.mipmapSizes = sizes
	img.SetUpdateNeeded()
}

// HasExplicitMips reports whether the data carries a pre-computed mip
// chain.
//
// Returns:
//   - bool: true when SetMipmapSizes was called
func (img *Image) HasExplicitMips() bool {
	return len(img.mipmapSizes) > 0
}

// Samples retrieves the multisample count.
//
// Returns:
//   - int: 1 for regular images
func (img *Image) Samples() int {
	return img.samples
}

// SetSamples assigns the multisample count for render-target images.
// Multisampled images cannot carry pixel data or mipmaps.
//
// Parameters:
//   - samples: the sample count, at least 1
func (img *Image) SetSamples(samples int) {
	img.samples = samples
	img.SetUpdateNeeded()
}

// ClampSamples lowers the sample count after a hardware clamp without
// re-dirtying the image; the backend calls it during upload.
//
// Parameters:
//   - samples: the clamped sample count
func (img *Image) ClampSamples(samples int) {
	img.samples = samples
}

// GenerateMips reports whether the backend must generate a mip chain after
// upload.
//
// Returns:
//   - bool: true when a mip-using filter was requested on a mipless image
func (img *Image) GenerateMips() bool {
	return img.generateMips
}

// SetGenerateMips requests driver-side mip generation on next upload.
//
// Parameters:
//   - gen: true to generate mips
func (img *Image) SetGenerateMips(gen bool) {
	if img.generateMips == gen {
		return
	}
	img.generateMips = gen
	img.mipsGenerated = false
	img.SetUpdateNeeded()
}

// MipsGenerated reports whether the driver generated mips for the current
// image generation.
//
// Returns:
//   - bool: true after the backend ran mip generation
func (img *Image) MipsGenerated() bool {
	return img.mipsGenerated
}

// SetMipsGenerated records the outcome of driver-side mip generation; the
// backend calls it after upload.
//
// Parameters:
//   - done: true when mips exist GPU-side
func (img *Image) SetMipsGenerated(done bool) {
	img.mipsGenerated = done
}

// HasMips reports whether sampling with a mip filter is safe: either the
// data carries explicit mips or the driver generated them.
//
// Returns:
//   - bool: true when a complete mip chain exists
func (img *Image) HasMips() bool {
	return img.HasExplicitMips() || img.mipsGenerated
}

// LastState retrieves the per-image cache of applied sampler parameters.
//
// Returns:
//   - *LastTextureState: the live cache, owned by the image
func (img *Image) LastState() *LastTextureState {
	return &img.lastState
}

// Reset forgets the driver texture and the applied-parameter cache. Used
// after deletion and context loss; the generation bump invalidates every
// shadow-state unit still referring to the old texture.
func (img *Image) Reset() {
	img.Handle.Reset()
	img.mipsGenerated = false
	img.lastState.Reset()
}

// NPOT reports whether either dimension is not a power of two.
//
// Returns:
//   - bool: true for non-power-of-two images
func (img *Image) NPOT() bool {
	return !isPow2(img.width) || !isPow2(img.height)
}

func isPow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}
