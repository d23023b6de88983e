package texture

// Type selects the texture target an image is bound to.
type Type int

const (
	// Tex2D is a regular two-dimensional texture.
	Tex2D Type = iota

	// TexCubeMap is a six-faced cube map; the image carries one data
	// slice per face.
	TexCubeMap

	// TexArray is a 2D array texture; the image carries one data slice
	// per layer.
	TexArray

	// Tex3D is a volumetric texture; the image depth is the slice count.
	Tex3D
)

var typeNames = [...]string{
	Tex2D:      "Tex2D",
	TexCubeMap: "TexCubeMap",
	TexArray:   "TexArray",
	Tex3D:      "Tex3D",
}

// String retrieves the type name for error messages.
//
// Returns:
//   - string: the type name, or "Type(?)" for unknown values
func (t Type) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Type(?)"
}

// MinFilter selects minification filtering.
type MinFilter int

const (
	// MinNearest samples the nearest texel, no mipmaps.
	MinNearest MinFilter = iota

	// MinLinear blends the four nearest texels, no mipmaps.
	MinLinear

	// MinNearestMipNearest samples the nearest texel from the nearest mip.
	MinNearestMipNearest

	// MinLinearMipNearest blends texels within the nearest mip.
	MinLinearMipNearest

	// MinNearestMipLinear samples nearest texels from two mips and blends.
	MinNearestMipLinear

	// MinTrilinear blends texels within and across two mips.
	MinTrilinear
)

// UsesMips reports whether the filter reads from mip levels, which forces
// mip generation on images without an explicit chain.
//
// Returns:
//   - bool: true for the *Mip* filters
func (f MinFilter) UsesMips() bool {
	return f >= MinNearestMipNearest
}

// MagFilter selects magnification filtering.
type MagFilter int

const (
	// MagNearest samples the nearest texel.
	MagNearest MagFilter = iota

	// MagLinear blends the four nearest texels.
	MagLinear
)

// Wrap selects coordinate wrapping beyond [0, 1].
type Wrap int

const (
	// WrapRepeat tiles the texture.
	WrapRepeat Wrap = iota

	// WrapMirroredRepeat tiles with alternate mirroring.
	WrapMirroredRepeat

	// WrapEdgeClamp clamps to the edge texel.
	WrapEdgeClamp
)

var wrapNames = [...]string{
	WrapRepeat:         "Repeat",
	WrapMirroredRepeat: "MirroredRepeat",
	WrapEdgeClamp:      "EdgeClamp",
}

// String retrieves the wrap mode name for error messages.
//
// Returns:
//   - string: the mode name, or "Wrap(?)" for unknown values
func (w Wrap) String() string {
	if w >= 0 && int(w) < len(wrapNames) {
		return wrapNames[w]
	}
	return "Wrap(?)"
}

// WrapAxis names a texture coordinate axis.
type WrapAxis int

const (
	// WrapS is the horizontal axis.
	WrapS WrapAxis = iota

	// WrapT is the vertical axis.
	WrapT

	// WrapR is the depth axis, meaningful for 3D and cube textures.
	WrapR
)

// CompareMode selects hardware depth comparison for shadow sampling.
type CompareMode int

const (
	// CompareOff samples depth values directly.
	CompareOff CompareMode = iota

	// CompareLess returns the result of ref < depth.
	CompareLess

	// CompareLessOrEqual returns the result of ref <= depth.
	CompareLessOrEqual
)

// LastTextureState caches the sampler parameters most recently written to
// a driver texture object, so repeated binds of an unchanged texture emit
// no parameter calls. Wrap axes start at -1 to force the first write.
type LastTextureState struct {
	WrapS, WrapT, WrapR Wrap
	MinFilter           MinFilter
	MagFilter           MagFilter
	Anisotropy          int
	Compare             CompareMode
}

// Reset forgets every cached parameter so the next bind rewrites all of
// them.
func (s *LastTextureState) Reset() {
	s.WrapS = -1
	s.WrapT = -1
	s.WrapR = -1
	s.MinFilter = -1
	s.MagFilter = -1
	s.Anisotropy = 0
	s.Compare = CompareOff
}

// Texture pairs an image with sampler parameters. Several textures may
// share one image; the parameter cache on the image keeps redundant
// parameter writes out of the command stream either way.
type Texture struct {
	name       string
	texType    Type
	image      *Image
	minFilter  MinFilter
	magFilter  MagFilter
	wrapS      Wrap
	wrapT      Wrap
	wrapR      Wrap
	anisotropy int
	compare    CompareMode
}

// NewTexture creates a texture with bilinear filtering and repeat
// wrapping.
//
// Parameters:
//   - texType: the texture target
//   - img: the pixel container; may be nil until SetImage
//
// Returns:
//   - *Texture: the new texture
func NewTexture(texType Type, img *Image) *Texture {
	return &Texture{
		texType:   texType,
		image:     img,
		minFilter: MinLinear,
		magFilter: MagLinear,
		wrapS:     WrapRepeat,
		wrapT:     WrapRepeat,
		wrapR:     WrapRepeat,
	}
}

// NewTexture2D creates a 2D texture around a single-slice image.
//
// Parameters:
//   - img: the pixel container
//
// Returns:
//   - *Texture: the new texture
func NewTexture2D(img *Image) *Texture {
	return NewTexture(Tex2D, img)
}

// Name retrieves the debug name.
//
// Returns:
//   - string: the name set with SetName, or ""
func (t *Texture) Name() string {
	return t.name
}

// SetName assigns a debug name used in log output.
//
// Parameters:
//   - name: the name
func (t *Texture) SetName(name string) {
	t.name = name
}

// Type retrieves the texture target.
//
// Returns:
//   - Type: the target given at construction
func (t *Texture) Type() Type {
	return t.texType
}

// Image retrieves the pixel container.
//
// Returns:
//   - *Image: the image, nil when unset
func (t *Texture) Image() *Image {
	return t.image
}

// SetImage replaces the pixel container.
//
// Parameters:
//   - img: the new image
func (t *Texture) SetImage(img *Image) {
	t.image = img
}

// MinFilter retrieves the minification filter.
//
// Returns:
//   - MinFilter: the current filter
func (t *Texture) MinFilter() MinFilter {
	return t.minFilter
}

// SetMinFilter assigns the minification filter. Selecting a mip-using
// filter on an image without an explicit mip chain requests driver-side
// mip generation.
//
// Parameters:
//   - f: the new filter
func (t *Texture) SetMinFilter(f MinFilter) {
	t.minFilter = f
	if f.UsesMips() && t.image != nil && !t.image.HasExplicitMips() {
		t.image.SetGenerateMips(true)
	}
}

// MagFilter retrieves the magnification filter.
//
// Returns:
//   - MagFilter: the current filter
func (t *Texture) MagFilter() MagFilter {
	return t.magFilter
}

// SetMagFilter assigns the magnification filter.
//
// Parameters:
//   - f: the new filter
func (t *Texture) SetMagFilter(f MagFilter) {
	t.magFilter = f
}

// Wrap retrieves the wrap mode of one axis.
//
// Parameters:
//   - axis: the coordinate axis
//
// Returns:
//   - Wrap: the current mode for that axis
func (t *Texture) Wrap(axis WrapAxis) Wrap {
	switch axis {
	case WrapT:
		return t.wrapT
	case WrapR:
		return t.wrapR
	default:
		return t.wrapS
	}
}

// SetWrap assigns the wrap mode of one axis.
//
// Parameters:
//   - axis: the coordinate axis
//   - w: the new mode
func (t *Texture) SetWrap(axis WrapAxis, w Wrap) {
	switch axis {
	case WrapT:
		t.wrapT = w
	case WrapR:
		t.wrapR = w
	default:
		t.wrapS = w
	}
}

// SetWrapAll assigns one wrap mode to every axis.
//
// Parameters:
//   - w: the new mode
func (t *Texture) SetWrapAll(w Wrap) {
	t.wrapS = w
	t.wrapT = w
	t.wrapR = w
}

// Anisotropy retrieves the anisotropic filtering level.
//
// Returns:
//   - int: the level; 0 defers to the renderer default
func (t *Texture) Anisotropy() int {
	return t.anisotropy
}

// SetAnisotropy assigns the anisotropic filtering level.
//
// Parameters:
//   - level: 0 to follow the renderer default, otherwise the level
func (t *Texture) SetAnisotropy(level int) {
	t.anisotropy = level
}

// Compare retrieves the shadow comparison mode.
//
// Returns:
//   - CompareMode: the current mode
func (t *Texture) Compare() CompareMode {
	return t.compare
}

// SetCompare assigns the shadow comparison mode, meaningful on depth
// images only.
//
// Parameters:
//   - mode: the new mode
func (t *Texture) SetCompare(mode CompareMode) {
	t.compare = mode
}
