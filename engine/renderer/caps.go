package renderer

import (
	"strconv"

	mapset "github.com/deckarep/golang-set/v2"
)

// Capability is a named hardware or driver feature flag detected once at
// renderer initialization. All components treat the detected set as
// read-only input.
type Capability int

const (
	// CapCoreProfile indicates a core (non-compatibility) desktop context.
	CapCoreProfile Capability = iota

	// Desktop context version tiers.
	CapOpenGL20
	CapOpenGL21
	CapOpenGL30
	CapOpenGL31
	CapOpenGL32
	CapOpenGL33
	CapOpenGL40
	CapOpenGL41

	// Embedded context version tiers.
	CapOpenGLES20
	CapOpenGLES30

	// Shading language version tiers. Every tier at or below the detected
	// version is present, so callers test the single tier they require.
	CapGLSL100
	CapGLSL110
	CapGLSL120
	CapGLSL130
	CapGLSL140
	CapGLSL150
	CapGLSL330
	CapGLSL400
	CapGLSL410

	// CapVertexTextureFetch indicates textures can be sampled from vertex
	// shaders (vertex texture units > 0).
	CapVertexTextureFetch

	// CapFloatTexture indicates floating-point texture formats.
	CapFloatTexture

	// CapDepthTexture indicates depth texture formats.
	CapDepthTexture

	// CapTexture3D indicates volumetric textures.
	CapTexture3D

	// CapTextureArray indicates layered 2D texture arrays.
	CapTextureArray

	// CapTextureMultisample indicates multisampled texture targets.
	CapTextureMultisample

	// CapMultisample indicates a multisample-capable default framebuffer
	// (also gates alpha-to-coverage).
	CapMultisample

	// CapNonPowerOfTwoTextures indicates full NPOT support: any size, any
	// wrap mode, mipmaps allowed.
	CapNonPowerOfTwoTextures

	// CapPartialNonPowerOfTwoTextures indicates the limited NPOT tier: no
	// mipmaps and edge-clamp wrapping only.
	CapPartialNonPowerOfTwoTextures

	// CapTextureFilterAnisotropic indicates anisotropic filtering.
	CapTextureFilterAnisotropic

	// CapSeamlessCubemap indicates seamless cube map edge filtering.
	CapSeamlessCubemap

	// CapSrgb indicates sRGB texture formats and sRGB framebuffer encoding.
	CapSrgb

	// CapFrameBuffer indicates framebuffer objects.
	CapFrameBuffer

	// CapFrameBufferMRT indicates multiple color attachments per
	// framebuffer.
	CapFrameBufferMRT

	// CapFrameBufferMultisample indicates multisampled renderbuffer
	// storage.
	CapFrameBufferMultisample

	// CapFrameBufferBlit indicates framebuffer-to-framebuffer copies.
	CapFrameBufferBlit

	// CapMeshInstancing indicates instanced draw calls and attribute
	// divisors.
	CapMeshInstancing

	// CapVertexBufferArray indicates vertex array objects.
	CapVertexBufferArray

	// CapGeometryShader indicates the geometry stage.
	CapGeometryShader

	// CapTessellationShader indicates the tessellation control and
	// evaluation stages.
	CapTessellationShader

	// CapUniformBufferObject indicates uniform buffer blocks.
	CapUniformBufferObject

	// CapShaderStorageBufferObject indicates shader storage buffer blocks.
	CapShaderStorageBufferObject

	// CapIntegerIndexBuffer indicates 32-bit index buffers.
	CapIntegerIndexBuffer

	// CapUnpackRowLength indicates sub-image uploads may use a source row
	// stride differing from the region width.
	CapUnpackRowLength

	numCapabilities // keep last
)

var capabilityNames = [...]string{
	CapCoreProfile:                  "CoreProfile",
	CapOpenGL20:                     "OpenGL20",
	CapOpenGL21:                     "OpenGL21",
	CapOpenGL30:                     "OpenGL30",
	CapOpenGL31:                     "OpenGL31",
	CapOpenGL32:                     "OpenGL32",
	CapOpenGL33:                     "OpenGL33",
	CapOpenGL40:                     "OpenGL40",
	CapOpenGL41:                     "OpenGL41",
	CapOpenGLES20:                   "OpenGLES20",
	CapOpenGLES30:                   "OpenGLES30",
	CapGLSL100:                      "GLSL100",
	CapGLSL110:                      "GLSL110",
	CapGLSL120:                      "GLSL120",
	CapGLSL130:                      "GLSL130",
	CapGLSL140:                      "GLSL140",
	CapGLSL150:                      "GLSL150",
	CapGLSL330:                      "GLSL330",
	CapGLSL400:                      "GLSL400",
	CapGLSL410:                      "GLSL410",
	CapVertexTextureFetch:           "VertexTextureFetch",
	CapFloatTexture:                 "FloatTexture",
	CapDepthTexture:                 "DepthTexture",
	CapTexture3D:                    "Texture3D",
	CapTextureArray:                 "TextureArray",
	CapTextureMultisample:           "TextureMultisample",
	CapMultisample:                  "Multisample",
	CapNonPowerOfTwoTextures:        "NonPowerOfTwoTextures",
	CapPartialNonPowerOfTwoTextures: "PartialNonPowerOfTwoTextures",
	CapTextureFilterAnisotropic:     "TextureFilterAnisotropic",
	CapSeamlessCubemap:              "SeamlessCubemap",
	CapSrgb:                         "Srgb",
	CapFrameBuffer:                  "FrameBuffer",
	CapFrameBufferMRT:               "FrameBufferMRT",
	CapFrameBufferMultisample:       "FrameBufferMultisample",
	CapFrameBufferBlit:              "FrameBufferBlit",
	CapMeshInstancing:               "MeshInstancing",
	CapVertexBufferArray:            "VertexBufferArray",
	CapGeometryShader:               "GeometryShader",
	CapTessellationShader:           "TessellationShader",
	CapUniformBufferObject:          "UniformBufferObject",
	CapShaderStorageBufferObject:    "ShaderStorageBufferObject",
	CapIntegerIndexBuffer:           "IntegerIndexBuffer",
	CapUnpackRowLength:              "UnpackRowLength",
}

// String retrieves the capability's name for logging.
//
// Returns:
//   - string: the capability name, or "Capability(n)" for unknown values
func (c Capability) String() string {
	if c >= 0 && int(c) < len(capabilityNames) {
		return capabilityNames[c]
	}
	return "Capability(" + strconv.Itoa(int(c)) + ")"
}

// CapabilitySet is the detected feature set of one graphics context.
// Computed once during initialization and read-only afterwards. The
// thread-unsafe set variant is deliberate: the context is owned by a single
// rendering thread.
type CapabilitySet = mapset.Set[Capability]

// NewCapabilitySet creates an empty capability set, optionally seeded.
//
// Parameters:
//   - caps: capabilities to add to the new set
//
// Returns:
//   - CapabilitySet: a mutable set for the detector to fill
func NewCapabilitySet(caps ...Capability) CapabilitySet {
	return mapset.NewThreadUnsafeSet(caps...)
}

// Limit is a named numeric hardware limit queried once at initialization.
type Limit int

const (
	// LimitTextureSize is the maximum width/height of a 2D texture.
	LimitTextureSize Limit = iota

	// LimitCubemapSize is the maximum edge length of a cube map face.
	LimitCubemapSize

	// LimitTexture3DSize is the maximum dimension of a 3D texture.
	LimitTexture3DSize

	// LimitTextureArrayLayers is the maximum layer count of a texture array.
	LimitTextureArrayLayers

	// LimitTextureUnits is the number of combined texture image units.
	LimitTextureUnits

	// LimitVertexAttributes is the number of vertex attribute slots.
	LimitVertexAttributes

	// LimitVertexTextureUnits is the number of vertex-stage texture units.
	LimitVertexTextureUnits

	// LimitFrameBufferAttachments is the maximum color attachment count.
	LimitFrameBufferAttachments

	// LimitFrameBufferMRTs is the maximum simultaneous draw buffer count.
	LimitFrameBufferMRTs

	// LimitFrameBufferSamples is the maximum renderbuffer sample count.
	LimitFrameBufferSamples

	// LimitRenderBufferSize is the maximum renderbuffer dimension.
	LimitRenderBufferSize

	// LimitColorTextureSamples is the maximum color texture sample count.
	LimitColorTextureSamples

	// LimitDepthTextureSamples is the maximum depth texture sample count.
	LimitDepthTextureSamples

	// LimitTextureAnisotropy is the maximum anisotropic filtering level.
	LimitTextureAnisotropy

	// LimitUniformBufferBindings is the number of uniform buffer binding
	// points.
	LimitUniformBufferBindings

	// LimitShaderStorageBufferBindings is the number of shader storage
	// buffer binding points.
	LimitShaderStorageBufferBindings

	// LimitPatchVertices is the maximum patch size for tessellation.
	LimitPatchVertices

	numLimits // keep last
)

var limitNames = [...]string{
	LimitTextureSize:                 "TextureSize",
	LimitCubemapSize:                 "CubemapSize",
	LimitTexture3DSize:               "Texture3DSize",
	LimitTextureArrayLayers:          "TextureArrayLayers",
	LimitTextureUnits:                "TextureUnits",
	LimitVertexAttributes:            "VertexAttributes",
	LimitVertexTextureUnits:          "VertexTextureUnits",
	LimitFrameBufferAttachments:      "FrameBufferAttachments",
	LimitFrameBufferMRTs:             "FrameBufferMRTs",
	LimitFrameBufferSamples:          "FrameBufferSamples",
	LimitRenderBufferSize:            "RenderBufferSize",
	LimitColorTextureSamples:         "ColorTextureSamples",
	LimitDepthTextureSamples:         "DepthTextureSamples",
	LimitTextureAnisotropy:           "TextureAnisotropy",
	LimitUniformBufferBindings:       "UniformBufferBindings",
	LimitShaderStorageBufferBindings: "ShaderStorageBufferBindings",
	LimitPatchVertices:               "PatchVertices",
}

// String retrieves the limit's name for logging.
//
// Returns:
//   - string: the limit name, or "Limit(n)" for unknown values
func (l Limit) String() string {
	if l >= 0 && int(l) < len(limitNames) {
		return limitNames[l]
	}
	return "Limit(" + strconv.Itoa(int(l)) + ")"
}
