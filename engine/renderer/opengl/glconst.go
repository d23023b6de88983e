package opengl

// Constant values mirror the OpenGL registry. Only the names the backend
// touches are defined here, so a missing name is a sign the call emitting it
// was never wired up.

// String and integer queries.
const (
	VENDOR                   = 0x1F00
	RENDERER                 = 0x1F01
	VERSION                  = 0x1F02
	EXTENSIONS               = 0x1F03
	SHADING_LANGUAGE_VERSION = 0x8B8C
	NUM_EXTENSIONS           = 0x821D
	CONTEXT_PROFILE_MASK     = 0x9126
	CONTEXT_CORE_PROFILE_BIT = 0x00000001
	FRAMEBUFFER_BINDING      = 0x8CA6
	DRAW_BUFFER              = 0x0C01
	READ_BUFFER              = 0x0C02
)

// Hardware limit queries.
const (
	MAX_TEXTURE_SIZE                   = 0x0D33
	MAX_CUBE_MAP_TEXTURE_SIZE          = 0x851C
	MAX_3D_TEXTURE_SIZE                = 0x8073
	MAX_ARRAY_TEXTURE_LAYERS           = 0x88FF
	MAX_COMBINED_TEXTURE_IMAGE_UNITS   = 0x8B4D
	MAX_VERTEX_TEXTURE_IMAGE_UNITS     = 0x8B4C
	MAX_VERTEX_ATTRIBS                 = 0x8869
	MAX_COLOR_TEXTURE_SAMPLES          = 0x910E
	MAX_DEPTH_TEXTURE_SAMPLES          = 0x910F
	MAX_RENDERBUFFER_SIZE              = 0x84E8
	MAX_COLOR_ATTACHMENTS              = 0x8CDF
	MAX_SAMPLES                        = 0x8D57
	MAX_DRAW_BUFFERS                   = 0x8824
	MAX_TEXTURE_MAX_ANISOTROPY         = 0x84FF
	MAX_PATCH_VERTICES                 = 0x8E7D
	MAX_UNIFORM_BUFFER_BINDINGS        = 0x8A2F
	MAX_SHADER_STORAGE_BUFFER_BINDINGS = 0x90DD
)

// Global toggles and pixel store state.
const (
	DEPTH_TEST                = 0x0B71
	CULL_FACE                 = 0x0B44
	BLEND                     = 0x0BE2
	STENCIL_TEST              = 0x0B90
	SCISSOR_TEST              = 0x0C11
	POLYGON_OFFSET_FILL       = 0x8037
	SAMPLE_ALPHA_TO_COVERAGE  = 0x809E
	VERTEX_PROGRAM_POINT_SIZE = 0x8642
	POINT_SPRITE              = 0x8861
	TEXTURE_CUBE_MAP_SEAMLESS = 0x884F
	FRAMEBUFFER_SRGB          = 0x8DB9
	UNPACK_ALIGNMENT          = 0x0CF5
)

// Clear masks.
const (
	DEPTH_BUFFER_BIT   = 0x00000100
	STENCIL_BUFFER_BIT = 0x00000400
	COLOR_BUFFER_BIT   = 0x00004000
)

// Comparison functions, shared by depth, stencil and texture compare state.
const (
	NEVER    = 0x0200
	LESS     = 0x0201
	EQUAL    = 0x0202
	LEQUAL   = 0x0203
	GREATER  = 0x0204
	NOTEQUAL = 0x0205
	GEQUAL   = 0x0206
	ALWAYS   = 0x0207
)

// Stencil operations.
const (
	KEEP      = 0x1E00
	REPLACE   = 0x1E01
	INCR      = 0x1E02
	DECR      = 0x1E03
	INCR_WRAP = 0x8507
	DECR_WRAP = 0x8508
	INVERT    = 0x150A
)

// Blend factors and equations.
const (
	ZERO                = 0
	ONE                 = 1
	SRC_COLOR           = 0x0300
	ONE_MINUS_SRC_COLOR = 0x0301
	SRC_ALPHA           = 0x0302
	ONE_MINUS_SRC_ALPHA = 0x0303
	DST_ALPHA           = 0x0304
	ONE_MINUS_DST_ALPHA = 0x0305
	DST_COLOR           = 0x0306
	ONE_MINUS_DST_COLOR = 0x0307
	SRC_ALPHA_SATURATE  = 0x0308

	FUNC_ADD              = 0x8006
	MIN                   = 0x8007
	MAX                   = 0x8008
	FUNC_SUBTRACT         = 0x800A
	FUNC_REVERSE_SUBTRACT = 0x800B
)

// Face culling and polygon rasterization.
const (
	FRONT          = 0x0404
	BACK           = 0x0405
	FRONT_AND_BACK = 0x0408
	LINE           = 0x1B01
	FILL           = 0x1B02
)

// Shader object types and query parameters.
const (
	FRAGMENT_SHADER        = 0x8B30
	VERTEX_SHADER          = 0x8B31
	GEOMETRY_SHADER        = 0x8DD9
	TESS_EVALUATION_SHADER = 0x8E87
	TESS_CONTROL_SHADER    = 0x8E88
	COMPILE_STATUS         = 0x8B81
	LINK_STATUS            = 0x8B82
	TRUE                   = 1
	SHADER_STORAGE_BLOCK   = 0x92E6
	INVALID_INDEX          = 0xFFFFFFFF
)

// Buffer targets and usage hints.
const (
	ARRAY_BUFFER          = 0x8892
	ELEMENT_ARRAY_BUFFER  = 0x8893
	UNIFORM_BUFFER        = 0x8A11
	SHADER_STORAGE_BUFFER = 0x90D2
	STREAM_DRAW           = 0x88E0
	STATIC_DRAW           = 0x88E4
	DYNAMIC_DRAW          = 0x88E8
)

// Texture targets, units and sampler parameters.
const (
	TEXTURE0                     = 0x84C0
	TEXTURE_2D                   = 0x0DE1
	TEXTURE_3D                   = 0x806F
	TEXTURE_2D_ARRAY             = 0x8C1A
	TEXTURE_2D_MULTISAMPLE       = 0x9100
	TEXTURE_2D_MULTISAMPLE_ARRAY = 0x9102
	TEXTURE_CUBE_MAP             = 0x8513
	TEXTURE_CUBE_MAP_POSITIVE_X  = 0x8515

	TEXTURE_MAG_FILTER     = 0x2800
	TEXTURE_MIN_FILTER     = 0x2801
	TEXTURE_WRAP_S         = 0x2802
	TEXTURE_WRAP_T         = 0x2803
	TEXTURE_WRAP_R         = 0x8072
	TEXTURE_MAX_ANISOTROPY = 0x84FE
	TEXTURE_COMPARE_MODE   = 0x884C
	TEXTURE_COMPARE_FUNC   = 0x884D
	COMPARE_REF_TO_TEXTURE = 0x884E

	NONE                   = 0
	NEAREST                = 0x2600
	LINEAR                 = 0x2601
	NEAREST_MIPMAP_NEAREST = 0x2700
	LINEAR_MIPMAP_NEAREST  = 0x2701
	NEAREST_MIPMAP_LINEAR  = 0x2702
	LINEAR_MIPMAP_LINEAR   = 0x2703

	REPEAT          = 0x2901
	MIRRORED_REPEAT = 0x8370
	CLAMP_TO_EDGE   = 0x812F
)

// Component types for pixel transfer and vertex attributes.
const (
	BYTE                   = 0x1400
	UNSIGNED_BYTE          = 0x1401
	SHORT                  = 0x1402
	UNSIGNED_SHORT         = 0x1403
	INT                    = 0x1404
	UNSIGNED_INT           = 0x1405
	FLOAT                  = 0x1406
	DOUBLE                 = 0x140A
	HALF_FLOAT             = 0x140B
	UNSIGNED_SHORT_5_6_5   = 0x8363
	UNSIGNED_SHORT_5_5_5_1 = 0x8034
	UNSIGNED_INT_24_8      = 0x84FA
)

// Pixel transfer formats.
const (
	DEPTH_COMPONENT = 0x1902
	RED             = 0x1903
	ALPHA           = 0x1906
	RGB             = 0x1907
	RGBA            = 0x1908
	LUMINANCE       = 0x1909
	RG              = 0x8227
	DEPTH_STENCIL   = 0x84F9
)

// Sized internal formats.
const (
	ALPHA8             = 0x803C
	LUMINANCE8         = 0x8040
	R8                 = 0x8229
	RG8                = 0x822B
	RGB8               = 0x8051
	RGBA8              = 0x8058
	SRGB8              = 0x8C41
	SRGB8_ALPHA8       = 0x8C43
	RGB565             = 0x8D62
	RGB5_A1            = 0x8057
	R16F               = 0x822D
	R32F               = 0x822E
	RG16F              = 0x822F
	RG32F              = 0x8230
	RGB16F             = 0x881B
	RGB32F             = 0x8815
	RGBA16F            = 0x881A
	RGBA32F            = 0x8814
	DEPTH_COMPONENT16  = 0x81A5
	DEPTH_COMPONENT24  = 0x81A6
	DEPTH_COMPONENT32F = 0x8CAC
	DEPTH24_STENCIL8   = 0x88F0
)

// Framebuffer targets, attachment points and completeness statuses.
const (
	FRAMEBUFFER      = 0x8D40
	READ_FRAMEBUFFER = 0x8CA8
	DRAW_FRAMEBUFFER = 0x8CA9
	RENDERBUFFER     = 0x8D41

	COLOR_ATTACHMENT0        = 0x8CE0
	DEPTH_ATTACHMENT         = 0x8D00
	DEPTH_STENCIL_ATTACHMENT = 0x821A

	FRAMEBUFFER_COMPLETE                      = 0x8CD5
	FRAMEBUFFER_UNDEFINED                     = 0x8219
	FRAMEBUFFER_INCOMPLETE_ATTACHMENT         = 0x8CD6
	FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT = 0x8CD7
	FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER        = 0x8CDB
	FRAMEBUFFER_INCOMPLETE_READ_BUFFER        = 0x8CDC
	FRAMEBUFFER_UNSUPPORTED                   = 0x8CDD
	FRAMEBUFFER_INCOMPLETE_MULTISAMPLE        = 0x8D56
	FRAMEBUFFER_INCOMPLETE_LAYER_TARGETS      = 0x8DA8
)

// Primitive topologies.
const (
	POINTS         = 0x0000
	LINES          = 0x0001
	LINE_LOOP      = 0x0002
	LINE_STRIP     = 0x0003
	TRIANGLES      = 0x0004
	TRIANGLE_STRIP = 0x0005
	TRIANGLE_FAN   = 0x0006
	PATCHES        = 0x000E
)
