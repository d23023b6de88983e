package opengl

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/prism3d/prism-go/engine/renderer"
)

var versionPattern = regexp.MustCompile(`(\d+)\.(\d+)`)

// extractVersion pulls the first major.minor pair out of a GL version
// string and encodes it as major*100 + minor*10, so "2.1" becomes 210 and
// "4.10" becomes 410. Strings like "OpenGL ES 3.0" and "4.10 NVIDIA xx.y"
// parse through the same scan.
//
// Parameters:
//   - version: the raw VERSION or SHADING_LANGUAGE_VERSION string
//
// Returns:
//   - int: the encoded version, or -1 when no version token is present
func extractVersion(version string) int {
	m := versionPattern.FindStringSubmatch(version)
	if m == nil {
		return -1
	}
	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	// GLSL strings write the minor as two digits ("1.30", "4.10").
	if minor >= 10 && minor%10 == 0 {
		minor /= 10
	}
	return major*100 + minor*10
}

// Version thresholds in ascending order; every threshold at or below the
// detected version contributes its capability.
var openGLVersionCaps = []struct {
	version int
	cap     renderer.Capability
}{
	{200, renderer.CapOpenGL20},
	{210, renderer.CapOpenGL21},
	{300, renderer.CapOpenGL30},
	{310, renderer.CapOpenGL31},
	{320, renderer.CapOpenGL32},
	{330, renderer.CapOpenGL33},
	{400, renderer.CapOpenGL40},
	{410, renderer.CapOpenGL41},
}

var glslVersionCaps = []struct {
	version int
	cap     renderer.Capability
}{
	{100, renderer.CapGLSL100},
	{110, renderer.CapGLSL110},
	{120, renderer.CapGLSL120},
	{130, renderer.CapGLSL130},
	{140, renderer.CapGLSL140},
	{150, renderer.CapGLSL150},
	{330, renderer.CapGLSL330},
	{400, renderer.CapGLSL400},
	{410, renderer.CapGLSL410},
}

func (r *glRenderer) hasExtension(name string) bool {
	return r.extensions.Contains(name)
}

// loadCapabilities interrogates the context once: version-derived
// capabilities, the extension list, extension-derived capabilities, and
// the numeric limits. Called from Initialize.
func (r *glRenderer) loadCapabilities() error {
	if r.gl2 != nil {
		r.loadCapabilitiesGL2()
	} else {
		r.loadCapabilitiesES()
	}
	if !r.caps.Contains(renderer.CapOpenGL20) && !r.caps.Contains(renderer.CapOpenGLES20) {
		return fmt.Errorf("%w: OpenGL 2.0 or higher required, got %q",
			renderer.ErrUnsupportedHardware, r.gl.GetString(VERSION))
	}

	r.loadExtensions()
	r.loadCapabilitiesCommon()
	r.loadLimits()

	renderer.Logger().Info("graphics context initialized",
		"vendor", r.gl.GetString(VENDOR),
		"renderer", r.gl.GetString(RENDERER),
		"version", r.gl.GetString(VERSION),
		"glsl", r.gl.GetString(SHADING_LANGUAGE_VERSION),
		"capabilities", r.caps.Cardinality(),
	)
	return nil
}

func (r *glRenderer) loadCapabilitiesGL2() {
	oglVer := extractVersion(r.gl.GetString(VERSION))
	for _, t := range openGLVersionCaps {
		if oglVer >= t.version {
			r.caps.Add(t.cap)
		}
	}

	glslVer := extractVersion(r.gl.GetString(SHADING_LANGUAGE_VERSION))
	for _, t := range glslVersionCaps {
		if glslVer >= t.version {
			r.caps.Add(t.cap)
		}
	}
	// Desktop drivers accept 100/110 sources regardless of the reported
	// GLSL version.
	r.caps.Add(renderer.CapGLSL100)
	r.caps.Add(renderer.CapGLSL110)

	if r.caps.Contains(renderer.CapOpenGL32) && r.gl3 != nil {
		profile := r.gl.GetInteger(CONTEXT_PROFILE_MASK)
		if profile&CONTEXT_CORE_PROFILE_BIT != 0 {
			r.caps.Add(renderer.CapCoreProfile)
		}
	}
}

func (r *glRenderer) loadCapabilitiesES() {
	esVer := extractVersion(r.gl.GetString(VERSION))
	if esVer >= 200 {
		r.caps.Add(renderer.CapOpenGLES20)
	}
	if esVer >= 300 {
		r.caps.Add(renderer.CapOpenGLES30)
	}
	r.caps.Add(renderer.CapGLSL100)
}

func (r *glRenderer) loadExtensions() {
	if r.gl3 != nil && r.caps.Contains(renderer.CapOpenGL30) {
		count := int(r.gl.GetInteger(NUM_EXTENSIONS))
		for i := 0; i < count; i++ {
			r.extensions.Add(r.gl3.GetStringi(EXTENSIONS, uint32(i)))
		}
		return
	}
	for _, name := range strings.Fields(r.gl.GetString(EXTENSIONS)) {
		r.extensions.Add(name)
	}
}

func (r *glRenderer) loadCapabilitiesCommon() {
	caps := r.caps
	log := renderer.Logger()

	r.limits[renderer.LimitVertexTextureUnits] = int(r.gl.GetInteger(MAX_VERTEX_TEXTURE_IMAGE_UNITS))
	if r.limits[renderer.LimitVertexTextureUnits] > 0 {
		caps.Add(renderer.CapVertexTextureFetch)
	}

	if r.hasExtension("GL_ARB_texture_float") || r.hasExtension("GL_OES_texture_float") ||
		caps.Contains(renderer.CapOpenGL30) {
		caps.Add(renderer.CapFloatTexture)
	}

	if r.gl2 != nil || r.hasExtension("GL_OES_depth_texture") {
		caps.Add(renderer.CapDepthTexture)
	}

	if r.gl2 != nil || r.hasExtension("GL_OES_texture_3D") {
		caps.Add(renderer.CapTexture3D)
		r.limits[renderer.LimitTexture3DSize] = int(r.gl.GetInteger(MAX_3D_TEXTURE_SIZE))
	}

	if caps.Contains(renderer.CapOpenGL30) || r.hasExtension("GL_EXT_texture_array") {
		caps.Add(renderer.CapTextureArray)
		r.limits[renderer.LimitTextureArrayLayers] = int(r.gl.GetInteger(MAX_ARRAY_TEXTURE_LAYERS))
	}

	if caps.Contains(renderer.CapOpenGL30) || caps.Contains(renderer.CapOpenGLES30) ||
		r.hasExtension("GL_ARB_texture_non_power_of_two") || r.hasExtension("GL_OES_texture_npot") {
		caps.Add(renderer.CapNonPowerOfTwoTextures)
	} else if caps.Contains(renderer.CapOpenGLES20) {
		caps.Add(renderer.CapPartialNonPowerOfTwoTextures)
	} else {
		log.Warn("non-power-of-2 textures unsupported, some textures may fail to upload")
	}

	if r.glext != nil {
		if caps.Contains(renderer.CapOpenGL33) ||
			(r.hasExtension("GL_ARB_draw_instanced") && r.hasExtension("GL_ARB_instanced_arrays")) {
			caps.Add(renderer.CapMeshInstancing)
		}
	}

	if r.gl2 != nil || r.hasExtension("GL_OES_element_index_uint") {
		caps.Add(renderer.CapIntegerIndexBuffer)
	}

	if r.gl3 != nil && (caps.Contains(renderer.CapOpenGL30) || r.hasExtension("GL_ARB_vertex_array_object")) {
		caps.Add(renderer.CapVertexBufferArray)
	}

	if caps.Contains(renderer.CapOpenGL30) || r.hasExtension("GL_ARB_multisample") {
		caps.Add(renderer.CapMultisample)
	}

	if r.glext != nil && (caps.Contains(renderer.CapOpenGL32) || r.hasExtension("GL_ARB_texture_multisample")) {
		caps.Add(renderer.CapTextureMultisample)
		r.limits[renderer.LimitColorTextureSamples] = int(r.gl.GetInteger(MAX_COLOR_TEXTURE_SAMPLES))
		r.limits[renderer.LimitDepthTextureSamples] = int(r.gl.GetInteger(MAX_DEPTH_TEXTURE_SAMPLES))
	}

	if r.glfbo != nil && (caps.Contains(renderer.CapOpenGL30) ||
		r.hasExtension("GL_EXT_framebuffer_object") || r.hasExtension("GL_ARB_framebuffer_object")) {
		caps.Add(renderer.CapFrameBuffer)
		r.limits[renderer.LimitRenderBufferSize] = int(r.gl.GetInteger(MAX_RENDERBUFFER_SIZE))
		r.limits[renderer.LimitFrameBufferAttachments] = int(r.gl.GetInteger(MAX_COLOR_ATTACHMENTS))

		if caps.Contains(renderer.CapOpenGL30) || r.hasExtension("GL_EXT_framebuffer_blit") {
			caps.Add(renderer.CapFrameBufferBlit)
		}
		if caps.Contains(renderer.CapOpenGL30) || r.hasExtension("GL_EXT_framebuffer_multisample") {
			caps.Add(renderer.CapFrameBufferMultisample)
			r.limits[renderer.LimitFrameBufferSamples] = int(r.gl.GetInteger(MAX_SAMPLES))
		}
		if r.glext != nil && (caps.Contains(renderer.CapOpenGL30) || r.hasExtension("GL_ARB_draw_buffers")) {
			r.limits[renderer.LimitFrameBufferMRTs] = int(r.gl.GetInteger(MAX_DRAW_BUFFERS))
			if r.limits[renderer.LimitFrameBufferMRTs] > 1 {
				caps.Add(renderer.CapFrameBufferMRT)
			}
		}
	}

	if r.hasExtension("GL_EXT_texture_filter_anisotropic") {
		caps.Add(renderer.CapTextureFilterAnisotropic)
		r.limits[renderer.LimitTextureAnisotropy] = int(r.gl.GetFloat(MAX_TEXTURE_MAX_ANISOTROPY))
	}

	if caps.Contains(renderer.CapOpenGL30) ||
		(r.hasExtension("GL_EXT_texture_sRGB") && r.hasExtension("GL_ARB_framebuffer_sRGB")) {
		caps.Add(renderer.CapSrgb)
	}

	if caps.Contains(renderer.CapOpenGL32) || r.hasExtension("GL_ARB_seamless_cube_map") {
		caps.Add(renderer.CapSeamlessCubemap)
	}

	if caps.Contains(renderer.CapGLSL150) &&
		(caps.Contains(renderer.CapOpenGL32) || r.hasExtension("GL_ARB_geometry_shader4")) {
		caps.Add(renderer.CapGeometryShader)
	}

	if r.gl4 != nil && (caps.Contains(renderer.CapOpenGL40) || r.hasExtension("GL_ARB_tessellation_shader")) {
		caps.Add(renderer.CapTessellationShader)
		r.limits[renderer.LimitPatchVertices] = int(r.gl.GetInteger(MAX_PATCH_VERTICES))
	}

	if r.gl3 != nil && (caps.Contains(renderer.CapOpenGL31) || r.hasExtension("GL_ARB_uniform_buffer_object")) {
		caps.Add(renderer.CapUniformBufferObject)
		r.limits[renderer.LimitUniformBufferBindings] = int(r.gl.GetInteger(MAX_UNIFORM_BUFFER_BINDINGS))
	}

	if r.gl4 != nil && r.hasExtension("GL_ARB_shader_storage_buffer_object") {
		caps.Add(renderer.CapShaderStorageBufferObject)
		r.limits[renderer.LimitShaderStorageBufferBindings] = int(r.gl.GetInteger(MAX_SHADER_STORAGE_BUFFER_BINDINGS))
	}

	if r.gl2 != nil || caps.Contains(renderer.CapOpenGLES30) {
		caps.Add(renderer.CapUnpackRowLength)
	}
}

func (r *glRenderer) loadLimits() {
	r.limits[renderer.LimitTextureSize] = int(r.gl.GetInteger(MAX_TEXTURE_SIZE))
	r.limits[renderer.LimitCubemapSize] = int(r.gl.GetInteger(MAX_CUBE_MAP_TEXTURE_SIZE))
	r.limits[renderer.LimitTextureUnits] = int(r.gl.GetInteger(MAX_COMBINED_TEXTURE_IMAGE_UNITS))
	r.limits[renderer.LimitVertexAttributes] = int(r.gl.GetInteger(MAX_VERTEX_ATTRIBS))
}
