package opengl

import (
	"fmt"
	"strconv"
	"strings"
	"unsafe"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/prism3d/prism-go/engine/renderer"
	"github.com/prism3d/prism-go/engine/renderer/shader"
)

var stageGLTypes = [...]uint32{
	shader.StageVertex:         VERTEX_SHADER,
	shader.StageFragment:       FRAGMENT_SHADER,
	shader.StageGeometry:       GEOMETRY_SHADER,
	shader.StageTessControl:    TESS_CONTROL_SHADER,
	shader.StageTessEvaluation: TESS_EVALUATION_SHADER,
}

func (r *glRenderer) convertShaderStage(stage shader.Stage) (uint32, error) {
	switch stage {
	case shader.StageVertex, shader.StageFragment:
	case shader.StageGeometry:
		if !r.caps.Contains(renderer.CapGeometryShader) {
			return 0, fmt.Errorf("%w: geometry shaders not supported", renderer.ErrUnsupportedHardware)
		}
	case shader.StageTessControl, shader.StageTessEvaluation:
		if !r.caps.Contains(renderer.CapTessellationShader) {
			return 0, fmt.Errorf("%w: tessellation shaders not supported", renderer.ErrUnsupportedHardware)
		}
	default:
		return 0, fmt.Errorf("%w: unrecognized shader stage %d", renderer.ErrUnsupportedOperation, stage)
	}
	return stageGLTypes[stage], nil
}

// assembleShaderSource builds the full compilable text: version line, stage
// define, optional sRGB define, caller defines, then the raw source.
func (r *glRenderer) assembleShaderSource(src *shader.Source) (string, error) {
	language := src.Language()
	if language == "" {
		language = "GLSL100"
	}
	if !strings.HasPrefix(language, "GLSL") {
		return "", fmt.Errorf("%w: unrecognized shading language %q", renderer.ErrUnsupportedOperation, language)
	}
	version, err := strconv.Atoi(language[4:])
	if err != nil {
		return "", fmt.Errorf("%w: unrecognized shading language %q", renderer.ErrUnsupportedOperation, language)
	}

	es := r.caps.Contains(renderer.CapOpenGLES20)

	var sb strings.Builder
	sb.Grow(len(src.Text()) + len(src.Defines()) + 64)
	if version == 100 {
		// Desktop drivers reject "#version 100": the nearest desktop
		// dialect is 110.
		if es {
			sb.WriteString("#version 100\n")
		} else {
			sb.WriteString("#version 110\n")
		}
	} else {
		sb.WriteString("#version ")
		sb.WriteString(language[4:])
		if es && version >= 300 {
			sb.WriteString(" es")
		} else if !es && version >= 150 && r.caps.Contains(renderer.CapCoreProfile) {
			sb.WriteString(" core")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("#define ")
	sb.WriteString(src.Stage().Define())
	sb.WriteString(" 1\n")

	if r.linearizeSrgb {
		sb.WriteString("#define SRGB 1\n")
	}

	sb.WriteString(src.Defines())
	sb.WriteString(src.Text())
	return sb.String(), nil
}

func (r *glRenderer) updateShaderSourceData(src *shader.Source) error {
	id := src.ID()
	if id == 0 {
		stage, err := r.convertShaderStage(src.Stage())
		if err != nil {
			return err
		}
		id = r.gl.CreateShader(stage)
		if id == 0 {
			return fmt.Errorf("%w: driver returned no shader object for %s source %q",
				renderer.ErrInvalidState, src.Stage(), src.Name())
		}
		src.SetID(id)
	}

	text, err := r.assembleShaderSource(src)
	if err != nil {
		return err
	}
	r.gl.ShaderSource(id, text)
	r.gl.CompileShader(id)

	compiled := r.gl.GetShaderParameter(id, COMPILE_STATUS) == TRUE
	var infoLog string
	if !compiled || r.validation {
		infoLog = r.gl.GetShaderInfoLog(id)
	}

	if !compiled {
		if infoLog == "" {
			infoLog = "<not provided>"
		}
		return fmt.Errorf("%w: %s source %q: %s",
			renderer.ErrShaderCompile, src.Stage(), src.Name(), infoLog)
	}
	if infoLog != "" {
		renderer.Logger().Warn("shader compiled with warnings",
			"source", src.Name(), "stage", src.Stage().String(), "log", infoLog)
	}
	src.ClearUpdateNeeded()
	return nil
}

func (r *glRenderer) updateShaderData(sh *shader.Shader) error {
	id := sh.ID()
	created := false
	if id == 0 {
		id = r.gl.CreateProgram()
		if id == 0 {
			return fmt.Errorf("%w: driver returned no program object", renderer.ErrInvalidState)
		}
		sh.SetID(id)
		created = true
	}

	for _, src := range sh.Sources() {
		if src.UpdateNeeded() {
			if err := r.updateShaderSourceData(src); err != nil {
				return err
			}
		}
		r.gl.AttachShader(id, src.ID())
	}

	if r.gl3 != nil && r.caps.Contains(renderer.CapOpenGL30) {
		// Core profiles have no default fragment output; pin the
		// conventional name to color number zero before linking.
		r.gl3.BindFragDataLocation(id, 0, "outFragColor")
	}

	r.gl.LinkProgram(id)

	linked := r.gl.GetProgramParameter(id, LINK_STATUS) == TRUE
	var infoLog string
	if !linked || r.validation {
		infoLog = r.gl.GetProgramInfoLog(id)
	}

	if !linked {
		if infoLog == "" {
			infoLog = "<not provided>"
		}
		return fmt.Errorf("%w: %s", renderer.ErrShaderLink, infoLog)
	}
	if infoLog != "" {
		renderer.Logger().Warn("shader linked with warnings", "log", infoLog)
	}

	sh.ClearUpdateNeeded()
	if created {
		r.objects.register(sh)
		r.stats.OnNewShader()
	} else {
		// Locations are not stable across re-links.
		sh.ResetLocations()
	}
	return nil
}

func (r *glRenderer) SetShader(sh *shader.Shader) error {
	if sh == nil {
		return fmt.Errorf("%w: no shader to bind", renderer.ErrInvalidState)
	}
	if sh.UpdateNeeded() {
		if err := r.updateShaderData(sh); err != nil {
			return err
		}
	}
	r.bindProgram(sh)
	if err := r.flushUniforms(sh); err != nil {
		return err
	}
	return r.flushBufferBlocks(sh)
}

func (r *glRenderer) bindProgram(sh *shader.Shader) {
	ref := sh.Ref()
	if r.ctx.boundShader != ref {
		r.gl.UseProgram(sh.ID())
		r.stats.OnShaderUse(true)
		r.ctx.boundShader = ref
		r.ctx.boundShaderProgram = sh.ID()
	} else {
		r.stats.OnShaderUse(false)
	}
	r.ctx.boundShaderObject = sh
}

func (r *glRenderer) flushUniforms(sh *shader.Shader) error {
	for _, u := range sh.Uniforms() {
		if u.UpdateNeeded() {
			if err := r.updateUniform(sh, u); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *glRenderer) updateUniform(sh *shader.Shader, u *shader.Uniform) error {
	// Checked before location resolution so non-finite values surface
	// even when the linker dropped the uniform.
	if r.validation {
		if err := validateUniform(u); err != nil {
			return err
		}
	}

	loc := u.Location()
	if loc == shader.LocNotDeclared {
		return nil
	}
	if loc == shader.LocUnknown {
		loc = r.gl.GetUniformLocation(sh.ID(), u.Name())
		if loc < 0 {
			loc = shader.LocNotDeclared
			renderer.Logger().Debug("uniform not declared in linked program", "uniform", u.Name())
		}
		u.SetLocation(loc)
		if loc == shader.LocNotDeclared {
			u.ClearUpdateNeeded()
			return nil
		}
	}

	r.stats.OnUniformSet()
	u.ClearUpdateNeeded()

	switch u.VarType() {
	case shader.VarFloat:
		r.gl.Uniform1f(loc, u.Value().(float32))
	case shader.VarInt:
		r.gl.Uniform1i(loc, u.Value().(int32))
	case shader.VarBool:
		v := int32(0)
		if u.Value().(bool) {
			v = 1
		}
		r.gl.Uniform1i(loc, v)
	case shader.VarVec2:
		v := u.Value().(mgl32.Vec2)
		r.gl.Uniform2f(loc, v[0], v[1])
	case shader.VarVec3:
		v := u.Value().(mgl32.Vec3)
		r.gl.Uniform3f(loc, v[0], v[1], v[2])
	case shader.VarVec4:
		v := u.Value().(mgl32.Vec4)
		r.gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
	case shader.VarMat3:
		v := u.Value().(mgl32.Mat3)
		r.gl.UniformMatrix3fv(loc, v[:])
	case shader.VarMat4:
		v := u.Value().(mgl32.Mat4)
		r.gl.UniformMatrix4fv(loc, v[:])
	case shader.VarFloatArray:
		r.gl.Uniform1fv(loc, u.Value().([]float32))
	case shader.VarIntArray:
		r.gl.Uniform1iv(loc, u.Value().([]int32))
	case shader.VarVec2Array:
		r.gl.Uniform2fv(loc, flatVecs(u.Value().([]mgl32.Vec2), 2))
	case shader.VarVec3Array:
		r.gl.Uniform3fv(loc, flatVecs(u.Value().([]mgl32.Vec3), 3))
	case shader.VarVec4Array:
		r.gl.Uniform4fv(loc, flatVecs(u.Value().([]mgl32.Vec4), 4))
	case shader.VarMat4Array:
		r.gl.UniformMatrix4fv(loc, flatVecs(u.Value().([]mgl32.Mat4), 16))
	default:
		return fmt.Errorf("%w: unsupported uniform type %v for %q",
			renderer.ErrUnsupportedOperation, u.VarType(), u.Name())
	}
	return nil
}

// flatVecs reinterprets a slice of fixed-size float32 arrays as one flat
// float32 slice without copying. width is the element count per entry.
func flatVecs[T any](v []T, width int) []float32 {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&v[0])), len(v)*width)
}

func validateUniform(u *shader.Uniform) error {
	bad := func(f float32) bool {
		return math32.IsNaN(f) || math32.IsInf(f, 0)
	}
	invalid := false
	switch u.VarType() {
	case shader.VarFloat:
		invalid = bad(u.Value().(float32))
	case shader.VarVec2:
		v := u.Value().(mgl32.Vec2)
		invalid = bad(v[0]) || bad(v[1])
	case shader.VarVec3:
		v := u.Value().(mgl32.Vec3)
		invalid = bad(v[0]) || bad(v[1]) || bad(v[2])
	case shader.VarVec4:
		v := u.Value().(mgl32.Vec4)
		invalid = bad(v[0]) || bad(v[1]) || bad(v[2]) || bad(v[3])
	case shader.VarMat3:
		v := u.Value().(mgl32.Mat3)
		for _, f := range v {
			invalid = invalid || bad(f)
		}
	case shader.VarMat4:
		v := u.Value().(mgl32.Mat4)
		for _, f := range v {
			invalid = invalid || bad(f)
		}
	case shader.VarFloatArray:
		for _, f := range u.Value().([]float32) {
			invalid = invalid || bad(f)
		}
	}
	if invalid {
		return fmt.Errorf("%w: uniform %q carries a non-finite value", renderer.ErrIllegalArgument, u.Name())
	}
	return nil
}

func (r *glRenderer) flushBufferBlocks(sh *shader.Shader) error {
	for _, b := range sh.BufferBlocks() {
		if b.UpdateNeeded() {
			if err := r.updateBufferBlock(sh, b); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *glRenderer) updateBufferBlock(sh *shader.Shader, b *shader.BufferBlock) error {
	bo := b.Buffer()
	if bo == nil {
		renderer.Logger().Debug("buffer block has no buffer attached", "block", b.Name())
		b.ClearUpdateNeeded()
		return nil
	}

	switch b.Kind() {
	case shader.UniformBlock:
		if r.gl3 == nil || !r.caps.Contains(renderer.CapUniformBufferObject) {
			return fmt.Errorf("%w: uniform buffer blocks not supported", renderer.ErrUnsupportedHardware)
		}
	case shader.StorageBlock:
		if r.gl4 == nil || !r.caps.Contains(renderer.CapShaderStorageBufferObject) {
			return fmt.Errorf("%w: shader storage blocks not supported", renderer.ErrUnsupportedHardware)
		}
	default:
		return fmt.Errorf("%w: unrecognized block kind %v for %q",
			renderer.ErrIllegalArgument, b.Kind(), b.Name())
	}

	index := b.Index()
	if index == shader.LocUnknown {
		var raw uint32
		if b.Kind() == shader.UniformBlock {
			raw = r.gl3.GetUniformBlockIndex(sh.ID(), b.Name())
		} else {
			raw = r.gl4.GetProgramResourceIndex(sh.ID(), SHADER_STORAGE_BLOCK, b.Name())
		}
		if raw == INVALID_INDEX {
			index = shader.LocNotDeclared
			renderer.Logger().Debug("buffer block not declared in linked program", "block", b.Name())
		} else {
			index = int32(raw)
		}
		b.SetIndex(index)
	}
	if index == shader.LocNotDeclared {
		b.ClearUpdateNeeded()
		return nil
	}

	if bo.ID() == 0 || bo.UpdateNeeded() {
		if err := r.UpdateBufferObject(bo); err != nil {
			return err
		}
	}

	if b.Kind() == shader.UniformBlock {
		r.gl3.UniformBlockBinding(sh.ID(), uint32(index), uint32(bo.Binding()))
	} else {
		r.gl4.ShaderStorageBlockBinding(sh.ID(), uint32(index), uint32(bo.Binding()))
	}
	b.ClearUpdateNeeded()
	return nil
}

func (r *glRenderer) DeleteShaderSource(src *shader.Source) {
	if src.ID() == 0 {
		renderer.Logger().Warn("shader source was never uploaded, nothing to delete", "source", src.Name())
		return
	}
	r.gl.DeleteShader(src.ID())
	r.objects.unregister(src)
	src.Handle.Reset()
}

func (r *glRenderer) DeleteShader(sh *shader.Shader) {
	if sh.ID() == 0 {
		renderer.Logger().Warn("shader was never uploaded, nothing to delete")
		return
	}
	for _, src := range sh.Sources() {
		if src.ID() != 0 {
			r.gl.DetachShader(sh.ID(), src.ID())
			r.DeleteShaderSource(src)
		}
	}
	r.gl.DeleteProgram(sh.ID())
	r.objects.unregister(sh)
	r.stats.OnDeleteShader()
	sh.Reset()
}
