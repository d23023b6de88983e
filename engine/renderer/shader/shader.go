package shader

import (
	"github.com/prism3d/prism-go/engine/resource"
)

// Stage identifies the pipeline stage a shader source compiles for.
type Stage int

const (
	// StageVertex is the vertex processing stage.
	StageVertex Stage = iota

	// StageFragment is the fragment processing stage.
	StageFragment

	// StageGeometry is the optional geometry stage.
	StageGeometry

	// StageTessControl is the tessellation control stage.
	StageTessControl

	// StageTessEvaluation is the tessellation evaluation stage.
	StageTessEvaluation
)

var stageDefines = [...]string{
	StageVertex:         "VERTEX_SHADER",
	StageFragment:       "FRAGMENT_SHADER",
	StageGeometry:       "GEOMETRY_SHADER",
	StageTessControl:    "TESSELLATION_CONTROL_SHADER",
	StageTessEvaluation: "TESSELLATION_EVALUATION_SHADER",
}

var stageNames = [...]string{
	StageVertex:         "Vertex",
	StageFragment:       "Fragment",
	StageGeometry:       "Geometry",
	StageTessControl:    "TessellationControl",
	StageTessEvaluation: "TessellationEvaluation",
}

// Define retrieves the preprocessor symbol identifying this stage, injected
// ahead of the source text so one file can host several stages.
//
// Returns:
//   - string: the stage define, e.g. "VERTEX_SHADER"
func (s Stage) Define() string {
	if int(s) < len(stageDefines) {
		return stageDefines[s]
	}
	return ""
}

// String retrieves the stage name for logs and error messages.
//
// Returns:
//   - string: the stage name, or "Stage(n)" for unknown values
func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "Stage(?)"
}

// Source is one compilable shader translation unit: raw GLSL text plus the
// language version, target stage, and preprocessor defines the backend
// prepends before compilation. The embedded handle tracks the driver shader
// object and its compile-needed flag.
type Source struct {
	resource.Handle

	name     string
	stage    Stage
	language string
	defines  string
	source   string
}

// NewSource creates a shader source marked for compilation.
//
// Parameters:
//   - name: diagnostic name carried into compile error messages
//   - stage: the pipeline stage this source compiles for
//
// Returns:
//   - *Source: the new source with no text attached yet
func NewSource(name string, stage Stage) *Source {
	s := &Source{name: name, stage: stage}
	s.SetUpdateNeeded()
	return s
}

// Name retrieves the diagnostic name.
//
// Returns:
//   - string: the name given at construction
func (s *Source) Name() string {
	return s.name
}

// Stage retrieves the pipeline stage.
//
// Returns:
//   - Stage: the stage this source compiles for
func (s *Source) Stage() Stage {
	return s.stage
}

// Language retrieves the shading language version token, e.g. "GLSL150".
//
// Returns:
//   - string: the language token, empty if never set
func (s *Source) Language() string {
	return s.language
}

// Defines retrieves the preprocessor define block, already formatted as
// "#define ..." lines.
//
// Returns:
//   - string: the define block, possibly empty
func (s *Source) Defines() string {
	return s.defines
}

// Text retrieves the raw GLSL source text without the generated preamble.
//
// Returns:
//   - string: the source text
func (s *Source) Text() string {
	return s.source
}

// SetSource replaces the source text and language and marks the unit for
// recompilation.
//
// Parameters:
//   - text: raw GLSL source, without a #version line
//   - language: version token such as "GLSL100", "GLSL150", "GLSL330"
func (s *Source) SetSource(text, language string) {
	s.source = text
	s.language = language
	s.SetUpdateNeeded()
}

// SetDefines replaces the preprocessor define block and marks the unit for
// recompilation.
//
// Parameters:
//   - defines: complete "#define NAME VALUE" lines, newline-terminated
func (s *Source) SetDefines(defines string) {
	s.defines = defines
	s.SetUpdateNeeded()
}

// Shader is a linkable program: a set of stage sources plus the uniform,
// buffer-block, and attribute location tables resolved against the linked
// driver program. The embedded handle tracks the program object; its
// update-needed flag drives re-linking.
type Shader struct {
	resource.Handle

	sources      []*Source
	uniforms     map[string]*Uniform
	bufferBlocks map[string]*BufferBlock
	attribLocs   map[string]int32
}

// NewShader creates an empty shader marked for linking.
//
// Returns:
//   - *Shader: the new shader with no sources attached
func NewShader() *Shader {
	sh := &Shader{
		uniforms:     make(map[string]*Uniform),
		bufferBlocks: make(map[string]*BufferBlock),
		attribLocs:   make(map[string]int32),
	}
	sh.SetUpdateNeeded()
	return sh
}

// AddSource attaches a stage source and marks the program for re-linking.
//
// Parameters:
//   - src: the source to attach
func (sh *Shader) AddSource(src *Source) {
	sh.sources = append(sh.sources, src)
	sh.SetUpdateNeeded()
}

// Sources retrieves the attached stage sources in attachment order.
//
// Returns:
//   - []*Source: the attached sources, owned by the shader
func (sh *Shader) Sources() []*Source {
	return sh.sources
}

// Uniform retrieves the named uniform, creating its descriptor on first
// use. The descriptor starts with an unresolved location; the backend
// resolves it lazily against the linked program.
//
// Parameters:
//   - name: the uniform name as declared in the GLSL source
//
// Returns:
//   - *Uniform: the uniform descriptor, never nil
func (sh *Shader) Uniform(name string) *Uniform {
	u, ok := sh.uniforms[name]
	if !ok {
		u = newUniform(name)
		sh.uniforms[name] = u
	}
	return u
}

// Uniforms retrieves the descriptor table for iteration during flushes.
//
// Returns:
//   - map[string]*Uniform: live table keyed by uniform name
func (sh *Shader) Uniforms() map[string]*Uniform {
	return sh.uniforms
}

// BufferBlock retrieves the named uniform or storage block descriptor,
// creating it on first use.
//
// Parameters:
//   - name: the block name as declared in the GLSL source
//   - kind: whether the block is a uniform or shader-storage block
//
// Returns:
//   - *BufferBlock: the block descriptor, never nil
func (sh *Shader) BufferBlock(name string, kind BlockKind) *BufferBlock {
	b, ok := sh.bufferBlocks[name]
	if !ok {
		b = newBufferBlock(name, kind)
		sh.bufferBlocks[name] = b
	}
	return b
}

// BufferBlocks retrieves the block table for iteration during flushes.
//
// Returns:
//   - map[string]*BufferBlock: live table keyed by block name
func (sh *Shader) BufferBlocks() map[string]*BufferBlock {
	return sh.bufferBlocks
}

// AttribLocation retrieves the cached location of a vertex attribute.
//
// Parameters:
//   - name: the attribute name as declared in the GLSL source
//
// Returns:
//   - int32: the cached location, or LocUnknown when never resolved
func (sh *Shader) AttribLocation(name string) int32 {
	if loc, ok := sh.attribLocs[name]; ok {
		return loc
	}
	return LocUnknown
}

// SetAttribLocation caches a resolved attribute location, including the
// LocNotDeclared sentinel for attributes the linked program optimized away.
//
// Parameters:
//   - name: the attribute name
//   - loc: the resolved location or LocNotDeclared
func (sh *Shader) SetAttribLocation(name string, loc int32) {
	sh.attribLocs[name] = loc
}

// ResetLocations invalidates every resolved uniform location, block index,
// and attribute location. Driver location assignment is not stable across
// re-links, so the backend calls this after every successful link.
func (sh *Shader) ResetLocations() {
	for _, u := range sh.uniforms {
		u.reset()
	}
	for _, b := range sh.bufferBlocks {
		b.reset()
	}
	clear(sh.attribLocs)
}

// Reset forgets the driver program and every source object, marking the
// whole shader for re-upload. Used after context loss and deletion.
func (sh *Shader) Reset() {
	sh.Handle.Reset()
	for _, src := range sh.sources {
		src.Handle.Reset()
	}
	sh.ResetLocations()
}
