package renderer

// Statistics counts resource lifecycle events and per-frame activity. The
// backend feeds it from every create, bind, draw, and delete; hosts read it
// through Snapshot for overlays and profiling. Alive-object counts persist
// across frames, activity counters reset on NewFrame.
//
// Like the rest of the rendering core it is single-threaded state: only the
// rendering thread may touch it.
type Statistics struct {
	snap Snapshot
}

// Snapshot is one copyable view of the counters.
type Snapshot struct {
	// Frames counts completed frames since startup.
	Frames uint64

	// Shaders, Textures, FrameBuffers, and Buffers count alive GPU objects.
	Shaders      int
	Textures     int
	FrameBuffers int
	Buffers      int

	// Memory is the lifetime total of bytes pushed to GPU buffers.
	Memory int64

	// Per-frame activity, cleared by NewFrame.

	// DrawCalls counts draw commands issued this frame.
	DrawCalls int

	// Vertices and Triangles count geometry submitted this frame.
	Vertices  int
	Triangles int

	// ShaderUses counts draws using any shader; ShaderSwitches counts the
	// subset that had to re-bind the program.
	ShaderUses     int
	ShaderSwitches int

	// TextureUses counts texture references; TextureBinds counts the subset
	// that had to re-bind the unit.
	TextureUses  int
	TextureBinds int

	// FrameBufferUses counts framebuffer references; FrameBufferSwitches
	// counts the subset that re-bound the target.
	FrameBufferUses     int
	FrameBufferSwitches int

	// UniformsSet counts uniform value uploads this frame.
	UniformsSet int

	// BufferUploads counts buffer data transfers this frame.
	BufferUploads int
}

// Snapshot retrieves a copy of the current counters.
//
// Returns:
//   - Snapshot: the counter values at the time of the call
func (s *Statistics) Snapshot() Snapshot {
	return s.snap
}

// NewFrame clears the per-frame activity counters and advances the frame
// count. Called by the backend at each frame boundary.
func (s *Statistics) NewFrame() {
	alive := s.snap
	s.snap = Snapshot{
		Frames:       alive.Frames + 1,
		Shaders:      alive.Shaders,
		Textures:     alive.Textures,
		FrameBuffers: alive.FrameBuffers,
		Buffers:      alive.Buffers,
		Memory:       alive.Memory,
	}
}

// ClearMemory zeroes the alive-object and memory counters after a context
// reset, when every GPU object is gone regardless of bookkeeping.
func (s *Statistics) ClearMemory() {
	s.snap.Shaders = 0
	s.snap.Textures = 0
	s.snap.FrameBuffers = 0
	s.snap.Buffers = 0
	s.snap.Memory = 0
}

// OnNewShader records a linked shader program.
func (s *Statistics) OnNewShader() { s.snap.Shaders++ }

// OnDeleteShader records a deleted shader program.
func (s *Statistics) OnDeleteShader() { s.snap.Shaders-- }

// OnShaderUse records a draw-time shader reference.
//
// Parameters:
//   - switched: true when the program had to be re-bound
func (s *Statistics) OnShaderUse(switched bool) {
	s.snap.ShaderUses++
	if switched {
		s.snap.ShaderSwitches++
	}
}

// OnUniformSet records one uniform value upload.
func (s *Statistics) OnUniformSet() { s.snap.UniformsSet++ }

// OnNewTexture records an uploaded image.
func (s *Statistics) OnNewTexture() { s.snap.Textures++ }

// OnDeleteTexture records a deleted image.
func (s *Statistics) OnDeleteTexture() { s.snap.Textures-- }

// OnTextureUse records a draw-time texture reference.
//
// Parameters:
//   - bound: true when the unit had to be re-bound
func (s *Statistics) OnTextureUse(bound bool) {
	s.snap.TextureUses++
	if bound {
		s.snap.TextureBinds++
	}
}

// OnNewFrameBuffer records a created framebuffer.
func (s *Statistics) OnNewFrameBuffer() { s.snap.FrameBuffers++ }

// OnDeleteFrameBuffer records a deleted framebuffer.
func (s *Statistics) OnDeleteFrameBuffer() { s.snap.FrameBuffers-- }

// OnFrameBufferUse records a framebuffer reference.
//
// Parameters:
//   - switched: true when the binding changed
func (s *Statistics) OnFrameBufferUse(switched bool) {
	s.snap.FrameBufferUses++
	if switched {
		s.snap.FrameBufferSwitches++
	}
}

// OnNewBuffer records a created vertex or storage buffer.
func (s *Statistics) OnNewBuffer() { s.snap.Buffers++ }

// OnDeleteBuffer records a deleted vertex or storage buffer.
func (s *Statistics) OnDeleteBuffer() { s.snap.Buffers-- }

// OnBufferUpload records bytes transferred into a GPU buffer.
//
// Parameters:
//   - bytes: the transfer size
func (s *Statistics) OnBufferUpload(bytes int) {
	s.snap.BufferUploads++
	s.snap.Memory += int64(bytes)
}

// OnMeshDrawn records one issued draw command and its geometry volume.
//
// Parameters:
//   - vertices: vertex count submitted, after instancing multiplication
//   - triangles: triangle count submitted, 0 for non-triangle topologies
func (s *Statistics) OnMeshDrawn(vertices, triangles int) {
	s.snap.DrawCalls++
	s.snap.Vertices += vertices
	s.snap.Triangles += triangles
}
