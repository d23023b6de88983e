package mesh

// Mode is the primitive topology of a mesh.
type Mode int

const (
	// Points renders each vertex as one point.
	Points Mode = iota

	// Lines renders vertex pairs as segments.
	Lines

	// LineLoop renders a closed polyline.
	LineLoop

	// LineStrip renders an open polyline.
	LineStrip

	// Triangles renders vertex triples as triangles.
	Triangles

	// TriangleStrip renders a sliding-window triangle strip.
	TriangleStrip

	// TriangleFan renders triangles sharing the first vertex.
	TriangleFan

	// Patch renders tessellation patches; the patch size comes from the
	// mesh's PatchVertexCount.
	Patch

	// Hybrid packs triangle lists, strips, and fans into one index buffer;
	// the ModeStart and ElementLengths tables describe the sub-ranges.
	Hybrid
)

var modeNames = [...]string{
	Points:        "Points",
	Lines:         "Lines",
	LineLoop:      "LineLoop",
	LineStrip:     "LineStrip",
	Triangles:     "Triangles",
	TriangleStrip: "TriangleStrip",
	TriangleFan:   "TriangleFan",
	Patch:         "Patch",
	Hybrid:        "Hybrid",
}

// String retrieves the mode name for error messages.
//
// Returns:
//   - string: the mode name, or "Mode(?)" for unknown values
func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "Mode(?)"
}

// Mesh is the geometry container consumed by the rendering backend: one
// vertex buffer per semantic slot, a topology mode, optional per-LOD index
// buffers, and the sub-range tables of hybrid meshes. The mesh owns its
// buffers; the backend only tracks their current bindings.
type Mesh struct {
	buffers    map[BufferType]*VertexBuffer
	bufferList []*VertexBuffer

	mode             Mode
	vertexCount      int
	primitiveCount   int
	instanceCount    int
	lineWidth        float32
	patchVertexCount int

	lodLevels      []*VertexBuffer
	modeStart      []int
	elementLengths []int
}

// NewMesh creates an empty triangle mesh.
//
// Returns:
//   - *Mesh: the new mesh with no buffers attached
func NewMesh() *Mesh {
	return &Mesh{
		buffers:   make(map[BufferType]*VertexBuffer),
		mode:      Triangles,
		lineWidth: 1,
	}
}

// SetBuffer attaches a vertex buffer, replacing any previous buffer of the
// same semantic type, and refreshes the cached counts.
//
// Parameters:
//   - vb: the buffer to attach
func (m *Mesh) SetBuffer(vb *VertexBuffer) {
	if old, ok := m.buffers[vb.Type()]; ok {
		for i, b := range m.bufferList {
			if b == old {
				m.bufferList[i] = vb
				break
			}
		}
	} else {
		m.bufferList = append(m.bufferList, vb)
	}
	m.buffers[vb.Type()] = vb
	m.UpdateCounts()
}

// Buffer retrieves the buffer attached to a semantic slot.
//
// Parameters:
//   - t: the semantic slot
//
// Returns:
//   - *VertexBuffer: the attached buffer, or nil
func (m *Mesh) Buffer(t BufferType) *VertexBuffer {
	return m.buffers[t]
}

// Buffers retrieves every attached buffer in attachment order.
//
// Returns:
//   - []*VertexBuffer: the live buffer list
func (m *Mesh) Buffers() []*VertexBuffer {
	return m.bufferList
}

// Mode retrieves the primitive topology.
//
// Returns:
//   - Mode: the topology
func (m *Mesh) Mode() Mode {
	return m.mode
}

// SetMode assigns the primitive topology and refreshes the cached counts.
//
// Parameters:
//   - mode: the topology
func (m *Mesh) SetMode(mode Mode) {
	m.mode = mode
	m.UpdateCounts()
}

// VertexCount retrieves the vertex count derived from the position buffer.
//
// Returns:
//   - int: the vertex count, 0 without a position buffer
func (m *Mesh) VertexCount() int {
	return m.vertexCount
}

// PrimitiveCount retrieves the primitive count derived from the index or
// position buffer and the topology.
//
// Returns:
//   - int: points, segments, or triangles depending on the mode
func (m *Mesh) PrimitiveCount() int {
	return m.primitiveCount
}

// UpdateCounts recomputes the cached vertex and primitive counts. SetBuffer
// and SetMode call it automatically; callers mutating buffer data lengths
// in place call it themselves.
func (m *Mesh) UpdateCounts() {
	if pb := m.buffers[Position]; pb != nil {
		m.vertexCount = pb.NumElements()
	} else {
		m.vertexCount = 0
	}

	elements := m.vertexCount
	if ib := m.buffers[Index]; ib != nil {
		elements = ib.NumElements()
	}

	switch m.mode {
	case Points:
		m.primitiveCount = elements
	case Lines:
		m.primitiveCount = elements / 2
	case LineLoop:
		m.primitiveCount = elements
	case LineStrip:
		m.primitiveCount = max(elements-1, 0)
	case Triangles, Patch:
		m.primitiveCount = elements / 3
	case TriangleStrip, TriangleFan:
		m.primitiveCount = max(elements-2, 0)
	case Hybrid:
		m.primitiveCount = elements
	default:
		m.primitiveCount = 0
	}
}

// InstanceCount retrieves the instance count baked into the mesh.
//
// Returns:
//   - int: the instance count, 0 when never set
func (m *Mesh) InstanceCount() int {
	return m.instanceCount
}

// SetInstanceCount bakes an instance count into the mesh; the backend draws
// max(baked, requested) instances.
//
// Parameters:
//   - count: the instance count
func (m *Mesh) SetInstanceCount(count int) {
	m.instanceCount = count
}

// LineWidth retrieves the rasterized width of line topologies.
//
// Returns:
//   - float32: the line width, 1 by default
func (m *Mesh) LineWidth() float32 {
	return m.lineWidth
}

// SetLineWidth assigns the rasterized width of line topologies.
//
// Parameters:
//   - w: the line width, at least 1
func (m *Mesh) SetLineWidth(w float32) {
	m.lineWidth = w
}

// PatchVertexCount retrieves the vertices per tessellation patch.
//
// Returns:
//   - int: the patch size
func (m *Mesh) PatchVertexCount() int {
	return m.patchVertexCount
}

// SetPatchVertexCount assigns the vertices per tessellation patch used by
// Patch mode.
//
// Parameters:
//   - n: the patch size
func (m *Mesh) SetPatchVertexCount(n int) {
	m.patchVertexCount = n
}

// SetLodLevels attaches per-level index buffers, coarsest last. When set,
// draws select the level's index buffer instead of the Index slot.
//
// Parameters:
//   - levels: index-typed buffers, one per detail level
func (m *Mesh) SetLodLevels(levels []*VertexBuffer) {
	m.lodLevels = levels
}

// NumLodLevels retrieves how many detail levels are attached.
//
// Returns:
//   - int: the level count, 0 when LOD is unused
func (m *Mesh) NumLodLevels() int {
	return len(m.lodLevels)
}

// LodLevel retrieves the index buffer of one detail level.
//
// Parameters:
//   - lod: the level, 0 = most detailed
//
// Returns:
//   - *VertexBuffer: the level's index buffer, nil when out of range
func (m *Mesh) LodLevel(lod int) *VertexBuffer {
	if lod < 0 || lod >= len(m.lodLevels) {
		return nil
	}
	return m.lodLevels[lod]
}

// SetModeStart assigns the hybrid sub-range class boundaries: the indices
// into the element-length table where triangle lists, strips, and fans
// begin, in that order.
//
// Parameters:
//   - starts: three boundaries [lists, strips, fans]
func (m *Mesh) SetModeStart(starts []int) {
	m.modeStart = starts
}

// ModeStart retrieves the hybrid sub-range class boundaries.
//
// Returns:
//   - []int: the [lists, strips, fans] table, nil for non-hybrid meshes
func (m *Mesh) ModeStart() []int {
	return m.modeStart
}

// SetElementLengths assigns the index count of each hybrid sub-range.
//
// Parameters:
//   - lengths: indices consumed by each sub-range, in buffer order
func (m *Mesh) SetElementLengths(lengths []int) {
	m.elementLengths = lengths
}

// ElementLengths retrieves the index count of each hybrid sub-range.
//
// Returns:
//   - []int: the length table, nil for non-hybrid meshes
func (m *Mesh) ElementLengths() []int {
	return m.elementLengths
}
