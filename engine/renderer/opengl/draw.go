package opengl

import (
	"fmt"

	"github.com/prism3d/prism-go/engine/mesh"
	"github.com/prism3d/prism-go/engine/renderer"
	"github.com/prism3d/prism-go/engine/renderer/shader"
	"github.com/prism3d/prism-go/engine/resource"
)

// topologyValues maps mesh modes to primitive topologies. Hybrid carries no
// single topology and is resolved per element list at draw time.
var topologyValues = [...]uint32{
	mesh.Points:        POINTS,
	mesh.Lines:         LINES,
	mesh.LineLoop:      LINE_LOOP,
	mesh.LineStrip:     LINE_STRIP,
	mesh.Triangles:     TRIANGLES,
	mesh.TriangleStrip: TRIANGLE_STRIP,
	mesh.TriangleFan:   TRIANGLE_FAN,
	mesh.Patch:         PATCHES,
}

func convertTopology(m mesh.Mode) (uint32, error) {
	if m >= 0 && int(m) < len(topologyValues) {
		return topologyValues[m], nil
	}
	return 0, fmt.Errorf("%w: mesh mode %v has no single topology", renderer.ErrUnsupportedOperation, m)
}

var vertexFormatValues = [...]uint32{
	mesh.FormatFloat:         FLOAT,
	mesh.FormatDouble:        DOUBLE,
	mesh.FormatByte:          BYTE,
	mesh.FormatUnsignedByte:  UNSIGNED_BYTE,
	mesh.FormatShort:         SHORT,
	mesh.FormatUnsignedShort: UNSIGNED_SHORT,
	mesh.FormatInt:           INT,
	mesh.FormatUnsignedInt:   UNSIGNED_INT,
}

func convertVertexFormat(f mesh.Format) (uint32, error) {
	if f >= 0 && int(f) < len(vertexFormatValues) {
		return vertexFormatValues[f], nil
	}
	return 0, fmt.Errorf("%w: unrecognized vertex format %d", renderer.ErrUnsupportedOperation, f)
}

// convertIndexFormat resolves the element type of an index buffer, gated on
// hardware support for wide indices.
//
// Parameters:
//   - f: the index buffer's component format
//
// Returns:
//   - uint32: the element type constant
//   - error: renderer.ErrUnsupportedHardware for 32-bit indices without the
//     capability, renderer.ErrUnsupportedOperation for signed or non-integer
//     formats
func (r *glRenderer) convertIndexFormat(f mesh.Format) (uint32, error) {
	switch f {
	case mesh.FormatUnsignedByte:
		return UNSIGNED_BYTE, nil
	case mesh.FormatUnsignedShort:
		return UNSIGNED_SHORT, nil
	case mesh.FormatUnsignedInt:
		if !r.caps.Contains(renderer.CapIntegerIndexBuffer) {
			return 0, fmt.Errorf("%w: 32-bit index buffers not supported", renderer.ErrUnsupportedHardware)
		}
		return UNSIGNED_INT, nil
	default:
		return 0, fmt.Errorf("%w: index buffers cannot use the %v format", renderer.ErrUnsupportedOperation, f)
	}
}

// setVertexAttrib points one of the program's vertex attributes at the
// buffer's data, enabling its array slots and keeping each slot's instancing
// divisor current. Buffers with a stride describe a layout inside the
// interleaved backing buffer and source their bytes from it.
func (r *glRenderer) setVertexAttrib(sh *shader.Shader, vb, interleaved *mesh.VertexBuffer) error {
	if vb.Type() == mesh.Index {
		return fmt.Errorf("%w: index buffers carry no vertex attribute", renderer.ErrIllegalArgument)
	}

	name := vb.Type().AttribName()
	loc := sh.AttribLocation(name)
	if loc == shader.LocNotDeclared {
		return nil
	}
	if loc == shader.LocUnknown {
		loc = r.gl.GetAttribLocation(r.ctx.boundShaderProgram, name)
		if loc < 0 {
			sh.SetAttribLocation(name, shader.LocNotDeclared)
			renderer.Logger().Debug("vertex attribute not declared in linked program", "attribute", name)
			return nil
		}
		sh.SetAttribLocation(name, loc)
	}

	if vb.Instanced() && (r.glext == nil || !r.caps.Contains(renderer.CapMeshInstancing)) {
		return fmt.Errorf("%w: instanced vertex attributes not supported", renderer.ErrUnsupportedHardware)
	}

	xtype, err := convertVertexFormat(vb.Format())
	if err != nil {
		return err
	}

	// Attributes wider than four components occupy consecutive locations,
	// four components per slot.
	slots := 1
	if vb.Components() > 4 {
		if vb.Components()%4 != 0 {
			return fmt.Errorf("%w: multi-slot attributes must use a multiple of 4 components, %s has %d",
				renderer.ErrIllegalArgument, name, vb.Components())
		}
		slots = vb.Components() / 4
	}

	if vb.UpdateNeeded() && interleaved == nil {
		if err := r.UpdateBufferData(vb); err != nil {
			return err
		}
	}

	for i := range uint32(slots) {
		if !r.ctx.attribIndexList.moveToNew(uint32(loc) + i) {
			r.gl.EnableVertexAttribArray(uint32(loc) + i)
		}
	}
	// A view buffer owns no driver object of its own, so the slot cache
	// tracks the backing interleaved buffer instead.
	target := vb
	if interleaved != nil {
		target = interleaved
	}
	if r.ctx.boundAttribs[loc] == target.Ref() {
		return nil
	}
	if r.ctx.boundArrayVBO != target.ID() {
		r.gl.BindBuffer(ARRAY_BUFFER, target.ID())
		r.ctx.boundArrayVBO = target.ID()
	}

	if slots == 1 {
		r.gl.VertexAttribPointer(uint32(loc), int32(vb.Components()), xtype,
			vb.Normalized(), int32(vb.Stride()), vb.Offset())
	} else {
		// Each slot maps the next four components of the element.
		slotBytes := 4 * vb.Format().ComponentSize()
		for i := range slots {
			r.gl.VertexAttribPointer(uint32(loc)+uint32(i), 4, xtype,
				vb.Normalized(), int32(slots*slotBytes), vb.Offset()+i*slotBytes)
		}
	}

	for i := range slots {
		slot := uint32(loc) + uint32(i)
		want := 0
		if vb.Instanced() {
			want = vb.InstanceSpan()
		}
		have := r.ctx.attribDivisors[slot]
		if have < 0 {
			have = 0
		}
		if want != have {
			r.glext.VertexAttribDivisor(slot, uint32(want))
		}
		r.ctx.attribDivisors[slot] = want
		r.ctx.boundAttribs[slot] = target.Ref()
	}
	return nil
}

// clearVertexAttribs disables the attribute slots the previous draw enabled
// but the current one did not claim, resetting their divisors so the slots
// advance per vertex if a later shader reuses them.
func (r *glRenderer) clearVertexAttribs() {
	for _, slot := range r.ctx.attribIndexList.oldIDs {
		r.gl.DisableVertexAttribArray(slot)
		if r.ctx.attribDivisors[slot] > 0 {
			r.glext.VertexAttribDivisor(slot, 0)
			r.ctx.attribDivisors[slot] = 0
		}
		r.ctx.boundAttribs[slot] = resource.Ref{}
	}
	r.ctx.attribIndexList.copyNewToOld()
}

// drawTriangleList issues the element draw calls for an indexed mesh. Hybrid
// meshes walk their element lists with the topology switching at the strip
// and fan boundaries recorded in the mode start table.
func (r *glRenderer) drawTriangleList(indexBuf *mesh.VertexBuffer, m *mesh.Mesh, count int) error {
	if indexBuf.Type() != mesh.Index {
		return fmt.Errorf("%w: only index buffers draw triangle lists", renderer.ErrIllegalArgument)
	}
	xtype, err := r.convertIndexFormat(indexBuf.Format())
	if err != nil {
		return err
	}
	if indexBuf.UpdateNeeded() {
		if err := r.UpdateBufferData(indexBuf); err != nil {
			return err
		}
	}
	if r.ctx.boundElementVBO != indexBuf.ID() {
		r.gl.BindBuffer(ELEMENT_ARRAY_BUFFER, indexBuf.ID())
		r.ctx.boundElementVBO = indexBuf.ID()
	}

	vertCount := uint32(m.VertexCount())

	if m.Mode() == mesh.Hybrid {
		modeStart := m.ModeStart()
		if len(modeStart) < 3 {
			return fmt.Errorf("%w: hybrid mesh lacks its mode start table", renderer.ErrInvalidState)
		}
		stripStart, fanStart := modeStart[1], modeStart[2]
		topology := uint32(TRIANGLES)
		offset := 0
		for i, length := range m.ElementLengths() {
			if i == stripStart {
				topology = TRIANGLE_STRIP
			} else if i == fanStart {
				topology = TRIANGLE_FAN
			}
			if count > 1 {
				r.glext.DrawElementsInstanced(topology, int32(length), xtype, offset, int32(count))
			} else {
				r.gl.DrawRangeElements(topology, 0, vertCount, int32(length), xtype, offset)
			}
			offset += length * indexBuf.Format().ComponentSize()
		}
		return nil
	}

	topology, err := convertTopology(m.Mode())
	if err != nil {
		return err
	}
	n := int32(indexBuf.NumElements())
	if count > 1 {
		r.glext.DrawElementsInstanced(topology, n, xtype, 0, int32(count))
	} else {
		r.gl.DrawRangeElements(topology, 0, vertCount, n, xtype, 0)
	}
	return nil
}

func (r *glRenderer) RenderMesh(m *mesh.Mesh, lod int, count int) error {
	if m.VertexCount() == 0 || m.PrimitiveCount() == 0 || count == 0 {
		return nil
	}
	sh := r.ctx.boundShaderObject
	if sh == nil || r.ctx.boundShaderProgram == 0 {
		return fmt.Errorf("%w: no shader bound for drawing", renderer.ErrInvalidState)
	}

	count = max(count, m.InstanceCount())
	if count > 1 && !r.caps.Contains(renderer.CapMeshInstancing) {
		return fmt.Errorf("%w: mesh instancing not supported", renderer.ErrUnsupportedHardware)
	}

	if lw := m.LineWidth(); lw != r.ctx.lineWidth {
		r.gl.LineWidth(lw)
		r.ctx.lineWidth = lw
	}

	if m.Mode() == mesh.Patch {
		if r.gl4 == nil || !r.caps.Contains(renderer.CapTessellationShader) {
			return fmt.Errorf("%w: patch topology requires tessellation support", renderer.ErrUnsupportedHardware)
		}
		r.gl4.PatchParameter(int32(m.PatchVertexCount()))
	}

	interleaved := m.Buffer(mesh.InterleavedData)
	if interleaved != nil && interleaved.UpdateNeeded() {
		if err := r.UpdateBufferData(interleaved); err != nil {
			return err
		}
	}

	var indices *mesh.VertexBuffer
	if m.NumLodLevels() > 0 {
		if lod < 0 || lod >= m.NumLodLevels() {
			return fmt.Errorf("%w: lod %d outside the mesh's %d levels",
				renderer.ErrIllegalArgument, lod, m.NumLodLevels())
		}
		indices = m.LodLevel(lod)
	} else {
		indices = m.Buffer(mesh.Index)
	}

	for _, vb := range m.Buffers() {
		if vb.Type() == mesh.InterleavedData || vb.Type() == mesh.Index {
			continue
		}
		if vb.Usage() == resource.UsageCPUOnly {
			continue
		}
		var err error
		if vb.Stride() == 0 {
			err = r.setVertexAttrib(sh, vb, nil)
		} else {
			err = r.setVertexAttrib(sh, vb, interleaved)
		}
		if err != nil {
			return err
		}
	}
	r.clearVertexAttribs()

	triangles := m.PrimitiveCount()
	if m.NumLodLevels() > 0 && m.Mode() == mesh.Triangles {
		triangles = indices.NumElements() / 3
	}

	if indices != nil {
		if err := r.drawTriangleList(indices, m, count); err != nil {
			return err
		}
	} else {
		if m.Mode() == mesh.Hybrid {
			return fmt.Errorf("%w: hybrid meshes need an index buffer", renderer.ErrUnsupportedOperation)
		}
		topology, err := convertTopology(m.Mode())
		if err != nil {
			return err
		}
		if count > 1 {
			r.glext.DrawArraysInstanced(topology, 0, int32(m.VertexCount()), int32(count))
		} else {
			r.gl.DrawArrays(topology, 0, int32(m.VertexCount()))
		}
	}

	r.stats.OnMeshDrawn(m.VertexCount()*count, triangles*count)
	return nil
}
