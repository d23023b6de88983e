package opengl

import (
	"fmt"

	"github.com/prism3d/prism-go/engine/mesh"
	"github.com/prism3d/prism-go/engine/renderer"
	"github.com/prism3d/prism-go/engine/renderer/shader"
	"github.com/prism3d/prism-go/engine/resource"
)

var usageValues = [...]uint32{
	resource.UsageStatic:  STATIC_DRAW,
	resource.UsageDynamic: DYNAMIC_DRAW,
	resource.UsageStream:  STREAM_DRAW,
}

func convertUsage(u resource.Usage) (uint32, error) {
	if u >= 0 && int(u) < len(usageValues) {
		return usageValues[u], nil
	}
	return 0, fmt.Errorf("%w: unrecognized buffer usage %d", renderer.ErrUnsupportedOperation, u)
}

// bindVertexBufferTarget binds the buffer to its natural target through the
// context cache and reports the target used.
func (r *glRenderer) bindVertexBufferTarget(vb *mesh.VertexBuffer) uint32 {
	if vb.Type() == mesh.Index {
		if r.ctx.boundElementVBO != vb.ID() {
			r.gl.BindBuffer(ELEMENT_ARRAY_BUFFER, vb.ID())
			r.ctx.boundElementVBO = vb.ID()
		}
		return ELEMENT_ARRAY_BUFFER
	}
	if r.ctx.boundArrayVBO != vb.ID() {
		r.gl.BindBuffer(ARRAY_BUFFER, vb.ID())
		r.ctx.boundArrayVBO = vb.ID()
	}
	return ARRAY_BUFFER
}

func (r *glRenderer) UpdateBufferData(vb *mesh.VertexBuffer) error {
	if vb.Usage() == resource.UsageCPUOnly {
		return fmt.Errorf("%w: %s buffer is CPU-only and cannot upload",
			renderer.ErrIllegalArgument, vb.Type())
	}
	usage, err := convertUsage(vb.Usage())
	if err != nil {
		return err
	}

	created := false
	if vb.ID() == 0 {
		vb.SetID(r.gl.GenBuffer())
		r.objects.register(vb)
		r.stats.OnNewBuffer()
		created = true
	}

	target := r.bindVertexBufferTarget(vb)
	data := vb.Data()

	// A fresh driver buffer has no storage to patch, so partial ranges only
	// apply to an existing allocation. Data replacement always marks the
	// full range, keeping ranges within the allocated size.
	if created || vb.Dirty().Full() {
		r.gl.BufferData(target, len(data), data, usage)
		r.stats.OnBufferUpload(len(data))
	} else {
		for _, rg := range vb.Dirty().Ranges() {
			r.gl.BufferSubData(target, rg.Start, data[rg.Start:rg.End()])
			r.stats.OnBufferUpload(rg.Length)
		}
	}

	vb.Dirty().Clear()
	vb.ClearUpdateNeeded()
	return nil
}

func (r *glRenderer) UpdateBufferObject(bo *shader.BufferObject) error {
	var target uint32
	switch bo.Kind() {
	case shader.UniformBlock:
		if r.gl3 == nil || !r.caps.Contains(renderer.CapUniformBufferObject) {
			return fmt.Errorf("%w: uniform buffer objects not supported", renderer.ErrUnsupportedHardware)
		}
		if limit := r.limits[renderer.LimitUniformBufferBindings]; bo.Binding() < 0 || bo.Binding() >= limit {
			return fmt.Errorf("%w: uniform buffer binding %d, hardware supports [0,%d)",
				renderer.ErrIllegalArgument, bo.Binding(), limit)
		}
		target = UNIFORM_BUFFER
	case shader.StorageBlock:
		if r.gl4 == nil || !r.caps.Contains(renderer.CapShaderStorageBufferObject) {
			return fmt.Errorf("%w: shader storage buffer objects not supported", renderer.ErrUnsupportedHardware)
		}
		if limit := r.limits[renderer.LimitShaderStorageBufferBindings]; bo.Binding() < 0 || bo.Binding() >= limit {
			return fmt.Errorf("%w: shader storage binding %d, hardware supports [0,%d)",
				renderer.ErrIllegalArgument, bo.Binding(), limit)
		}
		target = SHADER_STORAGE_BUFFER
	default:
		return fmt.Errorf("%w: unrecognized buffer kind %v", renderer.ErrIllegalArgument, bo.Kind())
	}
	usage, err := convertUsage(bo.Usage())
	if err != nil {
		return err
	}

	created := false
	if bo.ID() == 0 {
		bo.SetID(r.gl.GenBuffer())
		r.objects.register(bo)
		r.stats.OnNewBuffer()
		created = true
	}

	// Binding to the indexed base also binds the generic target, so the
	// data upload below lands in this buffer.
	r.gl3.BindBufferBase(target, uint32(bo.Binding()), bo.ID())

	data := bo.Data()
	if created || bo.Dirty().Full() {
		r.gl.BufferData(target, len(data), data, usage)
		r.stats.OnBufferUpload(len(data))
	} else {
		for _, rg := range bo.Dirty().Ranges() {
			r.gl.BufferSubData(target, rg.Start, data[rg.Start:rg.End()])
			r.stats.OnBufferUpload(rg.Length)
		}
	}

	bo.Dirty().Clear()
	bo.ClearUpdateNeeded()
	return nil
}

func (r *glRenderer) DeleteBuffer(vb *mesh.VertexBuffer) {
	id := vb.ID()
	if id == 0 {
		renderer.Logger().Debug("vertex buffer was never uploaded, nothing to delete", "type", vb.Type().String())
		return
	}
	r.gl.DeleteBuffer(id)
	// The driver resets target bindings that pointed at a deleted buffer.
	if r.ctx.boundArrayVBO == id {
		r.ctx.boundArrayVBO = 0
	}
	if r.ctx.boundElementVBO == id {
		r.ctx.boundElementVBO = 0
	}
	r.objects.unregister(vb)
	r.stats.OnDeleteBuffer()
	vb.Handle.Reset()
}

func (r *glRenderer) DeleteBufferObject(bo *shader.BufferObject) {
	if bo.ID() == 0 {
		renderer.Logger().Debug("buffer object was never uploaded, nothing to delete", "kind", bo.Kind().String())
		return
	}
	r.gl.DeleteBuffer(bo.ID())
	r.objects.unregister(bo)
	r.stats.OnDeleteBuffer()
	bo.Handle.Reset()
}
