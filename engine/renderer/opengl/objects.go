package opengl

import (
	"github.com/prism3d/prism-go/engine/mesh"
	"github.com/prism3d/prism-go/engine/renderer"
	"github.com/prism3d/prism-go/engine/renderer/shader"
	"github.com/prism3d/prism-go/engine/texture"
)

// objectManager remembers every GPU object the renderer created, so
// shutdown and context loss can sweep all of them without help from the
// caller. It also carries a small queue of objects scheduled for deletion
// at frame end, used when replacing driver objects that may still be
// referenced by in-flight work.
type objectManager struct {
	objects  map[any]struct{}
	disposed []any
}

func newObjectManager() *objectManager {
	return &objectManager{objects: make(map[any]struct{})}
}

func (m *objectManager) register(obj any) {
	m.objects[obj] = struct{}{}
}

func (m *objectManager) unregister(obj any) {
	delete(m.objects, obj)
}

// disposeLater schedules an object for deletion in the next PostFrame.
func (m *objectManager) disposeLater(obj any) {
	m.disposed = append(m.disposed, obj)
}

// deleteDisposed drains the end-of-frame queue.
func (m *objectManager) deleteDisposed(r *glRenderer) {
	for _, obj := range m.disposed {
		r.deleteObject(obj)
	}
	m.disposed = m.disposed[:0]
}

// deleteAllObjects deletes every tracked object from the driver. The
// registry empties through the unregister calls of the per-type deletes.
func (m *objectManager) deleteAllObjects(r *glRenderer) {
	for obj := range m.objects {
		r.deleteObject(obj)
	}
	m.disposed = m.disposed[:0]
}

// resetObjects forgets the driver side of every tracked object without
// touching the driver. For use after a context loss, when the old object
// names are dead anyway. The registry empties; objects re-register when
// they re-upload.
func (m *objectManager) resetObjects() {
	for obj := range m.objects {
		switch o := obj.(type) {
		case *shader.Shader:
			o.Reset()
		case *shader.Source:
			o.Handle.Reset()
		case *shader.BufferObject:
			o.Handle.Reset()
		case *mesh.VertexBuffer:
			o.Handle.Reset()
		case *texture.Image:
			o.Reset()
		case *texture.FrameBuffer:
			o.Reset()
		}
	}
	clear(m.objects)
	m.disposed = m.disposed[:0]
}

// deleteObject routes an object to its typed deletion path.
func (r *glRenderer) deleteObject(obj any) {
	switch o := obj.(type) {
	case *shader.Shader:
		r.DeleteShader(o)
	case *shader.Source:
		r.DeleteShaderSource(o)
	case *shader.BufferObject:
		r.DeleteBufferObject(o)
	case *mesh.VertexBuffer:
		r.DeleteBuffer(o)
	case *texture.Image:
		r.DeleteImage(o)
	case *texture.FrameBuffer:
		r.DeleteFrameBuffer(o)
	case *texture.RenderBuffer:
		r.deleteRenderBuffer(o)
	default:
		renderer.Logger().Warn("unknown object type in disposal queue")
	}
}
