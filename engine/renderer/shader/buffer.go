package shader

import (
	"github.com/prism3d/prism-go/engine/resource"
)

// BlockKind distinguishes the two interface-block flavors a shader can
// declare.
type BlockKind int

const (
	// UniformBlock is a uniform buffer block (std140-style).
	UniformBlock BlockKind = iota

	// StorageBlock is a shader storage buffer block.
	StorageBlock
)

// String retrieves the kind name for error messages.
//
// Returns:
//   - string: "UniformBlock", "StorageBlock", or "BlockKind(?)"
func (k BlockKind) String() string {
	switch k {
	case UniformBlock:
		return "UniformBlock"
	case StorageBlock:
		return "StorageBlock"
	default:
		return "BlockKind(?)"
	}
}

// BufferObject is the CPU-side store of a uniform or shader-storage buffer:
// raw bytes, the binding point it attaches to, and sparse dirty-range
// tracking so partial edits flush as sub-range updates.
type BufferObject struct {
	resource.Handle

	kind    BlockKind
	binding int
	usage   resource.Usage
	data    []byte
	dirty   resource.DirtyRegions
}

// NewBufferObject creates a buffer store marked for a full first upload.
//
// Parameters:
//   - kind: uniform or storage flavor, deciding the bind target
//   - binding: the numeric binding point the buffer attaches to
//
// Returns:
//   - *BufferObject: the new store with no data yet
func NewBufferObject(kind BlockKind, binding int) *BufferObject {
	bo := &BufferObject{kind: kind, binding: binding, usage: resource.UsageDynamic}
	bo.SetUpdateNeeded()
	return bo
}

// Kind retrieves the block flavor.
//
// Returns:
//   - BlockKind: uniform or storage
func (bo *BufferObject) Kind() BlockKind {
	return bo.kind
}

// Binding retrieves the numeric binding point.
//
// Returns:
//   - int: the binding point index
func (bo *BufferObject) Binding() int {
	return bo.binding
}

// Usage retrieves the allocation hint.
//
// Returns:
//   - resource.Usage: the hint, UsageDynamic by default
func (bo *BufferObject) Usage() resource.Usage {
	return bo.usage
}

// SetUsage replaces the allocation hint for the next (re)allocation.
//
// Parameters:
//   - u: the new hint
func (bo *BufferObject) SetUsage(u resource.Usage) {
	bo.usage = u
}

// Data retrieves the CPU-side bytes. Callers editing the slice in place
// must mark the edited span through MarkDirty or the change never uploads.
//
// Returns:
//   - []byte: the live backing slice
func (bo *BufferObject) Data() []byte {
	return bo.data
}

// SetData replaces the entire CPU-side content and marks the full range
// dirty, absorbing any pending partial marks.
//
// Parameters:
//   - data: the new content; the slice is retained, not copied
func (bo *BufferObject) SetData(data []byte) {
	bo.data = data
	bo.dirty.MarkAll()
	bo.SetUpdateNeeded()
}

// MarkDirty marks a byte span of the current content as changed.
//
// Parameters:
//   - start: first changed byte offset
//   - length: number of changed bytes
func (bo *BufferObject) MarkDirty(start, length int) {
	bo.dirty.MarkRange(start, length)
	bo.SetUpdateNeeded()
}

// Dirty retrieves the dirty-range tracker for the backend's flush.
//
// Returns:
//   - *resource.DirtyRegions: the live tracker
func (bo *BufferObject) Dirty() *resource.DirtyRegions {
	return &bo.dirty
}

// BufferBlock is one named interface block of a shader: the lazily resolved
// block index plus the buffer object bound to it.
type BufferBlock struct {
	name         string
	kind         BlockKind
	index        int32
	buffer       *BufferObject
	updateNeeded bool
}

func newBufferBlock(name string, kind BlockKind) *BufferBlock {
	return &BufferBlock{name: name, kind: kind, index: LocUnknown}
}

// Name retrieves the block name as declared in the source.
//
// Returns:
//   - string: the name
func (b *BufferBlock) Name() string {
	return b.name
}

// Kind retrieves the block flavor.
//
// Returns:
//   - BlockKind: uniform or storage
func (b *BufferBlock) Kind() BlockKind {
	return b.kind
}

// Index retrieves the resolved block index or a sentinel.
//
// Returns:
//   - int32: a non-negative index, LocUnknown, or LocNotDeclared
func (b *BufferBlock) Index() int32 {
	return b.index
}

// SetIndex records the resolution result.
//
// Parameters:
//   - idx: the driver block index or sentinel
func (b *BufferBlock) SetIndex(idx int32) {
	b.index = idx
}

// Buffer retrieves the bound buffer object.
//
// Returns:
//   - *BufferObject: the bound buffer, nil when never set
func (b *BufferBlock) Buffer() *BufferObject {
	return b.buffer
}

// SetBuffer binds a buffer object to the block and marks the block for
// re-attachment.
//
// Parameters:
//   - bo: the buffer to attach
func (b *BufferBlock) SetBuffer(bo *BufferObject) {
	b.buffer = bo
	b.updateNeeded = true
}

// UpdateNeeded reports whether the block must re-attach its buffer.
//
// Returns:
//   - bool: true when the backend must re-bind the block
func (b *BufferBlock) UpdateNeeded() bool {
	return b.updateNeeded
}

// ClearUpdateNeeded marks the block as attached.
func (b *BufferBlock) ClearUpdateNeeded() {
	b.updateNeeded = false
}

// reset invalidates the block index after a re-link.
func (b *BufferBlock) reset() {
	b.index = LocUnknown
	if b.buffer != nil {
		b.updateNeeded = true
	}
}
