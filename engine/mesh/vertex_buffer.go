package mesh

import (
	"github.com/prism3d/prism-go/engine/resource"
)

// BufferType names the semantic slot a vertex buffer feeds. The shader
// attribute consuming a buffer is derived from the type name, e.g. Position
// binds to "inPosition".
type BufferType int

const (
	// Position is the vertex position buffer, required by every mesh.
	Position BufferType = iota

	// Size is the per-point size buffer for point sprites.
	Size

	// Normal is the vertex normal buffer.
	Normal

	// TexCoord is the primary texture coordinate buffer.
	TexCoord

	// Color is the per-vertex color buffer.
	Color

	// Tangent is the tangent-space basis buffer for normal mapping.
	Tangent

	// Binormal is the optional precomputed bitangent buffer.
	Binormal

	// BoneWeight and BoneIndex carry skinning influences.
	BoneWeight
	BoneIndex

	// Index is the element index buffer; never bound as an attribute.
	Index

	// InterleavedData aggregates several attributes in one buffer; the
	// individual attribute buffers then carry only layout (stride/offset).
	InterleavedData

	// InstanceData carries per-instance attributes such as transform
	// matrices; multi-slot with a non-zero instance span.
	InstanceData

	// Additional texture coordinate channels.
	TexCoord2
	TexCoord3
	TexCoord4

	numBufferTypes // keep last
)

var bufferTypeNames = [...]string{
	Position:        "Position",
	Size:            "Size",
	Normal:          "Normal",
	TexCoord:        "TexCoord",
	Color:           "Color",
	Tangent:         "Tangent",
	Binormal:        "Binormal",
	BoneWeight:      "BoneWeight",
	BoneIndex:       "BoneIndex",
	Index:           "Index",
	InterleavedData: "InterleavedData",
	InstanceData:    "InstanceData",
	TexCoord2:       "TexCoord2",
	TexCoord3:       "TexCoord3",
	TexCoord4:       "TexCoord4",
}

// String retrieves the type name.
//
// Returns:
//   - string: the semantic name, or "BufferType(?)" for unknown values
func (t BufferType) String() string {
	if t >= 0 && int(t) < len(bufferTypeNames) {
		return bufferTypeNames[t]
	}
	return "BufferType(?)"
}

// AttribName retrieves the shader attribute name bound to this buffer type.
//
// Returns:
//   - string: "in" + the type name, e.g. "inNormal"
func (t BufferType) AttribName() string {
	return "in" + t.String()
}

// Format is the component data type of a vertex buffer.
type Format int

const (
	// FormatFloat is a 32-bit float component.
	FormatFloat Format = iota

	// FormatDouble is a 64-bit float component.
	FormatDouble

	// FormatByte is a signed 8-bit component.
	FormatByte

	// FormatUnsignedByte is an unsigned 8-bit component.
	FormatUnsignedByte

	// FormatShort is a signed 16-bit component.
	FormatShort

	// FormatUnsignedShort is an unsigned 16-bit component.
	FormatUnsignedShort

	// FormatInt is a signed 32-bit component.
	FormatInt

	// FormatUnsignedInt is an unsigned 32-bit component.
	FormatUnsignedInt
)

var formatSizes = [...]int{
	FormatFloat:         4,
	FormatDouble:        8,
	FormatByte:          1,
	FormatUnsignedByte:  1,
	FormatShort:         2,
	FormatUnsignedShort: 2,
	FormatInt:           4,
	FormatUnsignedInt:   4,
}

var formatNames = [...]string{
	FormatFloat:         "Float",
	FormatDouble:        "Double",
	FormatByte:          "Byte",
	FormatUnsignedByte:  "UnsignedByte",
	FormatShort:         "Short",
	FormatUnsignedShort: "UnsignedShort",
	FormatInt:           "Int",
	FormatUnsignedInt:   "UnsignedInt",
}

// ComponentSize retrieves the byte width of one component.
//
// Returns:
//   - int: the component size in bytes
func (f Format) ComponentSize() int {
	if f >= 0 && int(f) < len(formatSizes) {
		return formatSizes[f]
	}
	return 0
}

// String retrieves the format name for error messages.
//
// Returns:
//   - string: the format name, or "Format(?)" for unknown values
func (f Format) String() string {
	if f >= 0 && int(f) < len(formatNames) {
		return formatNames[f]
	}
	return "Format(?)"
}

// VertexBuffer is one attribute or index stream of a mesh: typed raw bytes
// plus the layout the backend needs to describe it to the driver. The
// embedded handle tracks the GPU buffer object; dirty ranges drive partial
// re-uploads.
type VertexBuffer struct {
	resource.Handle

	bufType      BufferType
	format       Format
	components   int
	normalized   bool
	usage        resource.Usage
	stride       int
	offset       int
	instanceSpan int
	data         []byte
	dirty        resource.DirtyRegions
}

// NewVertexBuffer creates an empty buffer of the given semantic type.
//
// Parameters:
//   - t: the semantic slot this buffer feeds
//
// Returns:
//   - *VertexBuffer: the new buffer awaiting Setup
func NewVertexBuffer(t BufferType) *VertexBuffer {
	return &VertexBuffer{bufType: t}
}

// Setup assigns the data layout and content in one call and marks the
// buffer for a full upload.
//
// Parameters:
//   - usage: allocation hint
//   - components: components per element, 1..4, or a multiple of 4 for
//     multi-slot attributes
//   - format: component data type
//   - data: raw little-endian content; retained, not copied
func (vb *VertexBuffer) Setup(usage resource.Usage, components int, format Format, data []byte) {
	vb.usage = usage
	vb.components = components
	vb.format = format
	vb.data = data
	vb.dirty.MarkAll()
	vb.SetUpdateNeeded()
}

// Type retrieves the semantic slot.
//
// Returns:
//   - BufferType: the slot this buffer feeds
func (vb *VertexBuffer) Type() BufferType {
	return vb.bufType
}

// Format retrieves the component data type.
//
// Returns:
//   - Format: the component format
func (vb *VertexBuffer) Format() Format {
	return vb.format
}

// Components retrieves the component count per element.
//
// Returns:
//   - int: components per element
func (vb *VertexBuffer) Components() int {
	return vb.components
}

// Normalized reports whether integer components map to [0,1] or [-1,1].
//
// Returns:
//   - bool: true when the driver normalizes on fetch
func (vb *VertexBuffer) Normalized() bool {
	return vb.normalized
}

// SetNormalized switches integer normalization on fetch.
//
// Parameters:
//   - n: true to normalize
func (vb *VertexBuffer) SetNormalized(n bool) {
	vb.normalized = n
}

// Usage retrieves the allocation hint.
//
// Returns:
//   - resource.Usage: the hint given to Setup
func (vb *VertexBuffer) Usage() resource.Usage {
	return vb.usage
}

// Stride retrieves the byte distance between consecutive elements, 0 for
// tightly packed data.
//
// Returns:
//   - int: the stride in bytes
func (vb *VertexBuffer) Stride() int {
	return vb.stride
}

// SetStride assigns the byte distance between consecutive elements; used
// with interleaved layouts.
//
// Parameters:
//   - stride: the stride in bytes
func (vb *VertexBuffer) SetStride(stride int) {
	vb.stride = stride
}

// Offset retrieves the byte offset of the first element.
//
// Returns:
//   - int: the offset in bytes
func (vb *VertexBuffer) Offset() int {
	return vb.offset
}

// SetOffset assigns the byte offset of the first element within the bound
// buffer; used with interleaved layouts.
//
// Parameters:
//   - offset: the offset in bytes
func (vb *VertexBuffer) SetOffset(offset int) {
	vb.offset = offset
}

// InstanceSpan retrieves how many instances share one element, 0 for
// per-vertex data.
//
// Returns:
//   - int: the attribute divisor
func (vb *VertexBuffer) InstanceSpan() int {
	return vb.instanceSpan
}

// SetInstanceSpan marks the buffer as per-instance data advancing once per
// span instances. 0 restores per-vertex stepping.
//
// Parameters:
//   - span: the attribute divisor
func (vb *VertexBuffer) SetInstanceSpan(span int) {
	vb.instanceSpan = span
}

// Instanced reports whether the buffer advances per instance.
//
// Returns:
//   - bool: true when InstanceSpan is non-zero
func (vb *VertexBuffer) Instanced() bool {
	return vb.instanceSpan > 0
}

// Data retrieves the CPU-side bytes. Callers editing in place must mark the
// span through MarkDirty or the change never uploads.
//
// Returns:
//   - []byte: the live backing slice
func (vb *VertexBuffer) Data() []byte {
	return vb.data
}

// UpdateData replaces the entire content and marks the full range dirty,
// absorbing pending partial marks.
//
// Parameters:
//   - data: the new content; retained, not copied
func (vb *VertexBuffer) UpdateData(data []byte) {
	vb.data = data
	vb.dirty.MarkAll()
	vb.SetUpdateNeeded()
}

// MarkDirty marks a byte span of the current content as changed.
//
// Parameters:
//   - start: first changed byte offset
//   - length: number of changed bytes
func (vb *VertexBuffer) MarkDirty(start, length int) {
	vb.dirty.MarkRange(start, length)
	vb.SetUpdateNeeded()
}

// Dirty retrieves the dirty-range tracker for the backend's flush.
//
// Returns:
//   - *resource.DirtyRegions: the live tracker
func (vb *VertexBuffer) Dirty() *resource.DirtyRegions {
	return &vb.dirty
}

// NumElements retrieves how many whole elements the data holds.
//
// Returns:
//   - int: element count, 0 when unconfigured
func (vb *VertexBuffer) NumElements() int {
	es := vb.format.ComponentSize() * vb.components
	if es == 0 {
		return 0
	}
	return len(vb.data) / es
}
