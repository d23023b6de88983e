package mesh

import (
	"encoding/binary"
	"math"
)

// Packing helpers for building buffer content. GPU buffers are raw
// little-endian bytes; these convert the common element types in bulk.

// PackFloats serializes float32 values into a little-endian byte buffer
// suitable for upload.
//
// Parameters:
//   - vals: the values in element order
//
// Returns:
//   - []byte: 4 bytes per value
func PackFloats(vals ...float32) []byte {
	buf := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// PackUint16s serializes uint16 values, the usual small-mesh index format.
//
// Parameters:
//   - vals: the values in element order
//
// Returns:
//   - []byte: 2 bytes per value
func PackUint16s(vals ...uint16) []byte {
	buf := make([]byte, 2*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint16(buf[i*2:], v)
	}
	return buf
}

// PackUint32s serializes uint32 values, the large-mesh index format.
//
// Parameters:
//   - vals: the values in element order
//
// Returns:
//   - []byte: 4 bytes per value
func PackUint32s(vals ...uint32) []byte {
	buf := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:], v)
	}
	return buf
}

// PutFloats overwrites float32 values inside an existing buffer starting at
// a byte offset, for in-place edits followed by MarkDirty.
//
// Parameters:
//   - dst: the destination buffer
//   - offset: starting byte offset inside dst
//   - vals: the values to write
//
// Returns:
//   - int: the number of bytes written
func PutFloats(dst []byte, offset int, vals ...float32) int {
	for i, v := range vals {
		binary.LittleEndian.PutUint32(dst[offset+i*4:], math.Float32bits(v))
	}
	return 4 * len(vals)
}
