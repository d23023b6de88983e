package shader

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Location sentinels shared by uniforms, buffer blocks, and attributes.
const (
	// LocUnknown marks a location that has never been queried against the
	// linked program.
	LocUnknown int32 = -2

	// LocNotDeclared marks a name the linked program does not expose. The
	// backend skips such variables silently on every later update; a shader
	// may reference uniforms the compiled variant optimized away.
	LocNotDeclared int32 = -1
)

// VarType tags the payload kind of a uniform value. The set is closed: the
// backend rejects unrecognized tags instead of guessing an upload form.
type VarType int

const (
	// VarFloat is a single float32.
	VarFloat VarType = iota

	// VarInt is a single int32.
	VarInt

	// VarBool is a single bool, uploaded as 0 or 1.
	VarBool

	// VarVec2 is an mgl32.Vec2.
	VarVec2

	// VarVec3 is an mgl32.Vec3.
	VarVec3

	// VarVec4 is an mgl32.Vec4; colors and quaternions upload through it.
	VarVec4

	// VarMat3 is an mgl32.Mat3 in column-major order.
	VarMat3

	// VarMat4 is an mgl32.Mat4 in column-major order.
	VarMat4

	// VarFloatArray is a []float32.
	VarFloatArray

	// VarIntArray is a []int32.
	VarIntArray

	// VarVec2Array is a []mgl32.Vec2.
	VarVec2Array

	// VarVec3Array is a []mgl32.Vec3.
	VarVec3Array

	// VarVec4Array is a []mgl32.Vec4.
	VarVec4Array

	// VarMat4Array is a []mgl32.Mat4.
	VarMat4Array
)

var varTypeNames = [...]string{
	VarFloat:      "Float",
	VarInt:        "Int",
	VarBool:       "Bool",
	VarVec2:       "Vec2",
	VarVec3:       "Vec3",
	VarVec4:       "Vec4",
	VarMat3:       "Mat3",
	VarMat4:       "Mat4",
	VarFloatArray: "FloatArray",
	VarIntArray:   "IntArray",
	VarVec2Array:  "Vec2Array",
	VarVec3Array:  "Vec3Array",
	VarVec4Array:  "Vec4Array",
	VarMat4Array:  "Mat4Array",
}

// String retrieves the tag name for error messages.
//
// Returns:
//   - string: the tag name, or "VarType(?)" for unknown values
func (t VarType) String() string {
	if t >= 0 && int(t) < len(varTypeNames) {
		return varTypeNames[t]
	}
	return "VarType(?)"
}

// Uniform is one named shader variable: a lazily resolved location, a typed
// value payload, and the update-needed flag the backend flushes on bind.
// Setting an equal scalar, vector, or matrix value is a no-op so unchanged
// uniforms cost nothing at draw time.
type Uniform struct {
	name         string
	location     int32
	varType      VarType
	value        any
	hasValue     bool
	updateNeeded bool
}

func newUniform(name string) *Uniform {
	return &Uniform{name: name, location: LocUnknown}
}

// Name retrieves the uniform name as declared in the source.
//
// Returns:
//   - string: the name
func (u *Uniform) Name() string {
	return u.name
}

// Location retrieves the resolved driver location or a sentinel.
//
// Returns:
//   - int32: a non-negative location, LocUnknown, or LocNotDeclared
func (u *Uniform) Location() int32 {
	return u.location
}

// SetLocation records the resolution result, including LocNotDeclared.
//
// Parameters:
//   - loc: the driver location or sentinel
func (u *Uniform) SetLocation(loc int32) {
	u.location = loc
}

// VarType retrieves the payload tag of the stored value.
//
// Returns:
//   - VarType: the tag of the last SetValue call
func (u *Uniform) VarType() VarType {
	return u.varType
}

// Value retrieves the stored payload.
//
// Returns:
//   - any: the payload, nil when no value was ever set
func (u *Uniform) Value() any {
	return u.value
}

// UpdateNeeded reports whether the value changed since the last upload.
//
// Returns:
//   - bool: true when the backend must re-upload the value
func (u *Uniform) UpdateNeeded() bool {
	return u.updateNeeded
}

// ClearUpdateNeeded marks the value as uploaded.
func (u *Uniform) ClearUpdateNeeded() {
	u.updateNeeded = false
}

// SetValue stores a payload under the given tag, marking the uniform dirty
// unless an equal value of the same tag is already stored. Slice payloads
// always mark dirty: the backend cannot see in-place element writes, so it
// assumes the caller changed them.
//
// Parameters:
//   - t: the payload tag
//   - v: the payload; must match the tag's Go type
func (u *Uniform) SetValue(t VarType, v any) {
	if u.hasValue && u.varType == t && scalarEqual(t, u.value, v) {
		return
	}
	u.varType = t
	u.value = v
	u.hasValue = true
	u.updateNeeded = true
}

// SetFloat stores a float payload.
//
// Parameters:
//   - v: the value
func (u *Uniform) SetFloat(v float32) { u.SetValue(VarFloat, v) }

// SetInt stores an int payload.
//
// Parameters:
//   - v: the value
func (u *Uniform) SetInt(v int32) { u.SetValue(VarInt, v) }

// SetBool stores a bool payload.
//
// Parameters:
//   - v: the value
func (u *Uniform) SetBool(v bool) { u.SetValue(VarBool, v) }

// SetVec2 stores a two-component vector payload.
//
// Parameters:
//   - v: the value
func (u *Uniform) SetVec2(v mgl32.Vec2) { u.SetValue(VarVec2, v) }

// SetVec3 stores a three-component vector payload.
//
// Parameters:
//   - v: the value
func (u *Uniform) SetVec3(v mgl32.Vec3) { u.SetValue(VarVec3, v) }

// SetVec4 stores a four-component vector payload.
//
// Parameters:
//   - v: the value
func (u *Uniform) SetVec4(v mgl32.Vec4) { u.SetValue(VarVec4, v) }

// SetMat3 stores a 3x3 matrix payload.
//
// Parameters:
//   - v: the value, column-major
func (u *Uniform) SetMat3(v mgl32.Mat3) { u.SetValue(VarMat3, v) }

// SetMat4 stores a 4x4 matrix payload.
//
// Parameters:
//   - v: the value, column-major
func (u *Uniform) SetMat4(v mgl32.Mat4) { u.SetValue(VarMat4, v) }

// reset invalidates the location after a re-link and marks any stored value
// for re-upload against the new program.
func (u *Uniform) reset() {
	u.location = LocUnknown
	if u.hasValue {
		u.updateNeeded = true
	}
}

// scalarEqual reports value equality for the comparable payload tags. Slice
// tags report false so they always re-upload.
func scalarEqual(t VarType, a, b any) bool {
	switch t {
	case VarFloat, VarInt, VarBool, VarVec2, VarVec3, VarVec4, VarMat3, VarMat4:
		return a == b
	default:
		return false
	}
}
