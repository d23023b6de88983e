package renderer

import "errors"

// Sentinel error kinds for every failure the rendering backend can surface.
// Backends wrap these with fmt.Errorf("%w: ...") so callers classify with
// errors.Is while the message carries the resource identity and requested
// value needed to diagnose the failure.
var (
	// ErrUnsupportedHardware reports a missing device capability or an
	// exceeded device limit (texture size, sample count, instancing, NPOT
	// tier). Fatal to the requested operation; the backend never degrades
	// silently. Any fallback, such as resizing a texture to a power of two,
	// is the caller's decision.
	ErrUnsupportedHardware = errors.New("unsupported hardware")

	// ErrUnsupportedOperation reports an unrecognized enum value or an
	// operation the detected driver profile cannot perform. This signals a
	// caller contract violation and is never retried.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrIllegalArgument reports an invalid parameter: a bad binding point,
	// a component count the attribute model cannot express, an out-of-range
	// attachment slot.
	ErrIllegalArgument = errors.New("illegal argument")

	// ErrShaderCompile reports a failed shader source compilation. The
	// message carries the driver's info log, or "<not provided>" when the
	// driver omits one. Retrying with the same source will fail again.
	ErrShaderCompile = errors.New("shader compile failed")

	// ErrShaderLink reports a failed program link, with the same info-log
	// message contract as ErrShaderCompile.
	ErrShaderLink = errors.New("shader link failed")

	// ErrInvalidState reports an operation issued before its prerequisite,
	// such as updating uniforms with no shader bound or rendering before
	// Initialize.
	ErrInvalidState = errors.New("invalid renderer state")
)
