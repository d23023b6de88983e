// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

// Color is an RGBA color with float32 components, normally in the [0, 1]
// range. Components outside the range are legal and pass through to the
// renderer untouched, which matters for HDR clear values.
type Color struct {
	R, G, B, A float32
}

// Predefined colors for the common cases. All are fully opaque except
// Transparent.
var (
	ColorBlack       = Color{0, 0, 0, 1}
	ColorWhite       = Color{1, 1, 1, 1}
	ColorRed         = Color{1, 0, 0, 1}
	ColorGreen       = Color{0, 1, 0, 1}
	ColorBlue        = Color{0, 0, 1, 1}
	ColorDarkGray    = Color{0.2, 0.2, 0.2, 1}
	ColorTransparent = Color{0, 0, 0, 0}
)

// NewColor builds an opaque color from its RGB components.
//
// Parameters:
//   - r, g, b: color components, normally in [0, 1]
//
// Returns:
//   - Color: the color with alpha set to 1
func NewColor(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// ToSlice returns the color as a 4-element slice in RGBA order, the layout
// shader uniforms expect.
//
// Returns:
//   - []float32: [R, G, B, A]
func (c Color) ToSlice() []float32 {
	return []float32{c.R, c.G, c.B, c.A}
}

// Scaled returns the color with the RGB components multiplied by factor.
// Alpha is left unchanged.
//
// Parameters:
//   - factor: multiplier applied to R, G and B
//
// Returns:
//   - Color: the scaled color
func (c Color) Scaled(factor float32) Color {
	return Color{R: c.R * factor, G: c.G * factor, B: c.B * factor, A: c.A}
}
