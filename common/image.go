package common

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	xdraw "golang.org/x/image/draw"
)

// DecodeRGBA decodes a PNG or JPEG stream into tightly packed RGBA pixel
// data, 4 bytes per pixel in row-major order with no row padding, the layout
// the renderer's texture upload expects.
//
// Parameters:
//   - r: the encoded image stream
//
// Returns:
//   - []byte: raw RGBA pixel data
//   - int: image width in pixels
//   - int: image height in pixels
//   - error: an error if decoding fails
func DecodeRGBA(r io.Reader) ([]byte, int, int, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	return rgba.Pix, width, height, nil
}

// LoadRGBA reads an image file from disk and decodes it to tightly packed
// RGBA pixel data.
//
// Parameters:
//   - path: the image file path
//
// Returns:
//   - []byte: raw RGBA pixel data
//   - int: image width in pixels
//   - int: image height in pixels
//   - error: an error if the file cannot be opened or decoded
func LoadRGBA(path string) ([]byte, int, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to open image file %s: %w", path, err)
	}
	defer file.Close()

	pixels, width, height, err := DecodeRGBA(file)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to decode image file %s: %w", path, err)
	}
	return pixels, width, height, nil
}

// ResizePow2 rescales RGBA pixel data to the next power-of-two dimensions,
// the fallback for hardware without non-power-of-two texture support.
// Dimensions that are already powers of two come back unchanged. The input
// must hold width*height*4 bytes of tightly packed RGBA data.
//
// Parameters:
//   - pixels: raw RGBA pixel data
//   - width: source width in pixels
//   - height: source height in pixels
//
// Returns:
//   - []byte: RGBA pixel data at the new dimensions
//   - int: new width in pixels
//   - int: new height in pixels
func ResizePow2(pixels []byte, width, height int) ([]byte, int, int) {
	if IsPow2(width) && IsPow2(height) {
		return pixels, width, height
	}

	src := &image.RGBA{
		Pix:    pixels,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
	newWidth := NextPow2(width)
	newHeight := NextPow2(height)
	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	return dst.Pix, newWidth, newHeight
}

// IsPow2 reports whether v is a positive power of two.
//
// Parameters:
//   - v: the value to test
//
// Returns:
//   - bool: true when v is 1, 2, 4, 8, ...
func IsPow2(v int) bool {
	return v > 0 && v&(v-1) == 0
}

// NextPow2 returns the smallest power of two that is >= v. Values below 1
// return 1.
//
// Parameters:
//   - v: the value to round up
//
// Returns:
//   - int: the next power of two
func NextPow2(v int) int {
	if v < 1 {
		return 1
	}
	p := 1
	for p < v {
		p <<= 1
	}
	return p
}
