package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColor(t *testing.T) {
	c := NewColor(0.25, 0.5, 0.75)
	assert.Equal(t, Color{R: 0.25, G: 0.5, B: 0.75, A: 1}, c)
	assert.Equal(t, []float32{0.25, 0.5, 0.75, 1}, c.ToSlice())

	dimmed := c.Scaled(0.5)
	assert.Equal(t, Color{R: 0.125, G: 0.25, B: 0.375, A: 1}, dimmed)

	assert.Equal(t, float32(0), ColorTransparent.A)
	assert.Equal(t, Color{0, 0, 0, 1}, ColorBlack)
}
