package colors

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShadeWhiteIsGrayLevel(t *testing.T) {
	for _, level := range []uint8{0, 1, 127, 200, 255} {
		assert.Equal(t, color.NRGBA{level, level, level, 255}, White().Shade(float64(level)/255).ToNRGBA())
	}
}

func TestParse(t *testing.T) {
	c, err := Parse("#8b008b")
	require.NoError(t, err)
	assert.Equal(t, DarkMagenta().ToNRGBA(), c.ToNRGBA())

	_, err = Parse("magenta")
	assert.Error(t, err)
}

func TestShadeKeepsAlpha(t *testing.T) {
	c := New(1, 0.5, 0.25, 0.75).Shade(0.5)
	assert.Equal(t, New(0.5, 0.25, 0.125, 0.75), c)
}

func TestRGBAClamps(t *testing.T) {
	r, g, b, a := New(2, -1, 0.5, 1).RGBA()
	assert.Equal(t, uint32(65535), r)
	assert.Equal(t, uint32(0), g)
	assert.Equal(t, uint32(32767), b)
	assert.Equal(t, uint32(65535), a)
}
