package colors

import (
	"fmt"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color4 is a linear RGBA color with float64 components in [0,1].
type Color4 struct {
	R, G, B, A float64
}

func New(r, g, b, a float64) Color4 {
	return Color4{R: r, G: g, B: b, A: a}
}

// RGBA implements color.Color.
func (c Color4) RGBA() (r, g, b, a uint32) {
	c = c.Clamp01()

	// Convert to pre-multiplied 16-bit values
	return uint32(c.R * c.A * 65535),
		uint32(c.G * c.A * 65535),
		uint32(c.B * c.A * 65535),
		uint32(c.A * 65535)
}

func From8BitRgb(r, g, b, a byte) Color4 {
	return Color4{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
		A: float64(a) / 255.0,
	}
}

// Parse reads a "#rrggbb" hex string.
func Parse(s string) (Color4, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color4{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color4{R: c.R, G: c.G, B: c.B, A: 1}, nil
}

func White() Color4 {
	return Color4{R: 1, G: 1, B: 1, A: 1}
}

func Black() Color4 {
	return Color4{R: 0, G: 0, B: 0, A: 1}
}

// DarkMagenta is the outline color of the vertex markers.
func DarkMagenta() Color4 {
	return From8BitRgb(0x8b, 0x00, 0x8b, 0xff)
}

// Shade darkens the color channels by s, keeping alpha.
func (c Color4) Shade(s float64) Color4 {
	return Color4{c.R * s, c.G * s, c.B * s, c.A}
}

// Clamp01 clamps each component into [0,1].
func (c Color4) Clamp01() Color4 {
	return Color4{
		R: clamp01(c.R),
		G: clamp01(c.G),
		B: clamp01(c.B),
		A: clamp01(c.A),
	}
}

// ToNRGBA rounds each component to 8 bits.
func (c Color4) ToNRGBA() color.NRGBA {
	return color.NRGBA{
		to8bit(c.R),
		to8bit(c.G),
		to8bit(c.B),
		to8bit(c.A),
	}
}

// --- helpers ---

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func to8bit(x float64) uint8 {
	return uint8(math.Round(255.0 * clamp01(x)))
}
