// Package colorutil provides the RGB triple shared by the color detector packages.
package colorutil

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Overlay colors used for text drawn on top of a swatch.
var (
	Black = RGB{R: 0, G: 0, B: 0}
	White = RGB{R: 255, G: 255, B: 255}
)

// RGB is an 8-bit red, green, blue triple. Channels are plain ints so that
// out-of-range samples from a faulty collaborator stay visible instead of
// wrapping around.
type RGB struct {
	R, G, B int
}

// Valid reports whether every channel lies in [0,255].
func (c RGB) Valid() bool {
	return inRange(c.R) && inRange(c.G) && inRange(c.B)
}

func inRange(v int) bool {
	return v >= 0 && v <= 255
}

// Hex returns the #RRGGBB encoding with uppercase digits.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// String formats the triple as "RGB(r, g, b)".
func (c RGB) String() string {
	return fmt.Sprintf("RGB(%d, %d, %d)", c.R, c.G, c.B)
}

// Luma1000 returns the BT.601 luma scaled by 1000, computed exactly.
func (c RGB) Luma1000() int {
	return 299*c.R + 587*c.G + 114*c.B
}

// Floats returns the channels as a float slice for vector math.
func (c RGB) Floats() []float64 {
	return []float64{float64(c.R), float64(c.G), float64(c.B)}
}

// NRGBA returns an opaque color for rendering. Channels are clamped.
func (c RGB) NRGBA() color.NRGBA {
	return color.NRGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: 0xFF}
}

func clamp(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v)
	}
}

// FromColor converts any color.Color to an 8-bit triple. Alpha is ignored.
func FromColor(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: int(n.R), G: int(n.G), B: int(n.B)}
}

// ParseHex parses a #RRGGBB string. The leading '#' and letter case are optional.
func ParseHex(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 7 {
		return RGB{}, fmt.Errorf("invalid hex color %q: want #RRGGBB", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: int(r), G: int(g), B: int(b)}, nil
}
