package match

import (
	"fmt"

	"color-detector/pkg/colorutil"
)

// TextColor is the overlay text color that stays legible on a swatch.
type TextColor int

const (
	TextWhite TextColor = iota
	TextBlack
)

func (t TextColor) String() string {
	switch t {
	case TextBlack:
		return "black text"
	default:
		return "white text"
	}
}

// RGB returns the color to draw overlay text with.
func (t TextColor) RGB() colorutil.RGB {
	if t == TextBlack {
		return colorutil.Black
	}
	return colorutil.White
}

// lumaThreshold1000 is the luma cutoff of 128, scaled by 1000.
const lumaThreshold1000 = 128 * 1000

// Contrast picks black text when the BT.601 luma of rgb is strictly greater
// than 128 and white text otherwise.
func Contrast(rgb colorutil.RGB) (TextColor, error) {
	if !rgb.Valid() {
		return TextWhite, fmt.Errorf("%w: %s", ErrInvalidInput, rgb)
	}
	return contrast(rgb), nil
}

// Integer form keeps the threshold exact: 0.299r+0.587g+0.114b > 128
// is evaluated as 299r+587g+114b > 128000.
func contrast(rgb colorutil.RGB) TextColor {
	if rgb.Luma1000() > lumaThreshold1000 {
		return TextBlack
	}
	return TextWhite
}
