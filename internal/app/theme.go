package app

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Dashboard palette.
var (
	DashboardBackground = color.NRGBA{R: 0x59, G: 0x80, B: 0xF2, A: 0xFF} // (0.35, 0.5, 0.95)
	ButtonColor         = color.NRGBA{R: 0x4D, G: 0x80, B: 0xE6, A: 0xFF} // (0.3, 0.5, 0.9)
	ButtonPressedColor  = color.NRGBA{R: 0x40, G: 0x6B, B: 0xCC, A: 0xFF} // (0.25, 0.42, 0.8)
	PanelColor          = color.NRGBA{R: 0xF2, G: 0xF2, B: 0xF2, A: 0xFF}
)

// ColorDetectorTheme provides the application's blue dashboard look.
type ColorDetectorTheme struct{}

var _ fyne.Theme = (*ColorDetectorTheme)(nil)

func (t *ColorDetectorTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return ButtonColor
	case theme.ColorNameButton:
		return ButtonColor
	case theme.ColorNamePressed:
		return ButtonPressedColor
	case theme.ColorNameForegroundOnPrimary:
		return color.White
	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func (t *ColorDetectorTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *ColorDetectorTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *ColorDetectorTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameHeadingText:
		return 36
	case theme.SizeNameInnerPadding:
		return 12 // Roomier touch targets
	default:
		return theme.DefaultTheme().Size(name)
	}
}
