package views

import (
	"fmt"
	"image/color"

	"color-detector/internal/match"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const swatchHeight = 72

// Swatch shows the sampled color with the matched name drawn on top in a
// legible text color.
type Swatch struct {
	widget.BaseWidget

	background *canvas.Rectangle
	title      *canvas.Text
	detail     *canvas.Text
}

// NewSwatch creates a swatch showing placeholder text.
func NewSwatch(placeholder string) *Swatch {
	s := &Swatch{
		background: canvas.NewRectangle(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xFF}),
		title:      canvas.NewText(placeholder, color.White),
		detail:     canvas.NewText("", color.White),
	}
	s.background.CornerRadius = 12
	s.title.TextStyle = fyne.TextStyle{Bold: true}
	s.title.TextSize = 20
	s.title.Alignment = fyne.TextAlignCenter
	s.detail.Alignment = fyne.TextAlignCenter
	s.ExtendBaseWidget(s)
	return s
}

// SetResult fills the swatch with the sampled color and labels it.
func (s *Swatch) SetResult(res match.Result) {
	text := res.Text.RGB().NRGBA()
	s.background.FillColor = res.Query.NRGBA()
	s.title.Text = res.Name()
	s.title.Color = text
	s.detail.Text = fmt.Sprintf("%s  %s", res.Hex(), res.Query)
	s.detail.Color = text
	s.Refresh()
}

// SetMessage shows a plain message on a neutral background.
func (s *Swatch) SetMessage(msg string) {
	s.background.FillColor = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xFF}
	s.title.Text = msg
	s.title.Color = color.White
	s.detail.Text = ""
	s.Refresh()
}

// Title returns the headline text currently shown.
func (s *Swatch) Title() string {
	return s.title.Text
}

// Detail returns the hex and RGB line currently shown.
func (s *Swatch) Detail() string {
	return s.detail.Text
}

// TextColor returns the color the labels are drawn in.
func (s *Swatch) TextColor() color.Color {
	return s.title.Color
}

// FillColor returns the swatch background.
func (s *Swatch) FillColor() color.Color {
	return s.background.FillColor
}

func (s *Swatch) CreateRenderer() fyne.WidgetRenderer {
	labels := container.NewVBox(s.title, s.detail)
	return widget.NewSimpleRenderer(container.NewStack(
		s.background,
		container.NewPadded(container.NewCenter(labels)),
	))
}

func (s *Swatch) MinSize() fyne.Size {
	s.ExtendBaseWidget(s)
	return s.BaseWidget.MinSize().Max(fyne.NewSize(0, swatchHeight))
}
