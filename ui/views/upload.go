package views

import (
	"log"

	"color-detector/internal/app"
	cdimage "color-detector/internal/image"
	"color-detector/ui/canvas"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// UploadView lets the user pick an image and tap a point on it.
type UploadView struct {
	state  *app.State
	window fyne.Window
	logger *log.Logger

	canvas  *canvas.ImageCanvas
	swatch  *Swatch
	choose  *widget.Button
	hint    *widget.Label
	back    *widget.Button
	content fyne.CanvasObject
}

// NewUploadView builds the upload screen.
func NewUploadView(state *app.State, window fyne.Window, logger *log.Logger, onBack func()) *UploadView {
	if logger == nil {
		logger = log.Default()
	}
	v := &UploadView{
		state:  state,
		window: window,
		logger: logger,
		canvas: canvas.NewImageCanvas(),
		swatch: NewSwatch("Choose an image, then tap a point"),
		back:   widget.NewButton("Back to Dashboard", onBack),
	}
	v.choose = widget.NewButton("Choose Image", v.ShowChooser)
	v.hint = widget.NewLabel(cdimage.FileFilter())
	v.hint.Alignment = fyne.TextAlignCenter
	v.canvas.OnLeftClick(v.onTap)

	v.content = container.NewBorder(
		container.NewVBox(v.choose, v.hint),
		container.NewVBox(v.swatch, v.back),
		nil, nil,
		v.canvas,
	)
	return v
}

// Content returns the screen's root object.
func (v *UploadView) Content() fyne.CanvasObject {
	return v.content
}

// Swatch returns the result display.
func (v *UploadView) Swatch() *Swatch {
	return v.swatch
}

// Canvas returns the image canvas.
func (v *UploadView) Canvas() *canvas.ImageCanvas {
	return v.canvas
}

// ShowChooser opens a file dialog filtered to supported image formats.
func (v *UploadView) ShowChooser() {
	dlg := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, v.window)
			return
		}
		if reader == nil {
			return // Cancelled
		}
		path := reader.URI().Path()
		reader.Close()
		if err := v.LoadPath(path); err != nil {
			dialog.ShowError(err, v.window)
		}
	}, v.window)
	dlg.SetFilter(storage.NewExtensionFileFilter(cdimage.SupportedFormats()))
	dlg.Show()
}

// LoadPath loads the image at path and displays it.
func (v *UploadView) LoadPath(path string) error {
	pic, err := v.state.LoadPicture(path)
	if err != nil {
		v.logger.Printf("Image: %v", err)
		return err
	}
	v.canvas.SetImage(pic.Image)
	v.swatch.SetMessage("Tap the image to identify a color")
	return nil
}

func (v *UploadView) onTap(x, y int) {
	res, err := v.state.IdentifyAt(x, y)
	if err != nil {
		v.logger.Printf("Image: %v", err)
		return
	}
	v.swatch.SetResult(res)
}
