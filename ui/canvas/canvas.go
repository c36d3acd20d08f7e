// Package canvas provides an image canvas with zoom and click-to-pixel mapping.
package canvas

import (
	"image"
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	minZoom  = 0.05
	maxZoom  = 10.0
	zoomStep = 1.25

	markerRadius = 8
)

// ImageCanvas displays an image and reports taps in image pixel coordinates.
type ImageCanvas struct {
	widget.BaseWidget

	img  image.Image
	zoom float64

	// Display state
	picture *fynecanvas.Image
	marker  *fynecanvas.Circle
	content *tappableContent
	scroll  *zoomScroll

	// Fit to window
	fitToWindow    bool
	lastScrollSize fyne.Size

	// Callbacks
	onZoomChange func(zoom float64)
	onLeftClick  func(x, y int) // Left click at image pixel coordinates
}

// zoomScroll wraps a scroll container but intercepts the wheel for zoom.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	canvas *ImageCanvas
}

func newZoomScroll(content fyne.CanvasObject, canvas *ImageCanvas) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, canvas: canvas}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	// Use wheel for zoom, not scroll
	if ev.Scrolled.DY > 0 {
		zs.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		zs.canvas.ZoomOut()
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

// Resize sets the size of the scroll container and refits the image if enabled.
func (zs *zoomScroll) Resize(size fyne.Size) {
	zs.scroll.Resize(size)
	zs.BaseWidget.Resize(size)
	zs.canvas.checkResize(size)
}

// tappableContent holds the scaled image and the tap marker.
type tappableContent struct {
	widget.BaseWidget
	canvas *ImageCanvas
	stack  *fyne.Container
}

func newTappableContent(ic *ImageCanvas) *tappableContent {
	tc := &tappableContent{
		canvas: ic,
		stack:  container.NewWithoutLayout(ic.picture, ic.marker),
	}
	tc.ExtendBaseWidget(tc)
	return tc
}

func (tc *tappableContent) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(tc.stack)
}

func (tc *tappableContent) MinSize() fyne.Size {
	return tc.canvas.displaySize()
}

// Tapped handles left-click and touch events.
func (tc *tappableContent) Tapped(ev *fyne.PointEvent) {
	x, y, ok := tc.canvas.CanvasToImage(ev.Position)
	if !ok {
		return
	}
	tc.canvas.showMarker(tc.canvas.ImageToCanvas(x, y))
	if tc.canvas.onLeftClick != nil {
		tc.canvas.onLeftClick(x, y)
	}
}

// NewImageCanvas creates an empty image canvas that fits images to its size.
func NewImageCanvas() *ImageCanvas {
	ic := &ImageCanvas{
		zoom:        1.0,
		fitToWindow: true,
	}

	ic.picture = &fynecanvas.Image{FillMode: fynecanvas.ImageFillStretch, ScaleMode: fynecanvas.ImageScalePixels}
	ic.marker = fynecanvas.NewCircle(color.Transparent)
	ic.marker.StrokeColor = color.White
	ic.marker.StrokeWidth = 2
	ic.marker.Hide()

	ic.content = newTappableContent(ic)
	ic.scroll = newZoomScroll(ic.content, ic)

	ic.ExtendBaseWidget(ic)
	return ic
}

// SetImage replaces the displayed image. A nil image clears the canvas.
func (ic *ImageCanvas) SetImage(img image.Image) {
	ic.img = img
	ic.picture.Image = img
	ic.marker.Hide()
	if ic.fitToWindow {
		ic.FitToWindow()
	}
	ic.updateContentSize()
}

// Image returns the displayed image.
func (ic *ImageCanvas) Image() image.Image {
	return ic.img
}

// SetZoom sets the zoom level (display pixels per image pixel).
func (ic *ImageCanvas) SetZoom(zoom float64) {
	zoom = math.Max(minZoom, math.Min(maxZoom, zoom))
	ic.zoom = zoom
	ic.marker.Hide()
	ic.updateContentSize()

	if ic.onZoomChange != nil {
		ic.onZoomChange(zoom)
	}
}

// Zoom returns the current zoom level.
func (ic *ImageCanvas) Zoom() float64 {
	return ic.zoom
}

// ZoomIn increases the zoom level.
func (ic *ImageCanvas) ZoomIn() {
	ic.fitToWindow = false
	ic.SetZoom(ic.zoom * zoomStep)
}

// ZoomOut decreases the zoom level.
func (ic *ImageCanvas) ZoomOut() {
	ic.fitToWindow = false
	ic.SetZoom(ic.zoom / zoomStep)
}

// FitToWindow adjusts zoom to fit the image in the visible area.
func (ic *ImageCanvas) FitToWindow() {
	if ic.img == nil {
		return
	}
	b := ic.img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}

	viewSize := ic.scroll.Size()
	if viewSize.Width <= 0 || viewSize.Height <= 0 {
		return
	}

	zoomX := float64(viewSize.Width) / float64(b.Dx())
	zoomY := float64(viewSize.Height) / float64(b.Dy())
	ic.SetZoom(math.Min(zoomX, zoomY))
}

// SetFitToWindow enables or disables auto-fit on resize.
func (ic *ImageCanvas) SetFitToWindow(fit bool) {
	ic.fitToWindow = fit
	if fit {
		ic.FitToWindow()
	}
}

func (ic *ImageCanvas) checkResize(size fyne.Size) {
	if !ic.fitToWindow {
		return
	}
	if size.Width > 0 && size.Height > 0 && size != ic.lastScrollSize {
		ic.lastScrollSize = size
		ic.FitToWindow()
	}
}

// OnZoomChange sets the callback for zoom changes.
func (ic *ImageCanvas) OnZoomChange(callback func(zoom float64)) {
	ic.onZoomChange = callback
}

// OnLeftClick sets the callback for taps, reported in image pixel coordinates.
func (ic *ImageCanvas) OnLeftClick(callback func(x, y int)) {
	ic.onLeftClick = callback
}

// CanvasToImage converts a position on the zoomed content to image pixel
// coordinates. ok is false outside the image.
func (ic *ImageCanvas) CanvasToImage(pos fyne.Position) (x, y int, ok bool) {
	if ic.img == nil {
		return 0, 0, false
	}
	return canvasToPixel(pos, ic.zoom, ic.img.Bounds().Dx(), ic.img.Bounds().Dy())
}

// ImageToCanvas converts image pixel coordinates to the center of that pixel
// on the zoomed content.
func (ic *ImageCanvas) ImageToCanvas(x, y int) fyne.Position {
	return fyne.NewPos(float32((float64(x)+0.5)*ic.zoom), float32((float64(y)+0.5)*ic.zoom))
}

func canvasToPixel(pos fyne.Position, zoom float64, w, h int) (x, y int, ok bool) {
	if zoom <= 0 || pos.X < 0 || pos.Y < 0 {
		return 0, 0, false
	}
	x = int(math.Floor(float64(pos.X) / zoom))
	y = int(math.Floor(float64(pos.Y) / zoom))
	if x >= w || y >= h {
		return 0, 0, false
	}
	return x, y, true
}

func (ic *ImageCanvas) displaySize() fyne.Size {
	if ic.img == nil {
		return fyne.NewSize(0, 0)
	}
	b := ic.img.Bounds()
	return fyne.NewSize(float32(float64(b.Dx())*ic.zoom), float32(float64(b.Dy())*ic.zoom))
}

func (ic *ImageCanvas) updateContentSize() {
	size := ic.displaySize()
	ic.picture.Resize(size)
	ic.picture.Move(fyne.NewPos(0, 0))
	ic.content.Resize(size)
	ic.content.Refresh()
	ic.scroll.scroll.Refresh()
}

// showMarker centers the marker on pos.
func (ic *ImageCanvas) showMarker(pos fyne.Position) {
	ic.marker.Resize(fyne.NewSize(2*markerRadius, 2*markerRadius))
	ic.marker.Move(fyne.NewPos(pos.X-markerRadius, pos.Y-markerRadius))
	ic.marker.Show()
	ic.marker.Refresh()
}

// CreateRenderer implements fyne.Widget.
func (ic *ImageCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(ic.scroll)
}
