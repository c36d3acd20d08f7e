package views

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"color-detector/internal/app"
	"color-detector/internal/camera"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// CameraUnavailableText is shown when no camera can be opened.
const CameraUnavailableText = "Camera features are not available on this device.\n\n" +
	"You can still upload images for color detection."

// FrameSource delivers camera frames until its context is cancelled.
// *camera.Camera satisfies it.
type FrameSource interface {
	Run(ctx context.Context, interval time.Duration, onFrame func(camera.Frame))
	Close() error
}

// CameraOpener opens the camera with the given device index.
type CameraOpener func(device int) (FrameSource, error)

// OpenDevice opens a real capture device.
func OpenDevice(device int) (FrameSource, error) {
	cam, err := camera.Open(device)
	if err != nil {
		return nil, err
	}
	return cam, nil
}

// CameraView shows the live preview and names the color at its center.
type CameraView struct {
	state    *app.State
	interval time.Duration

	preview *canvas.Image
	swatch  *Swatch
	info    *widget.Label
	back    *widget.Button
	content fyne.CanvasObject

	mu     sync.Mutex
	src    FrameSource
	cancel context.CancelFunc
	done   chan struct{}
}

// NewCameraView opens the configured camera and starts sampling. When the
// camera cannot be opened the view explains that and offers only Back.
func NewCameraView(state *app.State, cfg app.Config, open CameraOpener, logger *log.Logger, onBack func()) *CameraView {
	if logger == nil {
		logger = log.Default()
	}
	v := &CameraView{
		state:    state,
		interval: cfg.SampleInterval,
		preview:  &canvas.Image{FillMode: canvas.ImageFillContain},
		swatch:   NewSwatch("Point the camera at a color"),
		back:     widget.NewButton("Back to Dashboard", onBack),
	}
	v.preview.SetMinSize(fyne.NewSize(320, 240))

	src, err := open(cfg.CameraDevice)
	if err != nil {
		logger.Printf("Camera: %v", err)
		v.info = widget.NewLabel(CameraUnavailableText)
		v.info.Alignment = fyne.TextAlignCenter
		v.info.Wrapping = fyne.TextWrapWord
		v.content = container.NewBorder(nil, v.back, nil, nil, container.NewCenter(v.info))
		return v
	}

	v.src = src
	v.content = container.NewBorder(nil, container.NewVBox(v.swatch, v.back), nil, nil, v.preview)
	v.start()
	return v
}

// Content returns the screen's root object.
func (v *CameraView) Content() fyne.CanvasObject {
	return v.content
}

// Available reports whether a camera is attached to the view.
func (v *CameraView) Available() bool {
	return v.src != nil
}

// Swatch returns the result display.
func (v *CameraView) Swatch() *Swatch {
	return v.swatch
}

func (v *CameraView) start() {
	ctx, cancel := context.WithCancel(context.Background())
	v.cancel = cancel
	v.done = make(chan struct{})

	go func() {
		defer close(v.done)
		v.src.Run(ctx, v.interval, v.onFrame)
	}()
}

// onFrame runs on the sampling goroutine: sample, match, render.
func (v *CameraView) onFrame(f camera.Frame) {
	v.preview.Image = f.Preview
	v.preview.Refresh()

	res, err := v.state.Identify(f.RGB)
	if err != nil {
		// Skip the label update for this frame only.
		return
	}
	v.swatch.SetResult(res)
}

// Stop ends sampling and releases the camera. It is safe to call more than once.
func (v *CameraView) Stop() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.src == nil {
		return nil
	}
	v.cancel()
	<-v.done
	err := v.src.Close()
	v.src = nil
	if err != nil {
		return fmt.Errorf("failed to close camera: %w", err)
	}
	return nil
}
