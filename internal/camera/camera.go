// Package camera captures frames from a video device and samples their center pixel.
package camera

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	"color-detector/pkg/colorutil"

	"gocv.io/x/gocv"
)

// DefaultInterval samples roughly 30 frames per second.
const DefaultInterval = time.Second / 30

// ErrEmptyFrame is returned when a frame holds no pixel data.
var ErrEmptyFrame = errors.New("empty frame")

// Source produces video frames. *gocv.VideoCapture satisfies it.
type Source interface {
	Read(m *gocv.Mat) bool
	Close() error
}

// Frame is one sampled camera frame.
type Frame struct {
	RGB     colorutil.RGB // Center pixel
	Preview image.Image   // Full frame for on-screen display
}

// Camera reads frames from a Source on a fixed interval.
type Camera struct {
	src    Source
	logger *log.Logger

	mu     sync.Mutex
	closed bool
}

// Open opens the video device with the given index.
func Open(device int) (*Camera, error) {
	vc, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("failed to open camera %d: %w", device, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("camera %d is not available", device)
	}
	return New(vc, nil), nil
}

// New wraps an existing frame source. A nil logger uses the standard logger.
func New(src Source, logger *log.Logger) *Camera {
	if logger == nil {
		logger = log.Default()
	}
	return &Camera{src: src, logger: logger}
}

// Close releases the underlying device. It is safe to call more than once.
func (c *Camera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.src.Close()
}

// Grab reads a single frame and samples its center pixel.
func (c *Camera) Grab() (Frame, error) {
	mat := gocv.NewMat()
	defer mat.Close()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return Frame{}, fmt.Errorf("camera closed")
	}
	ok := c.src.Read(&mat)
	c.mu.Unlock()

	if !ok {
		return Frame{}, fmt.Errorf("cannot read from camera")
	}

	rgb, err := SampleCenter(mat)
	if err != nil {
		return Frame{}, err
	}
	preview, err := mat.ToImage()
	if err != nil {
		return Frame{}, fmt.Errorf("failed to convert frame: %w", err)
	}
	return Frame{RGB: rgb, Preview: preview}, nil
}

// Run grabs a frame every interval and passes it to onFrame until ctx is
// done. Frames that cannot be read are logged and skipped.
func (c *Camera) Run(ctx context.Context, interval time.Duration, onFrame func(Frame)) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			frame, err := c.Grab()
			if err != nil {
				c.logger.Printf("Camera: skipping frame: %v", err)
				continue
			}
			onFrame(frame)
		}
	}
}

// SampleCenter returns the RGB value of the pixel at the center of a BGR or
// BGRA frame.
func SampleCenter(frame gocv.Mat) (colorutil.RGB, error) {
	if frame.Empty() {
		return colorutil.RGB{}, ErrEmptyFrame
	}
	return SampleAt(frame, frame.Cols()/2, frame.Rows()/2)
}

// SampleAt returns the RGB value of the pixel at (x, y) of a BGR or BGRA frame.
func SampleAt(frame gocv.Mat, x, y int) (colorutil.RGB, error) {
	if frame.Empty() {
		return colorutil.RGB{}, ErrEmptyFrame
	}
	if x < 0 || y < 0 || x >= frame.Cols() || y >= frame.Rows() {
		return colorutil.RGB{}, fmt.Errorf("point (%d,%d) outside %dx%d frame", x, y, frame.Cols(), frame.Rows())
	}

	ch := frame.Channels()
	if ch != 3 && ch != 4 {
		return colorutil.RGB{}, fmt.Errorf("unsupported frame with %d channels", ch)
	}

	// OpenCV stores pixels as BGR
	return colorutil.RGB{
		R: int(frame.GetUCharAt(y, x*ch+2)),
		G: int(frame.GetUCharAt(y, x*ch+1)),
		B: int(frame.GetUCharAt(y, x*ch+0)),
	}, nil
}
