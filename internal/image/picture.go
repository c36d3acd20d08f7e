// Package image provides still-image loading and pixel sampling.
package image

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"color-detector/pkg/colorutil"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned for files whose extension is not an image
// format this package can decode.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// CheckFormat returns ErrUnsupportedFormat unless path has a supported extension.
func CheckFormat(path string) error {
	if !IsSupportedFormat(path) {
		return fmt.Errorf("%w: %q (want %s)", ErrUnsupportedFormat, filepath.Ext(path), FileFilter())
	}
	return nil
}

// Picture is a decoded still image the user can click on.
type Picture struct {
	Path   string      // Original file path, empty for in-memory images
	Image  image.Image // Decoded image data
	Format string      // Decoder name reported by image.Decode
}

// Load decodes the image at path.
func Load(path string) (*Picture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	pic, err := Decode(file)
	if err != nil {
		return nil, err
	}
	pic.Path = path
	return pic, nil
}

// Decode reads an image in any registered format from r.
func Decode(r io.Reader) (*Picture, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	pic := fromImage(img)
	pic.Format = format
	return pic, nil
}

func fromImage(img image.Image) *Picture {
	return &Picture{Image: img}
}

// Width returns the image width in pixels.
func (p *Picture) Width() int {
	if p.Image == nil {
		return 0
	}
	return p.Image.Bounds().Dx()
}

// Height returns the image height in pixels.
func (p *Picture) Height() int {
	if p.Image == nil {
		return 0
	}
	return p.Image.Bounds().Dy()
}

// Sample returns the color at (x, y), measured from the image's top-left
// corner. ok is false when the point lies outside the image.
func (p *Picture) Sample(x, y int) (rgb colorutil.RGB, ok bool) {
	if p.Image == nil {
		return colorutil.RGB{}, false
	}
	bounds := p.Image.Bounds()
	px, py := bounds.Min.X+x, bounds.Min.Y+y
	if x < 0 || y < 0 || px >= bounds.Max.X || py >= bounds.Max.Y {
		return colorutil.RGB{}, false
	}
	return colorutil.FromColor(p.Image.At(px, py)), true
}

// Center returns the pixel coordinates of the image center.
func (p *Picture) Center() (x, y int) {
	return p.Width() / 2, p.Height() / 2
}

// SupportedFormats returns the list of supported image file extensions.
func SupportedFormats() []string {
	return []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}
}

// IsSupportedFormat checks if the given path has a supported image format.
func IsSupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range SupportedFormats() {
		if ext == format {
			return true
		}
	}
	return false
}

// FileFilter returns a file filter description for use in file dialogs.
func FileFilter() string {
	return "Image Files (*" + strings.Join(SupportedFormats(), ", *") + ")"
}
