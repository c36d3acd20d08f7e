package image

import (
	"bytes"
	goimage "image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"color-detector/pkg/colorutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func checker() *goimage.NRGBA {
	img := goimage.NewNRGBA(goimage.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 60), G: uint8(y * 100), B: 7, A: 255})
		}
	}
	return img
}

func TestLoadPNGAndSample(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, checker()))
	path := filepath.Join(t.TempDir(), "swatch.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	pic, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "png", pic.Format)
	assert.Equal(t, path, pic.Path)
	assert.Equal(t, 4, pic.Width())
	assert.Equal(t, 2, pic.Height())

	rgb, ok := pic.Sample(3, 1)
	require.True(t, ok)
	assert.Equal(t, colorutil.RGB{R: 180, G: 100, B: 7}, rgb)
}

func TestDecodeBMP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, checker()))

	pic, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, "bmp", pic.Format)

	rgb, ok := pic.Sample(1, 0)
	require.True(t, ok)
	assert.Equal(t, colorutil.RGB{R: 60, G: 0, B: 7}, rgb)
}

func TestSampleOutOfBounds(t *testing.T) {
	pic := fromImage(checker())
	for _, pt := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 2}} {
		_, ok := pic.Sample(pt[0], pt[1])
		assert.False(t, ok, "point %v", pt)
	}

	_, ok := (&Picture{}).Sample(0, 0)
	assert.False(t, ok)
}

func TestSampleOffsetBounds(t *testing.T) {
	sub := checker().SubImage(goimage.Rect(2, 1, 4, 2))
	pic := fromImage(sub)

	rgb, ok := pic.Sample(0, 0)
	require.True(t, ok)
	assert.Equal(t, colorutil.RGB{R: 120, G: 100, B: 7}, rgb)
	x, y := pic.Center()
	assert.Equal(t, [2]int{1, 0}, [2]int{x, y})
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorContains(t, err, "failed to open image")

	path := filepath.Join(t.TempDir(), "junk.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "failed to decode image")
}

func TestIsSupportedFormat(t *testing.T) {
	assert.True(t, IsSupportedFormat("a/b/photo.JPG"))
	assert.True(t, IsSupportedFormat("scan.tiff"))
	assert.True(t, IsSupportedFormat("pic.webp"))
	assert.False(t, IsSupportedFormat("colors.csv"))
	assert.Contains(t, FileFilter(), "*.png")
}

func TestCheckFormat(t *testing.T) {
	assert.NoError(t, CheckFormat("holiday.PNG"))

	err := CheckFormat("colors.csv")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.ErrorContains(t, err, ".csv")
	assert.ErrorContains(t, err, "Image Files")
}
