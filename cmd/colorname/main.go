// Command colorname names a color from an RGB triple, a hex string, an
// image pixel, or a single camera frame.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"color-detector/internal/camera"
	cdimage "color-detector/internal/image"
	"color-detector/internal/match"
	"color-detector/internal/palette"
	"color-detector/pkg/colorutil"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("colorname", flag.ContinueOnError)
	fs.SetOutput(stderr)
	colorsPath := fs.String("colors", "colors.csv", "Path to the color reference CSV")
	strict := fs.Bool("strict", false, "Fail instead of falling back to the built-in colors")
	rgbArg := fs.String("rgb", "", "Color as r,g,b")
	hexArg := fs.String("hex", "", "Color as #RRGGBB")
	imagePath := fs.String("image", "", "Image to sample (PNG, JPEG, GIF, BMP, TIFF, WebP)")
	x := fs.Int("x", -1, "Pixel column for -image (default: center)")
	y := fs.Int("y", -1, "Pixel row for -image (default: center)")
	device := fs.Int("camera", -1, "Camera device to sample one frame from")
	list := fs.Bool("list", false, "List the reference colors and exit")
	name := fs.String("name", "", "Look up a reference color by name (case-insensitive)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := log.New(stderr, "", log.LstdFlags)
	table, err := loadTable(*colorsPath, *strict, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load colors: %v\n", err)
		return 1
	}

	if *list {
		for _, e := range table.Entries() {
			fmt.Fprintf(stdout, "%-24s %s  %s\n", e.Name, e.Hex, e.RGB)
		}
		return 0
	}

	if *name != "" {
		e, ok := table.Lookup(*name)
		if !ok {
			fmt.Fprintf(stderr, "No reference color named %q\n", *name)
			return 1
		}
		text, err := match.Contrast(e.RGB)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return 1
		}
		printEntry(stdout, e, text)
		return 0
	}

	var rgb colorutil.RGB
	switch {
	case *rgbArg != "":
		rgb, err = parseTriple(*rgbArg)
	case *hexArg != "":
		rgb, err = colorutil.ParseHex(*hexArg)
	case *imagePath != "":
		rgb, err = sampleImage(*imagePath, *x, *y, stdout)
	case *device >= 0:
		rgb, err = sampleCamera(*device)
	default:
		fmt.Fprintln(stderr, "Usage: colorname [-colors file] (-rgb r,g,b | -hex #RRGGBB | -image path [-x N -y N] | -camera N | -name NAME | -list)")
		return 2
	}
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}

	res, err := match.New(table).Match(rgb)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	printResult(stdout, res)
	return 0
}

func loadTable(path string, strict bool, logger *log.Logger) (*palette.Table, error) {
	if strict {
		return palette.LoadFile(path)
	}
	return palette.Load(path, logger), nil
}

// parseTriple parses "r,g,b" with optional spaces.
func parseTriple(s string) (colorutil.RGB, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return colorutil.RGB{}, fmt.Errorf("invalid -rgb %q: want r,g,b", s)
	}
	var ch [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return colorutil.RGB{}, fmt.Errorf("invalid -rgb %q: %w", s, err)
		}
		ch[i] = v
	}
	return colorutil.RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}

func sampleImage(path string, x, y int, stdout io.Writer) (colorutil.RGB, error) {
	if err := cdimage.CheckFormat(path); err != nil {
		return colorutil.RGB{}, err
	}
	pic, err := cdimage.Load(path)
	if err != nil {
		return colorutil.RGB{}, err
	}
	fmt.Fprintf(stdout, "Loaded %s image: %dx%d pixels\n", pic.Format, pic.Width(), pic.Height())

	if x < 0 && y < 0 {
		x, y = pic.Center()
	}
	rgb, ok := pic.Sample(x, y)
	if !ok {
		return colorutil.RGB{}, fmt.Errorf("pixel (%d, %d) is outside the %dx%d image", x, y, pic.Width(), pic.Height())
	}
	return rgb, nil
}

func sampleCamera(device int) (colorutil.RGB, error) {
	cam, err := camera.Open(device)
	if err != nil {
		return colorutil.RGB{}, err
	}
	defer cam.Close()

	frame, err := cam.Grab()
	if err != nil {
		return colorutil.RGB{}, err
	}
	return frame.RGB, nil
}

func printEntry(w io.Writer, e palette.Entry, text match.TextColor) {
	fmt.Fprintf(w, "Name:     %s\n", e.Name)
	fmt.Fprintf(w, "Hex:      %s\n", e.Hex)
	fmt.Fprintf(w, "RGB:      %s\n", e.RGB)
	fmt.Fprintf(w, "Text:     %s\n", text)
}

func printResult(w io.Writer, res match.Result) {
	fmt.Fprintf(w, "Name:     %s\n", res.Name())
	fmt.Fprintf(w, "Hex:      %s\n", res.Hex())
	fmt.Fprintf(w, "Sample:   %s\n", res.Query)
	if res.IsUnknown() {
		fmt.Fprintf(w, "Distance: none (empty color table)\n")
	} else {
		fmt.Fprintf(w, "Distance: %.2f\n", res.Distance)
	}
	fmt.Fprintf(w, "Text:     %s\n", res.Text)
}
