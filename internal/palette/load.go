package palette

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"color-detector/pkg/colorutil"
)

// ErrDataSourceUnavailable marks every reason a color data file could not be used.
var ErrDataSourceUnavailable = errors.New("color data source unavailable")

// Accepted header spellings, compared case-insensitively. The first group
// matches the colors.csv layout ("Name", "Red (8 bit)", "Hex (24 bit)", ...).
var (
	nameHeaders  = []string{"name", "color name", "colour name"}
	redHeaders   = []string{"red (8 bit)", "red", "r"}
	greenHeaders = []string{"green (8 bit)", "green", "g"}
	blueHeaders  = []string{"blue (8 bit)", "blue", "b"}
	hexHeaders   = []string{"hex (24 bit)", "hex"}
)

// Load builds the reference table from the CSV file at path. It never fails:
// an empty path, a missing or unreadable file, or any malformed content is
// logged and the built-in table is returned instead.
func Load(path string, logger *log.Logger) *Table {
	if logger == nil {
		logger = log.Default()
	}
	if path == "" {
		logger.Printf("Palette: no color data file configured, using built-in table (%d colors)", len(builtinEntries))
		return Builtin()
	}

	table, err := LoadFile(path)
	if err != nil {
		logger.Printf("Palette: %v; using built-in table (%d colors)", err, len(builtinEntries))
		return Builtin()
	}

	logger.Printf("Palette: loaded %d colors from %s", table.Len(), path)
	return table
}

// LoadFile strictly parses the CSV file at path. Every error wraps
// ErrDataSourceUnavailable.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataSourceUnavailable, err)
	}
	defer f.Close()

	table, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// columns records where each field lives in a CSV row. hex is -1 when absent.
type columns struct {
	name, red, green, blue, hex int
}

// Parse reads a CSV color table from r. The first record is the header.
func Parse(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrDataSourceUnavailable)
		}
		return nil, fmt.Errorf("%w: reading header: %v", ErrDataSourceUnavailable, err)
	}

	cols, err := findColumns(header)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDataSourceUnavailable, err)
		}
		if isBlank(record) {
			continue
		}

		entry, err := parseRecord(record, cols)
		if err != nil {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d: %v", ErrDataSourceUnavailable, line, err)
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no color rows", ErrDataSourceUnavailable)
	}
	return NewTable(entries), nil
}

func findColumns(header []string) (columns, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	find := func(names []string) int {
		for _, n := range names {
			if i, ok := index[n]; ok {
				return i
			}
		}
		return -1
	}

	cols := columns{
		name:  find(nameHeaders),
		red:   find(redHeaders),
		green: find(greenHeaders),
		blue:  find(blueHeaders),
		hex:   find(hexHeaders),
	}

	var missing []string
	if cols.name < 0 {
		missing = append(missing, "name")
	}
	if cols.red < 0 {
		missing = append(missing, "red")
	}
	if cols.green < 0 {
		missing = append(missing, "green")
	}
	if cols.blue < 0 {
		missing = append(missing, "blue")
	}
	if len(missing) > 0 {
		return cols, fmt.Errorf("%w: missing column(s) %s", ErrDataSourceUnavailable, strings.Join(missing, ", "))
	}
	return cols, nil
}

func parseRecord(record []string, cols columns) (Entry, error) {
	field := func(i int) (string, error) {
		if i >= len(record) {
			return "", fmt.Errorf("short row (%d fields)", len(record))
		}
		return strings.TrimSpace(record[i]), nil
	}

	name, err := field(cols.name)
	if err != nil {
		return Entry{}, err
	}
	if name == "" {
		return Entry{}, fmt.Errorf("empty color name")
	}

	var rgb colorutil.RGB
	for _, ch := range []struct {
		col int
		dst *int
		tag string
	}{
		{cols.red, &rgb.R, "red"},
		{cols.green, &rgb.G, "green"},
		{cols.blue, &rgb.B, "blue"},
	} {
		s, err := field(ch.col)
		if err != nil {
			return Entry{}, err
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return Entry{}, fmt.Errorf("%s: %s channel %q is not an integer", name, ch.tag, s)
		}
		if v < 0 || v > 255 {
			return Entry{}, fmt.Errorf("%s: %s channel %d out of range [0,255]", name, ch.tag, v)
		}
		*ch.dst = v
	}

	entry := NewEntry(name, rgb)
	if cols.hex < 0 {
		return entry, nil
	}

	s, err := field(cols.hex)
	if err != nil || s == "" {
		return entry, nil
	}
	hexRGB, err := colorutil.ParseHex(s)
	if err != nil {
		return Entry{}, fmt.Errorf("%s: %v", name, err)
	}
	if hexRGB != rgb {
		return Entry{}, fmt.Errorf("%s: hex %s does not match %s", name, s, rgb)
	}
	return entry, nil
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
