package palette

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"color-detector/pkg/colorutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var builtinNames = []string{
	"Red", "Green", "Blue", "Yellow", "Cyan", "Magenta", "White",
	"Black", "Orange", "Purple", "Pink", "Brown", "Gray",
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "colors.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func captureLogger() (*log.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return log.New(&buf, "", 0), &buf
}

func TestBuiltin(t *testing.T) {
	table := Builtin()
	require.Equal(t, 13, table.Len())
	assert.Equal(t, builtinNames, table.Names())

	for _, e := range table.Entries() {
		assert.Equal(t, e.RGB.Hex(), e.Hex, "entry %s", e.Name)
	}

	gray, ok := table.Lookup("gray")
	require.True(t, ok)
	assert.Equal(t, colorutil.RGB{R: 128, G: 128, B: 128}, gray.RGB)
}

func TestBuiltinReturnsIndependentCopies(t *testing.T) {
	a := Builtin()
	entries := a.Entries()
	entries[0].Name = "Mutated"

	assert.Equal(t, "Red", a.At(0).Name)
	assert.Equal(t, "Red", Builtin().At(0).Name)
}

func TestLoadOriginalLayout(t *testing.T) {
	path := writeFile(t, strings.Join([]string{
		"Name,Hex (24 bit),Red (8 bit),Green (8 bit),Blue (8 bit)",
		"Absolute Zero,#0048BA,0,72,186",
		"Acid green,#b0bf1a,176,191,26",
		"Aero,#7CB9E8,124,185,232",
	}, "\n"))

	logger, buf := captureLogger()
	table := Load(path, logger)

	require.Equal(t, 3, table.Len())
	assert.Equal(t, []string{"Absolute Zero", "Acid green", "Aero"}, table.Names())
	assert.Equal(t, "#B0BF1A", table.At(1).Hex)
	assert.Equal(t, colorutil.RGB{R: 124, G: 185, B: 232}, table.At(2).RGB)
	assert.Contains(t, buf.String(), "loaded 3 colors")
}

func TestLoadShortHeadersWithoutHex(t *testing.T) {
	path := writeFile(t, "r,g,b,name\n10,20,30,Ink\n255,255,255,Paper\n")

	table, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, Entry{Name: "Ink", RGB: colorutil.RGB{R: 10, G: 20, B: 30}, Hex: "#0A141E"}, table.At(0))
}

func TestLoadFallsBackToBuiltin(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty file", ""},
		{"header only", "Name,Red (8 bit),Green (8 bit),Blue (8 bit)\n"},
		{"missing column", "Name,Red (8 bit),Green (8 bit)\nRed,255,0\n"},
		{"not a number", "Name,Red (8 bit),Green (8 bit),Blue (8 bit)\nRed,ff,0,0\n"},
		{"out of range", "Name,Red (8 bit),Green (8 bit),Blue (8 bit)\nRed,256,0,0\n"},
		{"negative", "Name,Red (8 bit),Green (8 bit),Blue (8 bit)\nRed,-1,0,0\n"},
		{"hex mismatch", "Name,Hex,Red,Green,Blue\nRed,#00FF00,255,0,0\n"},
		{"bad hex", "Name,Hex,Red,Green,Blue\nRed,#GG0000,255,0,0\n"},
		{"short row", "Name,Red,Green,Blue\nRed,255\n"},
		{"empty name", "Name,Red,Green,Blue\n,255,0,0\n"},
		{"bad quoting", "Name,Red,Green,Blue\n\"Red,255,0,0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.content)

			_, err := LoadFile(path)
			assert.ErrorIs(t, err, ErrDataSourceUnavailable)

			logger, buf := captureLogger()
			table := Load(path, logger)
			assert.Equal(t, builtinNames, table.Names())
			assert.Contains(t, buf.String(), "using built-in table")
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	logger, buf := captureLogger()
	table := Load(filepath.Join(t.TempDir(), "nope.csv"), logger)
	assert.Equal(t, builtinNames, table.Names())
	assert.Contains(t, buf.String(), ErrDataSourceUnavailable.Error())
}

func TestLoadNoPath(t *testing.T) {
	logger, buf := captureLogger()
	table := Load("", logger)
	assert.Equal(t, 13, table.Len())
	assert.Contains(t, buf.String(), "no color data file")
}

func TestLoadDirectory(t *testing.T) {
	logger, _ := captureLogger()
	table := Load(t.TempDir(), logger)
	assert.Equal(t, builtinNames, table.Names())
}

func TestParseSkipsBlankRows(t *testing.T) {
	table, err := Parse(strings.NewReader("Name,Red,Green,Blue\nA,1,2,3\n , , , \nB,4,5,6\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, table.Names())
}

func TestParseHeaderWithBOM(t *testing.T) {
	table, err := Parse(strings.NewReader("\ufeffName,Red,Green,Blue\nA,1,2,3\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
}
