// Package palette holds the reference table of named colors and its loader.
package palette

import (
	"strings"

	"color-detector/pkg/colorutil"
)

// Entry is one named reference color.
type Entry struct {
	Name string
	RGB  colorutil.RGB
	Hex  string // #RRGGBB, uppercase
}

// NewEntry builds an entry whose hex is derived from rgb.
func NewEntry(name string, rgb colorutil.RGB) Entry {
	return Entry{Name: name, RGB: rgb, Hex: rgb.Hex()}
}

// Table is an ordered, read-only collection of reference colors.
// A Table is never modified after construction and may be shared freely.
type Table struct {
	entries []Entry
}

// NewTable returns a table holding a copy of entries in the given order.
func NewTable(entries []Entry) *Table {
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	return &Table{entries: cp}
}

// Len returns the number of entries. A nil table is empty.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// At returns the i-th entry in table order.
func (t *Table) At(i int) Entry {
	return t.entries[i]
}

// Entries returns a copy of the entries in table order.
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	cp := make([]Entry, len(t.entries))
	copy(cp, t.entries)
	return cp
}

// Names returns the entry names in table order.
func (t *Table) Names() []string {
	names := make([]string, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		names = append(names, t.entries[i].Name)
	}
	return names
}

// Lookup finds the first entry whose name matches, ignoring case.
func (t *Table) Lookup(name string) (Entry, bool) {
	for i := 0; i < t.Len(); i++ {
		if strings.EqualFold(t.entries[i].Name, name) {
			return t.entries[i], true
		}
	}
	return Entry{}, false
}

// builtinEntries is the fallback palette used when no data source loads.
var builtinEntries = []Entry{
	{Name: "Red", Hex: "#FF0000", RGB: colorutil.RGB{R: 255, G: 0, B: 0}},
	{Name: "Green", Hex: "#00FF00", RGB: colorutil.RGB{R: 0, G: 255, B: 0}},
	{Name: "Blue", Hex: "#0000FF", RGB: colorutil.RGB{R: 0, G: 0, B: 255}},
	{Name: "Yellow", Hex: "#FFFF00", RGB: colorutil.RGB{R: 255, G: 255, B: 0}},
	{Name: "Cyan", Hex: "#00FFFF", RGB: colorutil.RGB{R: 0, G: 255, B: 255}},
	{Name: "Magenta", Hex: "#FF00FF", RGB: colorutil.RGB{R: 255, G: 0, B: 255}},
	{Name: "White", Hex: "#FFFFFF", RGB: colorutil.RGB{R: 255, G: 255, B: 255}},
	{Name: "Black", Hex: "#000000", RGB: colorutil.RGB{R: 0, G: 0, B: 0}},
	{Name: "Orange", Hex: "#FFA500", RGB: colorutil.RGB{R: 255, G: 165, B: 0}},
	{Name: "Purple", Hex: "#800080", RGB: colorutil.RGB{R: 128, G: 0, B: 128}},
	{Name: "Pink", Hex: "#FFC0CB", RGB: colorutil.RGB{R: 255, G: 192, B: 203}},
	{Name: "Brown", Hex: "#A52A2A", RGB: colorutil.RGB{R: 165, G: 42, B: 42}},
	{Name: "Gray", Hex: "#808080", RGB: colorutil.RGB{R: 128, G: 128, B: 128}},
}

// Builtin returns the fixed 13-color table.
func Builtin() *Table {
	return NewTable(builtinEntries)
}
