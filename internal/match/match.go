// Package match finds the reference color nearest to a sampled pixel.
package match

import (
	"errors"
	"fmt"
	"math"

	"color-detector/internal/palette"
	"color-detector/pkg/colorutil"

	"gonum.org/v1/gonum/floats"
)

// ErrInvalidInput is returned for a query triple with a channel outside [0,255].
var ErrInvalidInput = errors.New("invalid input")

// Unknown is the sentinel entry returned when there is nothing to match against.
var Unknown = palette.Entry{Name: "Unknown", Hex: "#000000", RGB: colorutil.RGB{}}

// Result is the outcome of one lookup.
type Result struct {
	Entry    palette.Entry // Matched reference color
	Query    colorutil.RGB // Sampled color
	Distance float64       // Euclidean RGB distance; +Inf for the sentinel
	Text     TextColor     // Legible text color on a swatch of Query
}

// Name returns the matched color's name.
func (r Result) Name() string { return r.Entry.Name }

// Hex returns the matched color's #RRGGBB string.
func (r Result) Hex() string { return r.Entry.Hex }

// IsUnknown reports whether r is the sentinel result.
func (r Result) IsUnknown() bool { return math.IsInf(r.Distance, 1) }

func (r Result) String() string {
	return fmt.Sprintf("%s  %s  %s", r.Entry.Name, r.Entry.Hex, r.Query)
}

// Matcher looks up nearest colors in a fixed table. It keeps no mutable
// state and is safe for concurrent use.
type Matcher struct {
	table *palette.Table
}

// New creates a matcher over table.
func New(table *palette.Table) *Matcher {
	return &Matcher{table: table}
}

// Match returns the table entry closest to rgb by Euclidean distance in RGB
// space. Equidistant entries resolve to the earliest one in table order.
// An empty table yields the Unknown sentinel rather than an error.
func (m *Matcher) Match(rgb colorutil.RGB) (Result, error) {
	if !rgb.Valid() {
		return Result{}, fmt.Errorf("%w: %s", ErrInvalidInput, rgb)
	}

	result := Result{
		Entry:    Unknown,
		Query:    rgb,
		Distance: math.Inf(1),
		Text:     contrast(rgb),
	}

	q := rgb.Floats()
	diff := make([]float64, len(q))
	best := math.Inf(1)
	for i := 0; i < m.table.Len(); i++ {
		e := m.table.At(i)
		// Channel differences are small integers, so the squared distance is
		// exact and equal distances compare equal.
		floats.SubTo(diff, q, e.RGB.Floats())
		sq := floats.Dot(diff, diff)
		// Strictly smaller only: the first of several equal candidates wins.
		if sq < best {
			best = sq
			result.Entry = e
		}
	}
	result.Distance = math.Sqrt(best)
	return result, nil
}
