package match

import (
	"math"
	"math/rand"
	"sync"
	"testing"

	"color-detector/internal/palette"
	"color-detector/pkg/colorutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqDist(a, b colorutil.RGB) int {
	dr, dg, db := a.R-b.R, a.G-b.G, a.B-b.B
	return dr*dr + dg*dg + db*db
}

func TestMatchBuiltinScenarios(t *testing.T) {
	m := New(palette.Builtin())

	tests := []struct {
		query colorutil.RGB
		name  string
		hex   string
		text  TextColor
	}{
		{colorutil.RGB{R: 255, G: 0, B: 0}, "Red", "#FF0000", TextWhite}, // luma 76.2
		{colorutil.RGB{R: 10, G: 10, B: 10}, "Black", "#000000", TextWhite},
		{colorutil.RGB{R: 130, G: 130, B: 130}, "Gray", "#808080", TextBlack},
		{colorutil.RGB{R: 250, G: 170, B: 10}, "Orange", "#FFA500", TextBlack},
		{colorutil.RGB{R: 120, G: 10, B: 120}, "Purple", "#800080", TextWhite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := m.Match(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.name, res.Name())
			assert.Equal(t, tt.hex, res.Hex())
			assert.Equal(t, tt.query, res.Query)
			assert.Equal(t, tt.text, res.Text)
			assert.False(t, res.IsUnknown())
		})
	}
}

func TestMatchExactEntryHasZeroDistance(t *testing.T) {
	table := palette.Builtin()
	m := New(table)

	for _, e := range table.Entries() {
		res, err := m.Match(e.RGB)
		require.NoError(t, err)
		assert.Equal(t, e, res.Entry)
		assert.Zero(t, res.Distance)
	}
}

func TestMatchIsNearest(t *testing.T) {
	table := palette.Builtin()
	m := New(table)
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 2000; i++ {
		q := colorutil.RGB{R: rng.Intn(256), G: rng.Intn(256), B: rng.Intn(256)}
		res, err := m.Match(q)
		require.NoError(t, err)

		_, member := table.Lookup(res.Name())
		require.True(t, member, "result %q not in table", res.Name())

		best := sqDist(q, res.Entry.RGB)
		assert.InDelta(t, math.Sqrt(float64(best)), res.Distance, 1e-9)
		for _, e := range table.Entries() {
			assert.GreaterOrEqual(t, sqDist(q, e.RGB), best, "query %s: %s closer than %s", q, e.Name, res.Name())
		}
	}
}

func TestMatchTieBreakFirstWins(t *testing.T) {
	// (3,4,0) and (0,0,5) are both at distance 5 from the origin.
	table := palette.NewTable([]palette.Entry{
		palette.NewEntry("Far", colorutil.RGB{R: 200, G: 200, B: 200}),
		palette.NewEntry("First", colorutil.RGB{R: 3, G: 4, B: 0}),
		palette.NewEntry("Second", colorutil.RGB{R: 0, G: 0, B: 5}),
	})
	m := New(table)

	for i := 0; i < 10; i++ {
		res, err := m.Match(colorutil.RGB{})
		require.NoError(t, err)
		assert.Equal(t, "First", res.Name())
		assert.Equal(t, 5.0, res.Distance)
	}

	reversed := palette.NewTable([]palette.Entry{table.At(2), table.At(1)})
	res, err := New(reversed).Match(colorutil.RGB{})
	require.NoError(t, err)
	assert.Equal(t, "Second", res.Name())
}

func TestMatchDuplicateNamesKeepFirst(t *testing.T) {
	table := palette.NewTable([]palette.Entry{
		{Name: "Teal", Hex: "#008080", RGB: colorutil.RGB{R: 0, G: 128, B: 128}},
		{Name: "Teal", Hex: "#008081", RGB: colorutil.RGB{R: 0, G: 128, B: 129}},
	})
	res, err := New(table).Match(colorutil.RGB{R: 0, G: 128, B: 128})
	require.NoError(t, err)
	assert.Equal(t, "#008080", res.Hex())
}

func TestMatchEmptyTableReturnsSentinel(t *testing.T) {
	for _, table := range []*palette.Table{nil, palette.NewTable(nil)} {
		res, err := New(table).Match(colorutil.RGB{R: 12, G: 34, B: 56})
		require.NoError(t, err)
		assert.Equal(t, "Unknown", res.Name())
		assert.Equal(t, "#000000", res.Hex())
		assert.True(t, res.IsUnknown())
		assert.Equal(t, colorutil.RGB{R: 12, G: 34, B: 56}, res.Query)
	}
}

func TestMatchRejectsOutOfRange(t *testing.T) {
	m := New(palette.Builtin())

	for _, q := range []colorutil.RGB{
		{R: -1, G: 0, B: 0},
		{R: 0, G: 256, B: 0},
		{R: 0, G: 0, B: 1000},
	} {
		_, err := m.Match(q)
		assert.ErrorIs(t, err, ErrInvalidInput, "query %s", q)
	}

	// Validation happens before the empty-table sentinel.
	_, err := New(nil).Match(colorutil.RGB{R: 300})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMatchConcurrent(t *testing.T) {
	m := New(palette.Builtin())
	rng := rand.New(rand.NewSource(7))
	queries := make([]colorutil.RGB, 400)
	want := make([]Result, len(queries))
	for i := range queries {
		queries[i] = colorutil.RGB{R: rng.Intn(256), G: rng.Intn(256), B: rng.Intn(256)}
		res, err := m.Match(queries[i])
		require.NoError(t, err)
		want[i] = res
	}

	const workers = 8
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			for i := range queries {
				j := (i + offset) % len(queries)
				res, err := m.Match(queries[j])
				if err != nil || res != want[j] {
					t.Errorf("Match(%s) = %v, %v; want %v", queries[j], res, err, want[j])
					return
				}
			}
		}(w * 50)
	}
	wg.Wait()
}
