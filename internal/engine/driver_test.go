package engine

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/piwi3910/GlassCut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultTestSettings() model.CutSettings {
	return model.DefaultSettings()
}

func panels(sizes ...[2]float64) []model.Panel {
	out := make([]model.Panel, len(sizes))
	for i, s := range sizes {
		out[i] = model.NewPanel("", i+1, s[0], s[1])
	}
	return out
}

func repeat(n int, w, h float64) []model.Panel {
	out := make([]model.Panel, n)
	for i := range out {
		out[i] = model.NewPanel("", i+1, w, h)
	}
	return out
}

func TestPack_SinglePanelExactWidth(t *testing.T) {
	opt := New(defaultTestSettings())
	result := opt.Pack(panels([2]float64{47.875, 47.875}), model.StockSize{Width: 48, Height: 72})

	require.False(t, result.Infeasible)
	assert.Equal(t, 1, result.SheetCount)
	require.Len(t, result.Layouts, 1)
	require.Len(t, result.Layouts[0].PlacedPanels, 1)

	p := result.Layouts[0].PlacedPanels[0]
	assert.Equal(t, 0.0, p.X)
	assert.Equal(t, 0.0, p.Y)
	assert.Equal(t, 48.0, p.Width)
	assert.Equal(t, 48.0, p.Height)
	assert.False(t, p.Rotated)
	assert.Equal(t, 47.875, p.SourceWidth)
	assert.Equal(t, 47.875, p.SourceHeight)
}

func TestPack_ThreePanelsShareOneSheet(t *testing.T) {
	opt := New(defaultTestSettings())
	result := opt.Pack(repeat(3, 20, 30), model.StockSize{Width: 48, Height: 72})

	require.False(t, result.Infeasible)
	assert.Equal(t, 1, result.SheetCount)
	require.Len(t, result.Layouts[0].PlacedPanels, 3)

	placed := result.Layouts[0].PlacedPanels
	assert.Equal(t, [2]float64{0, 0}, [2]float64{placed[0].X, placed[0].Y})
	assert.True(t, placed[0].Rotated)
	assert.Equal(t, [2]float64{0, 20.125}, [2]float64{placed[1].X, placed[1].Y})
	assert.True(t, placed[1].Rotated)
	assert.Equal(t, [2]float64{0, 40.25}, [2]float64{placed[2].X, placed[2].Y})
	assert.False(t, placed[2].Rotated)
}

func TestPack_OversizedPanelIsInfeasible(t *testing.T) {
	opt := New(defaultTestSettings())
	in := panels([2]float64{10, 10}, [2]float64{100, 100})
	result := opt.Pack(in, model.StockSize{Width: 48, Height: 72})

	assert.True(t, result.Infeasible)
	assert.Equal(t, 0, result.SheetCount)
	assert.Empty(t, result.Layouts)
	require.Len(t, result.Oversized, 1)
	assert.Equal(t, 100.0, result.Oversized[0].Width)
}

func TestPack_AllowanceMakesPanelTooLarge(t *testing.T) {
	opt := New(defaultTestSettings())
	stock := model.StockSize{Width: 48, Height: 72}
	assert.False(t, opt.Fits(model.Panel{Width: 48, Height: 48}, stock))
	// 48.125 still fits along the 72" side
	assert.True(t, opt.Fits(model.Panel{Width: 48, Height: 30}, stock))
	assert.True(t, opt.Fits(model.Panel{Width: 47.875, Height: 71.875}, stock))
	assert.False(t, opt.Fits(model.Panel{Width: 47.875, Height: 71.9}, stock))
}

func TestPack_FiveSquaresSpillOntoMoreSheets(t *testing.T) {
	opt := New(defaultTestSettings())
	stock := model.StockSize{Width: 48, Height: 72}
	result := opt.Pack(repeat(5, 24, 24), stock)

	require.False(t, result.Infeasible)
	// 24.125 squares fit one column of two per 48x72 sheet
	assert.Equal(t, 3, result.SheetCount)
	require.Len(t, result.Layouts, 3)
	assert.Len(t, result.Layouts[0].PlacedPanels, 2)
	assert.Len(t, result.Layouts[1].PlacedPanels, 2)
	assert.Len(t, result.Layouts[2].PlacedPanels, 1)

	again := opt.Pack(repeat(5, 24, 24), stock)
	assert.Equal(t, result, again, "packing must be deterministic")
}

func TestPack_EmptyInput(t *testing.T) {
	opt := New(defaultTestSettings())
	result := opt.Pack(nil, model.StockSize{Width: 48, Height: 72})
	assert.False(t, result.Infeasible)
	assert.Equal(t, 0, result.SheetCount)
	assert.Empty(t, result.Layouts)
}

func TestPack_InvalidStockIsInfeasible(t *testing.T) {
	opt := New(defaultTestSettings())
	result := opt.Pack(repeat(1, 10, 10), model.StockSize{Width: 0, Height: 72})
	assert.True(t, result.Infeasible)
	assert.False(t, result.Feasible())
	assert.Len(t, result.Oversized, 1)
	assert.Equal(t, 0, result.PlacedCount())
}

func TestPack_DoesNotReorderCallerSlice(t *testing.T) {
	opt := New(defaultTestSettings())
	in := panels([2]float64{5, 5}, [2]float64{30, 30}, [2]float64{10, 10})
	_ = opt.Pack(in, model.StockSize{Width: 48, Height: 72})
	assert.Equal(t, 5.0, in[0].Width)
	assert.Equal(t, 30.0, in[1].Width)
}

func TestSortForPacking(t *testing.T) {
	in := panels(
		[2]float64{10, 10}, // area 100
		[2]float64{5, 20},  // area 100, long side 20
		[2]float64{30, 30},
		[2]float64{4, 25}, // area 100, long side 25
	)
	got := sortForPacking(in)
	assert.Equal(t, 30.0, got[0].Width)
	assert.Equal(t, 25.0, got[1].Height)
	assert.Equal(t, 20.0, got[2].Height)
	assert.Equal(t, 10.0, got[3].Width)
}

// ==================== Invariants over random panel sets ====================

func randomPanels(rng *rand.Rand, n int, maxW, maxH float64) []model.Panel {
	out := make([]model.Panel, n)
	for i := range out {
		// sixteenths of an inch, at least 2"
		w := 2 + math.Floor(rng.Float64()*(maxW-2)*16)/16
		h := 2 + math.Floor(rng.Float64()*(maxH-2)*16)/16
		out[i] = model.NewPanel("", i+1, w, h)
	}
	return out
}

func checkLayoutInvariants(t *testing.T, layouts []model.SheetLayout, allowance float64) {
	t.Helper()
	for s, l := range layouts {
		for i, a := range l.PlacedPanels {
			assert.GreaterOrEqual(t, a.X, 0.0)
			assert.GreaterOrEqual(t, a.Y, 0.0)
			assert.LessOrEqual(t, a.Right(), l.StockWidth+eps, "sheet %d panel %d exceeds width", s, i)
			assert.LessOrEqual(t, a.Bottom(), l.StockHeight+eps, "sheet %d panel %d exceeds height", s, i)

			standard := a.Width == a.SourceWidth+allowance && a.Height == a.SourceHeight+allowance
			swapped := a.Width == a.SourceHeight+allowance && a.Height == a.SourceWidth+allowance
			assert.True(t, standard || swapped, "sheet %d panel %d has footprint %vx%v for source %vx%v",
				s, i, a.Width, a.Height, a.SourceWidth, a.SourceHeight)

			for j := i + 1; j < len(l.PlacedPanels); j++ {
				b := l.PlacedPanels[j]
				overlap := rectsOverlap(rect{a.X, a.Y, a.Width, a.Height}, rect{b.X, b.Y, b.Width, b.Height})
				assert.False(t, overlap, "sheet %d panels %d and %d overlap", s, i, j)
			}
		}
	}
}

func sourceMultiset(layouts []model.SheetLayout) [][2]float64 {
	var out [][2]float64
	for _, l := range layouts {
		for _, p := range l.PlacedPanels {
			out = append(out, [2]float64{p.SourceWidth, p.SourceHeight})
		}
	}
	sortPairs(out)
	return out
}

func inputMultiset(in []model.Panel) [][2]float64 {
	out := make([][2]float64, len(in))
	for i, p := range in {
		out[i] = [2]float64{p.Width, p.Height}
	}
	sortPairs(out)
	return out
}

func sortPairs(pairs [][2]float64) {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})
}

func TestPack_RandomInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	opt := New(defaultTestSettings())
	stock := model.StockSize{Width: 48, Height: 72}

	for round := 0; round < 40; round++ {
		in := randomPanels(rng, 1+rng.Intn(30), 47, 71)
		result := opt.Pack(in, stock)
		require.False(t, result.Infeasible, "round %d", round)

		checkLayoutInvariants(t, result.Layouts, opt.Settings.CuttingAllowance)
		assert.Equal(t, inputMultiset(in), sourceMultiset(result.Layouts), "round %d conservation", round)
		assert.Equal(t, len(result.Layouts), result.SheetCount)
		assert.Equal(t, len(in), result.PlacedCount(), "round %d placed count", round)
		for _, l := range result.Layouts {
			assert.NotEmpty(t, l.PlacedPanels)
		}
	}
}

func TestPack_MonotonicFeasibility(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	opt := New(defaultTestSettings())
	small := model.StockSize{Width: 48, Height: 72}
	larger := []model.StockSize{{Width: 48, Height: 84}, {Width: 60, Height: 84}, {Width: 72, Height: 96}}

	for round := 0; round < 30; round++ {
		in := randomPanels(rng, 1+rng.Intn(15), 60, 80)
		if opt.Pack(in, small).Infeasible {
			continue
		}
		for _, s := range larger {
			assert.False(t, opt.Pack(in, s).Infeasible, "round %d: feasible on %s but not on %s", round, small.Label(), s.Label())
		}
	}
}

func TestOversized_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	opt := New(defaultTestSettings())
	stock := model.StockSize{Width: 48, Height: 72}
	for round := 0; round < 20; round++ {
		in := randomPanels(rng, 10, 80, 80)
		first := opt.Oversized(in, stock)
		second := opt.Oversized(in, stock)
		assert.Equal(t, first, second)
	}
}
