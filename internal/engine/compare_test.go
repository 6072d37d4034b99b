package engine

import (
	"testing"

	"github.com/piwi3910/GlassCut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildStockScenarios(t *testing.T) {
	scenarios := BuildStockScenarios([]model.StockSize{{Width: 48, Height: 72}, {Width: 60, Height: 84}})
	require.Len(t, scenarios, 3)
	assert.Equal(t, "Automatic", scenarios[0].Name)
	assert.Equal(t, model.OptimizeSelection, scenarios[0].SelectedStock)
	assert.Equal(t, `48" x 72"`, scenarios[1].Name)
	assert.Equal(t, "48x72", scenarios[1].SelectedStock)
	assert.Equal(t, "60x84", scenarios[2].SelectedStock)
}

func TestCompareStocks(t *testing.T) {
	opt := New(defaultTestSettings())
	stocks := []model.StockSize{{Width: 48, Height: 72}, {Width: 72, Height: 96}}
	in := panels([2]float64{20, 30}, [2]float64{60, 90})

	results := opt.CompareStocks(BuildStockScenarios(stocks), in, stocks, "Clear-1/4", model.Quote{Price: 1, Source: "VIS"})
	require.Len(t, results, 3)

	auto := results[0]
	assert.Equal(t, 2, auto.SheetsUsed)
	assert.Equal(t, 0, auto.UnplacedCount)
	assert.InDelta(t, 72.0, auto.TotalCost, 1e-9)

	// the large panel does not fit 48x72
	small := results[1]
	assert.Equal(t, 0, small.SheetsUsed)
	assert.Equal(t, 1, small.UnplacedCount)
	assert.True(t, small.Allocation.Failed())

	// the 60x90 panel leaves strips too narrow for the small one
	large := results[2]
	assert.Equal(t, 2, large.SheetsUsed)
	assert.InDelta(t, 96.0, large.TotalCost, 1e-9)
	assert.Greater(t, large.WastePercent, 0.0)

	assert.Equal(t, 0, Cheapest(results))
}

func TestCheapest_NoneComplete(t *testing.T) {
	opt := New(defaultTestSettings())
	stocks := []model.StockSize{{Width: 48, Height: 72}}
	results := opt.CompareStocks(BuildStockScenarios(stocks), panels([2]float64{100, 100}), stocks, "Clear-1/4", model.Quote{})
	assert.Equal(t, -1, Cheapest(results))
}

func TestCompareStocks_InvalidSelectionCountsUnplaced(t *testing.T) {
	opt := New(defaultTestSettings())
	stocks := []model.StockSize{{Width: 48, Height: 72}}
	scenarios := []ComparisonScenario{{Name: "Typo", SelectedStock: "48by72"}}

	results := opt.CompareStocks(scenarios, repeat(3, 20, 30), stocks, "Clear-1/4", model.Quote{Price: 1})
	require.Len(t, results, 1)
	assert.Equal(t, 3, results[0].UnplacedCount)
	assert.Equal(t, 0, results[0].SheetsUsed)
	assert.Equal(t, -1, Cheapest(results))
}
