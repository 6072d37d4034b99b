package engine

import (
	"github.com/piwi3910/GlassCut/internal/model"
)

// ComparisonScenario is one stock selection to try, e.g. "optimize" or "48x84".
type ComparisonScenario struct {
	Name          string
	SelectedStock string
}

// ComparisonResult holds the outcome and statistics of one scenario.
type ComparisonResult struct {
	Scenario      ComparisonScenario
	Allocation    *model.Allocation
	Summary       model.GlassSummary
	SheetsUsed    int
	WastePercent  float64
	TotalCost     float64
	UnplacedCount int
}

// CompareStocks runs each scenario over the same panels and returns the
// results in scenario order, so a user can see what each stock choice costs.
func (o *Optimizer) CompareStocks(scenarios []ComparisonScenario, panels []model.Panel, stocks []model.StockSize, glassType string, quote model.Quote) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		alloc := o.Allocate(panels, scenario.SelectedStock, stocks)
		summary := Summarize(alloc, glassType, quote)

		unplaced := 0
		for _, b := range alloc.Failures() {
			unplaced += len(b.Unfitted)
		}
		waste := 0.0
		if alloc.TotalSheets() > 0 {
			waste = 100.0 - alloc.Efficiency()
		}

		results = append(results, ComparisonResult{
			Scenario:      scenario,
			Allocation:    alloc,
			Summary:       summary,
			SheetsUsed:    alloc.TotalSheets(),
			WastePercent:  waste,
			TotalCost:     summary.Total,
			UnplacedCount: unplaced,
		})
	}
	return results
}

// BuildStockScenarios returns automatic mode followed by every stock size
// forced as a fixed selection.
func BuildStockScenarios(stocks []model.StockSize) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{Name: "Automatic", SelectedStock: model.OptimizeSelection},
	}
	for _, s := range stocks {
		scenarios = append(scenarios, ComparisonScenario{
			Name:          s.Label(),
			SelectedStock: trimFloat(s.Width) + "x" + trimFloat(s.Height),
		})
	}
	return scenarios
}

// Cheapest returns the index of the scenario with the lowest cost that placed
// every panel, or -1 if none did.
func Cheapest(results []ComparisonResult) int {
	best := -1
	for i, r := range results {
		if r.UnplacedCount > 0 || r.Allocation.Failed() {
			continue
		}
		if best < 0 || r.TotalCost < results[best].TotalCost ||
			(r.TotalCost == results[best].TotalCost && r.SheetsUsed < results[best].SheetsUsed) {
			best = i
		}
	}
	return best
}
