package engine

import (
	"strconv"
	"strings"

	"github.com/piwi3910/GlassCut/internal/model"
)

// Summarize prices an allocation. Each packed bucket becomes a stock sheet
// line costing sheets x (area in sq ft x rate); each failure bucket becomes a
// zero-quantity, zero-cost line that keeps its notes.
func Summarize(alloc *model.Allocation, glassType string, quote model.Quote) model.GlassSummary {
	summary := model.GlassSummary{
		GlassType:    glassType,
		Mode:         alloc.Mode,
		PricePerSqFt: quote.Price,
		PriceSource:  quote.Source,
		Efficiency:   alloc.Efficiency(),
	}
	name := "Stock Glass Sheet (" + model.ParseGlassType(glassType).DisplayName() + ")"

	for _, b := range alloc.Buckets {
		notes := strings.Join(b.Notes, "; ")
		if b.Failed() {
			summary.Lines = append(summary.Lines, model.GlassLine{
				Name:   "Unfittable Glass Panel",
				Size:   b.Label,
				Notes:  notes,
				Failed: true,
			})
			continue
		}

		unit := model.PricePerSheet(b.Stock, quote.Price)
		total := float64(b.BillableSheets) * unit
		prefix := ""
		if alloc.Mode == model.ModeAutomatic {
			prefix = "Optimized. "
		}
		summary.Lines = append(summary.Lines, model.GlassLine{
			Name:           name,
			Size:           b.Label,
			Quantity:       b.BillableSheets,
			PhysicalSheets: b.PhysicalSheets,
			UnitPrice:      unit,
			TotalCost:      total,
			PriceSource:    quote.Source,
			Notes:          prefix + "Details: " + notes,
			Layouts:        b.Layouts,
		})
		summary.Total += total
		summary.TotalSheets += b.PhysicalSheets
	}
	return summary
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
