package engine

import (
	"sort"

	"github.com/piwi3910/GlassCut/internal/model"
)

// Optimizer packs glass panels onto stock sheets.
type Optimizer struct {
	Settings model.CutSettings
}

func New(settings model.CutSettings) *Optimizer {
	return &Optimizer{Settings: settings}
}

// Fits reports whether a panel plus cutting allowance fits the stock in at
// least one orientation.
func (o *Optimizer) Fits(p model.Panel, stock model.StockSize) bool {
	w := p.Width + o.Settings.CuttingAllowance
	h := p.Height + o.Settings.CuttingAllowance
	return fitsIn(w, h, stock.Width, stock.Height) || fitsIn(h, w, stock.Width, stock.Height)
}

// Oversized returns the panels that fit the stock in neither orientation.
func (o *Optimizer) Oversized(panels []model.Panel, stock model.StockSize) []model.Panel {
	var out []model.Panel
	for _, p := range panels {
		if !o.Fits(p, stock) {
			out = append(out, p)
		}
	}
	return out
}

// Pack fills as many sheets of one stock size as the panels need. If any
// panel cannot fit the stock at all the result is infeasible and nothing is
// packed.
func (o *Optimizer) Pack(panels []model.Panel, stock model.StockSize) model.PackingResult {
	if !stock.Valid() {
		return model.InfeasibleResult(append([]model.Panel(nil), panels...))
	}
	if oversized := o.Oversized(panels, stock); len(oversized) > 0 {
		return model.InfeasibleResult(oversized)
	}

	remaining := sortForPacking(panels)
	allowance := o.Settings.CuttingAllowance
	result := model.PackingResult{}

	for len(remaining) > 0 {
		packer := NewSheetPacker(stock.Width, stock.Height)
		layout := model.SheetLayout{StockWidth: stock.Width, StockHeight: stock.Height}
		var deferred []model.Panel

		for _, p := range remaining {
			pl, ok := packer.Fit(p.Width+allowance, p.Height+allowance)
			if !ok {
				deferred = append(deferred, p)
				continue
			}
			layout.PlacedPanels = append(layout.PlacedPanels, model.PlacedPanel{
				X:            pl.X,
				Y:            pl.Y,
				Width:        pl.Width,
				Height:       pl.Height,
				SourceWidth:  p.Width,
				SourceHeight: p.Height,
				Rotated:      pl.Rotated,
				SourceIndex:  p.SourceIndex,
				SourceLabel:  p.SourceLabel,
			})
		}

		// every panel passed the pre-check, so an empty sheet means the packer is broken
		if len(layout.PlacedPanels) == 0 {
			return model.InfeasibleResult(remaining)
		}

		result.Layouts = append(result.Layouts, layout)
		remaining = deferred
	}

	result.SheetCount = len(result.Layouts)
	return result
}

// sortForPacking returns a copy of panels ordered by area, largest first,
// then by longer side. Equal panels keep their input order. Areas are
// compared exactly, so panels within 0.1 sq in of each other order by area
// rather than being treated as ties.
func sortForPacking(panels []model.Panel) []model.Panel {
	sorted := make([]model.Panel, len(panels))
	copy(sorted, panels)
	sort.SliceStable(sorted, func(i, j int) bool {
		ai, aj := sorted[i].Area(), sorted[j].Area()
		if ai != aj {
			return ai > aj
		}
		return sorted[i].LongSide() > sorted[j].LongSide()
	})
	return sorted
}
