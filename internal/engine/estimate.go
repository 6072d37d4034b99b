package engine

import (
	"github.com/piwi3910/GlassCut/internal/model"
)

// EstimateRequest describes one glass estimate: the panels to cut, the
// glass type, how stock is selected and how glass is priced.
type EstimateRequest struct {
	GlassType     string        `json:"glass_type"`
	SelectedStock string        `json:"selected_stock"` // "optimize" or "WxH"
	Supplier      string        `json:"supplier"`
	PricePerSqFt  *float64      `json:"price_per_sqft,omitempty"` // overrides the price list
	Panels        []model.Panel `json:"panels"`
}

// Estimate packs the request's panels against the catalog stock for its
// glass type and prices the result.
func (o *Optimizer) Estimate(req EstimateRequest, catalog model.Catalog, prices model.PriceList) model.Estimate {
	glassType := req.GlassType
	if glassType == "" {
		glassType = model.DefaultGlass
	}
	selected := req.SelectedStock
	if selected == "" {
		selected = model.OptimizeSelection
	}
	supplier := req.Supplier
	if supplier == "" {
		supplier = model.SupplierBestPrice
	}

	alloc := o.Allocate(req.Panels, selected, catalog.StocksFor(glassType))

	quote := prices.Lookup(glassType, supplier)
	if req.PricePerSqFt != nil {
		quote = model.Quote{Price: *req.PricePerSqFt, Source: model.PriceSourceManual}
	}

	est := model.Estimate{
		Summary:    Summarize(alloc, glassType, quote),
		Allocation: *alloc,
		PanelCount: len(req.Panels),
		Offcuts:    model.DetectAllOffcuts(alloc.Layouts(), quote.Price),
	}
	for _, p := range req.Panels {
		est.SquareFootage += p.Area() / model.SquareInchesPerFoot
	}

	if alloc.Mode == model.ModeFixed {
		if stock, err := model.ParseStockSize(selected); err == nil {
			pe := model.CalculatePurchaseEstimate(req.Panels, stock, o.Settings.CuttingAllowance,
				o.Settings.WastePercent, model.PricePerSheet(stock, quote.Price))
			est.PurchaseEstimate = &pe
		}
	}
	return est
}
