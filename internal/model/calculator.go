package model

import "math"

// PurchaseEstimate is an area-based lower bound on the sheets to buy,
// independent of the packing heuristic.
type PurchaseEstimate struct {
	TotalPanelArea    float64   `json:"total_panel_area"`    // sq in, allowance included
	TotalSquareFeet   float64   `json:"total_square_feet"`   // TotalPanelArea / 144
	Stock             StockSize `json:"stock"`               // sheet size estimated against
	SheetArea         float64   `json:"sheet_area"`          // sq in
	SheetsNeededExact float64   `json:"sheets_needed_exact"` // exact fractional number of sheets
	SheetsNeededMin   int       `json:"sheets_needed_min"`   // ceiling of exact
	SheetsWithWaste   int       `json:"sheets_with_waste"`   // recommended sheets including waste factor
	WastePercent      float64   `json:"waste_percent"`       // e.g. 10 for 10%
	PricePerSheet     float64   `json:"price_per_sheet"`
	EstimatedCost     float64   `json:"estimated_cost"`
	CuttingAllowance  float64   `json:"cutting_allowance"`
}

// CalculatePurchaseEstimate computes how many sheets of one stock size to buy
// for a panel list from area alone, adding the cutting allowance to every
// panel and a waste percentage on top.
func CalculatePurchaseEstimate(panels []Panel, stock StockSize, allowance, wastePercent, pricePerSheet float64) PurchaseEstimate {
	var totalArea float64
	for _, p := range panels {
		totalArea += (p.Width + allowance) * (p.Height + allowance)
	}

	sheetArea := stock.Area()
	if sheetArea <= 0 {
		return PurchaseEstimate{
			TotalPanelArea:   totalArea,
			TotalSquareFeet:  totalArea / SquareInchesPerFoot,
			Stock:            stock,
			WastePercent:     wastePercent,
			CuttingAllowance: allowance,
		}
	}

	exact := totalArea / sheetArea
	minSheets := int(math.Ceil(exact))

	wasteFactor := 1.0 + (wastePercent / 100.0)
	withWaste := int(math.Ceil(exact * wasteFactor))
	if withWaste < minSheets {
		withWaste = minSheets
	}

	return PurchaseEstimate{
		TotalPanelArea:    totalArea,
		TotalSquareFeet:   totalArea / SquareInchesPerFoot,
		Stock:             stock,
		SheetArea:         sheetArea,
		SheetsNeededExact: exact,
		SheetsNeededMin:   minSheets,
		SheetsWithWaste:   withWaste,
		WastePercent:      wastePercent,
		PricePerSheet:     pricePerSheet,
		EstimatedCost:     float64(withWaste) * pricePerSheet,
		CuttingAllowance:  allowance,
	}
}
