package model

// GlassLine is one priced order line produced from a result bucket.
type GlassLine struct {
	Name           string        `json:"name"`
	Size           string        `json:"size"` // bucket label
	Quantity       int           `json:"quantity"`
	PhysicalSheets int           `json:"physical_sheets"`
	UnitPrice      float64       `json:"unit_price"`
	TotalCost      float64       `json:"total_cost"`
	PriceSource    string        `json:"price_source,omitempty"`
	Notes          string        `json:"notes"`
	Failed         bool          `json:"failed"`
	Layouts        []SheetLayout `json:"layouts,omitempty"`
}

// GlassSummary is the priced view of an Allocation.
type GlassSummary struct {
	GlassType    string      `json:"glass_type"`
	Mode         StockMode   `json:"mode"`
	PricePerSqFt float64     `json:"price_per_sq_ft"`
	PriceSource  string      `json:"price_source"`
	Lines        []GlassLine `json:"lines"`
	Total        float64     `json:"total"`
	TotalSheets  int         `json:"total_sheets"`
	Efficiency   float64     `json:"efficiency"` // percent over all packed sheets
}

// Failed reports whether any line is a failure line.
func (s GlassSummary) Failed() bool {
	for _, l := range s.Lines {
		if l.Failed {
			return true
		}
	}
	return false
}

// Layouts returns all sheet layouts of the packed lines in order.
func (s GlassSummary) Layouts() []SheetLayout {
	var out []SheetLayout
	for _, l := range s.Lines {
		out = append(out, l.Layouts...)
	}
	return out
}

// Estimate is the full answer to a glass estimate request.
type Estimate struct {
	Summary          GlassSummary      `json:"summary"`
	Allocation       Allocation        `json:"allocation"`
	PanelCount       int               `json:"panel_count"`
	SquareFootage    float64           `json:"square_footage"`
	Offcuts          []Offcut          `json:"offcuts,omitempty"`
	PurchaseEstimate *PurchaseEstimate `json:"purchase_estimate,omitempty"`
}
