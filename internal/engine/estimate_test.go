package engine

import (
	"testing"

	"github.com/piwi3910/GlassCut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimate_UsesCatalogAndPriceList(t *testing.T) {
	opt := New(defaultTestSettings())
	prices := model.PriceList{"Mirror-1/4": {"VIS": 6, "VLIS": 5}}
	req := EstimateRequest{
		GlassType:     "Mirror-1/4",
		SelectedStock: model.OptimizeSelection,
		Supplier:      model.SupplierBestPrice,
		Panels:        panels([2]float64{20, 30}, [2]float64{40, 80}),
	}

	est := opt.Estimate(req, model.DefaultCatalog(), prices)

	assert.Equal(t, 2, est.PanelCount)
	assert.InDelta(t, (600.0+3200.0)/144.0, est.SquareFootage, 1e-9)
	assert.Equal(t, 5.0, est.Summary.PricePerSqFt)
	assert.Equal(t, "VLIS", est.Summary.PriceSource)

	// mirror stock is 48x72 and 48x84; the 40x80 panel needs the 84" sheet
	require.Len(t, est.Summary.Lines, 2)
	assert.Equal(t, `48" x 72"`, est.Summary.Lines[0].Size)
	assert.Equal(t, `48" x 84"`, est.Summary.Lines[1].Size)
	assert.Nil(t, est.PurchaseEstimate)
	assert.NotEmpty(t, est.Offcuts)
}

func TestEstimate_ManualPriceAndFixedStock(t *testing.T) {
	opt := New(defaultTestSettings())
	price := 2.5
	req := EstimateRequest{
		GlassType:     "Clear-1/4",
		SelectedStock: "48x72",
		PricePerSqFt:  &price,
		Panels:        repeat(4, 23.875, 35.875),
	}

	est := opt.Estimate(req, model.DefaultCatalog(), model.PriceList{})

	assert.Equal(t, model.PriceSourceManual, est.Summary.PriceSource)
	require.Len(t, est.Summary.Lines, 1)
	// the first panel is turned to leave the smaller short side, so the
	// greedy layout needs a second sheet where area alone says one
	assert.Equal(t, 2, est.Summary.Lines[0].Quantity)
	assert.InDelta(t, 120.0, est.Summary.Total, 1e-9)
	require.NotNil(t, est.PurchaseEstimate)
	assert.Equal(t, 1, est.PurchaseEstimate.SheetsNeededMin)
}

func TestEstimate_Defaults(t *testing.T) {
	opt := New(defaultTestSettings())
	est := opt.Estimate(EstimateRequest{Panels: repeat(1, 10, 10)}, model.DefaultCatalog(), model.DefaultPriceList())

	assert.Equal(t, model.DefaultGlass, est.Summary.GlassType)
	assert.Equal(t, model.ModeAutomatic, est.Summary.Mode)
	assert.Equal(t, "GAG", est.Summary.PriceSource)
}
