package model

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

// Offcut is a usable rectangular remnant left on a sheet after cutting.
type Offcut struct {
	ID         string  `json:"id"`
	SheetLabel string  `json:"sheet_label"` // stock label of the source sheet
	SheetIndex int     `json:"sheet_index"` // index of the source sheet in the run
	X          float64 `json:"x"`           // inches from left
	Y          float64 `json:"y"`           // inches from top
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Value      float64 `json:"value"` // share of the sheet price by area, 0 if unpriced
}

// Area returns the offcut area in square inches.
func (o Offcut) Area() float64 {
	return o.Width * o.Height
}

// Stock converts the offcut into a stock size usable for a later run.
func (o Offcut) Stock() StockSize {
	return StockSize{Width: o.Width, Height: o.Height}
}

// MinOffcutDimension is the smallest side (inches) worth keeping as a remnant.
const MinOffcutDimension = 6.0

// MinOffcutArea is the smallest remnant area (sq in) worth keeping.
const MinOffcutArea = 144.0

// DetectOffcuts finds the remnant strips right of and below the packed
// region of a sheet. Placed footprints already include the cutting
// allowance. pricePerSheet may be 0.
func DetectOffcuts(sl SheetLayout, sheetIndex int, pricePerSheet float64) []Offcut {
	sheetW := sl.StockWidth
	sheetH := sl.StockHeight
	label := sl.Stock().Label()

	if len(sl.PlacedPanels) == 0 {
		return []Offcut{{
			ID:         uuid.New().String()[:8],
			SheetLabel: label,
			SheetIndex: sheetIndex,
			Width:      sheetW,
			Height:     sheetH,
			Value:      pricePerSheet,
		}}
	}

	var maxRight, maxBottom float64
	for _, p := range sl.PlacedPanels {
		maxRight = math.Max(maxRight, p.Right())
		maxBottom = math.Max(maxBottom, p.Bottom())
	}

	var offcuts []Offcut

	rightW := sheetW - maxRight
	if rightW >= MinOffcutDimension && sheetH >= MinOffcutDimension && rightW*sheetH >= MinOffcutArea {
		offcuts = append(offcuts, Offcut{
			ID:         uuid.New().String()[:8],
			SheetLabel: label,
			SheetIndex: sheetIndex,
			X:          maxRight,
			Width:      rightW,
			Height:     sheetH,
		})
	}

	// bottom strip stops at the packed region's right edge so it does not overlap the right strip
	bottomH := sheetH - maxBottom
	bottomW := math.Min(maxRight, sheetW)
	if bottomH >= MinOffcutDimension && bottomW >= MinOffcutDimension && bottomH*bottomW >= MinOffcutArea {
		offcuts = append(offcuts, Offcut{
			ID:         uuid.New().String()[:8],
			SheetLabel: label,
			SheetIndex: sheetIndex,
			Y:          maxBottom,
			Width:      bottomW,
			Height:     bottomH,
		})
	}

	if pricePerSheet > 0 {
		total := sl.TotalArea()
		for i := range offcuts {
			offcuts[i].Value = (offcuts[i].Area() / total) * pricePerSheet
		}
	}

	sort.Slice(offcuts, func(i, j int) bool {
		return offcuts[i].Area() > offcuts[j].Area()
	})
	return offcuts
}

// DetectAllOffcuts finds offcuts across a list of sheet layouts.
func DetectAllOffcuts(layouts []SheetLayout, pricePerSqFt float64) []Offcut {
	var all []Offcut
	for i, sl := range layouts {
		all = append(all, DetectOffcuts(sl, i, PricePerSheet(sl.Stock(), pricePerSqFt))...)
	}
	return all
}

// TotalOffcutArea returns the total offcut area in square inches.
func TotalOffcutArea(offcuts []Offcut) float64 {
	var total float64
	for _, o := range offcuts {
		total += o.Area()
	}
	return total
}
