package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Panel represents one glass pane to be cut, derived from a window.
// Width and height are the finished cut size in inches, before any
// cutting allowance is added.
type Panel struct {
	Width       float64 `json:"width"`                  // inches
	Height      float64 `json:"height"`                 // inches
	SourceIndex int     `json:"source_index"`           // 1-based index of the originating window
	SourceLabel string  `json:"source_label,omitempty"` // e.g. "W3" or "Kitchen (Transom)"
}

func NewPanel(label string, index int, w, h float64) Panel {
	return Panel{
		Width:       w,
		Height:      h,
		SourceIndex: index,
		SourceLabel: label,
	}
}

// Area returns the finished panel area in square inches.
func (p Panel) Area() float64 {
	return p.Width * p.Height
}

// LongSide returns the longer of the two panel dimensions.
func (p Panel) LongSide() float64 {
	return math.Max(p.Width, p.Height)
}

// StockSize is a candidate stock sheet size from the glass catalog.
type StockSize struct {
	Width  float64 `json:"width"`  // inches
	Height float64 `json:"height"` // inches
}

// Area returns the sheet area in square inches.
func (s StockSize) Area() float64 {
	return s.Width * s.Height
}

// Valid reports whether both dimensions are positive finite numbers.
func (s StockSize) Valid() bool {
	return s.Width > 0 && s.Height > 0 && !math.IsInf(s.Width, 0) && !math.IsInf(s.Height, 0)
}

// Label returns the display key used for result buckets, e.g. `48" x 72"`.
func (s StockSize) Label() string {
	return fmt.Sprintf("%s\" x %s\"", formatInches(s.Width), formatInches(s.Height))
}

func (s StockSize) String() string {
	return s.Label()
}

// ParseStockSize parses a stock selection such as "48x72" or `48" x 72"`.
func ParseStockSize(s string) (StockSize, error) {
	cleaned := strings.ReplaceAll(strings.ToLower(s), "\"", "")
	parts := strings.Split(cleaned, "x")
	if len(parts) != 2 {
		return StockSize{}, fmt.Errorf("invalid stock size %q: expected WIDTHxHEIGHT", s)
	}
	w, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return StockSize{}, fmt.Errorf("invalid stock width in %q: %w", s, err)
	}
	h, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return StockSize{}, fmt.Errorf("invalid stock height in %q: %w", s, err)
	}
	stock := StockSize{Width: w, Height: h}
	if !stock.Valid() {
		return StockSize{}, fmt.Errorf("invalid stock size %q: dimensions must be positive", s)
	}
	return stock, nil
}

func formatInches(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// PlacedPanel is a panel's final position on a sheet. Width and Height are
// the placed footprint including the cutting allowance; SourceWidth and
// SourceHeight are the panel's own dimensions as supplied.
type PlacedPanel struct {
	X            float64 `json:"x"`      // from left edge (in)
	Y            float64 `json:"y"`      // from top edge (in)
	Width        float64 `json:"width"`  // placed footprint, allowance included
	Height       float64 `json:"height"` // placed footprint, allowance included
	SourceWidth  float64 `json:"source_width"`
	SourceHeight float64 `json:"source_height"`
	Rotated      bool    `json:"rotated"` // placed turned 90°
	SourceIndex  int     `json:"source_index"`
	SourceLabel  string  `json:"source_label,omitempty"`
}

// CutWidth returns the finished horizontal size as it lies on the sheet.
func (p PlacedPanel) CutWidth() float64 {
	if p.Rotated {
		return p.SourceHeight
	}
	return p.SourceWidth
}

// CutHeight returns the finished vertical size as it lies on the sheet.
func (p PlacedPanel) CutHeight() float64 {
	if p.Rotated {
		return p.SourceWidth
	}
	return p.SourceHeight
}

func (p PlacedPanel) Right() float64 {
	return p.X + p.Width
}

func (p PlacedPanel) Bottom() float64 {
	return p.Y + p.Height
}

// SheetLayout is the packing result of one physical stock sheet.
type SheetLayout struct {
	StockWidth   float64       `json:"stock_width"`
	StockHeight  float64       `json:"stock_height"`
	PlacedPanels []PlacedPanel `json:"placed_panels"`
}

// Stock returns the sheet's stock size.
func (sl SheetLayout) Stock() StockSize {
	return StockSize{Width: sl.StockWidth, Height: sl.StockHeight}
}

// UsedArea returns the finished glass area cut from the sheet.
func (sl SheetLayout) UsedArea() float64 {
	var total float64
	for _, p := range sl.PlacedPanels {
		total += p.SourceWidth * p.SourceHeight
	}
	return total
}

// TotalArea returns the stock sheet area.
func (sl SheetLayout) TotalArea() float64 {
	return sl.StockWidth * sl.StockHeight
}

// Efficiency returns the usage percentage.
func (sl SheetLayout) Efficiency() float64 {
	ta := sl.TotalArea()
	if ta == 0 {
		return 0
	}
	return (sl.UsedArea() / ta) * 100.0
}

// PackingResult is the outcome of packing a panel set onto one stock size.
// An infeasible result carries no layouts; Oversized lists the panels that
// caused it when they can be identified.
type PackingResult struct {
	SheetCount int           `json:"sheet_count"`
	Layouts    []SheetLayout `json:"layouts"`
	Infeasible bool          `json:"infeasible"`
	Oversized  []Panel       `json:"oversized,omitempty"`
}

// InfeasibleResult builds the sentinel result for a panel set that cannot be packed.
func InfeasibleResult(oversized []Panel) PackingResult {
	return PackingResult{Infeasible: true, Oversized: oversized}
}

// Feasible reports whether every panel was placed.
func (pr PackingResult) Feasible() bool {
	return !pr.Infeasible
}

// PlacedCount returns the number of panels across all layouts.
func (pr PackingResult) PlacedCount() int {
	n := 0
	for _, l := range pr.Layouts {
		n += len(l.PlacedPanels)
	}
	return n
}

// DefaultCuttingAllowance is the kerf added to each side length before packing (1/8").
const DefaultCuttingAllowance = 0.125

// CutSettings holds packing configuration.
type CutSettings struct {
	CuttingAllowance float64 `json:"cutting_allowance"` // inches added to width and height
	ParallelBuckets  bool    `json:"parallel_buckets"`  // pack stock-size buckets concurrently
	WastePercent     float64 `json:"waste_percent"`     // purchase estimate waste factor
}

func DefaultSettings() CutSettings {
	return CutSettings{
		CuttingAllowance: DefaultCuttingAllowance,
		ParallelBuckets:  false,
		WastePercent:     10.0,
	}
}
