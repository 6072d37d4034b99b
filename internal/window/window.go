// Package window turns window openings into the glass panels and aluminum
// cut lengths needed to build them.
package window

import (
	"fmt"
	"math"
	"strings"

	"github.com/piwi3910/GlassCut/internal/model"
)

// Type is the window construction.
type Type string

const (
	Sliding Type = "Sliding"
	Awning  Type = "Awning"
	Fixed   Type = "Fixed"
)

// Series is the sliding window extrusion series.
type Series string

const (
	Series798 Series = "798"
	SeriesTR  Series = "TR"
)

// Color is the aluminum finish.
type Color string

const (
	White Color = "White"
	Black Color = "Black"
)

// Window describes one opening. All dimensions are inches.
type Window struct {
	Label           string  `json:"label,omitempty"`
	Width           float64 `json:"width"`
	Height          float64 `json:"height"`
	Panels          int     `json:"panels"`
	Type            Type    `json:"type"`
	Series          Series  `json:"series,omitempty"`
	VerticalGrids   int     `json:"vertical_grids,omitempty"`
	HorizontalGrids int     `json:"horizontal_grids,omitempty"`
	TubularFraming  bool    `json:"tubular_framing,omitempty"`
	FixedFrame      string  `json:"fixed_frame,omitempty"` // e.g. "1x2", "1x4", "1-3/4 x 4"
	HasTransom      bool    `json:"has_transom,omitempty"`
	TransomHeight   float64 `json:"transom_height,omitempty"`
	TransomProfile  string  `json:"transom_profile,omitempty"`
	TransomPosition string  `json:"transom_position,omitempty"` // "top" or "bottom"
}

// Glass deductions for 798 sliding windows.
const (
	glassHeightDeduction798 = 3.875
	glassWidthDeduction2    = 4.5
	glassWidthDeduction3    = 5.5
	glassWidthDeduction4    = 8.0

	stileHeightDeduction = 1.75
	railAdditionToGlass  = 2.875

	awningSashDeduction  = 2.0
	awningGlassDeduction = 1.0

	// glass clip clearance on fixed and transom panes
	paneClearance = 0.125
)

// Takeoff is everything derived from a list of windows.
type Takeoff struct {
	Panels              []model.Panel `json:"panels"`
	Profiles            []ProfileCut  `json:"profiles"`
	SquareFootage       float64       `json:"square_footage"`
	BilledSquareFootage float64       `json:"billed_square_footage"`
	Skipped             []string      `json:"skipped,omitempty"`
}

// Derive computes the glass panels, aluminum cuts and square footage of a
// set of windows. Windows with unusable dimensions are skipped and reported
// in Skipped rather than failing the whole list.
func Derive(windows []Window, color Color) Takeoff {
	var t Takeoff
	profiles := newProfileAggregator()

	for i, w := range windows {
		index := i + 1
		label := w.Label
		if label == "" {
			label = fmt.Sprintf("W%d", index)
		}

		if err := w.validate(); err != nil {
			t.Skipped = append(t.Skipped, fmt.Sprintf("%s: %v", label, err))
			continue
		}

		t.SquareFootage += w.SquareFootage()
		t.BilledSquareFootage += w.BilledSquareFootage()

		var panes []model.Panel
		switch w.Type {
		case Fixed:
			panes = fixedPanes(w, label, index)
			fixedProfiles(profiles, w, color)
		case Awning:
			panes = awningPanes(w, label, index)
			awningProfiles(profiles, w)
		default:
			if w.Panels < 2 {
				t.Skipped = append(t.Skipped, fmt.Sprintf("%s: sliding windows need at least 2 panels", label))
				continue
			}
			panes = slidingPanes(w, label, index)
			slidingProfiles(profiles, w, color)
			if w.HasTransom && w.TransomHeight > 0 {
				panes = append(panes, transomPanes(w, label, index)...)
				transomProfiles(profiles, w, color)
			}
		}

		for _, p := range panes {
			// zero or negative panes come from windows smaller than their deductions
			if p.Width > 0 && p.Height > 0 {
				t.Panels = append(t.Panels, p)
			}
		}
	}

	t.Profiles = profiles.list()
	return t
}

// Panels is a shortcut for Derive(windows, White).Panels.
func Panels(windows []Window) []model.Panel {
	return Derive(windows, White).Panels
}

// SquareFootage returns the window area in square feet, transom included.
func (w Window) SquareFootage() float64 {
	sqft := w.Width * w.Height / model.SquareInchesPerFoot
	if w.HasTransom && w.TransomHeight > 0 {
		sqft += w.Width * w.TransomHeight / model.SquareInchesPerFoot
	}
	return sqft
}

// BilledSquareFootage returns the area a customer is charged for: width and
// height are each rounded in feet with model.ApplyBillingRounding before
// multiplying. A transom is billed as its own band across the full width.
func (w Window) BilledSquareFootage() float64 {
	widthFt := model.ApplyBillingRounding(w.Width / 12)
	sqft := widthFt * model.ApplyBillingRounding(w.Height/12)
	if w.HasTransom && w.TransomHeight > 0 {
		sqft += widthFt * model.ApplyBillingRounding(w.TransomHeight/12)
	}
	return sqft
}

func (w Window) validate() error {
	for _, v := range []float64{w.Width, w.Height, w.TransomHeight} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("dimension is not a number")
		}
	}
	if w.Width <= 0 || w.Height <= 0 {
		return fmt.Errorf("width and height must be positive")
	}
	if w.Panels < 0 || w.VerticalGrids < 0 || w.HorizontalGrids < 0 {
		return fmt.Errorf("panel and grid counts must not be negative")
	}
	return nil
}

func frameThickness(profile string) float64 {
	if strings.HasPrefix(profile, "1-3/4") {
		return 1.75
	}
	return 1.0
}

func fixedPanes(w Window, label string, index int) []model.Panel {
	ft := frameThickness(w.FixedFrame)
	cols := w.VerticalGrids + 1
	rows := w.HorizontalGrids + 1

	glassW := w.Width - 2*ft - float64(w.VerticalGrids)*ft
	glassH := w.Height - 2*ft - float64(w.HorizontalGrids)*ft
	paneW := glassW/float64(cols) - paneClearance
	paneH := glassH/float64(rows) - paneClearance

	panes := make([]model.Panel, 0, rows*cols)
	for i := 0; i < rows*cols; i++ {
		panes = append(panes, model.NewPanel(label, index, paneW, paneH))
	}
	return panes
}

func awningPanes(w Window, label string, index int) []model.Panel {
	sections := max(1, w.Panels)
	sashW := w.Width/float64(sections) - awningSashDeduction
	sashH := w.Height - awningSashDeduction

	panes := make([]model.Panel, 0, sections)
	for i := 0; i < sections; i++ {
		panes = append(panes, model.NewPanel(label, index, sashW-awningGlassDeduction, sashH-awningGlassDeduction))
	}
	return panes
}

func slidingWidthDeduction(panels int) float64 {
	switch panels {
	case 3:
		return glassWidthDeduction3
	case 4:
		return glassWidthDeduction4
	default:
		return glassWidthDeduction2
	}
}

func slidingGlass(w Window) (float64, float64) {
	glassW := (w.Width - slidingWidthDeduction(w.Panels)) / float64(w.Panels)
	glassH := w.Height - glassHeightDeduction798
	return glassW, glassH
}

func slidingPanes(w Window, label string, index int) []model.Panel {
	glassW, glassH := slidingGlass(w)
	panes := make([]model.Panel, 0, w.Panels)
	for i := 0; i < w.Panels; i++ {
		panes = append(panes, model.NewPanel(label, index, glassW, glassH))
	}
	return panes
}

func transomPanes(w Window, label string, index int) []model.Panel {
	ft := frameThickness(w.TransomProfile)
	dividers := max(0, w.Panels-1)
	paneW := (w.Width-2*ft-float64(dividers)*ft)/float64(w.Panels) - paneClearance
	paneH := w.TransomHeight - 2*ft - paneClearance

	panes := make([]model.Panel, 0, w.Panels)
	for i := 0; i < w.Panels; i++ {
		panes = append(panes, model.NewPanel(label+" (Transom)", index, paneW, paneH))
	}
	return panes
}
