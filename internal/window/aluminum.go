package window

import (
	"fmt"

	"github.com/piwi3910/GlassCut/internal/model"
)

// ProfileCut is the total length of one aluminum profile across all windows.
type ProfileCut struct {
	Name        string            `json:"name"`
	Quantity    int               `json:"quantity"` // number of pieces
	TotalLength float64           `json:"total_length"`
	Bars        model.BarEstimate `json:"bars"`
}

const glassClipProfile = "SOBC Glass Clip (Fixed)"

type profileAggregator struct {
	order  []string
	totals map[string]*ProfileCut
}

func newProfileAggregator() *profileAggregator {
	return &profileAggregator{totals: map[string]*ProfileCut{}}
}

func (a *profileAggregator) add(name string, qty int, length float64) {
	if qty <= 0 {
		return
	}
	pc, ok := a.totals[name]
	if !ok {
		pc = &ProfileCut{Name: name}
		a.totals[name] = pc
		a.order = append(a.order, name)
	}
	pc.Quantity += qty
	pc.TotalLength += length
}

// list returns the profiles in first-seen order with their bar counts.
func (a *profileAggregator) list() []ProfileCut {
	out := make([]ProfileCut, 0, len(a.order))
	for _, name := range a.order {
		pc := *a.totals[name]
		pc.Bars = model.BarsNeeded(pc.Name, pc.TotalLength)
		out = append(out, pc)
	}
	return out
}

func colorSuffix(c Color) string {
	if c == White {
		return "(PCW)"
	}
	return "(HA)"
}

func tubularProfile(size string, c Color) string {
	if size == "1x4" {
		if c == White {
			return "Tubular 1x4 PCW"
		}
		return "Tubular 1x4 HA"
	}
	return fmt.Sprintf("Tubular %s %s", size, colorSuffix(c))
}

func fixedProfiles(a *profileAggregator, w Window, c Color) {
	frame := w.FixedFrame
	if frame == "" {
		frame = "1x2"
	}
	profile := tubularProfile(frame, c)
	frameLength := 2*w.Width + 2*w.Height
	a.add(profile, 1, frameLength)

	gridLength := w.Height*float64(w.VerticalGrids) + w.Width*float64(w.HorizontalGrids)
	if gridLength > 0 {
		a.add(profile, w.VerticalGrids+w.HorizontalGrids, gridLength)
	}
	// clips run both sides of every grid bar
	a.add(glassClipProfile, 1, frameLength+2*gridLength)
}

func awningProfiles(a *profileAggregator, w Window) {
	sections := max(1, w.Panels)
	sectionWidth := w.Width / float64(sections)

	frame := "Awning- Perimeter"
	if w.TubularFraming {
		frame = "Awning- Tubular Frame"
	}
	frameLength := 2*w.Width + 2*w.Height
	if sections > 1 {
		frameLength += float64(sections-1) * w.Height
	}
	a.add(frame, 1, frameLength)

	sashW := sectionWidth - awningSashDeduction
	sashH := w.Height - awningSashDeduction
	sashLength := (2*sashW + 2*sashH) * float64(sections)
	a.add("Awning- Panel Frame", sections, sashLength)
	a.add("Awning- Molding Glass Clips", sections, sashLength)
}

func slidingProfiles(a *profileAggregator, w Window, c Color) {
	series := w.Series
	if series == "" {
		series = Series798
	}
	name := func(base string, sdType bool) string {
		n := fmt.Sprintf("%s- %s", series, base)
		if sdType && c != White {
			n += " SD"
		}
		return n + " " + colorSuffix(c)
	}

	glassW, _ := slidingGlass(w)
	railWidth := glassW + railAdditionToGlass
	stileHeight := w.Height - stileHeightDeduction
	panels := w.Panels

	a.add(name("Double Head", false), 1, w.Width)
	a.add(name("Double Sill", false), 1, w.Width)
	a.add(name("Double Jamb", false), 2, 2*w.Height)

	if series == Series798 {
		a.add(name("Bottom Rail/Top Rail", true), 2*panels, railWidth*float64(2*panels))
	} else {
		a.add(name("Top Rail", true), panels, railWidth*float64(panels))
		a.add(name("Bottom Rail", true), panels, railWidth*float64(panels))
	}

	lockStile := "Lock Stile"
	if c == White {
		lockStile = "Lockstile"
	}
	a.add(name(lockStile, true), 2, 2*stileHeight)
	a.add(name("Interlocker", true), 2*(panels-1), 2*stileHeight*float64(panels-1))
}

func transomProfiles(a *profileAggregator, w Window, c Color) {
	size := w.TransomProfile
	if size == "" {
		size = "1x4"
	}
	dividers := max(0, w.Panels-1)
	frameLength := 2*w.Width + 2*w.TransomHeight
	dividerLength := float64(dividers) * w.TransomHeight

	a.add(tubularProfile(size, c), 1+dividers, frameLength+dividerLength)
	a.add(glassClipProfile, w.Panels, frameLength+2*dividerLength)
}
