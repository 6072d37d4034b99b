// Package gcode writes scoring programs for CNC glass cutting tables.
package gcode

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/piwi3910/GlassCut/internal/model"
)

const (
	mmPerInch = 25.4
	eps       = 1e-6
)

// Settings configures program output.
type Settings struct {
	Profile  string  `json:"profile"`
	FeedRate float64 `json:"feed_rate"` // scoring speed, inches per minute
}

func DefaultSettings() Settings {
	return Settings{Profile: "Generic", FeedRate: 3000}
}

// Line is one straight score in machine coordinates (inches, origin at the
// bottom-left corner of the sheet).
type Line struct {
	X0, Y0, X1, Y1 float64
}

// Length returns the score length in inches.
func (l Line) Length() float64 {
	return math.Hypot(l.X1-l.X0, l.Y1-l.Y0)
}

// Generator produces scoring programs from packed sheet layouts.
type Generator struct {
	Settings Settings
	profile  Profile
}

func New(settings Settings) *Generator {
	if settings.FeedRate <= 0 {
		settings.FeedRate = DefaultSettings().FeedRate
	}
	return &Generator{
		Settings: settings,
		profile:  GetProfile(settings.Profile),
	}
}

// GenerateSheet produces the program for one sheet.
func (g *Generator) GenerateSheet(sl model.SheetLayout, sheetIndex int) string {
	var b strings.Builder
	lines := ScoreLines(sl)

	g.writeHeader(&b, sl, sheetIndex, lines)
	for i, l := range lines {
		g.writeScore(&b, l, i+1)
	}
	g.writeFooter(&b)
	return b.String()
}

// GenerateAll produces one program per sheet.
func (g *Generator) GenerateAll(layouts []model.SheetLayout) []string {
	codes := make([]string, 0, len(layouts))
	for i, sl := range layouts {
		codes = append(codes, g.GenerateSheet(sl, i+1))
	}
	return codes
}

// WriteFiles writes sheet-01.nc, sheet-02.nc and so on into dir.
func (g *Generator) WriteFiles(dir string, layouts []model.SheetLayout) ([]string, error) {
	if len(layouts) == 0 {
		return nil, fmt.Errorf("no sheets to export")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}

	paths := make([]string, 0, len(layouts))
	for i, code := range g.GenerateAll(layouts) {
		path := filepath.Join(dir, fmt.Sprintf("sheet-%02d.nc", i+1))
		if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (g *Generator) writeHeader(b *strings.Builder, sl model.SheetLayout, idx int, lines []Line) {
	p := g.profile
	total := 0.0
	for _, l := range lines {
		total += l.Length()
	}

	b.WriteString(g.comment(fmt.Sprintf("GlassCut scoring program, sheet %d, %s", idx, sl.Stock().Label())))
	b.WriteString(g.comment(fmt.Sprintf("Panels: %d, Efficiency: %.1f%%", len(sl.PlacedPanels), sl.Efficiency())))
	b.WriteString(g.comment(fmt.Sprintf("Scores: %d, Length: %.1f in", len(lines), total)))
	b.WriteString(g.comment(fmt.Sprintf("Profile: %s", p.Name)))
	b.WriteString("\n")

	for _, code := range p.StartCode {
		b.WriteString(code + "\n")
	}
	b.WriteString(p.ScoreOff + "\n")
	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.RapidMove, g.format(0), g.format(0)))
	b.WriteString("\n")
}

func (g *Generator) writeScore(b *strings.Builder, l Line, n int) {
	p := g.profile
	b.WriteString(g.comment(fmt.Sprintf("Score %d", n)))
	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.RapidMove, g.format(l.X0), g.format(l.Y0)))
	b.WriteString(p.ScoreOn + "\n")
	b.WriteString(fmt.Sprintf("%s X%s Y%s F%s\n", p.FeedMove, g.format(l.X1), g.format(l.Y1), g.format(g.Settings.FeedRate)))
	b.WriteString(p.ScoreOff + "\n")
}

func (g *Generator) writeFooter(b *strings.Builder) {
	b.WriteString("\n")
	b.WriteString(g.comment("=== Job complete ==="))
	for _, code := range g.profile.EndCode {
		b.WriteString(code + "\n")
	}
}

// comment wraps text in the profile's comment syntax.
func (g *Generator) comment(text string) string {
	return g.profile.CommentPrefix + " " + text + g.profile.CommentSuffix + "\n"
}

// format writes an inch value in the profile's units and precision.
func (g *Generator) format(v float64) string {
	if g.profile.Metric {
		v *= mmPerInch
	}
	return fmt.Sprintf("%.*f", g.profile.DecimalPlaces, v)
}

type interval struct{ lo, hi float64 }

// edgeSet groups score intervals by the coordinate they lie on.
type edgeSet map[int64]*edgeGroup

type edgeGroup struct {
	pos float64
	ivs []interval
}

func (es edgeSet) add(pos, lo, hi float64) {
	k := int64(math.Round(pos / eps))
	g, ok := es[k]
	if !ok {
		g = &edgeGroup{pos: pos}
		es[k] = g
	}
	g.ivs = append(g.ivs, interval{lo, hi})
}

// sorted returns the groups by position, ascending or descending.
func (es edgeSet) sorted(desc bool) []*edgeGroup {
	groups := make([]*edgeGroup, 0, len(es))
	for _, g := range es {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool {
		if desc {
			return groups[i].pos > groups[j].pos
		}
		return groups[i].pos < groups[j].pos
	})
	return groups
}

// ScoreLines returns the scores needed to free every panel of a sheet at its
// cut size. Edges shared or overlapped by neighbouring panels are merged into
// one score, and edges lying on the sheet border are skipped. Horizontal
// scores come first, bottom to top, alternating direction; then vertical
// scores left to right.
func ScoreLines(sl model.SheetLayout) []Line {
	horiz, vert := edgeSet{}, edgeSet{}
	w, h := sl.StockWidth, sl.StockHeight

	for _, p := range sl.PlacedPanels {
		x0, x1 := p.X, p.X+p.CutWidth()
		top, bottom := p.Y, p.Y+p.CutHeight()
		for _, y := range []float64{top, bottom} {
			if y > eps && y < h-eps {
				horiz.add(y, x0, x1)
			}
		}
		for _, x := range []float64{x0, x1} {
			if x > eps && x < w-eps {
				vert.add(x, top, bottom)
			}
		}
	}

	var lines []Line
	flip := false
	// layout Y grows downward, so descending layout Y is ascending machine Y
	for _, g := range horiz.sorted(true) {
		my := h - g.pos
		for _, iv := range merge(g.ivs) {
			if flip {
				lines = append(lines, Line{iv.hi, my, iv.lo, my})
			} else {
				lines = append(lines, Line{iv.lo, my, iv.hi, my})
			}
			flip = !flip
		}
	}
	for _, g := range vert.sorted(false) {
		for _, iv := range merge(g.ivs) {
			lo, hi := h-iv.hi, h-iv.lo
			if flip {
				lines = append(lines, Line{g.pos, hi, g.pos, lo})
			} else {
				lines = append(lines, Line{g.pos, lo, g.pos, hi})
			}
			flip = !flip
		}
	}
	return lines
}

// merge joins overlapping and touching intervals.
func merge(ivs []interval) []interval {
	sort.Slice(ivs, func(i, j int) bool { return ivs[i].lo < ivs[j].lo })
	out := []interval{ivs[0]}
	for _, iv := range ivs[1:] {
		last := &out[len(out)-1]
		if iv.lo <= last.hi+eps {
			last.hi = math.Max(last.hi, iv.hi)
			continue
		}
		out = append(out, iv)
	}
	return out
}
