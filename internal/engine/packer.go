package engine

import "math"

// eps absorbs floating point noise in fit and overlap comparisons.
const eps = 1e-9

type rect struct {
	x, y, w, h float64
}

// Placement is the position and orientation chosen for one panel footprint.
type Placement struct {
	X, Y          float64
	Width, Height float64 // footprint as placed, after any rotation
	Rotated       bool
}

// SheetPacker places panels on a single stock sheet using the maximal
// rectangles algorithm. Free rectangles may overlap each other; together they
// cover every unoccupied point of the sheet.
type SheetPacker struct {
	width, height float64
	freeRects     []rect
}

// NewSheetPacker returns a packer for an empty sheet of the given size.
func NewSheetPacker(width, height float64) *SheetPacker {
	return &SheetPacker{
		width:     width,
		height:    height,
		freeRects: []rect{{0, 0, width, height}},
	}
}

// Fit places a w x h footprint (cutting allowance already included) on the
// sheet. Every free rectangle is tried in both orientations and the candidate
// with the smallest short-side leftover wins, then the smallest long-side
// leftover. Ties keep the first candidate found, standard orientation before
// rotated. Returns false when nothing fits; the sheet is left unchanged.
func (sp *SheetPacker) Fit(w, h float64) (Placement, bool) {
	if w <= 0 || h <= 0 {
		return Placement{}, false
	}

	bestShort := math.Inf(1)
	bestLong := math.Inf(1)
	var best Placement
	found := false

	consider := func(r rect, pw, ph float64, rotated bool) {
		if !fitsIn(pw, ph, r.w, r.h) {
			return
		}
		leftoverX := r.w - pw
		leftoverY := r.h - ph
		short := math.Min(leftoverX, leftoverY)
		long := math.Max(leftoverX, leftoverY)
		if short < bestShort || (short == bestShort && long < bestLong) {
			bestShort = short
			bestLong = long
			best = Placement{X: r.x, Y: r.y, Width: pw, Height: ph, Rotated: rotated}
			found = true
		}
	}

	for _, r := range sp.freeRects {
		consider(r, w, h, false)
		consider(r, h, w, true)
	}
	if !found {
		return Placement{}, false
	}

	sp.splitAroundPlacement(rect{x: best.X, y: best.Y, w: best.Width, h: best.Height})
	return best, true
}

// splitAroundPlacement replaces every free rect that overlaps the placed rect
// with the slivers left, right, above and below it, then prunes contained rects.
func (sp *SheetPacker) splitAroundPlacement(placed rect) {
	next := make([]rect, 0, len(sp.freeRects)+4)

	for _, r := range sp.freeRects {
		if !rectsOverlap(r, placed) {
			next = append(next, r)
			continue
		}

		// Left strip (full height of r)
		if placed.x > r.x+eps {
			next = append(next, rect{x: r.x, y: r.y, w: placed.x - r.x, h: r.h})
		}
		// Right strip (full height of r)
		if placed.x+placed.w < r.x+r.w-eps {
			next = append(next, rect{
				x: placed.x + placed.w, y: r.y,
				w: (r.x + r.w) - (placed.x + placed.w), h: r.h,
			})
		}
		// Top strip (full width of r)
		if placed.y > r.y+eps {
			next = append(next, rect{x: r.x, y: r.y, w: r.w, h: placed.y - r.y})
		}
		// Bottom strip (full width of r)
		if placed.y+placed.h < r.y+r.h-eps {
			next = append(next, rect{
				x: r.x, y: placed.y + placed.h,
				w: r.w, h: (r.y + r.h) - (placed.y + placed.h),
			})
		}
	}

	sp.freeRects = pruneContained(next)
}

// fitsIn reports whether a w x h footprint fits inside a W x H region.
func fitsIn(w, h, W, H float64) bool {
	return w <= W+eps && h <= H+eps
}

// rectsOverlap returns true if two rectangles overlap (not just touch).
func rectsOverlap(a, b rect) bool {
	return a.x < b.x+b.w-eps && a.x+a.w > b.x+eps &&
		a.y < b.y+b.h-eps && a.y+a.h > b.y+eps
}

// pruneContained builds a new list without rects enclosed by another rect.
// Of several identical rects the first one is kept.
func pruneContained(rects []rect) []rect {
	if len(rects) <= 1 {
		return rects
	}
	kept := make([]rect, 0, len(rects))
	for i, a := range rects {
		contained := false
		for j, b := range rects {
			if i == j || !containsRect(b, a) {
				continue
			}
			if !containsRect(a, b) || j < i {
				contained = true
				break
			}
		}
		if !contained {
			kept = append(kept, a)
		}
	}
	return kept
}

// containsRect returns true if outer fully contains inner.
func containsRect(outer, inner rect) bool {
	return outer.x <= inner.x+eps && outer.y <= inner.y+eps &&
		outer.x+outer.w >= inner.x+inner.w-eps &&
		outer.y+outer.h >= inner.y+inner.h-eps
}
