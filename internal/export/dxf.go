package export

import (
	"fmt"

	"github.com/piwi3910/GlassCut/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

// sheetGap is the space left between sheets laid out side by side (inches).
const sheetGap = 12.0

// DXF layer names.
const (
	layerSheets = "SHEETS"
	layerPanels = "PANELS"
	layerLabels = "LABELS"
)

// ExportDXF writes every sheet layout into a single DXF drawing in inches,
// sheets side by side along X. Sheet outlines, panel footprints and panel
// labels go on separate layers so a cutting table can import just the cuts.
// DXF's Y axis points up, so layouts are flipped from the top-left origin.
func ExportDXF(path string, layouts []model.SheetLayout) error {
	if len(layouts) == 0 {
		return fmt.Errorf("no sheets to export")
	}

	d := dxf.NewDrawing()
	if _, err := d.AddLayer(layerSheets, color.White, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("add layer %s: %w", layerSheets, err)
	}
	if _, err := d.AddLayer(layerPanels, color.Cyan, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("add layer %s: %w", layerPanels, err)
	}
	if _, err := d.AddLayer(layerLabels, color.Yellow, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("add layer %s: %w", layerLabels, err)
	}

	originX := 0.0
	for i, sl := range layouts {
		if err := drawSheet(d, sl, i+1, originX); err != nil {
			return fmt.Errorf("sheet %d: %w", i+1, err)
		}
		originX += sl.StockWidth + sheetGap
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("save dxf: %w", err)
	}
	return nil
}

func drawSheet(d *drawing.Drawing, sl model.SheetLayout, sheetNum int, originX float64) error {
	h := sl.StockHeight

	if err := d.ChangeLayer(layerSheets); err != nil {
		return err
	}
	if err := rectangle(d, originX, 0, sl.StockWidth, h); err != nil {
		return err
	}
	title := fmt.Sprintf("Sheet %d %s", sheetNum, sl.Stock().Label())
	if _, err := d.Text(title, originX, h+1, 0, 1.5); err != nil {
		return err
	}

	for _, p := range sl.PlacedPanels {
		// footprint includes the cutting allowance; the cut itself is the source size
		x := originX + p.X
		y := h - p.Y - p.CutHeight()

		if err := d.ChangeLayer(layerPanels); err != nil {
			return err
		}
		if err := rectangle(d, x, y, p.CutWidth(), p.CutHeight()); err != nil {
			return err
		}

		if err := d.ChangeLayer(layerLabels); err != nil {
			return err
		}
		text := fmt.Sprintf("%s %s", p.SourceLabel, cutSize(p))
		if _, err := d.Text(text, x+0.5, y+0.5, 0, 0.75); err != nil {
			return err
		}
	}
	return nil
}

func rectangle(d *drawing.Drawing, x, y, w, h float64) error {
	corners := [][2]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	for i := range corners {
		a, b := corners[i], corners[(i+1)%len(corners)]
		if _, err := d.Line(a[0], a[1], 0, b[0], b[1], 0); err != nil {
			return err
		}
	}
	return nil
}
