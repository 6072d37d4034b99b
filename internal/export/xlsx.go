package export

import (
	"fmt"
	"sort"

	"github.com/maruel/natural"
	"github.com/piwi3910/GlassCut/internal/model"
	"github.com/xuri/excelize/v2"
)

const (
	orderSheet   = "Order"
	cutListSheet = "Cut List"
)

// ExportOrderList writes the priced order lines and the per-panel cut list
// to an Excel workbook.
func ExportOrderList(path string, est model.Estimate) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), orderSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeOrderSheet(f, est); err != nil {
		return err
	}

	if _, err := f.NewSheet(cutListSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := writeCutListSheet(f, est.Summary.Layouts()); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func writeOrderSheet(f *excelize.File, est model.Estimate) error {
	s := est.Summary
	rows := [][]interface{}{
		{"Glass", s.GlassType},
		{"Mode", string(s.Mode)},
		{"Price per sq ft", s.PricePerSqFt, s.PriceSource},
		{"Item", "Size", "Quantity", "Unit Price", "Total", "Source", "Notes"},
	}
	for _, line := range s.Lines {
		rows = append(rows, []interface{}{
			line.Name, line.Size, line.Quantity, line.UnitPrice, line.TotalCost, line.PriceSource, line.Notes,
		})
	}
	rows = append(rows, []interface{}{"", "", s.TotalSheets, "Total", s.Total})

	return writeRows(f, orderSheet, rows)
}

func writeCutListSheet(f *excelize.File, layouts []model.SheetLayout) error {
	type cut struct {
		sheet int
		stock string
		p     model.PlacedPanel
	}
	var cuts []cut
	for i, sl := range layouts {
		for _, p := range sl.PlacedPanels {
			cuts = append(cuts, cut{sheet: i + 1, stock: sl.Stock().Label(), p: p})
		}
	}
	sort.SliceStable(cuts, func(i, j int) bool {
		if cuts[i].p.SourceLabel != cuts[j].p.SourceLabel {
			return natural.Less(cuts[i].p.SourceLabel, cuts[j].p.SourceLabel)
		}
		return cuts[i].sheet < cuts[j].sheet
	})

	rows := [][]interface{}{{"Panel", "Width", "Height", "Sheet", "Stock", "X", "Y", "Rotated"}}
	for _, c := range cuts {
		rows = append(rows, []interface{}{
			c.p.SourceLabel,
			model.DecimalToFraction(c.p.SourceWidth),
			model.DecimalToFraction(c.p.SourceHeight),
			c.sheet,
			c.stock,
			c.p.X,
			c.p.Y,
			c.p.Rotated,
		})
	}
	return writeRows(f, cutListSheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
