// Package export writes glass estimates to files: PDF cutting diagrams and
// quote summaries, QR-coded panel labels, DXF cutting-table layouts, PNG
// sheet previews, an HTML utilisation chart and an Excel order list.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/GlassCut/internal/model"
)

// panelColor represents an RGB color for a placed panel.
type panelColor struct {
	R, G, B int
}

var panelColors = []panelColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (Letter landscape in mm).
const (
	pageWidth    = 279.4
	pageHeight   = 215.9
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF writes one cutting diagram page per packed sheet followed by a
// quote summary page.
func ExportPDF(path string, est model.Estimate) error {
	layouts := est.Summary.Layouts()
	if len(layouts) == 0 {
		return fmt.Errorf("no sheets to export")
	}

	pdf := fpdf.New("L", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, sl := range layouts {
		pdf.AddPage()
		renderSheetPage(pdf, sl, est.Summary.GlassType, i+1, len(layouts))
	}

	pdf.AddPage()
	renderSummaryPage(pdf, est)

	return pdf.OutputFileAndClose(path)
}

func renderSheetPage(pdf *fpdf.Fpdf, sl model.SheetLayout, glassType string, sheetNum, sheetCount int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Sheet %d of %d: %s %s", sheetNum, sheetCount, displayGlass(glassType), sl.Stock().Label())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Panels: %d | Glass used: %.2f sq ft | Sheet: %.2f sq ft | Efficiency: %.1f%%",
		len(sl.PlacedPanels), sl.UsedArea()/model.SquareInchesPerFoot, sl.TotalArea()/model.SquareInchesPerFoot, sl.Efficiency())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	scale := math.Min(drawWidth/sl.StockWidth, drawHeight/sl.StockHeight)
	canvasW := sl.StockWidth * scale
	canvasH := sl.StockHeight * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// pale glass tint for the sheet
	pdf.SetFillColor(220, 235, 240)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for i, p := range sl.PlacedPanels {
		col := panelColors[i%len(panelColors)]
		pw := p.Width * scale
		ph := p.Height * scale
		px := offsetX + p.X*scale
		py := offsetY + p.Y*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			label := p.SourceLabel
			dims := cutSize(p)
			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if ph > 14 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, sl.Stock(), offsetX, offsetY, canvasW, canvasH)
	drawPanelLegend(pdf, sl, offsetY+canvasH+6)
}

// cutSize formats the finished size as it lies on the sheet in fractions.
func cutSize(p model.PlacedPanel) string {
	return fmt.Sprintf("%s x %s", model.DecimalToFraction(p.CutWidth()), model.DecimalToFraction(p.CutHeight()))
}

func drawDimensionAnnotations(pdf *fpdf.Fpdf, stock model.StockSize, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := model.DecimalToFraction(stock.Width) + `"`
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := model.DecimalToFraction(stock.Height) + `"`
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

func drawPanelLegend(pdf *fpdf.Fpdf, sl model.SheetLayout, startY float64) {
	if len(sl.PlacedPanels) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Panels placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, p := range sl.PlacedPanels {
		col := panelColors[i%len(panelColors)]
		label := fmt.Sprintf("%s (%s)", p.SourceLabel, cutSize(p))
		if p.Rotated {
			label += " R"
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")
		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

func renderSummaryPage(pdf *fpdf.Fpdf, est model.Estimate) {
	s := est.Summary

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Glass Estimate: "+displayGlass(s.GlassType), "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overview", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Stock Mode", string(s.Mode)},
		{"Panels", fmt.Sprintf("%d", est.PanelCount)},
		{"Glass Area", fmt.Sprintf("%.2f sq ft", est.SquareFootage)},
		{"Sheets", fmt.Sprintf("%d", s.TotalSheets)},
		{"Overall Efficiency", fmt.Sprintf("%.1f%%", s.Efficiency)},
		{"Price per sq ft", fmt.Sprintf("$%s (%s)", model.FormatMoney(s.PricePerSqFt), s.PriceSource)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Order Lines", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{70, 35, 20, 30, 30, 64.4}
	headers := []string{"Item", "Size", "Qty", "Unit Price", "Total", "Source"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, line := range s.Lines {
		xPos = marginLeft
		rowData := []string{
			line.Name,
			line.Size,
			fmt.Sprintf("%d", line.Quantity),
			"$" + model.FormatMoney(line.UnitPrice),
			"$" + model.FormatMoney(line.TotalCost),
			line.PriceSource,
		}

		switch {
		case line.Failed:
			pdf.SetFillColor(255, 220, 220)
		case i%2 == 0:
			pdf.SetFillColor(245, 245, 245)
		default:
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(marginLeft+colWidths[0]+colWidths[1]+colWidths[2], y)
	pdf.CellFormat(colWidths[3], 6, "Total", "1", 0, "C", false, 0, "")
	pdf.CellFormat(colWidths[4], 6, "$"+model.FormatMoney(s.Total), "1", 0, "C", false, 0, "")
	y += 10

	if s.Failed() {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Some panels could not be packed", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, b := range est.Allocation.Failures() {
			for _, note := range b.Notes {
				pdf.SetXY(marginLeft+5, y)
				pdf.CellFormat(240, 5, fmt.Sprintf("- %s: %s", b.Label, note), "", 0, "L", false, 0, "")
				y += 5
			}
			for _, p := range b.Unfitted {
				pdf.SetXY(marginLeft+10, y)
				pdf.CellFormat(240, 5, fmt.Sprintf("%s: %s x %s", p.SourceLabel,
					model.DecimalToFraction(p.Width), model.DecimalToFraction(p.Height)), "", 0, "L", false, 0, "")
				y += 5
			}
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by GlassCut", "", 0, "C", false, 0, "")
}

func displayGlass(glassType string) string {
	return model.ParseGlassType(glassType).DisplayName()
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
