package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	"github.com/maruel/natural"
	"github.com/piwi3910/GlassCut/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each panel label's QR code.
type LabelInfo struct {
	ID         string  `json:"id"`
	PanelLabel string  `json:"label"`
	Width      float64 `json:"width_in"`  // finished size, as ordered
	Height     float64 `json:"height_in"` // finished size, as ordered
	GlassType  string  `json:"glass"`
	SheetIndex int     `json:"sheet"`
	SheetLabel string  `json:"sheet_label"`
	Rotated    bool    `json:"rotated"`
	X          float64 `json:"x_in"`
	Y          float64 `json:"y_in"`
}

// Avery 5160-compatible labels (3 columns, 10 rows per page on US Letter).
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // mm
	labelPadding    = 2.0  // mm
)

// ExportLabels generates a PDF of QR-coded labels, one per placed panel,
// ordered by window label so a glazier can match panes to openings.
func ExportLabels(path string, layouts []model.SheetLayout, glassType string) error {
	labels := CollectLabelInfos(layouts, glassType)
	if len(labels) == 0 {
		return fmt.Errorf("no panels placed to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.PanelLabel, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	// cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := "qr_" + info.ID
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	panelLabel := info.PanelLabel
	if pdf.GetStringWidth(panelLabel) > textW {
		for len(panelLabel) > 0 && pdf.GetStringWidth(panelLabel+"...") > textW {
			panelLabel = panelLabel[:len(panelLabel)-1]
		}
		panelLabel += "..."
	}
	pdf.CellFormat(textW, 4.5, panelLabel, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%s x %s in", model.DecimalToFraction(info.Width), model.DecimalToFraction(info.Height))
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	sheetInfo := fmt.Sprintf("Sheet %d @ (%s, %s)", info.SheetIndex,
		model.DecimalToFraction(info.X), model.DecimalToFraction(info.Y))
	pdf.CellFormat(textW, 3, sheetInfo, "", 1, "L", false, 0, "")

	if info.Rotated {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, "Rotated 90\xb0", "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// CollectLabelInfos extracts one label per placed panel, ordered naturally
// by panel label (W2 before W10) and then by sheet.
func CollectLabelInfos(layouts []model.SheetLayout, glassType string) []LabelInfo {
	var labels []LabelInfo
	for sheetIdx, sl := range layouts {
		for _, p := range sl.PlacedPanels {
			labels = append(labels, LabelInfo{
				ID:         uuid.New().String()[:8],
				PanelLabel: p.SourceLabel,
				Width:      p.SourceWidth,
				Height:     p.SourceHeight,
				GlassType:  glassType,
				SheetIndex: sheetIdx + 1,
				SheetLabel: sl.Stock().Label(),
				Rotated:    p.Rotated,
				X:          p.X,
				Y:          p.Y,
			})
		}
	}
	sort.SliceStable(labels, func(i, j int) bool {
		if labels[i].PanelLabel != labels[j].PanelLabel {
			return natural.Less(labels[i].PanelLabel, labels[j].PanelLabel)
		}
		return labels[i].SheetIndex < labels[j].SheetIndex
	})
	return labels
}
