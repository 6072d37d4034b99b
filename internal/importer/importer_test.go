package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"github.com/yofu/dxf"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter(t *testing.T) {
	for _, want := range []rune{',', ';', '\t', '|'} {
		d := string(want)
		data := "Label" + d + "Width" + d + "Height" + d + "Qty\n" +
			"W1" + d + "23.875" + d + "35.875" + d + "2\n" +
			"W2" + d + "30" + d + "40" + d + "1\n"
		if got := DetectCSVDelimiter([]byte(data)); got != want {
			t.Errorf("expected %q delimiter, got %q", want, got)
		}
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Label", "Width", "Height", "Quantity"})

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Label != 0 || mapping.Width != 1 || mapping.Height != 2 || mapping.Quantity != 3 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
}

func TestDetectColumns_AlternativeNamesReordered(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"QTY", "Glass Height", "Window", "Glass Width"})

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Quantity != 0 || mapping.Height != 1 || mapping.Label != 2 || mapping.Width != 3 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"W1", "23.875", "35.875", "2"})

	if isHeader {
		t.Error("expected no header")
	}
	if mapping.Label != 0 || mapping.Width != 1 || mapping.Height != 2 || mapping.Quantity != 3 {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── ImportCSVFromReader Tests ─────────────────────────────

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	data := "Label,Width,Height,Qty\nKitchen,23 7/8,35 7/8,2\nBath,30\",40,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Panels) != 3 {
		t.Fatalf("expected 3 panels, got %d", len(result.Panels))
	}

	first := result.Panels[0]
	if first.SourceLabel != "Kitchen" || first.SourceIndex != 1 {
		t.Errorf("unexpected source %q/%d", first.SourceLabel, first.SourceIndex)
	}
	if first.Width != 23.875 || first.Height != 35.875 {
		t.Errorf("expected 23.875 x 35.875, got %v x %v", first.Width, first.Height)
	}
	if result.Panels[1] != first {
		t.Error("quantity 2 should repeat the panel")
	}
	if result.Panels[2].SourceIndex != 2 || result.Panels[2].Width != 30 {
		t.Errorf("unexpected third panel %+v", result.Panels[2])
	}
}

func TestImportCSVFromReader_QuantityDefaultsToOne(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Width,Height\n20,30\n"), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Panels) != 1 {
		t.Fatalf("expected 1 panel, got %d", len(result.Panels))
	}
	if result.Panels[0].SourceLabel != "P1" {
		t.Errorf("expected default label P1, got %q", result.Panels[0].SourceLabel)
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("W1,20,30,2\nW2,10,10,1\n"), ',')

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Panels) != 3 {
		t.Errorf("expected 3 panels, got %d", len(result.Panels))
	}
}

func TestImportCSVFromReader_UnrecognizedHeaderSkipped(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Ref,Ancho,Alto\nW1,20,30\n"), ',')

	if len(result.Panels) != 1 {
		t.Fatalf("expected 1 panel, got %d (errors %v)", len(result.Panels), result.Errors)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "header") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected header warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_SemicolonDelimiter(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Label;Width;Height\nW1;20;30\n"), ';')
	if len(result.Panels) != 1 {
		t.Errorf("expected 1 panel, got %d", len(result.Panels))
	}
}

func TestImportCSVFromReader_EmptyFile(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(""), ',')
	if len(result.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

func TestImportCSVFromReader_RowErrors(t *testing.T) {
	data := strings.Join([]string{
		"Label,Width,Height,Qty",
		"Good,20,30,1",
		"BadWidth,abc,30,1",
		"BadQty,20,30,two",
		"Negative,-5,30,1",
		"Zero,20,30,0",
		"NotANumber,NaN,30,1",
		"MissingHeight,20,,1",
	}, "\n")
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Panels) != 1 {
		t.Errorf("expected 1 valid panel, got %d", len(result.Panels))
	}
	if len(result.Errors) != 6 {
		t.Errorf("expected 6 errors, got %d: %v", len(result.Errors), result.Errors)
	}
	if !strings.HasPrefix(result.Errors[0], "Line 3:") {
		t.Errorf("expected error to name line 3, got %q", result.Errors[0])
	}
}

func TestImportCSVFromReader_SkipsEmptyRows(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Label,Width,Height\nW1,20,30\n,,\nW2,10,10\n"), ',')

	if len(result.Panels) != 2 {
		t.Fatalf("expected 2 panels, got %d", len(result.Panels))
	}
	if result.Panels[1].SourceIndex != 2 {
		t.Errorf("empty rows should not consume an index, got %d", result.Panels[1].SourceIndex)
	}
}

func TestImportCSVFromReader_MissingRequiredColumn(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Label,Width,Qty\nW1,20,1\n"), ',')

	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Height") {
		t.Errorf("expected missing Height error, got %v", result.Errors)
	}
}

// ─── ImportCSV Tests ───────────────────────────────────────

func TestImportCSV_SemicolonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panels.csv")
	if err := os.WriteFile(path, []byte("Label;Width;Height;Qty\nW1;20;30;2\nW2;15;15;1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	result := ImportCSV(path)

	if len(result.Panels) != 3 {
		t.Errorf("expected 3 panels, got %d", len(result.Panels))
	}
	if len(result.Warnings) == 0 || !strings.Contains(result.Warnings[0], "semicolon") {
		t.Errorf("expected semicolon warning, got %v", result.Warnings)
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV("/nonexistent/panels.csv")
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestImportCSV_WhitespaceOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte("  \n\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := ImportCSV(path)
	if len(result.Errors) != 1 || result.Errors[0] != "File is empty" {
		t.Errorf("expected empty file error, got %v", result.Errors)
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "panels.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Window", "Width", "Height", "Qty"},
		{"Living", 27.75, "44 1/8", 2},
		{"Door", 30, 80, 1},
	})

	result := ImportExcel(path)

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Panels) != 3 {
		t.Fatalf("expected 3 panels, got %d", len(result.Panels))
	}
	if result.Panels[0].SourceLabel != "Living" {
		t.Errorf("expected 'Living', got %q", result.Panels[0].SourceLabel)
	}
	if result.Panels[0].Height != 44.125 {
		t.Errorf("expected height 44.125, got %v", result.Panels[0].Height)
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel("/nonexistent/panels.xlsx")
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestImportExcel_InvalidData(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Label", "Width", "Height"},
		{"Bad", "wide", 10},
	})
	result := ImportExcel(path)
	if len(result.Panels) != 0 || len(result.Errors) != 1 {
		t.Errorf("expected one row error, got panels=%d errors=%v", len(result.Panels), result.Errors)
	}
	if !strings.HasPrefix(result.Errors[0], "Row 2:") {
		t.Errorf("expected error to name row 2, got %q", result.Errors[0])
	}
}

// ─── DXF Import Tests ──────────────────────────────────────

func TestImportDXF_LineRectangle(t *testing.T) {
	d := dxf.NewDrawing()
	corners := [][2]float64{{0, 0}, {20, 0}, {20, 30}, {0, 30}}
	for i := range corners {
		a, b := corners[i], corners[(i+1)%len(corners)]
		if _, err := d.Line(a[0], a[1], 0, b[0], b[1], 0); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), "panel.dxf")
	if err := d.SaveAs(path); err != nil {
		t.Fatal(err)
	}

	result := ImportDXF(path)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Panels) != 1 {
		t.Fatalf("expected 1 panel, got %d", len(result.Panels))
	}
	p := result.Panels[0]
	if p.Width < 19.99 || p.Width > 20.01 || p.Height < 29.99 || p.Height > 30.01 {
		t.Errorf("expected 20 x 30, got %v x %v", p.Width, p.Height)
	}
}

func TestImportDXF_FileNotFound(t *testing.T) {
	result := ImportDXF("/nonexistent/panel.dxf")
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestChainSegments_OpenChainDropped(t *testing.T) {
	segs := []segment{
		{point{0, 0}, point{10, 0}},
		{point{10, 0}, point{10, 10}},
	}
	if got := chainSegments(segs, 0.01); len(got) != 0 {
		t.Errorf("expected no closed outlines, got %d", len(got))
	}
}
