// GlassCut: glass sheet cutting optimizer and estimator.
//
// Reads a panel cut list (CSV, XLSX or DXF) or a window list (JSON), packs
// the panels onto stock glass sheets and prints the priced order. Optional
// outputs: PDF cutting diagrams, panel labels, DXF layout, PNG previews,
// utilisation chart, an Excel order list and cutting-table scoring programs.
//
// Build:
//   go build -o glasscut ./cmd/glasscut
//
// Examples:
//   glasscut -panels cutlist.csv -stock 48x84 -pdf job.pdf
//   glasscut -windows house.json -color Black -glass Clear-1/4 -compare
//   glasscut -panels cutlist.xlsx -save "Smith residence"

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/GlassCut/internal/engine"
	"github.com/piwi3910/GlassCut/internal/export"
	"github.com/piwi3910/GlassCut/internal/gcode"
	"github.com/piwi3910/GlassCut/internal/importer"
	"github.com/piwi3910/GlassCut/internal/model"
	"github.com/piwi3910/GlassCut/internal/project"
	"github.com/piwi3910/GlassCut/internal/window"
)

type options struct {
	panelsPath  string
	windowsPath string
	color       string

	glassType string
	stock     string
	supplier  string
	price     float64
	allowance float64
	parallel  bool

	configPath  string
	catalogPath string
	pricesPath  string
	dbPath      string

	compare  bool
	jsonOut  bool
	saveName string

	pdfPath    string
	labelsPath string
	dxfPath    string
	pngDir     string
	pngScale   int
	chartPath  string
	xlsxPath   string

	gcodeDir     string
	gcodeProfile string
	scoreSpeed   float64

	backupPath  string
	restorePath string
}

func main() {
	log.SetFlags(0)
	opts := parseFlags()

	if err := run(opts); err != nil {
		log.Fatalf("[CLI] %v", err)
	}
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.panelsPath, "panels", "", "panel cut list (.csv, .xlsx or .dxf)")
	flag.StringVar(&o.windowsPath, "windows", "", "window list (.json array)")
	flag.StringVar(&o.color, "color", string(window.White), "aluminum color for window takeoffs (White or Black)")

	flag.StringVar(&o.glassType, "glass", "", "glass type as Finish-Thickness, e.g. Clear-1/4")
	flag.StringVar(&o.stock, "stock", "", `stock sheet "WxH", or "optimize" to choose sizes automatically`)
	flag.StringVar(&o.supplier, "supplier", "", `supplier to price from, or "Best Price"`)
	flag.Float64Var(&o.price, "price", -1, "price per sq ft, overrides the price list")
	flag.Float64Var(&o.allowance, "allowance", -1, "cutting allowance in inches added to each panel side")
	flag.BoolVar(&o.parallel, "parallel", false, "pack stock sizes concurrently")

	flag.StringVar(&o.configPath, "config", project.DefaultConfigPath(), "settings file")
	flag.StringVar(&o.catalogPath, "catalog", project.DefaultCatalogPath(), "stock catalog file")
	flag.StringVar(&o.pricesPath, "prices", project.DefaultPricesPath(), "price list file")
	flag.StringVar(&o.dbPath, "db", project.DefaultStorePath(), "saved quotes database")

	flag.BoolVar(&o.compare, "compare", false, "compare automatic mode against every catalog stock size")
	flag.BoolVar(&o.jsonOut, "json", false, "print the estimate as JSON")
	flag.StringVar(&o.saveName, "save", "", "save the quote under this client name")

	flag.StringVar(&o.pdfPath, "pdf", "", "write cutting diagrams and summary PDF")
	flag.StringVar(&o.labelsPath, "labels", "", "write QR panel labels PDF")
	flag.StringVar(&o.dxfPath, "dxf", "", "write DXF cutting layout")
	flag.StringVar(&o.pngDir, "png", "", "write one PNG preview per sheet into this directory")
	flag.IntVar(&o.pngScale, "png-scale", export.DefaultPixelsPerInch, "PNG pixels per inch")
	flag.StringVar(&o.chartPath, "chart", "", "write HTML utilisation chart")
	flag.StringVar(&o.xlsxPath, "xlsx", "", "write Excel order list")
	flag.StringVar(&o.gcodeDir, "gcode", "", "write one cutting-table scoring program per sheet into this directory")
	flag.StringVar(&o.gcodeProfile, "gcode-profile", gcode.DefaultSettings().Profile,
		"cutting-table profile ("+strings.Join(gcode.ProfileNames(), ", ")+")")
	flag.Float64Var(&o.scoreSpeed, "score-speed", gcode.DefaultSettings().FeedRate, "scoring speed in inches per minute")

	flag.StringVar(&o.backupPath, "backup", "", "write settings, catalog and prices to a backup file and exit")
	flag.StringVar(&o.restorePath, "restore", "", "restore settings, catalog and prices from a backup file and exit")
	flag.Parse()
	return o
}

func run(o options) error {
	cfg, err := project.LoadAppConfig(o.configPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	catalog, err := project.LoadCatalog(o.catalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	prices, err := project.LoadPriceList(o.pricesPath)
	if err != nil {
		return fmt.Errorf("load prices: %w", err)
	}

	if o.backupPath != "" {
		if err := project.ExportAllData(o.backupPath, cfg, catalog, prices); err != nil {
			return err
		}
		log.Printf("[CLI] Backup written to %s", o.backupPath)
		return nil
	}
	if o.restorePath != "" {
		return restore(o)
	}

	panels, takeoff, err := loadPanels(o)
	if err != nil {
		return err
	}

	settings := model.DefaultSettings()
	cfg.ApplyToSettings(&settings)
	if o.allowance >= 0 {
		settings.CuttingAllowance = o.allowance
	}
	if o.parallel {
		settings.ParallelBuckets = true
	}

	req := buildRequest(o, cfg, prices, panels)

	opt := engine.New(settings)
	est := opt.Estimate(req, catalog, prices)

	if o.jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(est); err != nil {
			return err
		}
	} else {
		printEstimate(est, takeoff)
	}

	if o.compare {
		glassType := est.Summary.GlassType
		stocks := catalog.StocksFor(glassType)
		quote := model.Quote{Price: est.Summary.PricePerSqFt, Source: est.Summary.PriceSource}
		results := opt.CompareStocks(engine.BuildStockScenarios(stocks), panels, stocks, glassType, quote)
		printComparison(results)
	}

	if err := writeExports(o, est); err != nil {
		return err
	}

	if o.saveName != "" {
		if err := saveQuote(o, &cfg, req.SelectedStock, est); err != nil {
			return err
		}
	}
	return nil
}

func loadPanels(o options) ([]model.Panel, *window.Takeoff, error) {
	switch {
	case o.windowsPath != "" && o.panelsPath != "":
		return nil, nil, fmt.Errorf("use either -panels or -windows, not both")

	case o.windowsPath != "":
		data, err := os.ReadFile(o.windowsPath)
		if err != nil {
			return nil, nil, fmt.Errorf("read windows: %w", err)
		}
		var windows []window.Window
		if err := json.Unmarshal(data, &windows); err != nil {
			return nil, nil, fmt.Errorf("parse windows %s: %w", o.windowsPath, err)
		}
		t := window.Derive(windows, window.Color(o.color))
		for _, s := range t.Skipped {
			log.Printf("[CLI] Skipped window %s", s)
		}
		if len(t.Panels) == 0 {
			return nil, nil, fmt.Errorf("no glass panels in %s", o.windowsPath)
		}
		log.Printf("[CLI] %d windows -> %d panels", len(windows), len(t.Panels))
		return t.Panels, &t, nil

	case o.panelsPath != "":
		var result importer.ImportResult
		switch strings.ToLower(filepath.Ext(o.panelsPath)) {
		case ".xlsx", ".xlsm":
			result = importer.ImportExcel(o.panelsPath)
		case ".dxf":
			result = importer.ImportDXF(o.panelsPath)
		default:
			result = importer.ImportCSV(o.panelsPath)
		}
		for _, w := range result.Warnings {
			log.Printf("[CLI] Warning: %s", w)
		}
		for _, e := range result.Errors {
			log.Printf("[CLI] Error: %s", e)
		}
		if len(result.Panels) == 0 {
			return nil, nil, fmt.Errorf("no panels imported from %s", o.panelsPath)
		}
		log.Printf("[CLI] Imported %d panels from %s", len(result.Panels), o.panelsPath)
		return result.Panels, nil, nil
	}
	return nil, nil, fmt.Errorf("no input: pass -panels or -windows")
}

func printEstimate(est model.Estimate, takeoff *window.Takeoff) {
	s := est.Summary
	fmt.Printf("Glass:      %s\n", model.ParseGlassType(s.GlassType).DisplayName())
	fmt.Printf("Mode:       %s\n", s.Mode)
	fmt.Printf("Price:      %s/sq ft (%s)\n", model.FormatMoney(s.PricePerSqFt), s.PriceSource)
	fmt.Printf("Panels:     %d (%.2f sq ft)\n", est.PanelCount, est.SquareFootage)
	fmt.Println()

	for _, line := range s.Lines {
		fmt.Printf("  %-12s x%-3d %10s  %s\n", line.Size, line.Quantity, model.FormatMoney(line.TotalCost), line.Notes)
	}
	fmt.Println()
	fmt.Printf("Sheets:     %d\n", s.TotalSheets)
	fmt.Printf("Efficiency: %.1f%%\n", s.Efficiency)
	fmt.Printf("Total:      %s\n", model.FormatMoney(s.Total))

	if pe := est.PurchaseEstimate; pe != nil {
		fmt.Printf("Estimate:   %d sheets minimum, %d with %.0f%% waste\n", pe.SheetsNeededMin, pe.SheetsWithWaste, pe.WastePercent)
	}
	if len(est.Offcuts) > 0 {
		fmt.Printf("Offcuts:    %d reusable\n", len(est.Offcuts))
	}

	for _, b := range est.Allocation.Failures() {
		fmt.Printf("FAILED %s: %s\n", b.Label, strings.Join(b.Notes, " "))
		for _, p := range b.Unfitted {
			fmt.Printf("  %s %s x %s\n", p.SourceLabel, model.DecimalToFraction(p.Width), model.DecimalToFraction(p.Height))
		}
	}

	if takeoff != nil && takeoff.BilledSquareFootage > 0 {
		fmt.Printf("Billed:     %.2f sq ft by window, %s\n", takeoff.BilledSquareFootage,
			model.FormatMoney(takeoff.BilledSquareFootage*s.PricePerSqFt))
	}

	if takeoff != nil && len(takeoff.Profiles) > 0 {
		fmt.Println()
		fmt.Println("Aluminum:")
		for _, pc := range takeoff.Profiles {
			fmt.Printf("  %-28s %3d pcs %8.2f in %6.2f bars\n", pc.Name, pc.Quantity, pc.TotalLength, pc.Bars.Bars)
		}
	}
}

func printComparison(results []engine.ComparisonResult) {
	best := engine.Cheapest(results)
	fmt.Println()
	fmt.Println("Stock comparison:")
	for i, r := range results {
		marker := " "
		if i == best {
			marker = "*"
		}
		status := ""
		if r.UnplacedCount > 0 || r.Allocation.Failed() {
			status = fmt.Sprintf("  (%d panels unplaced)", r.UnplacedCount)
		}
		fmt.Printf("%s %-12s %3d sheets  %5.1f%% waste  %10s%s\n",
			marker, r.Scenario.Name, r.SheetsUsed, r.WastePercent, model.FormatMoney(r.TotalCost), status)
	}
}

func writeExports(o options, est model.Estimate) error {
	layouts := est.Summary.Layouts()
	glassType := est.Summary.GlassType

	if o.pdfPath != "" {
		if err := export.ExportPDF(o.pdfPath, est); err != nil {
			return fmt.Errorf("pdf: %w", err)
		}
		log.Printf("[CLI] Wrote %s", o.pdfPath)
	}
	if o.labelsPath != "" {
		if err := export.ExportLabels(o.labelsPath, layouts, glassType); err != nil {
			return fmt.Errorf("labels: %w", err)
		}
		log.Printf("[CLI] Wrote %s", o.labelsPath)
	}
	if o.dxfPath != "" {
		if err := export.ExportDXF(o.dxfPath, layouts); err != nil {
			return fmt.Errorf("dxf: %w", err)
		}
		log.Printf("[CLI] Wrote %s", o.dxfPath)
	}
	if o.pngDir != "" {
		if err := os.MkdirAll(o.pngDir, 0o755); err != nil {
			return fmt.Errorf("png: %w", err)
		}
		paths, err := export.ExportPNG(o.pngDir, layouts, o.pngScale)
		if err != nil {
			return fmt.Errorf("png: %w", err)
		}
		log.Printf("[CLI] Wrote %d previews to %s", len(paths), o.pngDir)
	}
	if o.chartPath != "" {
		title := model.ParseGlassType(glassType).DisplayName() + " utilisation"
		if err := export.ExportChart(o.chartPath, layouts, title); err != nil {
			return fmt.Errorf("chart: %w", err)
		}
		log.Printf("[CLI] Wrote %s", o.chartPath)
	}
	if o.xlsxPath != "" {
		if err := export.ExportOrderList(o.xlsxPath, est); err != nil {
			return fmt.Errorf("xlsx: %w", err)
		}
		log.Printf("[CLI] Wrote %s", o.xlsxPath)
	}
	if o.gcodeDir != "" {
		g := gcode.New(gcode.Settings{Profile: o.gcodeProfile, FeedRate: o.scoreSpeed})
		paths, err := g.WriteFiles(o.gcodeDir, layouts)
		if err != nil {
			return fmt.Errorf("gcode: %w", err)
		}
		for i, code := range g.GenerateAll(layouts) {
			st := gcode.Summarize(gcode.ParseGCode(code, gcode.GetProfile(o.gcodeProfile)))
			log.Printf("[CLI] Wrote %s (%d scores, %.1f in, %.1f min)", paths[i], st.Scores, st.ScoreLength, st.Minutes)
		}
	}
	return nil
}

func saveQuote(o options, cfg *model.AppConfig, selected string, est model.Estimate) error {
	ctx := context.Background()
	store, err := project.OpenStore(ctx, o.dbPath)
	if err != nil {
		return fmt.Errorf("open quotes: %w", err)
	}
	defer store.Close()

	if selected == "" {
		selected = model.OptimizeSelection
	}
	q, err := store.SaveQuote(ctx, o.saveName, selected, est)
	if err != nil {
		return err
	}
	log.Printf("[CLI] Saved quote %s for %s", q.ID, q.ClientName)

	project.AddRecentQuote(cfg, q.ID)
	if err := project.SaveAppConfig(o.configPath, *cfg); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

func restore(o options) error {
	data, err := project.ImportAllData(o.restorePath)
	if err != nil {
		return err
	}
	if err := project.SaveAppConfig(o.configPath, data.Config); err != nil {
		return fmt.Errorf("restore settings: %w", err)
	}
	if err := project.SaveCatalog(o.catalogPath, data.Catalog); err != nil {
		return fmt.Errorf("restore catalog: %w", err)
	}
	if err := project.SavePriceList(o.pricesPath, data.Prices); err != nil {
		return fmt.Errorf("restore prices: %w", err)
	}
	log.Printf("[CLI] Restored backup from %s (version %s)", o.restorePath, data.Version)
	return nil
}

// buildRequest fills the estimate request from flags, then saved settings,
// then the built-in defaults. Glass type and supplier are resolved before the
// fallback price check so it looks up the same quote the estimate will use.
func buildRequest(o options, cfg model.AppConfig, prices model.PriceList, panels []model.Panel) engine.EstimateRequest {
	req := engine.EstimateRequest{
		GlassType:     firstNonEmpty(o.glassType, cfg.DefaultGlassType, model.DefaultGlass),
		SelectedStock: firstNonEmpty(o.stock, cfg.DefaultStock),
		Supplier:      firstNonEmpty(o.supplier, cfg.DefaultSupplier, model.SupplierBestPrice),
		Panels:        panels,
	}
	switch {
	case o.price >= 0:
		price := o.price
		req.PricePerSqFt = &price
	case prices.Lookup(req.GlassType, req.Supplier).Price == 0 && cfg.FallbackPricePerSqFt > 0:
		fallback := cfg.FallbackPricePerSqFt
		req.PricePerSqFt = &fallback
		log.Printf("[CLI] No price for %s, using fallback %.2f/sq ft", req.GlassType, fallback)
	}
	return req
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
