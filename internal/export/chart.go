package export

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/piwi3910/GlassCut/internal/model"
)

// UtilizationChart builds a bar chart of glass used and waste per sheet.
func UtilizationChart(layouts []model.SheetLayout, title string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("%d sheets", len(layouts)),
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "%", Max: 100}),
		charts.WithLegendOpts(opts.Legend{Right: "10%"}),
	)

	names := make([]string, 0, len(layouts))
	used := make([]opts.BarData, 0, len(layouts))
	waste := make([]opts.BarData, 0, len(layouts))
	for i, sl := range layouts {
		eff := round1(sl.Efficiency())
		names = append(names, fmt.Sprintf("%d: %s", i+1, sl.Stock().Label()))
		used = append(used, opts.BarData{Value: eff})
		waste = append(waste, opts.BarData{Value: round1(100 - eff)})
	}

	bar.SetXAxis(names).
		AddSeries("Used", used).
		AddSeries("Waste", waste)
	return bar
}

// WriteChart renders the utilisation chart as a standalone HTML page.
func WriteChart(w io.Writer, layouts []model.SheetLayout, title string) error {
	return UtilizationChart(layouts, title).Render(w)
}

// ExportChart writes the utilisation chart HTML page to path.
func ExportChart(path string, layouts []model.SheetLayout, title string) error {
	if len(layouts) == 0 {
		return fmt.Errorf("no sheets to chart")
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteChart(f, layouts, title); err != nil {
		f.Close()
		return fmt.Errorf("render chart: %w", err)
	}
	return f.Close()
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
