package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/piwi3910/GlassCut/internal/model"
)

// DefaultPixelsPerInch is the preview resolution used when none is given.
const DefaultPixelsPerInch = 8

var (
	glassTint   = color.NRGBA{220, 235, 240, 255}
	borderColor = color.NRGBA{30, 30, 30, 255}
)

// RenderSheet draws a sheet layout as an image at pxPerInch, panels filled
// with the same palette as the PDF diagrams.
func RenderSheet(sl model.SheetLayout, pxPerInch int) *image.NRGBA {
	if pxPerInch <= 0 {
		pxPerInch = DefaultPixelsPerInch
	}
	scale := float64(pxPerInch)
	px := func(v float64) int { return int(math.Round(v * scale)) }

	img := imaging.New(px(sl.StockWidth), px(sl.StockHeight), glassTint)

	for i, p := range sl.PlacedPanels {
		c := panelColors[i%len(panelColors)]
		r := image.Rect(px(p.X), px(p.Y), px(p.Right()), px(p.Bottom()))
		fill(img, r, color.NRGBA{uint8(c.R), uint8(c.G), uint8(c.B), 255})
		outline(img, r, borderColor)
	}
	outline(img, img.Bounds(), borderColor)
	return img
}

// Thumbnail scales a rendered sheet to the given width, keeping its aspect ratio.
func Thumbnail(img image.Image, width int) *image.NRGBA {
	return imaging.Resize(img, width, 0, imaging.Lanczos)
}

// WritePNG encodes one sheet preview to w.
func WritePNG(w io.Writer, sl model.SheetLayout, pxPerInch int) error {
	return imaging.Encode(w, RenderSheet(sl, pxPerInch), imaging.PNG)
}

// ExportPNG writes one preview per sheet into dir as sheet-01.png,
// sheet-02.png and so on, returning the written paths.
func ExportPNG(dir string, layouts []model.SheetLayout, pxPerInch int) ([]string, error) {
	if len(layouts) == 0 {
		return nil, fmt.Errorf("no sheets to export")
	}

	paths := make([]string, 0, len(layouts))
	for i, sl := range layouts {
		path := filepath.Join(dir, fmt.Sprintf("sheet-%02d.png", i+1))
		if err := imaging.Save(RenderSheet(sl, pxPerInch), path); err != nil {
			return paths, fmt.Errorf("save %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func fill(img draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

func outline(img draw.Image, r image.Rectangle, c color.Color) {
	fill(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), c)
	fill(img, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), c)
	fill(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), c)
	fill(img, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), c)
}
