package model

import (
	"fmt"
	"sort"
	"strings"
)

// Glass finishes and thicknesses offered by the shop.
const (
	FinishClear    = "Clear"
	FinishMirror   = "Mirror"
	Thickness1_8   = "1/8"
	Thickness3_16  = "3/16"
	Thickness1_4   = "1/4"
	DefaultGlass   = FinishClear + "-" + Thickness1_4
	glassSeparator = "-"
)

// GlassType identifies a glass product as finish plus thickness, written
// "Finish-Thickness" (e.g. "Clear-1/4", "Reflective Blue-3/16").
type GlassType struct {
	Finish    string `json:"finish"`
	Thickness string `json:"thickness"`
}

// ParseGlassType splits a "Finish-Thickness" string.
func ParseGlassType(s string) GlassType {
	finish, thickness, _ := strings.Cut(s, glassSeparator)
	return GlassType{Finish: strings.TrimSpace(finish), Thickness: strings.TrimSpace(thickness)}
}

func (g GlassType) String() string {
	if g.Thickness == "" {
		return g.Finish
	}
	return g.Finish + glassSeparator + g.Thickness
}

// DisplayName renders the glass type for order lines, e.g. "Clear 1/4".
func (g GlassType) DisplayName() string {
	return strings.TrimSpace(g.Finish + " " + g.Thickness)
}

// StockRule maps a finish and/or thickness to the stock sizes sold for it.
// An empty Finish or Thickness matches anything.
type StockRule struct {
	Name      string      `json:"name"`
	Finish    string      `json:"finish,omitempty"`
	Thickness string      `json:"thickness,omitempty"`
	Stocks    []StockSize `json:"stocks"`
}

func (r StockRule) matches(g GlassType) bool {
	if r.Finish != "" && !strings.EqualFold(r.Finish, g.Finish) {
		return false
	}
	if r.Thickness != "" && r.Thickness != g.Thickness {
		return false
	}
	return true
}

// Catalog is the stock-size catalog per glass type. Rules are evaluated in
// order and the first match wins; General applies when none match.
type Catalog struct {
	Rules   []StockRule `json:"rules"`
	General []StockSize `json:"general"`
}

// DefaultCatalog returns the standard stock sheets, each list ascending by area.
func DefaultCatalog() Catalog {
	return Catalog{
		Rules: []StockRule{
			{Name: "3/16 glass", Thickness: Thickness3_16, Stocks: []StockSize{{48, 72}}},
			{Name: "Mirror", Finish: FinishMirror, Stocks: []StockSize{{48, 72}, {48, 84}}},
			{Name: "1/8 glass", Thickness: Thickness1_8, Stocks: []StockSize{{48, 72}}},
		},
		General: []StockSize{
			{48, 72}, // 3456 sq in
			{48, 84}, // 4032
			{48, 96}, // 4608
			{60, 84}, // 5040
			{65, 84}, // 5460
			{72, 96}, // 6912
		},
	}
}

// StocksFor returns the stock sizes available for a glass type. The returned
// slice is a copy.
func (c Catalog) StocksFor(glassType string) []StockSize {
	g := ParseGlassType(glassType)
	for _, r := range c.Rules {
		if r.matches(g) {
			return append([]StockSize(nil), r.Stocks...)
		}
	}
	return append([]StockSize(nil), c.General...)
}

// Normalize sorts every stock list ascending by area so automatic mode sees
// the smallest sheet first. Equal areas keep their catalog order.
func (c *Catalog) Normalize() {
	sortStocks(c.General)
	for i := range c.Rules {
		sortStocks(c.Rules[i].Stocks)
	}
}

// Validate checks that every stock size in the catalog is usable.
func (c Catalog) Validate() error {
	for _, s := range c.General {
		if !s.Valid() {
			return fmt.Errorf("general stock %s: invalid dimensions", s.Label())
		}
	}
	for _, r := range c.Rules {
		for _, s := range r.Stocks {
			if !s.Valid() {
				return fmt.Errorf("rule %q stock %s: invalid dimensions", r.Name, s.Label())
			}
		}
	}
	return nil
}

func sortStocks(stocks []StockSize) {
	sort.SliceStable(stocks, func(i, j int) bool {
		return stocks[i].Area() < stocks[j].Area()
	})
}
