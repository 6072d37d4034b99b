package model

import (
	"math"
	"sort"
	"strings"
)

// Suppliers known to the price list. SupplierBestPrice is not a supplier but
// asks the lookup to pick the cheapest quote.
const (
	SupplierBestPrice = "Best Price"
	SupplierVIS       = "VIS"
	SupplierVLIS      = "VLIS"
	SupplierBEST      = "BEST"
	SupplierGAG       = "GAG"
	SupplierASYA      = "ASYA"
)

// Price sources reported alongside a looked-up price.
const (
	PriceSourceNone      = "N/A"
	PriceSourceFixedRate = "Fixed Rate"
	PriceSourceManual    = "Manual"
)

// PriceList maps material name -> supplier -> unit price. Glass is priced
// per square foot under its glass type key (e.g. "Clear-1/4").
type PriceList map[string]map[string]float64

// Quote is a looked-up price and where it came from.
type Quote struct {
	Price  float64 `json:"price"`
	Source string  `json:"source"`
}

// Lookup resolves the unit price of a material for a supplier. Fixed-rate
// items always use the BEST supplier's rate when one is set. An unknown
// material prices at zero with source N/A.
func (pl PriceList) Lookup(material, supplier string) Quote {
	prices, ok := pl[material]
	if !ok {
		return Quote{Price: 0, Source: PriceSourceNone}
	}

	if isFixedRate(material) {
		if p := prices[SupplierBEST]; p > 0 {
			return Quote{Price: p, Source: PriceSourceFixedRate}
		}
	}

	if supplier != SupplierBestPrice {
		return Quote{Price: prices[supplier], Source: supplier}
	}

	// map order is random; walk suppliers sorted so ties resolve the same way every run
	names := make([]string, 0, len(prices))
	for name := range prices {
		names = append(names, name)
	}
	sort.Strings(names)

	best := math.Inf(1)
	source := PriceSourceNone
	for _, name := range names {
		if p := prices[name]; p > 0 && p < best {
			best = p
			source = name
		}
	}
	if math.IsInf(best, 1) {
		return Quote{Price: 0, Source: source}
	}
	return Quote{Price: best, Source: source}
}

// Set records a supplier price for a material.
func (pl PriceList) Set(material, supplier string, price float64) {
	if pl[material] == nil {
		pl[material] = map[string]float64{}
	}
	pl[material][supplier] = price
}

func isFixedRate(material string) bool {
	return strings.HasPrefix(material, "Awning-") || strings.Contains(material, "(Fixed)")
}

// PricePerSheet returns the price of one stock sheet given a per-square-foot rate.
func PricePerSheet(stock StockSize, pricePerSqFt float64) float64 {
	return stock.Area() / SquareInchesPerFoot * pricePerSqFt
}

// SquareInchesPerFoot is the number of square inches in one square foot.
const SquareInchesPerFoot = 144.0

// DefaultPriceList returns sample per-square-foot glass prices.
func DefaultPriceList() PriceList {
	return PriceList{
		"Clear-1/4":  {SupplierVIS: 4.25, SupplierGAG: 4.10, SupplierASYA: 4.40},
		"Clear-3/16": {SupplierVIS: 3.60, SupplierGAG: 3.55},
		"Clear-1/8":  {SupplierVIS: 2.90, SupplierGAG: 2.95},
		"Mirror-1/4": {SupplierVIS: 6.80, SupplierVLIS: 6.50},
		"Mirror-1/8": {SupplierVIS: 5.20},
	}
}
