package model

// AppConfig holds user preferences and the defaults applied to new runs.
type AppConfig struct {
	DefaultCuttingAllowance float64 `json:"default_cutting_allowance"` // inches
	DefaultWastePercent     float64 `json:"default_waste_percent"`
	ParallelBuckets         bool    `json:"parallel_buckets"`

	DefaultGlassType     string  `json:"default_glass_type"`      // "Finish-Thickness"
	DefaultSupplier      string  `json:"default_supplier"`        // "Best Price" or a supplier name
	DefaultStock         string  `json:"default_stock"`           // "optimize" or "WxH"
	FallbackPricePerSqFt float64 `json:"fallback_price_per_sqft"` // used when the price list has no entry

	RecentQuotes []string `json:"recent_quotes"`
}

// DefaultAppConfig returns an AppConfig matching DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultCuttingAllowance: defaults.CuttingAllowance,
		DefaultWastePercent:     defaults.WastePercent,
		ParallelBuckets:         defaults.ParallelBuckets,
		DefaultGlassType:        DefaultGlass,
		DefaultSupplier:         SupplierBestPrice,
		DefaultStock:            OptimizeSelection,
		FallbackPricePerSqFt:    0,
		RecentQuotes:            []string{},
	}
}

// ApplyToSettings copies the saved defaults into a CutSettings.
func (c AppConfig) ApplyToSettings(s *CutSettings) {
	s.CuttingAllowance = c.DefaultCuttingAllowance
	s.WastePercent = c.DefaultWastePercent
	s.ParallelBuckets = c.ParallelBuckets
}
