package project

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/GlassCut/internal/model"
)

// BackupVersion is written into every backup file.
const BackupVersion = "1.0.0"

// BackupData is the top-level structure for import/export of all application data.
type BackupData struct {
	Version   string          `json:"version"`
	CreatedAt string          `json:"created_at"`
	Config    model.AppConfig `json:"config"`
	Catalog   model.Catalog   `json:"catalog"`
	Prices    model.PriceList `json:"prices"`
}

// ExportAllData exports config, stock catalog and price list to a single
// JSON file at the specified path.
func ExportAllData(exportPath string, config model.AppConfig, catalog model.Catalog, prices model.PriceList) error {
	backup := BackupData{
		Version:   BackupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Catalog:   catalog,
		Prices:    prices,
	}
	if err := writeJSON(exportPath, backup); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The caller is responsible for applying the imported data.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if backup.Config.RecentQuotes == nil {
		backup.Config.RecentQuotes = []string{}
	}
	if len(backup.Catalog.General) == 0 && len(backup.Catalog.Rules) == 0 {
		backup.Catalog = model.DefaultCatalog()
	}
	backup.Catalog.Normalize()
	if backup.Prices == nil {
		backup.Prices = model.PriceList{}
	}
	return backup, nil
}
