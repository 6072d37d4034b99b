package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/GlassCut/internal/model"
)

func TestExportAndImportAllData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.FallbackPricePerSqFt = 3.75
	catalog := model.Catalog{General: []model.StockSize{{Width: 60, Height: 84}, {Width: 48, Height: 72}}}
	prices := model.PriceList{"Clear-1/4": {"VIS": 4.5}}

	if err := ExportAllData(path, cfg, catalog, prices); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}

	if backup.Version != BackupVersion {
		t.Errorf("expected version %s, got %s", BackupVersion, backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if backup.Config.FallbackPricePerSqFt != 3.75 {
		t.Errorf("expected fallback price 3.75, got %f", backup.Config.FallbackPricePerSqFt)
	}
	// catalog comes back sorted by area
	if len(backup.Catalog.General) != 2 || backup.Catalog.General[0].Width != 48 {
		t.Errorf("unexpected catalog %+v", backup.Catalog.General)
	}
	if backup.Prices["Clear-1/4"]["VIS"] != 4.5 {
		t.Errorf("expected VIS price 4.5, got %v", backup.Prices["Clear-1/4"]["VIS"])
	}
}

func TestImportAllDataFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	if err := os.WriteFile(path, []byte(`{"version": "0.9.0", "config": {}}`), 0644); err != nil {
		t.Fatal(err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if len(backup.Catalog.General) == 0 {
		t.Error("expected default catalog")
	}
	if backup.Prices == nil || backup.Config.RecentQuotes == nil {
		t.Error("expected non-nil prices and recent quotes")
	}
}

func TestImportAllDataMissingFile(t *testing.T) {
	if _, err := ImportAllData(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestImportAllDataInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportAllData(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportAllDataMissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noversion.json")
	if err := os.WriteFile(path, []byte(`{"config": {}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportAllData(path); err == nil {
		t.Fatal("expected error for missing version")
	}
}
