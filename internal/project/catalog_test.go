package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/GlassCut/internal/model"
)

func TestLoadCatalogCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")

	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	if len(c.General) != len(model.DefaultCatalog().General) {
		t.Errorf("expected default catalog, got %d general stocks", len(c.General))
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected default catalog to be written: %v", err)
	}
}

func TestSaveAndLoadCatalogSortsByArea(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	c := model.Catalog{General: []model.StockSize{{Width: 72, Height: 96}, {Width: 48, Height: 72}, {Width: 60, Height: 84}}}

	if err := SaveCatalog(path, c); err != nil {
		t.Fatalf("SaveCatalog failed: %v", err)
	}
	loaded, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}

	want := []float64{48, 60, 72}
	for i, w := range want {
		if loaded.General[i].Width != w {
			t.Errorf("stock %d: expected width %v, got %v", i, w, loaded.General[i].Width)
		}
	}
}

func TestSaveCatalogRejectsInvalid(t *testing.T) {
	c := model.Catalog{General: []model.StockSize{{Width: 0, Height: 72}}}
	if err := SaveCatalog(filepath.Join(t.TempDir(), "c.json"), c); err == nil {
		t.Fatal("expected error for invalid stock size")
	}
}

func TestLoadCatalogRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(`{"general": [{"width": -1, "height": 72}]}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCatalog(path); err == nil {
		t.Fatal("expected error for negative stock width")
	}
}

func TestLoadPriceList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.json")

	pl, err := LoadPriceList(path)
	if err != nil {
		t.Fatalf("LoadPriceList failed: %v", err)
	}
	if len(pl) == 0 {
		t.Fatal("expected default price list")
	}

	pl.Set("Clear-1/4", "VIS", 9)
	if err := SavePriceList(path, pl); err != nil {
		t.Fatalf("SavePriceList failed: %v", err)
	}
	loaded, err := LoadPriceList(path)
	if err != nil {
		t.Fatalf("LoadPriceList failed: %v", err)
	}
	if q := loaded.Lookup("Clear-1/4", "VIS"); q.Price != 9 {
		t.Errorf("expected VIS price 9, got %v", q.Price)
	}
}

func TestLoadPriceListRejectsNegative(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.json")
	if err := os.WriteFile(path, []byte(`{"Clear-1/4": {"VIS": -2}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPriceList(path); err == nil {
		t.Fatal("expected error for negative price")
	}
}
