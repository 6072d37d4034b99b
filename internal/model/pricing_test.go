package model

import (
	"math"
	"testing"
)

func TestPriceLookupBestPrice(t *testing.T) {
	pl := PriceList{"Clear-1/4": {"VIS": 4.25, "GAG": 4.10, "ASYA": 0}}
	q := pl.Lookup("Clear-1/4", SupplierBestPrice)
	if q.Price != 4.10 || q.Source != "GAG" {
		t.Errorf("expected GAG at 4.10, got %+v", q)
	}
}

func TestPriceLookupNamedSupplier(t *testing.T) {
	pl := PriceList{"Clear-1/4": {"VIS": 4.25}}
	q := pl.Lookup("Clear-1/4", "VIS")
	if q.Price != 4.25 || q.Source != "VIS" {
		t.Errorf("unexpected quote %+v", q)
	}
	q = pl.Lookup("Clear-1/4", "ASYA")
	if q.Price != 0 || q.Source != "ASYA" {
		t.Errorf("missing supplier should price at 0, got %+v", q)
	}
}

func TestPriceLookupUnknownMaterial(t *testing.T) {
	q := PriceList{}.Lookup("Smoked-1/4", SupplierBestPrice)
	if q.Price != 0 || q.Source != PriceSourceNone {
		t.Errorf("unexpected quote %+v", q)
	}
}

func TestPriceLookupAllZero(t *testing.T) {
	pl := PriceList{"Clear-1/4": {"VIS": 0}}
	q := pl.Lookup("Clear-1/4", SupplierBestPrice)
	if q.Price != 0 || q.Source != PriceSourceNone {
		t.Errorf("unexpected quote %+v", q)
	}
}

func TestPriceLookupFixedRate(t *testing.T) {
	pl := PriceList{}
	pl.Set("SOBC Glass Clip (Fixed)", SupplierBEST, 12)
	pl.Set("SOBC Glass Clip (Fixed)", SupplierVIS, 9)
	q := pl.Lookup("SOBC Glass Clip (Fixed)", SupplierVIS)
	if q.Price != 12 || q.Source != PriceSourceFixedRate {
		t.Errorf("expected fixed rate 12, got %+v", q)
	}
}

func TestPricePerSheet(t *testing.T) {
	got := PricePerSheet(StockSize{48, 72}, 4)
	if math.Abs(got-96) > 1e-9 {
		t.Errorf("expected 96, got %v", got)
	}
}
