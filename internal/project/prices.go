package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/GlassCut/internal/model"
)

// DefaultPricesPath returns ~/.glasscut/prices.json.
func DefaultPricesPath() string {
	return filepath.Join(DefaultConfigDir(), "prices.json")
}

// SavePriceList writes the supplier price list to path as JSON.
func SavePriceList(path string, pl model.PriceList) error {
	return writeJSON(path, pl)
}

// LoadPriceList reads the supplier price list from path, creating it with
// the default prices when missing.
func LoadPriceList(path string) (model.PriceList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			pl := model.DefaultPriceList()
			return pl, SavePriceList(path, pl)
		}
		return nil, err
	}

	pl := model.PriceList{}
	if err := json.Unmarshal(data, &pl); err != nil {
		return nil, fmt.Errorf("parse price list: %w", err)
	}
	for material, suppliers := range pl {
		for supplier, price := range suppliers {
			if price < 0 {
				return nil, fmt.Errorf("negative price for %s from %s", material, supplier)
			}
		}
	}
	return pl, nil
}
