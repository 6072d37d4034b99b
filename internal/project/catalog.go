package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/GlassCut/internal/model"
)

// DefaultCatalogPath returns ~/.glasscut/catalog.json.
func DefaultCatalogPath() string {
	return filepath.Join(DefaultConfigDir(), "catalog.json")
}

// SaveCatalog writes the stock catalog to path as JSON.
func SaveCatalog(path string, c model.Catalog) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}
	return writeJSON(path, c)
}

// LoadCatalog reads the stock catalog from path. If the file does not exist
// the default catalog is written there and returned. Stock lists are sorted
// ascending by area on load, since automatic stock selection relies on it.
func LoadCatalog(path string) (model.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			c := model.DefaultCatalog()
			return c, SaveCatalog(path, c)
		}
		return model.Catalog{}, err
	}

	var c model.Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return model.Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return model.Catalog{}, fmt.Errorf("invalid catalog %s: %w", path, err)
	}
	c.Normalize()
	return c, nil
}
