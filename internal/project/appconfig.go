package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/GlassCut/internal/model"
)

// MaxRecentQuotes bounds AppConfig.RecentQuotes.
const MaxRecentQuotes = 10

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.glasscut/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".glasscut")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	return writeJSON(path, config)
}

// LoadAppConfig reads an AppConfig from the given path.
// If the file does not exist, it returns DefaultAppConfig with no error.
func LoadAppConfig(path string) (model.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultAppConfig(), nil
		}
		return model.AppConfig{}, err
	}
	config := model.DefaultAppConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, err
	}
	if config.RecentQuotes == nil {
		config.RecentQuotes = []string{}
	}
	return config, nil
}

// AddRecentQuote moves id to the front of the recent list, keeping at most
// MaxRecentQuotes entries.
func AddRecentQuote(config *model.AppConfig, id string) {
	recent := []string{id}
	for _, existing := range config.RecentQuotes {
		if existing != id && len(recent) < MaxRecentQuotes {
			recent = append(recent, existing)
		}
	}
	config.RecentQuotes = recent
}

func writeJSON(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
