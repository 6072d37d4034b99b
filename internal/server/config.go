package server

import (
	"os"
	"strconv"
	"time"
)

// Config is the HTTP server configuration, read from the environment.
type Config struct {
	Port         string
	Environment  string
	DBPath       string
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
}

// LoadConfig reads PORT, ENV, GLASSCUT_DB_PATH, READ_TIMEOUT and
// WRITE_TIMEOUT. An empty DBPath means the caller picks the default store.
func LoadConfig() *Config {
	return &Config{
		Port:         getEnv("PORT", "8080"),
		Environment:  getEnv("ENV", "development"),
		DBPath:       getEnv("GLASSCUT_DB_PATH", ""),
		ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 30),
	}
}

// Addr is the listen address for Port.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func (c *Config) ReadTimeoutDuration() time.Duration {
	return time.Duration(c.ReadTimeout) * time.Second
}

func (c *Config) WriteTimeoutDuration() time.Duration {
	return time.Duration(c.WriteTimeout) * time.Second
}

// Production reports whether ENV selects release mode.
func (c *Config) Production() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}
