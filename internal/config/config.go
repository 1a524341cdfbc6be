// Package config loads application configuration from the environment.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	GinMode     string

	HTTPAddr string

	// DataDir is the directory holding one XML file per collection.
	DataDir string

	LogLevel  string
	LogFormat string
}

// Load loads configuration from environment variables and an optional .env
// file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "facturador"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),
		GinMode:     strings.ToLower(getenv("GIN_MODE", "release")),
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		DataDir:     getenv("DATA_DIR", "datos"),
		LogLevel:    strings.ToLower(strings.TrimSpace(getenv("LOG_LEVEL", "info"))),
		LogFormat:   strings.ToLower(strings.TrimSpace(getenv("LOG_FORMAT", "json"))),
	}
}

func (c Config) IsDevelopment() bool {
	return c.Environment != "production"
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Module provides the loaded configuration.
var Module = fx.Module("config",
	fx.Provide(Load),
)
