package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	// DataSources are snapshot locations: filesystem paths or http(s) URLs.
	// Several per-project documents may be listed; they are merged after load.
	DataSources []string
	// AliasPath points to an optional franchise alias map (JSON). Empty means
	// the built-in alias set.
	AliasPath string
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Binary directory first: a packaged dashboard ships its .env next to
	// the executable.
	if exePath, err := os.Executable(); err == nil {
		envPath := filepath.Join(filepath.Dir(exePath), ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to the working directory (development / go run).
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	var sources []string
	for _, s := range strings.Split(getEnv("STREAMBOARD_DATA", ""), ",") {
		if s = strings.TrimSpace(s); s != "" {
			sources = append(sources, s)
		}
	}

	return &AppConfig{
		DataSources: sources,
		AliasPath:   getEnv("STREAMBOARD_ALIASES", ""),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
