package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Environment variable names. PAWPALS_API_URL is how a hosting environment
// points the client at its API without any explicit configuration.
const (
	envAPIBaseURL  = "PAWPALS_API_URL"
	envTokenDBPath = "PAWPALS_TOKEN_DB"
)

// parseEnv overlays Config with environment values. A .env file in the
// working directory is merged first; a missing file is not an error.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv(envAPIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv(envTokenDBPath); v != "" {
		cfg.TokenDBPath = v
	}
}
