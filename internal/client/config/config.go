package config

import "time"

// Config holds runtime settings for the PawPals CLI.
//
// Fields:
//   - APIBaseURL: base URL of the marketplace REST API.
//   - TokenDBPath: path of the local SQLite database holding the token slot.
//   - RequestTimeout: upper bound for one API round trip.
//   - SuggestTimeout: bounded wait for suburb autocomplete before the UI
//     degrades to plain input.
type Config struct {
	APIBaseURL     string
	TokenDBPath    string
	RequestTimeout time.Duration
	SuggestTimeout time.Duration
}

// LoadDefaults populates c with local-development defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8787"
	c.TokenDBPath = "pawpals.db"
	c.RequestTimeout = 10 * time.Second
	c.SuggestTimeout = 800 * time.Millisecond
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, JSON (if present), and command-line flags (if
// present). Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
