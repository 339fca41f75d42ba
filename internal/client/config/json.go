package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pawpals/pawpals/internal/flagx"
	"github.com/pawpals/pawpals/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "10s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config (which uses time.Duration).
type JsonConfig struct {
	APIBaseURL     string         `json:"api_base_url"`
	TokenDBPath    string         `json:"token_db_path"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	SuggestTimeout timex.Duration `json:"suggest_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file selected by
// the -c or -config flags. With no file configured the function returns
// without touching cfg. Read or unmarshal errors panic; the caller decides
// whether to recover.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.TokenDBPath != "" {
		cfg.TokenDBPath = jc.TokenDBPath
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.SuggestTimeout.Duration != 0 {
		cfg.SuggestTimeout = time.Duration(jc.SuggestTimeout.Duration)
	}
}
