package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig is a DTO used exclusively for environment parsing. Only the
// variables that are actually set overlay the Config.
type envConfig struct {
	APIBaseURL     string        `env:"BOOKSWAP_API_URL"`
	RequestTimeout time.Duration `env:"BOOKSWAP_REQUEST_TIMEOUT"`
	DatabasePath   string        `env:"BOOKSWAP_DB_PATH"`
}

// parseEnv overlays Config with values from BOOKSWAP_* environment
// variables. Unset variables leave the corresponding fields untouched.
// Panics on malformed values (caller should recover if desired).
func parseEnv(cfg *Config) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		panic(err)
	}

	if ec.APIBaseURL != "" {
		cfg.APIBaseURL = ec.APIBaseURL
	}
	if ec.RequestTimeout > 0 {
		cfg.RequestTimeout = ec.RequestTimeout
	}
	if ec.DatabasePath != "" {
		cfg.DatabasePath = ec.DatabasePath
	}
}
