package config

import "github.com/AndreyAkinshin/casemock/internal/match"

// Default configuration values.
const (
	DefaultCatalog     = "test_cases/test_cases.json"
	DefaultFormat      = "auto"
	DefaultTolerance   = match.DefaultTolerance
	DefaultLogLevel    = "warn"
	DefaultConcurrency = 0
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills in default values for unset configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.Catalog == "" {
		cfg.Catalog = DefaultCatalog
	}
	if cfg.Format == "" {
		cfg.Format = DefaultFormat
	}
	if cfg.Tolerance == nil {
		eps := DefaultTolerance
		cfg.Tolerance = &eps
	}
	applyLogDefaults(cfg)
	if cfg.Batch == nil {
		cfg.Batch = &BatchConfig{Concurrency: DefaultConcurrency}
	}
}

func applyLogDefaults(cfg *Config) {
	if cfg.Log == nil {
		cfg.Log = &LogConfig{}
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
}
