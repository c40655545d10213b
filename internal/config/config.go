package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"effectoro/internal/errs"
)

// Prefix is prepended to every environment key, e.g. EFFECTORO_MODEL_PATH.
const Prefix = "EFFECTORO"

// Config holds environment defaults. Command-line flags override them.
type Config struct {
	ModelPath   string `envconfig:"MODEL_PATH"`
	OutputDir   string `envconfig:"OUTPUT_DIR" default:"effectoro_results"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogEnv      string `envconfig:"LOG_ENV" default:"development"`
	LogFile     string `envconfig:"LOG_FILE"`
	BatchSize   int    `envconfig:"BATCH_SIZE" default:"0"`
	MetricsFile string `envconfig:"METRICS_FILE"`
	Multiline   bool   `envconfig:"MULTILINE" default:"false"`
}

// Load reads .env files (if present; existing variables win) and then the
// process environment.
func Load(envFiles ...string) (*Config, error) {
	// a missing .env is fine
	_ = godotenv.Load(envFiles...)

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, errs.Wrap(err, "failed to process env config")
	}
	if cfg.BatchSize < 0 {
		return nil, fmt.Errorf("%s_BATCH_SIZE must be >= 0, got %d", Prefix, cfg.BatchSize)
	}
	return &cfg, nil
}
