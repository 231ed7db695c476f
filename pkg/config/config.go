// Package config loads and validates processor configuration from YAML files
// with environment-variable overrides. Command-line flags take precedence
// over both and are applied by the caller after Load returns.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the top-level processor configuration.
type Config struct {
	Processor ProcessorConfig `yaml:"processor"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// ProcessorConfig controls tokenization and query-evaluation behaviour.
type ProcessorConfig struct {
	// Workers bounds concurrent query evaluation per strategy.
	Workers int `yaml:"workers"`
	// Stem enables suffix stemming during tokenization.
	Stem bool `yaml:"stem"`
	// ResultsFileName is the per-strategy results file written under
	// <output-dir>/<strategy>/.
	ResultsFileName string `yaml:"resultsFileName"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus textfile export written after a run.
type MetricsConfig struct {
	Enabled  bool   `yaml:"enabled"`
	FileName string `yaml:"fileName"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides. It returns a Config populated with sensible defaults for any
// missing values.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if cfg.Processor.Workers <= 0 {
		cfg.Processor.Workers = runtime.GOMAXPROCS(0)
	}
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Processor: ProcessorConfig{
			Workers:         runtime.GOMAXPROCS(0),
			Stem:            false,
			ResultsFileName: "results.txt",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled:  false,
			FileName: "metrics.prom",
		},
	}
}

// applyEnvOverrides reads PHRASEPROC_* environment variables and overrides
// the corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PHRASEPROC_WORKERS"); v != "" {
		if workers, err := strconv.Atoi(v); err == nil {
			cfg.Processor.Workers = workers
		}
	}
	if v := os.Getenv("PHRASEPROC_STEM"); v != "" {
		if stem, err := strconv.ParseBool(v); err == nil {
			cfg.Processor.Stem = stem
		}
	}
	if v := os.Getenv("PHRASEPROC_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("PHRASEPROC_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("PHRASEPROC_METRICS_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = enabled
		}
	}
	if v := os.Getenv("PHRASEPROC_METRICS_FILE"); v != "" {
		cfg.Metrics.FileName = v
	}
}
