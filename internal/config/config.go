// Package config holds the engine's tunable settings. Zero values are
// replaced by defaults so an empty or partial file always yields a working
// configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration tree.
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis"`
	Fuzzy    FuzzyConfig    `yaml:"fuzzy"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// AnalysisConfig tunes the aggregator and the session scheduler.
type AnalysisConfig struct {
	// MaxDiagnostics caps one run's findings; runs stopped by the cap are
	// marked truncated.
	MaxDiagnostics int `yaml:"max_diagnostics"`
	// DebounceMillis is how long the session waits after an edit before
	// starting a background run.
	DebounceMillis int `yaml:"debounce_millis"`
	// MaxSweeps bounds the fixed-point iteration.
	MaxSweeps int `yaml:"max_sweeps"`
}

// FuzzyConfig tunes the suggestion matcher.
type FuzzyConfig struct {
	// Floor is the minimum similarity before a suggestion surfaces.
	Floor float64 `yaml:"floor"`
	// MinTokenLength suppresses suggestions for trivial identifiers.
	MinTokenLength int `yaml:"min_token_length"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	Dev   bool   `yaml:"dev"`   // console encoding with caller info
}

// Default returns the standard configuration. The values mirror the
// package-level defaults in analyze and fuzzy; config sits below both in
// the import graph and cannot reference them directly.
func Default() Config {
	return Config{
		Analysis: AnalysisConfig{
			MaxDiagnostics: 10,
			DebounceMillis: 200,
			MaxSweeps:      8,
		},
		Fuzzy: FuzzyConfig{
			Floor:          0.90,
			MinTokenLength: 5,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads a YAML config file, filling unset fields with defaults. A
// missing file is not an error: defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Analysis.MaxDiagnostics <= 0 {
		c.Analysis.MaxDiagnostics = def.Analysis.MaxDiagnostics
	}
	if c.Analysis.DebounceMillis <= 0 {
		c.Analysis.DebounceMillis = def.Analysis.DebounceMillis
	}
	if c.Analysis.MaxSweeps <= 0 {
		c.Analysis.MaxSweeps = def.Analysis.MaxSweeps
	}
	if c.Fuzzy.Floor <= 0 {
		c.Fuzzy.Floor = def.Fuzzy.Floor
	}
	if c.Fuzzy.MinTokenLength <= 0 {
		c.Fuzzy.MinTokenLength = def.Fuzzy.MinTokenLength
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
}
