// Package config loads the process configuration: defaults, then an
// optional YAML file, then NORMGATE_* environment overrides. The result is
// treated as read-only once Load returns.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/normgate/internal/apperr"
	"github.com/alexanderramin/normgate/internal/llm"
)

// Config is the complete normgate configuration.
type Config struct {
	LLM        llm.Config `yaml:"llm"`
	Extraction Extraction `yaml:"extraction"`
	Analysis   Analysis   `yaml:"analysis"`
	Endeavours Endeavours `yaml:"endeavours"`
	Store      Store      `yaml:"store"`
	Log        Log        `yaml:"log"`

	// Knowledge holds the resolved documents named by Endeavours.
	Knowledge Knowledge `yaml:"-"`
}

// Extraction configures the bounded-retry extractor and the proposition
// extractor built on it.
type Extraction struct {
	MaxAttempts       int  `yaml:"max_attempts"`
	MaxExtractedNorms int  `yaml:"max_extracted_norms"`
	EnforceNormCap    bool `yaml:"enforce_norm_cap"`
}

// Analysis holds the recommendation thresholds. A count greater than or
// equal to a threshold triggers it.
type Analysis struct {
	MaxCritical      int    `yaml:"max_critical"`
	MaxHigh          int    `yaml:"max_high"`
	MaxModerate      int    `yaml:"max_moderate"`
	RejectionMessage string `yaml:"rejection_message"`
	// Concurrency bounds in-flight scoring calls; 0 means unbounded.
	Concurrency int `yaml:"concurrency"`
}

// Endeavours points at the agent's endeavour documents and prompt knowledge.
// Empty paths select the embedded defaults.
type Endeavours struct {
	HighestPath  string `yaml:"highest_path"`
	SystemPath   string `yaml:"system_path"`
	CalculusPath string `yaml:"calculus_path"`
	ScoringPath  string `yaml:"scoring_path"`
}

// Store configures the assessment history database.
type Store struct {
	Path    string `yaml:"path"`
	Enabled bool   `yaml:"enabled"`
}

// Log configures the process logger.
type Log struct {
	Level string `yaml:"level"`
}

// Knowledge is the opaque prompt input loaded at startup.
type Knowledge struct {
	HighestEndeavour  []byte
	SystemEndeavours  []byte
	NormativeCalculus string
	ScoringMetric     string
}

const defaultRejection = "I'm sorry, but I can't help with that. The request conflicts with the principles I work under."

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LLM: llm.DefaultConfig(),
		Extraction: Extraction{
			MaxAttempts:       3,
			MaxExtractedNorms: 5,
		},
		Analysis: Analysis{
			MaxCritical:      1,
			MaxHigh:          2,
			MaxModerate:      3,
			RejectionMessage: defaultRejection,
		},
		Store: Store{Enabled: true},
		Log:   Log{Level: "info"},
	}
}

// Load builds the configuration. An empty path skips the file layer.
func Load(path string) (*Config, error) {
	const op = "config.Load"
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, apperr.Configuration(op, path, fmt.Errorf("failed to read config file: %w", err))
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, apperr.Configuration(op, path, fmt.Errorf("failed to parse config file: %w", err))
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.loadKnowledge(filepath.Dir(path)); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every section and reports the first offending key.
func (c *Config) Validate() error {
	const op = "config.Validate"
	if err := c.LLM.Validate(); err != nil {
		return apperr.Configuration(op, "llm", err)
	}

	checks := []struct {
		key string
		bad bool
		msg string
	}{
		{"extraction.max_attempts", c.Extraction.MaxAttempts < 1, "must be at least 1"},
		{"extraction.max_extracted_norms", c.Extraction.MaxExtractedNorms < 1, "must be at least 1"},
		{"analysis.max_critical", c.Analysis.MaxCritical < 1, "must be at least 1"},
		{"analysis.max_high", c.Analysis.MaxHigh < 1, "must be at least 1"},
		{"analysis.max_moderate", c.Analysis.MaxModerate < 1, "must be at least 1"},
		{"analysis.rejection_message", c.Analysis.RejectionMessage == "", "is required"},
		{"analysis.concurrency", c.Analysis.Concurrency < 0, "must not be negative"},
	}
	for _, chk := range checks {
		if chk.bad {
			return apperr.Configuration(op, chk.key, errors.New(chk.msg))
		}
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return apperr.Configuration(op, "log.level", fmt.Errorf("unknown level %q", c.Log.Level))
	}
	return nil
}

// StorePath returns the history database path, defaulting to
// ~/.normgate/normgate.db.
func (c *Config) StorePath() (string, error) {
	if c.Store.Path != "" {
		return c.Store.Path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".normgate", "normgate.db"), nil
}
