package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/alexanderramin/normgate/internal/apperr"
	"github.com/alexanderramin/normgate/internal/llm"
)

const envPrefix = "NORMGATE_"

// applyEnv overlays NORMGATE_* variables. Unparseable values are
// configuration errors rather than being ignored.
func applyEnv(cfg *Config) error {
	if v := os.Getenv(envPrefix + "LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = llm.Provider(v)
	}
	if v := os.Getenv(envPrefix + "LLM_ENDPOINT"); v != "" {
		cfg.LLM.Endpoint = v
	}
	if v := os.Getenv(envPrefix + "LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv(envPrefix + "LLM_API_KEY_ENV"); v != "" {
		cfg.LLM.APIKeyEnv = v
	}
	if v := os.Getenv(envPrefix + "STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv(envPrefix + "LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(envPrefix + "REJECTION_MESSAGE"); v != "" {
		cfg.Analysis.RejectionMessage = v
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"LLM_TOKEN_LIMIT", &cfg.LLM.DefaultTokenLimit},
		{"LLM_TIMEOUT_MS", &cfg.LLM.TimeoutMs},
		{"LLM_MAX_RETRIES", &cfg.LLM.MaxRetries},
		{"MAX_ATTEMPTS", &cfg.Extraction.MaxAttempts},
		{"MAX_EXTRACTED_NORMS", &cfg.Extraction.MaxExtractedNorms},
		{"MAX_CRITICAL", &cfg.Analysis.MaxCritical},
		{"MAX_HIGH", &cfg.Analysis.MaxHigh},
		{"MAX_MODERATE", &cfg.Analysis.MaxModerate},
		{"CONCURRENCY", &cfg.Analysis.Concurrency},
	}
	for _, e := range ints {
		v := os.Getenv(envPrefix + e.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return apperr.Configuration("config.Load", envPrefix+e.name, fmt.Errorf("not an integer: %q", v))
		}
		*e.dst = n
	}

	bools := []struct {
		name string
		dst  *bool
	}{
		{"LLM_LOG_CALLS", &cfg.LLM.LogCalls},
		{"ENFORCE_NORM_CAP", &cfg.Extraction.EnforceNormCap},
		{"STORE_ENABLED", &cfg.Store.Enabled},
	}
	for _, e := range bools {
		v := os.Getenv(envPrefix + e.name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return apperr.Configuration("config.Load", envPrefix+e.name, fmt.Errorf("not a boolean: %q", v))
		}
		*e.dst = b
	}
	return nil
}
