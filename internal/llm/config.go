package llm

import (
	"fmt"
	"os"
)

// Provider selects the backing LLM API.
type Provider string

const (
	ProviderOllama Provider = "ollama"
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

// Config holds all configuration for the LLM subsystem.
type Config struct {
	Provider          Provider `yaml:"provider"`
	Endpoint          string   `yaml:"endpoint"`
	Model             string   `yaml:"model"`
	APIKeyEnv         string   `yaml:"api_key_env"`
	DefaultTokenLimit int      `yaml:"default_token_limit"`
	TimeoutMs         int      `yaml:"timeout_ms"`
	MaxRetries        int      `yaml:"max_retries"`
	LogCalls          bool     `yaml:"log_calls"`
}

// DefaultConfig returns a Config that talks to a local Ollama instance.
func DefaultConfig() Config {
	return Config{
		Provider:          ProviderOllama,
		Endpoint:          "http://localhost:11434",
		Model:             "llama3.2",
		DefaultTokenLimit: 2048,
		TimeoutMs:         60000,
		MaxRetries:        1,
	}
}

// APIKey reads the provider key from the configured environment variable.
func (c Config) APIKey() string {
	if c.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.APIKeyEnv)
}

// Validate checks the fields every provider depends on.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderOllama:
		if c.Endpoint == "" {
			return fmt.Errorf("llm.endpoint is required for provider %s", c.Provider)
		}
	case ProviderOpenAI, ProviderGemini:
		if c.APIKeyEnv == "" {
			return fmt.Errorf("llm.api_key_env is required for provider %s", c.Provider)
		}
	default:
		return fmt.Errorf("unknown llm.provider %q", c.Provider)
	}
	if c.Model == "" {
		return fmt.Errorf("llm.model is required")
	}
	if c.DefaultTokenLimit <= 0 {
		return fmt.Errorf("llm.default_token_limit must be positive, got %d", c.DefaultTokenLimit)
	}
	if c.TimeoutMs <= 0 {
		return fmt.Errorf("llm.timeout_ms must be positive, got %d", c.TimeoutMs)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("llm.max_retries must not be negative, got %d", c.MaxRetries)
	}
	return nil
}
