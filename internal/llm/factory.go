package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/alexanderramin/normgate/internal/apperr"
)

// NewGateway builds the provider selected by cfg and wraps it in a Facade.
// A nil observer logs call events through logger.
func NewGateway(ctx context.Context, cfg Config, logger *zap.Logger, observer Observer) (*Facade, error) {
	const op = "llm.NewGateway"
	if err := cfg.Validate(); err != nil {
		return nil, apperr.Configuration(op, "llm", err)
	}
	if observer == nil {
		observer = NewZapObserver(logger)
	}

	var p provider
	switch cfg.Provider {
	case ProviderOllama:
		p = newOllamaProvider(cfg)
	case ProviderOpenAI:
		if cfg.APIKey() == "" {
			return nil, apperr.Configuration(op, "llm.api_key_env", fmt.Errorf("environment variable %s is empty", cfg.APIKeyEnv))
		}
		p = newOpenAIProvider(cfg)
	case ProviderGemini:
		gp, err := newGeminiProvider(ctx, cfg)
		if err != nil {
			return nil, apperr.Configuration(op, "llm.api_key_env", err)
		}
		p = gp
	}
	return newFacade(p, cfg, logger, observer), nil
}

// Available reports whether the configured provider can be reached. Only
// Ollama supports a cheap probe; hosted providers are assumed reachable.
func (f *Facade) Available(ctx context.Context) bool {
	if op, ok := f.p.(*ollamaProvider); ok {
		return op.Available(ctx)
	}
	return true
}
