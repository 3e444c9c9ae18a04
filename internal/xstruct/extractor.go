package xstruct

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/alexanderramin/normgate/internal/apperr"
	"github.com/alexanderramin/normgate/internal/llm"
)

// DefaultMaxAttempts is the attempt budget when none is configured.
const DefaultMaxAttempts = 3

// Extractor asks the gateway for JSON matching a schema, retrying with a
// fresh, identical request until a reply validates or the budget runs out.
type Extractor struct {
	gw          llm.Gateway
	maxAttempts int
	mode        llm.Mode
	logger      *zap.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMaxAttempts sets the attempt budget. Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(e *Extractor) {
		if n >= 1 {
			e.maxAttempts = n
		}
	}
}

// WithMode sets the sampling mode used for every attempt.
func WithMode(m llm.Mode) Option {
	return func(e *Extractor) { e.mode = m }
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(e *Extractor) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewExtractor returns an Extractor bound to gw.
func NewExtractor(gw llm.Gateway, opts ...Option) *Extractor {
	e := &Extractor{
		gw:          gw,
		maxAttempts: DefaultMaxAttempts,
		mode:        llm.ModeBalanced,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.Named("xstruct")
	return e
}

// MaxAttempts returns the configured attempt budget.
func (e *Extractor) MaxAttempts() int { return e.maxAttempts }

// ExtractResult is a validated payload plus the number of gateway calls it
// took.
type ExtractResult struct {
	Payload  string
	Attempts int
}

// Extract returns the first schema-valid, sanitized reply.
func (e *Extractor) Extract(ctx context.Context, messages []llm.Message, schema, example string) (string, error) {
	res, err := e.ExtractDetailed(ctx, messages, schema, example)
	if err != nil {
		return "", err
	}
	return res.Payload, nil
}

// ExtractDetailed is Extract with attempt accounting.
//
// The example must itself satisfy schema; otherwise the call fails with
// apperr.ErrConfiguration before any gateway call. Gateway failures abort
// immediately. Replies that do not validate, including the content-filter
// marker, consume one attempt each. When every attempt was filtered the
// result is apperr.ErrContentFiltered rather than exhaustion. No state
// carries between attempts.
func (e *Extractor) ExtractDetailed(ctx context.Context, messages []llm.Message, schema, example string) (*ExtractResult, error) {
	const op = "xstruct.Extract"

	compiled, err := Compile(schema)
	if err != nil {
		e.logger.Error("schema does not compile", zap.Error(err))
		return nil, apperr.Configuration(op, "schema", err)
	}
	if err := compiled.Check(example); err != nil {
		e.logger.Error("worked example fails its own schema", zap.Error(err))
		return nil, apperr.Configuration(op, "example", err)
	}

	var (
		lastErr  error
		filtered int
	)
	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		e.logger.Debug("extraction attempt", zap.Int("attempt", attempt), zap.Int("max_attempts", e.maxAttempts))
		prompt := completionPrompt(messages, schema, example)

		reply, err := e.gw.Complete(ctx, prompt, e.mode)
		if err != nil {
			e.logger.Error("gateway call failed", zap.Int("attempt", attempt), zap.Error(err))
			return nil, apperr.Gateway(op, err)
		}

		candidate := Sanitize(reply)
		if err := compiled.Check(candidate); err != nil {
			lastErr = err
			if reply == llm.FilteredMarker {
				lastErr = errors.New("reply was filtered by the provider")
				filtered++
			}
			e.logger.Debug("reply failed validation", zap.Int("attempt", attempt), zap.Error(lastErr))
			continue
		}
		return &ExtractResult{Payload: candidate, Attempts: attempt}, nil
	}

	if filtered == e.maxAttempts {
		e.logger.Warn("every extraction attempt was filtered", zap.Int("attempts", e.maxAttempts))
		return nil, apperr.New(apperr.ErrContentFiltered, op, lastErr)
	}
	e.logger.Error("extraction exhausted", zap.Int("attempts", e.maxAttempts), zap.Error(lastErr))
	return nil, apperr.New(apperr.ErrValidationExhausted, op,
		fmt.Errorf("no schema-valid reply after %d attempts: %w", e.maxAttempts, lastErr))
}
