package llm

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/alexanderramin/normgate/internal/apperr"
)

// Facade is the Gateway used by the rest of the application. It resolves
// sampling modes, applies transport retries, and turns provider content-filter
// rejections into either the FilteredMarker (free text) or
// apperr.ErrContentFiltered (structured and tool calls).
type Facade struct {
	p        provider
	cfg      Config
	observer Observer
	logger   *zap.Logger
}

var _ Gateway = (*Facade)(nil)

func newFacade(p provider, cfg Config, logger *zap.Logger, observer Observer) *Facade {
	if logger == nil {
		logger = zap.NewNop()
	}
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Facade{p: p, cfg: cfg, observer: observer, logger: logger.Named("gateway")}
}

// Complete returns the model's free-text reply. A content-filter rejection is
// reported as FilteredMarker with a nil error.
func (f *Facade) Complete(ctx context.Context, messages []Message, mode Mode) (string, error) {
	res, err := f.call(ctx, "complete", mode, chatRequest{Messages: messages})
	if err != nil {
		if IsContentFiltered(err) {
			f.logger.Warn("prompt filtered by provider", zap.Error(err))
			return FilteredMarker, nil
		}
		return "", apperr.Gateway("llm.Complete", err)
	}
	return res.Content, nil
}

// CompleteStructured asks for output conforming to schema and decodes it
// into out.
func (f *Facade) CompleteStructured(ctx context.Context, messages []Message, schema Schema, mode Mode, out any) error {
	const op = "llm.CompleteStructured"
	res, err := f.call(ctx, "complete_structured", mode, chatRequest{Messages: messages, Schema: &schema})
	if err != nil {
		if IsContentFiltered(err) {
			return apperr.New(apperr.ErrContentFiltered, op, err)
		}
		return apperr.Gateway(op, err)
	}
	if err := DecodeJSON(res.Content, out); err != nil {
		f.logger.Debug("structured decode failed",
			zap.String("schema", schema.Name),
			zap.String("raw", res.Content),
			zap.Error(err))
		return apperr.Gateway(op, err)
	}
	return nil
}

// CompleteWithTools returns the raw tool-enabled result. Tool execution is
// left to the caller.
func (f *Facade) CompleteWithTools(ctx context.Context, messages []Message, tools []Tool, mode Mode) (*ToolResult, error) {
	const op = "llm.CompleteWithTools"
	res, err := f.call(ctx, "complete_with_tools", mode, chatRequest{Messages: messages, Tools: tools})
	if err != nil {
		if IsContentFiltered(err) {
			return nil, apperr.New(apperr.ErrContentFiltered, op, err)
		}
		return nil, apperr.Gateway(op, err)
	}
	return res, nil
}

func (f *Facade) call(ctx context.Context, op string, mode Mode, req chatRequest) (*ToolResult, error) {
	start := time.Now()
	req.Sampling = mode.Resolve(f.cfg.DefaultTokenLimit)

	if f.cfg.LogCalls {
		f.logger.Debug("llm request",
			zap.String("op", op),
			zap.String("mode", string(mode)),
			zap.Float64("temperature", req.Sampling.Temperature),
			zap.Float64("top_p", req.Sampling.TopP),
			zap.String("prompt", Transcript(req.Messages)))
	}

	timeout := time.Duration(f.cfg.TimeoutMs) * time.Millisecond
	res, err := withRetry(ctx, timeout, f.cfg.MaxRetries, func(ctx context.Context) (*ToolResult, error) {
		return f.p.chat(ctx, req)
	})

	event := CallEvent{
		Op:        op,
		Provider:  f.p.name(),
		Model:     f.p.model(),
		Mode:      mode,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
		ErrorCode: errorCode(err),
	}
	f.observer.OnCallComplete(event)

	if err == nil && f.cfg.LogCalls {
		f.logger.Debug("llm response", zap.String("op", op), zap.String("content", res.Content))
	}
	if err != nil && errors.Is(err, context.Canceled) {
		f.logger.Debug("llm call cancelled", zap.String("op", op))
	}
	return res, err
}
