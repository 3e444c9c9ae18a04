package llm

import "go.uber.org/zap"

// CallEvent records metadata about a single gateway invocation.
type CallEvent struct {
	Op        string
	Provider  Provider
	Model     string
	Mode      Mode
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about LLM calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// ZapObserver writes call events to a zap logger.
type ZapObserver struct {
	logger *zap.Logger
}

// NewZapObserver creates an Observer that logs events at debug level, and
// failures at warn level.
func NewZapObserver(logger *zap.Logger) *ZapObserver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapObserver{logger: logger.Named("llm")}
}

func (o *ZapObserver) OnCallComplete(event CallEvent) {
	fields := []zap.Field{
		zap.String("op", event.Op),
		zap.String("provider", string(event.Provider)),
		zap.String("model", event.Model),
		zap.String("mode", string(event.Mode)),
		zap.Int64("latency_ms", event.LatencyMs),
	}
	if event.Success {
		o.logger.Debug("llm_call", fields...)
		return
	}
	o.logger.Warn("llm_call", append(fields, zap.String("error_code", event.ErrorCode))...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
