package llm

import "context"

// chatRequest is the provider-neutral shape of one model call.
type chatRequest struct {
	Messages []Message
	Sampling Sampling
	Schema   *Schema
	Tools    []Tool
}

// provider adapts one vendor API. Implementations return raw transport
// errors; the Facade owns retries, classification, and logging.
type provider interface {
	name() Provider
	model() string
	chat(ctx context.Context, req chatRequest) (*ToolResult, error)
}
