package llm

import (
	"context"
	"encoding/json"
)

// Gateway is the boundary to a language model provider.
type Gateway interface {
	// Complete returns free text for the conversation.
	Complete(ctx context.Context, messages []Message, mode Mode) (string, error)

	// CompleteStructured decodes a schema-typed object into out.
	CompleteStructured(ctx context.Context, messages []Message, schema Schema, mode Mode, out any) error

	// CompleteWithTools offers tools to the model and returns the raw result.
	CompleteWithTools(ctx context.Context, messages []Message, tools []Tool, mode Mode) (*ToolResult, error)
}

// Schema names a JSON Schema document describing a structured response.
type Schema struct {
	Name       string
	Definition json.RawMessage
}

// Tool is a function the model may call.
type Tool struct {
	Name        string
	Description string
	Parameters  json.RawMessage
}

// ToolCall is one function invocation requested by the model.
type ToolCall struct {
	ID        string
	Name      string
	Arguments json.RawMessage
}

// ToolResult is the raw outcome of a tool-enabled completion.
type ToolResult struct {
	Content      string
	ToolCalls    []ToolCall
	FinishReason string
}

// Validator is implemented by structured responses that check their own
// field constraints after decoding.
type Validator interface {
	Validate() error
}
