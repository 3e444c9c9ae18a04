package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// openaiProvider covers OpenAI and any endpoint that speaks its chat
// completions protocol.
type openaiProvider struct {
	cfg    Config
	client *openai.Client
}

func newOpenAIProvider(cfg Config) *openaiProvider {
	oc := openai.DefaultConfig(cfg.APIKey())
	if cfg.Endpoint != "" {
		oc.BaseURL = cfg.Endpoint
	}
	return &openaiProvider{cfg: cfg, client: openai.NewClientWithConfig(oc)}
}

func (p *openaiProvider) name() Provider { return ProviderOpenAI }
func (p *openaiProvider) model() string  { return p.cfg.Model }

func (p *openaiProvider) chat(ctx context.Context, req chatRequest) (*ToolResult, error) {
	creq := openai.ChatCompletionRequest{
		Model:       p.cfg.Model,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(req.Messages)),
		Temperature: float32(req.Sampling.Temperature),
		TopP:        float32(req.Sampling.TopP),
		MaxTokens:   req.Sampling.MaxTokens,
	}
	for _, m := range req.Messages {
		creq.Messages = append(creq.Messages, openai.ChatCompletionMessage{Role: string(m.Role), Content: m.Content})
	}
	if req.Schema != nil {
		creq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   req.Schema.Name,
				Schema: req.Schema.Definition,
			},
		}
	}
	for _, t := range req.Tools {
		creq.Tools = append(creq.Tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}

	resp, err := p.client.CreateChatCompletion(ctx, creq)
	if err != nil {
		return nil, p.classify(err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", ErrInvalidOutput)
	}

	choice := resp.Choices[0]
	if choice.FinishReason == openai.FinishReasonContentFilter {
		return nil, &StatusError{Provider: string(ProviderOpenAI), Code: 400, Body: "The response was filtered"}
	}

	result := &ToolResult{Content: choice.Message.Content, FinishReason: string(choice.FinishReason)}
	for _, tc := range choice.Message.ToolCalls {
		result.ToolCalls = append(result.ToolCalls, ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: []byte(tc.Function.Arguments),
		})
	}
	return result, nil
}

// classify maps SDK errors onto StatusError so the Facade can decide on
// retries and content filtering uniformly.
func (p *openaiProvider) classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &StatusError{Provider: string(ProviderOpenAI), Code: apiErr.HTTPStatusCode, Body: apiErr.Message}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &StatusError{Provider: string(ProviderOpenAI), Code: reqErr.HTTPStatusCode, Body: reqErr.Error()}
	}
	return err
}
