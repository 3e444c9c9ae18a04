package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"
)

type geminiProvider struct {
	cfg    Config
	client *genai.Client
}

func newGeminiProvider(ctx context.Context, cfg Config) (*geminiProvider, error) {
	key := cfg.APIKey()
	if key == "" {
		return nil, fmt.Errorf("environment variable %s is empty", cfg.APIKeyEnv)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &geminiProvider{cfg: cfg, client: client}, nil
}

func (p *geminiProvider) name() Provider { return ProviderGemini }
func (p *geminiProvider) model() string  { return p.cfg.Model }

func (p *geminiProvider) chat(ctx context.Context, req chatRequest) (*ToolResult, error) {
	system, turns := splitSystem(req.Messages)

	gcfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(req.Sampling.Temperature)),
		TopP:            genai.Ptr(float32(req.Sampling.TopP)),
		MaxOutputTokens: int32(req.Sampling.MaxTokens),
	}
	if system != "" {
		gcfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	if req.Schema != nil {
		var schema any
		if err := json.Unmarshal(req.Schema.Definition, &schema); err != nil {
			return nil, fmt.Errorf("decoding schema %s: %w", req.Schema.Name, err)
		}
		gcfg.ResponseMIMEType = "application/json"
		gcfg.ResponseJsonSchema = schema
	}
	if len(req.Tools) > 0 {
		decls := make([]*genai.FunctionDeclaration, 0, len(req.Tools))
		for _, t := range req.Tools {
			var params any
			if len(t.Parameters) > 0 {
				if err := json.Unmarshal(t.Parameters, &params); err != nil {
					return nil, fmt.Errorf("decoding parameters for tool %s: %w", t.Name, err)
				}
			}
			decls = append(decls, &genai.FunctionDeclaration{
				Name:                 t.Name,
				Description:          t.Description,
				ParametersJsonSchema: params,
			})
		}
		gcfg.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	}

	contents := make([]*genai.Content, 0, len(turns))
	for _, m := range turns {
		role := genai.Role(genai.RoleUser)
		if m.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.cfg.Model, contents, gcfg)
	if err != nil {
		return nil, err
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return nil, &StatusError{
			Provider: string(ProviderGemini),
			Code:     400,
			Body:     "The response was filtered: " + string(resp.PromptFeedback.BlockReason),
		}
	}

	result := &ToolResult{Content: resp.Text()}
	if len(resp.Candidates) > 0 {
		result.FinishReason = string(resp.Candidates[0].FinishReason)
	}
	for _, fc := range resp.FunctionCalls() {
		args, err := json.Marshal(fc.Args)
		if err != nil {
			return nil, fmt.Errorf("%w: encoding tool arguments: %v", ErrInvalidOutput, err)
		}
		result.ToolCalls = append(result.ToolCalls, ToolCall{ID: fc.ID, Name: fc.Name, Arguments: args})
	}
	return result, nil
}
