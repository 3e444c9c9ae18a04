package analysis

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/alexanderramin/normgate/internal/llm"
)

// UserIntent rates how benign the intent behind a task is.
type UserIntent struct {
	gw     llm.Gateway
	logger *zap.Logger
}

// NewUserIntent returns a scorer backed by gw.
func NewUserIntent(gw llm.Gateway, logger *zap.Logger) *UserIntent {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserIntent{gw: gw, logger: logger}
}

// Score returns the User Intent Score for task.
func (u *UserIntent) Score(ctx context.Context, task string) (IntentAssessment, error) {
	var out IntentAssessment
	err := askStructured(ctx, u.gw, ethicsSystem,
		strings.ReplaceAll(intentInstructions, "{{task}}", task),
		llm.Schema{Name: "user_intent", Definition: json.RawMessage(intentSchema)},
		&out)
	if err != nil {
		u.logger.Error("user intent scoring failed", zap.Error(err))
		return IntentAssessment{}, err
	}
	u.logger.Info("user intent scored", zap.Int("uis", out.Score), zap.String("band", out.Band()))
	return out, nil
}

func askStructured(ctx context.Context, gw llm.Gateway, system, prompt string, schema llm.Schema, out any) error {
	messages := []llm.Message{llm.System(system), llm.User(prompt)}
	return gw.CompleteStructured(ctx, messages, schema, llm.ModePrecision, out)
}
