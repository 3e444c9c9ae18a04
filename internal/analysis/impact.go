package analysis

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/alexanderramin/normgate/internal/llm"
)

// ImpactAssessor rates the potential consequences of a task.
type ImpactAssessor struct {
	gw     llm.Gateway
	logger *zap.Logger
}

func NewImpactAssessor(gw llm.Gateway, logger *zap.Logger) *ImpactAssessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImpactAssessor{gw: gw, logger: logger}
}

// Assess returns the Impact Assessment Score for task.
func (a *ImpactAssessor) Assess(ctx context.Context, task string) (ImpactAssessment, error) {
	var out ImpactAssessment
	err := askStructured(ctx, a.gw, ethicsSystem,
		strings.ReplaceAll(impactInstructions, "{{task}}", task),
		llm.Schema{Name: "impact_assessment", Definition: json.RawMessage(impactSchema)},
		&out)
	if err != nil {
		a.logger.Error("impact assessment failed", zap.Error(err))
		return ImpactAssessment{}, err
	}
	a.logger.Info("impact assessed", zap.Int("ias", out.Score))
	return out, nil
}
