package analysis

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/alexanderramin/normgate/internal/config"
	"github.com/alexanderramin/normgate/internal/llm"
	"github.com/alexanderramin/normgate/internal/normative"
)

// SelfDiagnostic checks that the agent's own endeavours are internally
// consistent under the normative calculus.
type SelfDiagnostic struct {
	gw        llm.Gateway
	knowledge config.Knowledge
	logger    *zap.Logger
}

func NewSelfDiagnostic(gw llm.Gateway, knowledge config.Knowledge, logger *zap.Logger) *SelfDiagnostic {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SelfDiagnostic{gw: gw, knowledge: knowledge, logger: logger}
}

// Run asks the model for a pass/fail verdict on agent.
func (d *SelfDiagnostic) Run(ctx context.Context, agent *normative.NormativeAgent) (Diagnostic, error) {
	prompt := strings.NewReplacer(
		"{{highest}}", agent.HighestMarkdown(),
		"{{system}}", agent.SystemMarkdown(),
		"{{calculus}}", d.knowledge.NormativeCalculus,
	).Replace(diagnosticInstructions)

	var out Diagnostic
	err := askStructured(ctx, d.gw, ethicsSystem, prompt,
		llm.Schema{Name: "self_diagnostic", Definition: json.RawMessage(diagnosticSchema)},
		&out)
	if err != nil {
		d.logger.Error("self diagnostic failed", zap.Error(err))
		return Diagnostic{}, err
	}
	if out.Passed {
		d.logger.Info("self diagnostic passed")
	} else {
		d.logger.Warn("self diagnostic failed", zap.String("analysis", out.Analysis))
	}
	return out, nil
}
