package analysis

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alexanderramin/normgate/internal/config"
	"github.com/alexanderramin/normgate/internal/llm"
	"github.com/alexanderramin/normgate/internal/normative"
)

// ConflictScorer scores one user proposition against the agent's endeavours.
// Implementations must be safe for concurrent use.
type ConflictScorer interface {
	Score(ctx context.Context, p normative.Proposition, agent *normative.NormativeAgent) (ConflictAnalysis, error)
}

// ConflictAnalyser is the model-backed ConflictScorer.
type ConflictAnalyser struct {
	gw        llm.Gateway
	knowledge config.Knowledge
	logger    *zap.Logger
}

var _ ConflictScorer = (*ConflictAnalyser)(nil)

// NewConflictAnalyser returns an analyser that embeds the normative calculus
// and scoring metric from knowledge in every prompt.
func NewConflictAnalyser(gw llm.Gateway, knowledge config.Knowledge, logger *zap.Logger) *ConflictAnalyser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConflictAnalyser{gw: gw, knowledge: knowledge, logger: logger}
}

// Score makes one structured completion for p.
func (a *ConflictAnalyser) Score(ctx context.Context, p normative.Proposition, agent *normative.NormativeAgent) (ConflictAnalysis, error) {
	start := time.Now()
	prompt := strings.NewReplacer(
		"{{highest}}", agent.HighestMarkdown(),
		"{{system}}", agent.SystemMarkdown(),
		"{{proposition}}", p.Markdown(),
		"{{calculus}}", a.knowledge.NormativeCalculus,
		"{{metric}}", a.knowledge.ScoringMetric,
	).Replace(conflictInstructions)
	messages := []llm.Message{llm.System(ethicsSystem), llm.User(prompt)}
	schema := llm.Schema{Name: "conflict_analysis", Definition: json.RawMessage(conflictSchema)}

	var out ConflictAnalysis
	if err := a.gw.CompleteStructured(ctx, messages, schema, llm.ModePrecision, &out); err != nil {
		a.logger.Error("conflict scoring failed",
			zap.String("proposition", p.Value),
			zap.Error(err))
		return ConflictAnalysis{}, err
	}
	out.Source = p
	a.logger.Debug("proposition scored",
		zap.String("proposition", p.Value),
		zap.String("risk_level", string(out.RiskLevel)),
		zap.Duration("elapsed", time.Since(start)))
	return out, nil
}
