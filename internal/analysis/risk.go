package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/normgate/internal/apperr"
	"github.com/alexanderramin/normgate/internal/config"
	"github.com/alexanderramin/normgate/internal/llm"
	"github.com/alexanderramin/normgate/internal/normative"
)

// State is the lifecycle position of a RiskAnalysis.
type State int

const (
	StateIdle State = iota
	StateScoring
	StateScored
	StateRecommended
	StateExplaining
	StateExplained
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScoring:
		return "scoring"
	case StateScored:
		return "scored"
	case StateRecommended:
		return "recommended"
	case StateExplaining:
		return "explaining"
	case StateExplained:
		return "explained"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// RiskAnalysis scores every proposition of one endeavour, recommends an
// action and explains it. A value serves a single run.
type RiskAnalysis struct {
	scorer ConflictScorer
	gw     llm.Gateway
	policy config.Analysis
	logger *zap.Logger

	mu             sync.Mutex
	state          State
	analyses       []ConflictAnalysis
	recommendation Recommendation
	explanation    string
	// explaining is closed when the in-flight Explain finishes.
	explaining chan struct{}
}

// NewRiskAnalysis returns an idle run.
func NewRiskAnalysis(scorer ConflictScorer, gw llm.Gateway, policy config.Analysis, logger *zap.Logger) *RiskAnalysis {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RiskAnalysis{scorer: scorer, gw: gw, policy: policy, logger: logger}
}

// State reports where the run is.
func (r *RiskAnalysis) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Analyses returns the scored records in proposition order.
func (r *RiskAnalysis) Analyses() []ConflictAnalysis {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ConflictAnalysis, len(r.analyses))
	copy(out, r.analyses)
	return out
}

// Analyse scores the endeavour's propositions concurrently. The batch is
// all-or-nothing: the first failure cancels the rest and the run returns to
// idle with no partial results.
func (r *RiskAnalysis) Analyse(ctx context.Context, e normative.Endeavour, agent *normative.NormativeAgent) ([]ConflictAnalysis, error) {
	const op = "analysis.Analyse"

	r.mu.Lock()
	if r.state != StateIdle {
		st := r.state
		r.mu.Unlock()
		err := apperr.New(apperr.ErrInternalConsistency, op, fmt.Errorf("run is %s, want idle", st))
		r.logger.Error("analyse called out of order", zap.Error(err))
		return nil, err
	}
	r.state = StateScoring
	r.mu.Unlock()

	r.logger.Info("scoring endeavour",
		zap.String("endeavour", e.Name),
		zap.Int("propositions", len(e.Propositions)))

	results := make([]ConflictAnalysis, len(e.Propositions))
	g, gctx := errgroup.WithContext(ctx)
	if r.policy.Concurrency > 0 {
		g.SetLimit(r.policy.Concurrency)
	}
	for i, p := range e.Propositions {
		g.Go(func() error {
			a, err := r.scorer.Score(gctx, p, agent)
			if err != nil {
				return fmt.Errorf("scoring %q: %w", p.Value, err)
			}
			a.Source = p
			results[i] = a
			return nil
		})
	}
	err := g.Wait()

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.state = StateIdle
		r.analyses = nil
		r.logger.Error("risk analysis failed", zap.String("endeavour", e.Name), zap.Error(err))
		return nil, err
	}
	r.analyses = results
	r.state = StateScored
	return results, nil
}

// Counts tallies the risk levels of the scored run.
func (r *RiskAnalysis) Counts() Counts {
	r.mu.Lock()
	defer r.mu.Unlock()
	return countLevels(r.analyses)
}

// ByProposition indexes the records by the source proposition's value.
func (r *RiskAnalysis) ByProposition() map[string]ConflictAnalysis {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]ConflictAnalysis, len(r.analyses))
	for _, a := range r.analyses {
		out[a.Source.Value] = a
	}
	return out
}

// RecommendAction applies the thresholds in order: critical, high, moderate.
// A count at or above its threshold decides the outcome.
func (r *RiskAnalysis) RecommendAction() (Recommendation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recommendLocked()
}

func (r *RiskAnalysis) recommendLocked() (Recommendation, error) {
	switch r.state {
	case StateRecommended, StateExplaining, StateExplained:
		return r.recommendation, nil
	case StateScored:
	default:
		err := apperr.New(apperr.ErrInternalConsistency, "analysis.RecommendAction",
			fmt.Errorf("run is %s, want scored", r.state))
		r.logger.Error("recommend called out of order", zap.Error(err))
		return "", err
	}

	c := countLevels(r.analyses)
	rec := Recommend(c, r.policy)
	r.logger.Info("action recommended",
		zap.String("recommendation", string(rec)),
		zap.Int("critical", c.Critical),
		zap.Int("high", c.High),
		zap.Int("moderate", c.Moderate),
		zap.Int("low", c.Low))
	r.recommendation = rec
	r.state = StateRecommended
	return rec, nil
}

// Recommend maps counts to a recommendation under policy.
func Recommend(c Counts, policy config.Analysis) Recommendation {
	switch {
	case c.Critical >= policy.MaxCritical:
		return Reject
	case c.High >= policy.MaxHigh:
		return Reject
	case c.Moderate >= policy.MaxModerate:
		return SuggestModification
	default:
		return AcceptAndExecute
	}
}

// Explain turns the recommendation into user-facing text. Only
// SUGGEST_MODIFICATION calls the model; a failed call leaves the run
// recommended so it can be retried. Concurrent callers wait for the
// explanation in flight instead of issuing their own call.
func (r *RiskAnalysis) Explain(ctx context.Context) (string, error) {
	const op = "analysis.Explain"

	r.mu.Lock()
	for r.state == StateExplaining {
		done := r.explaining
		r.mu.Unlock()
		select {
		case <-done:
		case <-ctx.Done():
			return "", ctx.Err()
		}
		r.mu.Lock()
	}
	if r.state == StateExplained {
		text := r.explanation
		r.mu.Unlock()
		return text, nil
	}
	rec, err := r.recommendLocked()
	if err != nil {
		r.mu.Unlock()
		return "", err
	}
	analyses := r.analyses
	done := make(chan struct{})
	r.explaining = done
	r.state = StateExplaining
	r.mu.Unlock()

	text, err := r.explain(ctx, op, rec, analyses)

	r.mu.Lock()
	if err != nil {
		r.state = StateRecommended
	} else {
		r.explanation = text
		r.state = StateExplained
	}
	r.explaining = nil
	close(done)
	r.mu.Unlock()
	return text, err
}

func (r *RiskAnalysis) explain(ctx context.Context, op string, rec Recommendation, analyses []ConflictAnalysis) (string, error) {
	switch rec {
	case Reject:
		return r.policy.RejectionMessage, nil
	case SuggestModification:
		prompt := strings.ReplaceAll(explainInstructions, "{{analyses}}", AnalysesMarkdown(analyses))
		text, err := r.gw.Complete(ctx, []llm.Message{llm.User(prompt)}, llm.ModeBalanced)
		if err != nil {
			err = apperr.Gateway(op, err)
			r.logger.Error("explanation failed", zap.Error(err))
			return "", err
		}
		return text, nil
	case AcceptAndExecute:
		return AcceptableToProcess, nil
	default:
		err := apperr.New(apperr.ErrInternalConsistency, op,
			errors.New("unknown recommendation "+string(rec)))
		r.logger.Error("cannot explain", zap.Error(err))
		return "", err
	}
}
