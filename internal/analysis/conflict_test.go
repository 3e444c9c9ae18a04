package analysis

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/normgate/internal/apperr"
	"github.com/alexanderramin/normgate/internal/config"
	"github.com/alexanderramin/normgate/internal/llm"
	"github.com/alexanderramin/normgate/internal/llm/llmtest"
)

const criticalReply = `{"user_norm_prop_value":"leak the data","likelihood":9,"impact_score":10,
"norm_alignment_score":-9,"context_multiplier":1.5,"risk_score":135,"risk_level":"Critical",
"analysis":"| finding | detail |"}`

func TestConflictAnalyser_Score(t *testing.T) {
	gw := llmtest.New(criticalReply)
	knowledge := config.Knowledge{NormativeCalculus: "CALCULUS-TEXT", ScoringMetric: "METRIC-TEXT"}
	a := NewConflictAnalyser(gw, knowledge, nil)
	p := endeavourOf("leak the data").Propositions[0]

	got, err := a.Score(context.Background(), p, testAgent(t))
	require.NoError(t, err)
	assert.Equal(t, RiskCritical, got.RiskLevel)
	assert.Equal(t, -9, got.NormAlignmentScore)
	assert.Equal(t, p.ID, got.Source.ID)

	calls := gw.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "conflict_analysis", calls[0].Schema)
	assert.Equal(t, llm.ModePrecision, calls[0].Mode)
	prompt := calls[0].Prompt()
	for _, want := range []string{"CALCULUS-TEXT", "METRIC-TEXT", "leak the data", "Protect privacy"} {
		assert.Contains(t, prompt, want)
	}
}

func TestConflictAnalyser_RejectsOutOfRangeScores(t *testing.T) {
	bad := strings.Replace(criticalReply, `"norm_alignment_score":-9`, `"norm_alignment_score":-42`, 1)
	a := NewConflictAnalyser(llmtest.New(bad), config.Knowledge{}, nil)

	_, err := a.Score(context.Background(), endeavourOf("x").Propositions[0], testAgent(t))
	assert.ErrorIs(t, err, apperr.ErrGateway)
}

func TestConflictAnalysis_Validate(t *testing.T) {
	ok := ConflictAnalysis{Likelihood: 1, ImpactScore: 10, NormAlignmentScore: 10, RiskLevel: RiskLow}
	assert.NoError(t, ok.Validate())

	bad := ok
	bad.RiskLevel = "Severe"
	assert.Error(t, bad.Validate())

	bad = ok
	bad.Likelihood = 0
	assert.Error(t, bad.Validate())

	bad = ok
	bad.ImpactScore = 11
	assert.Error(t, bad.Validate())
}
