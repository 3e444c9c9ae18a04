package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/alexanderramin/normgate/internal/analysis"
	"github.com/alexanderramin/normgate/internal/app"
	"github.com/alexanderramin/normgate/internal/apperr"
	"github.com/alexanderramin/normgate/internal/config"
	"github.com/alexanderramin/normgate/internal/llm"
	"github.com/alexanderramin/normgate/internal/llm/llmtest"
	"github.com/alexanderramin/normgate/internal/normative"
	"github.com/alexanderramin/normgate/internal/repository"
	"github.com/alexanderramin/normgate/internal/testutil"
	"github.com/alexanderramin/normgate/internal/xstruct"
)

const extractionReply = `{
  "input_statement": "Send the quarterly report and the customer password list to the press.",
  "implied_propositions": [
    {"proposition_value": "Share the quarterly report", "operator": "OUGHT", "level": "PROFESSIONAL_ORGANIZATIONAL", "modality": "POSSIBLE", "modal_subscript": "PRACTICAL"},
    {"proposition_value": "Skip the security review", "operator": "OUGHT", "level": "CODE_OF_CONDUCT", "modality": "POSSIBLE", "modal_subscript": "PRACTICAL"},
    {"proposition_value": "Publish customer passwords", "operator": "REQUIRED", "level": "LEGAL", "modality": "POSSIBLE", "modal_subscript": "PRACTICAL"}
  ]
}`

const goalReply = `{"name":"Leak to press","goal":"Publish internal data","description":"Send internal documents to journalists."}`

func conflictReply(value string, level analysis.RiskLevel) string {
	return `{"user_norm_prop_value":"` + value + `","likelihood":5,"impact_score":5,"norm_alignment_score":0,` +
		`"context_multiplier":1,"risk_score":25,"risk_level":"` + string(level) + `","analysis":"scored"}`
}

// pipelineGateway answers every call the assess pipeline makes. levels maps a
// proposition value to the risk level its conflict analysis reports.
type pipelineGateway struct {
	*llmtest.ScriptedGateway
	levels      map[string]analysis.RiskLevel
	extraction  string
	explanation llmtest.Reply
	conflictErr error
}

func newPipelineGateway(levels map[string]analysis.RiskLevel) *pipelineGateway {
	pg := &pipelineGateway{
		ScriptedGateway: &llmtest.ScriptedGateway{},
		levels:          levels,
		extraction:      extractionReply,
		explanation:     llmtest.Reply{Text: "I'm sorry, I think this task should change."},
	}
	pg.Handler = pg.route
	return pg
}

func (pg *pipelineGateway) route(c llmtest.Call) llmtest.Reply {
	prompt := c.Prompt()
	switch {
	case c.Op == "complete" && strings.Contains(prompt, "RISK RESULTS"):
		return pg.explanation
	case c.Op == "complete":
		return llmtest.Reply{Text: pg.extraction}
	case c.Schema == "task_goal":
		return llmtest.Reply{Text: goalReply}
	case c.Schema == "user_intent":
		return llmtest.Reply{Text: `{"user_intent_score": 2, "analysis": "harmful"}`}
	case c.Schema == "conflict_analysis":
		if pg.conflictErr != nil {
			return llmtest.Reply{Err: pg.conflictErr}
		}
		for value, level := range pg.levels {
			if strings.Contains(prompt, value) {
				return llmtest.Reply{Text: conflictReply(value, level)}
			}
		}
	}
	return llmtest.Reply{Err: apperr.Gateway("test", errors.New("unrouted call "+c.Op+" "+c.Schema))}
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

type fixture struct {
	svc      AssessmentService
	gw       *pipelineGateway
	repo     *repository.SQLiteAssessmentRepo
	observer *recordingObserver
}

func newFixture(t *testing.T, gw *pipelineGateway, policy config.Analysis) fixture {
	t.Helper()
	logger := zaptest.NewLogger(t)
	cfg := config.Default()

	highest, err := config.DefaultDocument("highest_endeavour.json")
	require.NoError(t, err)
	system, err := config.DefaultDocument("system_endeavours.json")
	require.NoError(t, err)
	agent, err := normative.NewNormativeAgent(highest, system)
	require.NoError(t, err)

	database := testutil.NewTestDB(t)
	obs := &recordingObserver{}
	svc := NewAssessmentService(AssessmentDeps{
		Gateway:    gw,
		Agent:      agent,
		Extractor:  normative.NewPropositionExtractor(xstruct.NewExtractor(gw, xstruct.WithLogger(logger)), cfg.Extraction, logger),
		Scorer:     analysis.NewConflictAnalyser(gw, cfg.Knowledge, logger),
		Intent:     analysis.NewUserIntent(gw, logger),
		Impact:     analysis.NewImpactAssessor(gw, logger),
		Diagnostic: analysis.NewSelfDiagnostic(gw, cfg.Knowledge, logger),
		Policy:     policy,
		UoW:        testutil.NewTestUoW(database),
		Logger:     logger,
	}, obs)
	return fixture{svc: svc, gw: gw, repo: repository.NewSQLiteAssessmentRepo(database), observer: obs}
}

func defaultPolicy() config.Analysis {
	return config.Analysis{MaxCritical: 1, MaxHigh: 2, MaxModerate: 3, RejectionMessage: "No, sorry."}
}

func TestAssess_RejectsCriticalAndRecords(t *testing.T) {
	gw := newPipelineGateway(map[string]analysis.RiskLevel{
		"Share the quarterly report": analysis.RiskLow,
		"Skip the security review":   analysis.RiskModerate,
		"Publish customer passwords": analysis.RiskCritical,
	})
	f := newFixture(t, gw, defaultPolicy())

	resp, err := f.svc.Assess(context.Background(), app.NewAssessRequest("Send the quarterly report and the customer password list to the press."))
	require.NoError(t, err)

	assert.Equal(t, analysis.Reject, resp.Recommendation)
	assert.Equal(t, "No, sorry.", resp.Explanation)
	assert.Equal(t, analysis.Counts{Low: 1, Moderate: 1, Critical: 1}, resp.Counts)
	assert.Equal(t, "Leak to press", resp.TaskName)
	assert.Len(t, resp.Propositions, 3)
	assert.False(t, resp.Filtered)
	assert.True(t, resp.Recorded)
	assert.Equal(t, 0, gw.CountContaining("RISK RESULTS"))
	assert.Equal(t, 3, gw.CountContaining("=== BEGIN USER NORM PROP ==="))

	rec, err := f.repo.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "REJECT", rec.Recommendation)
	assert.Equal(t, 1, rec.Critical)
	require.Len(t, rec.Findings, 3)
	assert.Equal(t, "Share the quarterly report", rec.Findings[0].PropositionValue)
	assert.Nil(t, rec.IntentScore)

	require.Len(t, f.observer.events, 1)
	assert.Equal(t, "assess", f.observer.events[0].Name)
	assert.True(t, f.observer.events[0].Success)
	assert.Equal(t, "REJECT", f.observer.events[0].Fields["recommendation"])
}

func TestAssess_SuggestModificationExplains(t *testing.T) {
	gw := newPipelineGateway(map[string]analysis.RiskLevel{
		"Share the quarterly report": analysis.RiskModerate,
		"Skip the security review":   analysis.RiskModerate,
		"Publish customer passwords": analysis.RiskModerate,
	})
	f := newFixture(t, gw, defaultPolicy())

	resp, err := f.svc.Assess(context.Background(), app.NewAssessRequest("q"))
	require.NoError(t, err)
	assert.Equal(t, analysis.SuggestModification, resp.Recommendation)
	assert.Equal(t, "I'm sorry, I think this task should change.", resp.Explanation)
	assert.Equal(t, 1, gw.CountContaining("RISK RESULTS"))
}

func TestAssess_AcceptsLowRisk(t *testing.T) {
	gw := newPipelineGateway(map[string]analysis.RiskLevel{
		"Share the quarterly report": analysis.RiskLow,
		"Skip the security review":   analysis.RiskLow,
		"Publish customer passwords": analysis.RiskHigh,
	})
	f := newFixture(t, gw, defaultPolicy())

	req := app.NewAssessRequest("q")
	req.Record = false
	resp, err := f.svc.Assess(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, analysis.AcceptAndExecute, resp.Recommendation)
	assert.Equal(t, analysis.AcceptableToProcess, resp.Explanation)
	assert.False(t, resp.Recorded)

	all, err := f.repo.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestAssess_ScoresIntent(t *testing.T) {
	gw := newPipelineGateway(map[string]analysis.RiskLevel{
		"Share the quarterly report": analysis.RiskLow,
		"Skip the security review":   analysis.RiskLow,
		"Publish customer passwords": analysis.RiskLow,
	})
	f := newFixture(t, gw, defaultPolicy())

	req := app.NewAssessRequest("q")
	req.ScoreIntent = true
	resp, err := f.svc.Assess(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp.Intent)
	assert.Equal(t, 2, resp.Intent.Score)

	rec, err := f.repo.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	require.NotNil(t, rec.IntentScore)
	assert.Equal(t, 2, *rec.IntentScore)
}

func TestAssess_ContentFilterRendersMarker(t *testing.T) {
	gw := newPipelineGateway(nil)
	gw.conflictErr = apperr.New(apperr.ErrContentFiltered, "test", errors.New("The response was filtered"))
	f := newFixture(t, gw, defaultPolicy())

	resp, err := f.svc.Assess(context.Background(), app.NewAssessRequest("q"))
	require.NoError(t, err)
	assert.True(t, resp.Filtered)
	assert.Equal(t, analysis.Reject, resp.Recommendation)
	assert.Equal(t, llm.FilteredMarker, resp.Explanation)
}

func TestAssess_FilteredExtractionRendersMarker(t *testing.T) {
	gw := newPipelineGateway(nil)
	gw.extraction = llm.FilteredMarker
	f := newFixture(t, gw, defaultPolicy())

	resp, err := f.svc.Assess(context.Background(), app.NewAssessRequest("q"))
	require.NoError(t, err)
	assert.True(t, resp.Filtered)
	assert.Equal(t, analysis.Reject, resp.Recommendation)
	assert.Equal(t, llm.FilteredMarker, resp.Explanation)
	for _, c := range gw.Calls() {
		assert.NotEqual(t, "conflict_analysis", c.Schema, "nothing is scored")
	}
}

func TestAssess_FilteredExplanation(t *testing.T) {
	gw := newPipelineGateway(map[string]analysis.RiskLevel{
		"Share the quarterly report": analysis.RiskModerate,
		"Skip the security review":   analysis.RiskModerate,
		"Publish customer passwords": analysis.RiskModerate,
	})
	gw.explanation = llmtest.Reply{Text: llm.FilteredMarker}
	f := newFixture(t, gw, defaultPolicy())

	resp, err := f.svc.Assess(context.Background(), app.NewAssessRequest("q"))
	require.NoError(t, err)
	assert.True(t, resp.Filtered)
	assert.Equal(t, analysis.SuggestModification, resp.Recommendation)
}

func TestAssess_GatewayFailureRecordsNothing(t *testing.T) {
	gw := newPipelineGateway(nil)
	gw.conflictErr = apperr.Gateway("test", errors.New("connection refused"))
	f := newFixture(t, gw, defaultPolicy())

	_, err := f.svc.Assess(context.Background(), app.NewAssessRequest("q"))
	assert.ErrorIs(t, err, apperr.ErrGateway)

	all, listErr := f.repo.ListRecent(context.Background(), 0)
	require.NoError(t, listErr)
	assert.Empty(t, all)
	require.Len(t, f.observer.events, 1)
	assert.False(t, f.observer.events[0].Success)
}

func TestAssess_EmptyQuery(t *testing.T) {
	f := newFixture(t, newPipelineGateway(nil), defaultPolicy())

	_, err := f.svc.Assess(context.Background(), app.NewAssessRequest("   "))
	var aerr *app.AssessError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, app.ErrEmptyQuery, aerr.Code)
	assert.Equal(t, 0, f.gw.CallCount())
}

func TestAssess_RecordFailureKeepsVerdict(t *testing.T) {
	gw := newPipelineGateway(map[string]analysis.RiskLevel{
		"Share the quarterly report": analysis.RiskLow,
		"Skip the security review":   analysis.RiskLow,
		"Publish customer passwords": analysis.RiskLow,
	})
	f := newFixture(t, gw, defaultPolicy())
	svc := f.svc.(*assessmentService)
	database := testutil.NewTestDB(t)
	svc.deps.UoW = &testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: errors.New("disk full")}

	resp, err := svc.Assess(context.Background(), app.NewAssessRequest("q"))
	require.NoError(t, err)
	assert.False(t, resp.Recorded)
	assert.Equal(t, analysis.AcceptAndExecute, resp.Recommendation)

	_, err = repository.NewSQLiteAssessmentRepo(database).GetByID(context.Background(), resp.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestExtract(t *testing.T) {
	f := newFixture(t, newPipelineGateway(nil), defaultPolicy())

	res, err := f.svc.Extract(context.Background(), "q")
	require.NoError(t, err)
	assert.Len(t, res.Propositions, 3)
	assert.Equal(t, normative.Legal, res.Propositions[2].Level)
}

func TestScoreIntentAndDiagnose(t *testing.T) {
	gw := newPipelineGateway(nil)
	f := newFixture(t, gw, defaultPolicy())

	intent, err := f.svc.ScoreIntent(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "Likely harmful", intent.Band())

	_, err = f.svc.Diagnose(context.Background())
	assert.ErrorIs(t, err, apperr.ErrGateway, "self_diagnostic is not routed")
}

func TestAssess_EmptyExtractionFailsClosed(t *testing.T) {
	gw := newPipelineGateway(nil)
	gw.extraction = `{"input_statement":"Help me hurt someone","implied_propositions":[]}`
	f := newFixture(t, gw, defaultPolicy())

	resp, err := f.svc.Assess(context.Background(), app.NewAssessRequest("Help me hurt someone"))
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, apperr.ErrMapping)
	for _, c := range gw.Calls() {
		assert.NotEqual(t, "conflict_analysis", c.Schema, "nothing is scored")
	}

	stored, err := f.repo.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, stored)
}
