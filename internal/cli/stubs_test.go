package cli

import (
	"context"
	"sync"

	"github.com/alexanderramin/normgate/internal/analysis"
	"github.com/alexanderramin/normgate/internal/app"
	"github.com/alexanderramin/normgate/internal/normative"
	"github.com/alexanderramin/normgate/internal/repository"
)

// stubAssessments answers every use case with canned values and records
// the requests it saw.
type stubAssessments struct {
	mu       sync.Mutex
	requests []app.AssessRequest

	resp       *app.AssessResponse
	err        error
	extracted  *normative.AnalysisResult
	intent     analysis.IntentAssessment
	impact     analysis.ImpactAssessment
	diagnostic analysis.Diagnostic
	diagnoses  int
}

func (s *stubAssessments) Assess(_ context.Context, req app.AssessRequest) (*app.AssessResponse, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	resp := *s.resp
	resp.Query = req.Query
	return &resp, nil
}

func (s *stubAssessments) Extract(context.Context, string) (*normative.AnalysisResult, error) {
	return s.extracted, s.err
}

func (s *stubAssessments) ScoreIntent(context.Context, string) (analysis.IntentAssessment, error) {
	return s.intent, s.err
}

func (s *stubAssessments) AssessImpact(context.Context, string) (analysis.ImpactAssessment, error) {
	return s.impact, s.err
}

func (s *stubAssessments) Diagnose(context.Context) (analysis.Diagnostic, error) {
	s.mu.Lock()
	s.diagnoses++
	s.mu.Unlock()
	return s.diagnostic, nil
}

func (s *stubAssessments) lastRequest() app.AssessRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[len(s.requests)-1]
}

type stubHistory struct {
	records []*repository.AssessmentRecord
	limits  []int
}

func (s *stubHistory) ListHistory(_ context.Context, req app.HistoryRequest) ([]*repository.AssessmentRecord, error) {
	s.limits = append(s.limits, req.Limit)
	return s.records, nil
}

func (s *stubHistory) GetAssessment(_ context.Context, id string) (*repository.AssessmentRecord, error) {
	for _, r := range s.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *stubHistory) DeleteAssessment(_ context.Context, id string) error {
	for i, r := range s.records {
		if r.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func newStubs() (*stubAssessments, *stubHistory) {
	a := &stubAssessments{
		resp: &app.AssessResponse{
			ID:             "3f1c9a2e-0000-4000-8000-000000000001",
			TaskName:       "Sort a list",
			Recommendation: analysis.AcceptAndExecute,
			Explanation:    analysis.AcceptableToProcess,
		},
		extracted: &normative.AnalysisResult{
			InputStatement: "sort my list",
			Propositions: []normative.Proposition{
				normative.NewProposition("Efficiency", normative.Ought, normative.ProfessionalOrganizational, normative.Possible, normative.Practical),
			},
		},
		intent:     analysis.IntentAssessment{Score: 9, Analysis: "Benign."},
		impact:     analysis.ImpactAssessment{Score: 2, Analysis: "Minor."},
		diagnostic: analysis.Diagnostic{Passed: true, Analysis: "Consistent."},
	}
	return a, &stubHistory{}
}
