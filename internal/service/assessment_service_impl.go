package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/normgate/internal/analysis"
	"github.com/alexanderramin/normgate/internal/app"
	"github.com/alexanderramin/normgate/internal/apperr"
	"github.com/alexanderramin/normgate/internal/config"
	"github.com/alexanderramin/normgate/internal/db"
	"github.com/alexanderramin/normgate/internal/llm"
	"github.com/alexanderramin/normgate/internal/normative"
	"github.com/alexanderramin/normgate/internal/repository"
)

// PropositionAnalyser extracts the propositions implied by a query.
type PropositionAnalyser interface {
	normative.PropositionSource
	Analyse(ctx context.Context, query string) (*normative.AnalysisResult, error)
}

// AssessmentDeps wires the assessment pipeline. UoW may be nil, in which
// case nothing is recorded.
type AssessmentDeps struct {
	Gateway    llm.Gateway
	Agent      *normative.NormativeAgent
	Extractor  PropositionAnalyser
	Scorer     analysis.ConflictScorer
	Intent     *analysis.UserIntent
	Impact     *analysis.ImpactAssessor
	Diagnostic *analysis.SelfDiagnostic
	Policy     config.Analysis
	UoW        db.UnitOfWork
	Logger     *zap.Logger
}

type assessmentService struct {
	deps     AssessmentDeps
	tasks    *normative.UserTaskBuilder
	logger   *zap.Logger
	observer UseCaseObserver
}

func NewAssessmentService(deps AssessmentDeps, observers ...UseCaseObserver) AssessmentService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &assessmentService{
		deps:     deps,
		tasks:    normative.NewUserTaskBuilder(deps.Extractor, deps.Gateway, logger),
		logger:   logger,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *assessmentService) Assess(ctx context.Context, req app.AssessRequest) (resp *app.AssessResponse, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "assess", fields, &err)()

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, &app.AssessError{Code: app.ErrEmptyQuery, Message: "query must not be empty"}
	}
	now := time.Now().UTC()
	if req.Now != nil {
		now = *req.Now
	}
	resp = &app.AssessResponse{ID: uuid.NewString(), Query: query, CreatedAt: now}
	fields["assessment_id"] = resp.ID

	err = s.run(ctx, req, resp)
	if errors.Is(err, apperr.ErrContentFiltered) {
		s.logger.Warn("provider filtered the assessment", zap.String("assessment_id", resp.ID), zap.Error(err))
		resp.Filtered = true
		resp.Recommendation = analysis.Reject
		resp.Explanation = llm.FilteredMarker
		err = nil
	}
	if err != nil {
		return nil, err
	}
	fields["recommendation"] = string(resp.Recommendation)
	fields["filtered"] = resp.Filtered

	if req.Record && s.deps.UoW != nil {
		if recErr := s.record(ctx, resp); recErr != nil {
			// The verdict stands even if history could not be written.
			s.logger.Error("recording assessment failed", zap.String("assessment_id", resp.ID), zap.Error(recErr))
		} else {
			resp.Recorded = true
		}
	}
	return resp, nil
}

func (s *assessmentService) run(ctx context.Context, req app.AssessRequest, resp *app.AssessResponse) error {
	task, err := s.tasks.FromQuery(ctx, resp.Query)
	if err != nil {
		return err
	}
	resp.TaskName = task.Name
	resp.TaskGoal = task.Goal
	resp.TaskDescription = task.Description
	resp.Propositions = task.Propositions

	risk := analysis.NewRiskAnalysis(s.deps.Scorer, s.deps.Gateway, s.deps.Policy, s.logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := risk.Analyse(gctx, task.Endeavour, s.deps.Agent)
		return err
	})
	if req.ScoreIntent && s.deps.Intent != nil {
		g.Go(func() error {
			intent, err := s.deps.Intent.Score(gctx, task.Text())
			if err != nil {
				return err
			}
			resp.Intent = &intent
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	resp.Analyses = risk.Analyses()
	resp.Counts = risk.Counts()
	resp.Recommendation, err = risk.RecommendAction()
	if err != nil {
		return err
	}
	resp.Explanation, err = risk.Explain(ctx)
	if err != nil {
		return err
	}
	if resp.Explanation == llm.FilteredMarker {
		resp.Filtered = true
	}
	return nil
}

func (s *assessmentService) record(ctx context.Context, resp *app.AssessResponse) error {
	rec := &repository.AssessmentRecord{
		ID:             resp.ID,
		Query:          resp.Query,
		TaskName:       resp.TaskName,
		TaskGoal:       resp.TaskGoal,
		Recommendation: string(resp.Recommendation),
		Low:            resp.Counts.Low,
		Moderate:       resp.Counts.Moderate,
		High:           resp.Counts.High,
		Critical:       resp.Counts.Critical,
		Explanation:    resp.Explanation,
		CreatedAt:      resp.CreatedAt,
	}
	if resp.Intent != nil {
		score := resp.Intent.Score
		rec.IntentScore = &score
	}
	for _, a := range resp.Analyses {
		rec.Findings = append(rec.Findings, repository.Finding{
			PropositionValue: a.Source.Value,
			RiskLevel:        string(a.RiskLevel),
			RiskScore:        a.RiskScore,
			Analysis:         a.Analysis,
		})
	}
	return s.deps.UoW.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteAssessmentRepo(tx).Create(ctx, rec)
	})
}

func (s *assessmentService) Extract(ctx context.Context, query string) (res *normative.AnalysisResult, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "extract", fields, &err)()

	res, err = s.deps.Extractor.Analyse(ctx, query)
	if err != nil {
		return nil, err
	}
	fields["propositions"] = len(res.Propositions)
	return res, nil
}

func (s *assessmentService) ScoreIntent(ctx context.Context, query string) (out analysis.IntentAssessment, err error) {
	defer observe(ctx, s.observer, "intent", nil, &err)()
	return s.deps.Intent.Score(ctx, query)
}

func (s *assessmentService) AssessImpact(ctx context.Context, query string) (out analysis.ImpactAssessment, err error) {
	defer observe(ctx, s.observer, "impact", nil, &err)()
	return s.deps.Impact.Assess(ctx, query)
}

func (s *assessmentService) Diagnose(ctx context.Context) (out analysis.Diagnostic, err error) {
	defer observe(ctx, s.observer, "diagnose", nil, &err)()
	return s.deps.Diagnostic.Run(ctx, s.deps.Agent)
}
