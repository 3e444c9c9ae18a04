package app

import (
	"context"

	"github.com/alexanderramin/normgate/internal/analysis"
	"github.com/alexanderramin/normgate/internal/normative"
	"github.com/alexanderramin/normgate/internal/repository"
)

type AssessUseCase interface {
	Assess(ctx context.Context, req AssessRequest) (*AssessResponse, error)
}

type ExtractUseCase interface {
	Extract(ctx context.Context, query string) (*normative.AnalysisResult, error)
}

type IntentUseCase interface {
	ScoreIntent(ctx context.Context, query string) (analysis.IntentAssessment, error)
}

type ImpactUseCase interface {
	AssessImpact(ctx context.Context, query string) (analysis.ImpactAssessment, error)
}

type DiagnoseUseCase interface {
	Diagnose(ctx context.Context) (analysis.Diagnostic, error)
}

type HistoryUseCase interface {
	ListHistory(ctx context.Context, req HistoryRequest) ([]*repository.AssessmentRecord, error)
	GetAssessment(ctx context.Context, id string) (*repository.AssessmentRecord, error)
	DeleteAssessment(ctx context.Context, id string) error
}
