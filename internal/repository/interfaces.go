package repository

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// Finding is one scored proposition of a stored assessment.
type Finding struct {
	PropositionValue string
	RiskLevel        string
	RiskScore        float64
	Analysis         string
}

// AssessmentRecord summarises one assess run. Raw model output beyond the
// per-proposition findings is not kept.
type AssessmentRecord struct {
	ID             string
	Query          string
	TaskName       string
	TaskGoal       string
	Recommendation string
	Low            int
	Moderate       int
	High           int
	Critical       int
	Explanation    string
	// IntentScore is set when the run also scored user intent.
	IntentScore *int
	Findings    []Finding
	CreatedAt   time.Time
}

type AssessmentRepo interface {
	Create(ctx context.Context, a *AssessmentRecord) error
	GetByID(ctx context.Context, id string) (*AssessmentRecord, error)
	// ListRecent returns newest first without findings. limit <= 0 lists all.
	ListRecent(ctx context.Context, limit int) ([]*AssessmentRecord, error)
	Delete(ctx context.Context, id string) error
}
