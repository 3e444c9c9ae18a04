package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/normgate/internal/repository"
)

// AssessmentOption customises NewTestAssessment.
type AssessmentOption func(*repository.AssessmentRecord)

func WithRecommendation(rec string) AssessmentOption {
	return func(a *repository.AssessmentRecord) { a.Recommendation = rec }
}

func WithCreatedAt(t time.Time) AssessmentOption {
	return func(a *repository.AssessmentRecord) { a.CreatedAt = t }
}

func WithIntentScore(score int) AssessmentOption {
	return func(a *repository.AssessmentRecord) { a.IntentScore = &score }
}

// WithFindings appends findings and updates the level counts to match.
func WithFindings(findings ...repository.Finding) AssessmentOption {
	return func(a *repository.AssessmentRecord) {
		for _, f := range findings {
			a.Findings = append(a.Findings, f)
			switch f.RiskLevel {
			case "Low":
				a.Low++
			case "Moderate":
				a.Moderate++
			case "High":
				a.High++
			case "Critical":
				a.Critical++
			}
		}
	}
}

// NewTestAssessment returns an accepted run for query.
func NewTestAssessment(query string, opts ...AssessmentOption) *repository.AssessmentRecord {
	a := &repository.AssessmentRecord{
		ID:             uuid.NewString(),
		Query:          query,
		TaskName:       "Task for " + query,
		TaskGoal:       "Answer: " + query,
		Recommendation: "ACCEPT_AND_EXECUTE",
		Explanation:    "The user task is acceptable to process.",
		CreatedAt:      time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}
