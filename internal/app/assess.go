package app

import (
	"time"

	"github.com/alexanderramin/normgate/internal/analysis"
	"github.com/alexanderramin/normgate/internal/normative"
)

type AssessRequest struct {
	Query string
	// ScoreIntent adds a User Intent Score alongside the risk run.
	ScoreIntent bool
	// Record stores a summary in the history database when one is configured.
	Record bool
	Now    *time.Time
}

func NewAssessRequest(query string) AssessRequest {
	return AssessRequest{Query: query, Record: true}
}

type AssessResponse struct {
	ID              string
	Query           string
	TaskName        string
	TaskGoal        string
	TaskDescription string
	Propositions    []normative.Proposition
	Analyses        []analysis.ConflictAnalysis
	Counts          analysis.Counts
	Recommendation  analysis.Recommendation
	Explanation     string
	// Filtered is set when the provider's content filter blocked part of the
	// run. Explanation then carries the filter marker.
	Filtered  bool
	Intent    *analysis.IntentAssessment
	Recorded  bool
	CreatedAt time.Time
}

type HistoryRequest struct {
	Limit int
}

func NewHistoryRequest() HistoryRequest {
	return HistoryRequest{Limit: 20}
}

type AssessErrorCode string

const (
	ErrEmptyQuery AssessErrorCode = "EMPTY_QUERY"
	ErrNoHistory  AssessErrorCode = "HISTORY_DISABLED"
)

type AssessError struct {
	Code    AssessErrorCode
	Message string
}

func (e *AssessError) Error() string {
	return string(e.Code) + ": " + e.Message
}
