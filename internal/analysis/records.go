// Package analysis scores user tasks against the assistant's endeavours and
// turns the scores into a recommendation.
package analysis

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/normgate/internal/normative"
)

// RiskLevel is the categorical outcome of scoring one proposition.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
	RiskCritical RiskLevel = "Critical"
)

func (l RiskLevel) valid() bool {
	switch l {
	case RiskLow, RiskModerate, RiskHigh, RiskCritical:
		return true
	}
	return false
}

// ConflictAnalysis is the scoring record for one user proposition. The risk
// level is the model's own verdict; it is counted, never recomputed from the
// numeric fields.
type ConflictAnalysis struct {
	UserNormPropValue  string    `json:"user_norm_prop_value"`
	Likelihood         int       `json:"likelihood"`
	ImpactScore        int       `json:"impact_score"`
	NormAlignmentScore int       `json:"norm_alignment_score"`
	ContextMultiplier  float64   `json:"context_multiplier"`
	RiskScore          float64   `json:"risk_score"`
	RiskLevel          RiskLevel `json:"risk_level"`
	Analysis           string    `json:"analysis"`

	// Source is the proposition that was scored.
	Source normative.Proposition `json:"-"`
}

// Validate implements llm.Validator.
func (c ConflictAnalysis) Validate() error {
	switch {
	case !c.RiskLevel.valid():
		return fmt.Errorf("risk_level %q is not one of Low, Moderate, High, Critical", c.RiskLevel)
	case c.Likelihood < 1 || c.Likelihood > 10:
		return fmt.Errorf("likelihood %d out of range 1..10", c.Likelihood)
	case c.ImpactScore < 1 || c.ImpactScore > 10:
		return fmt.Errorf("impact_score %d out of range 1..10", c.ImpactScore)
	case c.NormAlignmentScore < -10 || c.NormAlignmentScore > 10:
		return fmt.Errorf("norm_alignment_score %d out of range -10..10", c.NormAlignmentScore)
	}
	return nil
}

// Markdown renders the record for the explanation prompt.
func (c ConflictAnalysis) Markdown() string {
	var b strings.Builder
	b.WriteString("## Analysis\n")
	fmt.Fprintf(&b, "- **UserNormPropValue**: %s\n", c.UserNormPropValue)
	fmt.Fprintf(&b, "- **Likelihood**: %d\n", c.Likelihood)
	fmt.Fprintf(&b, "- **ImpactScore**: %d\n", c.ImpactScore)
	fmt.Fprintf(&b, "- **NormAlignmentScore**: %d\n", c.NormAlignmentScore)
	fmt.Fprintf(&b, "- **ContextMultiplier**: %g\n", c.ContextMultiplier)
	fmt.Fprintf(&b, "- **RiskScore**: %g\n", c.RiskScore)
	fmt.Fprintf(&b, "- **RiskLevel**: %s\n", c.RiskLevel)
	fmt.Fprintf(&b, "- **Analysis**: %s\n", c.Analysis)
	return b.String()
}

// AnalysesMarkdown renders a batch of records.
func AnalysesMarkdown(analyses []ConflictAnalysis) string {
	var b strings.Builder
	b.WriteString("# Normative Conflict Analysis Results\n")
	for _, a := range analyses {
		b.WriteString(a.Markdown())
		b.WriteString("\n")
	}
	return b.String()
}

// Counts tallies risk levels across a run.
type Counts struct {
	Low      int
	Moderate int
	High     int
	Critical int
}

// Total is the number of counted analyses.
func (c Counts) Total() int { return c.Low + c.Moderate + c.High + c.Critical }

func countLevels(analyses []ConflictAnalysis) Counts {
	var c Counts
	for _, a := range analyses {
		switch a.RiskLevel {
		case RiskLow:
			c.Low++
		case RiskModerate:
			c.Moderate++
		case RiskHigh:
			c.High++
		case RiskCritical:
			c.Critical++
		}
	}
	return c
}

// Recommendation is the engine's verdict on a task.
type Recommendation string

const (
	Reject              Recommendation = "REJECT"
	SuggestModification Recommendation = "SUGGEST_MODIFICATION"
	AcceptAndExecute    Recommendation = "ACCEPT_AND_EXECUTE"
)

// Label is the human-readable form.
func (r Recommendation) Label() string {
	switch r {
	case Reject:
		return "Reject"
	case SuggestModification:
		return "Suggest Modification"
	case AcceptAndExecute:
		return "Accept and Execute"
	}
	return string(r)
}

// AcceptableToProcess is the fixed explanation for ACCEPT_AND_EXECUTE.
const AcceptableToProcess = "The user task is acceptable to process."

// IntentAssessment is a User Intent Score (1 likely harmful .. 10 likely
// harmless) with the model's reasoning.
type IntentAssessment struct {
	Score    int    `json:"user_intent_score"`
	Analysis string `json:"analysis"`
}

// Validate implements llm.Validator.
func (a IntentAssessment) Validate() error {
	if a.Score < 1 || a.Score > 10 {
		return fmt.Errorf("user_intent_score %d out of range 1..10", a.Score)
	}
	return nil
}

// Band classifies the score.
func (a IntentAssessment) Band() string {
	switch {
	case a.Score <= 3:
		return "Likely harmful"
	case a.Score <= 6:
		return "Ambiguous"
	default:
		return "Likely harmless"
	}
}

// ImpactAssessment is an Impact Assessment Score (1 minimal .. 10 maximum).
type ImpactAssessment struct {
	Score    int    `json:"impact_assessment_score"`
	Analysis string `json:"analysis"`
}

// Validate implements llm.Validator.
func (a ImpactAssessment) Validate() error {
	if a.Score < 1 || a.Score > 10 {
		return fmt.Errorf("impact_assessment_score %d out of range 1..10", a.Score)
	}
	return nil
}

// Diagnostic is the outcome of the endeavour consistency self-check.
type Diagnostic struct {
	Passed   bool   `json:"passed_diagnostic"`
	Analysis string `json:"analysis"`
}
