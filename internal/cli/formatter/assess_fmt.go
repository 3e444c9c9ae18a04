package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/normgate/internal/analysis"
	"github.com/alexanderramin/normgate/internal/app"
	"github.com/alexanderramin/normgate/internal/llm"
	"github.com/alexanderramin/normgate/internal/normative"
	"github.com/alexanderramin/normgate/internal/repository"
)

const cellWidth = 60

// FormatAssessment renders an assess run. verbose adds the per-proposition
// analyses.
func FormatAssessment(resp *app.AssessResponse, verbose bool) string {
	var b strings.Builder

	b.WriteString("\n" + Header("Assessment") + "\n")
	fmt.Fprintf(&b, "  %s %s\n", Dim("Task:"), Bold(resp.TaskName))
	if resp.TaskGoal != "" {
		fmt.Fprintf(&b, "  %s %s\n", Dim("Goal:"), resp.TaskGoal)
	}
	fmt.Fprintf(&b, "  %s %s\n", Dim("Verdict:"), RecommendationBadge(resp.Recommendation))
	if resp.Intent != nil {
		fmt.Fprintf(&b, "  %s %d (%s)\n", Dim("Intent:"), resp.Intent.Score, resp.Intent.Band())
	}
	b.WriteString("\n")

	if len(resp.Analyses) > 0 {
		b.WriteString(formatAnalyses(resp.Analyses))
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %s\n\n", formatCounts(resp.Counts))
	} else if !resp.Filtered {
		b.WriteString("  " + Dim("No normative propositions were found in the request.") + "\n\n")
	}

	if verbose {
		for _, a := range resp.Analyses {
			fmt.Fprintf(&b, "  %s %s\n", RiskIndicator(a.RiskLevel), Bold(a.Source.Value))
			for _, line := range strings.Split(strings.TrimSpace(a.Analysis), "\n") {
				b.WriteString("    " + Dim(line) + "\n")
			}
			b.WriteString("\n")
		}
	}

	if resp.Filtered {
		b.WriteString(FormatFiltered() + "\n")
	} else {
		b.WriteString(RenderBox("Explanation", resp.Explanation) + "\n")
	}
	if resp.Recorded {
		b.WriteString("  " + Dim("Saved as "+resp.ID) + "\n")
	}
	return b.String()
}

func formatAnalyses(analyses []analysis.ConflictAnalysis) string {
	rows := make([][]string, 0, len(analyses))
	for _, a := range analyses {
		rows = append(rows, []string{
			a.Source.Value,
			RiskIndicator(a.RiskLevel),
			strconv.FormatFloat(a.RiskScore, 'f', -1, 64),
			strconv.Itoa(a.NormAlignmentScore),
		})
	}
	return indent(RenderTable([]string{"PROPOSITION", "RISK", "SCORE", "ALIGNMENT"}, rows, cellWidth))
}

func formatCounts(c analysis.Counts) string {
	return strings.Join([]string{
		RiskStyle(analysis.RiskCritical).Render(fmt.Sprintf("%d critical", c.Critical)),
		RiskStyle(analysis.RiskHigh).Render(fmt.Sprintf("%d high", c.High)),
		RiskStyle(analysis.RiskModerate).Render(fmt.Sprintf("%d moderate", c.Moderate)),
		RiskStyle(analysis.RiskLow).Render(fmt.Sprintf("%d low", c.Low)),
	}, Dim(" · "))
}

// FormatFiltered is shown when the provider's content filter blocked a call.
func FormatFiltered() string {
	return StyleRed.Render("  "+llm.FilteredMarker) + "\n" +
		"  " + Dim("The model provider's content filter blocked this request.")
}

// FormatPropositions renders an extraction result.
func FormatPropositions(res *normative.AnalysisResult) string {
	var b strings.Builder
	b.WriteString("\n" + Header("Normative propositions") + "\n")
	if res.InputStatement != "" {
		fmt.Fprintf(&b, "  %s %s\n", Dim("Statement:"), res.InputStatement)
	}
	b.WriteString("\n")
	if len(res.Propositions) == 0 {
		b.WriteString("  " + Dim("None found.") + "\n")
		return b.String()
	}
	rows := make([][]string, 0, len(res.Propositions))
	for _, p := range res.Propositions {
		rows = append(rows, []string{
			p.Value,
			p.Operator.String(),
			p.Level.String(),
			string(p.Modality),
			string(p.ModalSubscript),
		})
	}
	b.WriteString(indent(RenderTable([]string{"VALUE", "OPERATOR", "LEVEL", "MODALITY", "SUBSCRIPT"}, rows, cellWidth)))
	return b.String()
}

// FormatIntent renders a User Intent Score.
func FormatIntent(a analysis.IntentAssessment) string {
	style := StyleGreen
	switch {
	case a.Score <= 3:
		style = StyleRed
	case a.Score <= 6:
		style = StyleYellow
	}
	return fmt.Sprintf("\n%s\n  %s %s\n\n%s\n",
		Header("User intent score"),
		style.Bold(true).Render(fmt.Sprintf("%d/10", a.Score)),
		Dim(a.Band()),
		RenderBox("", a.Analysis))
}

// FormatImpact renders an Impact Assessment Score.
func FormatImpact(a analysis.ImpactAssessment) string {
	style := StyleGreen
	switch {
	case a.Score >= 8:
		style = StyleRed
	case a.Score >= 5:
		style = StyleYellow
	}
	return fmt.Sprintf("\n%s\n  %s\n\n%s\n",
		Header("Impact assessment score"),
		style.Bold(true).Render(fmt.Sprintf("%d/10", a.Score)),
		RenderBox("", a.Analysis))
}

// FormatDiagnostic renders the self-check verdict.
func FormatDiagnostic(d analysis.Diagnostic) string {
	verdict := StyleGreen.Bold(true).Render("✓ PASSED")
	if !d.Passed {
		verdict = StyleRed.Bold(true).Render("✗ FAILED")
	}
	return fmt.Sprintf("\n%s\n  %s\n\n%s\n", Header("Self diagnostic"), verdict, RenderBox("", d.Analysis))
}

// FormatHistory lists stored assessments, newest first.
func FormatHistory(records []*repository.AssessmentRecord) string {
	if len(records) == 0 {
		return "\n  " + Dim("No assessments recorded yet.") + "\n"
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			RecommendationBadge(analysis.Recommendation(r.Recommendation)),
			fmt.Sprintf("%d/%d/%d/%d", r.Critical, r.High, r.Moderate, r.Low),
			r.Query,
			shortID(r.ID),
		})
	}
	return "\n" + Header("History") + "\n" +
		indent(RenderTable([]string{"WHEN", "VERDICT", "C/H/M/L", "QUERY", "ID"}, rows, cellWidth))
}

// FormatRecord renders one stored assessment with its findings.
func FormatRecord(r *repository.AssessmentRecord) string {
	var b strings.Builder
	b.WriteString("\n" + Header("Assessment "+shortID(r.ID)) + "\n")
	fmt.Fprintf(&b, "  %s %s\n", Dim("Query:"), r.Query)
	fmt.Fprintf(&b, "  %s %s\n", Dim("Task:"), r.TaskName)
	fmt.Fprintf(&b, "  %s %s\n", Dim("Verdict:"), RecommendationBadge(analysis.Recommendation(r.Recommendation)))
	if r.IntentScore != nil {
		fmt.Fprintf(&b, "  %s %d\n", Dim("Intent:"), *r.IntentScore)
	}
	b.WriteString("\n")
	if len(r.Findings) > 0 {
		rows := make([][]string, 0, len(r.Findings))
		for _, f := range r.Findings {
			rows = append(rows, []string{
				f.PropositionValue,
				RiskIndicator(analysis.RiskLevel(f.RiskLevel)),
				strconv.FormatFloat(f.RiskScore, 'f', -1, 64),
			})
		}
		b.WriteString(indent(RenderTable([]string{"PROPOSITION", "RISK", "SCORE"}, rows, cellWidth)))
		b.WriteString("\n")
	}
	b.WriteString(RenderBox("Explanation", r.Explanation) + "\n")
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n") + "\n"
}
