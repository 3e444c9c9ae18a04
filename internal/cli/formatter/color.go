package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/normgate/internal/analysis"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorOrange = lipgloss.Color("#fe8019")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleOrange = lipgloss.NewStyle().Foreground(ColorOrange)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorOrange).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// RiskStyle colours a risk level from green (Low) to red (Critical).
func RiskStyle(level analysis.RiskLevel) lipgloss.Style {
	switch level {
	case analysis.RiskCritical:
		return StyleRed
	case analysis.RiskHigh:
		return StyleOrange
	case analysis.RiskModerate:
		return StyleYellow
	case analysis.RiskLow:
		return StyleGreen
	default:
		return StyleDim
	}
}

// RiskIndicator renders a level as "● Critical".
func RiskIndicator(level analysis.RiskLevel) string {
	if level == "" {
		return StyleDim.Render("● unknown")
	}
	return RiskStyle(level).Render("● " + string(level))
}

// RecommendationBadge renders the verdict in its colour.
func RecommendationBadge(rec analysis.Recommendation) string {
	label := strings.ToUpper(rec.Label())
	switch rec {
	case analysis.Reject:
		return StyleRed.Bold(true).Render("✗ " + label)
	case analysis.SuggestModification:
		return StyleYellow.Bold(true).Render("~ " + label)
	case analysis.AcceptAndExecute:
		return StyleGreen.Bold(true).Render("✓ " + label)
	}
	return StyleDim.Render(label)
}

// Header renders an upper-cased section title with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string { return StyleDim.Render(text) }

func Bold(text string) string { return StyleBold.Render(text) }
