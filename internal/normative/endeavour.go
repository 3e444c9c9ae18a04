package normative

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Comprehensiveness ranks endeavours when their norms conflict.
type Comprehensiveness int

const (
	Low     Comprehensiveness = 1
	Default Comprehensiveness = 2
	High    Comprehensiveness = 3
)

func (c Comprehensiveness) String() string {
	switch c {
	case Low:
		return "LOW"
	case Default:
		return "DEFAULT"
	case High:
		return "HIGH"
	}
	return fmt.Sprintf("Comprehensiveness(%d)", int(c))
}

// ParseComprehensiveness resolves LOW, DEFAULT or HIGH.
func ParseComprehensiveness(s string) (Comprehensiveness, error) {
	switch normalizeEnum(s) {
	case "LOW":
		return Low, nil
	case "DEFAULT":
		return Default, nil
	case "HIGH":
		return High, nil
	}
	return 0, fmt.Errorf("unknown comprehensiveness %q", s)
}

var escalation = map[Comprehensiveness]int{
	Low:     -500,
	Default: 0,
	High:    1000,
}

// EffectiveLevel is the proposition's level ordinal adjusted by the
// comprehensiveness of the endeavour that holds it. It never goes below 0.
func EffectiveLevel(p Proposition, c Comprehensiveness) int {
	v := p.Level.Ordinal() + escalation[c]
	if v < 0 {
		return 0
	}
	return v
}

// Endeavour is a named bundle of propositions.
type Endeavour struct {
	ID                string
	Name              string
	Description       string
	Comprehensiveness Comprehensiveness
	Propositions      []Proposition
}

// NewEndeavour returns an endeavour with a fresh identifier.
func NewEndeavour(name, description string, c Comprehensiveness, props []Proposition) Endeavour {
	return Endeavour{
		ID:                uuid.NewString(),
		Name:              name,
		Description:       description,
		Comprehensiveness: c,
		Propositions:      props,
	}
}

// Markdown renders the endeavour and its propositions as tables. Each
// proposition row carries its effective level so precedence is explicit.
func (e Endeavour) Markdown() string {
	name := e.Name
	if name == "" {
		name = "Unnamed Endeavour"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# Endeavour: %s\n\n", name)
	b.WriteString("| **Property** | **Value** |\n|---|---|\n")
	fmt.Fprintf(&b, "| Name | %s |\n", cell(e.Name))
	fmt.Fprintf(&b, "| Description | %s |\n", cell(e.Description))
	fmt.Fprintf(&b, "| UUID | %s |\n", e.ID)
	fmt.Fprintf(&b, "| Comprehensiveness | %s |\n\n", e.Comprehensiveness)

	fmt.Fprintf(&b, "## Normative Propositions for Endeavour: %s\n\n", name)
	b.WriteString("| **UUID** | **Proposition** | **Operator** | **Level** | **Effective Level** | **Modality** | **Modal Subscript** |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")
	for _, p := range e.Propositions {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %d | %s | %s |\n",
			p.ID, cell(p.Value), p.Operator, p.Level, EffectiveLevel(p, e.Comprehensiveness), p.Modality, p.ModalSubscript)
	}
	return b.String()
}

func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
