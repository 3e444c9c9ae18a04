package normative

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/normgate/internal/apperr"
)

// NormativeAgent holds the assistant's standing endeavours. It is built once
// at startup and shared read-only.
type NormativeAgent struct {
	Highest Endeavour
	System  []Endeavour
}

// NewNormativeAgent maps the highest and system endeavour documents. The
// highest endeavour is the first entry of its document and always has HIGH
// comprehensiveness. Any mapping failure is a configuration error.
func NewNormativeAgent(highestDoc, systemDoc []byte) (*NormativeAgent, error) {
	const op = "normative.NewNormativeAgent"
	var m Mapper

	highest, err := m.MapEndeavours(highestDoc, High)
	if err != nil {
		return nil, apperr.Configuration(op, "endeavours.highest_path", err)
	}
	if len(highest) == 0 {
		return nil, apperr.Configuration(op, "endeavours.highest_path", errors.New("no highest endeavour defined"))
	}
	highest[0].Comprehensiveness = High

	system, err := m.MapEndeavours(systemDoc, Default)
	if err != nil {
		return nil, apperr.Configuration(op, "endeavours.system_path", err)
	}
	return &NormativeAgent{Highest: highest[0], System: system}, nil
}

// LoadEndeavours maps an endeavour document with the strict mapper.
func LoadEndeavours(doc []byte) ([]Endeavour, error) {
	return Mapper{}.MapEndeavours(doc, Default)
}

// HighestMarkdown renders the highest endeavour.
func (a *NormativeAgent) HighestMarkdown() string {
	return a.Highest.Markdown()
}

// SystemMarkdown renders all system endeavours separated by rules.
func (a *NormativeAgent) SystemMarkdown() string {
	parts := make([]string, 0, len(a.System))
	for _, e := range a.System {
		parts = append(parts, e.Markdown())
	}
	return strings.Join(parts, "\n---\n\n")
}

// PropositionCount returns the number of propositions across all endeavours.
func (a *NormativeAgent) PropositionCount() int {
	n := len(a.Highest.Propositions)
	for _, e := range a.System {
		n += len(e.Propositions)
	}
	return n
}

func (a *NormativeAgent) String() string {
	return fmt.Sprintf("NormativeAgent{highest=%q system=%d propositions=%d}",
		a.Highest.Name, len(a.System), a.PropositionCount())
}
