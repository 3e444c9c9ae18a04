// Package normative models normative propositions and the endeavours that
// bundle them, and maps validated model output onto those types.
package normative

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Operator is the deontic force of a proposition.
type Operator int

const (
	Indifferent Operator = 1
	Ought       Operator = 2
	Required    Operator = 3
)

var operatorNames = map[Operator]string{
	Indifferent: "INDIFFERENT",
	Ought:       "OUGHT",
	Required:    "REQUIRED",
}

func (o Operator) String() string {
	if s, ok := operatorNames[o]; ok {
		return s
	}
	return fmt.Sprintf("Operator(%d)", int(o))
}

// Weight is the operator's ordinal rank.
func (o Operator) Weight() int { return int(o) }

// ParseOperator resolves REQUIRED, OUGHT or INDIFFERENT, ignoring case.
func ParseOperator(s string) (Operator, error) {
	key := normalizeEnum(s)
	for op, name := range operatorNames {
		if name == key {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown operator %q", s)
}

// Level is a norm category. Its value is the category's ordinal authority.
type Level int

const (
	Aesthetic                  Level = 500
	Game                       Level = 1000
	Etiquette                  Level = 1500
	ProfessionalOrganizational Level = 2000
	Economic                   Level = 2250
	CodeOfConduct              Level = 2500
	Community                  Level = 2750
	CulturalReligious          Level = 3000
	Environmental              Level = 3250
	ScientificTechnical        Level = 3500
	SocialPolitical            Level = 4000
	Prudential                 Level = 4500
	Legal                      Level = 5000
	EthicalMoral               Level = 6000
)

var levelNames = map[Level]string{
	EthicalMoral:               "ETHICAL_MORAL",
	Legal:                      "LEGAL",
	Prudential:                 "PRUDENTIAL",
	SocialPolitical:            "SOCIAL_POLITICAL",
	ScientificTechnical:        "SCIENTIFIC_TECHNICAL",
	Environmental:              "ENVIRONMENTAL",
	CulturalReligious:          "CULTURAL_RELIGIOUS",
	Community:                  "COMMUNITY",
	CodeOfConduct:              "CODE_OF_CONDUCT",
	Economic:                   "ECONOMIC",
	ProfessionalOrganizational: "PROFESSIONAL_ORGANIZATIONAL",
	Etiquette:                  "ETIQUETTE",
	Game:                       "GAME",
	Aesthetic:                  "AESTHETIC",
}

var levelAliases = map[string]Level{
	"CULTURAL_RELIGIOUS_EDUCATIONAL": CulturalReligious,
}

func (l Level) String() string {
	if s, ok := levelNames[l]; ok {
		return s
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// Ordinal is the level's authority value.
func (l Level) Ordinal() int { return int(l) }

// ParseLevel resolves a level name. Matching ignores case and treats '/',
// '-' and spaces as '_', so "Social/Political" is SOCIAL_POLITICAL.
func ParseLevel(s string) (Level, error) {
	key := normalizeEnum(s)
	for lvl, name := range levelNames {
		if name == key {
			return lvl, nil
		}
	}
	if lvl, ok := levelAliases[key]; ok {
		return lvl, nil
	}
	return 0, fmt.Errorf("unknown level %q", s)
}

// Levels returns every level from highest to lowest authority.
func Levels() []Level {
	return []Level{
		EthicalMoral, Legal, Prudential, SocialPolitical, ScientificTechnical,
		Environmental, CulturalReligious, Community, CodeOfConduct, Economic,
		ProfessionalOrganizational, Etiquette, Game, Aesthetic,
	}
}

// Modality says whether the proposition is possible at all.
type Modality string

const (
	Possible   Modality = "POSSIBLE"
	Impossible Modality = "IMPOSSIBLE"
)

// ParseModality resolves POSSIBLE or IMPOSSIBLE.
func ParseModality(s string) (Modality, error) {
	switch m := Modality(normalizeEnum(s)); m {
	case Possible, Impossible:
		return m, nil
	}
	return "", fmt.Errorf("unknown modality %q", s)
}

// ModalSubscript qualifies the kind of possibility.
type ModalSubscript string

const (
	Logical     ModalSubscript = "LOGICAL"
	Theoretical ModalSubscript = "THEORETICAL"
	Practical   ModalSubscript = "PRACTICAL"
	NoSubscript ModalSubscript = "NONE"
)

// ParseModalSubscript resolves LOGICAL, THEORETICAL, PRACTICAL or NONE.
func ParseModalSubscript(s string) (ModalSubscript, error) {
	switch m := ModalSubscript(normalizeEnum(s)); m {
	case Logical, Theoretical, Practical, NoSubscript:
		return m, nil
	}
	return "", fmt.Errorf("unknown modal subscript %q", s)
}

func normalizeEnum(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.NewReplacer("/", "_", "-", "_", " ", "_").Replace(s)
}

// Proposition is one extracted normative claim. Values are immutable once
// built by the Mapper.
type Proposition struct {
	ID             string
	Value          string
	Operator       Operator
	Level          Level
	Modality       Modality
	ModalSubscript ModalSubscript
}

// NewProposition returns a proposition with a fresh identifier.
func NewProposition(value string, op Operator, lvl Level, mod Modality, sub ModalSubscript) Proposition {
	return Proposition{
		ID:             uuid.NewString(),
		Value:          value,
		Operator:       op,
		Level:          lvl,
		Modality:       mod,
		ModalSubscript: sub,
	}
}

// Markdown renders the proposition as a bullet list for prompts.
func (p Proposition) Markdown() string {
	var b strings.Builder
	b.WriteString("### Normative Proposition\n\n")
	fmt.Fprintf(&b, "- **UUID**: %s\n", p.ID)
	fmt.Fprintf(&b, "- **Proposition Value**: %s\n", p.Value)
	fmt.Fprintf(&b, "- **Operator**: %s\n", p.Operator)
	fmt.Fprintf(&b, "- **Level**: %s\n", p.Level)
	fmt.Fprintf(&b, "- **Modality**: %s\n", p.Modality)
	fmt.Fprintf(&b, "- **Modal Subscript**: %s\n", p.ModalSubscript)
	return b.String()
}
