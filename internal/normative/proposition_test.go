package normative

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"ETHICAL_MORAL", EthicalMoral},
		{"ethical_moral", EthicalMoral},
		{"Social/Political", SocialPolitical},
		{"scientific-technical", ScientificTechnical},
		{"Code of Conduct", CodeOfConduct},
		{"CULTURAL_RELIGIOUS_EDUCATIONAL", CulturalReligious},
		{"  aesthetic ", Aesthetic},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLevel("COSMIC")
	assert.Error(t, err)
	_, err = ParseLevel("")
	assert.Error(t, err)
}

func TestLevelOrdinals(t *testing.T) {
	assert.Equal(t, 6000, EthicalMoral.Ordinal())
	assert.Equal(t, 500, Aesthetic.Ordinal())
	assert.Greater(t, Economic.Ordinal(), ProfessionalOrganizational.Ordinal())

	levels := Levels()
	require.Len(t, levels, 14)
	for i := 1; i < len(levels); i++ {
		assert.Greater(t, levels[i-1].Ordinal(), levels[i].Ordinal(), "Levels is ordered by authority")
	}
}

func TestParseOperator(t *testing.T) {
	op, err := ParseOperator("required")
	require.NoError(t, err)
	assert.Equal(t, Required, op)
	assert.Equal(t, 3, op.Weight())
	assert.Equal(t, "OUGHT", Ought.String())

	_, err = ParseOperator("MAYBE")
	assert.Error(t, err)
}

func TestParseModalities(t *testing.T) {
	m, err := ParseModality("possible")
	require.NoError(t, err)
	assert.Equal(t, Possible, m)
	_, err = ParseModality("PROBABLE")
	assert.Error(t, err)

	s, err := ParseModalSubscript("none")
	require.NoError(t, err)
	assert.Equal(t, NoSubscript, s)
	_, err = ParseModalSubscript("EMPIRICAL")
	assert.Error(t, err)
}

func TestEffectiveLevel(t *testing.T) {
	p := NewProposition("x", Ought, Etiquette, Possible, Practical)
	assert.Equal(t, 2500, EffectiveLevel(p, High))
	assert.Equal(t, 1500, EffectiveLevel(p, Default))
	assert.Equal(t, 1000, EffectiveLevel(p, Low))

	low := NewProposition("y", Ought, Aesthetic, Possible, Practical)
	assert.Equal(t, 0, EffectiveLevel(low, Low))
}

func TestNewProposition_UniqueIDs(t *testing.T) {
	a := NewProposition("x", Ought, Game, Possible, Practical)
	b := NewProposition("x", Ought, Game, Possible, Practical)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestMarkdown(t *testing.T) {
	p := NewProposition("Be kind | always", Required, EthicalMoral, Possible, Practical)
	md := p.Markdown()
	assert.Contains(t, md, "- **Operator**: REQUIRED")
	assert.Contains(t, md, "- **Level**: ETHICAL_MORAL")

	e := NewEndeavour("Kindness", "Be kind", High, []Proposition{p})
	emd := e.Markdown()
	assert.Contains(t, emd, "# Endeavour: Kindness")
	assert.Contains(t, emd, "| Comprehensiveness | HIGH |")
	assert.Contains(t, emd, `Be kind \| always`)
	assert.Contains(t, emd, "| 7000 |")
}
