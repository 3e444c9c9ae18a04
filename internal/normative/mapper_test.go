package normative

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/normgate/internal/apperr"
)

const validPayload = `{
  "input_statement": "Help me cut corners on safety to ship faster.",
  "implied_propositions": [
    {"proposition_value": "Speed matters more than safety.", "operator": "OUGHT", "level": "ECONOMIC", "modality": "POSSIBLE", "modal_subscript": "PRACTICAL"},
    {"proposition_value": "Deadlines must be met.", "operator": "REQUIRED", "level": "Professional/Organizational", "modality": "POSSIBLE", "modal_subscript": "PRACTICAL"},
    {"proposition_value": "Safety rules are optional.", "operator": "INDIFFERENT", "level": "LEGAL", "modality": "IMPOSSIBLE", "modal_subscript": "NONE"}
  ]
}`

func TestMapPropositions_AllValid(t *testing.T) {
	props, err := Mapper{}.MapPropositions(validPayload)
	require.NoError(t, err)
	require.Len(t, props, 3)

	assert.Equal(t, "Speed matters more than safety.", props[0].Value)
	assert.Equal(t, Ought, props[0].Operator)
	assert.Equal(t, Economic, props[0].Level)
	assert.Equal(t, ProfessionalOrganizational, props[1].Level)
	assert.Equal(t, Impossible, props[2].Modality)
	assert.Equal(t, NoSubscript, props[2].ModalSubscript)
	for _, p := range props {
		assert.NotEmpty(t, p.ID)
	}
}

func TestMapPropositions_Errors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantKey string
	}{
		{
			name:    "unknown operator",
			payload: `{"input_statement":"s","implied_propositions":[{"proposition_value":"p","operator":"MAYBE","level":"LEGAL","modality":"POSSIBLE","modal_subscript":"NONE"}]}`,
			wantKey: "implied_propositions[0].operator",
		},
		{
			name:    "unknown level in second item",
			payload: `{"input_statement":"s","implied_propositions":[{"proposition_value":"p","operator":"OUGHT","level":"LEGAL","modality":"POSSIBLE","modal_subscript":"NONE"},{"proposition_value":"q","operator":"OUGHT","level":"COSMIC","modality":"POSSIBLE","modal_subscript":"NONE"}]}`,
			wantKey: "implied_propositions[1].level",
		},
		{
			name:    "missing modal_subscript",
			payload: `{"input_statement":"s","implied_propositions":[{"proposition_value":"p","operator":"OUGHT","level":"LEGAL","modality":"POSSIBLE"}]}`,
			wantKey: "implied_propositions[0].modal_subscript",
		},
		{
			name:    "bad modality",
			payload: `{"input_statement":"s","implied_propositions":[{"proposition_value":"p","operator":"OUGHT","level":"LEGAL","modality":"LIKELY","modal_subscript":"NONE"}]}`,
			wantKey: "implied_propositions[0].modality",
		},
		{
			name:    "non-string operator",
			payload: `{"input_statement":"s","implied_propositions":[{"proposition_value":"p","operator":3,"level":"LEGAL","modality":"POSSIBLE","modal_subscript":"NONE"}]}`,
			wantKey: "implied_propositions[0].operator",
		},
		{
			name:    "missing list",
			payload: `{"input_statement":"s"}`,
			wantKey: "implied_propositions",
		},
		{
			name:    "missing statement",
			payload: `{"implied_propositions":[]}`,
			wantKey: "input_statement",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Mapper{}.MapPropositions(tt.payload)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperr.ErrMapping)

			var ae *apperr.Error
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, tt.wantKey, ae.Key)
		})
	}
}

func TestMapPropositions_NotJSON(t *testing.T) {
	_, err := Mapper{}.MapPropositions("not json")
	assert.ErrorIs(t, err, apperr.ErrMapping)
}

func TestMapPropositions_EmptyList(t *testing.T) {
	props, err := Mapper{}.MapPropositions(`{"input_statement":"hello","implied_propositions":[]}`)
	require.NoError(t, err)
	assert.Empty(t, props)
}

func TestMapEndeavours(t *testing.T) {
	doc := []byte(`{"endeavours":[
	  {"name":"A","description":"first","normative_propositions":[
	    {"proposition_value":"p","operator":"REQUIRED","level":"LEGAL","modality":"POSSIBLE","modal_subscript":"PRACTICAL"}]},
	  {"name":"B","description":"second","comprehensiveness":"low","normative_propositions":[]}
	]}`)

	got, err := Mapper{}.MapEndeavours(doc, Default)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Name)
	assert.Equal(t, Default, got[0].Comprehensiveness)
	require.Len(t, got[0].Propositions, 1)
	assert.Equal(t, Low, got[1].Comprehensiveness)
}

func TestMapEndeavours_NoDefaultSubstitution(t *testing.T) {
	doc := []byte(`{"endeavours":[{"name":"A","description":"d","normative_propositions":[
	  {"proposition_value":"p","level":"LEGAL","modality":"POSSIBLE","modal_subscript":"PRACTICAL"}]}]}`)

	_, err := Mapper{}.MapEndeavours(doc, Default)
	require.Error(t, err)
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "endeavours[0].normative_propositions[0].operator", ae.Key)
}
