package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_IsMatchesKindAndCause(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := New(ErrGateway, "llm.Complete", cause)

	assert.ErrorIs(t, err, ErrGateway)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrMapping)
}

func TestError_AsExposesKey(t *testing.T) {
	err := fmt.Errorf("mapping payload: %w", Mapping("normative.MapPropositions", "implied_propositions[0].operator", errors.New(`unknown operator "MAYBE"`)))

	var appErr *Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "implied_propositions[0].operator", appErr.Key)
	assert.Contains(t, err.Error(), `key "implied_propositions[0].operator"`)
	assert.Contains(t, err.Error(), "MAYBE")
}

func TestGateway_WrapsOnce(t *testing.T) {
	first := Gateway("op1", errors.New("boom"))
	second := Gateway("op2", first)

	assert.Same(t, first, second)
	assert.Nil(t, Gateway("op", nil))

	filtered := New(ErrContentFiltered, "llm.CompleteStructured", nil)
	assert.Same(t, filtered, Gateway("op", filtered))
}

func TestCode(t *testing.T) {
	assert.Equal(t, "", Code(nil))
	assert.Equal(t, "UNKNOWN", Code(errors.New("plain")))
	assert.Equal(t, "CONFIGURATION", Code(Configuration("config.Load", "analysis.max_high", nil)))
	assert.Equal(t, "VALIDATION_EXHAUSTED", Code(New(ErrValidationExhausted, "x", nil)))
	assert.Equal(t, "INTERNAL", Code(New(ErrInternalConsistency, "x", nil)))
	assert.Equal(t, "CONTENT_FILTERED", Code(New(ErrContentFiltered, "x", nil)))
}
