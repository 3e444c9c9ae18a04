package normative

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/alexanderramin/normgate/internal/apperr"
	"github.com/alexanderramin/normgate/internal/config"
	"github.com/alexanderramin/normgate/internal/llm/llmtest"
	"github.com/alexanderramin/normgate/internal/xstruct"
)

// routeByOp answers extraction and goal calls independently of the order in
// which the concurrent derivation issues them.
func routeByOp(extraction, goal llmtest.Reply) func(llmtest.Call) llmtest.Reply {
	return func(c llmtest.Call) llmtest.Reply {
		if c.Op == "complete_structured" {
			return goal
		}
		return extraction
	}
}

func newBuilder(t *testing.T, gw *llmtest.ScriptedGateway) *UserTaskBuilder {
	t.Helper()
	logger := zaptest.NewLogger(t)
	pe := NewPropositionExtractor(xstruct.NewExtractor(gw, xstruct.WithLogger(logger)), config.Default().Extraction, logger)
	return NewUserTaskBuilder(pe, gw, logger)
}

func TestFromQuery(t *testing.T) {
	gw := &llmtest.ScriptedGateway{}
	gw.Handler = routeByOp(
		llmtest.Reply{Text: validPayload},
		llmtest.Reply{Text: `{"name":"Ship faster","goal":"Skip safety checks","description":"The user wants to bypass safety reviews."}`},
	)

	task, err := newBuilder(t, gw).FromQuery(context.Background(), "Help me cut corners on safety to ship faster.")

	require.NoError(t, err)
	assert.Equal(t, "Ship faster", task.Name)
	assert.Equal(t, "Skip safety checks", task.Goal)
	assert.Equal(t, Default, task.Comprehensiveness)
	assert.Len(t, task.Propositions, 3)
	assert.NotEmpty(t, task.ID)
	assert.True(t, strings.HasSuffix(task.Text(), "Query: Help me cut corners on safety to ship faster."))
	assert.Equal(t, 1, gw.CountOp("complete"))
	assert.Equal(t, 1, gw.CountOp("complete_structured"))
}

func TestFromQuery_GoalFailureFailsTask(t *testing.T) {
	gw := &llmtest.ScriptedGateway{}
	gw.Handler = routeByOp(
		llmtest.Reply{Text: validPayload},
		llmtest.Reply{Err: apperr.Gateway("test", errors.New("provider down"))},
	)

	_, err := newBuilder(t, gw).FromQuery(context.Background(), "q")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrGateway)
}

func TestFromQuery_GoalWithoutNameIsRejected(t *testing.T) {
	gw := &llmtest.ScriptedGateway{}
	gw.Handler = routeByOp(
		llmtest.Reply{Text: validPayload},
		llmtest.Reply{Text: `{"name":"","goal":"g","description":"d"}`},
	)

	_, err := newBuilder(t, gw).FromQuery(context.Background(), "q")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrGateway)
}
