package analysis

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/normgate/internal/config"
	"github.com/alexanderramin/normgate/internal/normative"
)

func testAgent(t *testing.T) *normative.NormativeAgent {
	t.Helper()
	highest, err := config.DefaultDocument("highest_endeavour.json")
	require.NoError(t, err)
	system, err := config.DefaultDocument("system_endeavours.json")
	require.NoError(t, err)
	agent, err := normative.NewNormativeAgent(highest, system)
	require.NoError(t, err)
	return agent
}

func testPolicy() config.Analysis {
	return config.Analysis{
		MaxCritical:      1,
		MaxHigh:          2,
		MaxModerate:      3,
		RejectionMessage: "I cannot help with that.",
	}
}

func endeavourOf(values ...string) normative.Endeavour {
	props := make([]normative.Proposition, 0, len(values))
	for _, v := range values {
		props = append(props, normative.NewProposition(v, normative.Ought, normative.SocialPolitical,
			normative.Possible, normative.Practical))
	}
	return normative.NewEndeavour("task", "test task", normative.Default, props)
}

// levelScorer assigns each proposition the level mapped to its value.
type levelScorer struct {
	levels map[string]RiskLevel
	fail   map[string]error
	calls  atomic.Int32

	mu       sync.Mutex
	inFlight int
	peak     int
	gate     chan struct{}
}

func (s *levelScorer) Score(ctx context.Context, p normative.Proposition, _ *normative.NormativeAgent) (ConflictAnalysis, error) {
	s.calls.Add(1)
	s.mu.Lock()
	s.inFlight++
	if s.inFlight > s.peak {
		s.peak = s.inFlight
	}
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.inFlight--
		s.mu.Unlock()
	}()

	if s.gate != nil {
		select {
		case <-s.gate:
		case <-ctx.Done():
			return ConflictAnalysis{}, ctx.Err()
		}
	}
	if err, ok := s.fail[p.Value]; ok {
		return ConflictAnalysis{}, err
	}
	lvl, ok := s.levels[p.Value]
	if !ok {
		return ConflictAnalysis{}, errors.New("unscripted proposition " + p.Value)
	}
	return ConflictAnalysis{
		UserNormPropValue: p.Value,
		Likelihood:        5,
		ImpactScore:       5,
		RiskLevel:         lvl,
		Analysis:          "scored " + p.Value,
	}, nil
}
