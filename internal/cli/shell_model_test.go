package cli

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/normgate/internal/teatest"
)

func TestParseShellLine(t *testing.T) {
	tests := []struct {
		line    string
		verb    shellVerb
		arg     string
		wantErr bool
	}{
		{"help me sort a list", verbRisk, "help me sort a list", false},
		{":np sort a list", verbPropositions, "sort a list", false},
		{":UIS  kill the process ", verbIntent, "kill the process", false},
		{":ias delete the repo", verbImpact, "delete the repo", false},
		{":nrp do it", verbRisk, "do it", false},
		{":help", verbHelp, "", false},
		{":q", verbQuit, "", false},
		{":np", "", "", true},
		{":bogus x", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			verb, arg, err := parseShellLine(tt.line)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.verb, verb)
			assert.Equal(t, tt.arg, arg)
		})
	}
}

func newTestShell(t *testing.T) (shellModel, *stubAssessments) {
	t.Helper()
	a, h := newStubs()
	m := newShellModel(context.Background(), &App{Assessments: a, History: h},
		filepath.Join(t.TempDir(), "shell_history"))
	return m, a
}

func typeLine(t *testing.T, m shellModel, line string) (shellModel, tea.Cmd) {
	t.Helper()
	m.input.SetValue(line)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(shellModel), cmd
}

func TestShellModel_PlainTextRunsGate(t *testing.T) {
	m, a := newTestShell(t)

	m, cmd := typeLine(t, m, "sort my list")
	require.NotNil(t, cmd)
	assert.True(t, m.busy)
	assert.Equal(t, []string{"sort my list"}, m.history)

	msg := m.work(verbRisk, "sort my list")()
	result, ok := msg.(shellResultMsg)
	require.True(t, ok)
	require.NoError(t, result.err)
	assert.Equal(t, "sort my list", a.lastRequest().Query)

	next, _ := m.Update(result)
	m = next.(shellModel)
	assert.False(t, m.busy)
	assert.Contains(t, m.lastOutput, "ACCEPT AND EXECUTE")
}

func TestShellModel_StageCommands(t *testing.T) {
	m, _ := newTestShell(t)

	res := m.work(verbPropositions, "sort my list")().(shellResultMsg)
	assert.Contains(t, res.output, "Efficiency")

	res = m.work(verbIntent, "x")().(shellResultMsg)
	assert.Contains(t, res.output, "9/10")

	res = m.work(verbImpact, "x")().(shellResultMsg)
	assert.Contains(t, res.output, "2/10")
}

func TestShellModel_ErrorsRenderInline(t *testing.T) {
	m, _ := newTestShell(t)

	m, _ = typeLine(t, m, ":bogus")
	assert.False(t, m.busy)
	assert.Contains(t, m.lastOutput, "unknown command")
}

func TestShellModel_HelpAndQuit(t *testing.T) {
	m, _ := newTestShell(t)

	m, _ = typeLine(t, m, ":help")
	assert.Contains(t, m.lastOutput, "COMMANDS")

	m, cmd := typeLine(t, m, ":quit")
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestShellModel_KeysIgnoredWhileBusy(t *testing.T) {
	m, _ := newTestShell(t)
	m, _ = typeLine(t, m, "sort my list")
	require.True(t, m.busy)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.True(t, next.(shellModel).busy)
}

func TestShellModel_HistoryNavigation(t *testing.T) {
	m, _ := newTestShell(t)
	m.history = []string{"one", "two"}
	m.historyIdx = 2

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(shellModel)
	assert.Equal(t, "two", m.input.Value())

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(shellModel)
	assert.Equal(t, "one", m.input.Value())

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(shellModel)
	assert.Equal(t, "two", m.input.Value())

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(shellModel)
	assert.Empty(t, m.input.Value())
}

func TestShellModel_DrivenSession(t *testing.T) {
	m, a := newTestShell(t)
	d := teatest.New(t, m, teatest.WithSize(100, 30))
	d.DrainInit()

	d.Submit(":np sort my list")
	d.Submit("sort my list")
	d.Submit(":uis sort my list")

	sm := d.Model.(shellModel)
	assert.False(t, sm.busy)
	assert.Contains(t, sm.lastOutput, "9/10")
	assert.Equal(t, []string{":np sort my list", "sort my list", ":uis sort my list"}, sm.history)
	require.Len(t, a.requests, 1)
	assert.Equal(t, "sort my list", a.lastRequest().Query)

	d.Submit(":quit")
	assert.True(t, d.Quitting)
	assert.Contains(t, d.View(), "Goodbye.")
}
