package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/normgate/internal/app"
	"github.com/alexanderramin/normgate/internal/cli/formatter"
)

type shellVerb string

const (
	verbPropositions shellVerb = ":np"
	verbIntent       shellVerb = ":uis"
	verbImpact       shellVerb = ":ias"
	verbRisk         shellVerb = ":nrp"
	verbHelp         shellVerb = ":help"
	verbQuit         shellVerb = ":quit"
)

// parseShellLine splits a REPL line into a verb and its argument. Text
// without a leading colon is a full risk assessment.
func parseShellLine(line string) (shellVerb, string, error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, ":") {
		return verbRisk, line, nil
	}
	head, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch v := shellVerb(strings.ToLower(head)); v {
	case verbHelp, ":h", ":?":
		return verbHelp, "", nil
	case verbQuit, ":q", ":exit":
		return verbQuit, "", nil
	case verbPropositions, verbIntent, verbImpact, verbRisk:
		if rest == "" {
			return "", "", fmt.Errorf("%s needs some text", v)
		}
		return v, rest, nil
	default:
		return "", "", fmt.Errorf("unknown command %q (try :help)", head)
	}
}

// shellResultMsg carries the rendered output of a finished command.
type shellResultMsg struct {
	output string
	err    error
}

// shellModel is the bubbletea model for the interactive shell.
type shellModel struct {
	ctx     context.Context
	app     *App
	input   textinput.Model
	spinner spinner.Model
	width   int

	busy       bool
	lastOutput string

	historyPath string
	history     []string
	historyIdx  int

	quitting bool
}

func newShellModel(ctx context.Context, a *App, historyPath string) shellModel {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.CharLimit = 4000

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple

	hist := loadHistoryFromPath(historyPath)
	return shellModel{
		ctx:         ctx,
		app:         a,
		input:       ti,
		spinner:     sp,
		historyPath: historyPath,
		history:     hist,
		historyIdx:  len(hist),
	}
}

func (m shellModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.Println(formatter.FormatShellWelcome()))
}

func (m shellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - 12
		return m, nil

	case shellResultMsg:
		m.busy = false
		out := msg.output
		if msg.err != nil {
			out = FormatError(msg.err)
		}
		m.lastOutput = out
		return m, tea.Println(out)

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			m.quitting = true
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		return m.updatePrompt(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m shellModel) View() string {
	if m.quitting {
		return formatter.Dim("Goodbye.") + "\n"
	}
	if m.busy {
		return m.spinner.View() + " " + formatter.Dim("assessing...")
	}
	return formatter.StylePurple.Render("normgate") + " " + formatter.Dim("❯") + " " + m.input.View()
}

func (m shellModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		line := strings.TrimSpace(m.input.Value())
		m.input.Reset()
		if line == "" {
			return m, nil
		}
		m.addHistory(line)

		verb, arg, err := parseShellLine(line)
		if err != nil {
			m.lastOutput = FormatError(err)
			return m, tea.Println(m.lastOutput)
		}
		switch verb {
		case verbQuit:
			m.quitting = true
			return m, tea.Quit
		case verbHelp:
			m.lastOutput = formatter.FormatShellHelp()
			return m, tea.Println(m.lastOutput)
		}
		m.busy = true
		return m, tea.Batch(m.spinner.Tick, m.work(verb, arg))

	case tea.KeyUp:
		m.historyUp()
		return m, nil

	case tea.KeyDown:
		m.historyDown()
		return m, nil

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// work runs verb off the update loop and reports back with a shellResultMsg.
func (m shellModel) work(verb shellVerb, arg string) tea.Cmd {
	ctx, a := m.ctx, m.app
	return func() tea.Msg {
		svc := a.Assessments
		switch verb {
		case verbPropositions:
			res, err := svc.Extract(ctx, arg)
			if err != nil {
				return shellResultMsg{err: err}
			}
			return shellResultMsg{output: formatter.FormatPropositions(res)}
		case verbIntent:
			r, err := svc.ScoreIntent(ctx, arg)
			if err != nil {
				return shellResultMsg{err: err}
			}
			return shellResultMsg{output: formatter.FormatIntent(r)}
		case verbImpact:
			r, err := svc.AssessImpact(ctx, arg)
			if err != nil {
				return shellResultMsg{err: err}
			}
			return shellResultMsg{output: formatter.FormatImpact(r)}
		default:
			resp, err := svc.Assess(ctx, app.NewAssessRequest(arg))
			if err != nil {
				return shellResultMsg{err: err}
			}
			return shellResultMsg{output: formatter.FormatAssessment(resp, a.Verbose)}
		}
	}
}

func (m *shellModel) addHistory(line string) {
	m.history = append(m.history, line)
	m.historyIdx = len(m.history)
	appendHistoryToPath(m.historyPath, line)
}

func (m *shellModel) historyUp() {
	if m.historyIdx > 0 {
		m.historyIdx--
		m.input.SetValue(m.history[m.historyIdx])
		m.input.CursorEnd()
	}
}

func (m *shellModel) historyDown() {
	if m.historyIdx < len(m.history)-1 {
		m.historyIdx++
		m.input.SetValue(m.history[m.historyIdx])
		m.input.CursorEnd()
		return
	}
	m.historyIdx = len(m.history)
	m.input.Reset()
}
