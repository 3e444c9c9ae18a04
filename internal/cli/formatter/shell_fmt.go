package formatter

import (
	"fmt"
	"strings"
)

// ShellCommand describes one REPL command for the help screen.
type ShellCommand struct {
	Usage       string
	Description string
}

// ShellCommands is the REPL command reference, in display order.
var ShellCommands = []ShellCommand{
	{":np <text>", "Extract normative propositions"},
	{":uis <text>", "Score the user's intent (1 harmful .. 10 harmless)"},
	{":ias <text>", "Score the potential impact (1 minimal .. 10 maximum)"},
	{":nrp <text>", "Run the full risk gate (default for plain text)"},
	{":help", "Show this help"},
	{":quit", "Leave the shell"},
}

// FormatShellWelcome is the banner shown when the shell starts.
func FormatShellWelcome() string {
	var b strings.Builder
	b.WriteString("\n" + StylePurple.Bold(true).Render("  normgate") + "\n")
	b.WriteString(Dim("  ─────────────────────────────") + "\n\n")
	b.WriteString(Dim("  Type a request to run it through the gate, or :help for commands.") + "\n\n")
	return b.String()
}

// FormatShellHelp renders ShellCommands.
func FormatShellHelp() string {
	var b strings.Builder
	b.WriteString("\n " + StyleHeader.Render("COMMANDS") + "\n")
	for _, c := range ShellCommands {
		b.WriteString(fmt.Sprintf("  %s%s %s\n",
			StyleGreen.Render(c.Usage),
			strings.Repeat(" ", max(1, 14-len(c.Usage))),
			Dim(c.Description)))
	}
	return b.String()
}
