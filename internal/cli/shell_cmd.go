package cli

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newShellCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive shell for screening requests",
		Long: `Start an interactive session. Plain text runs the full risk gate; colon
commands (:np, :uis, :ias, :nrp) run individual stages.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := state.load(cmd.Context())
			if err != nil {
				return err
			}
			return runShell(cmd.Context(), app, cmd.OutOrStdout())
		},
	}
}

func runShell(ctx context.Context, app *App, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	m := newShellModel(ctx, app, shellHistoryPath())
	_, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithOutput(out)).Run()
	return err
}
