package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alexanderramin/normgate/internal/apperr"
	"github.com/alexanderramin/normgate/internal/cli/formatter"
	"github.com/alexanderramin/normgate/internal/service"
)

// App holds the services CLI commands call.
type App struct {
	Assessments service.AssessmentService
	History     service.HistoryService

	// Verbose adds per-proposition analyses to assess output.
	Verbose bool
	// IsInteractive reports whether stdin is a terminal; the bare root
	// command opens the shell only when it is.
	IsInteractive func() bool
}

// Options are the global flags, resolved before the App is built.
type Options struct {
	ConfigPath string
	Verbose    bool
	SelfCheck  bool
}

// Builder wires an App from the global flags. The returned func releases
// whatever the App holds open.
type Builder func(ctx context.Context, opts Options) (*App, func(), error)

type rootState struct {
	build   Builder
	opts    Options
	app     *App
	cleanup func()
}

// load builds the App once per process and runs the optional self-check.
func (s *rootState) load(ctx context.Context) (*App, error) {
	if s.app != nil {
		return s.app, nil
	}
	app, cleanup, err := s.build(ctx, s.opts)
	if err != nil {
		return nil, err
	}
	s.app, s.cleanup = app, cleanup
	app.Verbose = s.opts.Verbose

	if s.opts.SelfCheck {
		d, err := app.Assessments.Diagnose(ctx)
		if err == nil && !d.Passed {
			err = fmt.Errorf("self-check failed: %s", strings.TrimSpace(d.Analysis))
		} else if err != nil {
			err = fmt.Errorf("self-check: %w", err)
		}
		if err != nil {
			s.close()
			s.app = nil
			return nil, err
		}
	}
	return app, nil
}

func (s *rootState) close() {
	if s.cleanup != nil {
		s.cleanup()
		s.cleanup = nil
	}
}

// NewRootCmd creates the "normgate" command tree.
func NewRootCmd(build Builder) *cobra.Command {
	state := &rootState{build: build}

	root := &cobra.Command{
		Use:   "normgate",
		Short: "Screen user requests for normative risk before an assistant acts on them",
		Long: `normgate extracts the normative propositions implied by a request, scores each
one against the assistant's own endeavours, and recommends whether to reject,
modify, or accept the task.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := state.load(cmd.Context())
			if err != nil {
				return err
			}
			if app.IsInteractive != nil && app.IsInteractive() {
				return runShell(cmd.Context(), app, cmd.OutOrStdout())
			}
			return cmd.Help()
		},
		PersistentPostRun: func(*cobra.Command, []string) { state.close() },
	}

	bindGlobalFlags(root.PersistentFlags(), &state.opts)

	root.AddCommand(
		newExtractCmd(state),
		newAssessCmd(state),
		newIntentCmd(state),
		newImpactCmd(state),
		newDiagnoseCmd(state),
		newHistoryCmd(state),
		newShellCmd(state),
	)
	return root
}

func bindGlobalFlags(flags *pflag.FlagSet, opts *Options) {
	flags.StringVar(&opts.ConfigPath, "config", "", "Path to a YAML config file (default $NORMGATE_CONFIG)")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "Debug logging and detailed output")
	flags.BoolVar(&opts.SelfCheck, "self-check", false, "Run the endeavour self-diagnostic before the command")
}

// FormatError renders err for the terminal, prefixed with its taxonomy code.
func FormatError(err error) string {
	var exit *exitError
	if errors.As(err, &exit) {
		return exit.Error()
	}
	code := apperr.Code(err)
	if code == "UNKNOWN" || code == "" {
		return formatter.StyleRed.Render("Error: ") + err.Error()
	}
	return formatter.StyleRed.Render("Error ["+code+"]: ") + err.Error()
}

// exitError carries a message that is already formatted for the user.
type exitError struct{ msg string }

func (e *exitError) Error() string { return e.msg }
