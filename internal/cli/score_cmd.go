package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/normgate/internal/cli/formatter"
)

func newIntentCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "intent <text>",
		Short: "Score the intent behind a request (UIS, 1-10)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := state.load(cmd.Context())
			if err != nil {
				return err
			}
			a, err := app.Assessments.ScoreIntent(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatIntent(a))
			return nil
		},
	}
}

func newImpactCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "impact <text>",
		Short: "Score the potential impact of a request (IAS, 1-10)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := state.load(cmd.Context())
			if err != nil {
				return err
			}
			a, err := app.Assessments.AssessImpact(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatImpact(a))
			return nil
		},
	}
}

func newDiagnoseCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "diagnose",
		Short: "Check the assistant's endeavours for internal consistency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := state.load(cmd.Context())
			if err != nil {
				return err
			}
			d, err := app.Assessments.Diagnose(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDiagnostic(d))
			if !d.Passed {
				return &exitError{msg: "self diagnostic failed"}
			}
			return nil
		},
	}
}
