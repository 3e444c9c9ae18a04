package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/normgate/internal/analysis"
	"github.com/alexanderramin/normgate/internal/app"
	"github.com/alexanderramin/normgate/internal/cli/formatter"
)

func newAssessCmd(state *rootState) *cobra.Command {
	var (
		withIntent bool
		noRecord   bool
		strict     bool
	)

	cmd := &cobra.Command{
		Use:   "assess <text>",
		Short: "Run a request through the risk gate",
		Long: `Derive the task behind a request, score every implied proposition against the
assistant's endeavours, and print the recommendation with its explanation.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := state.load(cmd.Context())
			if err != nil {
				return err
			}
			req := app.NewAssessRequest(strings.Join(args, " "))
			req.ScoreIntent = withIntent
			req.Record = !noRecord

			resp, err := a.Assessments.Assess(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAssessment(resp, a.Verbose))
			if strict && resp.Recommendation != analysis.AcceptAndExecute {
				return &exitError{msg: "request not accepted: " + string(resp.Recommendation)}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withIntent, "intent", false, "Also score the user's intent")
	cmd.Flags().BoolVar(&noRecord, "no-record", false, "Do not save the run to history")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero unless the task is accepted")
	return cmd
}
