package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/normgate/internal/cli/formatter"
)

func newExtractCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "extract <text>",
		Short: "List the normative propositions implied by a request",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := state.load(cmd.Context())
			if err != nil {
				return err
			}
			res, err := app.Assessments.Extract(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPropositions(res))
			return nil
		},
	}
}
