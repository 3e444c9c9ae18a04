package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/normgate/internal/app"
	"github.com/alexanderramin/normgate/internal/cli/formatter"
)

func newHistoryCmd(state *rootState) *cobra.Command {
	req := app.NewHistoryRequest()

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent assessments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := state.load(cmd.Context())
			if err != nil {
				return err
			}
			records, err := a.History.ListHistory(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(records))
			return nil
		},
	}
	cmd.Flags().IntVarP(&req.Limit, "limit", "n", req.Limit, "Maximum entries to show (0 for all)")

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show one stored assessment with its findings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := state.load(cmd.Context())
			if err != nil {
				return err
			}
			rec, err := a.History.GetAssessment(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRecord(rec))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one stored assessment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := state.load(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.History.DeleteAssessment(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Deleted "+args[0]))
			return nil
		},
	})
	return cmd
}
