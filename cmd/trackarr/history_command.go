package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"trackarr/internal/history"
)

func newHistoryCommand(cmdCtx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg.HistoryDBPath())
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.StartedAt.Local().Format("2006-01-02 15:04"),
					shortID(run.ID),
					yesNo(run.DryRun),
					fmt.Sprintf("%d", run.Total),
					fmt.Sprintf("%d", run.Compliant),
					fmt.Sprintf("%d", run.Modified),
					fmt.Sprintf("%d", run.MissingTarget),
					fmt.Sprintf("%d", run.SkippedSeeding),
					fmt.Sprintf("%d", run.Errors),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Started", "Run", "Dry", "Total", "OK", "Modified", "Missing", "Seeding", "Errors"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
