package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"trackarr/internal/outcome"
)

func newRunCommand(cmdCtx *commandContext) *cobra.Command {
	var dryRun bool
	var series string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Check the library once and normalize track flags",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			if dryRun {
				cfg.Workflow.DryRun = true
			}
			logger, err := cmdCtx.buildLogger(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			rt, err := cmdCtx.buildRuntime(cfg, logger)
			if err != nil {
				return err
			}
			defer rt.Close()
			rt.runner.SeriesFilter = series

			result, err := rt.runner.Run(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			summary := result.Report.Summary
			rows := [][]string{
				{"Total", fmt.Sprintf("%d", summary.Total)},
				{"Compliant", fmt.Sprintf("%d", summary.Counts[outcome.LabelCompliant])},
				{"Modified", fmt.Sprintf("%d", summary.Counts[outcome.LabelModified])},
				{"Missing target", fmt.Sprintf("%d", summary.Counts[outcome.LabelMissingTarget])},
				{"Skipped (seeding)", fmt.Sprintf("%d", summary.Counts[outcome.LabelSkippedSeeding])},
				{"Errors", fmt.Sprintf("%d", summary.Counts[outcome.LabelError]+summary.Counts[outcome.LabelErrorApplying])},
			}
			fmt.Fprintln(out, renderTable([]string{"Result", "Files"}, rows, []columnAlignment{alignLeft, alignRight}))
			if cfg.Workflow.DryRun {
				fmt.Fprintln(out, "Dry run: no files were modified")
			}
			if result.ReportPath != "" {
				fmt.Fprintf(out, "Report: %s\n", result.ReportPath)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Evaluate files without modifying them")
	cmd.Flags().StringVar(&series, "series", "", "Only process series whose title contains this text")
	return cmd
}
