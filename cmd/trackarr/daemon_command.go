package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"trackarr/internal/daemon"
)

func newDaemonCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Run continuously, checking the library on the poll interval",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
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

			d, err := daemon.New(cfg, rt.runner, logger)
			if err != nil {
				return err
			}
			return d.Run(ctx)
		},
	}
}
