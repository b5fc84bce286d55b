package main

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"trackarr/internal/config"
	"trackarr/internal/history"
	"trackarr/internal/logging"
	"trackarr/internal/notifications"
	"trackarr/internal/report"
	"trackarr/internal/runner"
	"trackarr/internal/sonarr"
	"trackarr/internal/transmission"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) buildLogger(cfg *config.Config) (*slog.Logger, error) {
	outputs := []string{"stdout"}
	if cfg.Paths.LogDir != "" {
		outputs = append(outputs, filepath.Join(cfg.Paths.LogDir, "trackarr.log"))
	}
	return logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: outputs,
	})
}

// runtime bundles a wired runner with the resources that must be closed
// after the run.
type runtime struct {
	runner *runner.Runner
	store  *history.Store
}

func (r *runtime) Close() {
	if r.store != nil {
		_ = r.store.Close()
	}
}

func (c *commandContext) buildRuntime(cfg *config.Config, logger *slog.Logger) (*runtime, error) {
	source, err := sonarr.New(cfg.Sonarr.URL, cfg.Sonarr.APIKey,
		sonarr.WithHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.Sonarr.RequestTimeout) * time.Second,
		}))
	if err != nil {
		return nil, err
	}

	var seeds runner.SeedSource
	if cfg.Transmission.Enabled {
		fetcher, err := transmission.New(cfg.Transmission.URL, cfg.Transmission.Username, cfg.Transmission.Password)
		if err != nil {
			return nil, err
		}
		seeds = runner.NewSeedSource(fetcher)
	}

	rt := &runtime{}
	var reports *report.Writer
	if cfg.Reports.Enabled {
		reports = report.NewWriter(cfg.Paths.ReportDir, cfg.Reports.KeepLast)
	}
	if cfg.History.Enabled {
		store, err := history.Open(cfg.HistoryDBPath())
		if err != nil {
			return nil, err
		}
		rt.store = store
	}

	rt.runner = &runner.Runner{
		Config: cfg,
		Source: source,
		Seeds:  seeds,
		Prober: runner.MKVToolnix{
			MergeBinary:    cfg.Workflow.MkvmergeBinary,
			PropeditBinary: cfg.Workflow.MkvpropeditBinary,
		},
		Applier: runner.MKVToolnix{
			MergeBinary:    cfg.Workflow.MkvmergeBinary,
			PropeditBinary: cfg.Workflow.MkvpropeditBinary,
		},
		Reports: reports,
		History: rt.store,
		Notify: notifications.NewService(cfg.Notifications.NtfyTopic,
			time.Duration(cfg.Notifications.RequestTimeout)*time.Second),
		Logger: logger,
	}
	return rt, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
