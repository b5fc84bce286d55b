package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"trackarr/internal/config"
	"trackarr/internal/logging"
	"trackarr/internal/runner"
)

// Daemon runs normalization passes on a timer and enforces single-instance
// execution via a file lock.
type Daemon struct {
	cfg    *config.Config
	runner *runner.Runner
	logger *slog.Logger

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
}

// New constructs a daemon around a configured runner.
func New(cfg *config.Config, r *runner.Runner, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || r == nil {
		return nil, errors.New("daemon requires config and runner")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	lockPath := cfg.LockPath()
	return &Daemon{
		cfg:      cfg,
		runner:   r,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// LockPath returns the lock file location.
func (d *Daemon) LockPath() string {
	return d.lockPath
}

// Run acquires the daemon lock, performs an immediate pass, and then
// repeats on the poll interval until the context is cancelled.
func (d *Daemon) Run(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another trackarr instance is already running")
	}
	defer func() {
		if err := d.lock.Unlock(); err != nil {
			d.logger.Warn("failed to release daemon lock", logging.Error(err))
		}
	}()

	d.running.Store(true)
	defer d.running.Store(false)

	interval := time.Duration(d.cfg.Workflow.PollIntervalHours) * time.Hour
	d.logger.Info("daemon started",
		logging.String("lock", d.lockPath),
		logging.Duration("interval", interval))

	d.runOnce(ctx)

	if d.cfg.Workflow.RunOnce {
		d.logger.Info("single pass complete, exiting")
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			d.logger.Info("daemon stopped")
			return nil
		case <-ticker.C:
			d.runOnce(ctx)
		}
	}
}

func (d *Daemon) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if _, err := d.runner.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		d.logger.Error("run failed", logging.Error(err))
	}
}
