package runner

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"trackarr/internal/config"
	"trackarr/internal/history"
	"trackarr/internal/logging"
	"trackarr/internal/mkv"
	"trackarr/internal/notifications"
	"trackarr/internal/outcome"
	"trackarr/internal/pathmap"
	"trackarr/internal/report"
	"trackarr/internal/sonarr"
	"trackarr/internal/tracks"
	"trackarr/internal/transmission"
)

// Prober reads the track layout of a container file.
type Prober interface {
	Inspect(ctx context.Context, path string) (mkv.Probe, error)
}

// Applier executes an edit plan against a container file.
type Applier interface {
	Apply(ctx context.Context, plan tracks.EditPlan) error
}

// SeedChecker answers whether a file belongs to a seeding torrent.
type SeedChecker interface {
	Contains(path string, size int64) bool
}

// SeedSource produces a fresh seed checker at the start of each run so
// long-running daemons never match against stale torrent state.
type SeedSource func(ctx context.Context) (SeedChecker, error)

// Runner walks the Sonarr library once, normalizes track flags, and
// produces a run report. Optional dependencies may be nil: a nil Seeds
// disables seeding exclusion, a nil Reports disables report files, a nil
// History disables run recording.
type Runner struct {
	Config  *config.Config
	Source  sonarr.Lister
	Seeds   SeedSource
	Prober  Prober
	Applier Applier
	Reports *report.Writer
	History *history.Store
	Notify  notifications.Service
	Logger  *slog.Logger

	// SeriesFilter, when non-empty, restricts the pass to series whose
	// title contains the filter, case-insensitively.
	SeriesFilter string
}

// Result summarizes one completed run.
type Result struct {
	RunID      string
	Report     report.Report
	ReportPath string
}

// Run processes every episode file once. Per-file failures are folded into
// the report; only discovery-level failures (Sonarr unreachable) abort the
// run.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	runID := uuid.NewString()
	logger := logging.NewComponentLogger(r.Logger, "runner").With(
		logging.String(logging.FieldRunID, runID))
	policy := r.Config.TrackPolicy()
	agg := outcome.NewAggregator()

	libraryMap := pathmap.Mapper{From: r.Config.Files.PathMapFrom, To: r.Config.Files.PathMapTo}
	seedMap := pathmap.Mapper{From: r.Config.Transmission.PathMapFrom, To: r.Config.Transmission.PathMapTo}

	var seeds SeedChecker
	if r.Seeds != nil {
		var err error
		if seeds, err = r.Seeds(ctx); err != nil {
			// Without torrent state we cannot honor the seeding exclusion,
			// so refuse to modify anything.
			return Result{}, fmt.Errorf("build seed index: %w", err)
		}
	}

	series, err := r.Source.ListSeries(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list series: %w", err)
	}
	if r.Config.Sonarr.AnimeOnly {
		series = sonarr.AnimeSeries(series)
	}
	if r.SeriesFilter != "" {
		series = filterSeries(series, r.SeriesFilter)
	}
	logger.Info("run started",
		logging.Int("series", len(series)),
		logging.Bool("dry_run", r.Config.Workflow.DryRun))

	for _, s := range series {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		episodes, err := r.Source.ListEpisodes(ctx, s.ID)
		if err != nil {
			logger.Warn("skipping series, episode listing failed",
				logging.String(logging.FieldSeries, s.Title),
				logging.Error(err))
			continue
		}
		for _, ep := range episodes {
			if !ep.HasFile || ep.EpisodeFile == nil {
				continue
			}
			if !r.matchesExtension(ep.EpisodeFile.Path) {
				continue
			}
			o := r.processFile(ctx, logger, policy, seeds, libraryMap, seedMap, s, ep)
			agg.Add(o)
		}
	}

	finished := time.Now().UTC()
	rep := report.Report{
		RunID:      runID,
		DryRun:     r.Config.Workflow.DryRun,
		FinishedAt: finished,
		Summary:    agg.Snapshot(),
	}
	result := Result{RunID: runID, Report: rep}

	if r.Reports != nil {
		path, err := r.Reports.Write(rep)
		if err != nil {
			logger.Error("writing report failed", logging.Error(err))
		} else {
			result.ReportPath = path
		}
	}
	if r.History != nil {
		if err := r.History.RecordRun(ctx, runFromReport(rep, result.ReportPath)); err != nil {
			logger.Error("recording run failed", logging.Error(err))
		}
	}
	r.notifyCompleted(ctx, rep)

	logger.Info("run complete",
		logging.Int("total", rep.Summary.Total),
		logging.Int("modified", rep.Summary.Counts[outcome.LabelModified]),
		logging.Int("compliant", rep.Summary.Counts[outcome.LabelCompliant]),
		logging.Duration("duration", rep.Duration()))
	return result, nil
}

func (r *Runner) processFile(
	ctx context.Context,
	logger *slog.Logger,
	policy tracks.Policy,
	seeds SeedChecker,
	libraryMap, seedMap pathmap.Mapper,
	s sonarr.Series,
	ep sonarr.Episode,
) outcome.Outcome {
	file := ep.EpisodeFile
	localPath := libraryMap.Rewrite(file.Path)
	in := outcome.Input{
		Path:    localPath,
		Series:  s.Title,
		Episode: strings.TrimSpace(fmt.Sprintf("S%02dE%02d %s", ep.SeasonNumber, ep.EpisodeNumber, ep.Title)),
	}
	fileLogger := logger.With(
		logging.String(logging.FieldSeries, s.Title),
		logging.String(logging.FieldFile, localPath))

	if seeds != nil && seeds.Contains(seedMap.Rewrite(file.Path), file.Size) {
		in.Seeding = true
		fileLogger.Info("skipping seeding file")
		return outcome.Classify(in)
	}

	probe, err := r.Prober.Inspect(ctx, localPath)
	if err != nil {
		in.ParseErr = err
		fileLogger.Warn("probe failed", logging.Error(err))
		return outcome.Classify(in)
	}
	set, err := tracks.Parse(localPath, probe.RawTracks())
	if err != nil {
		in.ParseErr = err
		fileLogger.Warn("track list rejected", logging.Error(err))
		return outcome.Classify(in)
	}
	in.Set = &set

	eval := tracks.Evaluate(set, policy)
	in.Eval = &eval
	plan := tracks.BuildPlan(set, eval)
	in.Plan = &plan

	if !eval.Compliant && !plan.Empty() && !plan.MissingTarget && !r.Config.Workflow.DryRun {
		if err := r.Applier.Apply(ctx, plan); err != nil {
			in.ApplyErr = err
			fileLogger.Error("applying edits failed", logging.Error(err))
			return outcome.Classify(in)
		}
	}

	o := outcome.Classify(in)
	if o.Label == outcome.LabelModified {
		fileLogger.Info("flags normalized",
			logging.String("audio", o.AudioLanguage),
			logging.String("subtitle", o.SubtitleLanguage),
			logging.Bool("dry_run", r.Config.Workflow.DryRun))
	}
	return o
}

func filterSeries(series []sonarr.Series, filter string) []sonarr.Series {
	needle := strings.ToLower(filter)
	matched := series[:0]
	for _, s := range series {
		if strings.Contains(strings.ToLower(s.Title), needle) {
			matched = append(matched, s)
		}
	}
	return matched
}

func (r *Runner) matchesExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range r.Config.Files.Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func (r *Runner) notifyCompleted(ctx context.Context, rep report.Report) {
	if r.Notify == nil {
		return
	}
	counts := rep.Summary.Counts
	errored := counts[outcome.LabelError] + counts[outcome.LabelErrorApplying]
	if err := r.Notify.NotifyRunCompleted(ctx,
		counts[outcome.LabelModified], errored, rep.Summary.Total, rep.Duration()); err != nil {
		logging.NewComponentLogger(r.Logger, "runner").Warn("notification failed", logging.Error(err))
	}
}

func runFromReport(rep report.Report, reportPath string) history.Run {
	counts := rep.Summary.Counts
	return history.Run{
		ID:             rep.RunID,
		StartedAt:      rep.Summary.StartedAt,
		FinishedAt:     rep.FinishedAt,
		DryRun:         rep.DryRun,
		Total:          rep.Summary.Total,
		Compliant:      counts[outcome.LabelCompliant],
		Modified:       counts[outcome.LabelModified],
		MissingTarget:  counts[outcome.LabelMissingTarget],
		SkippedSeeding: counts[outcome.LabelSkippedSeeding],
		Errors:         counts[outcome.LabelError] + counts[outcome.LabelErrorApplying],
		ReportPath:     reportPath,
	}
}

// MKVToolnix adapts the mkvtoolnix binaries to the Prober and Applier
// interfaces.
type MKVToolnix struct {
	MergeBinary    string
	PropeditBinary string
}

func (m MKVToolnix) Inspect(ctx context.Context, path string) (mkv.Probe, error) {
	return mkv.Inspect(ctx, m.MergeBinary, path)
}

func (m MKVToolnix) Apply(ctx context.Context, plan tracks.EditPlan) error {
	return mkv.Apply(ctx, m.PropeditBinary, plan)
}

// NewSeedSource builds a per-run seed index from live Transmission data.
func NewSeedSource(fetcher transmission.Fetcher) SeedSource {
	return func(ctx context.Context) (SeedChecker, error) {
		torrents, err := fetcher.ListTorrents(ctx)
		if err != nil {
			return nil, fmt.Errorf("list torrents: %w", err)
		}
		return transmission.NewSeedIndex(torrents), nil
	}
}
