package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"trackarr/internal/outcome"
)

// Report bundles a run's aggregated summary with run metadata.
type Report struct {
	RunID      string          `json:"run_id"`
	DryRun     bool            `json:"dry_run"`
	FinishedAt time.Time       `json:"finished_at"`
	Summary    outcome.Summary `json:"summary"`
}

// Duration returns how long the run took.
func (r Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.Summary.StartedAt)
}

// Writer persists reports to a directory, one JSON and one text file per
// run, and prunes old pairs beyond the retention limit.
type Writer struct {
	Dir      string
	KeepLast int
}

// NewWriter returns a report writer for the given directory. keepLast <= 0
// disables pruning.
func NewWriter(dir string, keepLast int) *Writer {
	return &Writer{Dir: dir, KeepLast: keepLast}
}

// Write renders the report to run-<timestamp>.json and run-<timestamp>.txt
// inside the writer's directory and returns the JSON path.
func (w *Writer) Write(r Report) (string, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}

	stamp := r.FinishedAt.UTC().Format("20060102-150405")
	base := filepath.Join(w.Dir, "run-"+stamp)

	payload, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}
	jsonPath := base + ".json"
	if err := os.WriteFile(jsonPath, payload, 0o644); err != nil {
		return "", fmt.Errorf("write json report: %w", err)
	}
	if err := os.WriteFile(base+".txt", []byte(RenderText(r)), 0o644); err != nil {
		return "", fmt.Errorf("write text report: %w", err)
	}

	if err := w.prune(); err != nil {
		return jsonPath, fmt.Errorf("prune old reports: %w", err)
	}
	return jsonPath, nil
}

// prune removes the oldest report pairs beyond KeepLast. Pairing is by
// base name so a run's JSON and text files are removed together.
func (w *Writer) prune() error {
	if w.KeepLast <= 0 {
		return nil
	}
	matches, err := filepath.Glob(filepath.Join(w.Dir, "run-*.json"))
	if err != nil {
		return err
	}
	if len(matches) <= w.KeepLast {
		return nil
	}
	sort.Strings(matches)
	for _, stale := range matches[:len(matches)-w.KeepLast] {
		if err := os.Remove(stale); err != nil && !os.IsNotExist(err) {
			return err
		}
		txt := stale[:len(stale)-len(".json")] + ".txt"
		if err := os.Remove(txt); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}
