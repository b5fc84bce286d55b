package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"trackarr/internal/outcome"
)

func sampleReport(finished time.Time) Report {
	agg := outcome.NewAggregator()
	agg.Add(outcome.Outcome{
		Path:           "/tv/Show/S01E01.mkv",
		Label:          outcome.LabelCompliant,
		AudioLanguages: []string{"jpn", "eng"},
	})
	agg.Add(outcome.Outcome{
		Path:              "/tv/Show/S01E02.mkv",
		Label:             outcome.LabelModified,
		AudioLanguage:     "jpn",
		SubtitleLanguage:  "eng",
		AudioLanguages:    []string{"jpn"},
		SubtitleLanguages: []string{"eng"},
	})
	agg.Add(outcome.Outcome{
		Path:   "/tv/Show/S01E03.mkv",
		Label:  outcome.LabelError,
		Detail: "mkvmerge exited 2",
	})
	return Report{
		RunID:      "11111111-2222-3333-4444-555555555555",
		FinishedAt: finished,
		Summary:    agg.Snapshot(),
	}
}

func TestWriterWritesJSONAndText(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 0)

	finished := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	jsonPath, err := w.Write(sampleReport(finished))
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if filepath.Base(jsonPath) != "run-20260314-092653.json" {
		t.Fatalf("unexpected json path %s", jsonPath)
	}

	payload, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("read json report: %v", err)
	}
	var decoded Report
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("decode json report: %v", err)
	}
	if decoded.Summary.Total != 3 {
		t.Fatalf("expected total 3, got %d", decoded.Summary.Total)
	}
	if decoded.Summary.Counts[outcome.LabelModified] != 1 {
		t.Fatalf("unexpected counts: %+v", decoded.Summary.Counts)
	}

	text, err := os.ReadFile(jsonPath[:len(jsonPath)-len(".json")] + ".txt")
	if err != nil {
		t.Fatalf("read text report: %v", err)
	}
	body := string(text)
	for _, want := range []string{
		"Track Compliance Report",
		"compliant",
		"Japanese (jpn)",
		"Attention Needed",
		"mkvmerge exited 2",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("text report missing %q\n%s", want, body)
		}
	}
}

func TestRenderTextDryRun(t *testing.T) {
	r := sampleReport(time.Now().UTC())
	r.DryRun = true
	if !strings.Contains(RenderText(r), "(dry run)") {
		t.Fatalf("dry run marker missing")
	}
}

func TestRenderTextAnomalies(t *testing.T) {
	agg := outcome.NewAggregator()
	agg.Add(outcome.Outcome{
		Path:  "/tv/Show/S01E04.mkv",
		Label: outcome.LabelCompliant,
		Anomalies: []outcome.TrackAnomaly{{
			Tag:      outcome.AnomalyUnusualLanguage,
			TrackID:  2,
			Kind:     "subtitle",
			Language: "qaa",
		}},
	})
	body := RenderText(Report{RunID: "r", FinishedAt: time.Now().UTC(), Summary: agg.Snapshot()})
	if !strings.Contains(body, "Unusual Language Code") {
		t.Fatalf("anomaly heading missing:\n%s", body)
	}
	if !strings.Contains(body, `code "qaa"`) {
		t.Fatalf("anomaly detail missing:\n%s", body)
	}
}

func TestWriterPrunesOldReports(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 2)

	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		if _, err := w.Write(sampleReport(base.Add(time.Duration(i) * time.Minute))); err != nil {
			t.Fatalf("Write returned error: %v", err)
		}
	}

	jsonFiles, _ := filepath.Glob(filepath.Join(dir, "run-*.json"))
	txtFiles, _ := filepath.Glob(filepath.Join(dir, "run-*.txt"))
	if len(jsonFiles) != 2 || len(txtFiles) != 2 {
		t.Fatalf("expected 2 report pairs, got %d json / %d txt", len(jsonFiles), len(txtFiles))
	}
	for _, f := range jsonFiles {
		name := filepath.Base(f)
		if name != "run-20260314-090200.json" && name != "run-20260314-090300.json" {
			t.Fatalf("wrong report kept: %s", name)
		}
	}
}
