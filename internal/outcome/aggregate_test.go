package outcome

import (
	"sync"
	"testing"
)

func TestAggregatorCounts(t *testing.T) {
	agg := NewAggregator()
	for _, label := range []Label{LabelCompliant, LabelModified, LabelModified, LabelError} {
		agg.Add(Outcome{Path: "f.mkv", Label: label})
	}
	s := agg.Snapshot()
	if s.Total != 4 {
		t.Fatalf("total = %d, want 4", s.Total)
	}
	expected := map[Label]int{
		LabelCompliant: 1,
		LabelModified:  2,
		LabelError:     1,
	}
	for label, want := range expected {
		if s.Counts[label] != want {
			t.Errorf("counts[%s] = %d, want %d", label, s.Counts[label], want)
		}
	}
}

func TestAggregatorHistograms(t *testing.T) {
	agg := NewAggregator()
	agg.Add(Outcome{
		Path:              "a.mkv",
		Label:             LabelModified,
		AudioLanguage:     "jpn",
		SubtitleLanguage:  "eng",
		AudioLanguages:    []string{"jpn", "eng"},
		SubtitleLanguages: []string{"eng", "eng"},
	})
	agg.Add(Outcome{
		Path:           "b.mkv",
		Label:          LabelCompliant,
		AudioLanguages: []string{"jpn"},
	})
	s := agg.Snapshot()
	if s.AudioLangs["jpn"] != 2 || s.AudioLangs["eng"] != 1 {
		t.Errorf("audio histogram = %v", s.AudioLangs)
	}
	if s.SubLangs["eng"] != 2 {
		t.Errorf("subtitle histogram = %v", s.SubLangs)
	}
	if s.ChosenAud["jpn"] != 1 || s.ChosenSub["eng"] != 1 {
		t.Errorf("chosen histograms = %v / %v", s.ChosenAud, s.ChosenSub)
	}
}

func TestAggregatorAnomalies(t *testing.T) {
	agg := NewAggregator()
	agg.Add(Outcome{
		Path:  "a.mkv",
		Label: LabelCompliant,
		Anomalies: []TrackAnomaly{
			{Tag: AnomalyUnusualLanguage, TrackID: 2, Language: "xyz"},
		},
	})
	s := agg.Snapshot()
	entries := s.Anomalies[AnomalyUnusualLanguage]
	if len(entries) != 1 || entries[0].Path != "a.mkv" {
		t.Fatalf("anomaly entries = %+v", entries)
	}
}

func TestAggregatorSnapshotIsDetached(t *testing.T) {
	agg := NewAggregator()
	agg.Add(Outcome{Path: "a.mkv", Label: LabelCompliant})
	s := agg.Snapshot()
	agg.Add(Outcome{Path: "b.mkv", Label: LabelModified})
	if s.Total != 1 || len(s.Outcomes) != 1 {
		t.Fatalf("snapshot must not observe later folds: %+v", s)
	}
	s.Counts[LabelCompliant] = 99
	if agg.Count(LabelCompliant) != 1 {
		t.Fatalf("mutating a snapshot must not touch the aggregator")
	}
}

func TestAggregatorConcurrentAdd(t *testing.T) {
	agg := NewAggregator()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			agg.Add(Outcome{Path: "f.mkv", Label: LabelModified})
		}()
	}
	wg.Wait()
	if got := agg.Count(LabelModified); got != 50 {
		t.Fatalf("concurrent folds lost updates: %d", got)
	}
}

func TestSortedLangs(t *testing.T) {
	hist := map[string]int{"eng": 3, "jpn": 5, "spa": 3}
	got := SortedLangs(hist)
	want := []string{"jpn", "eng", "spa"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SortedLangs = %v, want %v", got, want)
		}
	}
}
