package outcome

import (
	"sort"
	"sync"
	"time"
)

// Aggregator folds per-file outcomes into running totals. It is the only
// mutable shared state in a run; Add is safe for concurrent use so callers
// may evaluate files in parallel. One aggregator serves exactly one run.
type Aggregator struct {
	mu sync.Mutex

	startedAt time.Time
	counts    map[Label]int
	total     int

	audioLangs     map[string]int
	subtitleLangs  map[string]int
	chosenAudio    map[string]int
	chosenSubtitle map[string]int

	anomalies map[Anomaly][]FileAnomaly
	outcomes  []Outcome
}

// FileAnomaly pairs an anomaly with the file it occurred in.
type FileAnomaly struct {
	Path    string       `json:"path"`
	Anomaly TrackAnomaly `json:"anomaly"`
}

// Summary is an immutable snapshot of a run's accumulated state.
type Summary struct {
	StartedAt  time.Time               `json:"started_at"`
	Total      int                     `json:"total"`
	Counts     map[Label]int           `json:"counts"`
	AudioLangs map[string]int          `json:"audio_languages"`
	SubLangs   map[string]int          `json:"subtitle_languages"`
	ChosenAud  map[string]int          `json:"chosen_audio_languages"`
	ChosenSub  map[string]int          `json:"chosen_subtitle_languages"`
	Anomalies  map[Anomaly][]FileAnomaly `json:"anomalies"`
	Outcomes   []Outcome               `json:"outcomes"`
}

// NewAggregator creates an empty aggregator for one run.
func NewAggregator() *Aggregator {
	return &Aggregator{
		startedAt:      time.Now().UTC(),
		counts:         make(map[Label]int),
		audioLangs:     make(map[string]int),
		subtitleLangs:  make(map[string]int),
		chosenAudio:    make(map[string]int),
		chosenSubtitle: make(map[string]int),
		anomalies:      make(map[Anomaly][]FileAnomaly),
	}
}

// Add folds one outcome into the running totals. Purely additive; historical
// entries are never revised.
func (a *Aggregator) Add(o Outcome) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.total++
	a.counts[o.Label]++
	for _, lang := range o.AudioLanguages {
		a.audioLangs[lang]++
	}
	for _, lang := range o.SubtitleLanguages {
		a.subtitleLangs[lang]++
	}
	if o.AudioLanguage != "" {
		a.chosenAudio[o.AudioLanguage]++
	}
	if o.SubtitleLanguage != "" {
		a.chosenSubtitle[o.SubtitleLanguage]++
	}
	for _, an := range o.Anomalies {
		a.anomalies[an.Tag] = append(a.anomalies[an.Tag], FileAnomaly{Path: o.Path, Anomaly: an})
	}
	a.outcomes = append(a.outcomes, o)
}

// Count returns the running total for one label.
func (a *Aggregator) Count(label Label) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.counts[label]
}

// Snapshot produces an immutable copy of the accumulated state. It may be
// called at any point during the run.
func (a *Aggregator) Snapshot() Summary {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := Summary{
		StartedAt:  a.startedAt,
		Total:      a.total,
		Counts:     copyCounts(a.counts),
		AudioLangs: copyHist(a.audioLangs),
		SubLangs:   copyHist(a.subtitleLangs),
		ChosenAud:  copyHist(a.chosenAudio),
		ChosenSub:  copyHist(a.chosenSubtitle),
		Anomalies:  make(map[Anomaly][]FileAnomaly, len(a.anomalies)),
		Outcomes:   append([]Outcome(nil), a.outcomes...),
	}
	for tag, entries := range a.anomalies {
		s.Anomalies[tag] = append([]FileAnomaly(nil), entries...)
	}
	return s
}

// SortedLangs returns a histogram's keys ordered by descending count, then
// alphabetically for equal counts.
func SortedLangs(hist map[string]int) []string {
	keys := make([]string, 0, len(hist))
	for k := range hist {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if hist[keys[i]] != hist[keys[j]] {
			return hist[keys[i]] > hist[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}

func copyCounts(src map[Label]int) map[Label]int {
	dst := make(map[Label]int, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func copyHist(src map[string]int) map[string]int {
	dst := make(map[string]int, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
