package outcome

import (
	"trackarr/internal/language"
	"trackarr/internal/tracks"
)

// Label is the primary classification of one processed file.
type Label string

const (
	LabelSkippedSeeding Label = "skipped-seeding"
	LabelError          Label = "error"
	LabelMissingTarget  Label = "missing-target-language"
	LabelCompliant      Label = "compliant"
	LabelModified       Label = "modified"
	LabelErrorApplying  Label = "error-applying"
)

// Anomaly tags diagnostic signals that do not change the primary label.
type Anomaly string

const (
	AnomalyUnusualLanguage Anomaly = "unusual-language-code"
	AnomalyNameMismatch    Anomaly = "name-code-mismatch"
)

// TrackAnomaly records one flagged track.
type TrackAnomaly struct {
	Tag      Anomaly     `json:"tag"`
	TrackID  int         `json:"track_id"`
	Kind     tracks.Kind `json:"kind"`
	Language string      `json:"language"`
	Name     string      `json:"name,omitempty"`
}

// Outcome is the per-file result folded into the run aggregator. Never
// mutated after creation.
type Outcome struct {
	Path    string `json:"path"`
	Series  string `json:"series,omitempty"`
	Episode string `json:"episode,omitempty"`
	Label   Label  `json:"label"`
	Detail  string `json:"detail,omitempty"`

	// Chosen languages, when a selection was made.
	AudioLanguage    string `json:"audio_language,omitempty"`
	SubtitleLanguage string `json:"subtitle_language,omitempty"`

	// All track languages present, for run histograms.
	AudioLanguages    []string `json:"audio_languages,omitempty"`
	SubtitleLanguages []string `json:"subtitle_languages,omitempty"`

	SingleAudioTrack bool           `json:"single_audio_track,omitempty"`
	Anomalies        []TrackAnomaly `json:"anomalies,omitempty"`
}

// Input carries everything the classifier needs about one file. Pointers are
// nil for stages that never ran (a seeding-excluded file is classified before
// it is probed).
type Input struct {
	Path    string
	Series  string
	Episode string

	Seeding  bool
	ParseErr error
	Set      *tracks.FileTrackSet
	Eval     *tracks.Evaluation
	Plan     *tracks.EditPlan
	ApplyErr error
}

// Classify labels one processed file. Priority when multiple conditions
// hold: seeding-excluded, then parse error, then missing-target-language,
// then already-compliant, then error-applying, then modified.
func Classify(in Input) Outcome {
	out := Outcome{
		Path:    in.Path,
		Series:  in.Series,
		Episode: in.Episode,
	}
	if in.Set != nil {
		populateTrackInfo(&out, *in.Set)
	}

	switch {
	case in.Seeding:
		out.Label = LabelSkippedSeeding
		out.Detail = "file is currently seeding"
	case in.ParseErr != nil:
		out.Label = LabelError
		out.Detail = in.ParseErr.Error()
	case in.Plan != nil && in.Plan.MissingTarget:
		out.Label = LabelMissingTarget
		out.Detail = "no qualifying track for a mandatory kind"
	case in.Eval != nil && in.Eval.Compliant:
		out.Label = LabelCompliant
	case in.ApplyErr != nil:
		out.Label = LabelErrorApplying
		out.Detail = in.ApplyErr.Error()
	default:
		out.Label = LabelModified
		if in.Eval != nil {
			if a := in.Eval.Selection.Audio; a != nil {
				out.AudioLanguage = a.Language
			}
			if s := in.Eval.Selection.Subtitle; s != nil {
				out.SubtitleLanguage = s.Language
			}
		}
	}
	return out
}

func populateTrackInfo(out *Outcome, set tracks.FileTrackSet) {
	audio := set.OfKind(tracks.KindAudio)
	subs := set.OfKind(tracks.KindSubtitle)
	out.SingleAudioTrack = len(audio) == 1
	for _, t := range audio {
		out.AudioLanguages = append(out.AudioLanguages, t.Language)
	}
	for _, t := range subs {
		out.SubtitleLanguages = append(out.SubtitleLanguages, t.Language)
	}
	out.Anomalies = detectAnomalies(append(audio, subs...))
}

// detectAnomalies flags unusual language codes and tracks whose name suggests
// a different language than their declared code. Tags never change the
// primary label.
func detectAnomalies(ts []tracks.Track) []TrackAnomaly {
	var anomalies []TrackAnomaly
	for _, t := range ts {
		if !language.Known(t.Language) {
			anomalies = append(anomalies, TrackAnomaly{
				Tag:      AnomalyUnusualLanguage,
				TrackID:  t.ID,
				Kind:     t.Kind,
				Language: t.Language,
				Name:     t.Name,
			})
		}
		if suggested := language.NameSuggests(t.Name); suggested != "" && suggested != t.Language {
			anomalies = append(anomalies, TrackAnomaly{
				Tag:      AnomalyNameMismatch,
				TrackID:  t.ID,
				Kind:     t.Kind,
				Language: t.Language,
				Name:     t.Name,
			})
		}
	}
	return anomalies
}
