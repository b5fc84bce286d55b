package tracks

import "strings"

// AudioFallback controls what the selector does when no preferred audio
// language exists in the file.
type AudioFallback string

const (
	// FallbackStrict leaves the current default audio untouched unless a
	// preferred language is present.
	FallbackStrict AudioFallback = "strict"
	// FallbackLenient always selects the best-ranked audio track, falling
	// through to unlisted languages in track-id order.
	FallbackLenient AudioFallback = "lenient"
)

// SubtitleClass is the name-heuristic classification of a subtitle track.
// The ordinal doubles as the ranking position: full dialogue tracks beat
// unclassified tracks, which beat signs/songs tracks.
type SubtitleClass int

const (
	SubtitleFull SubtitleClass = iota
	SubtitleUnclassified
	SubtitleSignsSongs
)

func (c SubtitleClass) String() string {
	switch c {
	case SubtitleFull:
		return "full"
	case SubtitleSignsSongs:
		return "signs-songs"
	default:
		return "unclassified"
	}
}

// Classifier maps a subtitle track name to its class. The heuristic is
// inherently fuzzy, so it is pluggable: policy variants can be tested
// independently of the selection algorithm.
type Classifier func(name string) SubtitleClass

// AnyLanguage is the wildcard entry for subtitle preference lists: tracks in
// languages not otherwise listed rank at the wildcard's position.
const AnyLanguage = "any"

// Policy is the immutable per-run selection configuration, shared read-only
// across all file evaluations.
type Policy struct {
	// AudioLanguages is the ordered audio preference list (ISO 639-2).
	AudioLanguages []string
	// SubtitleLanguages is the ordered subtitle preference list. May contain
	// the AnyLanguage wildcard.
	SubtitleLanguages []string
	// AudioFallback selects strict or lenient behavior when no preferred
	// audio language is available.
	AudioFallback AudioFallback
	// RequireSubtitles marks the subtitle kind mandatory: a file without a
	// qualifying subtitle track is missing-target-language, not compliant.
	RequireSubtitles bool
	// SingleAudioCompliant treats a file with exactly one audio track as
	// compliant on the audio dimension regardless of its language.
	SingleAudioCompliant bool
	// Classify is the subtitle name heuristic. Nil falls back to
	// NewClassifier(DefaultSignsMarkers, DefaultFullMarkers).
	Classify Classifier
}

// Default marker sets, matching the common fansub naming conventions.
var (
	DefaultSignsMarkers = []string{"signs", "songs", "lyrics"}
	DefaultFullMarkers  = []string{"full", "dialogue", "sdh"}
)

// DefaultPolicy returns the stock anime policy: Japanese audio, English full
// subtitles, lenient audio fallback disabled (strict), subtitles mandatory.
func DefaultPolicy() Policy {
	return Policy{
		AudioLanguages:       []string{"jpn"},
		SubtitleLanguages:    []string{"eng", AnyLanguage},
		AudioFallback:        FallbackStrict,
		RequireSubtitles:     true,
		SingleAudioCompliant: true,
		Classify:             NewClassifier(DefaultSignsMarkers, DefaultFullMarkers),
	}
}

// NewClassifier builds a subtitle classifier from case-insensitive substring
// marker sets. Signs markers win over full markers when both match.
func NewClassifier(signsMarkers, fullMarkers []string) Classifier {
	signs := lowerAll(signsMarkers)
	full := lowerAll(fullMarkers)
	return func(name string) SubtitleClass {
		lowered := strings.ToLower(name)
		for _, m := range signs {
			if m != "" && strings.Contains(lowered, m) {
				return SubtitleSignsSongs
			}
		}
		for _, m := range full {
			if m != "" && strings.Contains(lowered, m) {
				return SubtitleFull
			}
		}
		return SubtitleUnclassified
	}
}

func (p Policy) classifier() Classifier {
	if p.Classify != nil {
		return p.Classify
	}
	return NewClassifier(DefaultSignsMarkers, DefaultFullMarkers)
}

// audioRank returns the preference position of an audio language. Languages
// absent from the list rank after every listed entry.
func (p Policy) audioRank(lang string) int {
	for i, l := range p.AudioLanguages {
		if l == lang {
			return i
		}
	}
	return len(p.AudioLanguages)
}

// subtitleRank returns the preference position of a subtitle language, using
// the AnyLanguage wildcard slot for unlisted languages. The second return is
// false when the language is unlisted and no wildcard exists, meaning the
// track is not a candidate at all.
func (p Policy) subtitleRank(lang string) (int, bool) {
	wildcard := -1
	for i, l := range p.SubtitleLanguages {
		if l == lang {
			return i, true
		}
		if l == AnyLanguage && wildcard < 0 {
			wildcard = i
		}
	}
	if wildcard >= 0 {
		return wildcard, true
	}
	return len(p.SubtitleLanguages), false
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.ToLower(strings.TrimSpace(v)))
	}
	return out
}
