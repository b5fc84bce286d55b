package tracks

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"trackarr/internal/language"
)

// ErrParse marks malformed probe input. Files failing to parse are skipped
// and counted; the run continues.
var ErrParse = errors.New("track parse error")

// RawTrack is the probe-layer description of one stream, before normalization.
// ID is a pointer so a probe entry lacking an id can be rejected instead of
// silently becoming track 0.
type RawTrack struct {
	ID       *int
	Type     string
	Language string
	Name     string
	Default  bool
	Forced   bool
}

// Parse converts a raw per-file probe track list into a normalized
// FileTrackSet. Unknown language codes pass through verbatim; empty codes
// become "und". Fails with ErrParse when the probe has no track list or an
// entry lacks an id or type.
func Parse(path string, raw []RawTrack) (FileTrackSet, error) {
	if raw == nil {
		return FileTrackSet{}, fmt.Errorf("%w: %s: probe has no track list", ErrParse, path)
	}

	set := FileTrackSet{Path: path, Tracks: make([]Track, 0, len(raw))}
	seen := make(map[int]struct{}, len(raw))
	for i, rt := range raw {
		if rt.ID == nil {
			return FileTrackSet{}, fmt.Errorf("%w: %s: track entry %d has no id", ErrParse, path, i)
		}
		if strings.TrimSpace(rt.Type) == "" {
			return FileTrackSet{}, fmt.Errorf("%w: %s: track %d has no type", ErrParse, path, *rt.ID)
		}
		if _, dup := seen[*rt.ID]; dup {
			return FileTrackSet{}, fmt.Errorf("%w: %s: duplicate track id %d", ErrParse, path, *rt.ID)
		}
		seen[*rt.ID] = struct{}{}

		set.Tracks = append(set.Tracks, Track{
			ID:       *rt.ID,
			Kind:     kindFromType(rt.Type),
			Language: language.ToISO3(rt.Language),
			Name:     strings.TrimSpace(rt.Name),
			Default:  rt.Default,
			Forced:   rt.Forced,
		})
	}

	sort.SliceStable(set.Tracks, func(i, j int) bool {
		return set.Tracks[i].ID < set.Tracks[j].ID
	})
	return set, nil
}

func kindFromType(trackType string) Kind {
	switch strings.ToLower(strings.TrimSpace(trackType)) {
	case "audio":
		return KindAudio
	case "subtitles", "subtitle":
		return KindSubtitle
	default:
		return KindOther
	}
}
