package tracks

// Kind identifies the class of a media stream inside a container.
type Kind string

const (
	KindAudio    Kind = "audio"
	KindSubtitle Kind = "subtitle"
	KindOther    Kind = "other"
)

// Track is one media stream inside a container file. IDs are stable and
// unique within a file's track list for the duration of one evaluation.
type Track struct {
	ID       int
	Kind     Kind
	Language string // ISO 639-2 code, "und" when untagged; unusual codes verbatim
	Name     string
	Default  bool
	Forced   bool
}

// FileTrackSet is the full set of tracks for one container file.
type FileTrackSet struct {
	Path   string
	Tracks []Track
}

// OfKind returns the tracks of the requested kind in track-id order.
func (s FileTrackSet) OfKind(kind Kind) []Track {
	var out []Track
	for _, t := range s.Tracks {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}

// DefaultsOf returns the tracks of the requested kind currently flagged default.
func (s FileTrackSet) DefaultsOf(kind Kind) []Track {
	var out []Track
	for _, t := range s.Tracks {
		if t.Kind == kind && t.Default {
			out = append(out, t)
		}
	}
	return out
}

// ByID looks up a track by its container track id.
func (s FileTrackSet) ByID(id int) (Track, bool) {
	for _, t := range s.Tracks {
		if t.ID == id {
			return t, true
		}
	}
	return Track{}, false
}
