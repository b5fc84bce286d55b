package tracks

import "testing"

func testPolicy() Policy {
	p := DefaultPolicy()
	p.AudioFallback = FallbackLenient
	return p
}

func TestSelectAudioTieBreaksByTrackID(t *testing.T) {
	set := FileTrackSet{Tracks: []Track{
		{ID: 2, Kind: KindAudio, Language: "jpn"},
		{ID: 5, Kind: KindAudio, Language: "jpn"},
	}}
	sel := Select(set, testPolicy())
	if sel.Audio == nil || sel.Audio.TrackID != 2 {
		t.Fatalf("expected audio track 2, got %+v", sel.Audio)
	}
}

func TestSelectAudioPrefersPolicyOrder(t *testing.T) {
	policy := testPolicy()
	policy.AudioLanguages = []string{"jpn", "eng"}
	set := FileTrackSet{Tracks: []Track{
		{ID: 1, Kind: KindAudio, Language: "eng", Default: true},
		{ID: 2, Kind: KindAudio, Language: "jpn"},
	}}
	sel := Select(set, policy)
	if sel.Audio == nil || sel.Audio.TrackID != 2 {
		t.Fatalf("expected japanese track 2, got %+v", sel.Audio)
	}
	if sel.Audio.Language != "jpn" {
		t.Fatalf("unexpected language %q", sel.Audio.Language)
	}
}

func TestSelectAudioStrictLeavesUnpreferredAlone(t *testing.T) {
	policy := testPolicy()
	policy.AudioFallback = FallbackStrict
	set := FileTrackSet{Tracks: []Track{
		{ID: 1, Kind: KindAudio, Language: "eng", Default: true},
		{ID: 2, Kind: KindAudio, Language: "fra"},
	}}
	if sel := Select(set, policy); sel.Audio != nil {
		t.Fatalf("strict fallback must not select, got %+v", sel.Audio)
	}
}

func TestSelectAudioLenientPicksBestAvailable(t *testing.T) {
	policy := testPolicy()
	set := FileTrackSet{Tracks: []Track{
		{ID: 3, Kind: KindAudio, Language: "fra"},
		{ID: 1, Kind: KindAudio, Language: "eng", Default: true},
	}}
	sel := Select(set, policy)
	if sel.Audio == nil || sel.Audio.TrackID != 1 {
		t.Fatalf("lenient fallback should pick lowest id, got %+v", sel.Audio)
	}
}

func TestSelectSingleAudioTrackIsLeftAlone(t *testing.T) {
	set := FileTrackSet{Tracks: []Track{
		{ID: 1, Kind: KindAudio, Language: "eng"},
	}}
	if sel := Select(set, testPolicy()); sel.Audio != nil {
		t.Fatalf("single audio track must not be reselected, got %+v", sel.Audio)
	}

	policy := testPolicy()
	policy.SingleAudioCompliant = false
	sel := Select(set, policy)
	if sel.Audio == nil || sel.Audio.TrackID != 1 {
		t.Fatalf("with single_audio_compliant off the track should be selected, got %+v", sel.Audio)
	}
}

func TestSelectSubtitleFullBeatsSigns(t *testing.T) {
	set := FileTrackSet{Tracks: []Track{
		{ID: 1, Kind: KindSubtitle, Language: "eng", Name: "Full"},
		{ID: 2, Kind: KindSubtitle, Language: "eng", Name: "Signs & Songs"},
	}}
	sel := Select(set, testPolicy())
	if sel.Subtitle == nil || sel.Subtitle.TrackID != 1 {
		t.Fatalf("expected full subtitle track 1, got %+v", sel.Subtitle)
	}
	if sel.Subtitle.Class != SubtitleFull {
		t.Fatalf("expected full class, got %v", sel.Subtitle.Class)
	}
}

func TestSelectSubtitleUnclassifiedBeatsSigns(t *testing.T) {
	set := FileTrackSet{Tracks: []Track{
		{ID: 1, Kind: KindSubtitle, Language: "eng", Name: "Signs / Songs"},
		{ID: 2, Kind: KindSubtitle, Language: "eng", Name: ""},
	}}
	sel := Select(set, testPolicy())
	if sel.Subtitle == nil || sel.Subtitle.TrackID != 2 {
		t.Fatalf("expected unclassified track 2, got %+v", sel.Subtitle)
	}
}

func TestSelectSubtitleSignsOnlyWhenSoleCandidate(t *testing.T) {
	set := FileTrackSet{Tracks: []Track{
		{ID: 4, Kind: KindSubtitle, Language: "eng", Name: "Signs & Songs"},
	}}
	sel := Select(set, testPolicy())
	if sel.Subtitle == nil || sel.Subtitle.TrackID != 4 {
		t.Fatalf("lone signs track should be selected, got %+v", sel.Subtitle)
	}
	if sel.Subtitle.Class != SubtitleSignsSongs {
		t.Fatalf("expected signs-songs class, got %v", sel.Subtitle.Class)
	}
}

func TestSelectSubtitleLanguageOrderBeatsClass(t *testing.T) {
	policy := testPolicy()
	policy.SubtitleLanguages = []string{"eng", AnyLanguage}
	set := FileTrackSet{Tracks: []Track{
		{ID: 1, Kind: KindSubtitle, Language: "spa", Name: "Full"},
		{ID: 2, Kind: KindSubtitle, Language: "eng", Name: "Signs & Songs"},
	}}
	sel := Select(set, policy)
	if sel.Subtitle == nil || sel.Subtitle.TrackID != 2 {
		t.Fatalf("language preference must outrank class, got %+v", sel.Subtitle)
	}
}

func TestSelectSubtitleWithoutWildcardSkipsUnlisted(t *testing.T) {
	policy := testPolicy()
	policy.SubtitleLanguages = []string{"eng"}
	set := FileTrackSet{Tracks: []Track{
		{ID: 1, Kind: KindSubtitle, Language: "spa", Name: "Full"},
	}}
	if sel := Select(set, policy); sel.Subtitle != nil {
		t.Fatalf("unlisted language without wildcard must not be selected, got %+v", sel.Subtitle)
	}
}

func TestSelectEmptyKindsAreAbsent(t *testing.T) {
	sel := Select(FileTrackSet{}, testPolicy())
	if sel.Audio != nil || sel.Subtitle != nil {
		t.Fatalf("empty set must produce absent selections, got %+v", sel)
	}
}

func TestClassifierMarkers(t *testing.T) {
	classify := NewClassifier(DefaultSignsMarkers, DefaultFullMarkers)
	tests := []struct {
		name     string
		expected SubtitleClass
	}{
		{"Full Dialogue", SubtitleFull},
		{"English (SDH)", SubtitleFull},
		{"Signs & Songs", SubtitleSignsSongs},
		{"SONGS ONLY", SubtitleSignsSongs},
		{"lyrics", SubtitleSignsSongs},
		{"", SubtitleUnclassified},
		{"English", SubtitleUnclassified},
	}
	for _, tt := range tests {
		if got := classify(tt.name); got != tt.expected {
			t.Errorf("classify(%q) = %v, want %v", tt.name, got, tt.expected)
		}
	}
}
