package tracks

import "sort"

// Choice identifies one selected track.
type Choice struct {
	TrackID  int
	Language string
	Class    SubtitleClass // populated for subtitle choices only
}

// Selection holds at most one chosen audio track and one chosen subtitle
// track. A nil entry means the corresponding kind keeps its current flags.
type Selection struct {
	Audio    *Choice
	Subtitle *Choice
}

// Select applies the policy's language-priority and name-heuristic rules to
// choose the desired default audio and subtitle tracks.
func Select(set FileTrackSet, policy Policy) Selection {
	return Selection{
		Audio:    selectAudio(set, policy),
		Subtitle: selectSubtitle(set, policy),
	}
}

func selectAudio(set FileTrackSet, policy Policy) *Choice {
	candidates := set.OfKind(KindAudio)
	if len(candidates) == 0 {
		return nil
	}
	if policy.SingleAudioCompliant && len(candidates) == 1 {
		// A lone audio track plays no matter what; forcing its flag would
		// churn files for nothing.
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		ri, rj := policy.audioRank(candidates[i].Language), policy.audioRank(candidates[j].Language)
		if ri != rj {
			return ri < rj
		}
		return candidates[i].ID < candidates[j].ID
	})

	best := candidates[0]
	if policy.audioRank(best.Language) >= len(policy.AudioLanguages) && policy.AudioFallback != FallbackLenient {
		// No preferred language present; strict mode leaves the current
		// selection untouched.
		return nil
	}
	return &Choice{TrackID: best.ID, Language: best.Language}
}

func selectSubtitle(set FileTrackSet, policy Policy) *Choice {
	classify := policy.classifier()

	type candidate struct {
		track Track
		rank  int
		class SubtitleClass
	}
	var candidates []candidate
	for _, t := range set.OfKind(KindSubtitle) {
		rank, ok := policy.subtitleRank(t.Language)
		if !ok {
			continue
		}
		candidates = append(candidates, candidate{track: t, rank: rank, class: classify(t.Name)})
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].rank != candidates[j].rank {
			return candidates[i].rank < candidates[j].rank
		}
		if candidates[i].class != candidates[j].class {
			return candidates[i].class < candidates[j].class
		}
		return candidates[i].track.ID < candidates[j].track.ID
	})

	best := candidates[0]
	return &Choice{TrackID: best.track.ID, Language: best.track.Language, Class: best.class}
}
