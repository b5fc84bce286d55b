package tracks

// Evaluation is the compliance verdict for one file, along with the selection
// the planner would use so the work is not repeated.
type Evaluation struct {
	// Compliant is true when the current default flags already satisfy the
	// policy and no edit is needed.
	Compliant bool
	// AudioCompliant and SubtitleCompliant break the verdict down per kind.
	AudioCompliant    bool
	SubtitleCompliant bool
	// MissingSubtitles is set when the policy marks subtitles mandatory and
	// no qualifying subtitle track exists in the file.
	MissingSubtitles bool
	// Selection is the would-be selection, reused by BuildPlan.
	Selection Selection
}

// Evaluate inspects a track set against the policy and reports whether the
// file is already compliant.
func Evaluate(set FileTrackSet, policy Policy) Evaluation {
	sel := Select(set, policy)
	eval := Evaluation{Selection: sel}

	eval.AudioCompliant = audioCompliant(set, policy, sel.Audio)
	eval.SubtitleCompliant, eval.MissingSubtitles = subtitleCompliant(set, policy, sel.Subtitle)
	eval.Compliant = eval.AudioCompliant && eval.SubtitleCompliant && !eval.MissingSubtitles
	return eval
}

// Compliance is judged by language, not track identity: a sole default that
// ranks as well as the best candidate needs no edit, even when the tie-break
// would have picked a different track id.
func audioCompliant(set FileTrackSet, policy Policy, choice *Choice) bool {
	if choice == nil {
		// Nothing to change: no audio tracks, a lone audio track, or strict
		// fallback with no preferred language present.
		return true
	}
	defaults := set.DefaultsOf(KindAudio)
	if len(defaults) != 1 {
		return false
	}
	return policy.audioRank(defaults[0].Language) == policy.audioRank(choice.Language)
}

func subtitleCompliant(set FileTrackSet, policy Policy, choice *Choice) (compliant, missing bool) {
	if choice == nil {
		if policy.RequireSubtitles {
			return false, true
		}
		return true, false
	}
	defaults := set.DefaultsOf(KindSubtitle)
	if len(defaults) != 1 {
		return false, false
	}
	rank, ok := policy.subtitleRank(defaults[0].Language)
	if !ok {
		return false, false
	}
	bestRank, _ := policy.subtitleRank(choice.Language)
	if rank != bestRank {
		return false, false
	}
	return policy.classifier()(defaults[0].Name) == choice.Class, false
}
