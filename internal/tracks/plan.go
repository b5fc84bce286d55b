package tracks

// FlagField names a per-track boolean the planner may mutate.
type FlagField string

const (
	FieldDefault FlagField = "default"
	FieldForced  FlagField = "forced"
)

// Mutation is one ordered flag change.
type Mutation struct {
	TrackID int
	Field   FlagField
	Value   bool
}

// EditPlan is the ordered list of flag mutations for one file. A plan for a
// compliant file is empty. A non-empty plan resets every other track of an
// affected kind before setting exactly one default, so an applied plan can
// never leave zero or multiple active defaults of a kind.
type EditPlan struct {
	Path      string
	Mutations []Mutation
	// MissingTarget marks the sentinel plan: a kind the policy requires has
	// no qualifying track, so the caller must skip application and classify
	// the file missing-target-language instead.
	MissingTarget bool
}

// Empty reports whether the plan carries no mutations.
func (p EditPlan) Empty() bool {
	return len(p.Mutations) == 0
}

// BuildPlan diffs the current flags against the evaluation's selection and
// produces the minimal reset-then-set mutation sequence.
func BuildPlan(set FileTrackSet, eval Evaluation) EditPlan {
	if eval.MissingSubtitles {
		return EditPlan{Path: set.Path, MissingTarget: true}
	}

	// A kind already compliant stays untouched even when the selector's
	// tie-break points at a different track of the same rank.
	plan := EditPlan{Path: set.Path}
	if !eval.AudioCompliant {
		plan.Mutations = append(plan.Mutations, kindMutations(set, KindAudio, eval.Selection.Audio)...)
	}
	if !eval.SubtitleCompliant {
		plan.Mutations = append(plan.Mutations, kindMutations(set, KindSubtitle, eval.Selection.Subtitle)...)
	}
	return plan
}

// kindMutations emits the mutations for one kind: nothing when the selection
// already is the sole default, otherwise default resets for every other
// flagged track, forced resets for every forced track, then one set-default.
func kindMutations(set FileTrackSet, kind Kind, choice *Choice) []Mutation {
	if choice == nil {
		return nil
	}
	defaults := set.DefaultsOf(kind)
	if len(defaults) == 1 && defaults[0].ID == choice.TrackID {
		return nil
	}

	var muts []Mutation
	chosenDefault := false
	for _, t := range set.OfKind(kind) {
		if t.ID == choice.TrackID {
			chosenDefault = t.Default
		} else if t.Default {
			muts = append(muts, Mutation{TrackID: t.ID, Field: FieldDefault, Value: false})
		}
		// Clearing forced alongside the default shuffle guarantees the file
		// never ends up with two forced tracks of one kind.
		if t.Forced {
			muts = append(muts, Mutation{TrackID: t.ID, Field: FieldForced, Value: false})
		}
	}
	if !chosenDefault {
		muts = append(muts, Mutation{TrackID: choice.TrackID, Field: FieldDefault, Value: true})
	}
	return muts
}
