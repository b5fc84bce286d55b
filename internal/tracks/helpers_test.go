package tracks

import "testing"

func intPtr(v int) *int { return &v }

// applyPlan returns a copy of the set with every mutation applied in order.
func applyPlan(t *testing.T, set FileTrackSet, plan EditPlan) FileTrackSet {
	t.Helper()
	out := FileTrackSet{Path: set.Path, Tracks: append([]Track(nil), set.Tracks...)}
	for _, m := range plan.Mutations {
		applied := false
		for i := range out.Tracks {
			if out.Tracks[i].ID != m.TrackID {
				continue
			}
			switch m.Field {
			case FieldDefault:
				out.Tracks[i].Default = m.Value
			case FieldForced:
				out.Tracks[i].Forced = m.Value
			default:
				t.Fatalf("unknown mutation field %q", m.Field)
			}
			applied = true
		}
		if !applied {
			t.Fatalf("mutation targets unknown track id %d", m.TrackID)
		}
	}
	return out
}

func countDefaults(set FileTrackSet, kind Kind) int {
	return len(set.DefaultsOf(kind))
}
