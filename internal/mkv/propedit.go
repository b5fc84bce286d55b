package mkv

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"trackarr/internal/tracks"
)

// ErrApply marks a failed mkvpropedit invocation. The file is classified
// error-applying and the run continues.
var ErrApply = errors.New("mkv apply error")

// Args translates an edit plan into a single mkvpropedit argument vector.
// Consecutive mutations on the same track share one --edit section.
// mkvpropedit track selectors are 1-based while mkvmerge ids start at 0,
// hence the +1.
func Args(plan tracks.EditPlan) []string {
	if plan.Empty() {
		return nil
	}
	args := []string{plan.Path}
	currentTrack := -1
	for _, m := range plan.Mutations {
		if m.TrackID != currentTrack {
			args = append(args, "--edit", fmt.Sprintf("track:%d", m.TrackID+1))
			currentTrack = m.TrackID
		}
		args = append(args, "--set", fmt.Sprintf("flag-%s=%s", m.Field, boolFlag(m.Value)))
	}
	return args
}

// Apply executes mkvpropedit with the plan's mutations. Sentinel and empty
// plans are no-ops. Failures wrap ErrApply so the classifier can label the
// file without aborting the run.
func Apply(ctx context.Context, binary string, plan tracks.EditPlan) error {
	if plan.MissingTarget || plan.Empty() {
		return nil
	}
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "mkvpropedit"
	}

	cmd := exec.CommandContext(ctx, binary, Args(plan)...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s: %v: %s", ErrApply, plan.Path, err, strings.TrimSpace(string(output)))
	}
	return nil
}

func boolFlag(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
