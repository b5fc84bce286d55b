package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"trackarr/internal/language"
	"trackarr/internal/mkv"
	"trackarr/internal/tracks"
)

func newInspectCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show a file's tracks and how the policy judges them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			policy := cfg.TrackPolicy()

			probe, err := mkv.Inspect(cmd.Context(), cfg.Workflow.MkvmergeBinary, args[0])
			if err != nil {
				return err
			}
			set, err := tracks.Parse(args[0], probe.RawTracks())
			if err != nil {
				return err
			}
			eval := tracks.Evaluate(set, policy)
			plan := tracks.BuildPlan(set, eval)

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			rows := make([][]string, 0, len(set.Tracks))
			for _, t := range set.Tracks {
				marker := ""
				if (!eval.AudioCompliant && choiceIs(eval.Selection.Audio, t.ID)) ||
					(!eval.SubtitleCompliant && choiceIs(eval.Selection.Subtitle, t.ID)) {
					marker = "<- target"
				}
				rows = append(rows, []string{
					fmt.Sprintf("%d", t.ID),
					string(t.Kind),
					fmt.Sprintf("%s (%s)", language.DisplayName(t.Language), t.Language),
					t.Name,
					yesNo(t.Default),
					yesNo(t.Forced),
					marker,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Kind", "Language", "Name", "Default", "Forced", ""},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
			))

			for _, line := range renderSectionHeader("Policy Check", colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderStatusLine("Audio", boolStatus(eval.AudioCompliant), choiceLabel(eval.Selection.Audio), colorize))
			fmt.Fprintln(out, renderStatusLine("Subtitles", boolStatus(eval.SubtitleCompliant), choiceLabel(eval.Selection.Subtitle), colorize))

			switch {
			case eval.Compliant:
				fmt.Fprintln(out, renderStatusLine("Verdict", statusOK, "compliant", colorize))
			case plan.MissingTarget:
				fmt.Fprintln(out, renderStatusLine("Verdict", statusError, "no qualifying track for a mandatory kind", colorize))
			default:
				fmt.Fprintln(out, renderStatusLine("Verdict", statusWarn,
					fmt.Sprintf("%d flag edits needed", len(plan.Mutations)), colorize))
				fmt.Fprintln(out)
				fmt.Fprintln(out, "mkvpropedit "+strings.Join(mkv.Args(plan), " "))
			}
			return nil
		},
	}
}

func choiceIs(c *tracks.Choice, id int) bool {
	return c != nil && c.TrackID == id
}

func choiceLabel(c *tracks.Choice) string {
	if c == nil {
		return "no target"
	}
	return fmt.Sprintf("track %d (%s)", c.TrackID, c.Language)
}

func boolStatus(ok bool) statusKind {
	if ok {
		return statusOK
	}
	return statusWarn
}
