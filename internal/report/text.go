package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	xlang "golang.org/x/text/language"

	"trackarr/internal/language"
	"trackarr/internal/outcome"
)

// labelOrder fixes the display order of result counts in text reports.
var labelOrder = []outcome.Label{
	outcome.LabelCompliant,
	outcome.LabelModified,
	outcome.LabelMissingTarget,
	outcome.LabelSkippedSeeding,
	outcome.LabelError,
	outcome.LabelErrorApplying,
}

var titler = cases.Title(xlang.English)

// RenderText produces the human-readable report body.
func RenderText(r Report) string {
	var b strings.Builder
	s := r.Summary

	b.WriteString("Track Compliance Report\n")
	fmt.Fprintf(&b, "Run:      %s", r.RunID)
	if r.DryRun {
		b.WriteString(" (dry run)")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Started:  %s\n", s.StartedAt.UTC().Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "Finished: %s\n", r.FinishedAt.UTC().Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "Duration: %s\n", r.Duration().Round(time.Second))

	b.WriteString("\nResults\n")
	for _, label := range labelOrder {
		if n := s.Counts[label]; n > 0 {
			fmt.Fprintf(&b, "  %-26s %d\n", string(label), n)
		}
	}
	fmt.Fprintf(&b, "  %-26s %d\n", "total", s.Total)

	writeHistogram(&b, "Audio Languages", s.AudioLangs)
	writeHistogram(&b, "Subtitle Languages", s.SubLangs)
	writeHistogram(&b, "Chosen Audio Languages", s.ChosenAud)
	writeHistogram(&b, "Chosen Subtitle Languages", s.ChosenSub)

	writeAnomalies(&b, s.Anomalies)
	writeAttention(&b, s.Outcomes)

	return b.String()
}

func writeHistogram(b *strings.Builder, heading string, hist map[string]int) {
	if len(hist) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s\n", heading)
	for _, code := range outcome.SortedLangs(hist) {
		fmt.Fprintf(b, "  %-26s %d\n", fmt.Sprintf("%s (%s)", language.DisplayName(code), code), hist[code])
	}
}

func writeAnomalies(b *strings.Builder, anomalies map[outcome.Anomaly][]outcome.FileAnomaly) {
	if len(anomalies) == 0 {
		return
	}
	tags := make([]string, 0, len(anomalies))
	for tag := range anomalies {
		tags = append(tags, string(tag))
	}
	sort.Strings(tags)

	b.WriteString("\nAnomalies\n")
	for _, tag := range tags {
		b.WriteString("  " + titler.String(strings.ReplaceAll(tag, "-", " ")) + "\n")
		for _, entry := range anomalies[outcome.Anomaly(tag)] {
			a := entry.Anomaly
			fmt.Fprintf(b, "    %s: track %d (%s) code %q", entry.Path, a.TrackID, a.Kind, a.Language)
			if a.Name != "" {
				fmt.Fprintf(b, " name %q", a.Name)
			}
			b.WriteString("\n")
		}
	}
}

// writeAttention lists files that ended in a non-clean state so operators
// do not have to scan the full outcome list.
func writeAttention(b *strings.Builder, outcomes []outcome.Outcome) {
	var flagged []outcome.Outcome
	for _, o := range outcomes {
		switch o.Label {
		case outcome.LabelCompliant, outcome.LabelModified:
			continue
		}
		flagged = append(flagged, o)
	}
	if len(flagged) == 0 {
		return
	}
	b.WriteString("\nAttention Needed\n")
	for _, o := range flagged {
		fmt.Fprintf(b, "  %s: %s", o.Path, o.Label)
		if o.Detail != "" {
			fmt.Fprintf(b, " (%s)", o.Detail)
		}
		b.WriteString("\n")
	}
}
