// Package runner orchestrates one normalization pass: it walks the Sonarr
// library, evaluates each episode file against the track policy, applies
// flag edits, and folds the results into a run report.
package runner
