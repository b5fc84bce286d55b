// Package outcome classifies per-file processing results and aggregates them
// into a run summary. The aggregator is an explicit object handed into each
// file evaluation, never a process-wide singleton, so independent runs and
// parallel tests cannot interfere.
package outcome
