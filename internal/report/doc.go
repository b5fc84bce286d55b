// Package report renders run summaries as JSON and text files and manages
// report retention.
package report
