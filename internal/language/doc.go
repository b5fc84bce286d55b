// Package language provides unified language code normalization and mapping.
//
// All language-related conversions (ISO 639-2 normalization, display names,
// track-name language hints) are consolidated here so the track engine,
// reporting, and anomaly detection share one table.
package language
