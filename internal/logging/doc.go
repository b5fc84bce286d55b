// Package logging builds the application's slog loggers: a single-line
// console handler for interactive use and a JSON handler for log files,
// plus the standardized attribute keys shared by all components.
package logging
