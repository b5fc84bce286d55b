// Package history records finished runs in a local SQLite database so past
// results can be listed from the CLI.
package history
