// Package daemon schedules periodic normalization runs and guards against
// concurrent instances with a file lock.
package daemon
