// Package pathmap rewrites file paths between two filesystem namespaces,
// typically a media manager's container view and the local mount point.
package pathmap

import (
	"path/filepath"
	"strings"
)

// Mapper rewrites a single path prefix. The zero value is the identity.
type Mapper struct {
	From string
	To   string
}

// Enabled reports whether the mapper performs any rewriting.
func (m Mapper) Enabled() bool {
	return m.From != "" && m.To != ""
}

// Rewrite replaces the first occurrence of the From prefix and normalizes
// separators. Paths outside the prefix pass through unchanged.
func (m Mapper) Rewrite(path string) string {
	if !m.Enabled() || !strings.HasPrefix(path, m.From) {
		return path
	}
	return Normalize(m.To + path[len(m.From):])
}

// Normalize cleans a path and forces forward slashes so paths from different
// systems compare equal.
func Normalize(path string) string {
	if path == "" {
		return path
	}
	return filepath.ToSlash(filepath.Clean(path))
}
