package transmission

import (
	"path"
	"strings"

	"trackarr/internal/pathmap"
)

type nameSize struct {
	name string
	size int64
}

// SeedIndex answers whether a library file belongs to a seeding torrent.
// It matches first on the full torrent-side path, then on the torrent's
// relative path as a suffix of the queried path, and finally on the
// file's base name plus exact size, which survives directory renames
// made by the media manager after import.
type SeedIndex struct {
	paths     map[string]struct{}
	relPaths  map[string]struct{}
	nameSizes map[nameSize]struct{}
	torrents  int
}

// NewSeedIndex builds an index over the torrents that are currently
// seeding or queued to seed. Other torrents are ignored.
func NewSeedIndex(torrents []Torrent) *SeedIndex {
	idx := &SeedIndex{
		paths:     make(map[string]struct{}),
		relPaths:  make(map[string]struct{}),
		nameSizes: make(map[nameSize]struct{}),
	}
	for _, t := range torrents {
		if !t.IsSeeding() {
			continue
		}
		idx.torrents++
		for _, f := range t.Files {
			full := pathmap.Normalize(t.DownloadDir + "/" + f.Name)
			idx.paths[full] = struct{}{}
			rel := strings.TrimPrefix(pathmap.Normalize(f.Name), "/")
			// Single-component names are covered by the name+size
			// fallback; indexing them here would match on name alone.
			if strings.Contains(rel, "/") {
				idx.relPaths[rel] = struct{}{}
			}
			idx.nameSizes[nameSize{name: path.Base(full), size: f.Length}] = struct{}{}
		}
	}
	return idx
}

// Torrents reports how many seeding torrents the index covers.
func (idx *SeedIndex) Torrents() int {
	return idx.torrents
}

// Contains reports whether the given path belongs to a seeding torrent.
// The path should already be rewritten into the torrent client's
// namespace. Size is used for the name-based fallback; pass 0 to match
// on path only.
func (idx *SeedIndex) Contains(filePath string, size int64) bool {
	normalized := pathmap.Normalize(filePath)
	if _, ok := idx.paths[normalized]; ok {
		return true
	}
	if idx.matchesSuffix(normalized) {
		return true
	}
	if size > 0 {
		if _, ok := idx.nameSizes[nameSize{name: path.Base(normalized), size: size}]; ok {
			return true
		}
	}
	return false
}

// matchesSuffix checks every trailing component sequence of the query
// against the indexed torrent-relative paths, so a torrent stored under
// a different download directory still matches.
func (idx *SeedIndex) matchesSuffix(normalized string) bool {
	if len(idx.relPaths) == 0 {
		return false
	}
	parts := strings.Split(strings.TrimPrefix(normalized, "/"), "/")
	for i := len(parts) - 2; i >= 0; i-- {
		if _, ok := idx.relPaths[strings.Join(parts[i:], "/")]; ok {
			return true
		}
	}
	return false
}
