package transmission

import "testing"

func seedTorrents() []Torrent {
	return []Torrent{
		{
			Name:        "Show.S01",
			DownloadDir: "/downloads/tv",
			Status:      StatusSeeding,
			Files: []TorrentFile{
				{Name: "Show.S01/Show.S01E01.mkv", Length: 1000},
				{Name: "Show.S01/Show.S01E02.mkv", Length: 2000},
			},
		},
		{
			Name:        "Stopped.S02",
			DownloadDir: "/downloads/tv",
			Status:      0,
			Files: []TorrentFile{
				{Name: "Stopped.S02/Stopped.S02E01.mkv", Length: 3000},
			},
		},
	}
}

func TestSeedIndexExactPath(t *testing.T) {
	idx := NewSeedIndex(seedTorrents())
	if idx.Torrents() != 1 {
		t.Fatalf("expected 1 seeding torrent indexed, got %d", idx.Torrents())
	}
	if !idx.Contains("/downloads/tv/Show.S01/Show.S01E01.mkv", 0) {
		t.Fatalf("expected exact path match")
	}
	if idx.Contains("/downloads/tv/Other/Other.mkv", 0) {
		t.Fatalf("unexpected match for unknown path")
	}
}

func TestSeedIndexNameSizeFallback(t *testing.T) {
	idx := NewSeedIndex(seedTorrents())
	// Media manager renamed the parent directory after import.
	if !idx.Contains("/tv/Show Season 1/Show.S01E02.mkv", 2000) {
		t.Fatalf("expected name+size match")
	}
	if idx.Contains("/tv/Show Season 1/Show.S01E02.mkv", 9999) {
		t.Fatalf("size mismatch should not match")
	}
	if idx.Contains("/tv/Show Season 1/Show.S01E02.mkv", 0) {
		t.Fatalf("zero size should disable the fallback")
	}
}

func TestSeedIndexRelativeSuffixMatch(t *testing.T) {
	idx := NewSeedIndex(seedTorrents())
	// Same torrent layout mounted under a different download directory.
	if !idx.Contains("/mnt/storage/Show.S01/Show.S01E01.mkv", 0) {
		t.Fatalf("expected suffix match on torrent-relative path")
	}
	// A bare file name is not enough without a size.
	if idx.Contains("/elsewhere/Show.S01E01.mkv", 0) {
		t.Fatalf("base name alone should not match")
	}
}

func TestSeedIndexIgnoresStoppedTorrents(t *testing.T) {
	idx := NewSeedIndex(seedTorrents())
	if idx.Contains("/downloads/tv/Stopped.S02/Stopped.S02E01.mkv", 3000) {
		t.Fatalf("stopped torrent should not be indexed")
	}
}

func TestSeedIndexNormalizesSeparators(t *testing.T) {
	idx := NewSeedIndex([]Torrent{{
		DownloadDir: `/downloads`,
		Status:      StatusSeedWait,
		Files:       []TorrentFile{{Name: "dir/file.mkv", Length: 10}},
	}})
	if !idx.Contains(`/downloads//dir/file.mkv`, 0) {
		t.Fatalf("expected normalized path match")
	}
}
