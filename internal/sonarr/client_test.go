package sonarr

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListSeries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/series" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("X-Api-Key") != "secret" {
			t.Errorf("missing api key header")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 1, "title": "Some Drama", "seriesType": "standard"},
			{"id": 2, "title": "Some Anime", "seriesType": "anime"}
		]`))
	}))
	defer server.Close()

	client, err := New(server.URL, "secret")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	series, err := client.ListSeries(context.Background())
	if err != nil {
		t.Fatalf("ListSeries returned error: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("expected 2 series, got %d", len(series))
	}

	anime := AnimeSeries(series)
	if len(anime) != 1 || anime[0].ID != 2 {
		t.Fatalf("anime filter = %+v", anime)
	}
}

func TestListEpisodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/episode" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("seriesId") != "2" || q.Get("includeEpisodeFile") != "true" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 10, "title": "Episode One", "seasonNumber": 1, "episodeNumber": 1,
			 "hasFile": true,
			 "episodeFile": {"id": 100, "path": "/tv/Some Anime/S01E01.mkv", "size": 1234}}
		]`))
	}))
	defer server.Close()

	client, err := New(server.URL, "secret")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	episodes, err := client.ListEpisodes(context.Background(), 2)
	if err != nil {
		t.Fatalf("ListEpisodes returned error: %v", err)
	}
	if len(episodes) != 1 {
		t.Fatalf("expected 1 episode, got %d", len(episodes))
	}
	ep := episodes[0]
	if ep.EpisodeFile == nil || ep.EpisodeFile.Path != "/tv/Some Anime/S01E01.mkv" {
		t.Fatalf("unexpected episode file: %+v", ep.EpisodeFile)
	}
}

func TestListSeriesNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client, err := New(server.URL, "wrong")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.ListSeries(context.Background()); err == nil {
		t.Fatalf("expected error on 401")
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New("", "key"); err == nil {
		t.Fatalf("expected error for missing url")
	}
	if _, err := New("http://sonarr:8989", ""); err == nil {
		t.Fatalf("expected error for missing api key")
	}
}
