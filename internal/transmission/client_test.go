package transmission

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListTorrentsSessionRetry(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			if r.Header.Get("X-Transmission-Session-Id") != "" {
				t.Errorf("first request should not carry a session id")
			}
			w.Header().Set("X-Transmission-Session-Id", "token-123")
			w.WriteHeader(http.StatusConflict)
			return
		}
		if r.Header.Get("X-Transmission-Session-Id") != "token-123" {
			t.Errorf("retry missing session id, got %q", r.Header.Get("X-Transmission-Session-Id"))
		}
		body, _ := io.ReadAll(r.Body)
		var req rpcRequest
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Method != "torrent-get" {
			t.Errorf("unexpected method %q", req.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result": "success", "arguments": {"torrents": [
			{"name": "Show.S01", "downloadDir": "/downloads", "status": 6,
			 "files": [{"name": "Show.S01/ep1.mkv", "length": 100}]},
			{"name": "Paused", "downloadDir": "/downloads", "status": 0, "files": []}
		]}}`))
	}))
	defer server.Close()

	client, err := New(server.URL, "", "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	torrents, err := client.ListTorrents(context.Background())
	if err != nil {
		t.Fatalf("ListTorrents returned error: %v", err)
	}
	if requests != 2 {
		t.Fatalf("expected 2 requests (409 then retry), got %d", requests)
	}
	if len(torrents) != 2 {
		t.Fatalf("expected 2 torrents, got %d", len(torrents))
	}
	if !torrents[0].IsSeeding() || torrents[1].IsSeeding() {
		t.Fatalf("unexpected seeding states: %+v", torrents)
	}
}

func TestListTorrentsRPCFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result": "no method", "arguments": {}}`))
	}))
	defer server.Close()

	client, err := New(server.URL, "", "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.ListTorrents(context.Background()); err == nil {
		t.Fatalf("expected error for non-success rpc result")
	}
}

func TestNewRequiresURL(t *testing.T) {
	if _, err := New("", "user", "pass"); err == nil {
		t.Fatalf("expected error for empty url")
	}
}
