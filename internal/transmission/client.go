package transmission

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Seeding torrent statuses as reported by the Transmission RPC API:
// 5 is queued to seed, 6 is actively seeding.
const (
	StatusSeedWait = 5
	StatusSeeding  = 6
)

// TorrentFile is a single file inside a torrent payload.
type TorrentFile struct {
	Name   string `json:"name"`
	Length int64  `json:"length"`
}

// Torrent is the subset of torrent fields the seed index needs.
type Torrent struct {
	Name        string        `json:"name"`
	DownloadDir string        `json:"downloadDir"`
	Status      int           `json:"status"`
	Files       []TorrentFile `json:"files"`
}

// IsSeeding reports whether the torrent is seeding or queued to seed.
func (t Torrent) IsSeeding() bool {
	return t.Status == StatusSeedWait || t.Status == StatusSeeding
}

// Fetcher lists torrents from a Transmission daemon.
type Fetcher interface {
	ListTorrents(ctx context.Context) ([]Torrent, error)
}

// Client talks to the Transmission RPC endpoint. Transmission issues a
// per-session CSRF token via the X-Transmission-Session-Id header; the
// client caches it and retries a request once after a 409 response.
type Client struct {
	rpcURL     string
	username   string
	password   string
	httpClient *http.Client
	sessionID  string
}

// Option configures optional Client behavior.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for RPC requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New constructs a Transmission RPC client. The URL should point at the
// RPC endpoint itself, e.g. http://host:9091/transmission/rpc.
func New(rpcURL, username, password string, opts ...Option) (*Client, error) {
	rpcURL = strings.TrimSpace(rpcURL)
	if rpcURL == "" {
		return nil, fmt.Errorf("transmission: rpc url is required")
	}
	client := &Client{
		rpcURL:   strings.TrimRight(rpcURL, "/"),
		username: username,
		password: password,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type rpcRequest struct {
	Method    string `json:"method"`
	Arguments any    `json:"arguments,omitempty"`
}

type rpcResponse struct {
	Result    string          `json:"result"`
	Arguments json.RawMessage `json:"arguments"`
}

// ListTorrents returns every torrent known to the daemon with the fields
// needed for seed matching.
func (c *Client) ListTorrents(ctx context.Context) ([]Torrent, error) {
	args := map[string]any{
		"fields": []string{"name", "downloadDir", "status", "files"},
	}
	payload, err := c.call(ctx, rpcRequest{Method: "torrent-get", Arguments: args})
	if err != nil {
		return nil, err
	}
	var decoded struct {
		Torrents []Torrent `json:"torrents"`
	}
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, fmt.Errorf("transmission: decode torrent-get response: %w", err)
	}
	return decoded.Torrents, nil
}

func (c *Client) call(ctx context.Context, req rpcRequest) (json.RawMessage, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("transmission: encode request: %w", err)
	}

	resp, err := c.do(ctx, body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusConflict {
		c.sessionID = resp.Header.Get("X-Transmission-Session-Id")
		_ = resp.Body.Close()
		resp, err = c.do(ctx, body)
		if err != nil {
			return nil, err
		}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("transmission: rpc returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("transmission: read response: %w", err)
	}
	var rpc rpcResponse
	if err := json.Unmarshal(data, &rpc); err != nil {
		return nil, fmt.Errorf("transmission: decode response: %w", err)
	}
	if rpc.Result != "success" {
		return nil, fmt.Errorf("transmission: rpc result %q", rpc.Result)
	}
	return rpc.Arguments, nil
}

func (c *Client) do(ctx context.Context, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("transmission: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.sessionID != "" {
		req.Header.Set("X-Transmission-Session-Id", c.sessionID)
	}
	if c.username != "" || c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transmission: rpc request: %w", err)
	}
	return resp, nil
}
