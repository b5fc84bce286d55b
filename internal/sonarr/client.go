// Package sonarr provides a minimal Sonarr v3 API client covering the series
// and episode listings trackarr consumes.
package sonarr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Series represents one Sonarr series entry.
type Series struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	SeriesType string `json:"seriesType"`
	Path       string `json:"path"`
}

// IsAnime reports whether Sonarr manages the series as anime.
func (s Series) IsAnime() bool {
	return strings.EqualFold(s.SeriesType, "anime")
}

// EpisodeFile carries the on-disk file metadata attached to an episode.
type EpisodeFile struct {
	ID   int64  `json:"id"`
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// Episode represents one Sonarr episode, optionally with its file.
type Episode struct {
	ID            int64        `json:"id"`
	Title         string       `json:"title"`
	SeasonNumber  int          `json:"seasonNumber"`
	EpisodeNumber int          `json:"episodeNumber"`
	HasFile       bool         `json:"hasFile"`
	EpisodeFile   *EpisodeFile `json:"episodeFile"`
}

// Lister defines the Sonarr operations the runner depends on.
type Lister interface {
	ListSeries(ctx context.Context) ([]Series, error)
	ListEpisodes(ctx context.Context, seriesID int64) ([]Episode, error)
}

// Client provides access to the Sonarr v3 API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

var _ Lister = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a Sonarr client.
func New(baseURL, apiKey string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("sonarr base url required")
	}
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("sonarr api key required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// ListSeries fetches every series known to Sonarr.
func (c *Client) ListSeries(ctx context.Context) ([]Series, error) {
	var series []Series
	if err := c.get(ctx, "/api/v3/series", nil, &series); err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}
	return series, nil
}

// ListEpisodes fetches the episodes of one series, including episode files.
func (c *Client) ListEpisodes(ctx context.Context, seriesID int64) ([]Episode, error) {
	params := url.Values{}
	params.Set("seriesId", strconv.FormatInt(seriesID, 10))
	params.Set("includeEpisodeFile", "true")

	var episodes []Episode
	if err := c.get(ctx, "/api/v3/episode", params, &episodes); err != nil {
		return nil, fmt.Errorf("list episodes for series %d: %w", seriesID, err)
	}
	return episodes, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse sonarr url: %w", err)
	}
	if params != nil {
		endpoint.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sonarr returned %d for %s", resp.StatusCode, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode sonarr response: %w", err)
	}
	return nil
}

// AnimeSeries filters a series listing down to anime entries.
func AnimeSeries(series []Series) []Series {
	var anime []Series
	for _, s := range series {
		if s.IsAnime() {
			anime = append(anime, s)
		}
	}
	return anime
}
