package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir   string `toml:"data_dir"`
	LogDir    string `toml:"log_dir"`
	ReportDir string `toml:"report_dir"`
}

// Sonarr contains configuration for the Sonarr API connection.
type Sonarr struct {
	URL            string `toml:"url"`
	APIKey         string `toml:"api_key"`
	AnimeOnly      bool   `toml:"anime_only"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Transmission contains configuration for seeding exclusion.
type Transmission struct {
	Enabled     bool   `toml:"enabled"`
	URL         string `toml:"url"`
	Username    string `toml:"username"`
	Password    string `toml:"password"`
	PathMapFrom string `toml:"path_map_from"`
	PathMapTo   string `toml:"path_map_to"`
}

// Policy contains the track selection policy.
type Policy struct {
	AudioLanguages       []string `toml:"audio_languages"`
	SubtitleLanguages    []string `toml:"subtitle_languages"`
	AudioFallback        string   `toml:"audio_fallback"`
	RequireSubtitles     bool     `toml:"require_subtitles"`
	SingleAudioCompliant bool     `toml:"single_audio_compliant"`
	SignsMarkers         []string `toml:"signs_markers"`
	FullMarkers          []string `toml:"full_markers"`
}

// Files contains file discovery and path translation settings.
type Files struct {
	Extensions  []string `toml:"extensions"`
	PathMapFrom string   `toml:"path_map_from"`
	PathMapTo   string   `toml:"path_map_to"`
}

// Workflow contains run and daemon timing settings.
type Workflow struct {
	DryRun            bool   `toml:"dry_run"`
	RunOnce           bool   `toml:"run_once"`
	PollIntervalHours int    `toml:"poll_interval_hours"`
	MkvmergeBinary    string `toml:"mkvmerge_binary"`
	MkvpropeditBinary string `toml:"mkvpropedit_binary"`
}

// Reports contains report output settings.
type Reports struct {
	Enabled  bool `toml:"enabled"`
	KeepLast int  `toml:"keep_last"`
}

// History contains run history settings.
type History struct {
	Enabled bool `toml:"enabled"`
}

// Notifications contains ntfy push notification settings.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Logging contains log output settings.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for Trackarr.
type Config struct {
	Paths         Paths         `toml:"paths"`
	Sonarr        Sonarr        `toml:"sonarr"`
	Transmission  Transmission  `toml:"transmission"`
	Policy        Policy        `toml:"policy"`
	Files         Files         `toml:"files"`
	Workflow      Workflow      `toml:"workflow"`
	Reports       Reports       `toml:"reports"`
	History       History       `toml:"history"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/trackarr/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("trackarr.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for operation.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.DataDir, c.Paths.LogDir}
	if c.Reports.Enabled {
		dirs = append(dirs, c.Paths.ReportDir)
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// HistoryDBPath returns the location of the run history database.
func (c *Config) HistoryDBPath() string {
	return filepath.Join(c.Paths.DataDir, "history.db")
}

// LockPath returns the daemon lock file location.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, "trackarr.lock")
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
