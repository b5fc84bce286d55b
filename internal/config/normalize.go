package config

import (
	"fmt"
	"os"
	"strings"

	"trackarr/internal/language"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSonarr()
	c.normalizeTransmission()
	c.normalizePolicy()
	c.normalizeFiles()
	c.normalizeWorkflow()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.ReportDir, err = expandPath(c.Paths.ReportDir); err != nil {
		return fmt.Errorf("paths.report_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSonarr() {
	c.Sonarr.URL = strings.TrimRight(strings.TrimSpace(c.Sonarr.URL), "/")
	if c.Sonarr.URL == "" {
		if value, ok := os.LookupEnv("SONARR_URL"); ok {
			c.Sonarr.URL = strings.TrimRight(strings.TrimSpace(value), "/")
		}
	}
	if c.Sonarr.APIKey == "" {
		if value, ok := os.LookupEnv("SONARR_API_KEY"); ok {
			c.Sonarr.APIKey = value
		}
	}
	if c.Sonarr.RequestTimeout <= 0 {
		c.Sonarr.RequestTimeout = defaultSonarrTimeout
	}
}

func (c *Config) normalizeTransmission() {
	c.Transmission.URL = strings.TrimSpace(c.Transmission.URL)
	if c.Transmission.URL == "" {
		c.Transmission.URL = defaultTransmissionURL
	}
	if c.Transmission.Password == "" {
		if value, ok := os.LookupEnv("TRANSMISSION_PASSWORD"); ok {
			c.Transmission.Password = value
		}
	}
}

func (c *Config) normalizePolicy() {
	c.Policy.AudioLanguages = language.NormalizeList(c.Policy.AudioLanguages)
	c.Policy.SubtitleLanguages = language.NormalizeList(c.Policy.SubtitleLanguages)
	c.Policy.AudioFallback = strings.ToLower(strings.TrimSpace(c.Policy.AudioFallback))
	if c.Policy.AudioFallback == "" {
		c.Policy.AudioFallback = defaultAudioFallback
	}
}

func (c *Config) normalizeFiles() {
	var extensions []string
	for _, ext := range c.Files.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extensions = append(extensions, ext)
	}
	if len(extensions) == 0 {
		extensions = []string{".mkv"}
	}
	c.Files.Extensions = extensions
}

func (c *Config) normalizeWorkflow() {
	if c.Workflow.PollIntervalHours <= 0 {
		c.Workflow.PollIntervalHours = defaultPollIntervalHours
	}
	if strings.TrimSpace(c.Workflow.MkvmergeBinary) == "" {
		c.Workflow.MkvmergeBinary = defaultMkvmergeBinary
	}
	if strings.TrimSpace(c.Workflow.MkvpropeditBinary) == "" {
		c.Workflow.MkvpropeditBinary = defaultMkvpropeditBinary
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
