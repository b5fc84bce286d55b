package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSonarr(); err != nil {
		return err
	}
	if err := c.validateTransmission(); err != nil {
		return err
	}
	if err := c.validatePolicy(); err != nil {
		return err
	}
	if err := c.validateFiles(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSonarr() error {
	if c.Sonarr.URL == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/trackarr/config.toml"
		}
		return fmt.Errorf("sonarr.url is required. Set SONARR_URL env var or edit %s (create with 'trackarr config init')", defaultPath)
	}
	if c.Sonarr.APIKey == "" {
		return errors.New("sonarr.api_key is required. Set SONARR_API_KEY env var or edit the config file")
	}
	return nil
}

func (c *Config) validateTransmission() error {
	if !c.Transmission.Enabled {
		return nil
	}
	if strings.TrimSpace(c.Transmission.URL) == "" {
		return errors.New("transmission.url must be set when transmission.enabled is true")
	}
	if (c.Transmission.PathMapFrom == "") != (c.Transmission.PathMapTo == "") {
		return errors.New("transmission.path_map_from and transmission.path_map_to must be set together")
	}
	return nil
}

func (c *Config) validatePolicy() error {
	if len(c.Policy.AudioLanguages) == 0 {
		return errors.New("policy.audio_languages must list at least one language")
	}
	if len(c.Policy.SubtitleLanguages) == 0 {
		return errors.New("policy.subtitle_languages must list at least one language")
	}
	switch c.Policy.AudioFallback {
	case "strict", "lenient":
	default:
		return fmt.Errorf("policy.audio_fallback must be %q or %q", "strict", "lenient")
	}
	return nil
}

func (c *Config) validateFiles() error {
	if (c.Files.PathMapFrom == "") != (c.Files.PathMapTo == "") {
		return errors.New("files.path_map_from and files.path_map_to must be set together")
	}
	return nil
}
