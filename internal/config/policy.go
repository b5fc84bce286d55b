package config

import "trackarr/internal/tracks"

// TrackPolicy builds the selection policy from the [policy] section.
func (c *Config) TrackPolicy() tracks.Policy {
	signs := c.Policy.SignsMarkers
	if len(signs) == 0 {
		signs = tracks.DefaultSignsMarkers
	}
	full := c.Policy.FullMarkers
	if len(full) == 0 {
		full = tracks.DefaultFullMarkers
	}
	return tracks.Policy{
		AudioLanguages:       c.Policy.AudioLanguages,
		SubtitleLanguages:    c.Policy.SubtitleLanguages,
		AudioFallback:        tracks.AudioFallback(c.Policy.AudioFallback),
		RequireSubtitles:     c.Policy.RequireSubtitles,
		SingleAudioCompliant: c.Policy.SingleAudioCompliant,
		Classify:             tracks.NewClassifier(signs, full),
	}
}
