package mkv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"trackarr/internal/tracks"
)

// Probe represents the parsed output of an mkvmerge identification run.
type Probe struct {
	FileName  string       `json:"file_name"`
	Tracks    []ProbeTrack `json:"tracks"`
	Container Container    `json:"container"`
	raw       []byte
}

// ProbeTrack describes a single track in the container. ID is a pointer so
// the parser can distinguish a missing id from track 0.
type ProbeTrack struct {
	ID         *int            `json:"id"`
	Type       string          `json:"type"`
	Properties TrackProperties `json:"properties"`
}

// TrackProperties carries the per-track metadata trackarr consumes.
type TrackProperties struct {
	Language     string `json:"language"`
	TrackName    string `json:"track_name"`
	DefaultTrack bool   `json:"default_track"`
	ForcedTrack  bool   `json:"forced_track"`
}

// Container captures container-level metadata from the probe.
type Container struct {
	Recognized bool   `json:"recognized"`
	Supported  bool   `json:"supported"`
	Type       string `json:"type"`
}

// Inspect executes `mkvmerge -J` against the provided path and decodes the
// JSON response.
func Inspect(ctx context.Context, binary string, path string) (Probe, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "mkvmerge"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Probe{}, errors.New("mkv inspect: empty path")
	}

	cmd := exec.CommandContext(ctx, binary, "-J", path)
	output, err := cmd.Output()
	if err != nil {
		detail := ""
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			detail = strings.TrimSpace(string(exitErr.Stderr))
		}
		return Probe{}, fmt.Errorf("mkv inspect: %w: %s", err, detail)
	}

	var probe Probe
	if err := json.Unmarshal(output, &probe); err != nil {
		return Probe{}, fmt.Errorf("mkv parse: %w", err)
	}
	probe.raw = append([]byte(nil), output...)
	return probe, nil
}

// Decode parses an mkvmerge -J payload without invoking the binary.
func Decode(payload []byte) (Probe, error) {
	var probe Probe
	if err := json.Unmarshal(payload, &probe); err != nil {
		return Probe{}, fmt.Errorf("mkv parse: %w", err)
	}
	probe.raw = append([]byte(nil), payload...)
	return probe, nil
}

// RawJSON returns the raw probe payload.
func (p Probe) RawJSON() []byte {
	return append([]byte(nil), p.raw...)
}

// RawTracks converts the probe into the engine's raw track form.
func (p Probe) RawTracks() []tracks.RawTrack {
	if p.Tracks == nil {
		return nil
	}
	out := make([]tracks.RawTrack, 0, len(p.Tracks))
	for _, t := range p.Tracks {
		out = append(out, tracks.RawTrack{
			ID:       t.ID,
			Type:     t.Type,
			Language: t.Properties.Language,
			Name:     t.Properties.TrackName,
			Default:  t.Properties.DefaultTrack,
			Forced:   t.Properties.ForcedTrack,
		})
	}
	return out
}
