package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewJSONLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "trackarr.log")
	logger, err := New(Options{Level: "info", Format: "json", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("run complete", String(FieldRunID, "abc"), Int("total", 4))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var record map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &record); err != nil {
		t.Fatalf("decode log line: %v\n%s", err, data)
	}
	if record["msg"] != "run complete" {
		t.Errorf("unexpected msg %v", record["msg"])
	}
	if record["level"] != "info" {
		t.Errorf("unexpected level %v", record["level"])
	}
	if record["run_id"] != "abc" {
		t.Errorf("unexpected run_id %v", record["run_id"])
	}
	if _, ok := record["ts"]; !ok {
		t.Errorf("missing ts field")
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestConsoleHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	NewComponentLogger(logger, "runner").Info("checking file",
		String(FieldFile, "/tv/show.mkv"),
		String("title", "Some Show"))

	line := buf.String()
	for _, want := range []string{"INFO", "[runner]", "checking file", "file=/tv/show.mkv", `title="Some Show"`} {
		if !strings.Contains(line, want) {
			t.Errorf("console line missing %q: %s", want, line)
		}
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelWarn)
	logger := slog.New(newConsoleHandler(&buf, levelVar))

	logger.Info("hidden")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record should be suppressed: %s", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("warn record missing: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"unknown": slog.LevelInfo,
	}
	for input, want := range cases {
		if got := parseLevel(input); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}
