package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	cmd := newRootCommand()
	cmd.SetArgs([]string{"config", "init", "--path", target})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("config init returned error: %v\n%s", err, out.String())
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[sonarr]") {
		t.Fatalf("sample missing sonarr section:\n%s", data)
	}
}

func TestConfigInitRefusesToOverwrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(target, []byte("# existing"), 0o644); err != nil {
		t.Fatalf("seed existing config: %v", err)
	}

	cmd := newRootCommand()
	cmd.SetArgs([]string{"config", "init", "--path", target})
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected overwrite refusal, got %v", err)
	}
}

func TestConfigValidateWithExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
[paths]
data_dir = "` + filepath.Join(dir, "data") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"
report_dir = "` + filepath.Join(dir, "reports") + `"

[sonarr]
url = "http://sonarr:8989"
api_key = "k"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cmd := newRootCommand()
	cmd.SetArgs([]string{"--config", path, "config", "validate"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("config validate returned error: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "Configuration valid") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}
