package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != defaultAPIBase {
		t.Fatalf("APIBase = %q, want %q", cfg.APIBase, defaultAPIBase)
	}
	if cfg.PollInterval != 0 {
		t.Fatalf("PollInterval = %v, want 0 (ask /meta)", cfg.PollInterval)
	}
	if cfg.Debounce != defaultDebounce {
		t.Fatalf("Debounce = %v, want %v", cfg.Debounce, defaultDebounce)
	}
	if cfg.RequestTimeout != defaultRequestTimeout {
		t.Fatalf("RequestTimeout = %v, want %v", cfg.RequestTimeout, defaultRequestTimeout)
	}

	wantLog, err := expandPath(defaultLogFile)
	if err != nil {
		t.Fatalf("expandPath(defaultLogFile) returned error: %v", err)
	}
	if cfg.LogFile != wantLog {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, wantLog)
	}
	if cfg.RegistryPath != "" {
		t.Fatalf("RegistryPath = %q, want empty", cfg.RegistryPath)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_base = "  10.0.0.5:9999  "
poll_ms = 250
debounce_ms = 120
request_timeout_ms = 1500
registry = "  ~/sections.yaml  "
log_file = "  ~/logs/sb.log  "
log_level = " DEBUG "
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != "10.0.0.5:9999" {
		t.Fatalf("APIBase = %q, want %q", cfg.APIBase, "10.0.0.5:9999")
	}
	if cfg.PollInterval != 250*time.Millisecond {
		t.Fatalf("PollInterval = %v, want 250ms", cfg.PollInterval)
	}
	if cfg.Debounce != 120*time.Millisecond {
		t.Fatalf("Debounce = %v, want 120ms", cfg.Debounce)
	}
	if cfg.RequestTimeout != 1500*time.Millisecond {
		t.Fatalf("RequestTimeout = %v, want 1.5s", cfg.RequestTimeout)
	}
	if cfg.RegistryPath != filepath.Join(home, "sections.yaml") {
		t.Fatalf("RegistryPath = %q, want it under HOME %q", cfg.RegistryPath, home)
	}
	if !strings.HasPrefix(cfg.LogFile, home) {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoad_NonPositiveDurationsKeepDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_base = "   "
poll_ms = -5
debounce_ms = 0
request_timeout_ms = -1
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != defaultAPIBase {
		t.Fatalf("APIBase = %q, want default", cfg.APIBase)
	}
	if cfg.PollInterval != 0 || cfg.Debounce != defaultDebounce || cfg.RequestTimeout != defaultRequestTimeout {
		t.Fatalf("durations = %v/%v/%v, want defaults", cfg.PollInterval, cfg.Debounce, cfg.RequestTimeout)
	}
}

func TestLoad_InvalidTOMLReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("api_base = [\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error for invalid TOML")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("error = %v, want parse config error", err)
	}
}

func TestLoad_DefaultPathUsesHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "switchboard")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`api_base = "remote:1"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != "remote:1" {
		t.Fatalf("APIBase = %q, want remote:1", cfg.APIBase)
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "tilde", input: "~/x/y", want: filepath.Join(home, "x", "y")},
		{name: "absolute", input: "/tmp/a", want: "/tmp/a"},
		{name: "blank", input: "   ", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPath(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ExpandPath(%q) returned nil error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExpandPath(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
