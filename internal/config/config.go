package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds switchboard's settings.
type Config struct {
	APIBase        string
	PollInterval   time.Duration // zero means ask the remote's /meta
	Debounce       time.Duration
	RequestTimeout time.Duration
	RegistryPath   string // empty uses the built-in sections
	LogFile        string
	LogLevel       string
}

const (
	defaultConfigPath     = "~/.config/switchboard/config.toml"
	defaultLogFile        = "~/.local/state/switchboard/switchboard.log"
	defaultAPIBase        = "127.0.0.1:8765"
	defaultDebounce       = 200 * time.Millisecond
	defaultRequestTimeout = 5 * time.Second
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIBase:        defaultAPIBase,
		Debounce:       defaultDebounce,
		RequestTimeout: defaultRequestTimeout,
		LogFile:        mustExpand(defaultLogFile),
	}
}

// Load locates and parses the config file, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase          string `toml:"api_base"`
		PollMS           int    `toml:"poll_ms"`
		DebounceMS       int    `toml:"debounce_ms"`
		RequestTimeoutMS int    `toml:"request_timeout_ms"`
		Registry         string `toml:"registry"`
		LogFile          string `toml:"log_file"`
		LogLevel         string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if base := strings.TrimSpace(raw.APIBase); base != "" {
		cfg.APIBase = base
	}
	if raw.PollMS > 0 {
		cfg.PollInterval = time.Duration(raw.PollMS) * time.Millisecond
	}
	if raw.DebounceMS > 0 {
		cfg.Debounce = time.Duration(raw.DebounceMS) * time.Millisecond
	}
	if raw.RequestTimeoutMS > 0 {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeoutMS) * time.Millisecond
	}
	if reg := strings.TrimSpace(raw.Registry); reg != "" {
		cfg.RegistryPath = mustExpand(reg)
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(raw.LogLevel))

	return cfg, nil
}

// ExpandPath resolves a leading ~ and makes path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
