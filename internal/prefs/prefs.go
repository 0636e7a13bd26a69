// Package prefs persists the operator's TUI preferences between sessions in
// ~/.config/switchboard/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/switchboard/internal/config"
)

// Prefs holds what the TUI restores on start.
type Prefs struct {
	Theme       string `toml:"theme"`
	LastTab     string `toml:"last_tab,omitempty"`
	LastProfile string `toml:"last_profile,omitempty"`
}

const (
	defaultPrefsPath = "~/.config/switchboard/prefs.toml"
	defaultTheme     = "Dracula"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Default returns the preferences of a first run.
func Default() Prefs {
	return Prefs{Theme: defaultTheme}
}

func (p Prefs) normalized() Prefs {
	p.Theme = strings.TrimSpace(p.Theme)
	if p.Theme == "" {
		p.Theme = defaultTheme
	}
	p.LastTab = strings.TrimSpace(p.LastTab)
	p.LastProfile = strings.TrimSpace(p.LastProfile)
	return p
}

// Load reads preferences from path; empty uses DefaultPath. A missing file
// is a first run and yields the defaults. An unreadable or invalid file also
// yields the defaults, together with an error the caller may log.
func Load(path string) (Prefs, error) {
	resolved, err := resolve(path)
	if err != nil {
		return Default(), err
	}

	data, err := os.ReadFile(resolved)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("read prefs: %w", err)
	}

	var p Prefs
	if err := toml.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("parse prefs %s: %w", resolved, err)
	}
	return p.normalized(), nil
}

// Save writes preferences to path, creating parent directories. The file is
// replaced atomically so a crash never leaves it half written.
func Save(path string, p Prefs) error {
	resolved, err := resolve(path)
	if err != nil {
		return err
	}
	data, err := toml.Marshal(p.normalized())
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".prefs-*.toml")
	if err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp.Name(), resolved); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func resolve(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	resolved, err := config.ExpandPath(path)
	if err != nil {
		return "", fmt.Errorf("resolve prefs path: %w", err)
	}
	return resolved, nil
}
