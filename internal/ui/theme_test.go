package ui

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestThemeNames(t *testing.T) {
	want := []string{"Dracula", "Nord", "Gruvbox"}
	if diff := cmp.Diff(want, ThemeNames()); diff != "" {
		t.Fatalf("ThemeNames() mismatch (-want +got):\n%s", diff)
	}
}

func TestThemeNames_ReturnsCopy(t *testing.T) {
	names := ThemeNames()
	names[0] = "Changed"
	if got := ThemeNames()[0]; got != "Dracula" {
		t.Fatalf("ThemeNames()[0] = %q after caller mutation, want Dracula", got)
	}
}

func TestNextTheme(t *testing.T) {
	tests := []struct {
		current string
		want    string
	}{
		{"Dracula", "Nord"},
		{"Nord", "Gruvbox"},
		{"Gruvbox", "Dracula"},
		{"Unknown", "Dracula"},
	}
	for _, tt := range tests {
		if got := NextTheme(tt.current); got != tt.want {
			t.Fatalf("NextTheme(%q) = %q, want %q", tt.current, got, tt.want)
		}
	}
}

func TestGetTheme(t *testing.T) {
	for _, name := range ThemeNames() {
		if got := GetTheme(name).Name; got != name {
			t.Fatalf("GetTheme(%q).Name = %q", name, got)
		}
	}
	if got := GetTheme("Unknown").Name; got != "Dracula" {
		t.Fatalf("GetTheme(Unknown).Name = %q, want Dracula (fallback)", got)
	}
}

func TestThemesDefineEveryColor(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		colors := map[string]string{
			"Background": th.Background, "Surface": th.Surface, "SurfaceAlt": th.SurfaceAlt,
			"FocusBg": th.FocusBg, "Border": th.Border, "BorderFocus": th.BorderFocus,
			"Text": th.Text, "Muted": th.Muted, "Faint": th.Faint, "Accent": th.Accent,
			"Success": th.Success, "Warning": th.Warning, "Danger": th.Danger, "Info": th.Info,
			"TrackFill": th.TrackFill, "TrackEmpty": th.TrackEmpty,
		}
		for field, value := range colors {
			if value == "" {
				t.Fatalf("%s theme has empty %s", name, field)
			}
		}
	}
}
