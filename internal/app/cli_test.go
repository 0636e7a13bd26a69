package app

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/five82/switchboard/internal/engine"
)

func newTestCLI(t *testing.T) (*CLI, *fakeRemote, *bytes.Buffer) {
	t.Helper()
	fake, client := newFakeRemote(t)
	var out bytes.Buffer
	cli, err := NewCLI(context.Background(), testRegistry(t), client, &out)
	if err != nil {
		t.Fatalf("NewCLI returned error: %v", err)
	}
	return cli, fake, &out
}

func TestCLI_ShowPrintsEveryField(t *testing.T) {
	cli, _, out := newTestCLI(t)

	if err := cli.Show(); err != nil {
		t.Fatalf("Show returned error: %v", err)
	}
	want := "pipeline.enabled = true\n" +
		"pipeline.mode = fast\n" +
		"pipeline.window_size = 5\n" +
		"pipeline.gain_x = 2.5\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Fatalf("Show output mismatch (-want +got):\n%s", diff)
	}
}

func TestCLI_ShowRejectsUnknownAndStaticSections(t *testing.T) {
	cli, fake, _ := newTestCLI(t)

	if err := cli.Show("nope"); err == nil {
		t.Fatalf("Show(nope) returned nil error")
	}
	if err := cli.Show("config"); err == nil {
		t.Fatalf("Show(config) returned nil error")
	}
	if calls := fake.Calls(); len(calls) != 0 {
		t.Fatalf("calls = %v, want none", calls)
	}
}

func TestCLI_ShowReportsFailedSections(t *testing.T) {
	cli, fake, _ := newTestCLI(t)
	fake.update(func(f *fakeRemote) { f.failing["pipeline"] = true })

	err := cli.Show("pipeline")
	if err == nil || !strings.Contains(err.Error(), "pipeline") {
		t.Fatalf("Show error = %v, want fetch failure naming pipeline", err)
	}
}

func TestCLI_SetWritesThroughControls(t *testing.T) {
	cli, fake, out := newTestCLI(t)

	if err := cli.Set("pipeline", "window_size", "8"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if got, want := out.String(), "pipeline.window_size = 8\n"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
	want := []map[string]any{{"window_size": float64(8)}}
	if diff := cmp.Diff(want, fake.Patches()); diff != "" {
		t.Fatalf("patches mismatch (-want +got):\n%s", diff)
	}
}

func TestCLI_SetFloatAndChoice(t *testing.T) {
	cli, fake, _ := newTestCLI(t)

	if err := cli.Set("pipeline", "gain_x", "3.5"); err != nil {
		t.Fatalf("Set(gain_x) returned error: %v", err)
	}
	if err := cli.Set("pipeline", "mode", "normal"); err != nil {
		t.Fatalf("Set(mode) returned error: %v", err)
	}
	want := []map[string]any{{"gain_x": 3.5}, {"mode": "normal"}}
	if diff := cmp.Diff(want, fake.Patches()); diff != "" {
		t.Fatalf("patches mismatch (-want +got):\n%s", diff)
	}
}

func TestCLI_SetAcceptsNumericallyEqualConfirmation(t *testing.T) {
	tests := []struct {
		name, key, raw, body, want string
	}{
		{"float as 1.0", "gain_x", "1", `{"gain_x": 1.0}`, "pipeline.gain_x = 1.0\n"},
		{"int as 8.0", "window_size", "8", `{"window_size": 8.0}`, "pipeline.window_size = 8.0\n"},
		{"float with trailing zero", "gain_x", "2.50", `{"gain_x": 2.5}`, "pipeline.gain_x = 2.5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, fake, out := newTestCLI(t)
			fake.update(func(f *fakeRemote) { f.patchBody = tt.body })

			if err := cli.Set("pipeline", tt.key, tt.raw); err != nil {
				t.Fatalf("Set returned error: %v", err)
			}
			if got := out.String(); got != tt.want {
				t.Fatalf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCLI_SetUnchangedToggleSkipsWrite(t *testing.T) {
	cli, fake, out := newTestCLI(t)

	if err := cli.Set("pipeline", "enabled", "true"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if patches := fake.Patches(); len(patches) != 0 {
		t.Fatalf("patches = %v, want none", patches)
	}
	if got, want := out.String(), "pipeline.enabled = true\n"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}

	if err := cli.Set("pipeline", "enabled", "false"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	want := []map[string]any{{"enabled": false}}
	if diff := cmp.Diff(want, fake.Patches()); diff != "" {
		t.Fatalf("patches mismatch (-want +got):\n%s", diff)
	}
}

func TestCLI_SetValidatesBeforeAnyRequest(t *testing.T) {
	tests := []struct {
		name, section, key, raw string
	}{
		{"unknown section", "nope", "x", "1"},
		{"static section", "config", "x", "1"},
		{"unknown field", "pipeline", "nope", "1"},
		{"not a number", "pipeline", "window_size", "abc"},
		{"below range", "pipeline", "window_size", "0"},
		{"above range", "pipeline", "gain_x", "10.5"},
		{"unknown option", "pipeline", "mode", "turbo"},
		{"not a bool", "pipeline", "enabled", "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, fake, _ := newTestCLI(t)
			if err := cli.Set(tt.section, tt.key, tt.raw); err == nil {
				t.Fatalf("Set(%s, %s, %s) returned nil error", tt.section, tt.key, tt.raw)
			}
			if calls := fake.Calls(); len(calls) != 0 {
				t.Fatalf("calls = %v, want none", calls)
			}
		})
	}
}

func TestCLI_SetReportsRejectedWrite(t *testing.T) {
	cli, fake, out := newTestCLI(t)
	fake.update(func(f *fakeRemote) { f.patchStatus = http.StatusBadRequest })

	err := cli.Set("pipeline", "window_size", "9")
	if err == nil || !strings.Contains(err.Error(), "requested 9") {
		t.Fatalf("Set error = %v, want mismatch report", err)
	}
	if got, want := out.String(), "pipeline.window_size = 5\n"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestCLI_Profiles(t *testing.T) {
	cli, fake, out := newTestCLI(t)
	fake.update(func(f *fakeRemote) { f.profiles = []string{"day", "night"} })

	if err := cli.ListProfiles(); err != nil {
		t.Fatalf("ListProfiles returned error: %v", err)
	}
	if got, want := out.String(), "day\nnight\n"; got != want {
		t.Fatalf("list output = %q, want %q", got, want)
	}

	out.Reset()
	if err := cli.LoadProfile("night"); err != nil {
		t.Fatalf("LoadProfile returned error: %v", err)
	}
	if got, want := out.String(), "Loaded config: night\n"; got != want {
		t.Fatalf("load output = %q, want %q", got, want)
	}

	out.Reset()
	if err := cli.SaveProfile(" dusk "); err != nil {
		t.Fatalf("SaveProfile returned error: %v", err)
	}
	if got, want := out.String(), "Saved new config: dusk\n"; got != want {
		t.Fatalf("save output = %q, want %q", got, want)
	}
	if got := cli.eng.Profiles().Names; !cmp.Equal(got, []string{"day", "night", "dusk"}) {
		t.Fatalf("names = %v, want day night dusk", got)
	}
}

func TestCLI_LoadProfileFailure(t *testing.T) {
	cli, fake, _ := newTestCLI(t)
	fake.update(func(f *fakeRemote) { f.loadStatus = http.StatusNotFound })

	err := cli.LoadProfile("ghost")
	if err == nil || !strings.Contains(err.Error(), "no such config") {
		t.Fatalf("LoadProfile error = %v, want remote message", err)
	}
}

func TestCLI_EmptyProfileNameMakesNoCall(t *testing.T) {
	cli, fake, _ := newTestCLI(t)

	if err := cli.SaveProfile("   "); !errors.Is(err, engine.ErrEmptyName) {
		t.Fatalf("SaveProfile error = %v, want ErrEmptyName", err)
	}
	if calls := fake.Calls(); len(calls) != 0 {
		t.Fatalf("calls = %v, want none", calls)
	}
}

func TestCLI_Sync(t *testing.T) {
	cli, fake, out := newTestCLI(t)

	if err := cli.Sync(); err != nil {
		t.Fatalf("Sync returned error: %v", err)
	}
	if got, want := out.String(), "Working config saved.\n"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}

	fake.update(func(f *fakeRemote) { f.syncStatus = http.StatusInternalServerError })
	if err := cli.Sync(); err == nil {
		t.Fatalf("Sync returned nil error after remote failure")
	}
}

func TestCLI_Meta(t *testing.T) {
	cli, _, out := newTestCLI(t)

	if err := cli.Meta(); err != nil {
		t.Fatalf("Meta returned error: %v", err)
	}
	if got, want := out.String(), "version: v1.2.3\npoll interval: 500ms\n"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}
