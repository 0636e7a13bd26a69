// Switchboard is a terminal control surface for a remote process that
// exposes its settings over an /api/v1 HTTP API.
//
// With no subcommand it opens the TUI, or polls headless when stdout is not
// a terminal. See 'switchboard --help' for the one-shot subcommands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/switchboard/internal/app"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "switchboard: %v\n", err)
		return 1
	}
	return 0
}

// Root flags
var (
	configPath   string
	prefsPath    string
	registryPath string
	pollInterval time.Duration
	logLevel     string
	headless     bool
)

var rootCmd = &cobra.Command{
	Use:   "switchboard",
	Short: "Terminal control surface for a remote settings API",
	Long: `Switchboard keeps a set of controls in sync with the settings of a remote
process. Edits are written back as partial updates; sliders are debounced.

Run without a subcommand to open the TUI. When stdout is not a terminal, or
with --headless, switchboard polls the remote and logs connectivity changes.`,
	Example: `  # Open the TUI against the configured remote
  switchboard

  # Use a custom section registry and poll every 2s
  switchboard --registry ~/sections.yaml --poll 2s

  # Change one field from a script
  switchboard set pipeline window_size 12`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(cmd.Context(), appOptions())
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.Version = version

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/switchboard/config.toml)")
	rootCmd.PersistentFlags().StringVar(&registryPath, "registry", "", "section registry file, .toml or .yaml (default built-in)")
	rootCmd.PersistentFlags().DurationVar(&pollInterval, "poll", 0, "refresh interval, e.g. 500ms (default from the remote's /meta)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (default silent)")

	rootCmd.Flags().StringVar(&prefsPath, "prefs", "", "preferences file (default ~/.config/switchboard/prefs.toml)")
	rootCmd.Flags().BoolVar(&headless, "headless", false, "poll without the TUI even on a terminal")
}

func appOptions() app.Options {
	return app.Options{
		ConfigPath:   configPath,
		PrefsPath:    prefsPath,
		RegistryPath: registryPath,
		PollInterval: pollInterval,
		LogLevel:     logLevel,
		Headless:     headless,
	}
}
