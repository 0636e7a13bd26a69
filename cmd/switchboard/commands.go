package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/switchboard/internal/app"
	"github.com/five82/switchboard/internal/logging"
)

func init() {
	profilesCmd.AddCommand(profilesListCmd, profilesLoadCmd, profilesSaveCmd)
	rootCmd.AddCommand(profilesCmd, syncCmd, showCmd, setCmd, metaCmd, versionCmd)
}

// newCLI prepares a session for a one-shot subcommand. Logs go to stderr so
// stdout stays parseable.
func newCLI(cmd *cobra.Command) (*app.CLI, error) {
	sess, err := app.Prepare(appOptions())
	if err != nil {
		return nil, err
	}
	if err := logging.Initialize(logging.Options{Level: sess.Config.LogLevel}); err != nil {
		return nil, err
	}
	return app.NewCLI(cmd.Context(), sess.Registry, sess.Client, cmd.OutOrStdout())
}

// withCLI adapts a CLI operation to a cobra RunE.
func withCLI(fn func(cli *app.CLI, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cli, err := newCLI(cmd)
		if err != nil {
			return err
		}
		defer logging.Sync()
		return fn(cli, args)
	}
}

var profilesCmd = &cobra.Command{
	Use:     "profiles",
	Aliases: []string{"configs"},
	Short:   "List, load and save named configs on the remote",
}

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print saved config names",
	Args:  cobra.NoArgs,
	RunE: withCLI(func(cli *app.CLI, _ []string) error {
		return cli.ListProfiles()
	}),
}

var profilesLoadCmd = &cobra.Command{
	Use:   "load NAME",
	Short: "Make a saved config the active remote state",
	Args:  cobra.ExactArgs(1),
	RunE: withCLI(func(cli *app.CLI, args []string) error {
		return cli.LoadProfile(args[0])
	}),
}

var profilesSaveCmd = &cobra.Command{
	Use:   "save NAME",
	Short: "Save the current remote state as a new config",
	Args:  cobra.ExactArgs(1),
	RunE: withCLI(func(cli *app.CLI, args []string) error {
		return cli.SaveProfile(args[0])
	}),
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Persist the working config under its current name",
	Args:  cobra.NoArgs,
	RunE: withCLI(func(cli *app.CLI, _ []string) error {
		return cli.Sync()
	}),
}

var showCmd = &cobra.Command{
	Use:   "show [SECTION...]",
	Short: "Print the current value of every field",
	RunE: withCLI(func(cli *app.CLI, args []string) error {
		return cli.Show(args...)
	}),
}

var setCmd = &cobra.Command{
	Use:   "set SECTION FIELD VALUE",
	Short: "Write one field and print the value the remote confirmed",
	Args:  cobra.ExactArgs(3),
	RunE: withCLI(func(cli *app.CLI, args []string) error {
		return cli.Set(args[0], args[1], args[2])
	}),
}

var metaCmd = &cobra.Command{
	Use:   "meta",
	Short: "Print the remote version and poll interval",
	Args:  cobra.NoArgs,
	RunE: withCLI(func(cli *app.CLI, _ []string) error {
		return cli.Meta()
	}),
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "switchboard %s\n", version)
	},
}
