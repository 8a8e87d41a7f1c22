package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	dbPath     string
	ephemeral  bool
	verbose    bool
}

// NewRootCmd builds the command tree. Running it without a subcommand opens
// the interactive list.
func NewRootCmd(version string) *cobra.Command {
	flags := &globalFlags{}
	rootCmd := &cobra.Command{
		Use:   "tudu",
		Short: "tudu - a small persistent todo list",
		Long: `tudu keeps an ordered todo list on disk.

Run it without arguments for the interactive view, or use the subcommands
to script the same list.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, flags)
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/tudu/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flags.dbPath, "db", "", "SQLite database path")
	rootCmd.PersistentFlags().BoolVar(&flags.ephemeral, "ephemeral", false, "Keep the list in memory only")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(addCmd(flags))
	rootCmd.AddCommand(listCmd(flags))
	rootCmd.AddCommand(toggleCmd(flags))
	rootCmd.AddCommand(removeCmd(flags))
	rootCmd.AddCommand(clearCmd(flags))
	rootCmd.AddCommand(exportCmd(flags))
	rootCmd.AddCommand(versionCmd(version))
	return rootCmd
}

// Execute runs the root command
func Execute(version string) error {
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func versionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the tudu version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tudu %s\n", version)
		},
	}
}
