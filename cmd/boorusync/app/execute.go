package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/boorusync/internal/cmd/output"
	"github.com/agentstation/boorusync/pkg/errors"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitConfigError = 2
)

// Execute runs the boorusync CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "boorusync",
		Short:   "Copy tags and sources from Oxibooru onto Bakabooru posts",
		Version: a.version,
		Long: `boorusync enriches a Bakabooru library with metadata from Oxibooru.

Every image post in the Bakabooru library is reverse searched on Oxibooru.
When an exact or sufficiently similar match is found, the match's tags
(with their categories) and sources are added to the Bakabooru post.
Nothing is ever removed from Bakabooru.

Configuration is read from flags, BOORUSYNC_* environment variables,
.env files and ~/.boorusync.yaml, in that order.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.PersistentFlags().String("config", "", "config file (default is $HOME/.boorusync.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringP("format", "o", "", "summary format: table, json, yaml (default: table on a terminal, json otherwise)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("boorusync {{.Version}}\n")

	// Bad flags are configuration errors and exit with ExitConfigError.
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.NewConfigError("flags", err.Error(), err)
	})

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if configFile := mustGetString(cmd, "config"); configFile != "" {
		if err := readConfigFile(a.viper, configFile); err != nil {
			return err
		}
		a.config = configFromViper(a.viper)
	}

	a.config.UpdateFromFlags(
		mustGetBool(cmd, "verbose"),
		mustGetBool(cmd, "quiet"),
		mustGetBool(cmd, "no-color"),
		mustGetString(cmd, "format"),
		mustGetString(cmd, "log-level"),
	)

	format, err := output.ParseFormat(a.config.Format)
	if err != nil {
		return errors.NewConfigError("format", err.Error(), err)
	}
	a.config.Format = string(format)

	// Reinitialize logger with updated config
	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// ExitCode maps a command error to the process exit status: configuration
// problems exit with ExitConfigError, everything else with ExitFailure.
// A fail-fast abort is a runtime failure whatever the post's error was.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.IsAborted(err):
		return ExitFailure
	case errors.IsConfigError(err):
		return ExitConfigError
	default:
		return ExitFailure
	}
}

// ExitOnError prints err and exits with its ExitCode.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		//nolint:errcheck // Ignoring write error since we're exiting anyway
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(ExitCode(err))
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
