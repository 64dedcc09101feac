package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/boorusync/cmd/boorusync/cmd/migrate"
	"github.com/agentstation/boorusync/cmd/boorusync/cmd/version"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(migrate.NewCommand(a))
	rootCmd.AddCommand(version.NewCommand(version.Info{
		Version: a.version,
		Commit:  a.commit,
		Date:    a.date,
		BuiltBy: a.builtBy,
	}))
}
