// Package cli wires configuration, storage and the HTTP server into the
// taskboard command.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "taskboard",
		Short: "Task board API server",
		Long: `Task board backend: JWT sessions and owner-scoped columns,
cards and comments backed by PostgreSQL.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (YAML)")

	cmd.AddCommand(NewServeCmd(&configFile))
	cmd.AddCommand(NewMigrateCmd(&configFile))
	cmd.AddCommand(NewSeedCmd(&configFile))

	return cmd
}
