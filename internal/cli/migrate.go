package cli

import (
	"os"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/taskboard/backend/internal/config"
	"github.com/taskboard/backend/internal/db"
	"github.com/taskboard/backend/internal/logging"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd(configFile *string) *cobra.Command {
	var down bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long:  `Apply all pending migrations, or roll back the latest one with --down.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadDatabase(*configFile, cmd.Flags())
			if err != nil {
				return err
			}
			logger := logging.New(os.Stdout, cfg.Mode, cfg.LogLevel)

			dsn, err := cfg.Postgres.URL()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			pool, err := db.NewPostgresPool(ctx, dsn, logger)
			if err != nil {
				return oops.Code("DB_CONNECT_FAILED").With("operation", "connect to database").Wrap(err)
			}
			defer pool.Close()

			if down {
				logger.Info("rolling back latest migration")
				if err := db.MigrateDown(ctx, pool); err != nil {
					return err
				}
			} else {
				logger.Info("running migrations")
				if err := db.Migrate(ctx, pool); err != nil {
					return err
				}
			}

			cmd.Println("Migrations completed successfully")
			return nil
		},
	}

	cmd.Flags().BoolVar(&down, "down", false, "roll back the most recent migration")

	return cmd
}
