package cli

import (
	"context"
	"os"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/taskboard/backend/internal/config"
	"github.com/taskboard/backend/internal/db"
	"github.com/taskboard/backend/internal/logging"
	"github.com/taskboard/backend/internal/seed"
	"github.com/taskboard/backend/internal/service"
)

const defaultSeedTimeout = 30 * time.Second

// NewSeedCmd creates the seed subcommand.
func NewSeedCmd(configFile *string) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace all data with the demo board",
		Long: `Delete every user, column, card and comment, then create two demo
users (password 123456) with three columns, a card per column and a few comments.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadDatabase(*configFile, cmd.Flags())
			if err != nil {
				return err
			}
			logger := logging.New(os.Stdout, cfg.Mode, cfg.LogLevel)

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			dsn, err := cfg.Postgres.URL()
			if err != nil {
				return err
			}
			pool, err := db.NewPostgresPool(ctx, dsn, logger)
			if err != nil {
				return oops.Code("DB_CONNECT_FAILED").With("operation", "connect to database").Wrap(err)
			}
			defer pool.Close()

			if err := db.Migrate(ctx, pool); err != nil {
				return err
			}

			summary, err := seed.Run(ctx, db.New(pool), service.NewBcryptHasher(), logger)
			if err != nil {
				logging.LogError(logger, "seeding failed", err)
				return err
			}

			cmd.Printf("Created: %d users, %d columns, %d cards, %d comments\n",
				summary.Users, summary.Columns, summary.Cards, summary.Comments)
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", defaultSeedTimeout, "timeout for database operations (e.g., 30s, 1m)")

	return cmd
}
