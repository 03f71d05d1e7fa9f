package db

import (
	"context"
	"embed"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/samber/oops"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies all pending schema migrations.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return oops.Code("MIGRATION_FAILED").Wrap(err)
	}
	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return oops.Code("MIGRATION_FAILED").Wrapf(err, "apply migrations")
	}
	return nil
}

// MigrateDown rolls back the most recent migration.
func MigrateDown(ctx context.Context, pool *pgxpool.Pool) error {
	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return oops.Code("MIGRATION_FAILED").Wrap(err)
	}
	if err := goose.DownContext(ctx, sqlDB, "migrations"); err != nil {
		return oops.Code("MIGRATION_FAILED").Wrapf(err, "roll back migration")
	}
	return nil
}
