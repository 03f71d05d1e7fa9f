//go:build integration

package db_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/taskboard/backend/internal/db"
	"github.com/taskboard/backend/internal/model"
)

func setupPostgres(t *testing.T) *db.Postgres {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("taskboard_test"),
		postgres.WithUsername("taskboard"),
		postgres.WithPassword("taskboard"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := db.NewPostgresPool(ctx, dsn, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, db.Migrate(ctx, pool))
	return db.New(pool)
}

func TestPostgresBoardLifecycle(t *testing.T) {
	store := setupPostgres(t)
	ctx := context.Background()

	user, err := store.CreateUser(ctx, "it@example.com", "hash")
	require.NoError(t, err)

	_, err = store.CreateUser(ctx, "it@example.com", "hash")
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err))

	column, err := store.CreateColumn(ctx, user.ID, "Backlog")
	require.NoError(t, err)
	other, err := store.CreateColumn(ctx, user.ID, "Done")
	require.NoError(t, err)

	card, err := store.CreateCard(ctx, user.ID, column.ID, "Write tests", nil)
	require.NoError(t, err)
	assert.Nil(t, card.Description)

	moved, err := store.UpdateCard(ctx, card.ID, model.CardUpdate{ColumnID: &other.ID})
	require.NoError(t, err)
	assert.Equal(t, other.ID, moved.ColumnID)
	assert.Equal(t, "Write tests", moved.Title)

	comment, err := store.CreateComment(ctx, user.ID, card.ID, "Looks good")
	require.NoError(t, err)

	comments, err := store.ListCommentsByCard(ctx, card.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, comment.ID, comments[0].ID)

	require.NoError(t, store.DeleteUser(ctx, user.ID))

	_, err = store.GetCommentByID(ctx, comment.ID)
	assert.True(t, db.IsNoRows(err), "comments cascade with their owner")
	_, err = store.GetColumnByID(ctx, column.ID)
	assert.True(t, db.IsNoRows(err), "columns cascade with their owner")
}
