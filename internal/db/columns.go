package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskboard/backend/internal/model"
)

const columnColumns = `id, title, owner_id, created_at, updated_at`

func scanColumn(row interface{ Scan(dest ...any) error }) (*model.Column, error) {
	var column model.Column
	err := row.Scan(
		&column.ID,
		&column.Title,
		&column.OwnerID,
		&column.CreatedAt,
		&column.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &column, nil
}

func (db *Postgres) CreateColumn(ctx context.Context, ownerID, title string) (*model.Column, error) {
	query := `
		INSERT INTO board_columns (id, title, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING ` + columnColumns
	return scanColumn(db.Pool.QueryRow(ctx, query, uuid.NewString(), title, ownerID))
}

func (db *Postgres) GetColumnByID(ctx context.Context, id string) (*model.Column, error) {
	query := `SELECT ` + columnColumns + ` FROM board_columns WHERE id = $1`
	return scanColumn(db.Pool.QueryRow(ctx, query, id))
}

func (db *Postgres) GetColumnByOwnerAndID(ctx context.Context, ownerID, id string) (*model.Column, error) {
	query := `SELECT ` + columnColumns + ` FROM board_columns WHERE id = $1 AND owner_id = $2`
	return scanColumn(db.Pool.QueryRow(ctx, query, id, ownerID))
}

func (db *Postgres) ListColumnsByOwner(ctx context.Context, ownerID string) ([]model.Column, error) {
	query := `
		SELECT ` + columnColumns + `
		FROM board_columns
		WHERE owner_id = $1
		ORDER BY created_at ASC, id ASC
	`
	rows, err := db.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns := []model.Column{}
	for rows.Next() {
		column, err := scanColumn(rows)
		if err != nil {
			return nil, err
		}
		columns = append(columns, *column)
	}
	return columns, rows.Err()
}

func (db *Postgres) UpdateColumn(ctx context.Context, id string, title *string) (*model.Column, error) {
	query := `
		UPDATE board_columns
		SET title = COALESCE($2, title), updated_at = NOW()
		WHERE id = $1
		RETURNING ` + columnColumns
	return scanColumn(db.Pool.QueryRow(ctx, query, id, title))
}

// DeleteColumn removes the column and, through the schema, its cards and their comments.
func (db *Postgres) DeleteColumn(ctx context.Context, id string) error {
	return affectedOrNoRows(db.Pool.Exec(ctx, `DELETE FROM board_columns WHERE id = $1`, id))
}
