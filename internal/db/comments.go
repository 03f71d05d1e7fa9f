package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskboard/backend/internal/model"
)

const commentColumns = `id, text, owner_id, card_id, created_at, updated_at`

func scanComment(row interface{ Scan(dest ...any) error }) (*model.Comment, error) {
	var comment model.Comment
	err := row.Scan(
		&comment.ID,
		&comment.Text,
		&comment.OwnerID,
		&comment.CardID,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (db *Postgres) CreateComment(ctx context.Context, ownerID, cardID, text string) (*model.Comment, error) {
	query := `
		INSERT INTO comments (id, text, owner_id, card_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING ` + commentColumns
	return scanComment(db.Pool.QueryRow(ctx, query, uuid.NewString(), text, ownerID, cardID))
}

func (db *Postgres) GetCommentByID(ctx context.Context, id string) (*model.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`
	return scanComment(db.Pool.QueryRow(ctx, query, id))
}

func (db *Postgres) ListCommentsByCard(ctx context.Context, cardID string) ([]model.Comment, error) {
	query := `
		SELECT ` + commentColumns + `
		FROM comments
		WHERE card_id = $1
		ORDER BY created_at ASC, id ASC
	`
	rows, err := db.Pool.Query(ctx, query, cardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, *comment)
	}
	return comments, rows.Err()
}

func (db *Postgres) UpdateComment(ctx context.Context, id string, text *string) (*model.Comment, error) {
	query := `
		UPDATE comments
		SET text = COALESCE($2, text), updated_at = NOW()
		WHERE id = $1
		RETURNING ` + commentColumns
	return scanComment(db.Pool.QueryRow(ctx, query, id, text))
}

func (db *Postgres) DeleteComment(ctx context.Context, id string) error {
	return affectedOrNoRows(db.Pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id))
}

