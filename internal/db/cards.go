package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskboard/backend/internal/model"
)

const cardColumns = `id, title, description, owner_id, column_id, created_at, updated_at`

func scanCard(row interface{ Scan(dest ...any) error }) (*model.Card, error) {
	var card model.Card
	err := row.Scan(
		&card.ID,
		&card.Title,
		&card.Description,
		&card.OwnerID,
		&card.ColumnID,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (db *Postgres) CreateCard(ctx context.Context, ownerID, columnID, title string, description *string) (*model.Card, error) {
	query := `
		INSERT INTO cards (id, title, description, owner_id, column_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING ` + cardColumns
	return scanCard(db.Pool.QueryRow(ctx, query, uuid.NewString(), title, description, ownerID, columnID))
}

func (db *Postgres) GetCardByID(ctx context.Context, id string) (*model.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = $1`
	return scanCard(db.Pool.QueryRow(ctx, query, id))
}

func (db *Postgres) ListCardsByColumn(ctx context.Context, columnID string) ([]model.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE column_id = $1
		ORDER BY created_at ASC, id ASC
	`
	rows, err := db.Pool.Query(ctx, query, columnID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cards := []model.Card{}
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *card)
	}
	return cards, rows.Err()
}

func (db *Postgres) UpdateCard(ctx context.Context, id string, update model.CardUpdate) (*model.Card, error) {
	query := `
		UPDATE cards
		SET title = COALESCE($2, title),
			description = COALESCE($3, description),
			column_id = COALESCE($4, column_id),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + cardColumns
	return scanCard(db.Pool.QueryRow(ctx, query, id, update.Title, update.Description, update.ColumnID))
}

func (db *Postgres) DeleteCard(ctx context.Context, id string) error {
	return affectedOrNoRows(db.Pool.Exec(ctx, `DELETE FROM cards WHERE id = $1`, id))
}
