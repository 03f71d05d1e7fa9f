// Package seed fills an empty board with demo users, columns, cards and
// comments.
package seed

import (
	"context"
	"log/slog"

	"github.com/samber/oops"
	"github.com/taskboard/backend/internal/model"
)

// DefaultPassword is the password of every seeded user.
const DefaultPassword = "123456"

type cardSeed struct {
	Title       string
	Description string
}

type userSeed struct {
	Email   string
	Columns []string
	Cards   []cardSeed
}

var users = []userSeed{
	{
		Email:   "user1@example.com",
		Columns: []string{"Backlog", "In Progress", "Done"},
		Cards: []cardSeed{
			{Title: "Create project", Description: "Initialize new Go module"},
			{Title: "Set up database", Description: "Connect pgx and PostgreSQL"},
			{Title: "Deploy application", Description: "Deploy app to server"},
		},
	},
	{
		Email:   "user2@example.com",
		Columns: []string{"Ideas", "Doing", "Completed"},
		Cards: []cardSeed{
			{Title: "Prepare specification", Description: "Formulate project requirements"},
			{Title: "Implement API", Description: "Create CRUD for main entities"},
			{Title: "Write tests", Description: "Write e2e and unit tests"},
		},
	},
}

// comments are written by the owner of the card they land on: user index and
// card index within that user's cards.
var comments = []struct {
	User int
	Card int
	Text string
}{
	{User: 0, Card: 0, Text: "Great task to start with!"},
	{User: 0, Card: 1, Text: "Don't forget about migrations"},
	{User: 1, Card: 0, Text: "Good start!"},
	{User: 1, Card: 1, Text: "We need to think about validation"},
	{User: 1, Card: 2, Text: "Don't forget to cover all critical parts with tests"},
}

type Store interface {
	TruncateAll(ctx context.Context) error
	CreateUser(ctx context.Context, email, passwordHash string) (*model.User, error)
	CreateColumn(ctx context.Context, ownerID, title string) (*model.Column, error)
	CreateCard(ctx context.Context, ownerID, columnID, title string, description *string) (*model.Card, error)
	CreateComment(ctx context.Context, ownerID, cardID, text string) (*model.Comment, error)
}

type Hasher interface {
	Hash(password string) (string, error)
}

type Summary struct {
	Users    int
	Columns  int
	Cards    int
	Comments int
}

// Run wipes the store and writes the demo board. Each column gets the card at
// the same position.
func Run(ctx context.Context, store Store, hasher Hasher, logger *slog.Logger) (Summary, error) {
	var summary Summary

	logger.Info("cleaning database")
	if err := store.TruncateAll(ctx); err != nil {
		return summary, oops.Code("SEED_CLEAN_FAILED").Wrap(err)
	}

	hash, err := hasher.Hash(DefaultPassword)
	if err != nil {
		return summary, oops.Code("SEED_HASH_FAILED").Wrap(err)
	}

	userCards := make([][]*model.Card, len(users))
	userIDs := make([]string, len(users))
	for i, u := range users {
		user, err := store.CreateUser(ctx, u.Email, hash)
		if err != nil {
			return summary, oops.Code("SEED_USER_FAILED").With("email", u.Email).Wrap(err)
		}
		userIDs[i] = user.ID
		summary.Users++

		for j, title := range u.Columns {
			column, err := store.CreateColumn(ctx, user.ID, title)
			if err != nil {
				return summary, oops.Code("SEED_COLUMN_FAILED").With("title", title).Wrap(err)
			}
			summary.Columns++

			c := u.Cards[j]
			description := c.Description
			card, err := store.CreateCard(ctx, user.ID, column.ID, c.Title, &description)
			if err != nil {
				return summary, oops.Code("SEED_CARD_FAILED").With("title", c.Title).Wrap(err)
			}
			userCards[i] = append(userCards[i], card)
			summary.Cards++
		}
	}
	logger.Info("seeded users, columns and cards", "users", summary.Users, "columns", summary.Columns, "cards", summary.Cards)

	for _, c := range comments {
		card := userCards[c.User][c.Card]
		if _, err := store.CreateComment(ctx, userIDs[c.User], card.ID, c.Text); err != nil {
			return summary, oops.Code("SEED_COMMENT_FAILED").With("card_id", card.ID).Wrap(err)
		}
		summary.Comments++
	}

	logger.Info("database seeded",
		"users", summary.Users,
		"columns", summary.Columns,
		"cards", summary.Cards,
		"comments", summary.Comments,
	)
	return summary, nil
}
