package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/backend/internal/model"
)

func ptr[T any](v T) *T {
	return &v
}

func TestCardService_MoveToOwnColumn(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()
	svc := NewCardService(f.store)

	done, err := f.store.CreateColumn(ctx, f.owner.ID, "Done")
	require.NoError(t, err)

	card, err := svc.Update(ctx, f.owner.ID, f.card.ID, model.UpdateCardRequest{ColumnID: &done.ID})
	require.NoError(t, err)
	assert.Equal(t, done.ID, card.ColumnID)
	assert.Equal(t, "Write tests", card.Title)
}

func TestCardService_RejectsMoveToForeignColumn(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()
	svc := NewCardService(f.store)

	foreign, err := f.store.CreateColumn(ctx, f.other.ID, "Theirs")
	require.NoError(t, err)

	_, err = svc.Update(ctx, f.owner.ID, f.card.ID, model.UpdateCardRequest{
		Title:    ptr("renamed"),
		ColumnID: &foreign.ID,
	})
	requireKind(t, err, ErrBadRequest, "User does not have column with this ID")

	stored, err := svc.Get(ctx, f.card.ID)
	require.NoError(t, err)
	assert.Equal(t, f.column.ID, stored.ColumnID)
	assert.Equal(t, "Write tests", stored.Title, "rejected update writes nothing")
}

func TestCardService_RejectsMoveToMissingColumn(t *testing.T) {
	f := newBoardFixture(t)
	svc := NewCardService(f.store)

	_, err := svc.Update(context.Background(), f.owner.ID, f.card.ID, model.UpdateCardRequest{ColumnID: ptr(uuid.NewString())})
	requireKind(t, err, ErrBadRequest, "User does not have column with this ID")
}

func TestCardService_SameColumnSkipsOwnershipCheck(t *testing.T) {
	f := newBoardFixture(t)
	svc := NewCardService(f.store)

	card, err := svc.Update(context.Background(), f.owner.ID, f.card.ID, model.UpdateCardRequest{
		ColumnID:    &f.column.ID,
		Description: ptr("details"),
	})
	require.NoError(t, err)
	require.NotNil(t, card.Description)
	assert.Equal(t, "details", *card.Description)
}

func TestCardService_CreateListDelete(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()
	svc := NewCardService(f.store)

	created, err := svc.Create(ctx, f.owner.ID, f.column.ID, model.CreateCardRequest{Title: "Deploy"})
	require.NoError(t, err)
	assert.Equal(t, f.owner.ID, created.OwnerID)
	assert.Nil(t, created.Description)

	cards, err := svc.ListByColumn(ctx, f.column.ID)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, f.card.ID, cards[0].ID)
	assert.Equal(t, created.ID, cards[1].ID)

	_, err = svc.ListByColumn(ctx, uuid.NewString())
	requireKind(t, err, ErrNotFound, "Column not found")

	_, err = svc.Create(ctx, f.owner.ID, uuid.NewString(), model.CreateCardRequest{Title: "Orphan"})
	requireKind(t, err, ErrNotFound, "Column not found")

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	requireKind(t, err, ErrNotFound, "Card not found")
	requireKind(t, svc.Delete(ctx, created.ID), ErrNotFound, "")
}

func TestColumnService_CRUD(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()
	svc := NewColumnService(f.store)

	created, err := svc.Create(ctx, f.owner.ID, model.CreateColumnRequest{Title: "Done"})
	require.NoError(t, err)

	columns, err := svc.ListByOwner(ctx, f.owner.ID)
	require.NoError(t, err)
	require.Len(t, columns, 2)

	none, err := svc.ListByOwner(ctx, f.other.ID)
	require.NoError(t, err)
	assert.Empty(t, none)

	updated, err := svc.Update(ctx, created.ID, model.UpdateColumnRequest{Title: ptr("Shipped")})
	require.NoError(t, err)
	assert.Equal(t, "Shipped", updated.Title)

	unchanged, err := svc.Update(ctx, created.ID, model.UpdateColumnRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Shipped", unchanged.Title)

	require.NoError(t, svc.Delete(ctx, f.column.ID))
	_, err = svc.Get(ctx, f.column.ID)
	requireKind(t, err, ErrNotFound, "Entity not found")

	_, err = f.store.GetCardByID(ctx, f.card.ID)
	assert.Error(t, err, "cards go with their column")
}

func TestCommentService_CRUD(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()
	svc := NewCommentService(f.store)

	created, err := svc.Create(ctx, f.other.ID, f.card.ID, model.CreateCommentRequest{Text: "Nice"})
	require.NoError(t, err)
	assert.Equal(t, f.other.ID, created.OwnerID)

	_, err = svc.Create(ctx, f.owner.ID, uuid.NewString(), model.CreateCommentRequest{Text: "Lost"})
	requireKind(t, err, ErrNotFound, "Card not found")

	comments, err := svc.ListByCard(ctx, f.card.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)

	_, err = svc.ListByCard(ctx, uuid.NewString())
	requireKind(t, err, ErrNotFound, "Entity not found")

	updated, err := svc.Update(ctx, created.ID, model.UpdateCommentRequest{Text: ptr("Very nice")})
	require.NoError(t, err)
	assert.Equal(t, "Very nice", updated.Text)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	requireKind(t, err, ErrNotFound, "Entity not found")
}

func TestUserService_Update(t *testing.T) {
	f := newBoardFixture(t)
	ctx := context.Background()
	svc := NewUserService(f.store)

	_, err := svc.Update(ctx, f.owner.ID, model.UpdateUserRequest{Email: ptr("other@x.io")})
	requireKind(t, err, ErrConflict, "User with Email other@x.io already exist")

	same, err := svc.Update(ctx, f.owner.ID, model.UpdateUserRequest{Email: ptr("owner@x.io")})
	require.NoError(t, err)
	assert.Equal(t, "owner@x.io", same.Email)

	updated, err := svc.Update(ctx, f.owner.ID, model.UpdateUserRequest{Email: ptr("new@x.io")})
	require.NoError(t, err)
	assert.Equal(t, "new@x.io", updated.Email)
	assert.Equal(t, f.owner.ID, updated.ID)

	got, err := svc.Get(ctx, f.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "new@x.io", got.Email)

	_, err = svc.Get(ctx, uuid.NewString())
	requireKind(t, err, ErrNotFound, "User not found")
}
