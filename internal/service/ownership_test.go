package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/backend/internal/model"
	"github.com/taskboard/backend/internal/service/servicetest"
)

type boardFixture struct {
	store   *servicetest.Store
	owner   *model.User
	other   *model.User
	column  *model.Column
	card    *model.Card
	comment *model.Comment
}

func newBoardFixture(t *testing.T) boardFixture {
	t.Helper()
	ctx := context.Background()
	store := servicetest.NewStore()

	owner, err := store.CreateUser(ctx, "owner@x.io", "hash")
	require.NoError(t, err)
	other, err := store.CreateUser(ctx, "other@x.io", "hash")
	require.NoError(t, err)
	column, err := store.CreateColumn(ctx, owner.ID, "Backlog")
	require.NoError(t, err)
	card, err := store.CreateCard(ctx, owner.ID, column.ID, "Write tests", nil)
	require.NoError(t, err)
	comment, err := store.CreateComment(ctx, owner.ID, card.ID, "Looks good")
	require.NoError(t, err)

	return boardFixture{store: store, owner: owner, other: other, column: column, card: card, comment: comment}
}

func TestOwnershipAuthorizer_Uniform(t *testing.T) {
	f := newBoardFixture(t)
	authz := NewOwnershipAuthorizer(f.store)
	ctx := context.Background()

	entities := []struct {
		entity EntityType
		id     string
	}{
		{EntityColumn, f.column.ID},
		{EntityCard, f.card.ID},
		{EntityComment, f.comment.ID},
	}

	for _, e := range entities {
		t.Run(string(e.entity), func(t *testing.T) {
			policy := &OwnershipPolicy{IDParam: "id", Entity: e.entity}

			require.NoError(t, authz.Authorize(ctx, policy, e.id, f.owner.ID))

			err := authz.Authorize(ctx, policy, e.id, f.other.ID)
			requireKind(t, err, ErrForbidden, "You are not the owner of this entity")

			err = authz.Authorize(ctx, policy, uuid.NewString(), f.owner.ID)
			requireKind(t, err, ErrNotFound, "Entity not found")

			err = authz.Authorize(ctx, policy, "not-a-uuid", f.owner.ID)
			requireKind(t, err, ErrBadRequest, "Validation failed (uuid is expected)")

			err = authz.Authorize(ctx, policy, "", f.owner.ID)
			requireKind(t, err, ErrNotFound, "Entity ID not found")
		})
	}
}

func TestOwnershipAuthorizer_UserOwnsItself(t *testing.T) {
	f := newBoardFixture(t)
	authz := NewOwnershipAuthorizer(f.store)
	policy := &OwnershipPolicy{IDParam: "id", Entity: EntityUser}

	require.NoError(t, authz.Authorize(context.Background(), policy, f.owner.ID, f.owner.ID))

	err := authz.Authorize(context.Background(), policy, f.owner.ID, f.other.ID)
	requireKind(t, err, ErrForbidden, "")
}

func TestOwnershipAuthorizer_NoPolicyAllows(t *testing.T) {
	authz := NewOwnershipAuthorizer(servicetest.NewStore())
	assert.NoError(t, authz.Authorize(context.Background(), nil, "", "anyone"))
}

func TestOwnershipAuthorizer_UnknownEntity(t *testing.T) {
	authz := NewOwnershipAuthorizer(servicetest.NewStore())
	policy := &OwnershipPolicy{IDParam: "id", Entity: "board"}

	err := authz.Authorize(context.Background(), policy, uuid.NewString(), "anyone")
	requireKind(t, err, ErrBadRequest, "Unknown entity type: board")
}

func TestOwnershipAuthorizer_ValidatesBeforeLookup(t *testing.T) {
	store := servicetest.NewStore()
	store.Err = errors.New("store must not be called")
	authz := NewOwnershipAuthorizer(store)
	policy := &OwnershipPolicy{IDParam: "id", Entity: EntityCard}

	id := uuid.NewString()
	for _, candidate := range []string{
		"123",
		"urn:uuid:" + id,
		"{" + id + "}",
		strings.ReplaceAll(id, "-", ""),
	} {
		err := authz.Authorize(context.Background(), policy, candidate, "anyone")
		requireKind(t, err, ErrBadRequest, "Validation failed (uuid is expected)")
	}
}

func TestOwnershipAuthorizer_StoreFailure(t *testing.T) {
	store := servicetest.NewStore()
	store.Err = errors.New("connection refused")
	authz := NewOwnershipAuthorizer(store)
	policy := &OwnershipPolicy{IDParam: "id", Entity: EntityColumn}

	err := authz.Authorize(context.Background(), policy, uuid.NewString(), "anyone")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "connection refused")
}
