package service

import (
	"context"

	"github.com/samber/oops"
	"github.com/taskboard/backend/internal/db"
	"github.com/taskboard/backend/internal/model"
)

type EntityType string

const (
	EntityUser    EntityType = "user"
	EntityColumn  EntityType = "column"
	EntityCard    EntityType = "card"
	EntityComment EntityType = "comment"
)

// OwnershipPolicy declares which path parameter names the protected entity
// and what kind of entity it is.
type OwnershipPolicy struct {
	IDParam string
	Entity  EntityType
}

// Owned is implemented by every entity with a single owning user.
type Owned interface {
	Owner() string
}

type ownerLookup func(ctx context.Context, id string) (Owned, error)

type ownershipRepo interface {
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetColumnByID(ctx context.Context, id string) (*model.Column, error)
	GetCardByID(ctx context.Context, id string) (*model.Card, error)
	GetCommentByID(ctx context.Context, id string) (*model.Comment, error)
}

// OwnershipAuthorizer checks that the caller owns the entity a request targets.
type OwnershipAuthorizer struct {
	lookups map[EntityType]ownerLookup
}

func NewOwnershipAuthorizer(repo ownershipRepo) *OwnershipAuthorizer {
	return &OwnershipAuthorizer{
		lookups: map[EntityType]ownerLookup{
			EntityUser:    lookupWith(repo.GetUserByID),
			EntityColumn:  lookupWith(repo.GetColumnByID),
			EntityCard:    lookupWith(repo.GetCardByID),
			EntityComment: lookupWith(repo.GetCommentByID),
		},
	}
}

func lookupWith[T Owned](get func(ctx context.Context, id string) (T, error)) ownerLookup {
	return func(ctx context.Context, id string) (Owned, error) {
		entity, err := get(ctx, id)
		if err != nil {
			return nil, err
		}
		return entity, nil
	}
}

// Authorize allows the request when policy is nil or when callerID owns the
// entity identified by id. The id is validated as a UUID before any lookup.
func (a *OwnershipAuthorizer) Authorize(ctx context.Context, policy *OwnershipPolicy, id, callerID string) error {
	if policy == nil {
		return nil
	}
	if id == "" {
		return newError(ErrNotFound, "Entity ID not found")
	}
	if !model.IsUUID(id) {
		return newError(ErrBadRequest, "Validation failed (uuid is expected)")
	}

	lookup, ok := a.lookups[policy.Entity]
	if !ok {
		return newError(ErrBadRequest, "Unknown entity type: %s", policy.Entity)
	}

	entity, err := lookup(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return newError(ErrNotFound, "Entity not found")
		}
		return oops.Code("OWNERSHIP_LOOKUP_FAILED").
			With("entity", string(policy.Entity)).
			With("entity_id", id).
			Wrap(err)
	}

	if entity.Owner() != callerID {
		return newError(ErrForbidden, "You are not the owner of this entity")
	}
	return nil
}
