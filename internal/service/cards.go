package service

import (
	"context"

	"github.com/samber/oops"
	"github.com/taskboard/backend/internal/db"
	"github.com/taskboard/backend/internal/model"
)

const (
	msgCardNotFound   = "Card not found"
	msgColumnNotFound = "Column not found"
)

type cardRepo interface {
	GetColumnByID(ctx context.Context, id string) (*model.Column, error)
	GetColumnByOwnerAndID(ctx context.Context, ownerID, id string) (*model.Column, error)
	CreateCard(ctx context.Context, ownerID, columnID, title string, description *string) (*model.Card, error)
	GetCardByID(ctx context.Context, id string) (*model.Card, error)
	ListCardsByColumn(ctx context.Context, columnID string) ([]model.Card, error)
	UpdateCard(ctx context.Context, id string, update model.CardUpdate) (*model.Card, error)
	DeleteCard(ctx context.Context, id string) error
}

type CardService struct {
	repo cardRepo
}

func NewCardService(repo cardRepo) *CardService {
	return &CardService{repo: repo}
}

func (s *CardService) Create(ctx context.Context, ownerID, columnID string, req model.CreateCardRequest) (*model.Card, error) {
	card, err := s.repo.CreateCard(ctx, ownerID, columnID, req.Title, req.Description)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, newError(ErrNotFound, msgColumnNotFound)
		}
		return nil, oops.Code("CARD_CREATE_FAILED").With("column_id", columnID).Wrap(err)
	}
	return card, nil
}

func (s *CardService) Get(ctx context.Context, id string) (*model.Card, error) {
	card, err := s.repo.GetCardByID(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, newError(ErrNotFound, msgCardNotFound)
		}
		return nil, oops.Code("CARD_LOOKUP_FAILED").With("card_id", id).Wrap(err)
	}
	return card, nil
}

func (s *CardService) ListByColumn(ctx context.Context, columnID string) ([]model.Card, error) {
	if _, err := s.repo.GetColumnByID(ctx, columnID); err != nil {
		if db.IsNoRows(err) {
			return nil, newError(ErrNotFound, msgColumnNotFound)
		}
		return nil, oops.Code("COLUMN_LOOKUP_FAILED").With("column_id", columnID).Wrap(err)
	}

	cards, err := s.repo.ListCardsByColumn(ctx, columnID)
	if err != nil {
		return nil, oops.Code("CARD_LIST_FAILED").With("column_id", columnID).Wrap(err)
	}
	return cards, nil
}

// Update applies the requested changes. Moving the card requires the target
// column to belong to the caller; otherwise nothing is written.
func (s *CardService) Update(ctx context.Context, callerID, id string, req model.UpdateCardRequest) (*model.Card, error) {
	card, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ColumnID != nil && *req.ColumnID != card.ColumnID {
		if _, err := s.repo.GetColumnByOwnerAndID(ctx, callerID, *req.ColumnID); err != nil {
			if db.IsNoRows(err) {
				return nil, newError(ErrBadRequest, "User does not have column with this ID")
			}
			return nil, oops.Code("COLUMN_LOOKUP_FAILED").With("column_id", *req.ColumnID).Wrap(err)
		}
	}

	updated, err := s.repo.UpdateCard(ctx, id, model.CardUpdate{
		Title:       req.Title,
		Description: req.Description,
		ColumnID:    req.ColumnID,
	})
	if err != nil {
		switch {
		case db.IsNoRows(err):
			return nil, newError(ErrNotFound, msgCardNotFound)
		case db.IsForeignKeyViolation(err):
			return nil, newError(ErrBadRequest, "User does not have column with this ID")
		}
		return nil, oops.Code("CARD_UPDATE_FAILED").With("card_id", id).Wrap(err)
	}
	return updated, nil
}

func (s *CardService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteCard(ctx, id); err != nil {
		if db.IsNoRows(err) {
			return newError(ErrNotFound, msgCardNotFound)
		}
		return oops.Code("CARD_DELETE_FAILED").With("card_id", id).Wrap(err)
	}
	return nil
}
