package service

import (
	"context"

	"github.com/samber/oops"
	"github.com/taskboard/backend/internal/db"
	"github.com/taskboard/backend/internal/model"
)

const msgEntityNotFound = "Entity not found"

type columnRepo interface {
	CreateColumn(ctx context.Context, ownerID, title string) (*model.Column, error)
	GetColumnByID(ctx context.Context, id string) (*model.Column, error)
	ListColumnsByOwner(ctx context.Context, ownerID string) ([]model.Column, error)
	UpdateColumn(ctx context.Context, id string, title *string) (*model.Column, error)
	DeleteColumn(ctx context.Context, id string) error
}

type ColumnService struct {
	repo columnRepo
}

func NewColumnService(repo columnRepo) *ColumnService {
	return &ColumnService{repo: repo}
}

func (s *ColumnService) Create(ctx context.Context, ownerID string, req model.CreateColumnRequest) (*model.Column, error) {
	column, err := s.repo.CreateColumn(ctx, ownerID, req.Title)
	if err != nil {
		return nil, oops.Code("COLUMN_CREATE_FAILED").With("owner_id", ownerID).Wrap(err)
	}
	return column, nil
}

func (s *ColumnService) Get(ctx context.Context, id string) (*model.Column, error) {
	column, err := s.repo.GetColumnByID(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, newError(ErrNotFound, msgEntityNotFound)
		}
		return nil, oops.Code("COLUMN_LOOKUP_FAILED").With("column_id", id).Wrap(err)
	}
	return column, nil
}

func (s *ColumnService) ListByOwner(ctx context.Context, ownerID string) ([]model.Column, error) {
	columns, err := s.repo.ListColumnsByOwner(ctx, ownerID)
	if err != nil {
		return nil, oops.Code("COLUMN_LIST_FAILED").With("owner_id", ownerID).Wrap(err)
	}
	return columns, nil
}

func (s *ColumnService) Update(ctx context.Context, id string, req model.UpdateColumnRequest) (*model.Column, error) {
	column, err := s.repo.UpdateColumn(ctx, id, req.Title)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, newError(ErrNotFound, msgEntityNotFound)
		}
		return nil, oops.Code("COLUMN_UPDATE_FAILED").With("column_id", id).Wrap(err)
	}
	return column, nil
}

func (s *ColumnService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteColumn(ctx, id); err != nil {
		if db.IsNoRows(err) {
			return newError(ErrNotFound, msgEntityNotFound)
		}
		return oops.Code("COLUMN_DELETE_FAILED").With("column_id", id).Wrap(err)
	}
	return nil
}
