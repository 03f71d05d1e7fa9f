package service

import (
	"context"

	"github.com/samber/oops"
	"github.com/taskboard/backend/internal/db"
	"github.com/taskboard/backend/internal/model"
)

type commentRepo interface {
	GetCardByID(ctx context.Context, id string) (*model.Card, error)
	CreateComment(ctx context.Context, ownerID, cardID, text string) (*model.Comment, error)
	GetCommentByID(ctx context.Context, id string) (*model.Comment, error)
	ListCommentsByCard(ctx context.Context, cardID string) ([]model.Comment, error)
	UpdateComment(ctx context.Context, id string, text *string) (*model.Comment, error)
	DeleteComment(ctx context.Context, id string) error
}

type CommentService struct {
	repo commentRepo
}

func NewCommentService(repo commentRepo) *CommentService {
	return &CommentService{repo: repo}
}

func (s *CommentService) Create(ctx context.Context, ownerID, cardID string, req model.CreateCommentRequest) (*model.Comment, error) {
	if err := s.requireCard(ctx, cardID, msgCardNotFound); err != nil {
		return nil, err
	}

	comment, err := s.repo.CreateComment(ctx, ownerID, cardID, req.Text)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, newError(ErrNotFound, msgCardNotFound)
		}
		return nil, oops.Code("COMMENT_CREATE_FAILED").With("card_id", cardID).Wrap(err)
	}
	return comment, nil
}

func (s *CommentService) Get(ctx context.Context, id string) (*model.Comment, error) {
	comment, err := s.repo.GetCommentByID(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, newError(ErrNotFound, msgEntityNotFound)
		}
		return nil, oops.Code("COMMENT_LOOKUP_FAILED").With("comment_id", id).Wrap(err)
	}
	return comment, nil
}

func (s *CommentService) ListByCard(ctx context.Context, cardID string) ([]model.Comment, error) {
	if err := s.requireCard(ctx, cardID, msgEntityNotFound); err != nil {
		return nil, err
	}

	comments, err := s.repo.ListCommentsByCard(ctx, cardID)
	if err != nil {
		return nil, oops.Code("COMMENT_LIST_FAILED").With("card_id", cardID).Wrap(err)
	}
	return comments, nil
}

func (s *CommentService) Update(ctx context.Context, id string, req model.UpdateCommentRequest) (*model.Comment, error) {
	comment, err := s.repo.UpdateComment(ctx, id, req.Text)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, newError(ErrNotFound, msgEntityNotFound)
		}
		return nil, oops.Code("COMMENT_UPDATE_FAILED").With("comment_id", id).Wrap(err)
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteComment(ctx, id); err != nil {
		if db.IsNoRows(err) {
			return newError(ErrNotFound, msgEntityNotFound)
		}
		return oops.Code("COMMENT_DELETE_FAILED").With("comment_id", id).Wrap(err)
	}
	return nil
}

func (s *CommentService) requireCard(ctx context.Context, cardID, notFoundMsg string) error {
	if _, err := s.repo.GetCardByID(ctx, cardID); err != nil {
		if db.IsNoRows(err) {
			return newError(ErrNotFound, "%s", notFoundMsg)
		}
		return oops.Code("CARD_LOOKUP_FAILED").With("card_id", cardID).Wrap(err)
	}
	return nil
}
