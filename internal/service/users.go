package service

import (
	"context"

	"github.com/samber/oops"
	"github.com/taskboard/backend/internal/db"
	"github.com/taskboard/backend/internal/model"
)

type userRepo interface {
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateUserEmail(ctx context.Context, id, email string) (*model.User, error)
}

type UserService struct {
	repo userRepo
}

func NewUserService(repo userRepo) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Get(ctx context.Context, id string) (model.SafeUser, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return model.SafeUser{}, newError(ErrNotFound, msgUserNotFound)
		}
		return model.SafeUser{}, oops.Code("USER_LOOKUP_FAILED").With("user_id", id).Wrap(err)
	}
	return user.Safe(), nil
}

// Update changes the user's email. Taking an email held by another account
// is a conflict; resubmitting the current one is a no-op update.
func (s *UserService) Update(ctx context.Context, id string, req model.UpdateUserRequest) (model.SafeUser, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return model.SafeUser{}, newError(ErrNotFound, msgUserNotFound)
		}
		return model.SafeUser{}, oops.Code("USER_LOOKUP_FAILED").With("user_id", id).Wrap(err)
	}

	if req.Email == nil || *req.Email == user.Email {
		return user.Safe(), nil
	}

	email := *req.Email
	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return model.SafeUser{}, oops.Code("USER_LOOKUP_FAILED").With("email", email).Wrap(err)
	}
	if exists {
		return model.SafeUser{}, newError(ErrConflict, "User with Email %s already exist", email)
	}

	updated, err := s.repo.UpdateUserEmail(ctx, id, email)
	if err != nil {
		switch {
		case db.IsUniqueViolation(err):
			return model.SafeUser{}, newError(ErrConflict, "User with Email %s already exist", email)
		case db.IsNoRows(err):
			return model.SafeUser{}, newError(ErrNotFound, msgUserNotFound)
		}
		return model.SafeUser{}, oops.Code("USER_UPDATE_FAILED").With("user_id", id).Wrap(err)
	}
	return updated.Safe(), nil
}
