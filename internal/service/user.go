package service

import (
	"context"

	"github.com/deppfellow/mongo-starter/internal/errs"
	"github.com/deppfellow/mongo-starter/internal/model"
	"github.com/deppfellow/mongo-starter/internal/pagination"
	"github.com/deppfellow/mongo-starter/internal/repository"
)

type UserService struct {
	users *repository.UserRepository
}

func NewUserService(repos *repository.Repositories) *UserService {
	return &UserService{users: repos.Users}
}

// GetUserByID returns the user or 404 USER_NOT_FOUND.
func (s *UserService) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		code := errs.CodeUserNotFound
		return nil, errs.NewNotFoundError("User not found", &code)
	}
	return user, nil
}

// GetPaginatedUsers lists users in insertion order.
func (s *UserService) GetPaginatedUsers(ctx context.Context, params pagination.Params) (*pagination.Result[model.User], error) {
	return pagination.Paginate[model.User](ctx, s.users, params, nil, pagination.SortBy("_id", false))
}
