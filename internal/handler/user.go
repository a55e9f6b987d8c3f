package handler

import (
	"context"

	"github.com/deppfellow/mongo-starter/internal/model"
	"github.com/deppfellow/mongo-starter/internal/pagination"
	"github.com/deppfellow/mongo-starter/internal/server"
	"github.com/deppfellow/mongo-starter/internal/validation"
	"github.com/labstack/echo/v4"
)

type userService interface {
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetPaginatedUsers(ctx context.Context, params pagination.Params) (*pagination.Result[model.User], error)
}

type UserHandler struct {
	Handler
	users userService
}

func NewUserHandler(s *server.Server, users userService) *UserHandler {
	return &UserHandler{
		Handler: NewHandler(s),
		users:   users,
	}
}

type GetUserRequest struct {
	ID string `param:"id" validate:"required,objectid"`
}

func (r *GetUserRequest) Validate() error {
	return validation.Struct(r)
}

type UserResponse struct {
	OK   bool        `json:"ok"`
	User *model.User `json:"user"`
}

type UserListResponse struct {
	OK bool `json:"ok"`
	*pagination.Result[model.User]
}

// GetUsers handles GET /api/users?page=&limit=.
func (h *UserHandler) GetUsers(c echo.Context, _ *validation.Empty) (*UserListResponse, error) {
	var query validation.PaginationQuery
	if err := validation.ParseQuery(c.Request().URL.String(), &query); err != nil {
		return nil, err
	}

	result, err := h.users.GetPaginatedUsers(c.Request().Context(), query.Params())
	if err != nil {
		return nil, err
	}
	return &UserListResponse{OK: true, Result: result}, nil
}

// GetUser handles GET /api/users/:id.
func (h *UserHandler) GetUser(c echo.Context, req *GetUserRequest) (*UserResponse, error) {
	user, err := h.users.GetUserByID(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}
	return &UserResponse{OK: true, User: user}, nil
}
