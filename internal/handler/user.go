package handler

import (
	"github.com/deppfellow/news-api/internal/model"
	"github.com/deppfellow/news-api/internal/server"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	Handler
	users UserService
}

func NewUserHandler(s *server.Server, users UserService) *UserHandler {
	return &UserHandler{
		Handler: NewHandler(s),
		users:   users,
	}
}

func (h *UserHandler) ListUsers(c echo.Context, _ *model.EmptyRequest) (UsersResponse, error) {
	users, err := h.users.ListUsers(c.Request().Context())
	if err != nil {
		return UsersResponse{}, err
	}
	return UsersResponse{Users: users}, nil
}

func (h *UserHandler) GetUser(c echo.Context, req *model.GetUserRequest) (UserResponse, error) {
	user, err := h.users.GetUser(c.Request().Context(), req.Username)
	if err != nil {
		return UserResponse{}, err
	}
	return UserResponse{User: []model.User{*user}}, nil
}
