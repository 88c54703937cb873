package service

import (
	"context"

	"github.com/deppfellow/news-api/internal/model"
	"github.com/deppfellow/news-api/internal/repository"
)

type UserService struct {
	users *repository.UserRepository
}

func NewUserService(users *repository.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.ListUsers(ctx)
}

func (s *UserService) GetUser(ctx context.Context, username string) (*model.User, error) {
	return s.users.GetUser(ctx, username)
}
