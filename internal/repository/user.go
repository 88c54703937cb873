package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/news-api/internal/errs"
	"github.com/deppfellow/news-api/internal/model"
	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.Query(ctx, `SELECT username, name, avatar_url FROM users`)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}

	users, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		return nil, fmt.Errorf("collecting users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) GetUser(ctx context.Context, username string) (*model.User, error) {
	rows, err := r.db.Query(ctx, `SELECT username, name, avatar_url FROM users WHERE username = $1`, username)
	if err != nil {
		return nil, fmt.Errorf("querying user %q: %w", username, err)
	}

	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.UsernameNotFound()
		}
		return nil, fmt.Errorf("collecting user %q: %w", username, err)
	}
	return &user, nil
}
