package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nhle/todolist/internal/model"
)

// GetUserByUsername retrieves the single user with the given username.
func (s *SQLiteStore) GetUserByUsername(
	ctx context.Context,
	username string,
) (*model.User, error) {
	var u model.User
	err := s.db.GetContext(ctx, &u,
		"SELECT id, username, password FROM users WHERE username = ?", username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", username, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting user %s: %w", username, err)
	}
	return &u, nil
}

// CreateUser inserts a new account. The password is stored as given.
func (s *SQLiteStore) CreateUser(
	ctx context.Context,
	username, password string,
) (*model.User, error) {
	var u model.User
	err := s.db.GetContext(ctx, &u, `
		INSERT INTO users (username, password) VALUES (?, ?)
		RETURNING id, username, password`,
		username, password,
	)
	if err != nil {
		if isConstraintViolation(err) {
			return nil, fmt.Errorf("user %s: %w", username, ErrConflict)
		}
		return nil, fmt.Errorf("creating user %s: %w", username, err)
	}
	return &u, nil
}
