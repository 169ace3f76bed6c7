package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nhle/todolist/internal/model"
)

// ListTodos returns the todos of a user, newest first.
func (s *SQLiteStore) ListTodos(ctx context.Context, userID int64) ([]model.Todo, error) {
	todos := []model.Todo{}
	err := s.db.SelectContext(ctx, &todos, `
		SELECT id, user_id, description, is_done
		FROM todos
		WHERE user_id = ?
		ORDER BY id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing todos for user %d: %w", userID, err)
	}
	return todos, nil
}

// CreateTodo inserts a new, not yet done todo for the user.
func (s *SQLiteStore) CreateTodo(
	ctx context.Context,
	userID int64,
	description string,
) (*model.Todo, error) {
	var todo model.Todo
	err := s.db.GetContext(ctx, &todo, `
		INSERT INTO todos (user_id, description, is_done) VALUES (?, ?, 0)
		RETURNING id, user_id, description, is_done`,
		userID, description,
	)
	if err != nil {
		return nil, fmt.Errorf("creating todo for user %d: %w", userID, err)
	}
	return &todo, nil
}

// SetTodoDone updates the completion flag of a todo.
func (s *SQLiteStore) SetTodoDone(
	ctx context.Context,
	id int64,
	done bool,
) (*model.Todo, error) {
	var todo model.Todo
	err := s.db.GetContext(ctx, &todo, `
		UPDATE todos SET is_done = ?
		WHERE id = ?
		RETURNING id, user_id, description, is_done`,
		done, id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("todo %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("updating todo %d: %w", id, err)
	}
	return &todo, nil
}

// DeleteTodo removes a todo by ID. A missing id is a no-op.
func (s *SQLiteStore) DeleteTodo(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM todos WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting todo %d: %w", id, err)
	}
	return nil
}
