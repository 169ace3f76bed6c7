package postgrest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/nhle/todolist/internal/model"
	"github.com/nhle/todolist/internal/store"
)

const (
	tableUsers = "users"
	tableTodos = "todos"
)

var (
	userColumns = []string{"id", "username", "password"}
	todoColumns = []string{"id", "user_id", "description", "is_done"}
)

// Store implements store.Store against the users and todos tables of a
// PostgREST endpoint.
type Store struct {
	client *Client
}

var _ store.Store = (*Store)(nil)

// NewStore wraps client.
func NewStore(client *Client) *Store {
	return &Store{client: client}
}

// Close is a no-op; the HTTP client holds no per-store resources.
func (s *Store) Close() error { return nil }

// single returns the only element of rows, ErrNotFound when rows is empty and
// an error when the filter matched more than one row.
func single[T any](rows []T, what string) (*T, error) {
	switch len(rows) {
	case 0:
		return nil, fmt.Errorf("%s: %w", what, store.ErrNotFound)
	case 1:
		return &rows[0], nil
	default:
		return nil, fmt.Errorf("%s: expected a single row, got %d", what, len(rows))
	}
}

// GetUserByUsername retrieves the single user with the given username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	q := From(tableUsers).Select(userColumns...).Eq("username", username)

	var rows []model.User
	if err := s.client.do(ctx, http.MethodGet, q, "", nil, &rows); err != nil {
		return nil, fmt.Errorf("getting user %s: %w", username, err)
	}
	return single(rows, "user "+username)
}

// CreateUser inserts a new account. The password is stored as given.
func (s *Store) CreateUser(ctx context.Context, username, password string) (*model.User, error) {
	q := From(tableUsers).Select(userColumns...)
	body := map[string]any{"username": username, "password": password}

	var rows []model.User
	if err := s.client.do(ctx, http.MethodPost, q, preferRepresentation, body, &rows); err != nil {
		return nil, fmt.Errorf("creating user %s: %w", username, err)
	}
	return single(rows, "created user "+username)
}

// ListTodos returns the todos of a user, newest first.
func (s *Store) ListTodos(ctx context.Context, userID int64) ([]model.Todo, error) {
	q := From(tableTodos).Select(todoColumns...).Eq("user_id", userID).Order("id", true)

	todos := []model.Todo{}
	if err := s.client.do(ctx, http.MethodGet, q, "", nil, &todos); err != nil {
		return nil, fmt.Errorf("listing todos for user %d: %w", userID, err)
	}
	return todos, nil
}

// CreateTodo inserts a new, not yet done todo for the user.
func (s *Store) CreateTodo(ctx context.Context, userID int64, description string) (*model.Todo, error) {
	q := From(tableTodos).Select(todoColumns...)
	body := map[string]any{"user_id": userID, "description": description, "is_done": false}

	var rows []model.Todo
	if err := s.client.do(ctx, http.MethodPost, q, preferRepresentation, body, &rows); err != nil {
		return nil, fmt.Errorf("creating todo for user %d: %w", userID, err)
	}
	return single(rows, "created todo")
}

// SetTodoDone updates the completion flag of a todo.
func (s *Store) SetTodoDone(ctx context.Context, id int64, done bool) (*model.Todo, error) {
	q := From(tableTodos).Select(todoColumns...).Eq("id", id)
	body := map[string]any{"is_done": done}

	var rows []model.Todo
	if err := s.client.do(ctx, http.MethodPatch, q, preferRepresentation, body, &rows); err != nil {
		return nil, fmt.Errorf("updating todo %d: %w", id, err)
	}
	return single(rows, fmt.Sprintf("todo %d", id))
}

// DeleteTodo removes a todo by ID. A filter matching nothing is a no-op.
func (s *Store) DeleteTodo(ctx context.Context, id int64) error {
	q := From(tableTodos).Eq("id", id)
	if err := s.client.do(ctx, http.MethodDelete, q, preferMinimal, nil, nil); err != nil {
		return fmt.Errorf("deleting todo %d: %w", id, err)
	}
	return nil
}
