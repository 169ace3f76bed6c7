package store

import (
	"context"
	"errors"

	"github.com/nhle/todolist/internal/model"
)

// Sentinel errors shared by every backend implementation.
var (
	// ErrNotFound is returned when a single-row lookup or targeted update
	// matches no row.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when an insert violates a uniqueness constraint.
	ErrConflict = errors.New("conflict")
)

// UserStore reads and creates accounts.
type UserStore interface {
	// GetUserByUsername returns the single user with the given username or
	// ErrNotFound.
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	// CreateUser inserts a user with a plaintext password and returns the
	// stored row. A duplicate username yields ErrConflict.
	CreateUser(ctx context.Context, username, password string) (*model.User, error)
}

// TodoStore manages the todos of a user.
type TodoStore interface {
	// ListTodos returns every todo of userID ordered by id descending.
	ListTodos(ctx context.Context, userID int64) ([]model.Todo, error)
	// CreateTodo inserts a not-done todo and returns the stored row.
	CreateTodo(ctx context.Context, userID int64, description string) (*model.Todo, error)
	// SetTodoDone updates the completion flag and returns the stored row, or
	// ErrNotFound when no todo has that id.
	SetTodoDone(ctx context.Context, id int64, done bool) (*model.Todo, error)
	// DeleteTodo removes the todo. Deleting a missing id is not an error.
	DeleteTodo(ctx context.Context, id int64) error
}

// Store is the full relational backend used by the application.
type Store interface {
	UserStore
	TodoStore
	Close() error
}
