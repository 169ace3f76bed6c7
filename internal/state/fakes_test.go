package state

import (
	"context"
	"errors"

	"github.com/nhle/todolist/internal/model"
	"github.com/nhle/todolist/internal/store"
)

var errBackend = errors.New("backend unavailable")

// failingStore fails every call with errBackend.
type failingStore struct{}

func (failingStore) GetUserByUsername(context.Context, string) (*model.User, error) {
	return nil, errBackend
}

func (failingStore) CreateUser(context.Context, string, string) (*model.User, error) {
	return nil, errBackend
}

func (failingStore) ListTodos(context.Context, int64) ([]model.Todo, error) {
	return nil, errBackend
}

func (failingStore) CreateTodo(context.Context, int64, string) (*model.Todo, error) {
	return nil, errBackend
}

func (failingStore) SetTodoDone(context.Context, int64, bool) (*model.Todo, error) {
	return nil, errBackend
}

func (failingStore) DeleteTodo(context.Context, int64) error { return errBackend }

// gatedStore delegates to an inner store but parks every call except
// CreateUser until a value is sent on gate. started receives once per
// parked call.
type gatedStore struct {
	inner   store.Store
	started chan struct{}
	gate    chan struct{}
}

func newGatedStore(inner store.Store) *gatedStore {
	return &gatedStore{
		inner:   inner,
		started: make(chan struct{}, 16),
		gate:    make(chan struct{}),
	}
}

func (g *gatedStore) wait() {
	g.started <- struct{}{}
	<-g.gate
}

func (g *gatedStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	g.wait()
	return g.inner.GetUserByUsername(ctx, username)
}

func (g *gatedStore) CreateUser(ctx context.Context, username, password string) (*model.User, error) {
	return g.inner.CreateUser(ctx, username, password)
}

func (g *gatedStore) ListTodos(ctx context.Context, userID int64) ([]model.Todo, error) {
	g.wait()
	return g.inner.ListTodos(ctx, userID)
}

func (g *gatedStore) CreateTodo(ctx context.Context, userID int64, description string) (*model.Todo, error) {
	g.wait()
	return g.inner.CreateTodo(ctx, userID, description)
}

func (g *gatedStore) SetTodoDone(ctx context.Context, id int64, done bool) (*model.Todo, error) {
	g.wait()
	return g.inner.SetTodoDone(ctx, id, done)
}

func (g *gatedStore) DeleteTodo(ctx context.Context, id int64) error {
	g.wait()
	return g.inner.DeleteTodo(ctx, id)
}

func (g *gatedStore) Close() error { return nil }
