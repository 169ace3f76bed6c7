package state

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/nhle/todolist/internal/apperr"
	"github.com/nhle/todolist/internal/i18n"
	"github.com/nhle/todolist/internal/model"
	"github.com/nhle/todolist/internal/store"
)

// TodosSnapshot is a point-in-time copy of the todo state.
type TodosSnapshot struct {
	Todos   []model.Todo
	Loading bool
	Status  model.Status
}

// Todos mirrors the todos of the logged-in user, newest first.
//
// Results are applied only if no Clear happened since the call started
// (epoch) and, for fetches, no newer fetch was issued (fetchSeq).
type Todos struct {
	store store.TodoStore
	loc   i18n.Localizer

	mu       sync.Mutex
	todos    []model.Todo
	fetching int
	status   model.Status

	epoch    uint64
	fetchSeq uint64
	adding   bool
	pending  map[int64]struct{}
}

// NewTodos returns an empty container. A nil loc uses English.
func NewTodos(todos store.TodoStore, loc i18n.Localizer) *Todos {
	return &Todos{
		store:   todos,
		loc:     defaultLocalizer(loc),
		todos:   []model.Todo{},
		status:  model.Ok{},
		pending: make(map[int64]struct{}),
	}
}

// Snapshot returns a copy of the current state.
func (t *Todos) Snapshot() TodosSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	todos := make([]model.Todo, len(t.todos))
	copy(todos, t.todos)
	return TodosSnapshot{
		Todos:   todos,
		Loading: t.fetching > 0,
		Status:  t.status,
	}
}

// failLocked records a failure. Callers hold t.mu.
func (t *Todos) failLocked(code apperr.Code, cause error) error {
	status, err := failure(t.loc, code, cause)
	t.status = status
	log.Printf("todos: %s: %v", code, cause)
	return err
}

// FetchTodos replaces the list with the backend rows of userID. On failure
// the previous list is kept.
func (t *Todos) FetchTodos(ctx context.Context, userID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	t.fetchSeq++
	seq, epoch := t.fetchSeq, t.epoch
	t.fetching++
	t.mu.Unlock()

	rows, err := t.store.ListTodos(ctx, userID)

	t.mu.Lock()
	defer t.mu.Unlock()
	if epoch != t.epoch {
		return ErrStale
	}
	t.fetching--
	if seq != t.fetchSeq {
		return ErrStale
	}
	if err != nil {
		return t.failLocked(apperr.CodeTodoLoadFailed, err)
	}
	t.todos = append(make([]model.Todo, 0, len(rows)), rows...)
	return nil
}

// AddTodo inserts a todo for userID and prepends the stored row. Only one
// add may be in flight at a time.
func (t *Todos) AddTodo(ctx context.Context, userID int64, description string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	if t.adding {
		t.mu.Unlock()
		return ErrBusy
	}
	t.adding = true
	epoch := t.epoch
	t.mu.Unlock()

	todo, err := t.store.CreateTodo(ctx, userID, description)

	t.mu.Lock()
	defer t.mu.Unlock()
	if epoch != t.epoch {
		return ErrStale
	}
	t.adding = false
	if err != nil {
		return t.failLocked(apperr.CodeTodoAddFailed, err)
	}
	if t.indexLocked(todo.ID) < 0 {
		t.todos = append([]model.Todo{*todo}, t.todos...)
	}
	return nil
}

// ToggleTodo sets the completion flag of id once the backend confirms it.
func (t *Todos) ToggleTodo(ctx context.Context, id int64, done bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	epoch, err := t.acquire(id)
	if err != nil {
		return err
	}

	_, err = t.store.SetTodoDone(ctx, id, done)

	t.mu.Lock()
	defer t.mu.Unlock()
	if epoch != t.epoch {
		return ErrStale
	}
	delete(t.pending, id)
	if err != nil {
		return t.failLocked(apperr.CodeTodoUpdateFailed, err)
	}
	if i := t.indexLocked(id); i >= 0 {
		t.todos[i].IsDone = done
	}
	return nil
}

// DeleteTodo removes id on the backend and then locally. A missing id is
// not an error and leaves the list unchanged.
func (t *Todos) DeleteTodo(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	epoch, err := t.acquire(id)
	if err != nil {
		return err
	}

	err = t.store.DeleteTodo(ctx, id)

	t.mu.Lock()
	defer t.mu.Unlock()
	if epoch != t.epoch {
		return ErrStale
	}
	delete(t.pending, id)
	if err != nil {
		return t.failLocked(apperr.CodeTodoDeleteFailed, err)
	}
	if i := t.indexLocked(id); i >= 0 {
		t.todos = append(t.todos[:i:i], t.todos[i+1:]...)
	}
	return nil
}

// acquire marks id as having a mutation in flight.
func (t *Todos) acquire(id int64) (uint64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, busy := t.pending[id]; busy {
		return 0, ErrBusy
	}
	t.pending[id] = struct{}{}
	return t.epoch, nil
}

func (t *Todos) indexLocked(id int64) int {
	for i := range t.todos {
		if t.todos[i].ID == id {
			return i
		}
	}
	return -1
}

// Clear empties the list and resets the status. Results of calls started
// before Clear are discarded.
func (t *Todos) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.epoch++
	t.todos = []model.Todo{}
	t.status = model.Ok{}
	t.fetching = 0
	t.adding = false
	t.pending = make(map[int64]struct{})
}

// SetError sets the status to msg, or clears it when msg is empty.
func (t *Todos) SetError(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = statusFromMessage(msg)
}

// IsDiscarded reports whether err means the call had no effect on state
// because it was rejected, superseded or canceled before it started.
func IsDiscarded(err error) bool {
	return errors.Is(err, ErrBusy) || errors.Is(err, ErrStale) ||
		errors.Is(err, context.Canceled)
}
