package state

import (
	"context"
	"errors"
	"testing"

	"github.com/nhle/todolist/internal/apperr"
	"github.com/nhle/todolist/internal/i18n"
	"github.com/nhle/todolist/internal/model"
	"github.com/nhle/todolist/internal/store"
	"github.com/nhle/todolist/internal/testutil"
)

// seededTodos returns a container over a fresh store with one user and the
// given descriptions added in order, plus that user's id.
func seededTodos(t *testing.T, descriptions ...string) (*Todos, store.Store, int64) {
	t.Helper()
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	u, err := s.CreateUser(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	todos := NewTodos(s, nil)
	for _, d := range descriptions {
		if err := todos.AddTodo(ctx, u.ID, d); err != nil {
			t.Fatalf("AddTodo(%q): %v", d, err)
		}
	}
	return todos, s, u.ID
}

func descriptions(todos []model.Todo) []string {
	out := make([]string, len(todos))
	for i, td := range todos {
		out[i] = td.Description
	}
	return out
}

func TestAddTodoPrepends(t *testing.T) {
	todos, _, uid := seededTodos(t, "first")

	if err := todos.AddTodo(context.Background(), uid, "buy milk"); err != nil {
		t.Fatalf("AddTodo: %v", err)
	}
	snap := todos.Snapshot()
	if len(snap.Todos) != 2 {
		t.Fatalf("len = %d, want 2", len(snap.Todos))
	}
	if snap.Todos[0].Description != "buy milk" || snap.Todos[0].IsDone {
		t.Fatalf("first todo = %+v, want not-done buy milk", snap.Todos[0])
	}
}

func TestFetchTodosOrdersNewestFirst(t *testing.T) {
	todos, _, uid := seededTodos(t, "a", "b", "c")
	todos.Clear()

	if err := todos.FetchTodos(context.Background(), uid); err != nil {
		t.Fatalf("FetchTodos: %v", err)
	}
	got := descriptions(todos.Snapshot().Todos)
	want := []string{"c", "b", "a"}
	if len(got) != len(want) {
		t.Fatalf("todos = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("todos = %v, want %v", got, want)
		}
	}
}

func TestToggleTodoChangesExactlyOne(t *testing.T) {
	todos, _, _ := seededTodos(t, "a", "b", "c")
	before := todos.Snapshot().Todos
	target := before[1].ID

	if err := todos.ToggleTodo(context.Background(), target, true); err != nil {
		t.Fatalf("ToggleTodo: %v", err)
	}
	after := todos.Snapshot().Todos
	for i := range after {
		want := before[i].IsDone
		if after[i].ID == target {
			want = true
		}
		if after[i].IsDone != want {
			t.Fatalf("todo %d done = %v, want %v", after[i].ID, after[i].IsDone, want)
		}
	}

	if err := todos.ToggleTodo(context.Background(), target, false); err != nil {
		t.Fatalf("ToggleTodo back: %v", err)
	}
	if todos.Snapshot().Todos[1].IsDone {
		t.Fatal("toggle back to false not applied")
	}
}

func TestToggleMissingTodoFails(t *testing.T) {
	todos, _, _ := seededTodos(t, "a")

	err := todos.ToggleTodo(context.Background(), 999, true)
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("ToggleTodo error = %v, want ErrNotFound in chain", err)
	}
	assertFailed(t, todos.Snapshot().Status, apperr.CodeTodoUpdateFailed)
}

func TestDeleteTodo(t *testing.T) {
	todos, _, _ := seededTodos(t, "a", "b", "c")
	target := todos.Snapshot().Todos[1].ID

	if err := todos.DeleteTodo(context.Background(), target); err != nil {
		t.Fatalf("DeleteTodo: %v", err)
	}
	got := descriptions(todos.Snapshot().Todos)
	if len(got) != 2 || got[0] != "c" || got[1] != "a" {
		t.Fatalf("todos after delete = %v, want [c a]", got)
	}

	if err := todos.DeleteTodo(context.Background(), 999); err != nil {
		t.Fatalf("DeleteTodo missing id: %v", err)
	}
	snap := todos.Snapshot()
	if len(snap.Todos) != 2 {
		t.Fatalf("len after missing delete = %d, want 2", len(snap.Todos))
	}
	assertOk(t, snap.Status)
}

func TestClear(t *testing.T) {
	todos, _, _ := seededTodos(t, "a", "b")
	todos.SetError("boom")

	todos.Clear()
	snap := todos.Snapshot()
	if len(snap.Todos) != 0 {
		t.Fatalf("todos after Clear = %v", snap.Todos)
	}
	assertOk(t, snap.Status)
	if snap.Loading {
		t.Fatal("loading set after Clear")
	}
}

func TestFetchFailureKeepsTodos(t *testing.T) {
	todos, _, uid := seededTodos(t, "a")
	todos.store = failingStore{}
	todos.loc = i18n.NewPrinter("id")

	err := todos.FetchTodos(context.Background(), uid)
	if apperr.CodeOf(err) != apperr.CodeTodoLoadFailed {
		t.Fatalf("FetchTodos error = %v, want load failed", err)
	}
	snap := todos.Snapshot()
	if len(snap.Todos) != 1 {
		t.Fatalf("todos after failed fetch = %v, want previous list", snap.Todos)
	}
	f := assertFailed(t, snap.Status, apperr.CodeTodoLoadFailed)
	if f.Message != "Gagal memuat todo." {
		t.Fatalf("message = %q", f.Message)
	}
	if snap.Loading {
		t.Fatal("loading still set after failed fetch")
	}
}

func TestMutationFailuresSetStatusOnly(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		call func(*Todos) error
		code apperr.Code
	}{
		{name: "add", call: func(td *Todos) error { return td.AddTodo(ctx, 1, "x") }, code: apperr.CodeTodoAddFailed},
		{name: "toggle", call: func(td *Todos) error { return td.ToggleTodo(ctx, 1, true) }, code: apperr.CodeTodoUpdateFailed},
		{name: "delete", call: func(td *Todos) error { return td.DeleteTodo(ctx, 1) }, code: apperr.CodeTodoDeleteFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			todos := NewTodos(failingStore{}, nil)
			if err := tt.call(todos); apperr.CodeOf(err) != tt.code {
				t.Fatalf("error = %v, want %s", err, tt.code)
			}
			snap := todos.Snapshot()
			assertFailed(t, snap.Status, tt.code)
			if len(snap.Todos) != 0 {
				t.Fatalf("todos changed on failure: %v", snap.Todos)
			}
		})
	}
}

func TestAliceScenario(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	auth := NewAuth(s, nil)
	todos := NewTodos(s, nil)

	if err := auth.Register(ctx, "alice", "pw1"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	id, err := auth.Login(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if id != 1 {
		t.Fatalf("login id = %d, want 1", id)
	}
	if err := todos.AddTodo(ctx, id, "task A"); err != nil {
		t.Fatalf("AddTodo: %v", err)
	}
	if err := todos.FetchTodos(ctx, id); err != nil {
		t.Fatalf("FetchTodos: %v", err)
	}
	got := todos.Snapshot().Todos
	if len(got) != 1 || got[0].Description != "task A" || got[0].IsDone {
		t.Fatalf("todos = %+v, want [task A not done]", got)
	}
}

func TestSecondToggleWhileInFlightIsBusy(t *testing.T) {
	todos, s, _ := seededTodos(t, "a")
	id := todos.Snapshot().Todos[0].ID
	g := newGatedStore(s)
	todos.store = g

	done := make(chan error, 1)
	go func() { done <- todos.ToggleTodo(context.Background(), id, true) }()
	<-g.started

	if err := todos.ToggleTodo(context.Background(), id, true); !errors.Is(err, ErrBusy) {
		t.Fatalf("second ToggleTodo = %v, want ErrBusy", err)
	}
	if err := todos.DeleteTodo(context.Background(), id); !errors.Is(err, ErrBusy) {
		t.Fatalf("DeleteTodo during toggle = %v, want ErrBusy", err)
	}

	g.gate <- struct{}{}
	if err := <-done; err != nil {
		t.Fatalf("first ToggleTodo: %v", err)
	}
	if !todos.Snapshot().Todos[0].IsDone {
		t.Fatal("first toggle not applied")
	}
}

func TestSecondAddWhileInFlightIsBusy(t *testing.T) {
	todos, s, uid := seededTodos(t)
	g := newGatedStore(s)
	todos.store = g

	done := make(chan error, 1)
	go func() { done <- todos.AddTodo(context.Background(), uid, "once") }()
	<-g.started

	if err := todos.AddTodo(context.Background(), uid, "once"); !errors.Is(err, ErrBusy) {
		t.Fatalf("second AddTodo = %v, want ErrBusy", err)
	}

	g.gate <- struct{}{}
	if err := <-done; err != nil {
		t.Fatalf("first AddTodo: %v", err)
	}
	if n := len(todos.Snapshot().Todos); n != 1 {
		t.Fatalf("len = %d, want exactly one added todo", n)
	}
}

func TestSupersededFetchIsDiscarded(t *testing.T) {
	todos, s, uid := seededTodos(t, "a")
	g := newGatedStore(s)
	todos.store = g

	older := make(chan error, 1)
	go func() { older <- todos.FetchTodos(context.Background(), uid) }()
	<-g.started

	todos.store = s
	if err := todos.FetchTodos(context.Background(), uid); err != nil {
		t.Fatalf("newer FetchTodos: %v", err)
	}
	if _, err := s.CreateTodo(context.Background(), uid, "b"); err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}

	g.gate <- struct{}{}
	if err := <-older; !errors.Is(err, ErrStale) {
		t.Fatalf("older FetchTodos = %v, want ErrStale", err)
	}
	snap := todos.Snapshot()
	if got := descriptions(snap.Todos); len(got) != 1 || got[0] != "a" {
		t.Fatalf("todos = %v, want the newer fetch result [a]", got)
	}
	if snap.Loading {
		t.Fatal("loading still set after both fetches returned")
	}
}

func TestClearDiscardsInFlightFetch(t *testing.T) {
	todos, s, uid := seededTodos(t, "a")
	g := newGatedStore(s)
	todos.store = g

	done := make(chan error, 1)
	go func() { done <- todos.FetchTodos(context.Background(), uid) }()
	<-g.started

	todos.Clear()
	g.gate <- struct{}{}
	if err := <-done; !errors.Is(err, ErrStale) {
		t.Fatalf("FetchTodos after Clear = %v, want ErrStale", err)
	}
	snap := todos.Snapshot()
	if len(snap.Todos) != 0 || snap.Loading {
		t.Fatalf("stale fetch leaked into state: %+v", snap)
	}
}

func TestCanceledCallLeavesStateAlone(t *testing.T) {
	todos, _, uid := seededTodos(t, "keep")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := todos.AddTodo(ctx, uid, "late"); !IsDiscarded(err) {
		t.Fatalf("AddTodo on canceled ctx = %v, want discarded", err)
	}
	if err := todos.FetchTodos(ctx, uid); !errors.Is(err, context.Canceled) {
		t.Fatalf("FetchTodos on canceled ctx = %v, want context.Canceled", err)
	}
	snap := todos.Snapshot()
	if len(snap.Todos) != 1 || snap.Loading {
		t.Fatalf("snapshot = %+v, want untouched list", snap)
	}
	if _, failed := model.FailureOf(snap.Status); failed {
		t.Fatal("a canceled call must not set a failure")
	}
}
