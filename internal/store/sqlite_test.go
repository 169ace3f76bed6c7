package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/nhle/todolist/internal/store"
	"github.com/nhle/todolist/internal/testutil"
)

func TestMigrationsApplied(t *testing.T) {
	s := testutil.NewTestStore(t)

	version, err := s.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if version != 2 {
		t.Fatalf("schema version = %d, want 2", version)
	}
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "todo.db")

	s, err := store.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	u, err := s.CreateUser(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = store.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopening: %v", err)
	}
	defer s.Close()

	got, err := s.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("id after reopen = %d, want %d", got.ID, u.ID)
	}
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	u, err := s.CreateUser(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID != 1 || u.Username != "alice" || u.Password != "pw1" {
		t.Fatalf("unexpected user: %+v", u)
	}

	if _, err := s.CreateUser(ctx, "alice", "other"); !errors.Is(err, store.ErrConflict) {
		t.Fatalf("duplicate CreateUser error = %v, want ErrConflict", err)
	}

	got, err := s.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if *got != *u {
		t.Fatalf("GetUserByUsername = %+v, want %+v", got, u)
	}

	if _, err := s.GetUserByUsername(ctx, "bob"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("missing user error = %v, want ErrNotFound", err)
	}
}

func TestTodos(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	alice, err := s.CreateUser(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	bob, err := s.CreateUser(ctx, "bob", "pw2")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	first, err := s.CreateTodo(ctx, alice.ID, "task A")
	if err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}
	if first.IsDone || first.UserID != alice.ID || first.Description != "task A" {
		t.Fatalf("unexpected todo: %+v", first)
	}
	second, err := s.CreateTodo(ctx, alice.ID, "task B")
	if err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}
	if _, err := s.CreateTodo(ctx, bob.ID, "bob's task"); err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}

	todos, err := s.ListTodos(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListTodos: %v", err)
	}
	if len(todos) != 2 {
		t.Fatalf("len(todos) = %d, want 2", len(todos))
	}
	if todos[0].ID != second.ID || todos[1].ID != first.ID {
		t.Fatalf("todos not ordered by id descending: %+v", todos)
	}

	updated, err := s.SetTodoDone(ctx, first.ID, true)
	if err != nil {
		t.Fatalf("SetTodoDone: %v", err)
	}
	if !updated.IsDone {
		t.Fatal("SetTodoDone did not set the flag")
	}
	if _, err := s.SetTodoDone(ctx, 999, true); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("SetTodoDone missing id error = %v, want ErrNotFound", err)
	}

	if err := s.DeleteTodo(ctx, second.ID); err != nil {
		t.Fatalf("DeleteTodo: %v", err)
	}
	if err := s.DeleteTodo(ctx, 999); err != nil {
		t.Fatalf("DeleteTodo missing id: %v", err)
	}

	todos, err = s.ListTodos(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListTodos: %v", err)
	}
	if len(todos) != 1 || todos[0].ID != first.ID || !todos[0].IsDone {
		t.Fatalf("unexpected todos after delete: %+v", todos)
	}
}

func TestListTodosEmptyIsNotNil(t *testing.T) {
	s := testutil.NewTestStore(t)

	todos, err := s.ListTodos(context.Background(), 42)
	if err != nil {
		t.Fatalf("ListTodos: %v", err)
	}
	if todos == nil || len(todos) != 0 {
		t.Fatalf("ListTodos = %#v, want empty slice", todos)
	}
}

func TestCreateTodoUnknownUser(t *testing.T) {
	s := testutil.NewTestStore(t)

	if _, err := s.CreateTodo(context.Background(), 42, "orphan"); err == nil {
		t.Fatal("expected foreign key violation for unknown user")
	}
}
