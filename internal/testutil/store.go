package testutil

import (
	"testing"

	"github.com/nhle/todolist/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with the users and todos
// schema migrated and no rows. The store is closed when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}
