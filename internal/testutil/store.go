// Package testutil provides shared helpers for tests that need a session store.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/tech-concierge/internal/model"
	"github.com/Veraticus/tech-concierge/internal/storage"
)

// SetupTestStore creates a migrated in-memory SQLite store that is closed
// when the test finishes.
//
// Example:
//
//	store := testutil.SetupTestStore(t)
//	agent := concierge.NewAgent(cat, nil, store, nil)
func SetupTestStore(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(storage.MemoryDSN)
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

// SeedSession saves session into store or fails the test.
func SeedSession(t *testing.T, store *storage.SQLiteStorage, session *model.Session) {
	t.Helper()
	if err := store.SaveSession(context.Background(), session); err != nil {
		t.Fatalf("failed to seed session %q: %v", session.ID, err)
	}
}
