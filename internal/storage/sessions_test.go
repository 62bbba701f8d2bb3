package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/tech-concierge/internal/common"
	"github.com/Veraticus/tech-concierge/internal/model"
	"github.com/Veraticus/tech-concierge/internal/service"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

// stores returns every SessionStore implementation, freshly initialized.
func stores(t *testing.T) map[string]service.SessionStore {
	t.Helper()
	sqlite, cleanup := createTestStorage(t)
	t.Cleanup(cleanup)
	return map[string]service.SessionStore{
		"sqlite": sqlite,
		"memory": NewMemoryStorage(),
	}
}

func testSession(id string) *model.Session {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return &model.Session{
		ID: id,
		Context: model.Context{
			Budget:          1500,
			UseCase:         model.UseCaseVideoEditing,
			Category:        model.CategoryLaptops,
			ExistingDevices: []string{"iPhone"},
		},
		Messages: []model.Message{
			{Role: model.RoleUser, Content: "I need a laptop for video editing", Timestamp: base},
			{Role: model.RoleAssistant, Content: "What's your budget?", Timestamp: base.Add(time.Second)},
			{Role: model.RoleUser, Content: "Under $1500", Timestamp: base.Add(2 * time.Second)},
			{
				Role:      model.RoleAssistant,
				Content:   "Here are some options",
				Timestamp: base.Add(3 * time.Second),
				BundleIDs: []string{"creator-good", "laptop-value-bundle"},
			},
		},
	}
}

func TestSessionStore_RoundTrip(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			session := testSession("round-trip")

			require.NoError(t, store.SaveSession(ctx, session))
			assert.False(t, session.CreatedAt.IsZero())
			assert.False(t, session.UpdatedAt.IsZero())

			got, err := store.GetSession(ctx, "round-trip")
			require.NoError(t, err)

			assert.Equal(t, session.ID, got.ID)
			assert.Equal(t, session.Context, got.Context)
			require.Len(t, got.Messages, len(session.Messages))
			for i, m := range session.Messages {
				assert.Equal(t, m.Role, got.Messages[i].Role)
				assert.Equal(t, m.Content, got.Messages[i].Content)
				assert.Equal(t, m.BundleIDs, got.Messages[i].BundleIDs)
				assert.True(t, m.Timestamp.Equal(got.Messages[i].Timestamp), "message %d timestamp", i)
			}
			assert.Equal(t, 2, got.UserTurns())
		})
	}
}

func TestSessionStore_SaveReplacesHistory(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			session := testSession("replace")
			require.NoError(t, store.SaveSession(ctx, session))

			session.Messages = session.Messages[:1]
			session.Context.Urgency = model.UrgencyToday
			require.NoError(t, store.SaveSession(ctx, session))

			got, err := store.GetSession(ctx, "replace")
			require.NoError(t, err)
			assert.Len(t, got.Messages, 1)
			assert.Equal(t, model.UrgencyToday, got.Context.Urgency)
		})
	}
}

func TestSessionStore_ReturnsCopies(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			session := testSession("copies")
			require.NoError(t, store.SaveSession(ctx, session))

			session.Context.ExistingDevices[0] = "changed"
			session.Messages[3].BundleIDs[0] = "changed"

			got, err := store.GetSession(ctx, "copies")
			require.NoError(t, err)
			assert.Equal(t, []string{"iPhone"}, got.Context.ExistingDevices)
			assert.Equal(t, "creator-good", got.Messages[3].BundleIDs[0])

			got.Messages[0].Content = "mutated"
			again, err := store.GetSession(ctx, "copies")
			require.NoError(t, err)
			assert.Equal(t, "I need a laptop for video editing", again.Messages[0].Content)
		})
	}
}

func TestSessionStore_NotFound(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := store.GetSession(ctx, "missing")
			assert.ErrorIs(t, err, common.ErrNotFound)

			err = store.DeleteSession(ctx, "missing")
			assert.ErrorIs(t, err, common.ErrNotFound)

			err = store.RecordRecommendations(ctx, []model.Recommendation{{SessionID: "missing", BundleID: "b"}})
			assert.ErrorIs(t, err, common.ErrNotFound)

			_, err = store.GetSession(ctx, "")
			assert.ErrorIs(t, err, ErrEmptyString)
		})
	}
}

func TestSessionStore_ListSessions(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for _, id := range []string{"a", "b", "c"} {
				require.NoError(t, store.SaveSession(ctx, testSession(id)))
				time.Sleep(5 * time.Millisecond)
			}

			all, err := store.ListSessions(ctx, service.SessionFilter{})
			require.NoError(t, err)
			require.Len(t, all, 3)
			assert.Equal(t, []string{"c", "b", "a"}, sessionIDs(all))
			assert.Len(t, all[0].Messages, 4)

			page, err := store.ListSessions(ctx, service.SessionFilter{Limit: 1, Offset: 1})
			require.NoError(t, err)
			assert.Equal(t, []string{"b"}, sessionIDs(page))

			tail, err := store.ListSessions(ctx, service.SessionFilter{Offset: 2})
			require.NoError(t, err)
			assert.Equal(t, []string{"a"}, sessionIDs(tail))

			future := time.Now().Add(time.Hour)
			none, err := store.ListSessions(ctx, service.SessionFilter{Since: &future})
			require.NoError(t, err)
			assert.Empty(t, none)
		})
	}
}

func TestSessionStore_DeleteSession(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.SaveSession(ctx, testSession("doomed")))
			require.NoError(t, store.RecordRecommendations(ctx, []model.Recommendation{
				{SessionID: "doomed", BundleID: "starter-bundle", Price: 948, Rank: 1},
			}))

			require.NoError(t, store.DeleteSession(ctx, "doomed"))

			_, err := store.GetSession(ctx, "doomed")
			assert.ErrorIs(t, err, common.ErrNotFound)

			recs, err := store.GetRecommendations(ctx, "doomed")
			require.NoError(t, err)
			assert.Empty(t, recs)
		})
	}
}

func TestSessionStore_Recommendations(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, store.SaveSession(ctx, testSession("recs")))

			shown := time.Date(2025, 3, 1, 12, 0, 5, 0, time.UTC)
			require.NoError(t, store.RecordRecommendations(ctx, []model.Recommendation{
				{SessionID: "recs", BundleID: "creator-good", Price: 1597, Rank: 1, ShownAt: shown},
				{SessionID: "recs", BundleID: "laptop-value-bundle", Price: 1318.94, Rank: 2},
			}))

			recs, err := store.GetRecommendations(ctx, "recs")
			require.NoError(t, err)
			require.Len(t, recs, 2)
			assert.Equal(t, "creator-good", recs[0].BundleID)
			assert.Equal(t, 1, recs[0].Rank)
			assert.True(t, shown.Equal(recs[0].ShownAt))
			assert.InDelta(t, 1318.94, recs[1].Price, 0.001)
			assert.False(t, recs[1].ShownAt.IsZero())

			err = store.RecordRecommendations(ctx, nil)
			assert.ErrorIs(t, err, ErrNilParameter)
		})
	}
}

func TestSQLiteStorage_Migrate(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)

	// Running again is a no-op.
	require.NoError(t, store.Migrate(ctx))

	var tables int
	err = store.db.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='table' AND name IN ('sessions', 'messages', 'recommendations')
	`).Scan(&tables)
	require.NoError(t, err)
	assert.Equal(t, 3, tables)
}

func TestSQLiteStorage_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "sessions.db")
	ctx := context.Background()

	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.SaveSession(ctx, testSession("durable")))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()
	require.NoError(t, reopened.Migrate(ctx))

	got, err := reopened.GetSession(ctx, "durable")
	require.NoError(t, err)
	assert.Len(t, got.Messages, 4)
	assert.Equal(t, dbPath, reopened.Path())
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage(" ")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func sessionIDs(sessions []model.Session) []string {
	ids := make([]string, len(sessions))
	for i, s := range sessions {
		ids[i] = s.ID
	}
	return ids
}

func TestOpen(t *testing.T) {
	mem, err := Open(BackendMemory, "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStorage{}, mem)

	db, err := Open(BackendSQLite, MemoryDSN)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	assert.IsType(t, &SQLiteStorage{}, db)

	_, err = Open("postgres", "")
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}
