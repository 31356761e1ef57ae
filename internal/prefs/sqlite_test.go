package prefs

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore()
	require.NoError(t, store.Open(":memory:"))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_OpenMigrates(t *testing.T) {
	store := setupTestStore(t)

	version, err := store.MigrationVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	rows, err := store.db.Query("SELECT 1 FROM preferences LIMIT 1")
	require.NoError(t, err)
	_ = rows.Close()
}

func TestSQLiteStore_CRUD(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "p1", "edit_mode")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "p1", "edit_mode", "true"))
	require.NoError(t, store.Set(ctx, "p1", "edit_mode", "false"))
	require.NoError(t, store.Set(ctx, "p2", "edit_mode", "true"))

	v, ok, err := store.Get(ctx, "p1", "edit_mode")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "false", v, "set should overwrite")

	all, err := store.List(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"edit_mode": "false"}, all)

	profiles, err := store.Profiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, profiles)

	require.NoError(t, store.Delete(ctx, "p1", "edit_mode"))
	_, ok, err = store.Get(ctx, "p1", "edit_mode")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = store.Get(ctx, "p2", "edit_mode")
	require.NoError(t, err)
	assert.True(t, ok, "other profiles are untouched")
}

func TestSQLiteStore_PersistsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")
	ctx := context.Background()

	store := NewSQLiteStore()
	require.NoError(t, store.Open(path))
	require.NoError(t, store.Set(ctx, "p", "filter", `{"status":"active"}`))
	require.NoError(t, store.Close())

	reopened := NewSQLiteStore()
	require.NoError(t, reopened.Open(path))
	defer func() { _ = reopened.Close() }()

	v, ok, err := reopened.Get(ctx, "p", "filter")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"status":"active"}`, v)
}

func TestSQLiteStore_NotOpen(t *testing.T) {
	store := NewSQLiteStore()
	ctx := context.Background()

	_, _, err := store.Get(ctx, "p", "k")
	assert.ErrorIs(t, err, ErrNotOpen)
	assert.ErrorIs(t, store.Set(ctx, "p", "k", "v"), ErrNotOpen)
	assert.ErrorIs(t, store.Delete(ctx, "p", "k"), ErrNotOpen)
	_, err = store.List(ctx, "p")
	assert.ErrorIs(t, err, ErrNotOpen)
	assert.ErrorIs(t, store.Migrate(), ErrNotOpen)
	assert.NoError(t, store.Close())
}
