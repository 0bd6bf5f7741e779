package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logbookadapter "ascent/internal/modules/logbook/adapter/out"
	logbookout "ascent/internal/modules/logbook/port/out"
	apperrors "ascent/internal/platform/errors"
	"ascent/internal/platform/sqlitedb"
)

func exerciseStore(t *testing.T, store logbookout.KVStore) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, "ascent/logbook")
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, store.Set(ctx, "ascent/logbook", []byte(`{"v":1}`)))
	require.NoError(t, store.Set(ctx, "ascent/logbook", []byte(`{"v":2}`)))
	require.NoError(t, store.Set(ctx, "other", []byte(`x`)))

	got, err := store.Get(ctx, "ascent/logbook")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(got))

	got, err = store.Get(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, "x", string(got))
}

func TestSQLiteKVStore(t *testing.T) {
	t.Parallel()

	db, err := sqlitedb.Open(filepath.Join(t.TempDir(), "state", "ascent.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store, err := logbookadapter.NewSQLiteKVStore(db)
	require.NoError(t, err)
	exerciseStore(t, store)

	var rows int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&rows))
	assert.Equal(t, 2, rows)
}

func TestFileKVStore(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "kv")
	exerciseStore(t, logbookadapter.NewFileKVStore(dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := []string{}
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"ascent.logbook.json", "other.json"}, names)
}

func TestFileKVStoreKeepsKeysInsideDir(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dir := filepath.Join(root, "kv")
	store := logbookadapter.NewFileKVStore(dir)
	require.NoError(t, store.Set(context.Background(), "../escape", []byte("x")))

	_, err := os.Stat(filepath.Join(root, "escape.json"))
	assert.True(t, os.IsNotExist(err))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
