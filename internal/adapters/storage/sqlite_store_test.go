package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("k", "v"))

	value, ok, err := store.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", value)
}

func TestSQLiteStoreGetMissing(t *testing.T) {
	store := newTestStore(t)

	_, ok, err := store.Get("nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteStoreOverwrite(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("k", "first"))
	require.NoError(t, store.Set("k", "second"))

	value, _, err := store.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "second", value)
}

func TestSQLiteStoreDelete(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("k", "v"))

	require.NoError(t, store.Delete("k"))

	_, ok, err := store.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting a missing key is not an error
	assert.NoError(t, store.Delete("k"))
}

func TestSQLiteStoreKeysPrefix(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("cache_a", "1"))
	require.NoError(t, store.Set("cache_b", "2"))
	require.NoError(t, store.Set("config_a", "3"))
	// The underscore in the prefix must match literally, not as a LIKE
	// single-character wildcard
	require.NoError(t, store.Set("cacheXa", "4"))

	keys, err := store.Keys("cache_")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"cache_a", "cache_b"}, keys)
}

func TestSQLiteStoreDeleteMany(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("a", "1"))
	require.NoError(t, store.Set("b", "2"))
	require.NoError(t, store.Set("c", "3"))

	require.NoError(t, store.DeleteMany([]string{"a", "b"}))

	keys, err := store.Keys("")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"c"}, keys)

	// Empty input is a no-op
	assert.NoError(t, store.DeleteMany(nil))
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Set("k", "v"))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", value)
}
