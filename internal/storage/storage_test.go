package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseKV(t *testing.T, kv KV) {
	t.Helper()

	_, ok, err := kv.Get("session")
	require.NoError(t, err)
	assert.False(t, ok, "missing key should report ok=false")

	require.NoError(t, kv.Set("session", `{"name":"Ana"}`))
	v, ok, err := kv.Get("session")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"name":"Ana"}`, v)

	require.NoError(t, kv.Set("session", `{"name":"Luis"}`))
	v, _, err = kv.Get("session")
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Luis"}`, v, "Set should overwrite")

	require.NoError(t, kv.Remove("session"))
	_, ok, err = kv.Get("session")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, kv.Remove("never-set"), "removing a missing key is not an error")
}

func TestMemory(t *testing.T) {
	exerciseKV(t, NewMemory())
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "gestion.db")
	db, err := OpenSQLite(path)
	require.NoError(t, err)
	defer db.Close() //nolint:errcheck

	exerciseKV(t, db)
}

func TestSQLitePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gestion.db")
	db, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, db.Set("tecnicos", "[]"))
	require.NoError(t, db.Close())

	db, err = OpenSQLite(path)
	require.NoError(t, err)
	defer db.Close() //nolint:errcheck

	v, ok, err := db.Get("tecnicos")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
}
