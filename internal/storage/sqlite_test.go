//go:build !js

package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T, path, slot string) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(path, slot)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore(t *testing.T) {
	s := openTestSQLite(t, filepath.Join(t.TempDir(), "geocoin.db"), "main")
	exerciseStore(t, s)
}

func TestSQLiteStoreSlotsAreIndependent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geocoin.db")
	a := openTestSQLite(t, path, "a")
	b := openTestSQLite(t, path, "b")

	require.NoError(t, a.Save("alpha"))
	_, ok, err := b.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, b.Save("beta"))
	require.NoError(t, a.Clear())
	blob, ok, err := b.Load()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "beta", blob)
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geocoin.db")
	first, err := OpenSQLite(path, "main")
	require.NoError(t, err)
	require.NoError(t, first.Save("persisted"))
	require.NoError(t, first.Close())

	second := openTestSQLite(t, path, "main")
	blob, ok, err := second.Load()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "persisted", blob)
}

func TestOpenSQLiteValidates(t *testing.T) {
	_, err := OpenSQLite("", "main")
	assert.Error(t, err)
	_, err = OpenSQLite(filepath.Join(t.TempDir(), "x.db"), " ")
	assert.Error(t, err)
}

func TestOpenNativeBackends(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(Options{Path: filepath.Join(dir, "save.json")})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	s, err = Open(Options{Backend: BackendSQLite, Path: filepath.Join(dir, "save.db"), Key: "main"})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.(*SQLiteStore).Close())

	_, err = Open(Options{Backend: BackendBrowser})
	assert.ErrorIs(t, err, ErrUnsupportedBackend)
}
