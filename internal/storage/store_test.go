package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the behavior every backend shares.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()

	_, ok, err := s.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Save(`{"version":1}`))
	blob, ok, err := s.Load()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"version":1}`, blob)

	require.NoError(t, s.Save(`{"version":1,"path":[]}`))
	blob, _, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, `{"version":1,"path":[]}`, blob)

	require.NoError(t, s.Clear())
	_, ok, err = s.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Clear(), "clearing twice is fine")
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "save.json")
	s, err := NewFileStore(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Path())
	exerciseStore(t, s)
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(filepath.Join(dir, "save.json"))
	require.NoError(t, err)
	require.NoError(t, s.Save("one"))
	require.NoError(t, s.Save("two"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "save.json", entries[0].Name())
}

func TestFileStoreRequiresPath(t *testing.T) {
	_, err := NewFileStore("")
	assert.Error(t, err)
}

func TestOpenMemory(t *testing.T) {
	s, err := Open(Options{Backend: " Memory "})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(Options{Backend: "carrier-pigeon"})
	assert.ErrorIs(t, err, ErrUnsupportedBackend)
}

func TestBackendOrDefault(t *testing.T) {
	assert.Equal(t, DefaultBackend, Backend("").OrDefault())
	assert.Equal(t, DefaultBackend, Backend("  ").OrDefault())
	assert.Equal(t, BackendSQLite, Backend(" SQLite").OrDefault())
}
