//go:build !js

package sqlitemigrate

import (
	"context"
	"database/sql"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func count(t *testing.T, db *sql.DB, query string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(query).Scan(&n))
	return n
}

func TestApplyRecordsMigration(t *testing.T) {
	db := openMemoryDB(t)
	fsys := fstest.MapFS{
		"001_items.sql": {Data: []byte("-- +migrate Up\nCREATE TABLE items(id TEXT PRIMARY KEY);\n-- +migrate Down\nDROP TABLE items;")},
	}

	require.NoError(t, Apply(context.Background(), db, fsys, ""))
	assert.Equal(t, 1, count(t, db, "SELECT COUNT(*) FROM schema_migrations"))
	assert.Equal(t, 0, count(t, db, "SELECT COUNT(*) FROM items"))
}

func TestApplyIsIdempotent(t *testing.T) {
	db := openMemoryDB(t)
	fsys := fstest.MapFS{
		"001_items.sql": {Data: []byte("-- +migrate Up\nCREATE TABLE items(id TEXT PRIMARY KEY);")},
	}

	require.NoError(t, Apply(context.Background(), db, fsys, "."))
	require.NoError(t, Apply(context.Background(), db, fsys, "."))
	assert.Equal(t, 1, count(t, db, "SELECT COUNT(*) FROM schema_migrations"))
}

func TestApplyRunsInNameOrder(t *testing.T) {
	db := openMemoryDB(t)
	fsys := fstest.MapFS{
		"002_seed.sql":  {Data: []byte("-- +migrate Up\nINSERT INTO items(id) VALUES ('a');")},
		"001_items.sql": {Data: []byte("-- +migrate Up\nCREATE TABLE items(id TEXT PRIMARY KEY);")},
		"README.md":     {Data: []byte("not a migration")},
	}

	require.NoError(t, Apply(context.Background(), db, fsys, ""))
	assert.Equal(t, 2, count(t, db, "SELECT COUNT(*) FROM schema_migrations"))
	assert.Equal(t, 1, count(t, db, "SELECT COUNT(*) FROM items"))
}

func TestApplyDoesNotRecordFailedMigration(t *testing.T) {
	db := openMemoryDB(t)
	bad := fstest.MapFS{
		"001_bad.sql": {Data: []byte("-- +migrate Up\nCREAT TABLE things(id INT);")},
	}

	assert.Error(t, Apply(context.Background(), db, bad, ""))
	assert.Equal(t, 0, count(t, db, "SELECT COUNT(*) FROM schema_migrations"))
}

func TestApplyRequiresDB(t *testing.T) {
	assert.Error(t, Apply(context.Background(), nil, fstest.MapFS{}, ""))
}

func TestUpSection(t *testing.T) {
	assert.Equal(t, "\nA\n", UpSection("-- +migrate Up\nA\n-- +migrate Down\nB"))
	assert.Equal(t, "\nA", UpSection("-- +migrate Up\nA"))
	assert.Equal(t, "RAW", UpSection("RAW"))
}
