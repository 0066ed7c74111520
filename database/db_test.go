package database

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_CreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "dir", "holdings.db")

	store, err := NewStore(dbPath, nil)
	require.NoError(t, err)
	assert.Equal(t, dbPath, store.Path())

	info, err := os.Stat(filepath.Dir(dbPath))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestWithConnection(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()
	store := repo.Store()

	t.Run("Connection is closed after success", func(t *testing.T) {
		var captured *sql.DB
		err := store.WithConnection(func(conn *sql.DB) error {
			captured = conn
			return conn.Ping()
		})
		require.NoError(t, err)
		require.NotNil(t, captured)

		assert.Error(t, captured.Ping(), "connection should be closed after the call")
	})

	t.Run("Operation error is returned unchanged and connection closed", func(t *testing.T) {
		opErr := errors.New("operation failed")
		var captured *sql.DB

		err := store.WithConnection(func(conn *sql.DB) error {
			captured = conn
			return opErr
		})

		assert.Same(t, opErr, err)
		assert.Error(t, captured.Ping())
	})

	t.Run("Connection is closed when the operation panics", func(t *testing.T) {
		var captured *sql.DB

		assert.Panics(t, func() {
			_ = store.WithConnection(func(conn *sql.DB) error {
				captured = conn
				panic("boom")
			})
		})

		require.NotNil(t, captured)
		assert.Error(t, captured.Ping())
	})

	t.Run("Foreign keys are enforced on every connection", func(t *testing.T) {
		var enabled int
		err := store.WithConnection(func(conn *sql.DB) error {
			return conn.QueryRow("PRAGMA foreign_keys").Scan(&enabled)
		})
		require.NoError(t, err)
		assert.Equal(t, 1, enabled)
	})

	t.Run("Unreachable file is a storage error", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "missing", "holdings.db")
		broken := &Store{path: missing, dsn: missing + "?_foreign_keys=on", logger: store.logger}

		err := broken.WithConnection(func(conn *sql.DB) error {
			t.Fatal("operation must not run")
			return nil
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrStorage)
	})
}

func TestNewStore_PathWithURICharacters(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "what?now#50%")
	dbPath := filepath.Join(dir, "holdings.db")

	store, err := NewStore(dbPath, nil)
	require.NoError(t, err)
	require.NoError(t, store.EnsureSchema())

	info, err := os.Stat(dbPath)
	require.NoError(t, err, "database file should be created at the literal path")
	assert.False(t, info.IsDir())

	entries, err := os.ReadDir(filepath.Dir(dir))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no stray file should appear next to the directory")

	var enabled int
	err = store.WithConnection(func(conn *sql.DB) error {
		return conn.QueryRow("PRAGMA foreign_keys").Scan(&enabled)
	})
	require.NoError(t, err)
	assert.Equal(t, 1, enabled, "query parameters must still reach the driver")
}
