package database

import (
	"database/sql"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func setupTestRepo(t *testing.T) (*Repository, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "holdings-test-*")
	require.NoError(t, err)

	dbPath := filepath.Join(tmpDir, "test.db")
	store, err := NewStore(dbPath, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	err = store.EnsureSchema()
	require.NoError(t, err)

	cleanup := func() {
		os.RemoveAll(tmpDir)
	}

	return NewRepository(store), cleanup
}

func countRows(t *testing.T, store *Store, table string) int {
	t.Helper()

	var count int
	err := store.WithConnection(func(conn *sql.DB) error {
		return conn.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count)
	})
	require.NoError(t, err)
	return count
}

func execSQL(t *testing.T, store *Store, query string, args ...any) {
	t.Helper()

	err := store.WithConnection(func(conn *sql.DB) error {
		_, err := conn.Exec(query, args...)
		return err
	})
	require.NoError(t, err)
}
