package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// busyTimeoutMillis bounds how long a statement waits on another writer's lock.
const busyTimeoutMillis = 5000

// Store owns the location of the SQLite file. It holds no open handle:
// every WithConnection call opens one and closes it before returning.
type Store struct {
	path   string
	dsn    string
	logger *slog.Logger
}

func NewStore(dbPath string, logger *slog.Logger) (*Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	params := url.Values{}
	params.Set("_foreign_keys", "on")
	params.Set("_busy_timeout", fmt.Sprint(busyTimeoutMillis))
	// Transactions take the write lock at BEGIN so read-then-write sequences
	// wait on the busy timeout instead of failing on lock upgrade.
	params.Set("_txlock", "immediate")

	return &Store{
		path:   dbPath,
		dsn:    "file:" + uriPathEscaper.Replace(dbPath) + "?" + params.Encode(),
		logger: logger,
	}, nil
}

// uriPathEscaper escapes the characters SQLite gives meaning to in a file: URI path.
var uriPathEscaper = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

func (s *Store) Path() string {
	return s.path
}

// WithConnection opens a connection, hands it to fn and closes it on every
// exit path, panics included. A close failure is only reported when fn succeeded.
func (s *Store) WithConnection(fn func(conn *sql.DB) error) (err error) {
	conn, err := sql.Open("sqlite3", s.dsn)
	if err != nil {
		return wrap("open", err)
	}
	conn.SetMaxOpenConns(1)

	defer func() {
		if closeErr := conn.Close(); closeErr != nil && err == nil {
			err = wrap("close", closeErr)
		}
	}()

	if err := conn.Ping(); err != nil {
		return wrap("open", err)
	}

	return fn(conn)
}

// withTx runs fn inside a transaction on an already open connection.
func withTx(conn *sql.DB, op string, fn func(tx *sql.Tx) error) error {
	tx, err := conn.Begin()
	if err != nil {
		return wrap(op, err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, wrap(op, rbErr))
		}
		return err
	}

	return wrap(op, tx.Commit())
}
