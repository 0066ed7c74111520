package database

import (
	"database/sql"
	"fmt"

	"holdings/models"
)

var schemaQueries = []string{
	// Legacy demo table
	`CREATE TABLE IF NOT EXISTS todos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL
	)`,

	// Positions table
	`CREATE TABLE IF NOT EXISTS user_positions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		stock_id TEXT NOT NULL,
		symbol TEXT NOT NULL,
		stock_name TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		avg_cost REAL NOT NULL,
		market_value REAL NOT NULL,
		profit REAL NOT NULL,
		profit_percent REAL NOT NULL,
		notes TEXT,
		position_date DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	)`,

	// Users table
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE INDEX IF NOT EXISTS idx_user_positions_user ON user_positions(user_id)`,
}

// SeedTodos are inserted whenever the todos table is empty.
var SeedTodos = []string{"Get groceries", "Buy a new phone"}

// EnsureSchema creates missing tables and seeds empty ones. Seeding is driven
// by row counts, so a table emptied from outside is seeded again on the next call.
// The whole bootstrap is one write transaction: concurrent first callers wait on
// the lock and then see the rows the winner committed.
func (s *Store) EnsureSchema() error {
	return s.WithConnection(func(conn *sql.DB) error {
		return withTx(conn, "migrate", func(tx *sql.Tx) error {
			return s.bootstrap(tx)
		})
	})
}

func (s *Store) bootstrap(tx *sql.Tx) error {
	for _, query := range schemaQueries {
		if _, err := tx.Exec(query); err != nil {
			return wrap("migrate", err)
		}
	}

	seeded, err := seedIfEmpty(tx, "todos", func() error {
		for _, name := range SeedTodos {
			if _, err := tx.Exec("INSERT INTO todos (name) VALUES (?)", name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if seeded {
		s.logger.Debug("seeded table", "table", "todos", "rows", len(SeedTodos))
	}

	seeded, err = seedIfEmpty(tx, "users", func() error {
		_, err := tx.Exec("INSERT INTO users (username, email) VALUES (?, ?)",
			models.DefaultUsername, models.DefaultEmail)
		return err
	})
	if err != nil {
		return err
	}
	if seeded {
		s.logger.Debug("seeded table", "table", "users", "username", models.DefaultUsername)
	}

	return nil
}

// seedIfEmpty runs insert when table has no rows. table is a package constant,
// never caller input.
func seedIfEmpty(tx *sql.Tx, table string, insert func() error) (bool, error) {
	var count int
	if err := tx.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count); err != nil {
		return false, wrap("seed "+table, err)
	}
	if count > 0 {
		return false, nil
	}

	if err := insert(); err != nil {
		return false, wrap("seed "+table, err)
	}
	return true, nil
}
