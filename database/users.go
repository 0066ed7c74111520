package database

import (
	"database/sql"

	"holdings/models"
)

// ==================== USER OPERATIONS ====================

const userColumns = `id, username, email, created_at`

func scanUser(row rowScanner) (*models.User, error) {
	var user models.User
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.CreatedAt); err != nil {
		return nil, err
	}
	return &user, nil
}

// queryUser returns nil, nil when no row matches.
func queryUser(q interface {
	QueryRow(query string, args ...any) *sql.Row
}, op, where string, arg any) (*models.User, error) {
	user, err := scanUser(q.QueryRow("SELECT "+userColumns+" FROM users WHERE "+where+" = ?", arg))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(op, err)
	}
	return user, nil
}

// CreateUser inserts a user and returns the stored row.
// Duplicate usernames or emails fail with ErrConstraintViolation.
func (r *Repository) CreateUser(username, email string) (*models.User, error) {
	if err := r.store.EnsureSchema(); err != nil {
		return nil, err
	}

	var user *models.User
	err := r.store.WithConnection(func(conn *sql.DB) error {
		return withTx(conn, "create user", func(tx *sql.Tx) error {
			var err error
			user, err = insertUser(tx, username, email)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func insertUser(tx *sql.Tx, username, email string) (*models.User, error) {
	result, err := tx.Exec("INSERT INTO users (username, email) VALUES (?, ?)", username, email)
	if err != nil {
		return nil, wrap("create user", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, wrap("create user", err)
	}

	return scanUserStrict(tx, id)
}

// scanUserStrict re-reads a row that was just written; absence is a storage fault.
func scanUserStrict(tx *sql.Tx, id int64) (*models.User, error) {
	user, err := scanUser(tx.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", id))
	if err != nil {
		return nil, wrap("create user", err)
	}
	return user, nil
}

// GetUserByID returns nil, nil when the user does not exist.
func (r *Repository) GetUserByID(id int64) (*models.User, error) {
	if err := r.store.EnsureSchema(); err != nil {
		return nil, err
	}

	var user *models.User
	err := r.store.WithConnection(func(conn *sql.DB) error {
		var err error
		user, err = queryUser(conn, "get user", "id", id)
		return err
	})
	return user, err
}

// GetUserByUsername returns nil, nil when the user does not exist.
func (r *Repository) GetUserByUsername(username string) (*models.User, error) {
	if err := r.store.EnsureSchema(); err != nil {
		return nil, err
	}

	var user *models.User
	err := r.store.WithConnection(func(conn *sql.DB) error {
		var err error
		user, err = queryUser(conn, "get user", "username", username)
		return err
	})
	return user, err
}

// EnsureDefaultUser returns the default user, creating it when missing.
// A concurrent creator may win the insert; the loser's constraint violation
// is answered with a second lookup.
func (r *Repository) EnsureDefaultUser() (*models.User, error) {
	if err := r.store.EnsureSchema(); err != nil {
		return nil, err
	}

	var user *models.User
	err := r.store.WithConnection(func(conn *sql.DB) error {
		var err error
		user, err = queryUser(conn, "default user", "username", models.DefaultUsername)
		if err != nil || user != nil {
			return err
		}

		err = withTx(conn, "default user", func(tx *sql.Tx) error {
			var err error
			user, err = insertUser(tx, models.DefaultUsername, models.DefaultEmail)
			return err
		})
		if !IsConstraintViolation(err) {
			return err
		}

		// The email may be taken by another username; then there is nothing to read back.
		r.store.logger.Debug("default user insert rejected, reading it back", "error", err)
		insertErr := err
		user, err = queryUser(conn, "default user", "username", models.DefaultUsername)
		if err == nil && user == nil {
			return insertErr
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
