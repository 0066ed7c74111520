package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrStorage marks connection and statement failures.
	ErrStorage = errors.New("storage error")
	// ErrConstraintViolation marks uniqueness, foreign key and not-null rejections.
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrInvalidField is returned by BuildSparseUpdate for unusable column names.
	ErrInvalidField = errors.New("invalid update field")
)

// Error records the operation that failed along with its kind.
// errors.Is matches the kind, errors.As still reaches the driver error.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// wrap classifies a driver error. sql.ErrNoRows is never passed here:
// lookups turn it into a nil result before reaching this point.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}

	var dbErr *Error
	if errors.As(err, &dbErr) {
		return err
	}

	kind := ErrStorage
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		kind = ErrConstraintViolation
	}

	return &Error{Op: op, Kind: kind, Err: err}
}

// IsConstraintViolation reports whether err was rejected by a table constraint.
func IsConstraintViolation(err error) bool {
	return errors.Is(err, ErrConstraintViolation)
}

// IsUniqueViolation narrows IsConstraintViolation to UNIQUE and PRIMARY KEY conflicts.
func IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

// IsForeignKeyViolation reports whether err references a missing parent row.
func IsForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
