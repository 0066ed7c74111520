package database

import (
	"fmt"
	"regexp"
	"strings"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Field is one column of a sparse update. Present distinguishes an omitted
// field from one deliberately set to nil.
type Field struct {
	Name    string
	Value   any
	Present bool
}

func Set(name string, value any) Field {
	return Field{Name: name, Value: value, Present: true}
}

func Unset(name string) Field {
	return Field{Name: name}
}

// Optional maps a nil pointer to an absent field and dereferences the rest.
func Optional[T any](name string, value *T) Field {
	if value == nil {
		return Unset(name)
	}
	return Set(name, *value)
}

// BuildSparseUpdate renders an UPDATE touching only the present fields, in the
// order given, followed by the key. Values are returned as bind parameters.
// When nothing is present the statement is empty and must not be executed.
func BuildSparseUpdate(table, primaryKey string, key any, fields []Field) (string, []any, error) {
	if !identifierPattern.MatchString(table) {
		return "", nil, fmt.Errorf("%w: table %q", ErrInvalidField, table)
	}
	if !identifierPattern.MatchString(primaryKey) {
		return "", nil, fmt.Errorf("%w: key %q", ErrInvalidField, primaryKey)
	}

	assignments := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)
	seen := make(map[string]bool, len(fields))

	for _, f := range fields {
		if !identifierPattern.MatchString(f.Name) {
			return "", nil, fmt.Errorf("%w: column %q", ErrInvalidField, f.Name)
		}
		if seen[f.Name] {
			return "", nil, fmt.Errorf("%w: column %q listed twice", ErrInvalidField, f.Name)
		}
		seen[f.Name] = true

		if !f.Present {
			continue
		}
		assignments = append(assignments, quoteIdent(f.Name)+" = ?")
		args = append(args, f.Value)
	}

	if len(assignments) == 0 {
		return "", nil, nil
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?",
		quoteIdent(table), strings.Join(assignments, ", "), quoteIdent(primaryKey))
	args = append(args, key)

	return query, args, nil
}

func quoteIdent(name string) string {
	return `"` + name + `"`
}
