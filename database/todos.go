package database

import (
	"database/sql"

	"holdings/models"
)

// ListTodos returns the rows of the legacy demo table in id order.
func (r *Repository) ListTodos() ([]models.Todo, error) {
	if err := r.store.EnsureSchema(); err != nil {
		return nil, err
	}

	todos := make([]models.Todo, 0)
	err := r.store.WithConnection(func(conn *sql.DB) error {
		rows, err := conn.Query("SELECT id, name FROM todos ORDER BY id")
		if err != nil {
			return wrap("list todos", err)
		}
		defer rows.Close()

		for rows.Next() {
			var todo models.Todo
			if err := rows.Scan(&todo.ID, &todo.Name); err != nil {
				return wrap("list todos", err)
			}
			todos = append(todos, todo)
		}
		return wrap("list todos", rows.Err())
	})
	if err != nil {
		return nil, err
	}
	return todos, nil
}
