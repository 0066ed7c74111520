package database

import (
	"database/sql"
	"strings"

	"holdings/models"
)

// ==================== POSITION OPERATIONS ====================

const positionsTable = "user_positions"

const positionColumns = `id, user_id, stock_id, symbol, stock_name, quantity,
	avg_cost, market_value, profit, profit_percent, notes, position_date`

func scanPosition(row rowScanner) (models.Position, error) {
	var p models.Position
	var notes sql.NullString
	err := row.Scan(
		&p.ID, &p.UserID, &p.StockID, &p.Symbol, &p.StockName, &p.Quantity,
		&p.AvgCost, &p.MarketValue, &p.Profit, &p.ProfitPercent, &notes, &p.PositionDate,
	)
	if err != nil {
		return p, err
	}
	if notes.Valid {
		p.Notes = &notes.String
	}
	return p, nil
}

func queryPositions(q interface {
	Query(query string, args ...any) (*sql.Rows, error)
}, op string, userID int64) ([]models.Position, error) {
	rows, err := q.Query(`
		SELECT `+positionColumns+`
		FROM user_positions
		WHERE user_id = ?
		ORDER BY id ASC
	`, userID)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	// Initialize with empty slice to avoid returning nil
	positions := make([]models.Position, 0)
	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, wrap(op, err)
		}
		positions = append(positions, p)
	}

	return positions, wrap(op, rows.Err())
}

// ListPositionsForUser returns the user's positions in id order.
func (r *Repository) ListPositionsForUser(userID int64) ([]models.Position, error) {
	if err := r.store.EnsureSchema(); err != nil {
		return nil, err
	}

	var positions []models.Position
	err := r.store.WithConnection(func(conn *sql.DB) error {
		var err error
		positions, err = queryPositions(conn, "list positions", userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return positions, nil
}

// GetPosition returns nil, nil when the position does not exist.
func (r *Repository) GetPosition(id int64) (*models.Position, error) {
	if err := r.store.EnsureSchema(); err != nil {
		return nil, err
	}

	var position *models.Position
	err := r.store.WithConnection(func(conn *sql.DB) error {
		p, err := scanPosition(conn.QueryRow("SELECT "+positionColumns+" FROM user_positions WHERE id = ?", id))
		if isNoRows(err) {
			return nil
		}
		if err != nil {
			return wrap("get position", err)
		}
		position = &p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return position, nil
}

// AddPosition inserts a position and returns the owner's refreshed list.
// The insert and the re-read share one transaction. Empty notes are stored as NULL.
func (r *Repository) AddPosition(p models.NewPosition) ([]models.Position, error) {
	if err := r.store.EnsureSchema(); err != nil {
		return nil, err
	}

	columns := []string{
		"user_id", "stock_id", "symbol", "stock_name", "quantity",
		"avg_cost", "market_value", "profit", "profit_percent", "notes",
	}
	var notes sql.NullString
	if p.Notes != nil && *p.Notes != "" {
		notes = sql.NullString{String: *p.Notes, Valid: true}
	}
	args := []any{
		p.UserID, p.StockID, p.Symbol, p.StockName, p.Quantity,
		p.AvgCost, p.MarketValue, p.Profit, p.ProfitPercent, notes,
	}
	if p.PositionDate != nil {
		columns = append(columns, "position_date")
		args = append(args, *p.PositionDate)
	}

	query := "INSERT INTO user_positions (" + strings.Join(columns, ", ") + ") VALUES (?" +
		strings.Repeat(", ?", len(columns)-1) + ")"

	var positions []models.Position
	err := r.store.WithConnection(func(conn *sql.DB) error {
		return withTx(conn, "add position", func(tx *sql.Tx) error {
			if _, err := tx.Exec(query, args...); err != nil {
				return wrap("add position", err)
			}

			var err error
			positions, err = queryPositions(tx, "add position", p.UserID)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return positions, nil
}

// positionUpdateFields lists the editable columns in a fixed order.
func positionUpdateFields(u models.PositionUpdate) []Field {
	return []Field{
		Optional("quantity", u.Quantity),
		Optional("avg_cost", u.AvgCost),
		Optional("market_value", u.MarketValue),
		Optional("profit", u.Profit),
		Optional("profit_percent", u.ProfitPercent),
		Optional("notes", u.Notes),
	}
}

// UpdatePosition writes only the fields present in u. An empty update
// executes nothing. Callers re-read to observe the new state.
func (r *Repository) UpdatePosition(id int64, u models.PositionUpdate) error {
	return r.UpdateFields(positionsTable, "id", id, positionUpdateFields(u))
}

// UpdateFields applies a sparse update to any table keyed by primaryKey.
func (r *Repository) UpdateFields(table, primaryKey string, key any, fields []Field) error {
	query, args, err := BuildSparseUpdate(table, primaryKey, key, fields)
	if err != nil {
		return err
	}
	if query == "" {
		return nil
	}

	if err := r.store.EnsureSchema(); err != nil {
		return err
	}

	return r.store.WithConnection(func(conn *sql.DB) error {
		_, err := conn.Exec(query, args...)
		return wrap("update "+table, err)
	})
}

// DeletePosition removes a position; a missing id is not an error.
func (r *Repository) DeletePosition(id int64) error {
	if err := r.store.EnsureSchema(); err != nil {
		return err
	}

	return r.store.WithConnection(func(conn *sql.DB) error {
		_, err := conn.Exec("DELETE FROM user_positions WHERE id = ?", id)
		return wrap("delete position", err)
	})
}
