package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Position struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	StockID       string          `json:"stock_id"`
	Symbol        string          `json:"symbol"`
	StockName     string          `json:"stock_name"`
	Quantity      int64           `json:"quantity"`
	AvgCost       decimal.Decimal `json:"avg_cost"`
	MarketValue   decimal.Decimal `json:"market_value"`
	Profit        decimal.Decimal `json:"profit"`
	ProfitPercent decimal.Decimal `json:"profit_percent"`
	Notes         *string         `json:"notes"`
	PositionDate  time.Time       `json:"position_date"`
}

// NewPosition carries every field needed to insert a position.
// A nil Notes is stored as NULL; a nil PositionDate lets the store stamp the row.
type NewPosition struct {
	UserID        int64           `json:"user_id" validate:"gte=0"`
	StockID       string          `json:"stock_id" validate:"required,max=64"`
	Symbol        string          `json:"symbol" validate:"required,ticker"`
	StockName     string          `json:"stock_name" validate:"required,max=200"`
	Quantity      int64           `json:"quantity" validate:"gte=0"`
	AvgCost       decimal.Decimal `json:"avg_cost" validate:"gte=0"`
	MarketValue   decimal.Decimal `json:"market_value" validate:"gte=0"`
	Profit        decimal.Decimal `json:"profit"`
	ProfitPercent decimal.Decimal `json:"profit_percent"`
	Notes         *string         `json:"notes,omitempty" validate:"omitempty,max=1000"`
	PositionDate  *time.Time      `json:"position_date,omitempty"`
}

// PositionUpdate is a sparse change set: nil fields are left untouched.
type PositionUpdate struct {
	Quantity      *int64           `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	AvgCost       *decimal.Decimal `json:"avg_cost,omitempty" validate:"omitempty,gte=0"`
	MarketValue   *decimal.Decimal `json:"market_value,omitempty" validate:"omitempty,gte=0"`
	Profit        *decimal.Decimal `json:"profit,omitempty"`
	ProfitPercent *decimal.Decimal `json:"profit_percent,omitempty"`
	Notes         *string          `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// IsEmpty reports whether the update carries no field at all.
func (u PositionUpdate) IsEmpty() bool {
	return u.Quantity == nil && u.AvgCost == nil && u.MarketValue == nil &&
		u.Profit == nil && u.ProfitPercent == nil && u.Notes == nil
}
