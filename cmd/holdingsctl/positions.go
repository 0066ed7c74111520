package main

import (
	"context"
	"flag"

	"holdings/models"

	"github.com/google/subcommands"
)

type listCmd struct {
	*env
	userID int64
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list positions in id order" }
func (*listCmd) Usage() string {
	return `list [-user <id>]

  Lists the default user's positions, or those of the given user.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.userID, "user", 0, "Owner id; defaults to the default user")
}

func (c *listCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.userID != 0 {
		repo, err := c.repository()
		if err != nil {
			return c.fail(err)
		}
		positions, err := repo.ListPositionsForUser(c.userID)
		if err != nil {
			return c.fail(err)
		}
		return c.print(positions)
	}

	svc, err := c.positions()
	if err != nil {
		return c.fail(err)
	}
	positions, err := svc.List()
	if err != nil {
		return c.fail(err)
	}
	return c.print(positions)
}

type addCmd struct {
	*env
	stockID       string
	symbol        string
	stockName     string
	quantity      int64
	avgCost       decimalFlag
	marketValue   decimalFlag
	profit        decimalFlag
	profitPercent decimalFlag
	notes         string
	date          dateFlag
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a position for the default user" }
func (*addCmd) Usage() string {
	return `add -stock-id <id> -symbol <ticker> -name <name> -quantity <n>
    -avg-cost <d> -market-value <d> [-profit <d>] [-profit-percent <d>]
    [-notes <text>] [-date YYYY-MM-DD]

  Prints the default user's positions after the insert.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.stockID, "stock-id", "", "External stock identifier (required)")
	f.StringVar(&c.symbol, "symbol", "", "Ticker symbol, e.g. AAPL (required)")
	f.StringVar(&c.stockName, "name", "", "Display name of the stock (required)")
	f.Int64Var(&c.quantity, "quantity", 0, "Number of shares")
	f.Var(&c.avgCost, "avg-cost", "Average cost per share")
	f.Var(&c.marketValue, "market-value", "Current market value")
	f.Var(&c.profit, "profit", "Profit, may be negative")
	f.Var(&c.profitPercent, "profit-percent", "Profit percentage, may be negative")
	f.StringVar(&c.notes, "notes", "", "Free-form notes")
	f.Var(&c.date, "date", "Position date; defaults to now")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p := models.NewPosition{
		StockID:       c.stockID,
		Symbol:        c.symbol,
		StockName:     c.stockName,
		Quantity:      c.quantity,
		AvgCost:       c.avgCost.value,
		MarketValue:   c.marketValue.value,
		Profit:        c.profit.value,
		ProfitPercent: c.profitPercent.value,
	}
	if isFlagSet(f, "notes") {
		p.Notes = &c.notes
	}
	if c.date.set {
		p.PositionDate = &c.date.value
	}
	if err := c.validate(&p); err != nil {
		return c.usage("%v", err)
	}

	svc, err := c.positions()
	if err != nil {
		return c.fail(err)
	}
	positions, err := svc.Add(p)
	if err != nil {
		return c.fail(err)
	}
	return c.print(positions)
}

type updateCmd struct {
	*env
	id            int64
	quantity      int64
	avgCost       decimalFlag
	marketValue   decimalFlag
	profit        decimalFlag
	profitPercent decimalFlag
	notes         string
}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "change some fields of a position" }
func (*updateCmd) Usage() string {
	return `update -id <id> [-quantity <n>] [-avg-cost <d>] [-market-value <d>]
    [-profit <d>] [-profit-percent <d>] [-notes <text>]

  Only the flags given are written; everything else keeps its value.
  Prints the position as stored afterwards.
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "Position id (required)")
	f.Int64Var(&c.quantity, "quantity", 0, "Number of shares")
	f.Var(&c.avgCost, "avg-cost", "Average cost per share")
	f.Var(&c.marketValue, "market-value", "Current market value")
	f.Var(&c.profit, "profit", "Profit, may be negative")
	f.Var(&c.profitPercent, "profit-percent", "Profit percentage, may be negative")
	f.StringVar(&c.notes, "notes", "", "Free-form notes")
}

func (c *updateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id < 1 {
		return c.usage("-id is required")
	}

	u := models.PositionUpdate{
		AvgCost:       c.avgCost.ptr(),
		MarketValue:   c.marketValue.ptr(),
		Profit:        c.profit.ptr(),
		ProfitPercent: c.profitPercent.ptr(),
	}
	if isFlagSet(f, "quantity") {
		u.Quantity = &c.quantity
	}
	if isFlagSet(f, "notes") {
		u.Notes = &c.notes
	}
	if err := c.validate(&u); err != nil {
		return c.usage("%v", err)
	}

	svc, err := c.positions()
	if err != nil {
		return c.fail(err)
	}
	position, err := svc.Update(c.id, u)
	if err != nil {
		return c.fail(err)
	}
	return c.print(position)
}

type deleteCmd struct {
	*env
	id int64
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a position" }
func (*deleteCmd) Usage() string {
	return `delete -id <id>

  Deleting an id that does not exist is not an error.
  Prints the default user's remaining positions.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "Position id (required)")
}

func (c *deleteCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id < 1 {
		return c.usage("-id is required")
	}

	svc, err := c.positions()
	if err != nil {
		return c.fail(err)
	}
	positions, err := svc.Delete(c.id)
	if err != nil {
		return c.fail(err)
	}
	return c.print(positions)
}

// isFlagSet reports whether name was given on the command line.
func isFlagSet(f *flag.FlagSet, name string) bool {
	found := false
	f.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			found = true
		}
	})
	return found
}
