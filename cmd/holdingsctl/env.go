package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"time"

	"holdings/config"
	"holdings/database"
	"holdings/services"
	"holdings/validator"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// env is shared by every command: the database location and the output streams.
type env struct {
	dbPath string
	out    io.Writer
	errOut io.Writer
	logger *slog.Logger
}

func newCommander(fs *flag.FlagSet, name string, out, errOut io.Writer) *subcommands.Commander {
	e := &env{
		out:    out,
		errOut: errOut,
		logger: slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: slog.LevelWarn})),
	}
	fs.StringVar(&e.dbPath, "db", config.GetEnv(config.EnvPrefix+"DB_PATH", "./data/holdings.db"), "Path to the SQLite database file")

	c := subcommands.NewCommander(fs, name)
	c.Output = out
	c.Error = errOut

	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")

	c.Register(&initCmd{env: e}, "database")

	c.Register(&defaultUserCmd{env: e}, "users")
	c.Register(&createUserCmd{env: e}, "users")
	c.Register(&getUserCmd{env: e}, "users")

	c.Register(&listCmd{env: e}, "positions")
	c.Register(&addCmd{env: e}, "positions")
	c.Register(&updateCmd{env: e}, "positions")
	c.Register(&deleteCmd{env: e}, "positions")

	return c
}

func (e *env) store() (*database.Store, error) {
	return database.NewStore(e.dbPath, e.logger)
}

func (e *env) repository() (*database.Repository, error) {
	store, err := e.store()
	if err != nil {
		return nil, err
	}
	return database.NewRepository(store), nil
}

func (e *env) positions() (*services.PositionService, error) {
	repo, err := e.repository()
	if err != nil {
		return nil, err
	}
	return services.NewPositionService(repo), nil
}

func (e *env) users() (*services.UserService, error) {
	repo, err := e.repository()
	if err != nil {
		return nil, err
	}
	return services.NewUserService(repo), nil
}

func (e *env) validate(v any) error {
	return validator.New().Validate(v)
}

// print writes v as indented JSON.
func (e *env) print(v any) subcommands.ExitStatus {
	enc := json.NewEncoder(e.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return e.fail(err)
	}
	return subcommands.ExitSuccess
}

func (e *env) fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(e.errOut, "Error: %v\n", err)
	return subcommands.ExitFailure
}

func (e *env) usage(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(e.errOut, "Error: "+format+"\n", args...)
	return subcommands.ExitUsageError
}

// decimalFlag is a flag.Value that remembers whether it was given.
type decimalFlag struct {
	value decimal.Decimal
	set   bool
}

func (d *decimalFlag) String() string { return d.value.String() }

func (d *decimalFlag) Set(s string) error {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return err
	}
	d.value, d.set = v, true
	return nil
}

func (d *decimalFlag) ptr() *decimal.Decimal {
	if !d.set {
		return nil
	}
	return &d.value
}

// dateFlag accepts YYYY-MM-DD or RFC 3339.
type dateFlag struct {
	value time.Time
	set   bool
}

func (d *dateFlag) String() string {
	if !d.set {
		return ""
	}
	return d.value.Format(time.DateOnly)
}

func (d *dateFlag) Set(s string) error {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
	}
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	d.value, d.set = t, true
	return nil
}
