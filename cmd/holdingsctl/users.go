package main

import (
	"context"
	"flag"

	"holdings/models"

	"github.com/google/subcommands"
)

type initCmd struct{ *env }

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "create the schema and seed rows if needed" }
func (*initCmd) Usage() string {
	return `init

  Creates missing tables and seeds the demo todos and the default user
  when their tables are empty. Safe to run repeatedly.
`
}
func (*initCmd) SetFlags(*flag.FlagSet) {}

func (c *initCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := c.store()
	if err != nil {
		return c.fail(err)
	}
	if err := store.EnsureSchema(); err != nil {
		return c.fail(err)
	}
	return c.print(map[string]string{"database": store.Path(), "status": "ready"})
}

type defaultUserCmd struct{ *env }

func (*defaultUserCmd) Name() string           { return "default-user" }
func (*defaultUserCmd) Synopsis() string       { return "print the default user, creating it if missing" }
func (*defaultUserCmd) Usage() string          { return "default-user\n" }
func (*defaultUserCmd) SetFlags(*flag.FlagSet) {}

func (c *defaultUserCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	users, err := c.users()
	if err != nil {
		return c.fail(err)
	}
	user, err := users.Default()
	if err != nil {
		return c.fail(err)
	}
	return c.print(user)
}

type createUserCmd struct {
	*env
	username string
	email    string
}

func (*createUserCmd) Name() string     { return "create-user" }
func (*createUserCmd) Synopsis() string { return "register a new user" }
func (*createUserCmd) Usage() string {
	return `create-user -username <name> -email <address>

  Usernames and emails are unique across users.
`
}

func (c *createUserCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "username", "", "Unique username (required)")
	f.StringVar(&c.email, "email", "", "Unique email address (required)")
}

func (c *createUserCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	req := models.CreateUserRequest{Username: c.username, Email: c.email}
	if err := c.validate(&req); err != nil {
		return c.usage("%v", err)
	}

	users, err := c.users()
	if err != nil {
		return c.fail(err)
	}
	user, err := users.Create(req.Username, req.Email)
	if err != nil {
		return c.fail(err)
	}
	return c.print(user)
}

type getUserCmd struct {
	*env
	id       int64
	username string
}

func (*getUserCmd) Name() string     { return "get-user" }
func (*getUserCmd) Synopsis() string { return "look a user up by id or username" }
func (*getUserCmd) Usage() string {
	return "get-user (-id <id> | -username <name>)\n"
}

func (c *getUserCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "User id")
	f.StringVar(&c.username, "username", "", "Username")
}

func (c *getUserCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if (c.id == 0) == (c.username == "") {
		return c.usage("exactly one of -id or -username is required")
	}

	users, err := c.users()
	if err != nil {
		return c.fail(err)
	}

	var user *models.User
	if c.id != 0 {
		user, err = users.Get(c.id)
	} else {
		user, err = users.GetByUsername(c.username)
	}
	if err != nil {
		return c.fail(err)
	}
	return c.print(user)
}
