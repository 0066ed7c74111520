// Command holdingsctl manages the holdings database from the shell.
package main

import (
	"context"
	"flag"
	"os"
	"path"
)

func main() {
	commander := newCommander(flag.CommandLine, path.Base(os.Args[0]), os.Stdout, os.Stderr)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
