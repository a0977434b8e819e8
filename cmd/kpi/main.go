package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func register(c *subcommands.Commander) {
	c.Register(&generateCmd{}, "archive")
	c.Register(&periodsCmd{}, "archive")
	c.Register(&reportCmd{}, "archive")
	c.Register(&queryCmd{}, "archive")
	c.Register(&publishCmd{}, "archive")

	c.Register(&serveCmd{}, "server")
}
