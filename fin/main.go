package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/kindsee/finanzas-desktop/cmd"

	"github.com/google/subcommands"
)

func main() {
	// Shell completion: prints predictions and exits when invoked by the shell.
	cmd.Completion().Complete(path.Base(os.Args[0]))

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	cmd.Setup()
	os.Exit(int(commander.Execute(context.Background())))
}
