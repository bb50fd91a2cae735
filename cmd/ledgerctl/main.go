// Command ledgerctl inspects party ledgers and produces statements from the
// command line, using the same configuration as the server.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	subcommands.Register(&partiesCmd{}, "ledger")
	subcommands.Register(&ledgerCmd{}, "ledger")
	subcommands.Register(&renderCmd{}, "statements")
	subcommands.Register(&sendCmd{}, "statements")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
