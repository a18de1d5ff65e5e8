package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	finanzas "github.com/kindsee/finanzas-desktop"
	"github.com/kindsee/finanzas-desktop/renderer"

	"github.com/google/subcommands"
)

// accountsCmd holds the flags for the 'accounts' subcommand.
type accountsCmd struct {
	date string
	all  bool
}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list accounts with their projected balances" }
func (*accountsCmd) Usage() string {
	return `fin accounts [-d <date>] [-all]

  Lists accounts with their balance projected at the given date.
  Hidden accounts are skipped unless -all is set.
`
}

func (c *accountsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", finanzas.Today().String(), "Date to project balances at.")
	f.BoolVar(&c.all, "all", false, "Include hidden accounts.")
}

func (c *accountsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := finanzas.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	repo, err := openRepository()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer repo.Close()

	accounts, err := repo.Accounts(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	projector := finanzas.NewProjector(repo)
	balances := make([]renderer.AccountBalance, 0, len(accounts))
	for _, account := range accounts {
		balance, err := projector.Balance(ctx, account.ID, on)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error projecting account %q: %v\n", account.Name, err)
			return subcommands.ExitFailure
		}
		balances = append(balances, renderer.AccountBalance{Account: account, Balance: balance})
	}

	printMarkdown(renderer.Accounts(balances, on, c.all))
	return subcommands.ExitSuccess
}
