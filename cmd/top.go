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

// topCmd holds the flags for the 'top' subcommand.
type topCmd struct {
	account string
	months  int
	limit   int
}

func (*topCmd) Name() string     { return "top" }
func (*topCmd) Synopsis() string { return "report the heaviest expenses of recent months" }
func (*topCmd) Usage() string {
	return `fin top [-a <account>] [-months <n>] [-limit <n>]

  Groups spending by description over the last months and lists the largest
  totals first. Transfers and adjustments are excluded. Without -a the
  report spans all accounts.
`
}

func (c *topCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account name or id. Empty spans all accounts.")
	f.IntVar(&c.months, "months", 6, "Window size in months.")
	f.IntVar(&c.limit, "limit", 15, "Maximum rows to report.")
}

func (c *topCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	repo, err := openRepository()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer repo.Close()

	var accountID int64
	if c.account != "" {
		account, err := resolveAccount(ctx, repo, c.account)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		accountID = account.ID
	}

	projector := finanzas.NewProjector(repo)
	report, err := projector.TopExpenses(ctx, accountID, c.months, c.limit)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.TopExpenses(report, c.months))
	return subcommands.ExitSuccess
}
