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

// balanceCmd holds the flags for the 'balance' subcommand.
type balanceCmd struct {
	account string
	date    string
	months  bool
}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "project an account balance at a date" }
func (*balanceCmd) Usage() string {
	return `fin balance -a <account> [-d <date>] [-months]

  Projects the account balance at the given date by replaying its opening
  balance, transactions, adjustments and recurring occurrences. With
  -months, also prints the end-of-month balances around that date.
`
}

func (c *balanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account name or id (required).")
	f.StringVar(&c.date, "d", finanzas.Today().String(), "Date to project at.")
	f.BoolVar(&c.months, "months", false, "Show the monthly balance strip around the date.")
}

func (c *balanceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		fmt.Fprintln(os.Stderr, "Error: -a is required.")
		return subcommands.ExitUsageError
	}
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

	account, err := resolveAccount(ctx, repo, c.account)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	projector := finanzas.NewProjector(repo)
	balance, err := projector.Balance(ctx, account.ID, on)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%s on %s: %s\n", account.Name, on, balance)

	if c.months {
		strip, err := projector.MonthlyBalances(ctx, account.ID, on)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.MonthlyBalances(account, strip))
	}
	return subcommands.ExitSuccess
}
