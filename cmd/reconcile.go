package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	finanzas "github.com/kindsee/finanzas-desktop"

	"github.com/google/subcommands"
)

// reconcileCmd holds the flags for the 'reconcile' subcommand.
type reconcileCmd struct {
	account     string
	date        string
	balance     string
	description string
}

func (*reconcileCmd) Name() string     { return "reconcile" }
func (*reconcileCmd) Synopsis() string { return "force the projected balance to match a statement" }
func (*reconcileCmd) Usage() string {
	return `fin reconcile -a <account> -balance <amount> [-d <date>] [-desc <text>]

  Compares the projected balance with the asserted one and records a single
  corrective adjustment for the difference, dated that day. Existing entries
  are never edited. If the balances already match, nothing is written.
`
}

func (c *reconcileCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account name or id (required).")
	f.StringVar(&c.date, "d", finanzas.Today().String(), "Statement date.")
	f.StringVar(&c.balance, "balance", "", "Asserted balance at the date (required).")
	f.StringVar(&c.description, "desc", "", "Description of the correction.")
}

func (c *reconcileCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" || c.balance == "" {
		fmt.Fprintln(os.Stderr, "Error: -a and -balance are required.")
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
	asserted, err := finanzas.ParseMoney(c.balance, account.Currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing balance: %v\n", err)
		return subcommands.ExitUsageError
	}

	reconciler := finanzas.NewReconciler(repo)
	adjustment, err := reconciler.Reconcile(ctx, account.ID, on, asserted, c.description)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if adjustment.ID == 0 {
		fmt.Printf("%q already projects %s on %s, nothing to reconcile\n", account.Name, asserted, on)
		return subcommands.ExitSuccess
	}
	fmt.Printf("Reconciled %q to %s on %s with a %s adjustment\n",
		account.Name, asserted, on, adjustment.Amount.SignedString())
	return subcommands.ExitSuccess
}
