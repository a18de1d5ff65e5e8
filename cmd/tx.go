package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	finanzas "github.com/kindsee/finanzas-desktop"

	"github.com/google/subcommands"
)

// txCmd holds the flags for the 'tx' subcommand.
type txCmd struct {
	account     string
	date        string
	amount      string
	description string
	transfer    bool
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "record a one-time transaction" }
func (*txCmd) Usage() string {
	return `fin tx -a <account> -amount <amount> [-d <date>] [-desc <text>] [-transfer]

  Records a one-time entry on an account. Negative amounts are expenses,
  positive ones income.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account name or id (required).")
	f.StringVar(&c.date, "d", finanzas.Today().String(), "Transaction date.")
	f.StringVar(&c.amount, "amount", "", "Signed amount (required).")
	f.StringVar(&c.description, "desc", "", "Description.")
	f.BoolVar(&c.transfer, "transfer", false, "Mark as an inter-account transfer.")
}

func (c *txCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" || c.amount == "" {
		fmt.Fprintln(os.Stderr, "Error: -a and -amount are required.")
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
	amount, err := finanzas.ParseMoney(c.amount, account.Currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
		return subcommands.ExitUsageError
	}

	tx := finanzas.Transaction{
		AccountID:   account.ID,
		Date:        on,
		Description: c.description,
		Amount:      amount,
		Transfer:    c.transfer,
	}
	if err := repo.SaveTransaction(ctx, &tx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Recorded %s on %q at %s\n", tx.Amount.SignedString(), account.Name, tx.Date)
	return subcommands.ExitSuccess
}
