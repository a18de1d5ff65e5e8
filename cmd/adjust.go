package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	finanzas "github.com/kindsee/finanzas-desktop"

	"github.com/google/subcommands"
)

// adjustCmd holds the flags for the 'adjust' subcommand.
type adjustCmd struct {
	account     string
	date        string
	amount      string
	description string
}

func (*adjustCmd) Name() string     { return "adjust" }
func (*adjustCmd) Synopsis() string { return "record a manual balance correction" }
func (*adjustCmd) Usage() string {
	return `fin adjust -a <account> -amount <amount> [-d <date>] [-desc <text>]

  Records a correction entry. It sums into the balance like a transaction
  but represents no real cashflow. To correct against a known bank balance
  prefer 'fin reconcile', which computes the delta for you.
`
}

func (c *adjustCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account name or id (required).")
	f.StringVar(&c.date, "d", finanzas.Today().String(), "Adjustment date.")
	f.StringVar(&c.amount, "amount", "", "Signed correction amount (required).")
	f.StringVar(&c.description, "desc", "Adjustment", "Description.")
}

func (c *adjustCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	adjustment := finanzas.Adjustment{
		AccountID:   account.ID,
		Date:        on,
		Amount:      amount,
		Description: c.description,
	}
	if err := repo.SaveAdjustment(ctx, &adjustment); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Adjusted %q by %s on %s\n", account.Name, adjustment.Amount.SignedString(), adjustment.Date)
	return subcommands.ExitSuccess
}
