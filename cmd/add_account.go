package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	finanzas "github.com/kindsee/finanzas-desktop"

	"github.com/google/subcommands"
)

// addAccountCmd holds the flags for the 'add-account' subcommand.
type addAccountCmd struct {
	name     string
	currency string
	balance  string
	opened   string
	hidden   bool
}

func (*addAccountCmd) Name() string     { return "add-account" }
func (*addAccountCmd) Synopsis() string { return "create a new cash account" }
func (*addAccountCmd) Usage() string {
	return `fin add-account -name <name> [-balance <amount>] [-opened <date>] [-currency <code>] [-hidden]

  Creates an account. The opening balance is the balance at the opened date;
  projection starts from there and never generates recurring occurrences
  before it.
`
}

func (c *addAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Account name (required, unique).")
	f.StringVar(&c.currency, "currency", "", "Account currency. Defaults to the -currency app flag.")
	f.StringVar(&c.balance, "balance", "0", "Opening balance.")
	f.StringVar(&c.opened, "opened", "", "Account epoch date. Empty means no epoch.")
	f.BoolVar(&c.hidden, "hidden", false, "Hide the account from the default overview.")
}

func (c *addAccountCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		fmt.Fprintln(os.Stderr, "Error: -name is required.")
		return subcommands.ExitUsageError
	}
	currency := c.currency
	if currency == "" {
		currency = *defaultCurrency
	}
	balance, err := finanzas.ParseMoney(c.balance, currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing balance: %v\n", err)
		return subcommands.ExitUsageError
	}
	var opened finanzas.Date
	if c.opened != "" {
		if opened, err = finanzas.ParseDate(c.opened); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing opened date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	repo, err := openRepository()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer repo.Close()

	account := finanzas.Account{
		Name:           c.name,
		Currency:       currency,
		OpeningBalance: balance,
		Opened:         opened,
		Visible:        !c.hidden,
	}
	if err := repo.SaveAccount(ctx, &account); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Created account %q (id %d) with opening balance %s\n", account.Name, account.ID, account.OpeningBalance)
	return subcommands.ExitSuccess
}
