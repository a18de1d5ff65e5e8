package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	finanzas "github.com/kindsee/finanzas-desktop"

	"github.com/google/subcommands"
)

// transferCmd holds the flags for the 'transfer' subcommand.
type transferCmd struct {
	from        string
	to          string
	date        string
	amount      string
	description string
}

func (*transferCmd) Name() string     { return "transfer" }
func (*transferCmd) Synopsis() string { return "move money between two accounts" }
func (*transferCmd) Usage() string {
	return `fin transfer -from <account> -to <account> -amount <amount> [-d <date>] [-desc <text>]

  Records a matched pair of transfer entries: a debit on the source account
  and a credit on the destination. Transfers are excluded from the expense
  reports.
`
}

func (c *transferCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Source account name or id (required).")
	f.StringVar(&c.to, "to", "", "Destination account name or id (required).")
	f.StringVar(&c.date, "d", finanzas.Today().String(), "Transfer date.")
	f.StringVar(&c.amount, "amount", "", "Positive amount to move (required).")
	f.StringVar(&c.description, "desc", "", "Description.")
}

func (c *transferCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.from == "" || c.to == "" || c.amount == "" {
		fmt.Fprintln(os.Stderr, "Error: -from, -to and -amount are required.")
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

	source, err := resolveAccount(ctx, repo, c.from)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	destination, err := resolveAccount(ctx, repo, c.to)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	amount, err := finanzas.ParseMoney(c.amount, source.Currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
		return subcommands.ExitUsageError
	}
	if !amount.IsPositive() {
		fmt.Fprintln(os.Stderr, "Error: transfer amount must be positive.")
		return subcommands.ExitUsageError
	}

	description := c.description
	if description == "" {
		description = fmt.Sprintf("Transfer %s to %s", source.Name, destination.Name)
	}

	debit := finanzas.Transaction{
		AccountID:   source.ID,
		Date:        on,
		Description: description,
		Amount:      amount.Neg(),
		Transfer:    true,
	}
	if err := repo.SaveTransaction(ctx, &debit); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	credit := finanzas.Transaction{
		AccountID:   destination.ID,
		Date:        on,
		Description: description,
		Amount:      finanzas.M(amount.Amount(), destination.Currency),
		Transfer:    true,
	}
	if err := repo.SaveTransaction(ctx, &credit); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Moved %s from %q to %q on %s\n", amount, source.Name, destination.Name, on)
	return subcommands.ExitSuccess
}
