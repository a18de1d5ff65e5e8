package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	finanzas "github.com/kindsee/finanzas-desktop"
	"github.com/kindsee/finanzas-desktop/store"

	"github.com/google/subcommands"
)

// recurringCmd holds the flags for the 'recurring' subcommand.
type recurringCmd struct {
	account     string
	description string
	amount      string
	frequency   string
	start       string
	end         string
	transfer    bool
	list        bool
}

func (*recurringCmd) Name() string     { return "recurring" }
func (*recurringCmd) Synopsis() string { return "add or list recurring rules" }
func (*recurringCmd) Usage() string {
	return `fin recurring -a <account> -amount <amount> -freq <frequency> [-start <date>] [-end <date>] [-desc <text>] [-transfer]
fin recurring -a <account> -list

  Adds a recurring rule to an account, or lists the rules it holds.
  Frequencies: weekly, monthly, quarterly, semiannual, annual. Occurrences
  are expanded on demand during projection, never stored.
`
}

func (c *recurringCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account name or id (required).")
	f.StringVar(&c.description, "desc", "", "Description.")
	f.StringVar(&c.amount, "amount", "", "Signed amount per occurrence.")
	f.StringVar(&c.frequency, "freq", "monthly", "Occurrence frequency.")
	f.StringVar(&c.start, "start", finanzas.Today().String(), "First occurrence date.")
	f.StringVar(&c.end, "end", "", "Last effective date. Empty means open-ended.")
	f.BoolVar(&c.transfer, "transfer", false, "Mark occurrences as inter-account transfers.")
	f.BoolVar(&c.list, "list", false, "List the account's rules instead of adding one.")
}

func (c *recurringCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		fmt.Fprintln(os.Stderr, "Error: -a is required.")
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

	if c.list {
		return c.listRules(ctx, repo, account)
	}

	if c.amount == "" {
		fmt.Fprintln(os.Stderr, "Error: -amount is required.")
		return subcommands.ExitUsageError
	}
	amount, err := finanzas.ParseMoney(c.amount, account.Currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
		return subcommands.ExitUsageError
	}
	frequency, err := finanzas.ParseFrequency(c.frequency)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	start, err := finanzas.ParseDate(c.start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
		return subcommands.ExitUsageError
	}
	var end finanzas.Date
	if c.end != "" {
		if end, err = finanzas.ParseDate(c.end); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	rule := finanzas.RecurringRule{
		AccountID:   account.ID,
		Description: c.description,
		Amount:      amount,
		Frequency:   frequency,
		Start:       start,
		End:         end,
		Transfer:    c.transfer,
	}
	if err := repo.SaveRecurringRule(ctx, &rule); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Added %s rule %s on %q starting %s\n", rule.Frequency, rule.Amount.SignedString(), account.Name, rule.Start)
	return subcommands.ExitSuccess
}

func (c *recurringCmd) listRules(ctx context.Context, repo *store.Repository, account finanzas.Account) subcommands.ExitStatus {
	rules, err := repo.RecurringRules(ctx, account.ID, finanzas.Date{}, finanzas.Date{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if len(rules) == 0 {
		fmt.Printf("No recurring rules on %q.\n", account.Name)
		return subcommands.ExitSuccess
	}
	for _, rule := range rules {
		end := "open-ended"
		if !rule.End.IsZero() {
			end = "until " + rule.End.String()
		}
		fmt.Printf("%4d  %-10s %12s  %-20s from %s, %s\n",
			rule.ID, rule.Frequency, rule.Amount.SignedString(), rule.Description, rule.Start, end)
	}
	return subcommands.ExitSuccess
}
