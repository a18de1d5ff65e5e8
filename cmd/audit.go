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

// auditCmd holds the flags for the 'audit' subcommand.
type auditCmd struct {
	account string
	start   string
	date    string
}

func (*auditCmd) Name() string     { return "audit" }
func (*auditCmd) Synopsis() string { return "list an account's projected movements over a range" }
func (*auditCmd) Usage() string {
	return `fin audit -a <account> [-s <start_date>] [-d <end_date>]

  Replays the account's events inside the range and lists them in order,
  each with its running balance. The range defaults to the current month
  up to today. A reversed range is normalized by swapping its ends.
`
}

func (c *auditCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account name or id (required).")
	f.StringVar(&c.start, "s", finanzas.Today().StartOfMonth().String(), "Range start date.")
	f.StringVar(&c.date, "d", finanzas.Today().String(), "Range end date.")
}

func (c *auditCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		fmt.Fprintln(os.Stderr, "Error: -a is required.")
		return subcommands.ExitUsageError
	}
	from, err := finanzas.ParseDate(c.start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
		return subcommands.ExitUsageError
	}
	to, err := finanzas.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
		return subcommands.ExitUsageError
	}
	if to.Before(from) {
		from, to = to, from
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
	movements, opening, closing, err := projector.ProjectRange(ctx, account.ID, from, to)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.Audit(account, from, to, movements, opening, closing))
	return subcommands.ExitSuccess
}
