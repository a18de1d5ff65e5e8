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

// recalcCmd holds the flags for the 'recalc' subcommand.
type recalcCmd struct {
	loan    string
	period  string
	closing string
	rate    string
}

func (*recalcCmd) Name() string     { return "recalc" }
func (*recalcCmd) Synopsis() string { return "correct a period and regenerate the schedule after it" }
func (*recalcCmd) Usage() string {
	return `fin recalc -loan <name or id> -period <start_date> [-closing <amount>] [-rate <percent>]

  Overrides a period's closing principal and rate with the figures from the
  bank's annual statement, then rebuilds every later period from those. The
  edited period and its predecessors are never touched by the rebuild.
`
}

func (c *recalcCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.loan, "loan", "", "Loan name or id (required).")
	f.StringVar(&c.period, "period", "", "Start date of the period to correct (required).")
	f.StringVar(&c.closing, "closing", "", "Settled closing principal. Empty keeps the stored value.")
	f.StringVar(&c.rate, "rate", "", "New annual rate in percent. Empty keeps the stored rate.")
}

func (c *recalcCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.loan == "" || c.period == "" {
		fmt.Fprintln(os.Stderr, "Error: -loan and -period are required.")
		return subcommands.ExitUsageError
	}
	start, err := finanzas.ParseDate(c.period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing period date: %v\n", err)
		return subcommands.ExitUsageError
	}

	repo, err := openRepository()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer repo.Close()

	loan, err := resolveLoan(ctx, repo, c.loan)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	periods, err := repo.LoanPeriods(ctx, loan.ID)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var edited *finanzas.LoanPeriod
	for i := range periods {
		if periods[i].Start == start {
			edited = &periods[i]
			break
		}
	}
	if edited == nil {
		fmt.Fprintf(os.Stderr, "Error: loan %q has no period starting %s\n", loan.Name, start)
		return subcommands.ExitFailure
	}

	if c.closing != "" {
		closing, err := finanzas.ParseMoney(c.closing, edited.ClosingPrincipal.Currency())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing closing principal: %v\n", err)
			return subcommands.ExitUsageError
		}
		edited.ClosingPrincipal = closing
	}
	if c.rate != "" {
		rate, err := finanzas.ParseRate(c.rate)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		edited.AnnualRate = rate
	}

	if err := repo.UpdateLoanPeriod(ctx, *edited); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	scheduler := finanzas.NewScheduler(repo)
	if _, err := scheduler.RegenerateFrom(ctx, loan.ID, *edited); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	periods, err = repo.LoanPeriods(ctx, loan.ID)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.Schedule(loan, periods))
	return subcommands.ExitSuccess
}
