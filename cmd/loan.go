package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	finanzas "github.com/kindsee/finanzas-desktop"
	"github.com/kindsee/finanzas-desktop/renderer"
	"github.com/kindsee/finanzas-desktop/store"

	"github.com/google/subcommands"
)

// resolveLoan accepts either a numeric loan id or a loan name.
func resolveLoan(ctx context.Context, repo *store.Repository, s string) (finanzas.Loan, error) {
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return repo.Loan(ctx, id)
	}
	loans, err := repo.Loans(ctx)
	if err != nil {
		return finanzas.Loan{}, err
	}
	for _, loan := range loans {
		if loan.Name == s {
			return loan, nil
		}
	}
	return finanzas.Loan{}, finanzas.ErrLoanNotFound
}

// loansCmd holds the flags for the 'loans' subcommand.
type loansCmd struct{}

func (*loansCmd) Name() string     { return "loans" }
func (*loansCmd) Synopsis() string { return "list loans" }
func (*loansCmd) Usage() string {
	return `fin loans

  Lists all loans with their terms.
`
}

func (*loansCmd) SetFlags(*flag.FlagSet) {}

func (c *loansCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	repo, err := openRepository()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer repo.Close()

	loans, err := repo.Loans(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if len(loans) == 0 {
		fmt.Println("No loans.")
		return subcommands.ExitSuccess
	}
	for _, loan := range loans {
		fmt.Printf("%4d  %-20s %12s over %d months from %s, %s rate\n",
			loan.ID, loan.Name, loan.Principal, loan.TermMonths, loan.Start, loan.Rate)
	}
	return subcommands.ExitSuccess
}

// newLoanCmd holds the flags for the 'new-loan' subcommand.
type newLoanCmd struct {
	name      string
	principal string
	start     string
	months    int
	rate      string
	rateKind  string
	property  string
}

func (*newLoanCmd) Name() string     { return "new-loan" }
func (*newLoanCmd) Synopsis() string { return "create a loan and generate its schedule" }
func (*newLoanCmd) Usage() string {
	return `fin new-loan -name <name> -principal <amount> -months <n> -rate <percent> [-start <date>] [-kind fixed|variable] [-property <amount>]

  Creates an amortizing loan and generates its full schedule in annual
  periods with the French (annuity) method.
`
}

func (c *newLoanCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Loan name (required, unique).")
	f.StringVar(&c.principal, "principal", "", "Borrowed amount (required).")
	f.StringVar(&c.start, "start", finanzas.Today().String(), "First payment date.")
	f.IntVar(&c.months, "months", 0, "Term in months (required).")
	f.StringVar(&c.rate, "rate", "", "Nominal annual rate in percent (required).")
	f.StringVar(&c.rateKind, "kind", string(finanzas.VariableRate), "Rate kind: fixed or variable.")
	f.StringVar(&c.property, "property", "", "Current value of the financed property, if any.")
}

func (c *newLoanCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" || c.principal == "" || c.months <= 0 || c.rate == "" {
		fmt.Fprintln(os.Stderr, "Error: -name, -principal, -months and -rate are required.")
		return subcommands.ExitUsageError
	}
	principal, err := parseMoneyFlag(c.principal)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing principal: %v\n", err)
		return subcommands.ExitUsageError
	}
	start, err := finanzas.ParseDate(c.start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
		return subcommands.ExitUsageError
	}
	rate, err := finanzas.ParseRate(c.rate)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	kind, err := finanzas.ParseRateKind(c.rateKind)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	var property finanzas.Money
	if c.property != "" {
		if property, err = parseMoneyFlag(c.property); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing property value: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	repo, err := openRepository()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer repo.Close()

	loan := finanzas.Loan{
		Name:          c.name,
		Rate:          kind,
		Start:         start,
		Principal:     principal,
		TermMonths:    c.months,
		PropertyValue: property,
	}
	if err := repo.SaveLoan(ctx, &loan); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	scheduler := finanzas.NewScheduler(repo)
	periods, err := scheduler.Generate(ctx, loan, rate)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Created loan %q (id %d) with %d periods\n", loan.Name, loan.ID, len(periods))
	return subcommands.ExitSuccess
}

// scheduleCmd holds the flags for the 'schedule' subcommand.
type scheduleCmd struct {
	loan string
}

func (*scheduleCmd) Name() string     { return "schedule" }
func (*scheduleCmd) Synopsis() string { return "display a loan's amortization table" }
func (*scheduleCmd) Usage() string {
	return `fin schedule -loan <name or id>

  Displays the loan's amortization table, one row per annual period.
`
}

func (c *scheduleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.loan, "loan", "", "Loan name or id (required).")
}

func (c *scheduleCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.loan == "" {
		fmt.Fprintln(os.Stderr, "Error: -loan is required.")
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

	printMarkdown(renderer.Schedule(loan, periods))
	return subcommands.ExitSuccess
}
