package renderer

import (
	finanzas "github.com/kindsee/finanzas-desktop"
)

// AccountBalance pairs an account with its projected balance at some date.
type AccountBalance struct {
	Account finanzas.Account
	Balance finanzas.Money
}

// Accounts renders the account overview table. Hidden accounts are skipped
// unless all is set.
func Accounts(balances []AccountBalance, on finanzas.Date, all bool) string {
	r := newRenderer()
	r.Printf("# Accounts on %s\n\n", on)
	r.Printf("| Account | Currency | Balance |\n")
	r.Printf("|:---|:---|---:|\n")
	for _, b := range balances {
		if !b.Account.Visible && !all {
			continue
		}
		r.Printf("| %s | %s | %s |\n", b.Account.Name, b.Account.Currency, b.Balance)
	}
	return r.String()
}

// MonthlyBalances renders the end-of-month balance strip around a pivot date.
func MonthlyBalances(account finanzas.Account, balances []finanzas.MonthBalance) string {
	r := newRenderer()
	r.Printf("# %s by month\n\n", account.Name)
	r.Printf("| Month | End-of-month balance |\n")
	r.Printf("|:---|---:|\n")
	for _, b := range balances {
		r.Printf("| %s | %s |\n", b.Month.Format("January 2006"), b.Balance)
	}
	return r.String()
}

// TopExpenses renders the heaviest-spending report.
func TopExpenses(report []finanzas.ExpenseTotal, months int) string {
	r := newRenderer()
	r.Printf("# Top expenses, last %d months\n\n", months)
	if len(report) == 0 {
		r.Printf("No expenses recorded.\n")
		return r.String()
	}
	r.Printf("| Description | Kind | Total |\n")
	r.Printf("|:---|:---|---:|\n")
	for _, e := range report {
		r.Printf("| %s | %s | %s |\n", e.Description, e.Kind, e.Total)
	}
	return r.String()
}
