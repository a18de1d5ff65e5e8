package renderer

import (
	finanzas "github.com/kindsee/finanzas-desktop"
)

// Audit renders an account's projected event stream over a range as a
// markdown report, one row per movement with its running balance.
func Audit(account finanzas.Account, from, to finanzas.Date, movements []finanzas.Movement, opening, closing finanzas.Money) string {
	r := newRenderer()
	r.Printf("# Audit: %s\n\n", account.Name)
	r.Printf("Period %s to %s\n\n", from, to)
	r.Printf("Opening balance: **%s**\n\n", opening)

	if len(movements) == 0 {
		r.Printf("No movements in this period.\n\n")
	} else {
		r.Printf("| Date | Kind | Description | Amount | Balance |\n")
		r.Printf("|:---|:---|:---|---:|---:|\n")
		for _, m := range movements {
			r.Printf("| %s | %s | %s | %s | %s |\n", m.Date, kindLabel(m), m.Description, m.Amount.SignedString(), m.Balance)
		}
		r.Printf("\n")

		income, expense := finanzas.Totals(movements)
		r.Printf("Income %s, expenses %s over the period.\n\n", income, expense)
	}

	r.Printf("Closing balance: **%s**\n", closing)
	return r.String()
}

func kindLabel(m finanzas.Movement) string {
	if m.Transfer {
		return "transfer"
	}
	return string(m.Kind)
}
