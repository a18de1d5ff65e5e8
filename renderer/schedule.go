package renderer

import (
	finanzas "github.com/kindsee/finanzas-desktop"
)

// Schedule renders a loan's amortization table, one row per annual period.
func Schedule(loan finanzas.Loan, periods []finanzas.LoanPeriod) string {
	r := newRenderer()
	r.Printf("# Loan: %s\n\n", loan.Name)
	r.Printf("%s over %d months from %s, %s rate\n\n", loan.Principal, loan.TermMonths, loan.Start, loan.Rate)

	if len(periods) == 0 {
		r.Printf("No schedule generated yet.\n")
		return r.String()
	}

	r.Printf("| Period | Rate | Payment | Opening | Interest | Amortized | Closing |\n")
	r.Printf("|:---|---:|---:|---:|---:|---:|---:|\n")
	var interest, amortized finanzas.Money
	for _, p := range periods {
		r.Printf("| %s to %s | %s | %s | %s | %s | %s | %s |\n",
			p.Start, p.End, p.AnnualRate, p.Payment(),
			p.OpeningPrincipal, p.Interest, p.Amortized, p.ClosingPrincipal)
		interest = interest.Add(p.Interest)
		amortized = amortized.Add(p.Amortized)
	}
	r.Printf("\n")
	r.Printf("Total interest %s, total amortized %s.\n", interest, amortized)

	last := periods[len(periods)-1]
	if !loan.PropertyValue.IsZero() && loan.PropertyValue.IsPositive() {
		// Outstanding principal against the property's current value.
		ratio := last.ClosingPrincipal.Amount().
			Div(loan.PropertyValue.Amount()).
			Mul(hundred).Round(1)
		r.Printf("Outstanding principal %s is %s%% of the property value %s.\n",
			last.ClosingPrincipal, ratio, loan.PropertyValue)
	}
	return r.String()
}
