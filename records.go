package finanzas

// Account is a cash account tracked by the ledger.
//
// The opening balance is the balance at the account's opened date; projection
// never mutates it. Opened is the account epoch: no recurring occurrence is
// generated before it. A zero Opened means no epoch.
type Account struct {
	ID             int64
	Name           string
	Currency       string
	OpeningBalance Money
	Opened         Date
	Visible        bool
}

// Transaction is a one-time ledger entry on an account.
//
// Transfer marks inter-account movements; it only affects display and the
// expense reports, never the balance sum.
type Transaction struct {
	ID          int64
	AccountID   int64
	Date        Date
	Description string
	Amount      Money
	Transfer    bool
}

// Adjustment is a correction entry. It sums into the balance exactly like a
// Transaction but represents no real-world cashflow; it is produced by
// Reconciler or entered manually.
type Adjustment struct {
	ID          int64
	AccountID   int64
	Date        Date
	Amount      Money
	Description string
}

// RecurringRule is a fixed expense or income expanded on demand into dated
// occurrences; individual occurrences are never stored.
type RecurringRule struct {
	ID          int64
	AccountID   int64
	Description string
	Amount      Money
	Frequency   Frequency
	Start       Date
	End         Date // zero value means open-ended
	Transfer    bool
}

// RateKind tells whether a loan's nominal rate is fixed for its lifetime or
// renegotiated per period.
type RateKind string

const (
	FixedRate    RateKind = "fixed"
	VariableRate RateKind = "variable"
)

// ParseRateKind parses a string into a RateKind.
func ParseRateKind(s string) (RateKind, error) {
	switch RateKind(s) {
	case FixedRate:
		return FixedRate, nil
	case VariableRate:
		return VariableRate, nil
	}
	return "", errUnknownRateKind(s)
}

// Loan holds the terms of an amortizing loan.
type Loan struct {
	ID            int64
	Name          string
	Rate          RateKind
	Start         Date
	Principal     Money
	TermMonths    int
	PropertyValue Money // optional current value of the financed property
}

// LoanPeriod is a contiguous block (up to twelve months) of a loan's life.
//
// Periods are ordered and contiguous: each period's closing principal is the
// next period's opening principal. AnnualRate is the nominal rate fixed for
// this period's lifetime, in percent.
type LoanPeriod struct {
	ID               int64
	LoanID           int64
	Start            Date
	End              Date
	OpeningPrincipal Money
	ClosingPrincipal Money
	AnnualRate       Rate
	Interest         Money // interest total over the period's months
	Amortized        Money // principal repaid over the period's months
}

// Months returns the number of months the period covers.
func (p LoanPeriod) Months() int { return MonthsBetween(p.Start, p.End) + 1 }

// Payment returns the constant monthly payment implied by the period totals.
func (p LoanPeriod) Payment() Money {
	months := p.Months()
	if months <= 0 {
		return M(0, p.Interest.Currency())
	}
	sum := p.Interest.Add(p.Amortized)
	return Money{value: sum.value.Div(newDecimal(months)).Round(2), cur: sum.cur}
}
