package finanzas

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	decZero = decimal.Zero
	decOne  = decimal.NewFromInt(1)
)

// Schedule generates the full amortization table for a loan at the given
// nominal annual rate.
//
// Periods are annual blocks: each covers up to twelve months, simulated month
// by month with the French (annuity) method. The monthly payment is computed
// over the remaining total term, not the current block, so it stays constant
// across block boundaries as long as the rate does. All cash figures are
// rounded to two decimals half-up; principal never goes below zero.
func Schedule(loan Loan, annualRate Rate) []LoanPeriod {
	return scheduleFrom(loan.ID, loan.Principal, loan.Start, loan.TermMonths, annualRate)
}

// RegenerateFrom rebuilds the schedule after an edited period, treating its
// closing principal and stored rate as ground truth. Only the suffix is
// returned: periods at or before the edited one are never touched.
func RegenerateFrom(loan Loan, edited LoanPeriod) []LoanPeriod {
	consumed := MonthsBetween(loan.Start, edited.End) + 1
	remaining := loan.TermMonths - consumed
	return scheduleFrom(loan.ID, edited.ClosingPrincipal, edited.End.Add(1), remaining, edited.AnnualRate)
}

func scheduleFrom(loanID int64, principal Money, start Date, months int, annualRate Rate) []LoanPeriod {
	currency := principal.Currency()
	capital := principal.Amount()
	monthly := annualRate.Monthly()

	var periods []LoanPeriod
	remaining := months
	consumed := 0
	for remaining > 0 {
		block := remaining
		if block > 12 {
			block = 12
		}
		periodStart := start.AddMonths(consumed)
		periodEnd := periodStart.AddMonths(block).Add(-1)

		payment := annuityPayment(capital, monthly, remaining)

		opening := capital
		interestTotal := decZero
		amortizedTotal := decZero
		for range block {
			interest := roundCents(capital.Mul(monthly))
			amortized := roundCents(payment.Sub(interest))
			if amortized.IsNegative() {
				amortized = decZero
			}
			interestTotal = interestTotal.Add(interest)
			amortizedTotal = amortizedTotal.Add(amortized)
			capital = capital.Sub(amortized)
			if capital.IsNegative() {
				capital = decZero
			}
			remaining--
		}

		periods = append(periods, LoanPeriod{
			LoanID:           loanID,
			Start:            periodStart,
			End:              periodEnd,
			OpeningPrincipal: M(opening, currency),
			ClosingPrincipal: M(capital, currency),
			AnnualRate:       annualRate,
			Interest:         M(interestTotal, currency),
			Amortized:        M(amortizedTotal, currency),
		})
		consumed += block
	}
	return periods
}

// annuityPayment computes the constant monthly payment that amortizes the
// capital over the remaining months at the given monthly rate, rounded to
// two decimals half-up. A zero rate degrades to straight division.
func annuityPayment(capital, monthlyRate decimal.Decimal, remainingMonths int) decimal.Decimal {
	if remainingMonths <= 0 {
		return decZero
	}
	n := decimal.NewFromInt(int64(remainingMonths))
	if monthlyRate.IsZero() {
		return roundCents(capital.Div(n))
	}
	// P*i/(1-(1+i)^-n) rearranged to keep the power integral.
	compound := decOne.Add(monthlyRate).Pow(n)
	denominator := compound.Sub(decOne)
	if denominator.IsZero() {
		return roundCents(capital.Div(n))
	}
	return roundCents(capital.Mul(monthlyRate).Mul(compound).Div(denominator))
}

// roundCents rounds to two decimal places, half away from zero.
func roundCents(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// Scheduler persists amortization schedules through the store.
type Scheduler struct {
	store Store
}

// NewScheduler returns a scheduler writing through the given store.
func NewScheduler(store Store) *Scheduler {
	return &Scheduler{store: store}
}

// Generate builds the full schedule for the loan and persists it. Any periods
// previously stored for the loan are replaced.
func (s *Scheduler) Generate(ctx context.Context, loan Loan, annualRate Rate) ([]LoanPeriod, error) {
	periods := Schedule(loan, annualRate)
	// Replace by deleting everything after the day before the loan starts.
	if err := s.store.DeleteLoanPeriodsAfter(ctx, loan.ID, loan.Start.Add(-1)); err != nil {
		return nil, fmt.Errorf("clearing schedule of loan %d: %w", loan.ID, err)
	}
	if err := s.store.SaveLoanPeriods(ctx, periods); err != nil {
		return nil, fmt.Errorf("saving schedule of loan %d: %w", loan.ID, err)
	}
	return periods, nil
}

// RegenerateFrom rebuilds and persists every period after the edited one,
// leaving the edited period and its predecessors untouched. The new suffix is
// built first and swapped in only then, so a failed build changes nothing.
func (s *Scheduler) RegenerateFrom(ctx context.Context, loanID int64, edited LoanPeriod) ([]LoanPeriod, error) {
	loan, err := s.store.Loan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	suffix := RegenerateFrom(loan, edited)
	if err := s.store.DeleteLoanPeriodsAfter(ctx, loanID, edited.Start); err != nil {
		return nil, fmt.Errorf("deleting periods after %s of loan %d: %w", edited.Start, loanID, err)
	}
	if err := s.store.SaveLoanPeriods(ctx, suffix); err != nil {
		return nil, fmt.Errorf("saving regenerated periods of loan %d: %w", loanID, err)
	}
	return suffix, nil
}
