package finanzas

import "context"

// Store is the storage collaborator the core reads from and writes to.
//
// Range arguments are inclusive; a zero Date leaves that side of the range
// open. Implementations return empty slices, never errors, for "no data".
type Store interface {
	// Account returns the account by id, or ErrAccountNotFound.
	Account(ctx context.Context, id int64) (Account, error)
	// Accounts lists all accounts, hidden ones included.
	Accounts(ctx context.Context) ([]Account, error)

	// Transactions lists one-time entries of an account with from <= date <= to.
	Transactions(ctx context.Context, accountID int64, from, to Date) ([]Transaction, error)
	// Adjustments lists correction entries of an account with from <= date <= to.
	Adjustments(ctx context.Context, accountID int64, from, to Date) ([]Adjustment, error)
	// RecurringRules lists rules whose effective interval intersects [from, to]:
	// rule.Start <= to and (rule.End is zero or rule.End >= from).
	RecurringRules(ctx context.Context, accountID int64, from, to Date) ([]RecurringRule, error)

	// SaveAdjustment persists a new correction entry and sets its ID.
	SaveAdjustment(ctx context.Context, adj *Adjustment) error

	// Loan returns the loan by id, or ErrLoanNotFound.
	Loan(ctx context.Context, id int64) (Loan, error)
	// LoanPeriods lists a loan's periods ordered by start date.
	LoanPeriods(ctx context.Context, loanID int64) ([]LoanPeriod, error)
	// SaveLoanPeriods persists new periods and sets their IDs.
	SaveLoanPeriods(ctx context.Context, periods []LoanPeriod) error
	// DeleteLoanPeriodsAfter removes every period of the loan whose start date
	// is strictly after the given date.
	DeleteLoanPeriodsAfter(ctx context.Context, loanID int64, after Date) error
}
