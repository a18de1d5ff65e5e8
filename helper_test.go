package finanzas

import (
	"context"
	"slices"
)

// memStore is an in-memory Store used by the package tests. It implements the
// same range semantics as the SQLite store: inclusive bounds, zero dates open.
type memStore struct {
	accounts     []Account
	transactions []Transaction
	adjustments  []Adjustment
	rules        []RecurringRule
	loans        []Loan
	periods      []LoanPeriod
	nextID       int64
}

func newMemStore() *memStore { return &memStore{nextID: 1} }

func (s *memStore) id() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *memStore) addAccount(a Account) Account {
	a.ID = s.id()
	s.accounts = append(s.accounts, a)
	return a
}

func (s *memStore) addTransaction(tx Transaction) Transaction {
	tx.ID = s.id()
	s.transactions = append(s.transactions, tx)
	return tx
}

func (s *memStore) addAdjustment(adj Adjustment) Adjustment {
	adj.ID = s.id()
	s.adjustments = append(s.adjustments, adj)
	return adj
}

func (s *memStore) addRule(r RecurringRule) RecurringRule {
	r.ID = s.id()
	s.rules = append(s.rules, r)
	return r
}

func (s *memStore) addLoan(l Loan) Loan {
	l.ID = s.id()
	s.loans = append(s.loans, l)
	return l
}

func inRange(d, from, to Date) bool {
	if !from.IsZero() && d.Before(from) {
		return false
	}
	if !to.IsZero() && d.After(to) {
		return false
	}
	return true
}

func (s *memStore) Account(_ context.Context, id int64) (Account, error) {
	for _, a := range s.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return Account{}, ErrAccountNotFound
}

func (s *memStore) Accounts(_ context.Context) ([]Account, error) {
	return slices.Clone(s.accounts), nil
}

func (s *memStore) Transactions(_ context.Context, accountID int64, from, to Date) ([]Transaction, error) {
	var out []Transaction
	for _, tx := range s.transactions {
		if tx.AccountID == accountID && inRange(tx.Date, from, to) {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (s *memStore) Adjustments(_ context.Context, accountID int64, from, to Date) ([]Adjustment, error) {
	var out []Adjustment
	for _, adj := range s.adjustments {
		if adj.AccountID == accountID && inRange(adj.Date, from, to) {
			out = append(out, adj)
		}
	}
	return out, nil
}

func (s *memStore) RecurringRules(_ context.Context, accountID int64, from, to Date) ([]RecurringRule, error) {
	var out []RecurringRule
	for _, r := range s.rules {
		if r.AccountID != accountID {
			continue
		}
		if !to.IsZero() && r.Start.After(to) {
			continue
		}
		if !r.End.IsZero() && !from.IsZero() && r.End.Before(from) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *memStore) SaveAdjustment(_ context.Context, adj *Adjustment) error {
	adj.ID = s.id()
	s.adjustments = append(s.adjustments, *adj)
	return nil
}

func (s *memStore) Loan(_ context.Context, id int64) (Loan, error) {
	for _, l := range s.loans {
		if l.ID == id {
			return l, nil
		}
	}
	return Loan{}, ErrLoanNotFound
}

func (s *memStore) LoanPeriods(_ context.Context, loanID int64) ([]LoanPeriod, error) {
	var out []LoanPeriod
	for _, p := range s.periods {
		if p.LoanID == loanID {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b LoanPeriod) int {
		switch {
		case a.Start.Before(b.Start):
			return -1
		case a.Start.After(b.Start):
			return 1
		default:
			return 0
		}
	})
	return out, nil
}

func (s *memStore) SaveLoanPeriods(_ context.Context, periods []LoanPeriod) error {
	for _, p := range periods {
		p.ID = s.id()
		s.periods = append(s.periods, p)
	}
	return nil
}

func (s *memStore) DeleteLoanPeriodsAfter(_ context.Context, loanID int64, after Date) error {
	kept := s.periods[:0]
	for _, p := range s.periods {
		if p.LoanID == loanID && p.Start.After(after) {
			continue
		}
		kept = append(kept, p)
	}
	s.periods = kept
	return nil
}

var _ Store = (*memStore)(nil)
