package finanzas

import (
	"context"
	"fmt"
	"sort"
)

// Projector replays an account's events to compute balances and audit views.
//
// Projection is pure: it reads through the Store and writes nothing, and two
// calls with identical inputs over an unchanged store yield identical output,
// decimals included.
type Projector struct {
	store Store
}

// NewProjector returns a projector reading through the given store.
func NewProjector(store Store) *Projector {
	return &Projector{store: store}
}

// Project replays all events of the account up to and including the target
// date and returns them in chronological order together with the final
// balance. Each returned movement carries the running balance after it.
func (p *Projector) Project(ctx context.Context, accountID int64, on Date) ([]Movement, Money, error) {
	account, err := p.store.Account(ctx, accountID)
	if err != nil {
		return nil, Money{}, err
	}

	movements, err := p.collect(ctx, account, Date{}, on)
	if err != nil {
		return nil, Money{}, err
	}
	sort.SliceStable(movements, func(i, j int) bool { return movementLess(movements[i], movements[j]) })

	balance := account.OpeningBalance
	for i := range movements {
		balance = balance.Add(movements[i].Amount)
		movements[i].Balance = balance
	}
	return movements, balance, nil
}

// Balance returns the projected balance of the account at the given date.
func (p *Projector) Balance(ctx context.Context, accountID int64, on Date) (Money, error) {
	_, balance, err := p.Project(ctx, accountID, on)
	return balance, err
}

// ProjectRange replays the events of the account falling inside [from, to]
// and returns them with the balances bracketing the range. A reversed range
// is normalized by swapping, so open-range audits never silently come back
// empty.
func (p *Projector) ProjectRange(ctx context.Context, accountID int64, from, to Date) (movements []Movement, opening, closing Money, err error) {
	if to.Before(from) {
		from, to = to, from
	}

	account, err := p.store.Account(ctx, accountID)
	if err != nil {
		return nil, Money{}, Money{}, err
	}

	// Balance just before the range opens.
	before, err := p.collect(ctx, account, Date{}, from.Add(-1))
	if err != nil {
		return nil, Money{}, Money{}, err
	}
	opening = account.OpeningBalance
	for _, m := range before {
		opening = opening.Add(m.Amount)
	}

	movements, err = p.collect(ctx, account, from, to)
	if err != nil {
		return nil, Money{}, Money{}, err
	}
	sort.SliceStable(movements, func(i, j int) bool { return movementLess(movements[i], movements[j]) })

	closing = opening
	for i := range movements {
		closing = closing.Add(movements[i].Amount)
		movements[i].Balance = closing
	}
	return movements, opening, closing, nil
}

// collect gathers the account's raw events with from <= date <= to, unsorted.
// A zero from leaves the range open at the start. The account epoch floors
// recurring expansion only; one-time entries dated before it still count.
func (p *Projector) collect(ctx context.Context, account Account, from, to Date) ([]Movement, error) {
	if !from.IsZero() && to.Before(from) {
		return nil, nil
	}

	var movements []Movement

	adjustments, err := p.store.Adjustments(ctx, account.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing adjustments of account %d: %w", account.ID, err)
	}
	for _, adj := range adjustments {
		desc := adj.Description
		if desc == "" {
			desc = "Adjustment"
		}
		movements = append(movements, Movement{
			Date:        adj.Date,
			Kind:        KindAdjustment,
			Description: desc,
			Amount:      adj.Amount,
		})
	}

	transactions, err := p.store.Transactions(ctx, account.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing transactions of account %d: %w", account.ID, err)
	}
	for _, tx := range transactions {
		movements = append(movements, Movement{
			Date:        tx.Date,
			Kind:        KindTransaction,
			Description: tx.Description,
			Amount:      tx.Amount,
			Transfer:    tx.Transfer,
		})
	}

	recurFrom := from
	if !account.Opened.IsZero() {
		if recurFrom.IsZero() {
			recurFrom = account.Opened
		} else {
			recurFrom = MaxDate(recurFrom, account.Opened)
		}
	}
	if !recurFrom.IsZero() && to.Before(recurFrom) {
		return movements, nil
	}

	rules, err := p.store.RecurringRules(ctx, account.ID, recurFrom, to)
	if err != nil {
		return nil, fmt.Errorf("listing recurring rules of account %d: %w", account.ID, err)
	}
	for _, rule := range rules {
		for on := range Occurrences(rule, recurFrom, to) {
			movements = append(movements, Movement{
				Date:        on,
				Kind:        KindRecurring,
				Description: rule.Description,
				Amount:      rule.Amount,
				Transfer:    rule.Transfer,
			})
		}
	}

	return movements, nil
}

// Totals sums a projected event stream into income (positive amounts) and
// expense (negative amounts, returned negative). Net is income + expense.
func Totals(movements []Movement) (income, expense Money) {
	for _, m := range movements {
		if m.Amount.IsNegative() {
			expense = expense.Add(m.Amount)
		} else {
			income = income.Add(m.Amount)
		}
	}
	return income, expense
}

// ExpenseTotal is one line of the top-expenses report: all spending under one
// description, summed over the report window.
type ExpenseTotal struct {
	Description string
	Kind        MovementKind // KindTransaction or KindRecurring
	Total       Money        // negative
}

// TopExpenses reports the heaviest spending over the last months, grouped by
// description. Inter-account transfers are excluded; positive amounts are
// ignored. An accountID of 0 spans all accounts. The list is sorted most
// negative first and capped at limit entries.
func (p *Projector) TopExpenses(ctx context.Context, accountID int64, months, limit int) ([]ExpenseTotal, error) {
	to := Today()
	from := to.AddMonths(-months)

	var accounts []Account
	if accountID == 0 {
		all, err := p.store.Accounts(ctx)
		if err != nil {
			return nil, err
		}
		accounts = all
	} else {
		account, err := p.store.Account(ctx, accountID)
		if err != nil {
			return nil, err
		}
		accounts = []Account{account}
	}

	type key struct {
		desc string
		kind MovementKind
	}
	totals := make(map[key]Money)
	for _, account := range accounts {
		movements, err := p.collect(ctx, account, from, to)
		if err != nil {
			return nil, err
		}
		for _, m := range movements {
			if m.Transfer || m.Kind == KindAdjustment || !m.Amount.IsNegative() {
				continue
			}
			k := key{desc: m.Description, kind: m.Kind}
			totals[k] = totals[k].Add(m.Amount)
		}
	}

	report := make([]ExpenseTotal, 0, len(totals))
	for k, total := range totals {
		report = append(report, ExpenseTotal{Description: k.desc, Kind: k.kind, Total: total})
	}
	sort.Slice(report, func(i, j int) bool {
		if !report[i].Total.Equal(report[j].Total) {
			return report[i].Total.LessThan(report[j].Total)
		}
		return report[i].Description < report[j].Description
	})
	if limit > 0 && len(report) > limit {
		report = report[:limit]
	}
	return report, nil
}

// MonthBalance is the projected balance at the end of one calendar month.
type MonthBalance struct {
	Month   Date // first day of the month
	Balance Money
}

// MonthlyBalances returns end-of-month balances for the two months before,
// the month of, and the month after the pivot date.
func (p *Projector) MonthlyBalances(ctx context.Context, accountID int64, pivot Date) ([]MonthBalance, error) {
	balances := make([]MonthBalance, 0, 4)
	for i := -2; i <= 1; i++ {
		month := pivot.AddMonths(i).StartOfMonth()
		balance, err := p.Balance(ctx, accountID, month.EndOfMonth())
		if err != nil {
			return nil, err
		}
		balances = append(balances, MonthBalance{Month: month, Balance: balance})
	}
	return balances, nil
}
