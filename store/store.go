// Package store persists the ledger in a single SQLite file.
//
// All amounts are stored as decimal text next to their currency code, and all
// dates as ISO-8601 text, so lexicographic comparison in SQL matches date
// order and no float ever touches a money value.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	finanzas "github.com/kindsee/finanzas-desktop"

	_ "modernc.org/sqlite"
)

// Repository is the SQLite-backed implementation of finanzas.Store, plus the
// write operations the command layer needs.
type Repository struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at dbPath and migrates it to
// the current schema.
func Open(dbPath string) (*Repository, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// persistDate returns the value stored for a date column: NULL for the zero
// date, ISO text otherwise.
func persistDate(d finanzas.Date) any {
	if d.IsZero() {
		return nil
	}
	return d.String()
}

func scanDate(s sql.NullString) (finanzas.Date, error) {
	if !s.Valid || s.String == "" {
		return finanzas.Date{}, nil
	}
	return finanzas.ParseDate(s.String)
}

// rangeBound turns an open (zero) bound into the empty string, which the
// queries treat as "no bound".
func rangeBound(d finanzas.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

func (r *Repository) Account(ctx context.Context, id int64) (finanzas.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, currency, opening_balance, opened, visible FROM accounts WHERE id = ?`, id)
	account, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return finanzas.Account{}, finanzas.ErrAccountNotFound
	}
	if err != nil {
		return finanzas.Account{}, fmt.Errorf("get account %d: %w", id, err)
	}
	return account, nil
}

// AccountByName resolves an account by its unique name, which is what users
// type on the command line.
func (r *Repository) AccountByName(ctx context.Context, name string) (finanzas.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, currency, opening_balance, opened, visible FROM accounts WHERE name = ?`, name)
	account, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return finanzas.Account{}, finanzas.ErrAccountNotFound
	}
	if err != nil {
		return finanzas.Account{}, fmt.Errorf("get account %q: %w", name, err)
	}
	return account, nil
}

func (r *Repository) Accounts(ctx context.Context) ([]finanzas.Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, currency, opening_balance, opened, visible FROM accounts ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []finanzas.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("list accounts: %w", err)
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (finanzas.Account, error) {
	var (
		account  finanzas.Account
		balance  string
		opened   sql.NullString
		currency string
	)
	if err := row.Scan(&account.ID, &account.Name, &currency, &balance, &opened, &account.Visible); err != nil {
		return finanzas.Account{}, err
	}
	var err error
	account.Currency = currency
	if account.OpeningBalance, err = finanzas.ParseMoney(balance, currency); err != nil {
		return finanzas.Account{}, err
	}
	if account.Opened, err = scanDate(opened); err != nil {
		return finanzas.Account{}, err
	}
	return account, nil
}

// SaveAccount inserts a new account or updates an existing one by ID.
func (r *Repository) SaveAccount(ctx context.Context, account *finanzas.Account) error {
	if account.ID == 0 {
		res, err := r.db.ExecContext(ctx,
			`INSERT INTO accounts (name, currency, opening_balance, opened, visible) VALUES (?, ?, ?, ?, ?)`,
			account.Name, account.Currency, account.OpeningBalance.Persist(), persistDate(account.Opened), account.Visible)
		if err != nil {
			return fmt.Errorf("insert account %q: %w", account.Name, err)
		}
		account.ID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert account %q: %w", account.Name, err)
		}
		slog.InfoContext(ctx, "account created", "id", account.ID, "name", account.Name, "currency", account.Currency)
		return nil
	}

	_, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET name = ?, currency = ?, opening_balance = ?, opened = ?, visible = ? WHERE id = ?`,
		account.Name, account.Currency, account.OpeningBalance.Persist(), persistDate(account.Opened), account.Visible, account.ID)
	if err != nil {
		return fmt.Errorf("update account %d: %w", account.ID, err)
	}
	return nil
}

func (r *Repository) Transactions(ctx context.Context, accountID int64, from, to finanzas.Date) ([]finanzas.Transaction, error) {
	lo, hi := rangeBound(from), rangeBound(to)
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, account_id, date, description, amount, currency, transfer
		 FROM transactions
		 WHERE account_id = ? AND (? = '' OR date >= ?) AND (? = '' OR date <= ?)
		 ORDER BY date, id`,
		accountID, lo, lo, hi, hi)
	if err != nil {
		return nil, fmt.Errorf("list transactions of account %d: %w", accountID, err)
	}
	defer rows.Close()

	var txs []finanzas.Transaction
	for rows.Next() {
		var (
			tx       finanzas.Transaction
			date     sql.NullString
			amount   string
			currency string
		)
		if err := rows.Scan(&tx.ID, &tx.AccountID, &date, &tx.Description, &amount, &currency, &tx.Transfer); err != nil {
			return nil, fmt.Errorf("list transactions of account %d: %w", accountID, err)
		}
		if tx.Date, err = scanDate(date); err != nil {
			return nil, fmt.Errorf("transaction %d: %w", tx.ID, err)
		}
		if tx.Amount, err = finanzas.ParseMoney(amount, currency); err != nil {
			return nil, fmt.Errorf("transaction %d: %w", tx.ID, err)
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// SaveTransaction persists a new one-time entry and sets its ID.
func (r *Repository) SaveTransaction(ctx context.Context, tx *finanzas.Transaction) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (account_id, date, description, amount, currency, transfer) VALUES (?, ?, ?, ?, ?, ?)`,
		tx.AccountID, tx.Date.String(), tx.Description, tx.Amount.Persist(), tx.Amount.Currency(), tx.Transfer)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	if tx.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	slog.InfoContext(ctx, "transaction saved",
		"id", tx.ID, "account", tx.AccountID, "date", tx.Date.String(), "amount", tx.Amount.Persist())
	return nil
}

func (r *Repository) Adjustments(ctx context.Context, accountID int64, from, to finanzas.Date) ([]finanzas.Adjustment, error) {
	lo, hi := rangeBound(from), rangeBound(to)
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, account_id, date, description, amount, currency
		 FROM adjustments
		 WHERE account_id = ? AND (? = '' OR date >= ?) AND (? = '' OR date <= ?)
		 ORDER BY date, id`,
		accountID, lo, lo, hi, hi)
	if err != nil {
		return nil, fmt.Errorf("list adjustments of account %d: %w", accountID, err)
	}
	defer rows.Close()

	var adjustments []finanzas.Adjustment
	for rows.Next() {
		var (
			adj      finanzas.Adjustment
			date     sql.NullString
			amount   string
			currency string
		)
		if err := rows.Scan(&adj.ID, &adj.AccountID, &date, &adj.Description, &amount, &currency); err != nil {
			return nil, fmt.Errorf("list adjustments of account %d: %w", accountID, err)
		}
		if adj.Date, err = scanDate(date); err != nil {
			return nil, fmt.Errorf("adjustment %d: %w", adj.ID, err)
		}
		if adj.Amount, err = finanzas.ParseMoney(amount, currency); err != nil {
			return nil, fmt.Errorf("adjustment %d: %w", adj.ID, err)
		}
		adjustments = append(adjustments, adj)
	}
	return adjustments, rows.Err()
}

func (r *Repository) SaveAdjustment(ctx context.Context, adj *finanzas.Adjustment) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO adjustments (account_id, date, description, amount, currency) VALUES (?, ?, ?, ?, ?)`,
		adj.AccountID, adj.Date.String(), adj.Description, adj.Amount.Persist(), adj.Amount.Currency())
	if err != nil {
		return fmt.Errorf("insert adjustment: %w", err)
	}
	if adj.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("insert adjustment: %w", err)
	}
	slog.InfoContext(ctx, "adjustment saved",
		"id", adj.ID, "account", adj.AccountID, "date", adj.Date.String(), "amount", adj.Amount.Persist())
	return nil
}

func (r *Repository) RecurringRules(ctx context.Context, accountID int64, from, to finanzas.Date) ([]finanzas.RecurringRule, error) {
	lo, hi := rangeBound(from), rangeBound(to)
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, account_id, description, amount, currency, frequency, start_date, end_date, transfer
		 FROM recurring_rules
		 WHERE account_id = ?
		   AND (? = '' OR start_date <= ?)
		   AND (? = '' OR end_date IS NULL OR end_date >= ?)
		 ORDER BY start_date, id`,
		accountID, hi, hi, lo, lo)
	if err != nil {
		return nil, fmt.Errorf("list recurring rules of account %d: %w", accountID, err)
	}
	defer rows.Close()

	var rules []finanzas.RecurringRule
	for rows.Next() {
		var (
			rule       finanzas.RecurringRule
			amount     string
			currency   string
			frequency  string
			start, end sql.NullString
		)
		if err := rows.Scan(&rule.ID, &rule.AccountID, &rule.Description, &amount, &currency, &frequency, &start, &end, &rule.Transfer); err != nil {
			return nil, fmt.Errorf("list recurring rules of account %d: %w", accountID, err)
		}
		if rule.Amount, err = finanzas.ParseMoney(amount, currency); err != nil {
			return nil, fmt.Errorf("recurring rule %d: %w", rule.ID, err)
		}
		if rule.Frequency, err = finanzas.ParseFrequency(frequency); err != nil {
			return nil, fmt.Errorf("recurring rule %d: %w", rule.ID, err)
		}
		if rule.Start, err = scanDate(start); err != nil {
			return nil, fmt.Errorf("recurring rule %d: %w", rule.ID, err)
		}
		if rule.End, err = scanDate(end); err != nil {
			return nil, fmt.Errorf("recurring rule %d: %w", rule.ID, err)
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

// SaveRecurringRule persists a new recurring rule and sets its ID.
func (r *Repository) SaveRecurringRule(ctx context.Context, rule *finanzas.RecurringRule) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO recurring_rules (account_id, description, amount, currency, frequency, start_date, end_date, transfer)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rule.AccountID, rule.Description, rule.Amount.Persist(), rule.Amount.Currency(),
		rule.Frequency.String(), rule.Start.String(), persistDate(rule.End), rule.Transfer)
	if err != nil {
		return fmt.Errorf("insert recurring rule: %w", err)
	}
	if rule.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("insert recurring rule: %w", err)
	}
	slog.InfoContext(ctx, "recurring rule saved",
		"id", rule.ID, "account", rule.AccountID, "frequency", rule.Frequency.String(), "amount", rule.Amount.Persist())
	return nil
}

func (r *Repository) Loan(ctx context.Context, id int64) (finanzas.Loan, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, rate_kind, start_date, principal, currency, term_months, property_value FROM loans WHERE id = ?`, id)
	loan, err := scanLoan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return finanzas.Loan{}, finanzas.ErrLoanNotFound
	}
	if err != nil {
		return finanzas.Loan{}, fmt.Errorf("get loan %d: %w", id, err)
	}
	return loan, nil
}

// Loans lists all loans ordered by name.
func (r *Repository) Loans(ctx context.Context) ([]finanzas.Loan, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, rate_kind, start_date, principal, currency, term_months, property_value FROM loans ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	defer rows.Close()

	var loans []finanzas.Loan
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("list loans: %w", err)
		}
		loans = append(loans, loan)
	}
	return loans, rows.Err()
}

func scanLoan(row scanner) (finanzas.Loan, error) {
	var (
		loan      finanzas.Loan
		kind      string
		start     sql.NullString
		principal string
		currency  string
		property  sql.NullString
	)
	if err := row.Scan(&loan.ID, &loan.Name, &kind, &start, &principal, &currency, &loan.TermMonths, &property); err != nil {
		return finanzas.Loan{}, err
	}
	var err error
	if loan.Rate, err = finanzas.ParseRateKind(kind); err != nil {
		return finanzas.Loan{}, err
	}
	if loan.Start, err = scanDate(start); err != nil {
		return finanzas.Loan{}, err
	}
	if loan.Principal, err = finanzas.ParseMoney(principal, currency); err != nil {
		return finanzas.Loan{}, err
	}
	if property.Valid && property.String != "" {
		if loan.PropertyValue, err = finanzas.ParseMoney(property.String, currency); err != nil {
			return finanzas.Loan{}, err
		}
	}
	return loan, nil
}

// SaveLoan persists a new loan and sets its ID.
func (r *Repository) SaveLoan(ctx context.Context, loan *finanzas.Loan) error {
	var property any
	if !loan.PropertyValue.IsZero() {
		property = loan.PropertyValue.Persist()
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO loans (name, rate_kind, start_date, principal, currency, term_months, property_value)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		loan.Name, string(loan.Rate), loan.Start.String(), loan.Principal.Persist(), loan.Principal.Currency(),
		loan.TermMonths, property)
	if err != nil {
		return fmt.Errorf("insert loan %q: %w", loan.Name, err)
	}
	if loan.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("insert loan %q: %w", loan.Name, err)
	}
	slog.InfoContext(ctx, "loan created",
		"id", loan.ID, "name", loan.Name, "principal", loan.Principal.Persist(), "months", loan.TermMonths)
	return nil
}

func (r *Repository) LoanPeriods(ctx context.Context, loanID int64) ([]finanzas.LoanPeriod, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, loan_id, start_date, end_date, opening_principal, closing_principal, annual_rate, interest, amortized, currency
		 FROM loan_periods WHERE loan_id = ? ORDER BY start_date`, loanID)
	if err != nil {
		return nil, fmt.Errorf("list periods of loan %d: %w", loanID, err)
	}
	defer rows.Close()

	var periods []finanzas.LoanPeriod
	for rows.Next() {
		var (
			p                   finanzas.LoanPeriod
			start, end          sql.NullString
			opening, closing    string
			rate                string
			interest, amortized string
			currency            string
		)
		if err := rows.Scan(&p.ID, &p.LoanID, &start, &end, &opening, &closing, &rate, &interest, &amortized, &currency); err != nil {
			return nil, fmt.Errorf("list periods of loan %d: %w", loanID, err)
		}
		if p.Start, err = scanDate(start); err != nil {
			return nil, fmt.Errorf("loan period %d: %w", p.ID, err)
		}
		if p.End, err = scanDate(end); err != nil {
			return nil, fmt.Errorf("loan period %d: %w", p.ID, err)
		}
		if p.OpeningPrincipal, err = finanzas.ParseMoney(opening, currency); err != nil {
			return nil, fmt.Errorf("loan period %d: %w", p.ID, err)
		}
		if p.ClosingPrincipal, err = finanzas.ParseMoney(closing, currency); err != nil {
			return nil, fmt.Errorf("loan period %d: %w", p.ID, err)
		}
		if p.AnnualRate, err = finanzas.ParseRate(rate); err != nil {
			return nil, fmt.Errorf("loan period %d: %w", p.ID, err)
		}
		if p.Interest, err = finanzas.ParseMoney(interest, currency); err != nil {
			return nil, fmt.Errorf("loan period %d: %w", p.ID, err)
		}
		if p.Amortized, err = finanzas.ParseMoney(amortized, currency); err != nil {
			return nil, fmt.Errorf("loan period %d: %w", p.ID, err)
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

func (r *Repository) SaveLoanPeriods(ctx context.Context, periods []finanzas.LoanPeriod) error {
	if len(periods) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save loan periods: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO loan_periods (loan_id, start_date, end_date, opening_principal, closing_principal, annual_rate, interest, amortized, currency)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("save loan periods: %w", err)
	}
	defer stmt.Close()

	for i := range periods {
		p := &periods[i]
		res, err := stmt.ExecContext(ctx,
			p.LoanID, p.Start.String(), p.End.String(),
			p.OpeningPrincipal.Persist(), p.ClosingPrincipal.Persist(),
			p.AnnualRate.Persist(), p.Interest.Persist(), p.Amortized.Persist(),
			p.OpeningPrincipal.Currency())
		if err != nil {
			return fmt.Errorf("save loan period starting %s: %w", p.Start, err)
		}
		if p.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("save loan period starting %s: %w", p.Start, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save loan periods: %w", err)
	}
	slog.InfoContext(ctx, "loan periods saved", "loan", periods[0].LoanID, "count", len(periods))
	return nil
}

// UpdateLoanPeriod rewrites the stored figures of one period, typically after
// a manual correction against a bank statement.
func (r *Repository) UpdateLoanPeriod(ctx context.Context, p finanzas.LoanPeriod) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE loan_periods
		 SET start_date = ?, end_date = ?, opening_principal = ?, closing_principal = ?, annual_rate = ?, interest = ?, amortized = ?
		 WHERE id = ?`,
		p.Start.String(), p.End.String(),
		p.OpeningPrincipal.Persist(), p.ClosingPrincipal.Persist(),
		p.AnnualRate.Persist(), p.Interest.Persist(), p.Amortized.Persist(),
		p.ID)
	if err != nil {
		return fmt.Errorf("update loan period %d: %w", p.ID, err)
	}
	return nil
}

func (r *Repository) DeleteLoanPeriodsAfter(ctx context.Context, loanID int64, after finanzas.Date) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM loan_periods WHERE loan_id = ? AND start_date > ?`, loanID, after.String())
	if err != nil {
		return fmt.Errorf("delete periods of loan %d after %s: %w", loanID, after, err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		slog.InfoContext(ctx, "loan periods deleted", "loan", loanID, "after", after.String(), "count", n)
	}
	return nil
}

var _ finanzas.Store = (*Repository)(nil)
