package finanzas

import (
	"context"
	"errors"
	"testing"
)

func TestReconciler_Reconcile(t *testing.T) {
	store, account := projectorFixture(t)
	reconciler := NewReconciler(store)
	projector := NewProjector(store)
	ctx := context.Background()
	day := MustParseDate("2025-04-01")

	// Projected balance at the date is 191.64; asserting 250.00 must create
	// a +58.36 correction.
	adjustment, err := reconciler.Reconcile(ctx, account.ID, day, mustMoney(t, "250.00"), "bank statement")
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if want := mustMoney(t, "58.36"); !adjustment.Amount.Equal(want) {
		t.Errorf("adjustment amount = %s, want %s", adjustment.Amount.Amount(), want.Amount())
	}
	if adjustment.ID == 0 {
		t.Error("adjustment was not persisted")
	}
	if adjustment.Date != day {
		t.Errorf("adjustment date = %s, want %s", adjustment.Date, day)
	}

	// Re-projecting at the same date now returns exactly the asserted balance.
	balance, err := projector.Balance(ctx, account.ID, day)
	if err != nil {
		t.Fatalf("Balance() error = %v", err)
	}
	if want := mustMoney(t, "250.00"); !balance.Equal(want) {
		t.Errorf("balance after reconcile = %s, want %s", balance.Amount(), want.Amount())
	}
}

func TestReconciler_Idempotent(t *testing.T) {
	store, account := projectorFixture(t)
	reconciler := NewReconciler(store)
	ctx := context.Background()
	day := MustParseDate("2025-04-01")
	asserted := mustMoney(t, "250.00")

	if _, err := reconciler.Reconcile(ctx, account.ID, day, asserted, ""); err != nil {
		t.Fatalf("first Reconcile() error = %v", err)
	}
	saved := len(store.adjustments)

	// The second run computes a zero delta and must not persist anything.
	second, err := reconciler.Reconcile(ctx, account.ID, day, asserted, "")
	if err != nil {
		t.Fatalf("second Reconcile() error = %v", err)
	}
	if !second.Amount.IsZero() {
		t.Errorf("second adjustment amount = %s, want 0", second.Amount.Amount())
	}
	if second.ID != 0 {
		t.Error("zero-amount adjustment was persisted")
	}
	if len(store.adjustments) != saved {
		t.Errorf("store has %d adjustments, want %d", len(store.adjustments), saved)
	}
}

func TestReconciler_IsAdditive(t *testing.T) {
	store, account := projectorFixture(t)
	tx := store.addTransaction(Transaction{AccountID: account.ID, Date: MustParseDate("2025-02-10"), Description: "Groceries", Amount: mustMoney(t, "-25.00")})
	reconciler := NewReconciler(store)

	if _, err := reconciler.Reconcile(context.Background(), account.ID, MustParseDate("2025-03-01"), mustMoney(t, "300.00"), ""); err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}

	// Existing entries are never edited, only a new adjustment appears.
	if len(store.transactions) != 1 || !store.transactions[0].Amount.Equal(tx.Amount) {
		t.Error("reconciliation modified an existing transaction")
	}
	if len(store.rules) != 1 {
		t.Error("reconciliation modified recurring rules")
	}
	if len(store.adjustments) != 1 {
		t.Fatalf("got %d adjustments, want 1", len(store.adjustments))
	}
	if got := store.adjustments[0].Description; got != "Reconciliation" {
		t.Errorf("default description = %q, want %q", got, "Reconciliation")
	}
}

func TestReconciler_AccountNotFound(t *testing.T) {
	reconciler := NewReconciler(newMemStore())
	_, err := reconciler.Reconcile(context.Background(), 9, Today(), Money{}, "")
	if !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("Reconcile() error = %v, want ErrAccountNotFound", err)
	}
}
