package cmd

import (
	"context"
	"path/filepath"
	"testing"

	finanzas "github.com/kindsee/finanzas-desktop"
	"github.com/kindsee/finanzas-desktop/store"
)

func TestEnvOr(t *testing.T) {
	t.Setenv("FIN_TEST_KEY", "from-env")
	if got := envOr("FIN_TEST_KEY", "fallback"); got != "from-env" {
		t.Errorf("envOr() = %q, want %q", got, "from-env")
	}
	if got := envOr("FIN_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("envOr() = %q, want %q", got, "fallback")
	}
}

func TestResolveAccount(t *testing.T) {
	repo, err := store.Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer repo.Close()
	ctx := context.Background()

	account := finanzas.Account{Name: "Checking", Currency: "EUR", Visible: true}
	if err := repo.SaveAccount(ctx, &account); err != nil {
		t.Fatal(err)
	}

	byName, err := resolveAccount(ctx, repo, "Checking")
	if err != nil {
		t.Fatalf("resolveAccount(name) error = %v", err)
	}
	if byName.ID != account.ID {
		t.Errorf("resolveAccount(name) id = %d, want %d", byName.ID, account.ID)
	}

	byID, err := resolveAccount(ctx, repo, "1")
	if err != nil {
		t.Fatalf("resolveAccount(id) error = %v", err)
	}
	if byID.Name != "Checking" {
		t.Errorf("resolveAccount(id) name = %q, want %q", byID.Name, "Checking")
	}
}

func TestResolveLoan(t *testing.T) {
	repo, err := store.Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer repo.Close()
	ctx := context.Background()

	principal, err := finanzas.ParseMoney("10000", "EUR")
	if err != nil {
		t.Fatal(err)
	}
	loan := finanzas.Loan{Name: "Car", Rate: finanzas.FixedRate, Start: finanzas.Today(), Principal: principal, TermMonths: 24}
	if err := repo.SaveLoan(ctx, &loan); err != nil {
		t.Fatal(err)
	}

	byName, err := resolveLoan(ctx, repo, "Car")
	if err != nil {
		t.Fatalf("resolveLoan(name) error = %v", err)
	}
	if byName.ID != loan.ID {
		t.Errorf("resolveLoan(name) id = %d, want %d", byName.ID, loan.ID)
	}

	if _, err := resolveLoan(ctx, repo, "Boat"); err == nil {
		t.Error("resolveLoan(unknown) did not fail")
	}
}
