package finanzas

import (
	"context"
	"testing"
)

func TestSchedule_Mortgage(t *testing.T) {
	loan := Loan{
		ID:         1,
		Name:       "Mortgage",
		Start:      MustParseDate("2024-01-15"),
		Principal:  mustMoney(t, "120000.00"),
		TermMonths: 240,
	}
	periods := Schedule(loan, R(3.0))

	if len(periods) != 20 {
		t.Fatalf("got %d periods, want 20", len(periods))
	}

	p0 := periods[0]
	if p0.Start != loan.Start {
		t.Errorf("first period starts %s, want %s", p0.Start, loan.Start)
	}
	if want := MustParseDate("2025-01-14"); p0.End != want {
		t.Errorf("first period ends %s, want %s", p0.End, want)
	}
	assertMoney(t, "first opening", p0.OpeningPrincipal, "120000.00")
	assertMoney(t, "first closing", p0.ClosingPrincipal, "115552.95")
	assertMoney(t, "first interest", p0.Interest, "3539.19")
	assertMoney(t, "first amortized", p0.Amortized, "4447.05")
	assertMoney(t, "first payment", p0.Payment(), "665.52")

	p1 := periods[1]
	if want := MustParseDate("2025-01-15"); p1.Start != want {
		t.Errorf("second period starts %s, want %s", p1.Start, want)
	}
	assertMoney(t, "second closing", p1.ClosingPrincipal, "110970.62")
	assertMoney(t, "second interest", p1.Interest, "3403.91")
	assertMoney(t, "second amortized", p1.Amortized, "4582.33")

	// Each period opens at the previous closing principal, with no gaps
	// between period dates.
	for i := 1; i < len(periods); i++ {
		if !periods[i].OpeningPrincipal.Equal(periods[i-1].ClosingPrincipal) {
			t.Errorf("period %d opens at %s, previous closed at %s",
				i, periods[i].OpeningPrincipal.Amount(), periods[i-1].ClosingPrincipal.Amount())
		}
		if want := periods[i-1].End.Add(1); periods[i].Start != want {
			t.Errorf("period %d starts %s, want %s", i, periods[i].Start, want)
		}
	}

	// Rounding leaves a few cents of residue at the end, never a negative
	// principal.
	last := periods[len(periods)-1]
	assertMoney(t, "final closing", last.ClosingPrincipal, "0.06")
	for i, p := range periods {
		if p.ClosingPrincipal.IsNegative() {
			t.Errorf("period %d closes negative: %s", i, p.ClosingPrincipal.Amount())
		}
	}
}

func TestSchedule_ShortLoan(t *testing.T) {
	loan := Loan{
		ID:         2,
		Start:      MustParseDate("2025-03-01"),
		Principal:  mustMoney(t, "10000.00"),
		TermMonths: 24,
	}
	periods := Schedule(loan, R(5.0))

	if len(periods) != 2 {
		t.Fatalf("got %d periods, want 2", len(periods))
	}
	assertMoney(t, "first closing", periods[0].ClosingPrincipal, "5124.78")
	assertMoney(t, "first interest", periods[0].Interest, "389.30")
	assertMoney(t, "first payment", periods[0].Payment(), "438.71")

	// The last period recomputes the payment over the months left, absorbing
	// the rounding drift, and the principal clamps at zero.
	assertMoney(t, "last payment", periods[1].Payment(), "438.72")
	assertMoney(t, "last interest", periods[1].Interest, "139.85")
	assertMoney(t, "last amortized", periods[1].Amortized, "5124.79")
	assertMoney(t, "last closing", periods[1].ClosingPrincipal, "0")
}

func TestSchedule_ZeroRate(t *testing.T) {
	loan := Loan{
		ID:         3,
		Start:      MustParseDate("2025-01-01"),
		Principal:  mustMoney(t, "1200.00"),
		TermMonths: 12,
	}
	periods := Schedule(loan, R(0))

	if len(periods) != 1 {
		t.Fatalf("got %d periods, want 1", len(periods))
	}
	assertMoney(t, "payment", periods[0].Payment(), "100.00")
	assertMoney(t, "interest", periods[0].Interest, "0.00")
	assertMoney(t, "closing", periods[0].ClosingPrincipal, "0.00")
}

func TestSchedule_NoTermLeft(t *testing.T) {
	loan := Loan{ID: 4, Start: Today(), Principal: mustMoney(t, "1000.00"), TermMonths: 0}
	if periods := Schedule(loan, R(3.0)); periods != nil {
		t.Errorf("got %d periods, want none", len(periods))
	}
}

func TestScheduler_RegenerateFrom(t *testing.T) {
	store := newMemStore()
	loan := store.addLoan(Loan{
		Name:       "Car",
		Start:      MustParseDate("2024-01-01"),
		Principal:  mustMoney(t, "10000.00"),
		TermMonths: 24,
		Rate:       VariableRate,
	})
	scheduler := NewScheduler(store)
	ctx := context.Background()

	if _, err := scheduler.Generate(ctx, loan, R(5.0)); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// Annual revision: the bank settles year one at 5000.00 and reprices the
	// rest of the loan at 4%.
	periods, err := store.LoanPeriods(ctx, loan.ID)
	if err != nil {
		t.Fatalf("LoanPeriods() error = %v", err)
	}
	edited := periods[0]
	edited.ClosingPrincipal = mustMoney(t, "5000.00")
	edited.AnnualRate = R(4.0)

	suffix, err := scheduler.RegenerateFrom(ctx, loan.ID, edited)
	if err != nil {
		t.Fatalf("RegenerateFrom() error = %v", err)
	}
	if len(suffix) != 1 {
		t.Fatalf("got %d regenerated periods, want 1", len(suffix))
	}
	assertMoney(t, "suffix opening", suffix[0].OpeningPrincipal, "5000.00")
	assertMoney(t, "suffix payment", suffix[0].Payment(), "425.75")
	assertMoney(t, "suffix interest", suffix[0].Interest, "108.98")
	assertMoney(t, "suffix closing", suffix[0].ClosingPrincipal, "0")
	if want := MustParseDate("2025-01-01"); suffix[0].Start != want {
		t.Errorf("suffix starts %s, want %s", suffix[0].Start, want)
	}

	// The edited period and its predecessors stay exactly as stored; only the
	// suffix was replaced.
	after, err := store.LoanPeriods(ctx, loan.ID)
	if err != nil {
		t.Fatalf("LoanPeriods() error = %v", err)
	}
	if len(after) != 2 {
		t.Fatalf("got %d stored periods, want 2", len(after))
	}
	if !after[0].ClosingPrincipal.Equal(periods[0].ClosingPrincipal) {
		t.Errorf("history was rewritten: first period closes %s, want %s",
			after[0].ClosingPrincipal.Amount(), periods[0].ClosingPrincipal.Amount())
	}
	if !after[1].OpeningPrincipal.Equal(mustMoney(t, "5000.00")) {
		t.Errorf("suffix not persisted: second period opens %s", after[1].OpeningPrincipal.Amount())
	}
}

func TestScheduler_RegenerateFrom_LoanNotFound(t *testing.T) {
	scheduler := NewScheduler(newMemStore())
	_, err := scheduler.RegenerateFrom(context.Background(), 42, LoanPeriod{})
	if err == nil {
		t.Fatal("RegenerateFrom() error = nil, want ErrLoanNotFound")
	}
}

func assertMoney(t *testing.T, label string, got Money, want string) {
	t.Helper()
	if !got.Equal(mustMoney(t, want)) {
		t.Errorf("%s = %s, want %s", label, got.Amount(), want)
	}
}
