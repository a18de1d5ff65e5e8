package finanzas

// MovementKind is a typed tag identifying the source of a ledger event.
type MovementKind string

const (
	KindRecurring   MovementKind = "recurring"
	KindAdjustment  MovementKind = "adjustment"
	KindTransaction MovementKind = "transaction"
)

// precedence orders same-day events deterministically: a recurring charge is
// applied first, then corrections, then one-time entries, so a reconciliation
// dated the same day as a recurring charge lands after that charge. The same
// order applies to full and ranged projections.
func (k MovementKind) precedence() int {
	switch k {
	case KindRecurring:
		return 1
	case KindAdjustment:
		return 2
	case KindTransaction:
		return 3
	default:
		return 99
	}
}

// Movement is one dated ledger event produced by projection. Balance is the
// running balance immediately after the event is applied.
type Movement struct {
	Date        Date
	Kind        MovementKind
	Description string
	Amount      Money
	Transfer    bool
	Balance     Money
}

// movementLess is the total order of the event stream: chronological, with
// kind precedence breaking same-day ties.
func movementLess(a, b Movement) bool {
	if a.Date != b.Date {
		return a.Date.Before(b.Date)
	}
	return a.Kind.precedence() < b.Kind.precedence()
}
