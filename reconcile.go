package finanzas

import (
	"context"
	"fmt"
)

// Reconciler forces a projected balance to match a user-asserted one by
// inserting a single corrective Adjustment. It never edits existing entries,
// which keeps reconciliation commutative with later edits to history.
type Reconciler struct {
	store     Store
	projector *Projector
}

// NewReconciler returns a reconciler reading and writing through the store.
func NewReconciler(store Store) *Reconciler {
	return &Reconciler{store: store, projector: NewProjector(store)}
}

// Reconcile computes the delta between the asserted balance and the projected
// balance at the given date, and persists one Adjustment for that delta dated
// that day. Re-projecting the account at the same date then returns exactly
// the asserted balance.
//
// A zero delta is not an error; the zero-amount Adjustment is returned for
// inspection but not persisted (its ID stays 0).
func (r *Reconciler) Reconcile(ctx context.Context, accountID int64, on Date, asserted Money, description string) (Adjustment, error) {
	projected, err := r.projector.Balance(ctx, accountID, on)
	if err != nil {
		return Adjustment{}, err
	}

	if description == "" {
		description = "Reconciliation"
	}
	adjustment := Adjustment{
		AccountID:   accountID,
		Date:        on,
		Amount:      asserted.Sub(projected),
		Description: description,
	}
	if adjustment.Amount.IsZero() {
		// Already reconciled, nothing worth persisting.
		return adjustment, nil
	}

	if err := r.store.SaveAdjustment(ctx, &adjustment); err != nil {
		return Adjustment{}, fmt.Errorf("saving reconciliation adjustment: %w", err)
	}
	return adjustment, nil
}
