// Package finanzas provides the accounting core of a personal finance
// manager. It is designed to be local-first and auditable: every balance is
// recomputed deterministically from the recorded history, never cached.
//
// The core functionalities include:
//   - Ledger Projection: Merging one-time transactions, reconciliation
//     adjustments, and recurring rule occurrences into a single
//     chronologically ordered event stream with a running balance.
//   - Recurrence Expansion: Lazily expanding a recurring rule (weekly up to
//     annual cadence) into dated occurrences for any query window.
//   - Reconciliation: Forcing a projected balance to match a user-asserted
//     real-world balance via a single additive correction entry.
//   - Loan Amortization: Generating period-by-period principal/interest
//     schedules with the annuity method, including recalculation of all
//     future periods after a past period is edited.
//
// All money and rate arithmetic uses exact decimals; binary floating point
// never enters a balance. Persistence is abstracted behind the Store
// interface so the engine can be driven by the SQLite store or an in-memory
// fake alike.
//
// This package serves as the foundational logic for the `fin` command-line
// tool.
package finanzas
