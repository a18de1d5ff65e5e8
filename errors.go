package finanzas

import (
	"errors"
	"fmt"
)

// ErrAccountNotFound is returned when an account reference does not resolve.
// It is fatal to the current operation only.
var ErrAccountNotFound = errors.New("account not found")

// ErrLoanNotFound is returned when a loan reference does not resolve.
var ErrLoanNotFound = errors.New("loan not found")

func errUnknownRateKind(s string) error {
	return fmt.Errorf("unknown rate kind %q (want %q or %q)", s, FixedRate, VariableRate)
}
