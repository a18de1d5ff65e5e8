package finanzas

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Rate is a nominal annual interest rate in percent (3 means 3% a year).
// It is kept exact so monthly simulation does not drift.
type Rate struct {
	value decimal.Decimal
}

func R[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Rate {
	return Rate{value: newDecimal(value)}
}

// ParseRate parses a decimal percent string like "3.25".
func ParseRate(s string) (Rate, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Rate{}, fmt.Errorf("invalid rate %q: %w", s, err)
	}
	return Rate{value: d}, nil
}

func (r Rate) Equal(q Rate) bool { return r.value.Equal(q.value) }
func (r Rate) IsZero() bool      { return r.value.IsZero() }

func (r Rate) String() string {
	return r.value.StringFixed(2) + "%"
}

// Monthly returns the periodic rate as a plain ratio: annual% / 12 / 100.
func (r Rate) Monthly() decimal.Decimal {
	return r.value.Div(decimal.NewFromInt(1200))
}

// Persist returns the exact decimal representation used in storage.
func (r Rate) Persist() string { return r.value.String() }
