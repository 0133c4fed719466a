package bank

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a fixed-point amount held in minor units (two decimal
// places). Arithmetic on Money is plain integer arithmetic, so values
// representable with two decimal digits never lose precision.
type Money int64

// Operation ceilings. Account opening has no upper ceiling; only
// deposits and withdrawals are capped.
const (
	MaxDeposit    Money = 50_000 * 100
	MaxWithdrawal Money = 20_000 * 100
)

var centsFactor = decimal.NewFromInt(100)

// FromMajor converts whole currency units into Money.
func FromMajor(units int64) Money {
	return Money(units * 100)
}

// ParseAmount converts a user-entered decimal string ("1234.50") into
// Money. More than two decimal places is rejected rather than rounded.
func ParseAmount(s string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	cents := d.Mul(centsFactor)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("amount %q has more than two decimal places", s)
	}
	bi := cents.BigInt()
	if !bi.IsInt64() {
		return 0, fmt.Errorf("amount %q out of range", s)
	}
	return Money(bi.Int64()), nil
}

// Decimal returns the amount as an exact two-decimal value.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// String renders the amount with exactly two decimal places.
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// Signed renders the amount with an explicit leading sign, as used in
// statement lines ("+500.00", "-200.00").
func (m Money) Signed() string {
	if m >= 0 {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) IsPositive() bool { return m > 0 }

// Abs returns the magnitude of the amount.
func (m Money) Abs() Money {
	if m < 0 {
		return -m
	}
	return m
}

// MarshalJSON emits the amount as a decimal string so API payloads carry
// "500.00" rather than raw minor units.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts a decimal string with at most two decimal places.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	v, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
