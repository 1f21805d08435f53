package kernel

import (
	"fmt"

	"parcelflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// moneyScale is the number of minor-unit digits kept for every amount.
const moneyScale = 2

// Money is a non-negative monetary amount with exact decimal arithmetic.
// Amounts are kept at cent precision; rounding is half-even so repeated
// settlements do not drift in either direction.
//
// The zero value is a valid zero amount.
type Money struct {
	amount decimal.Decimal
}

// NewMoney validates and rounds amount to cents.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount.String(), "0", "unbounded")
	}
	return Money{amount: amount.RoundBank(moneyScale)}, nil
}

// MoneyFromString parses a decimal string such as "100" or "12.50".
func MoneyFromString(s string) (Money, error) {
	if s == "" {
		return Money{}, errs.NewValueIsRequiredError("amount")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%q is not a decimal: %w", s, err))
	}
	return NewMoney(d)
}

// ZeroMoney returns an explicit zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// Amount exposes the decimal value for persistence.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// MulRate multiplies by a rate and rounds back to cents.
func (m Money) MulRate(rate decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(rate).RoundBank(moneyScale)}
}

// Add returns the sum of both amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// Equal compares amounts numerically, so "80" equals "80.00".
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String renders the amount with exactly two decimals.
func (m Money) String() string {
	return m.amount.StringFixed(moneyScale)
}
