package kernel

import (
	"fmt"

	"colis/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// moneyPlaces is the currency precision used throughout the billing core.
// Every arithmetic result is rounded to this number of decimal places so
// that per-parcel tariffs and invoice totals agree digit for digit.
const moneyPlaces = 2

// Money is a value object for monetary amounts (prices, fees, payables).
// It is backed by a fixed-point decimal, never a float. The zero value is
// a valid zero amount.
//
// Money is immutable; arithmetic methods return new values.
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns a zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney creates a Money from a decimal, rounded to currency precision.
func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: amount.Round(moneyPlaces)}
}

// MoneyFromFloat creates a Money from a float64 amount. Intended for
// request payloads and test fixtures; storage uses MoneyFromString.
func MoneyFromFloat(amount float64) Money {
	return NewMoney(decimal.NewFromFloat(amount))
}

// MoneyFromString parses a decimal string such as "120.50".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%q is not a decimal amount", s))
	}
	return NewMoney(d), nil
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return NewMoney(m.amount.Add(other.amount))
}

// Sub returns the difference of two amounts. Negative results are legal:
// a refused low-price parcel can leave the merchant owing fees.
func (m Money) Sub(other Money) Money {
	return NewMoney(m.amount.Sub(other.amount))
}

// MulInt returns the amount multiplied by a whole count.
func (m Money) MulInt(n int64) Money {
	return NewMoney(m.amount.Mul(decimal.NewFromInt(n)))
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual reports whether two amounts are equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Decimal returns the underlying decimal for persistence mapping.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Float64 returns the amount as a float64 for response serialization.
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// String returns the fixed two-decimal string form, e.g. "35.00".
func (m Money) String() string {
	return m.amount.StringFixed(moneyPlaces)
}
