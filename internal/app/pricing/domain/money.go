package domain

import (
	"fmt"
	"math/big"
)

// CurrencyPlaces is the number of decimal places every chargeable amount is rounded to.
const CurrencyPlaces = 2

// Money represents a monetary value with precise decimal arithmetic.
// It uses big.Rat internally so intermediate results are never rounded.
// Money is immutable - all operations return new instances.
type Money struct {
	amount *big.Rat
}

// NewMoney creates a new Money instance from numerator and denominator.
// For example: NewMoney(1999, 100) represents 19.99
func NewMoney(numerator, denominator int64) *Money {
	if denominator == 0 {
		panic("money: denominator cannot be zero")
	}
	return &Money{
		amount: big.NewRat(numerator, denominator),
	}
}

// NewMoneyFromDecimal creates Money from a decimal string.
// For example: "19.99", "100.00", "0.01"
func NewMoneyFromDecimal(decimal string) (*Money, error) {
	rat := new(big.Rat)
	if _, ok := rat.SetString(decimal); !ok {
		return nil, fmt.Errorf("invalid decimal format: %s", decimal)
	}
	return &Money{amount: rat}, nil
}

// MustMoney is NewMoneyFromDecimal for literals known to be valid.
func MustMoney(decimal string) *Money {
	m, err := NewMoneyFromDecimal(decimal)
	if err != nil {
		panic(err)
	}
	return m
}

// NewMoneyFromRat creates Money from an existing big.Rat.
// The rat is copied to ensure immutability.
func NewMoneyFromRat(rat *big.Rat) *Money {
	if rat == nil {
		return Zero()
	}
	return &Money{
		amount: new(big.Rat).Set(rat),
	}
}

// Zero returns a Money instance representing zero.
func Zero() *Money {
	return &Money{amount: big.NewRat(0, 1)}
}

// Add returns a new Money that is the sum of m and other.
func (m *Money) Add(other *Money) *Money {
	return &Money{amount: new(big.Rat).Add(m.amount, other.amount)}
}

// Subtract returns a new Money that is the difference of m and other.
func (m *Money) Subtract(other *Money) *Money {
	return &Money{amount: new(big.Rat).Sub(m.amount, other.amount)}
}

// MultiplyByInt scales the amount by an integer factor, e.g. a line quantity.
func (m *Money) MultiplyByInt(n int) *Money {
	return &Money{amount: new(big.Rat).Mul(m.amount, big.NewRat(int64(n), 1))}
}

// MultiplyByFraction multiplies Money by a fraction (numerator/denominator).
// Percentages are expressed as MultiplyByFraction(p, 100).
func (m *Money) MultiplyByFraction(numerator, denominator int64) *Money {
	multiplier := big.NewRat(numerator, denominator)
	return &Money{amount: new(big.Rat).Mul(m.amount, multiplier)}
}

// Round returns the amount rounded to the given number of decimal places,
// with halves rounded away from zero (round-half-up for non-negative amounts).
func (m *Money) Round(places int) *Money {
	rat := new(big.Rat)
	rat.SetString(m.amount.FloatString(places))
	return &Money{amount: rat}
}

// RoundCurrency rounds to CurrencyPlaces.
func (m *Money) RoundCurrency() *Money {
	return m.Round(CurrencyPlaces)
}

// ClampZero returns m, or zero when m is negative.
func (m *Money) ClampZero() *Money {
	if m.IsNegative() {
		return Zero()
	}
	return m
}

// Min returns the smaller of m and other.
func (m *Money) Min(other *Money) *Money {
	if other.LessThan(m) {
		return other
	}
	return m
}

// IsZero returns true if the money amount is zero.
func (m *Money) IsZero() bool {
	return m.amount.Sign() == 0
}

// IsNegative returns true if the money amount is negative.
func (m *Money) IsNegative() bool {
	return m.amount.Sign() < 0
}

// IsPositive returns true if the money amount is positive.
func (m *Money) IsPositive() bool {
	return m.amount.Sign() > 0
}

// GreaterThan returns true if m is greater than other.
func (m *Money) GreaterThan(other *Money) bool {
	return m.amount.Cmp(other.amount) > 0
}

// LessThan returns true if m is less than other.
func (m *Money) LessThan(other *Money) bool {
	return m.amount.Cmp(other.amount) < 0
}

// Equals returns true if m equals other.
func (m *Money) Equals(other *Money) bool {
	if other == nil {
		return false
	}
	return m.amount.Cmp(other.amount) == 0
}

// Rat returns a copy of the internal big.Rat.
func (m *Money) Rat() *big.Rat {
	return new(big.Rat).Set(m.amount)
}

// String renders the amount with CurrencyPlaces decimals, e.g. "19.99".
func (m *Money) String() string {
	return m.amount.FloatString(CurrencyPlaces)
}

// FloatString returns a decimal string representation with the specified precision.
func (m *Money) FloatString(precision int) string {
	return m.amount.FloatString(precision)
}
