package valueobject

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Money is a value object representing a monetary amount in integer minor
// units (cents). All arithmetic stays in minor units so there is no rounding
// behavior anywhere in the domain; decimal conversion exists only for display.
// It is immutable - all operations return new Money instances.
type Money struct {
	minorUnits int64
}

// NewMoney creates Money from an integer minor-unit count.
func NewMoney(minorUnits int64) Money {
	return Money{minorUnits: minorUnits}
}

// Zero returns a zero-valued Money.
func Zero() Money {
	return Money{}
}

// MinorUnits returns the raw minor-unit count.
func (m Money) MinorUnits() int64 {
	return m.minorUnits
}

// Add returns the sum of two Money values.
func (m Money) Add(other Money) Money {
	return Money{minorUnits: m.minorUnits + other.minorUnits}
}

// Sub returns the difference of two Money values.
func (m Money) Sub(other Money) Money {
	return Money{minorUnits: m.minorUnits - other.minorUnits}
}

// Neg returns the negated Money value.
func (m Money) Neg() Money {
	return Money{minorUnits: -m.minorUnits}
}

// Min returns the smaller of two Money values.
func (m Money) Min(other Money) Money {
	if other.minorUnits < m.minorUnits {
		return other
	}
	return m
}

// IsNegative returns true if the amount is below zero.
func (m Money) IsNegative() bool {
	return m.minorUnits < 0
}

// IsPositive returns true if the amount is above zero.
func (m Money) IsPositive() bool {
	return m.minorUnits > 0
}

// IsZero returns true if the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.minorUnits == 0
}

// Decimal returns the amount in major units as an exact decimal.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.minorUnits, -2)
}

// String formats the amount in major units, e.g. 700 -> "7.00".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// MarshalJSON renders the amount as a decimal string for API consumers.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}
