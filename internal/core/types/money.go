// Package types provides common value types shared across the domain.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal so values survive the API boundary as exact
// base-10 strings, never binary floats.
type Money = decimal.Decimal

// NewMoneyFromString creates a Money value from a fixed-point decimal string.
// This is the preferred constructor for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ZeroMoney returns zero Money value.
func ZeroMoney() Money {
	return decimal.Zero
}

// Percent applies a percentage to a monetary value and rounds to cents.
// Percent(100.00, 28) = 28.00.
func Percent(value Money, percent Money) Money {
	return value.Mul(percent).Div(decimal.NewFromInt(100)).Round(2)
}
