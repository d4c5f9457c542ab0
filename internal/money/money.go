// Package money provides fixed-point monetary arithmetic.
//
// Amounts cross package boundaries as decimal.Decimal, but accumulation and
// tolerance checks happen in integer minor units (cents) so that comparisons
// against the 0.01 settlement threshold are exact rather than approximate.
package money

import "github.com/shopspring/decimal"

// Cents is a monetary amount in integer minor units (1/100 of the unit).
type Cents int64

var hundred = decimal.NewFromInt(100)

// ToCents converts a decimal amount to cents, rounding to two decimal
// places (half away from zero) first.
func ToCents(d decimal.Decimal) Cents {
	return Cents(d.Round(2).Mul(hundred).IntPart())
}

// Decimal converts cents back to a two-decimal-place amount.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// Abs returns the absolute value of c.
func (c Cents) Abs() Cents {
	if c < 0 {
		return -c
	}
	return c
}

// Round2 rounds a decimal amount to two decimal places, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
