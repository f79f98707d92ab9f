// Package decmath collects the small decimal helpers the quoting math
// leans on. Division by zero is defined here (it yields zero) so the
// pipeline never has to branch on degenerate denominators.
package decmath

import "github.com/shopspring/decimal"

var basisPointsPerUnit = decimal.NewFromInt(10_000)

// SubAbs returns |a - b|.
func SubAbs(a, b decimal.Decimal) decimal.Decimal {
	return a.Sub(b).Abs()
}

// SafeDiv returns n/d, or zero when the denominator is zero.
func SafeDiv(n, d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return decimal.Zero
	}
	return n.Div(d)
}

// FromBasisPoints converts a basis-point quantity into a fraction,
// e.g. 100 bp -> 0.01.
func FromBasisPoints(bp decimal.Decimal) decimal.Decimal {
	return bp.Div(basisPointsPerUnit)
}
