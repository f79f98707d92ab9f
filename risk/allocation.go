package risk

import "github.com/shopspring/decimal"

// AllocatedCapital returns the account slice available for fresh
// quotes: total balance times the active-capital fraction, less margin
// already committed to the position, floored at zero.
func AllocatedCapital(total, margin, activeCapital decimal.Decimal) decimal.Decimal {
	alloc := total.Mul(activeCapital).Sub(margin)
	if alloc.IsNegative() {
		return decimal.Zero
	}
	return alloc
}
