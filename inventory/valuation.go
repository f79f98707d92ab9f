package inventory

import "github.com/shopspring/decimal"

// UnrealizedPnL marks the position against mid. Long positions profit
// when mid is above entry, short when below. Flat positions and
// positions with no recorded entry value to zero.
func (p *Position) UnrealizedPnL(mid decimal.Decimal) decimal.Decimal {
	if p.Flat() || p.EntryPrice.IsZero() {
		return decimal.Zero
	}
	diff := mid.Sub(p.EntryPrice)
	if !p.IsLong {
		diff = diff.Neg()
	}
	return diff.Mul(p.Quantity)
}
