package risk

import (
	"github.com/shopspring/decimal"

	"deriv-maker-go/decmath"
)

// EnforceTailFloor keeps a proposed tail price at least minTailDist
// away from its head, relative to the head. Proposals already far
// enough pass through untouched; anything closer snaps to the floor
// price head*(1-minTailDist) for buys, head*(1+minTailDist) for sells.
func EnforceTailFloor(head, proposed, minTailDist decimal.Decimal, isBuy bool) decimal.Decimal {
	if isBuy {
		if decmath.SafeDiv(head.Sub(proposed), head).LessThan(minTailDist) {
			return head.Mul(one.Sub(minTailDist))
		}
		return proposed
	}
	if decmath.SafeDiv(proposed.Sub(head), head).LessThan(minTailDist) {
		return head.Mul(one.Add(minTailDist))
	}
	return proposed
}
