package strategy

import (
	"github.com/shopspring/decimal"

	"deriv-maker-go/decmath"
	"deriv-maker-go/order"
)

// ShouldReplace reports whether a side's ladder must be rebuilt: always
// when nothing rests on that side, otherwise when the head moved more
// than tolerance relative to the old head. A move exactly at tolerance
// stays put.
func ShouldReplace(restingSide []order.Resting, newHead, tolerance decimal.Decimal) bool {
	if len(restingSide) == 0 {
		return true
	}
	oldHead := restingSide[0].Price
	change := decmath.SafeDiv(decmath.SubAbs(oldHead, newHead), oldHead)
	return change.GreaterThan(tolerance)
}
