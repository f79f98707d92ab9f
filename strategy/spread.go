package strategy

import (
	"github.com/shopspring/decimal"

	"deriv-maker-go/decmath"
	"deriv-maker-go/risk"
)

var (
	one = decimal.NewFromInt(1)
	two = decimal.NewFromInt(2)
)

// HeadPrices places the inner quote of each ladder half the
// volatility-scaled spread away from the reservation price.
func HeadPrices(reservation, volatility, spreadParam decimal.Decimal) (buyHead, sellHead decimal.Decimal) {
	half := decmath.SafeDiv(volatility.Mul(spreadParam), two)
	return reservation.Sub(half), reservation.Add(half)
}

// TailPrices proposes tails a fixed fraction away from the mid, then
// holds each at least the minimum distance from its head.
func TailPrices(buyHead, sellHead, mid, tailDist, minTailDist decimal.Decimal) (buyTail, sellTail decimal.Decimal) {
	buyTail = risk.EnforceTailFloor(buyHead, mid.Mul(one.Sub(tailDist)), minTailDist, true)
	sellTail = risk.EnforceTailFloor(sellHead, mid.Mul(one.Add(tailDist)), minTailDist, false)
	return buyTail, sellTail
}
