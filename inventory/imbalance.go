package inventory

import (
	"github.com/shopspring/decimal"

	"deriv-maker-go/decmath"
)

var one = decimal.NewFromInt(1)

// Imbalance measures how much of the account the open position ties up:
// position notional over total balance, clamped into [0, 1]. The second
// return mirrors the position direction and is false when flat.
func Imbalance(pos *Position, totalBalance, mark decimal.Decimal) (decimal.Decimal, bool) {
	if pos.Flat() {
		return decimal.Zero, false
	}

	imb := decmath.SafeDiv(pos.Notional(mark), totalBalance)
	if imb.GreaterThan(one) {
		imb = one
	}
	if imb.IsNegative() {
		imb = decimal.Zero
	}
	return imb, pos.IsLong
}
