package strategy

import "github.com/shopspring/decimal"

// ReservationPrice is the center the quote ladders are built around.
// With no imbalance it is the mid itself; a long imbalance shifts it
// down by imbalance*volatility*reservationParam, a short one shifts it
// up by the same amount.
func ReservationPrice(mid, imbalance, volatility, reservationParam decimal.Decimal, isLong bool) decimal.Decimal {
	if imbalance.IsZero() {
		return mid
	}
	shift := imbalance.Mul(volatility).Mul(reservationParam)
	if isLong {
		return mid.Sub(shift)
	}
	return mid.Add(shift)
}
