package risk

import (
	"time"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// Params are the validated risk parameters driving the quoting engine.
// Tolerances and distances are fractions; the config layer converts
// from basis points before anything reaches this struct. A Params value
// that passed Validate never causes the pipeline itself to error.
type Params struct {
	// Leverage scales capital-based order quantities.
	Leverage decimal.Decimal
	// OrderDensity is the number of levels per ladder side.
	OrderDensity int
	// MaxMarketDataDelay is the staleness budget for snapshots.
	MaxMarketDataDelay time.Duration
	// ReservationParam weights the inventory shift of the mid price.
	ReservationParam decimal.Decimal
	// SpreadParam weights volatility into the head half-spread.
	SpreadParam decimal.Decimal
	// ActiveCapital is the fraction of the account put to work.
	ActiveCapital decimal.Decimal
	// HeadChangeTolerance is the relative head move that forces a requote.
	HeadChangeTolerance decimal.Decimal
	// TailDistanceFromMid places ladder tails relative to the mid.
	TailDistanceFromMid decimal.Decimal
	// MinTailDistance is the floor between a head and its tail.
	MinTailDistance decimal.Decimal
}

// Validate checks every field range. It returns the first violation as
// an ErrInvalid naming the field.
func (p Params) Validate() error {
	if !p.Leverage.IsPositive() {
		return ErrInvalid("leverage must be > 0")
	}
	if p.OrderDensity <= 0 {
		return ErrInvalid("orderDensity must be > 0")
	}
	if p.MaxMarketDataDelay <= 0 {
		return ErrInvalid("maxMarketDataDelay must be > 0")
	}
	if p.ReservationParam.IsNegative() || p.ReservationParam.GreaterThan(one) {
		return ErrInvalid("reservationParam must be within [0, 1]")
	}
	if p.SpreadParam.IsNegative() || p.SpreadParam.GreaterThan(one) {
		return ErrInvalid("spreadParam must be within [0, 1]")
	}
	if p.ActiveCapital.IsNegative() || p.ActiveCapital.GreaterThan(one) {
		return ErrInvalid("activeCapital must be within [0, 1]")
	}
	if p.HeadChangeTolerance.IsNegative() || p.HeadChangeTolerance.GreaterThanOrEqual(one) {
		return ErrInvalid("headChangeTolerance must be within [0, 1)")
	}
	if !p.TailDistanceFromMid.IsPositive() || p.TailDistanceFromMid.GreaterThanOrEqual(one) {
		return ErrInvalid("tailDistanceFromMid must be within (0, 1)")
	}
	if !p.MinTailDistance.IsPositive() || p.MinTailDistance.GreaterThanOrEqual(one) {
		return ErrInvalid("minTailDistance must be within (0, 1)")
	}
	return nil
}
