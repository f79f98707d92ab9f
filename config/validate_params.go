package config

import (
	"time"

	"github.com/shopspring/decimal"

	"deriv-maker-go/decmath"
	"deriv-maker-go/order"
	"deriv-maker-go/risk"
)

// RiskParams converts the textual risk section into validated engine
// parameters. Basis-point fields are divided down to fractions here,
// exactly once; nothing past this function ever sees basis points.
func (c AppConfig) RiskParams() (risk.Params, error) {
	leverage, err := parseDecimal("risk.leverage", c.Risk.Leverage)
	if err != nil {
		return risk.Params{}, err
	}
	reservation, err := parseDecimal("risk.reservationParam", c.Risk.ReservationParam)
	if err != nil {
		return risk.Params{}, err
	}
	spread, err := parseDecimal("risk.spreadParam", c.Risk.SpreadParam)
	if err != nil {
		return risk.Params{}, err
	}
	active, err := parseDecimal("risk.activeCapital", c.Risk.ActiveCapital)
	if err != nil {
		return risk.Params{}, err
	}
	tolBps, err := parseDecimal("risk.headChangeToleranceBps", c.Risk.HeadChangeToleranceBps)
	if err != nil {
		return risk.Params{}, err
	}
	tailBps, err := parseDecimal("risk.tailDistanceFromMidBps", c.Risk.TailDistanceFromMidBps)
	if err != nil {
		return risk.Params{}, err
	}
	minTailBps, err := parseDecimal("risk.minTailDistanceBps", c.Risk.MinTailDistanceBps)
	if err != nil {
		return risk.Params{}, err
	}

	params := risk.Params{
		Leverage:            leverage,
		OrderDensity:        c.Risk.OrderDensity,
		MaxMarketDataDelay:  time.Duration(c.Risk.MaxMarketDataDelayMs) * time.Millisecond,
		ReservationParam:    reservation,
		SpreadParam:         spread,
		ActiveCapital:       active,
		HeadChangeTolerance: decmath.FromBasisPoints(tolBps),
		TailDistanceFromMid: decmath.FromBasisPoints(tailBps),
		MinTailDistance:     decmath.FromBasisPoints(minTailBps),
	}
	if err := params.Validate(); err != nil {
		return risk.Params{}, err
	}
	return params, nil
}

// Constraints converts the market grid section. Empty fields mean the
// venue imposes no bound on that axis.
func (c AppConfig) Constraints() (order.MarketConstraints, error) {
	tick, err := parseOptionalDecimal("market.tickSize", c.Market.TickSize)
	if err != nil {
		return order.MarketConstraints{}, err
	}
	step, err := parseOptionalDecimal("market.stepSize", c.Market.StepSize)
	if err != nil {
		return order.MarketConstraints{}, err
	}
	minQty, err := parseOptionalDecimal("market.minQuantity", c.Market.MinQuantity)
	if err != nil {
		return order.MarketConstraints{}, err
	}
	minNotional, err := parseOptionalDecimal("market.minNotional", c.Market.MinNotional)
	if err != nil {
		return order.MarketConstraints{}, err
	}
	return order.MarketConstraints{
		TickSize:    tick,
		StepSize:    step,
		MinQuantity: minQty,
		MinNotional: minNotional,
	}, nil
}

func parseDecimal(field, raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Decimal{}, ErrInvalid(field + " is required")
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, ErrInvalid(field + ": malformed decimal " + raw)
	}
	return d, nil
}

func parseOptionalDecimal(field, raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return parseDecimal(field, raw)
}
