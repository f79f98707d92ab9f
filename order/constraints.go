package order

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MarketConstraints describe the venue grid for a market: price tick,
// quantity step and the smallest order it accepts.
type MarketConstraints struct {
	TickSize    decimal.Decimal
	StepSize    decimal.Decimal
	MinQuantity decimal.Decimal
	MinNotional decimal.Decimal
}

// Snap aligns a level to the venue grid. Buy prices round down to the
// tick and sell prices up, so a snapped quote never crosses tighter
// than intended. Quantity always rounds down to the step.
func (c MarketConstraints) Snap(l Level) Level {
	if c.TickSize.IsPositive() {
		ticks := l.Price.Div(c.TickSize)
		if l.Side == Buy {
			ticks = ticks.Floor()
		} else {
			ticks = ticks.Ceil()
		}
		l.Price = ticks.Mul(c.TickSize)
	}
	if c.StepSize.IsPositive() {
		l.Quantity = l.Quantity.Div(c.StepSize).Floor().Mul(c.StepSize)
	}
	return l
}

// Validate rejects levels the venue would refuse.
func (c MarketConstraints) Validate(l Level) error {
	if !l.Quantity.IsPositive() {
		return fmt.Errorf("quantity %s is not positive", l.Quantity)
	}
	if c.MinQuantity.IsPositive() && l.Quantity.LessThan(c.MinQuantity) {
		return fmt.Errorf("quantity %s < minQuantity %s", l.Quantity, c.MinQuantity)
	}
	if c.MinNotional.IsPositive() && l.Price.Mul(l.Quantity).LessThan(c.MinNotional) {
		return fmt.Errorf("notional %s < minNotional %s", l.Price.Mul(l.Quantity), c.MinNotional)
	}
	return nil
}
