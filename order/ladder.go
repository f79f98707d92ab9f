package order

import (
	"github.com/shopspring/decimal"

	"deriv-maker-go/decmath"
)

// LadderInput describes one side of a requote.
type LadderInput struct {
	Side Side
	// Head is the level closest to the reservation price, Tail the
	// farthest.
	Head decimal.Decimal
	Tail decimal.Decimal
	// Alloc is the capital available for fresh exposure on this side.
	Alloc decimal.Decimal
	// PositionQty is the open quantity this side should flatten. When
	// positive the ladder is built reduce-only from it and Alloc is
	// ignored.
	PositionQty decimal.Decimal
	Leverage    decimal.Decimal
	Density     int
}

// BuildLadder spreads Density levels evenly from head to tail, both
// inclusive. Quantity per level comes from the position quantity when
// flattening, otherwise from leveraged allocated capital valued at the
// head. A zero basis yields no ladder at all rather than empty levels.
func BuildLadder(in LadderInput) []Level {
	if in.Density <= 0 {
		return nil
	}
	density := decimal.NewFromInt(int64(in.Density))

	var qty decimal.Decimal
	reduceOnly := false
	switch {
	case in.PositionQty.IsPositive():
		qty = in.PositionQty.Div(density)
		reduceOnly = true
	case in.Alloc.IsPositive():
		qty = decmath.SafeDiv(in.Alloc.Mul(in.Leverage), in.Head).Div(density)
	}
	if !qty.IsPositive() {
		return nil
	}

	levels := make([]Level, 0, in.Density)
	if in.Density == 1 {
		return append(levels, Level{Side: in.Side, Price: in.Head, Quantity: qty, ReduceOnly: reduceOnly})
	}

	step := in.Tail.Sub(in.Head).Div(density.Sub(decimal.NewFromInt(1)))
	for i := 0; i < in.Density; i++ {
		price := in.Head.Add(step.Mul(decimal.NewFromInt(int64(i))))
		if i == in.Density-1 {
			price = in.Tail
		}
		levels = append(levels, Level{Side: in.Side, Price: price, Quantity: qty, ReduceOnly: reduceOnly})
	}
	return levels
}
