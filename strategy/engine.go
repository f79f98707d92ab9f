package strategy

import (
	"time"

	"github.com/shopspring/decimal"

	"deriv-maker-go/inventory"
	"deriv-maker-go/market"
	"deriv-maker-go/order"
	"deriv-maker-go/risk"
)

// Inputs is everything one decision needs. Now anchors the staleness
// check so Decide itself never reads a clock.
type Inputs struct {
	Snapshot market.Snapshot
	Position *inventory.Position
	Deposit  inventory.Deposit
	Resting  []order.Resting
	Now      time.Time
}

// Engine turns market state into batch order plans for a single
// market. Decide is pure; clocks, venues, logs and metrics live with
// the caller.
type Engine struct {
	marketID string
	params   risk.Params
}

// New builds an engine for one market, rejecting invalid parameters.
func New(marketID string, params risk.Params) (*Engine, error) {
	if marketID == "" {
		return nil, risk.ErrInvalid("marketID must not be empty")
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Engine{marketID: marketID, params: params}, nil
}

// MarketID returns the market this engine quotes.
func (e *Engine) MarketID() string { return e.marketID }

// Params returns the engine's risk parameters.
func (e *Engine) Params() risk.Params { return e.params }

// Decide runs the quoting pipeline once. It returns an empty plan when
// neither head moved past the tolerance, and a cancel-all-plus-ladders
// plan when either did. The only errors are snapshot guards; valid
// inputs never fail.
func (e *Engine) Decide(in Inputs) (order.Plan, error) {
	snap := in.Snapshot
	if !snap.MidPrice.IsPositive() || snap.Volatility.IsNegative() {
		return order.Plan{}, ErrInvalidSnapshot
	}
	if snap.Stale(in.Now, e.params.MaxMarketDataDelay) {
		return order.Plan{}, ErrStaleMarketData
	}

	imb, isLong := inventory.Imbalance(in.Position, in.Deposit.TotalBalance, snap.MidPrice)
	reservation := ReservationPrice(snap.MidPrice, imb, snap.Volatility, e.params.ReservationParam, isLong)
	buyHead, sellHead := HeadPrices(reservation, snap.Volatility, e.params.SpreadParam)

	buys, sells := order.Split(in.Resting)
	replaceBuys := ShouldReplace(buys, buyHead, e.params.HeadChangeTolerance)
	replaceSells := ShouldReplace(sells, sellHead, e.params.HeadChangeTolerance)
	if !replaceBuys && !replaceSells {
		return order.Plan{}, nil
	}

	// One tripped gate replaces both sides.
	buyTail, sellTail := TailPrices(buyHead, sellHead, snap.MidPrice, e.params.TailDistanceFromMid, e.params.MinTailDistance)
	creates := order.BuildLadder(e.ladderInput(order.Buy, buyHead, buyTail, in))
	creates = append(creates, order.BuildLadder(e.ladderInput(order.Sell, sellHead, sellTail, in))...)

	return order.Plan{
		CancelAllMarketIDs: []string{e.marketID},
		Creates:            creates,
	}, nil
}

// ladderInput applies the side-to-basis rule: the side matching the
// position direction quotes fresh capital net of the position margin,
// the opposing side quotes the position quantity reduce-only.
func (e *Engine) ladderInput(side order.Side, head, tail decimal.Decimal, in Inputs) order.LadderInput {
	var margin, positionQty decimal.Decimal
	if !in.Position.Flat() {
		if in.Position.IsLong == (side == order.Buy) {
			margin = in.Position.Margin
		} else {
			positionQty = in.Position.Quantity
		}
	}
	return order.LadderInput{
		Side:        side,
		Head:        head,
		Tail:        tail,
		Alloc:       risk.AllocatedCapital(in.Deposit.TotalBalance, margin, e.params.ActiveCapital),
		PositionQty: positionQty,
		Leverage:    e.params.Leverage,
		Density:     e.params.OrderDensity,
	}
}
