package gateway

import (
	"context"

	"deriv-maker-go/order"
)

// Account identifies the subaccount orders are booked against.
type Account struct {
	SubaccountID string
	FeeRecipient string
}

// OrderCreate is one order creation in venue wire form. Prices and
// quantities travel as decimal strings.
type OrderCreate struct {
	MarketID     string `json:"marketId"`
	SubaccountID string `json:"subaccountId"`
	FeeRecipient string `json:"feeRecipient"`
	Side         string `json:"side"`
	Price        string `json:"price"`
	Quantity     string `json:"quantity"`
	ReduceOnly   bool   `json:"reduceOnly,omitempty"`
}

// BatchUpdate is the venue order message: cancel everything resting in
// the listed markets, then create the listed orders, atomically.
type BatchUpdate struct {
	SubaccountID       string        `json:"subaccountId"`
	CancelAllMarketIDs []string      `json:"cancelAllMarketIds,omitempty"`
	Creates            []OrderCreate `json:"creates,omitempty"`
}

// Empty reports whether the batch carries no work.
func (b BatchUpdate) Empty() bool {
	return len(b.CancelAllMarketIDs) == 0 && len(b.Creates) == 0
}

// Venue is the order-side surface of the exchange.
type Venue interface {
	// SubmitBatch applies cancels and creates as one atomic update.
	SubmitBatch(ctx context.Context, batch BatchUpdate) error
	// RestingOrders returns the subaccount's open orders in a market.
	RestingOrders(ctx context.Context, marketID string) ([]order.Resting, error)
}

// PlanToBatch translates a decision plan into wire form. Each level is
// snapped to the market's tick and step sizes; levels failing venue
// minimums after snapping are dropped. Returns the batch and the number
// of dropped levels.
func PlanToBatch(plan order.Plan, marketID string, acct Account, cons order.MarketConstraints) (BatchUpdate, int) {
	batch := BatchUpdate{
		SubaccountID:       acct.SubaccountID,
		CancelAllMarketIDs: plan.CancelAllMarketIDs,
	}

	dropped := 0
	for _, lvl := range plan.Creates {
		snapped := cons.Snap(lvl)
		if err := cons.Validate(snapped); err != nil {
			dropped++
			continue
		}
		batch.Creates = append(batch.Creates, OrderCreate{
			MarketID:     marketID,
			SubaccountID: acct.SubaccountID,
			FeeRecipient: acct.FeeRecipient,
			Side:         string(snapped.Side),
			Price:        snapped.Price.String(),
			Quantity:     snapped.Quantity.String(),
			ReduceOnly:   snapped.ReduceOnly,
		})
	}

	return batch, dropped
}
