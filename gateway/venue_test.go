package gateway

import (
	"testing"

	"github.com/shopspring/decimal"

	"deriv-maker-go/order"
)

func testConstraints() order.MarketConstraints {
	return order.MarketConstraints{
		TickSize:    decimal.RequireFromString("0.5"),
		StepSize:    decimal.RequireFromString("0.1"),
		MinQuantity: decimal.RequireFromString("0.5"),
		MinNotional: decimal.RequireFromString("100"),
	}
}

func TestPlanToBatchSnapsAndStamps(t *testing.T) {
	plan := order.Plan{
		CancelAllMarketIDs: []string{"0xM"},
		Creates: []order.Level{
			{Side: order.Buy, Price: decimal.RequireFromString("3999.74"), Quantity: decimal.RequireFromString("1.26")},
			{Side: order.Sell, Price: decimal.RequireFromString("4000.26"), Quantity: decimal.RequireFromString("1.21")},
		},
	}
	acct := Account{SubaccountID: "0xSUB", FeeRecipient: "inj1fee"}

	batch, dropped := PlanToBatch(plan, "0xM", acct, testConstraints())
	if dropped != 0 {
		t.Fatalf("dropped = %d, want 0", dropped)
	}
	if batch.SubaccountID != "0xSUB" {
		t.Errorf("batch subaccount = %s, want 0xSUB", batch.SubaccountID)
	}
	if len(batch.CancelAllMarketIDs) != 1 || batch.CancelAllMarketIDs[0] != "0xM" {
		t.Errorf("unexpected cancels: %v", batch.CancelAllMarketIDs)
	}
	if len(batch.Creates) != 2 {
		t.Fatalf("creates = %d, want 2", len(batch.Creates))
	}

	buy := batch.Creates[0]
	if buy.Side != "BUY" || buy.Price != "3999.5" || buy.Quantity != "1.2" {
		t.Errorf("buy wire = %s %s x %s", buy.Side, buy.Price, buy.Quantity)
	}
	if buy.MarketID != "0xM" || buy.SubaccountID != "0xSUB" || buy.FeeRecipient != "inj1fee" {
		t.Errorf("buy identity not stamped: %+v", buy)
	}

	sell := batch.Creates[1]
	if sell.Side != "SELL" || sell.Price != "4000.5" || sell.Quantity != "1.2" {
		t.Errorf("sell wire = %s %s x %s", sell.Side, sell.Price, sell.Quantity)
	}
}

func TestPlanToBatchDropsDust(t *testing.T) {
	plan := order.Plan{
		CancelAllMarketIDs: []string{"0xM"},
		Creates: []order.Level{
			{Side: order.Buy, Price: decimal.RequireFromString("4000"), Quantity: decimal.RequireFromString("1")},
			// Snaps to zero quantity.
			{Side: order.Sell, Price: decimal.RequireFromString("4200"), Quantity: decimal.RequireFromString("0.04")},
			// Below min notional: 4000 * 0.5 = 2000 is fine, use tiny price instead.
			{Side: order.Buy, Price: decimal.RequireFromString("10"), Quantity: decimal.RequireFromString("0.5")},
		},
	}

	batch, dropped := PlanToBatch(plan, "0xM", Account{}, testConstraints())
	if dropped != 2 {
		t.Fatalf("dropped = %d, want 2", dropped)
	}
	if len(batch.Creates) != 1 {
		t.Fatalf("creates = %d, want 1", len(batch.Creates))
	}
	if batch.Creates[0].Price != "4000" {
		t.Errorf("surviving create price = %s, want 4000", batch.Creates[0].Price)
	}
}

func TestPlanToBatchEmptyPlan(t *testing.T) {
	batch, dropped := PlanToBatch(order.Plan{}, "0xM", Account{}, testConstraints())
	if !batch.Empty() {
		t.Errorf("expected empty batch, got %+v", batch)
	}
	if dropped != 0 {
		t.Errorf("dropped = %d, want 0", dropped)
	}
}
