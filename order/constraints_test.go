package order

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestMarketConstraintsSnap(t *testing.T) {
	c := MarketConstraints{
		TickSize: decimal.RequireFromString("0.5"),
		StepSize: decimal.RequireFromString("0.1"),
	}

	buy := c.Snap(Level{Side: Buy, Price: decimal.RequireFromString("3999.74"), Quantity: decimal.RequireFromString("2.37")})
	if !buy.Price.Equal(decimal.RequireFromString("3999.5")) {
		t.Errorf("buy price snapped to %s, want 3999.5 (down)", buy.Price)
	}
	if !buy.Quantity.Equal(decimal.RequireFromString("2.3")) {
		t.Errorf("quantity snapped to %s, want 2.3 (down)", buy.Quantity)
	}

	sell := c.Snap(Level{Side: Sell, Price: decimal.RequireFromString("4000.26"), Quantity: decimal.RequireFromString("2.37")})
	if !sell.Price.Equal(decimal.RequireFromString("4000.5")) {
		t.Errorf("sell price snapped to %s, want 4000.5 (up)", sell.Price)
	}

	aligned := c.Snap(Level{Side: Buy, Price: decimal.RequireFromString("4000.5"), Quantity: decimal.RequireFromString("2.3")})
	if !aligned.Price.Equal(decimal.RequireFromString("4000.5")) || !aligned.Quantity.Equal(decimal.RequireFromString("2.3")) {
		t.Errorf("aligned level moved: %s @ %s", aligned.Quantity, aligned.Price)
	}
}

func TestMarketConstraintsValidate(t *testing.T) {
	c := MarketConstraints{
		MinQuantity: decimal.RequireFromString("0.01"),
		MinNotional: decimal.NewFromInt(10),
	}

	ok := Level{Side: Buy, Price: decimal.NewFromInt(4000), Quantity: decimal.NewFromInt(1)}
	if err := c.Validate(ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Validate(Level{Side: Buy, Price: decimal.NewFromInt(4000), Quantity: decimal.Zero}); err == nil {
		t.Fatal("expected zero quantity error")
	}
	if err := c.Validate(Level{Side: Buy, Price: decimal.NewFromInt(4000), Quantity: decimal.RequireFromString("0.001")}); err == nil {
		t.Fatal("expected min quantity error")
	}
	if err := c.Validate(Level{Side: Buy, Price: decimal.NewFromInt(100), Quantity: decimal.RequireFromString("0.05")}); err == nil {
		t.Fatal("expected min notional error")
	}
}
