package order

import (
	"testing"

	"github.com/shopspring/decimal"
)

func resting(hash string, side Side, price string) Resting {
	return Resting{
		OrderHash: hash,
		Side:      side,
		Price:     decimal.RequireFromString(price),
		Quantity:  decimal.NewFromInt(1),
	}
}

func TestSplitEmpty(t *testing.T) {
	buys, sells := Split(nil)
	if len(buys) != 0 || len(sells) != 0 {
		t.Fatalf("Split(nil) = %d buys, %d sells, want 0, 0", len(buys), len(sells))
	}
}

func TestSplitOrdering(t *testing.T) {
	orders := []Resting{
		resting("s1", Sell, "4010"),
		resting("b1", Buy, "3980"),
		resting("s2", Sell, "4005"),
		resting("b2", Buy, "3995"),
		resting("b3", Buy, "3990"),
	}
	buys, sells := Split(orders)

	wantBuys := []string{"b2", "b3", "b1"}
	if len(buys) != len(wantBuys) {
		t.Fatalf("got %d buys, want %d", len(buys), len(wantBuys))
	}
	for i, hash := range wantBuys {
		if buys[i].OrderHash != hash {
			t.Errorf("buys[%d] = %s, want %s", i, buys[i].OrderHash, hash)
		}
	}

	wantSells := []string{"s2", "s1"}
	for i, hash := range wantSells {
		if sells[i].OrderHash != hash {
			t.Errorf("sells[%d] = %s, want %s", i, sells[i].OrderHash, hash)
		}
	}

	// Heads sit at index zero.
	if !buys[0].Price.Equal(decimal.NewFromInt(3995)) {
		t.Errorf("buy head = %s, want 3995", buys[0].Price)
	}
	if !sells[0].Price.Equal(decimal.NewFromInt(4005)) {
		t.Errorf("sell head = %s, want 4005", sells[0].Price)
	}
}

func TestSplitStableTies(t *testing.T) {
	orders := []Resting{
		resting("first", Buy, "4000"),
		resting("second", Buy, "4000"),
		resting("third", Buy, "4000"),
	}
	buys, _ := Split(orders)
	for i, hash := range []string{"first", "second", "third"} {
		if buys[i].OrderHash != hash {
			t.Errorf("buys[%d] = %s, want %s (ties must keep input order)", i, buys[i].OrderHash, hash)
		}
	}
}
