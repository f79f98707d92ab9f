package order

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestBuildLadderCapitalBasis(t *testing.T) {
	levels := BuildLadder(LadderInput{
		Side:     Buy,
		Head:     decimal.NewFromInt(100),
		Tail:     decimal.NewFromInt(97),
		Alloc:    decimal.NewFromInt(6000),
		Leverage: decimal.NewFromInt(2),
		Density:  4,
	})
	if len(levels) != 4 {
		t.Fatalf("got %d levels, want 4", len(levels))
	}

	wantPrices := []string{"100", "99", "98", "97"}
	for i, p := range wantPrices {
		if !levels[i].Price.Equal(decimal.RequireFromString(p)) {
			t.Errorf("level %d price = %s, want %s", i, levels[i].Price, p)
		}
	}

	// 6000 * 2 / 100 / 4 = 30 per level.
	for i := range levels {
		if !levels[i].Quantity.Equal(decimal.NewFromInt(30)) {
			t.Errorf("level %d quantity = %s, want 30", i, levels[i].Quantity)
		}
		if levels[i].ReduceOnly {
			t.Errorf("level %d reduce-only on capital basis", i)
		}
		if levels[i].Side != Buy {
			t.Errorf("level %d side = %s, want BUY", i, levels[i].Side)
		}
	}
}

func TestBuildLadderFlattenBasis(t *testing.T) {
	levels := BuildLadder(LadderInput{
		Side:        Sell,
		Head:        decimal.NewFromInt(101),
		Tail:        decimal.NewFromInt(104),
		Alloc:       decimal.NewFromInt(6000),
		PositionQty: decimal.NewFromInt(8),
		Leverage:    decimal.NewFromInt(2),
		Density:     4,
	})
	if len(levels) != 4 {
		t.Fatalf("got %d levels, want 4", len(levels))
	}
	for i := range levels {
		if !levels[i].Quantity.Equal(decimal.NewFromInt(2)) {
			t.Errorf("level %d quantity = %s, want 2", i, levels[i].Quantity)
		}
		if !levels[i].ReduceOnly {
			t.Errorf("level %d not reduce-only on flatten basis", i)
		}
	}
	if !levels[0].Price.Equal(decimal.NewFromInt(101)) || !levels[3].Price.Equal(decimal.NewFromInt(104)) {
		t.Errorf("endpoints = %s..%s, want 101..104", levels[0].Price, levels[3].Price)
	}
}

func TestBuildLadderSingleLevel(t *testing.T) {
	levels := BuildLadder(LadderInput{
		Side:     Buy,
		Head:     decimal.NewFromInt(3999),
		Tail:     decimal.NewFromInt(3800),
		Alloc:    decimal.NewFromInt(3999),
		Leverage: decimal.NewFromInt(1),
		Density:  1,
	})
	if len(levels) != 1 {
		t.Fatalf("got %d levels, want 1", len(levels))
	}
	if !levels[0].Price.Equal(decimal.NewFromInt(3999)) {
		t.Errorf("single level price = %s, want head 3999", levels[0].Price)
	}
	if !levels[0].Quantity.Equal(decimal.NewFromInt(1)) {
		t.Errorf("single level quantity = %s, want 1", levels[0].Quantity)
	}
}

func TestBuildLadderTailEndpointExact(t *testing.T) {
	// Step 1/3 does not divide evenly; the last level must still land
	// exactly on the tail.
	levels := BuildLadder(LadderInput{
		Side:     Sell,
		Head:     decimal.NewFromInt(1),
		Tail:     decimal.NewFromInt(2),
		Alloc:    decimal.NewFromInt(100),
		Leverage: decimal.NewFromInt(1),
		Density:  4,
	})
	if len(levels) != 4 {
		t.Fatalf("got %d levels, want 4", len(levels))
	}
	if !levels[3].Price.Equal(decimal.NewFromInt(2)) {
		t.Errorf("tail level price = %s, want exactly 2", levels[3].Price)
	}
}

func TestBuildLadderZeroBasis(t *testing.T) {
	levels := BuildLadder(LadderInput{
		Side:     Buy,
		Head:     decimal.NewFromInt(100),
		Tail:     decimal.NewFromInt(97),
		Leverage: decimal.NewFromInt(2),
		Density:  4,
	})
	if len(levels) != 0 {
		t.Fatalf("zero basis built %d levels, want none", len(levels))
	}
}

func TestBuildLadderZeroHead(t *testing.T) {
	// A degenerate head price cannot be valued against; no ladder.
	levels := BuildLadder(LadderInput{
		Side:     Buy,
		Head:     decimal.Zero,
		Tail:     decimal.NewFromInt(1),
		Alloc:    decimal.NewFromInt(100),
		Leverage: decimal.NewFromInt(1),
		Density:  2,
	})
	if len(levels) != 0 {
		t.Fatalf("zero head built %d levels, want none", len(levels))
	}
}
