package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPositionFlat(t *testing.T) {
	var nilPos *Position
	if !nilPos.Flat() {
		t.Error("nil position not flat")
	}
	if !(&Position{}).Flat() {
		t.Error("zero-quantity position not flat")
	}
	p := &Position{Quantity: decimal.NewFromInt(1)}
	if p.Flat() {
		t.Error("open position reported flat")
	}
}

func TestPositionNotional(t *testing.T) {
	p := &Position{IsLong: true, Quantity: decimal.NewFromInt(3), EntryPrice: decimal.NewFromInt(200)}
	if got := p.Notional(decimal.NewFromInt(999)); !got.Equal(decimal.NewFromInt(600)) {
		t.Errorf("notional = %s, want 600", got)
	}

	// Unknown entry price values at mark.
	p = &Position{IsLong: true, Quantity: decimal.NewFromInt(3)}
	if got := p.Notional(decimal.NewFromInt(200)); !got.Equal(decimal.NewFromInt(600)) {
		t.Errorf("notional at mark = %s, want 600", got)
	}

	var nilPos *Position
	if got := nilPos.Notional(decimal.NewFromInt(200)); !got.IsZero() {
		t.Errorf("nil notional = %s, want 0", got)
	}
}
