package strategy

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestHeadPrices(t *testing.T) {
	buyHead, sellHead := HeadPrices(
		decimal.NewFromInt(4000),
		decimal.NewFromInt(2),
		decimal.NewFromInt(1),
	)
	if !buyHead.Equal(decimal.NewFromInt(3999)) {
		t.Errorf("buy head = %s, want 3999", buyHead)
	}
	if !sellHead.Equal(decimal.NewFromInt(4001)) {
		t.Errorf("sell head = %s, want 4001", sellHead)
	}
}

func TestHeadPricesZeroVolatility(t *testing.T) {
	buyHead, sellHead := HeadPrices(
		decimal.NewFromInt(4000),
		decimal.Zero,
		decimal.RequireFromString("0.5"),
	)
	if !buyHead.Equal(decimal.NewFromInt(4000)) || !sellHead.Equal(decimal.NewFromInt(4000)) {
		t.Errorf("heads = %s/%s, want 4000/4000", buyHead, sellHead)
	}
}

func TestTailPricesPassThrough(t *testing.T) {
	buyTail, sellTail := TailPrices(
		decimal.NewFromInt(3999),
		decimal.NewFromInt(4001),
		decimal.NewFromInt(4000),
		decimal.RequireFromString("0.05"),
		decimal.RequireFromString("0.01"),
	)
	if !buyTail.Equal(decimal.NewFromInt(3800)) {
		t.Errorf("buy tail = %s, want 3800", buyTail)
	}
	if !sellTail.Equal(decimal.NewFromInt(4200)) {
		t.Errorf("sell tail = %s, want 4200", sellTail)
	}
}

func TestTailPricesFloored(t *testing.T) {
	buyTail, sellTail := TailPrices(
		decimal.NewFromInt(3999),
		decimal.NewFromInt(4001),
		decimal.NewFromInt(4000),
		decimal.RequireFromString("0.001"),
		decimal.RequireFromString("0.01"),
	)
	// Proposals 3996/4004 sit closer than 1% of their heads, so each
	// snaps to head*(1 -/+ 0.01).
	if !buyTail.Equal(decimal.RequireFromString("3959.01")) {
		t.Errorf("buy tail = %s, want 3959.01", buyTail)
	}
	if !sellTail.Equal(decimal.RequireFromString("4041.01")) {
		t.Errorf("sell tail = %s, want 4041.01", sellTail)
	}
}
