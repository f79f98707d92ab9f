package strategy

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestReservationPrice(t *testing.T) {
	cases := []struct {
		name      string
		mid       string
		imbalance string
		vol       string
		param     string
		isLong    bool
		want      string
	}{
		{"no imbalance pins the mid", "4000", "0", "2", "0.5", false, "4000"},
		{"long shifts down", "4000", "0.5", "2", "0.4", true, "3999.6"},
		{"short shifts up", "4000", "0.5", "2", "0.4", false, "4000.4"},
		{"full imbalance", "4000", "1", "10", "0.5", true, "3995"},
		{"zero volatility leaves mid", "4000", "0.5", "0", "0.4", true, "4000"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ReservationPrice(
				decimal.RequireFromString(tc.mid),
				decimal.RequireFromString(tc.imbalance),
				decimal.RequireFromString(tc.vol),
				decimal.RequireFromString(tc.param),
				tc.isLong,
			)
			if !got.Equal(decimal.RequireFromString(tc.want)) {
				t.Errorf("ReservationPrice = %s, want %s", got, tc.want)
			}
		})
	}
}
