package risk

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func validParams() Params {
	return Params{
		Leverage:            decimal.NewFromInt(2),
		OrderDensity:        5,
		MaxMarketDataDelay:  10 * time.Second,
		ReservationParam:    decimal.RequireFromString("0.3"),
		SpreadParam:         decimal.RequireFromString("0.5"),
		ActiveCapital:       decimal.RequireFromString("0.8"),
		HeadChangeTolerance: decimal.RequireFromString("0.01"),
		TailDistanceFromMid: decimal.RequireFromString("0.05"),
		MinTailDistance:     decimal.RequireFromString("0.01"),
	}
}

func TestParamsValidateOK(t *testing.T) {
	if err := validParams().Validate(); err != nil {
		t.Fatalf("valid params rejected: %v", err)
	}
}

func TestParamsValidateRejects(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Params)
		wantErr string
	}{
		{
			"zero leverage",
			func(p *Params) { p.Leverage = decimal.Zero },
			"leverage must be > 0",
		},
		{
			"zero density",
			func(p *Params) { p.OrderDensity = 0 },
			"orderDensity must be > 0",
		},
		{
			"zero delay budget",
			func(p *Params) { p.MaxMarketDataDelay = 0 },
			"maxMarketDataDelay must be > 0",
		},
		{
			"reservation above one",
			func(p *Params) { p.ReservationParam = decimal.RequireFromString("1.1") },
			"reservationParam must be within [0, 1]",
		},
		{
			"negative spread param",
			func(p *Params) { p.SpreadParam = decimal.RequireFromString("-0.1") },
			"spreadParam must be within [0, 1]",
		},
		{
			"active capital above one",
			func(p *Params) { p.ActiveCapital = decimal.RequireFromString("1.5") },
			"activeCapital must be within [0, 1]",
		},
		{
			"tolerance at one",
			func(p *Params) { p.HeadChangeTolerance = decimal.NewFromInt(1) },
			"headChangeTolerance must be within [0, 1)",
		},
		{
			"zero tail distance",
			func(p *Params) { p.TailDistanceFromMid = decimal.Zero },
			"tailDistanceFromMid must be within (0, 1)",
		},
		{
			"zero min tail distance",
			func(p *Params) { p.MinTailDistance = decimal.Zero },
			"minTailDistance must be within (0, 1)",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validParams()
			tc.mutate(&p)
			err := p.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if err.Error() != tc.wantErr {
				t.Errorf("error = %q, want %q", err.Error(), tc.wantErr)
			}
		})
	}
}

func TestParamsZeroToleranceAllowed(t *testing.T) {
	p := validParams()
	p.HeadChangeTolerance = decimal.Zero
	if err := p.Validate(); err != nil {
		t.Fatalf("zero tolerance rejected: %v", err)
	}
}
