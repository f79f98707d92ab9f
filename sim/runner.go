// Package sim replays a synthetic price path through the full quoting
// loop against a paper venue. Runs are deterministic for a given seed.
package sim

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"deriv-maker-go/gateway"
	"deriv-maker-go/infrastructure/logger"
	"deriv-maker-go/internal/app"
	"deriv-maker-go/inventory"
	"deriv-maker-go/market"
	"deriv-maker-go/order"
	"deriv-maker-go/risk"
	"deriv-maker-go/strategy"
)

// Config shapes the synthetic price path.
type Config struct {
	MarketID string
	Seed     int64
	Steps    int
	// StartMid is the initial mid price.
	StartMid float64
	// DriftPerStep is the deterministic fractional move per step.
	DriftPerStep float64
	// NoiseBps bounds the random fractional move per step, in basis
	// points. Zero gives a fully deterministic path.
	NoiseBps float64
	// VolatilityWindow sizes the rolling estimator stamped on
	// generated snapshots.
	VolatilityWindow int
	// Deposit is the paper subaccount's total balance.
	Deposit float64
}

// Result summarizes a replay.
type Result struct {
	Steps     int
	Emitted   int
	Stats     app.Stats
	FinalMid  decimal.Decimal
	FinalBook []order.Resting
}

// Runner owns one replay: generator, engine, paper venue.
type Runner struct {
	cfg   Config
	loop  *app.App
	venue *gateway.PaperVenue
}

// NewRunner assembles the loop around a paper venue.
func NewRunner(cfg Config, params risk.Params, log *logger.Logger) (*Runner, error) {
	if cfg.MarketID == "" {
		cfg.MarketID = "0xSIM"
	}
	if cfg.Steps <= 0 {
		return nil, fmt.Errorf("steps must be > 0")
	}
	if cfg.StartMid <= 0 {
		return nil, fmt.Errorf("startMid must be > 0")
	}
	if cfg.Deposit <= 0 {
		cfg.Deposit = 10_000
	}

	engine, err := strategy.New(cfg.MarketID, params)
	if err != nil {
		return nil, err
	}

	venue := gateway.NewPaperVenue()
	deposit := decimal.NewFromFloat(cfg.Deposit)
	account := gateway.NewStaticAccount(inventory.Deposit{
		AvailableBalance: deposit,
		TotalBalance:     deposit,
	})

	loop, err := app.New(app.Config{MarketID: cfg.MarketID}, app.Components{
		Engine:   engine,
		Venue:    venue,
		Account:  account,
		Limiter:  gateway.NewSubmitLimiter(10_000, 100),
		Logger:   log,
		Identity: gateway.Account{SubaccountID: "0xSIM-SUB", FeeRecipient: "sim"},
	})
	if err != nil {
		return nil, err
	}

	return &Runner{cfg: cfg, loop: loop, venue: venue}, nil
}

// Run generates the path and drains it through the loop.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	snapshots := make(chan market.Snapshot)
	gen := &generator{cfg: r.cfg}
	go gen.run(ctx, snapshots)

	if err := r.loop.Run(ctx, snapshots); err != nil {
		return Result{}, err
	}

	book, err := r.venue.RestingOrders(ctx, r.cfg.MarketID)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Steps:     r.cfg.Steps,
		Emitted:   gen.emitted,
		Stats:     r.loop.Stats(),
		FinalMid:  gen.lastMid,
		FinalBook: book,
	}, nil
}

// generator walks the mid price and stamps estimator volatility on
// each snapshot. Steps observed before the estimator is ready are
// consumed without emitting, mirroring the live feed.
type generator struct {
	cfg     Config
	emitted int
	lastMid decimal.Decimal
}

func (g *generator) run(ctx context.Context, out chan<- market.Snapshot) {
	defer close(out)

	rng := rand.New(rand.NewSource(g.cfg.Seed))
	est := market.NewEstimator(g.cfg.VolatilityWindow)
	mid := g.cfg.StartMid

	for i := 0; i < g.cfg.Steps; i++ {
		if i > 0 {
			noise := 0.0
			if g.cfg.NoiseBps > 0 {
				noise = (rng.Float64()*2 - 1) * g.cfg.NoiseBps / 10_000
			}
			mid = mid * (1 + g.cfg.DriftPerStep + noise)
		}

		d := decimal.NewFromFloat(mid)
		g.lastMid = d
		est.Observe(d)
		if !est.Ready() {
			continue
		}

		snap := market.Snapshot{
			MarketID:   g.cfg.MarketID,
			MidPrice:   d,
			Volatility: est.Volatility(),
			UpdatedAt:  time.Now(),
		}
		select {
		case out <- snap:
			g.emitted++
		case <-ctx.Done():
			return
		}
	}
}
