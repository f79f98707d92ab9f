// Command sim replays a synthetic price path through the quoting loop
// against a paper venue and prints what the strategy did with it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"deriv-maker-go/config"
	"deriv-maker-go/infrastructure/logger"
	"deriv-maker-go/sim"
)

func main() {
	market := flag.String("market", "0xSIM", "market id stamped on generated snapshots")
	seed := flag.Int64("seed", 1, "random seed for the price path")
	steps := flag.Int("steps", 500, "number of price steps to generate")
	startMid := flag.Float64("startMid", 4000, "initial mid price")
	drift := flag.Float64("drift", 0, "deterministic fractional move per step (0.01 = 1%)")
	noiseBps := flag.Float64("noiseBps", 80, "random move bound per step, in basis points")
	window := flag.Int("window", 16, "volatility estimator window")
	deposit := flag.Float64("deposit", 10_000, "paper subaccount balance")

	leverage := flag.String("leverage", "2", "risk: account leverage")
	density := flag.Int("density", 4, "risk: orders per side")
	delayMs := flag.Int("maxDelayMs", 10_000, "risk: max snapshot age in ms")
	reservation := flag.String("reservation", "0.5", "risk: reservation price shift weight")
	spread := flag.String("spread", "1", "risk: spread width weight")
	active := flag.String("active", "0.5", "risk: fraction of capital quoted")
	tolBps := flag.String("tolBps", "100", "risk: head change tolerance, bps")
	tailBps := flag.String("tailBps", "500", "risk: tail distance from mid, bps")
	minTailBps := flag.String("minTailBps", "100", "risk: min tail distance from head, bps")
	logLevel := flag.String("logLevel", "warn", "log level for the loop")
	flag.Parse()

	rc := config.RiskConfig{
		Leverage:               *leverage,
		OrderDensity:           *density,
		MaxMarketDataDelayMs:   *delayMs,
		ReservationParam:       *reservation,
		SpreadParam:            *spread,
		ActiveCapital:          *active,
		HeadChangeToleranceBps: *tolBps,
		TailDistanceFromMidBps: *tailBps,
		MinTailDistanceBps:     *minTailBps,
	}
	params, err := config.AppConfig{Risk: rc}.RiskParams()
	if err != nil {
		log.Fatalf("risk params: %v", err)
	}

	zlog, err := logger.New(logger.Config{Level: *logLevel, Format: "console"})
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zlog.Close() }()

	runner, err := sim.NewRunner(sim.Config{
		MarketID:         *market,
		Seed:             *seed,
		Steps:            *steps,
		StartMid:         *startMid,
		DriftPerStep:     *drift,
		NoiseBps:         *noiseBps,
		VolatilityWindow: *window,
		Deposit:          *deposit,
	}, params, zlog)
	if err != nil {
		log.Fatalf("build runner: %v", err)
	}

	res, err := runner.Run(context.Background())
	if err != nil {
		log.Fatalf("replay failed: %v", err)
	}

	fmt.Printf("steps=%d emitted=%d finalMid=%s\n", res.Steps, res.Emitted, res.FinalMid)
	fmt.Printf("decisions=%d replaces=%d holds=%d errors=%d\n",
		res.Stats.Decisions, res.Stats.Replaces, res.Stats.Holds, res.Stats.Errors)
	fmt.Printf("resting orders: %d\n", len(res.FinalBook))
	for _, o := range res.FinalBook {
		fmt.Printf("  %-4s %s x %s\n", o.Side, o.Price, o.Quantity)
	}
}
