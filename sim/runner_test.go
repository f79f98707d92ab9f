package sim_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deriv-maker-go/infrastructure/logger"
	"deriv-maker-go/risk"
	"deriv-maker-go/sim"
)

func simParams() risk.Params {
	return risk.Params{
		Leverage:            decimal.RequireFromString("2"),
		OrderDensity:        2,
		MaxMarketDataDelay:  10 * time.Second,
		ReservationParam:    decimal.RequireFromString("0.5"),
		SpreadParam:         decimal.RequireFromString("1"),
		ActiveCapital:       decimal.RequireFromString("0.5"),
		HeadChangeTolerance: decimal.RequireFromString("0.01"),
		TailDistanceFromMid: decimal.RequireFromString("0.05"),
		MinTailDistance:     decimal.RequireFromString("0.01"),
	}
}

func simLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(logger.Config{Level: "error", Format: "console"})
	require.NoError(t, err)
	return log
}

func TestFlatPathHoldsAfterFirstQuote(t *testing.T) {
	r, err := sim.NewRunner(sim.Config{
		Steps:            10,
		StartMid:         4000,
		VolatilityWindow: 4,
	}, simParams(), simLogger(t))
	require.NoError(t, err)

	res, err := r.Run(context.Background())
	require.NoError(t, err)

	// First step only primes the estimator.
	assert.Equal(t, 9, res.Emitted)
	assert.Equal(t, int64(9), res.Stats.Decisions)
	assert.Equal(t, int64(1), res.Stats.Replaces)
	assert.Equal(t, int64(8), res.Stats.Holds)
	assert.Equal(t, int64(0), res.Stats.Errors)
	assert.Len(t, res.FinalBook, 4)
	assert.Equal(t, "4000", res.FinalMid.String())
}

func TestTrendingPathKeepsReplacing(t *testing.T) {
	r, err := sim.NewRunner(sim.Config{
		Steps:            6,
		StartMid:         100,
		DriftPerStep:     0.03,
		VolatilityWindow: 4,
	}, simParams(), simLogger(t))
	require.NoError(t, err)

	res, err := r.Run(context.Background())
	require.NoError(t, err)

	// Every head move on a 3% trend is well beyond the 1% tolerance.
	assert.Equal(t, int64(5), res.Stats.Decisions)
	assert.Equal(t, int64(5), res.Stats.Replaces)
	assert.Equal(t, int64(0), res.Stats.Holds)
	assert.Len(t, res.FinalBook, 4)
}

func TestSeededRunsAreDeterministic(t *testing.T) {
	cfg := sim.Config{
		Seed:             42,
		Steps:            50,
		StartMid:         4000,
		NoiseBps:         80,
		VolatilityWindow: 8,
	}

	first, err := sim.NewRunner(cfg, simParams(), simLogger(t))
	require.NoError(t, err)
	second, err := sim.NewRunner(cfg, simParams(), simLogger(t))
	require.NoError(t, err)

	resA, err := first.Run(context.Background())
	require.NoError(t, err)
	resB, err := second.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, resA.Stats, resB.Stats)
	assert.True(t, resA.FinalMid.Equal(resB.FinalMid))
	assert.Equal(t, resA.Stats.Replaces+resA.Stats.Holds, resA.Stats.Decisions)
	assert.Equal(t, int64(0), resA.Stats.Errors)
}

func TestNewRunnerValidates(t *testing.T) {
	_, err := sim.NewRunner(sim.Config{StartMid: 100}, simParams(), simLogger(t))
	assert.Error(t, err)

	_, err = sim.NewRunner(sim.Config{Steps: 5}, simParams(), simLogger(t))
	assert.Error(t, err)
}
