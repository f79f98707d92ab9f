// Package app hosts the quoting loop: it feeds market snapshots into
// the decision engine and pushes resulting plans to the venue.
package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"deriv-maker-go/config"
	"deriv-maker-go/gateway"
	"deriv-maker-go/infrastructure/alert"
	"deriv-maker-go/infrastructure/logger"
	"deriv-maker-go/inventory"
	"deriv-maker-go/market"
	"deriv-maker-go/metrics"
	"deriv-maker-go/order"
	"deriv-maker-go/store"
	"deriv-maker-go/strategy"
)

// submitFailureAlertStreak is the consecutive-failure count that pages.
const submitFailureAlertStreak = 3

// Config tunes the host loop.
type Config struct {
	MarketID string
	// SubmitTimeout bounds a single venue round trip.
	SubmitTimeout time.Duration
}

// Components are the loop's dependencies.
type Components struct {
	Engine      *strategy.Engine
	Venue       gateway.Venue
	Account     gateway.AccountSource
	Limiter     *gateway.SubmitLimiter
	Collector   *metrics.Collector
	Logger      *logger.Logger
	Store       *store.ParamsStore // optional
	Alerts      *alert.Notifier    // optional
	Identity    gateway.Account
	Constraints order.MarketConstraints
}

// Stats counts loop outcomes since start.
type Stats struct {
	Decisions int64
	Replaces  int64
	Holds     int64
	Errors    int64
}

// App runs the snapshot-to-plan loop for one market.
type App struct {
	cfg       Config
	venue     gateway.Venue
	account   gateway.AccountSource
	limiter   *gateway.SubmitLimiter
	collector *metrics.Collector
	log       *logger.Logger
	store     *store.ParamsStore
	alerts    *alert.Notifier
	identity  gateway.Account
	cons      order.MarketConstraints

	mu     sync.RWMutex
	engine *strategy.Engine

	// submitFailStreak is only touched from the loop goroutine.
	submitFailStreak int

	decisions atomic.Int64
	replaces  atomic.Int64
	holds     atomic.Int64
	errs      atomic.Int64
}

// New creates the host loop.
func New(cfg Config, comps Components) (*App, error) {
	if err := validateComponents(comps); err != nil {
		return nil, fmt.Errorf("invalid components: %w", err)
	}
	if cfg.MarketID == "" {
		cfg.MarketID = comps.Engine.MarketID()
	}
	if cfg.SubmitTimeout <= 0 {
		cfg.SubmitTimeout = 5 * time.Second
	}
	if comps.Limiter == nil {
		comps.Limiter = gateway.NewSubmitLimiter(1, 1)
	}
	if comps.Collector == nil {
		comps.Collector = metrics.New(metrics.DefaultConfig())
	}

	return &App{
		cfg:       cfg,
		venue:     comps.Venue,
		account:   comps.Account,
		limiter:   comps.Limiter,
		collector: comps.Collector,
		log:       comps.Logger,
		store:     comps.Store,
		alerts:    comps.Alerts,
		identity:  comps.Identity,
		cons:      comps.Constraints,
		engine:    comps.Engine,
	}, nil
}

func validateComponents(comps Components) error {
	if comps.Engine == nil {
		return errors.New("engine is required")
	}
	if comps.Venue == nil {
		return errors.New("venue is required")
	}
	if comps.Account == nil {
		return errors.New("account source is required")
	}
	if comps.Logger == nil {
		return errors.New("logger is required")
	}
	return nil
}

// Run consumes snapshots until ctx is canceled or the channel closes.
func (a *App) Run(ctx context.Context, snapshots <-chan market.Snapshot) error {
	a.log.Info("quoting loop started",
		zap.String("market_id", a.cfg.MarketID))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case snap, ok := <-snapshots:
			if !ok {
				a.log.Info("snapshot stream closed")
				return nil
			}
			a.onSnapshot(ctx, snap)
		}
	}
}

// onSnapshot runs one full decision cycle.
func (a *App) onSnapshot(ctx context.Context, snap market.Snapshot) {
	started := time.Now()
	a.decisions.Add(1)

	a.collector.UpdateMidPrice(snap.MidPrice.InexactFloat64())
	a.collector.UpdateVolatility(snap.Volatility.InexactFloat64())
	a.collector.UpdateSnapshotAge(started.Sub(snap.UpdatedAt).Seconds())

	// 1. Account state.
	pos, err := a.account.Position(ctx, a.cfg.MarketID)
	if err != nil {
		a.recordError("position query failed", err)
		return
	}
	dep, err := a.account.Deposit(ctx)
	if err != nil {
		a.recordError("deposit query failed", err)
		return
	}
	a.collector.UpdatePosition(signedQuantity(pos))
	a.collector.UpdateTotalBalance(dep.TotalBalance.InexactFloat64())
	a.collector.UpdateUnrealizedPnL(pos.UnrealizedPnL(snap.MidPrice).InexactFloat64())

	engine := a.currentEngine()
	imb, isLong := inventory.Imbalance(pos, dep.TotalBalance, snap.MidPrice)
	a.collector.UpdateImbalance(imb.InexactFloat64())
	a.collector.UpdateReservation(strategy.ReservationPrice(
		snap.MidPrice, imb, snap.Volatility, engine.Params().ReservationParam, isLong).InexactFloat64())

	// 2. Resting orders.
	resting, err := a.venue.RestingOrders(ctx, a.cfg.MarketID)
	if err != nil {
		a.recordError("resting orders query failed", err)
		return
	}

	// 3. Decide.
	plan, err := engine.Decide(strategy.Inputs{
		Snapshot: snap,
		Position: pos,
		Deposit:  dep,
		Resting:  resting,
		Now:      started,
	})
	a.collector.ObserveDecideDuration(time.Since(started).Seconds())
	if err != nil {
		a.errs.Add(1)
		a.collector.RecordDecision(decisionOutcome(err))
		a.log.Warn("decision rejected",
			zap.String("market_id", a.cfg.MarketID),
			zap.Error(err))
		return
	}
	if plan.Empty() {
		a.holds.Add(1)
		a.collector.RecordDecision(metrics.OutcomeHeld)
		a.log.Debug("quotes held",
			zap.String("mid", snap.MidPrice.String()))
		return
	}

	// 4. Submit through the limiter.
	batch, dropped := gateway.PlanToBatch(plan, a.cfg.MarketID, a.identity, a.cons)
	if dropped > 0 {
		a.log.Warn("dropped sub-minimum levels",
			zap.Int("count", dropped))
	}
	if err := a.limiter.Wait(ctx); err != nil {
		a.recordError("limiter wait canceled", err)
		return
	}
	subCtx, cancel := context.WithTimeout(ctx, a.cfg.SubmitTimeout)
	defer cancel()
	if err := a.venue.SubmitBatch(subCtx, batch); err != nil {
		a.errs.Add(1)
		a.collector.RecordSubmitError()
		a.collector.RecordDecision(metrics.OutcomeError)
		a.log.Error("batch submit failed",
			zap.Int("creates", len(batch.Creates)),
			zap.Error(err))
		a.submitFailStreak++
		if a.submitFailStreak == submitFailureAlertStreak && a.alerts != nil {
			a.alerts.Critical(ctx, "batch submits failing", a.cfg.MarketID, map[string]string{
				"streak": strconv.Itoa(a.submitFailStreak),
				"error":  err.Error(),
			})
		}
		return
	}
	a.submitFailStreak = 0

	a.replaces.Add(1)
	a.collector.RecordDecision(metrics.OutcomeReplaced)
	a.collector.RecordReplace()
	if len(batch.CancelAllMarketIDs) > 0 {
		a.collector.RecordCancelAll()
	}
	buys, sells := countSides(batch.Creates)
	a.collector.RecordPlannedOrders(string(order.Buy), buys)
	a.collector.RecordPlannedOrders(string(order.Sell), sells)

	a.log.Info("quotes replaced",
		zap.String("market_id", a.cfg.MarketID),
		zap.String("mid", snap.MidPrice.String()),
		zap.Int("buys", buys),
		zap.Int("sells", sells),
		zap.Int("dropped", dropped))
}

// ApplyRiskConfig parses and validates a raw risk section, swaps in a
// fresh engine, and persists the section when a store is configured.
// Used by config hot reload.
func (a *App) ApplyRiskConfig(ctx context.Context, rc config.RiskConfig) error {
	params, err := config.AppConfig{Risk: rc}.RiskParams()
	if err != nil {
		return err
	}
	engine, err := strategy.New(a.cfg.MarketID, params)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.engine = engine
	a.mu.Unlock()

	a.collector.RecordParamsReload()
	a.log.Info("risk params reloaded",
		zap.String("market_id", a.cfg.MarketID),
		zap.Int("order_density", params.OrderDensity),
		zap.String("spread_param", params.SpreadParam.String()))

	if a.store != nil {
		rec := store.ParamsRecord{MarketID: a.cfg.MarketID, Risk: rc}
		if err := a.store.Save(ctx, rec); err != nil {
			// Reload already took effect; persistence catches up on the
			// next successful save.
			a.log.Error("persist params failed", zap.Error(err))
		}
	}
	return nil
}

// Stats returns a snapshot of the loop counters.
func (a *App) Stats() Stats {
	return Stats{
		Decisions: a.decisions.Load(),
		Replaces:  a.replaces.Load(),
		Holds:     a.holds.Load(),
		Errors:    a.errs.Load(),
	}
}

func (a *App) currentEngine() *strategy.Engine {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.engine
}

func (a *App) recordError(msg string, err error) {
	a.errs.Add(1)
	a.collector.RecordDecision(metrics.OutcomeError)
	a.log.Error(msg,
		zap.String("market_id", a.cfg.MarketID),
		zap.Error(err))
}

func decisionOutcome(err error) string {
	switch {
	case errors.Is(err, strategy.ErrStaleMarketData):
		return metrics.OutcomeStale
	case errors.Is(err, strategy.ErrInvalidSnapshot):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}

func signedQuantity(p *inventory.Position) float64 {
	if p.Flat() {
		return 0
	}
	qty := p.Quantity.InexactFloat64()
	if !p.IsLong {
		qty = -qty
	}
	return qty
}

func countSides(creates []gateway.OrderCreate) (buys, sells int) {
	for _, c := range creates {
		if c.Side == string(order.Buy) {
			buys++
		} else {
			sells++
		}
	}
	return buys, sells
}
