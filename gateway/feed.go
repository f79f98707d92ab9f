package gateway

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"deriv-maker-go/market"
)

const (
	defaultPingInterval = 15 * time.Second
	defaultReadTimeout  = 30 * time.Second
	maxReconnectDelay   = 30 * time.Second
	pingWriteTimeout    = 5 * time.Second
)

// FeedConfig configures the venue market data feed.
type FeedConfig struct {
	URL              string
	MarketID         string
	PingInterval     time.Duration
	ReadTimeout      time.Duration
	VolatilityWindow int
}

// Feed streams market snapshots from the venue websocket, reconnecting
// with exponential backoff until the context is canceled.
type Feed struct {
	cfg       FeedConfig
	log       *zap.Logger
	dialer    *websocket.Dialer
	estimator *market.Estimator
	snapshots chan market.Snapshot

	// OnReconnect is invoked after every successful dial.
	OnReconnect func()
}

// NewFeed creates a new Feed instance.
func NewFeed(cfg FeedConfig, log *zap.Logger) *Feed {
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = defaultPingInterval
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = defaultReadTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Feed{
		cfg:       cfg,
		log:       log,
		dialer:    websocket.DefaultDialer,
		estimator: market.NewEstimator(cfg.VolatilityWindow),
		snapshots: make(chan market.Snapshot, 16),
	}
}

// Snapshots returns the channel snapshots are published on. It is
// closed when Run returns.
func (f *Feed) Snapshots() <-chan market.Snapshot {
	return f.snapshots
}

// Run dials the stream and publishes snapshots until ctx is canceled.
// Transient failures reconnect; only context cancellation ends the loop.
func (f *Feed) Run(ctx context.Context) error {
	defer close(f.snapshots)

	bo := backoff.NewExponentialBackOff()
	bo.MaxInterval = maxReconnectDelay

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		conn, _, err := f.dialer.DialContext(ctx, f.cfg.URL, nil)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			f.log.Warn("feed dial failed",
				zap.String("url", f.cfg.URL),
				zap.Error(err))
			if !f.sleep(ctx, bo) {
				return ctx.Err()
			}
			continue
		}

		if f.OnReconnect != nil {
			f.OnReconnect()
		}
		bo.Reset()

		err = f.readLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		f.log.Warn("feed disconnected", zap.Error(err))
		if !f.sleep(ctx, bo) {
			return ctx.Err()
		}
	}
}

func (f *Feed) sleep(ctx context.Context, bo *backoff.ExponentialBackOff) bool {
	delay := bo.NextBackOff()
	if delay == backoff.Stop {
		delay = maxReconnectDelay
	}
	select {
	case <-ctx.Done():
		return false
	case <-time.After(delay):
		return true
	}
}

func (f *Feed) readLoop(ctx context.Context, conn *websocket.Conn) error {
	_ = conn.SetReadDeadline(time.Now().Add(f.cfg.ReadTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(f.cfg.ReadTimeout))
	})

	pingDone := make(chan struct{})
	defer close(pingDone)
	go f.pingLoop(ctx, conn, pingDone)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		_ = conn.SetReadDeadline(time.Now().Add(f.cfg.ReadTimeout))

		frame, err := ParseFrame(raw)
		if err != nil {
			f.log.Debug("skipping frame", zap.Error(err))
			continue
		}
		if frame.MarketID != f.cfg.MarketID {
			continue
		}

		snap, ok := f.toSnapshot(frame)
		if !ok {
			continue
		}

		select {
		case f.snapshots <- snap:
		default:
			// Consumer lagging; the next frame supersedes this one.
		}
	}
}

func (f *Feed) pingLoop(ctx context.Context, conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(f.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			deadline := time.Now().Add(pingWriteTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}

// toSnapshot converts a frame, estimating volatility when the venue
// omits it. Frames arriving before the estimator has enough mids are
// dropped rather than emitted with a zero-width spread.
func (f *Feed) toSnapshot(frame Frame) (market.Snapshot, bool) {
	mid, err := decimal.NewFromString(frame.MidPrice)
	if err != nil || !mid.IsPositive() {
		return market.Snapshot{}, false
	}
	f.estimator.Observe(mid)

	var vol decimal.Decimal
	if frame.Volatility != "" {
		vol, err = decimal.NewFromString(frame.Volatility)
		if err != nil || vol.IsNegative() {
			return market.Snapshot{}, false
		}
	} else {
		if !f.estimator.Ready() {
			return market.Snapshot{}, false
		}
		vol = f.estimator.Volatility()
	}

	updatedAt := time.Now().UTC()
	if frame.Timestamp > 0 {
		updatedAt = time.UnixMilli(frame.Timestamp).UTC()
	}

	return market.Snapshot{
		MarketID:   frame.MarketID,
		MidPrice:   mid,
		Volatility: vol,
		UpdatedAt:  updatedAt,
	}, true
}
