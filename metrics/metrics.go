// Package metrics provides Prometheus metrics for the quoting loop.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Decision outcome label values.
const (
	OutcomeReplaced = "replaced"
	OutcomeHeld     = "held"
	OutcomeStale    = "stale"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// Collector gathers quoting metrics on a private registry so tests and
// multiple instances never collide on the default registerer.
type Collector struct {
	registry *prometheus.Registry

	decisions      *prometheus.CounterVec
	replaces       prometheus.Counter
	ordersPlanned  *prometheus.CounterVec
	cancels        prometheus.Counter
	submitErrors   prometheus.Counter
	feedReconnects prometheus.Counter
	paramsReloads  prometheus.Counter

	midPrice      prometheus.Gauge
	reservation   prometheus.Gauge
	imbalance     prometheus.Gauge
	volatility    prometheus.Gauge
	snapshotAge   prometheus.Gauge
	positionQty   prometheus.Gauge
	totalBalance  prometheus.Gauge
	unrealizedPnL prometheus.Gauge

	decideDuration prometheus.Histogram
}

// Config holds the metric name prefixes.
type Config struct {
	Namespace string
	Subsystem string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Namespace: "maker",
		Subsystem: "quoting",
	}
}

// New creates a new Collector instance.
func New(cfg Config) *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	c := &Collector{
		registry: reg,

		decisions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "decisions_total",
				Help:      "Decision cycles by outcome",
			},
			[]string{"outcome"},
		),
		replaces: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "replaces_total",
			Help:      "Cancel-and-replace plans emitted",
		}),
		ordersPlanned: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "orders_planned_total",
				Help:      "Order creations planned by side",
			},
			[]string{"side"},
		),
		cancels: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "cancel_all_total",
			Help:      "Market-wide cancel directives issued",
		}),
		submitErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "submit_errors_total",
			Help:      "Failed batch submissions",
		}),
		feedReconnects: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "feed_reconnects_total",
			Help:      "Market data feed reconnects",
		}),
		paramsReloads: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "params_reloads_total",
			Help:      "Risk parameter hot reloads applied",
		}),

		midPrice: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "mid_price",
			Help:      "Last observed mid price",
		}),
		reservation: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "reservation_price",
			Help:      "Inventory-shifted reference price of the last decision",
		}),
		imbalance: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "inventory_imbalance",
			Help:      "Position notional over total balance, 0 to 1",
		}),
		volatility: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "volatility",
			Help:      "Last observed volatility",
		}),
		snapshotAge: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "snapshot_age_seconds",
			Help:      "Age of the snapshot entering the last decision",
		}),
		positionQty: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "position_quantity",
			Help:      "Current position quantity, negative when short",
		}),
		totalBalance: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "total_balance",
			Help:      "Subaccount total balance in quote currency",
		}),
		unrealizedPnL: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "unrealized_pnl",
			Help:      "Position marked against the last mid",
		}),

		decideDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "decide_duration_seconds",
			Help:      "Latency of a single decision cycle",
			Buckets:   []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05},
		}),
	}

	return c
}

func (c *Collector) RecordDecision(outcome string) {
	c.decisions.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordReplace() {
	c.replaces.Inc()
}

func (c *Collector) RecordPlannedOrders(side string, count int) {
	c.ordersPlanned.WithLabelValues(side).Add(float64(count))
}

func (c *Collector) RecordCancelAll() {
	c.cancels.Inc()
}

func (c *Collector) RecordSubmitError() {
	c.submitErrors.Inc()
}

func (c *Collector) RecordFeedReconnect() {
	c.feedReconnects.Inc()
}

func (c *Collector) RecordParamsReload() {
	c.paramsReloads.Inc()
}

func (c *Collector) UpdateMidPrice(value float64) {
	c.midPrice.Set(value)
}

func (c *Collector) UpdateReservation(value float64) {
	c.reservation.Set(value)
}

func (c *Collector) UpdateImbalance(value float64) {
	c.imbalance.Set(value)
}

func (c *Collector) UpdateVolatility(value float64) {
	c.volatility.Set(value)
}

func (c *Collector) UpdateSnapshotAge(seconds float64) {
	c.snapshotAge.Set(seconds)
}

func (c *Collector) UpdatePosition(quantity float64) {
	c.positionQty.Set(quantity)
}

func (c *Collector) UpdateTotalBalance(value float64) {
	c.totalBalance.Set(value)
}

func (c *Collector) UpdateUnrealizedPnL(value float64) {
	c.unrealizedPnL.Set(value)
}

func (c *Collector) ObserveDecideDuration(seconds float64) {
	c.decideDuration.Observe(seconds)
}

// Handler returns an HTTP handler exposing the collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// StartServer exposes the collector on addr in a background goroutine.
// The returned server should be shut down by the caller on exit.
func StartServer(addr string, c *Collector) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		_ = srv.ListenAndServe()
	}()
	return srv
}
