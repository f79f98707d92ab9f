package market

import (
	"math"

	"github.com/shopspring/decimal"
)

// Estimator keeps a rolling window of mid prices and reports their
// standard deviation in price units. Feeds whose stream carries no
// volatility field use it to fill Snapshot.Volatility.
type Estimator struct {
	window int
	mids   []float64
}

// NewEstimator creates an estimator over the given window size.
func NewEstimator(window int) *Estimator {
	if window < 2 {
		window = 2
	}
	return &Estimator{
		window: window,
		mids:   make([]float64, 0, window),
	}
}

// Observe adds a mid price to the window.
func (e *Estimator) Observe(mid decimal.Decimal) {
	e.mids = append(e.mids, mid.InexactFloat64())
	if len(e.mids) > e.window {
		e.mids = e.mids[1:]
	}
}

// Ready reports whether enough observations accumulated for an estimate.
func (e *Estimator) Ready() bool {
	return len(e.mids) >= 2
}

// Volatility returns the standard deviation of the windowed mids, in
// price units. Zero until Ready.
func (e *Estimator) Volatility() decimal.Decimal {
	if len(e.mids) < 2 {
		return decimal.Zero
	}

	sum := 0.0
	for _, m := range e.mids {
		sum += m
	}
	mean := sum / float64(len(e.mids))

	sumSquaredDiff := 0.0
	for _, m := range e.mids {
		diff := m - mean
		sumSquaredDiff += diff * diff
	}
	variance := sumSquaredDiff / float64(len(e.mids))

	return decimal.NewFromFloat(math.Sqrt(variance))
}
