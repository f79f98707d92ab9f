package market

import (
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot is one observation of the quoted market: the mid price the
// venue oracle agrees on and a volatility figure in price units.
type Snapshot struct {
	MarketID   string
	MidPrice   decimal.Decimal
	Volatility decimal.Decimal
	UpdatedAt  time.Time
}

// Stale reports whether the snapshot is older than maxDelay at now.
func (s Snapshot) Stale(now time.Time, maxDelay time.Duration) bool {
	return now.Sub(s.UpdatedAt) > maxDelay
}
