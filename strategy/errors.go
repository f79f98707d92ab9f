package strategy

import "errors"

var (
	ErrStaleMarketData = errors.New("market data too old")
	ErrInvalidSnapshot = errors.New("invalid market snapshot")
)
