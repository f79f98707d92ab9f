package gateway

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// ErrBadFrame marks a stream message that cannot become a snapshot.
var ErrBadFrame = errors.New("malformed feed frame")

// Frame is one ticker message from the venue stream. Volatility is
// optional; feeds without it rely on the client-side estimator.
type Frame struct {
	MarketID   string `json:"marketId"`
	MidPrice   string `json:"midPrice"`
	Volatility string `json:"volatility,omitempty"`
	Timestamp  int64  `json:"timestamp"`
}

// ParseFrame decodes a raw stream message.
func ParseFrame(raw []byte) (Frame, error) {
	var f Frame
	if err := json.Unmarshal(raw, &f); err != nil {
		return Frame{}, fmt.Errorf("%w: %v", ErrBadFrame, err)
	}
	if f.MarketID == "" {
		return Frame{}, fmt.Errorf("%w: missing marketId", ErrBadFrame)
	}
	if f.MidPrice == "" {
		return Frame{}, fmt.Errorf("%w: missing midPrice", ErrBadFrame)
	}
	return f, nil
}
