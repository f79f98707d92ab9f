// Package alert raises throttled operator notifications for conditions
// the quoting loop cannot fix on its own.
package alert

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Severity ranks an alert. Warning means degraded, critical means the
// loop is no longer quoting effectively.
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Alert is one operator notification.
type Alert struct {
	Severity Severity
	Message  string
	MarketID string
	Fields   map[string]string
	At       time.Time
}

// Channel delivers alerts somewhere an operator looks.
type Channel interface {
	Send(ctx context.Context, a Alert) error
	Name() string
}

// Notifier fans alerts out to its channels. Repeats of the same
// severity and message inside the throttle window are dropped, so a
// failing venue pages once instead of once per snapshot.
type Notifier struct {
	channels []Channel
	throttle *throttler
	log      *zap.Logger
}

// NewNotifier creates a notifier. every <= 0 selects a 1 minute window.
func NewNotifier(channels []Channel, every time.Duration, log *zap.Logger) *Notifier {
	if every <= 0 {
		every = time.Minute
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Notifier{
		channels: channels,
		throttle: newThrottler(every),
		log:      log,
	}
}

// Notify delivers a to every channel. Channel failures are logged and
// swallowed; alerting must never take the quoting loop down.
func (n *Notifier) Notify(ctx context.Context, a Alert) {
	if a.At.IsZero() {
		a.At = time.Now()
	}
	if !n.throttle.allow(string(a.Severity)+":"+a.Message, a.At) {
		return
	}
	for _, ch := range n.channels {
		if err := ch.Send(ctx, a); err != nil {
			n.log.Warn("alert channel failed",
				zap.String("channel", ch.Name()),
				zap.String("message", a.Message),
				zap.Error(err))
		}
	}
}

// Warn raises a warning-severity alert.
func (n *Notifier) Warn(ctx context.Context, message, marketID string, fields map[string]string) {
	n.Notify(ctx, Alert{Severity: SeverityWarning, Message: message, MarketID: marketID, Fields: fields})
}

// Critical raises a critical-severity alert.
func (n *Notifier) Critical(ctx context.Context, message, marketID string, fields map[string]string) {
	n.Notify(ctx, Alert{Severity: SeverityCritical, Message: message, MarketID: marketID, Fields: fields})
}

type throttler struct {
	mu    sync.Mutex
	last  map[string]time.Time
	every time.Duration
}

func newThrottler(every time.Duration) *throttler {
	return &throttler{last: make(map[string]time.Time), every: every}
}

func (t *throttler) allow(key string, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if prev, ok := t.last[key]; ok && now.Sub(prev) < t.every {
		return false
	}
	t.last[key] = now
	return true
}
