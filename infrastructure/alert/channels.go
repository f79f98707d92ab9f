package alert

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// LogChannel writes alerts into the process log.
type LogChannel struct {
	log *zap.Logger
}

// NewLogChannel creates a channel that logs through log.
func NewLogChannel(log *zap.Logger) *LogChannel {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogChannel{log: log}
}

func (c *LogChannel) Send(_ context.Context, a Alert) error {
	fields := make([]zap.Field, 0, len(a.Fields)+2)
	fields = append(fields,
		zap.String("market_id", a.MarketID),
		zap.Time("at", a.At))
	for k, v := range a.Fields {
		fields = append(fields, zap.String(k, v))
	}
	if a.Severity == SeverityCritical {
		c.log.Error(a.Message, fields...)
	} else {
		c.log.Warn(a.Message, fields...)
	}
	return nil
}

func (c *LogChannel) Name() string { return "log" }

// WebhookChannel POSTs alerts as JSON to a fixed URL.
type WebhookChannel struct {
	URL        string
	HTTPClient *http.Client
}

// NewWebhookChannel creates a webhook channel with a 10s client.
func NewWebhookChannel(url string) *WebhookChannel {
	return &WebhookChannel{
		URL:        url,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type webhookPayload struct {
	Severity string            `json:"severity"`
	Message  string            `json:"message"`
	MarketID string            `json:"marketId,omitempty"`
	At       time.Time         `json:"at"`
	Fields   map[string]string `json:"fields,omitempty"`
}

func (c *WebhookChannel) Send(ctx context.Context, a Alert) error {
	body, err := json.Marshal(webhookPayload{
		Severity: string(a.Severity),
		Message:  a.Message,
		MarketID: a.MarketID,
		At:       a.At,
		Fields:   a.Fields,
	})
	if err != nil {
		return fmt.Errorf("marshal alert: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build alert request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("post alert: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("alert webhook status %d", resp.StatusCode)
	}
	return nil
}

func (c *WebhookChannel) Name() string { return "webhook" }
