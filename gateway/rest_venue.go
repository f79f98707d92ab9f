package gateway

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"deriv-maker-go/order"
)

// RESTVenue talks to the venue's HTTP order API. HTTPClient is
// injectable so tests can point it at httptest.
type RESTVenue struct {
	BaseURL    string
	Account    Account
	HTTPClient *http.Client
}

// restingOrder is the wire form of an open order.
type restingOrder struct {
	OrderHash    string `json:"orderHash"`
	Side         string `json:"side"`
	Price        string `json:"price"`
	Quantity     string `json:"quantity"`
	SubaccountID string `json:"subaccountId"`
	FeeRecipient string `json:"feeRecipient"`
}

// SubmitBatch posts the batch to /v1/batch.
func (v *RESTVenue) SubmitBatch(ctx context.Context, batch BatchUpdate) error {
	if v == nil || v.HTTPClient == nil {
		return fmt.Errorf("http client not set")
	}
	body, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("marshal batch: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.BaseURL+"/v1/batch", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := v.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("submit batch status %d", resp.StatusCode)
	}
	return nil
}

// RestingOrders fetches the subaccount's open orders from /v1/orders.
func (v *RESTVenue) RestingOrders(ctx context.Context, marketID string) ([]order.Resting, error) {
	if v == nil || v.HTTPClient == nil {
		return nil, fmt.Errorf("http client not set")
	}
	q := url.Values{}
	q.Set("marketId", marketID)
	q.Set("subaccountId", v.Account.SubaccountID)
	endpoint := v.BaseURL + "/v1/orders?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := v.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("list orders status %d", resp.StatusCode)
	}

	var wire []restingOrder
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}

	orders := make([]order.Resting, 0, len(wire))
	for _, w := range wire {
		price, err := decimal.NewFromString(w.Price)
		if err != nil {
			return nil, fmt.Errorf("order %s price %q: %w", w.OrderHash, w.Price, err)
		}
		qty, err := decimal.NewFromString(w.Quantity)
		if err != nil {
			return nil, fmt.Errorf("order %s quantity %q: %w", w.OrderHash, w.Quantity, err)
		}
		orders = append(orders, order.Resting{
			OrderHash:    w.OrderHash,
			Side:         order.Side(w.Side),
			Price:        price,
			Quantity:     qty,
			SubaccountID: w.SubaccountID,
			FeeRecipient: w.FeeRecipient,
		})
	}
	return orders, nil
}

// NewDefaultHTTPClient provides an http.Client with a sane timeout.
func NewDefaultHTTPClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}
