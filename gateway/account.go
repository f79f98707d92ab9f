package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"deriv-maker-go/inventory"
)

// AccountSource reports the subaccount state a decision needs.
type AccountSource interface {
	// Position returns the open position in a market, nil when flat.
	Position(ctx context.Context, marketID string) (*inventory.Position, error)
	// Deposit returns the subaccount balances.
	Deposit(ctx context.Context) (inventory.Deposit, error)
}

// StaticAccount serves a fixed deposit and a settable position. Paper
// trading and the simulator use it in place of venue account queries.
type StaticAccount struct {
	mu       sync.RWMutex
	position *inventory.Position
	deposit  inventory.Deposit
}

// NewStaticAccount creates a new StaticAccount instance.
func NewStaticAccount(deposit inventory.Deposit) *StaticAccount {
	return &StaticAccount{deposit: deposit}
}

// SetPosition replaces the served position. nil means flat.
func (a *StaticAccount) SetPosition(p *inventory.Position) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.position = p
}

// SetDeposit replaces the served balances.
func (a *StaticAccount) SetDeposit(d inventory.Deposit) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.deposit = d
}

func (a *StaticAccount) Position(_ context.Context, _ string) (*inventory.Position, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.position, nil
}

func (a *StaticAccount) Deposit(_ context.Context) (inventory.Deposit, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.deposit, nil
}

// positionWire is the venue's position payload. A null body means flat.
type positionWire struct {
	IsLong     bool   `json:"isLong"`
	Quantity   string `json:"quantity"`
	EntryPrice string `json:"entryPrice"`
	Margin     string `json:"margin"`
}

type depositWire struct {
	AvailableBalance string `json:"availableBalance"`
	TotalBalance     string `json:"totalBalance"`
}

// Position fetches the subaccount position from /v1/position.
func (v *RESTVenue) Position(ctx context.Context, marketID string) (*inventory.Position, error) {
	if v == nil || v.HTTPClient == nil {
		return nil, fmt.Errorf("http client not set")
	}
	q := url.Values{}
	q.Set("marketId", marketID)
	q.Set("subaccountId", v.Account.SubaccountID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.BaseURL+"/v1/position?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := v.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("position status %d", resp.StatusCode)
	}

	var wire *positionWire
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("decode position: %w", err)
	}
	if wire == nil {
		return nil, nil
	}

	qty, err := decimal.NewFromString(wire.Quantity)
	if err != nil {
		return nil, fmt.Errorf("position quantity %q: %w", wire.Quantity, err)
	}
	entry, err := decimal.NewFromString(wire.EntryPrice)
	if err != nil {
		return nil, fmt.Errorf("position entryPrice %q: %w", wire.EntryPrice, err)
	}
	margin, err := decimal.NewFromString(wire.Margin)
	if err != nil {
		return nil, fmt.Errorf("position margin %q: %w", wire.Margin, err)
	}
	return &inventory.Position{
		IsLong:     wire.IsLong,
		Quantity:   qty,
		EntryPrice: entry,
		Margin:     margin,
	}, nil
}

// Deposit fetches the subaccount balances from /v1/deposit.
func (v *RESTVenue) Deposit(ctx context.Context) (inventory.Deposit, error) {
	if v == nil || v.HTTPClient == nil {
		return inventory.Deposit{}, fmt.Errorf("http client not set")
	}
	q := url.Values{}
	q.Set("subaccountId", v.Account.SubaccountID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.BaseURL+"/v1/deposit?"+q.Encode(), nil)
	if err != nil {
		return inventory.Deposit{}, err
	}
	resp, err := v.HTTPClient.Do(req)
	if err != nil {
		return inventory.Deposit{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return inventory.Deposit{}, fmt.Errorf("deposit status %d", resp.StatusCode)
	}

	var wire depositWire
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return inventory.Deposit{}, fmt.Errorf("decode deposit: %w", err)
	}
	avail, err := decimal.NewFromString(wire.AvailableBalance)
	if err != nil {
		return inventory.Deposit{}, fmt.Errorf("availableBalance %q: %w", wire.AvailableBalance, err)
	}
	total, err := decimal.NewFromString(wire.TotalBalance)
	if err != nil {
		return inventory.Deposit{}, fmt.Errorf("totalBalance %q: %w", wire.TotalBalance, err)
	}
	return inventory.Deposit{AvailableBalance: avail, TotalBalance: total}, nil
}
