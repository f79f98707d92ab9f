package gateway

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"deriv-maker-go/order"
)

// PaperVenue simulates the venue order API in memory. The simulator
// and dry runs use it in place of a live connection.
type PaperVenue struct {
	mu    sync.Mutex
	books map[string]*order.Book
}

// NewPaperVenue creates a new PaperVenue instance.
func NewPaperVenue() *PaperVenue {
	return &PaperVenue{books: make(map[string]*order.Book)}
}

func (v *PaperVenue) book(marketID string) *order.Book {
	v.mu.Lock()
	defer v.mu.Unlock()
	b, ok := v.books[marketID]
	if !ok {
		b = order.NewBook()
		v.books[marketID] = b
	}
	return b
}

// SubmitBatch cancels and creates against the in-memory books. Creates
// are rejected whole when any price or quantity fails to parse, so a
// batch is never half applied.
func (v *PaperVenue) SubmitBatch(_ context.Context, batch BatchUpdate) error {
	resting := make([]order.Resting, 0, len(batch.Creates))
	for _, c := range batch.Creates {
		price, err := decimal.NewFromString(c.Price)
		if err != nil {
			return fmt.Errorf("create price %q: %w", c.Price, err)
		}
		qty, err := decimal.NewFromString(c.Quantity)
		if err != nil {
			return fmt.Errorf("create quantity %q: %w", c.Quantity, err)
		}
		resting = append(resting, order.Resting{
			OrderHash:    uuid.NewString(),
			Side:         order.Side(c.Side),
			Price:        price,
			Quantity:     qty,
			SubaccountID: c.SubaccountID,
			FeeRecipient: c.FeeRecipient,
		})
	}

	for _, marketID := range batch.CancelAllMarketIDs {
		v.book(marketID).CancelAll()
	}
	for i, c := range batch.Creates {
		v.book(c.MarketID).Set(resting[i])
	}
	return nil
}

// RestingOrders returns the market's open orders, buys head first.
func (v *PaperVenue) RestingOrders(_ context.Context, marketID string) ([]order.Resting, error) {
	return v.book(marketID).List(), nil
}
