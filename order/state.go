package order

import "github.com/shopspring/decimal"

// Side tells which half of the book an order rests on.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// Resting is an order currently resting on the venue book.
type Resting struct {
	OrderHash    string
	Side         Side
	Price        decimal.Decimal
	Quantity     decimal.Decimal
	SubaccountID string
	FeeRecipient string
}

// Level is one rung of a quote ladder waiting to be created.
type Level struct {
	Side       Side
	Price      decimal.Decimal
	Quantity   decimal.Decimal
	ReduceOnly bool
}
