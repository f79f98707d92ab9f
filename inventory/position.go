package inventory

import "github.com/shopspring/decimal"

// Position is the maker's open derivative position on the quoted market.
// A nil *Position means flat.
type Position struct {
	IsLong     bool
	Quantity   decimal.Decimal
	EntryPrice decimal.Decimal
	Margin     decimal.Decimal
}

// Flat reports whether the position carries no exposure.
func (p *Position) Flat() bool {
	return p == nil || p.Quantity.IsZero()
}

// Notional values the position at its entry price, falling back to the
// supplied mark price when the entry is unknown.
func (p *Position) Notional(mark decimal.Decimal) decimal.Decimal {
	if p.Flat() {
		return decimal.Zero
	}
	basis := p.EntryPrice
	if basis.IsZero() {
		basis = mark
	}
	return p.Quantity.Mul(basis)
}

// Deposit is the subaccount balance backing the quotes.
type Deposit struct {
	AvailableBalance decimal.Decimal
	TotalBalance     decimal.Decimal
}
