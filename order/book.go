package order

import "sync"

// Book tracks resting orders by hash. The paper venue and the
// simulator use it as their authoritative book; a live venue is
// queried instead.
type Book struct {
	mu     sync.RWMutex
	orders map[string]Resting
}

func NewBook() *Book {
	return &Book{orders: make(map[string]Resting)}
}

func (b *Book) Set(o Resting) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.orders[o.OrderHash] = o
}

func (b *Book) Get(hash string) (Resting, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	o, ok := b.orders[hash]
	return o, ok
}

// CancelAll drops every resting order and reports how many were removed.
func (b *Book) CancelAll() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := len(b.orders)
	b.orders = make(map[string]Resting)
	return n
}

// List returns a copy of all resting orders, buys before sells, each
// side ordered head first.
func (b *Book) List() []Resting {
	b.mu.RLock()
	res := make([]Resting, 0, len(b.orders))
	for _, o := range b.orders {
		res = append(res, o)
	}
	b.mu.RUnlock()

	buys, sells := Split(res)
	return append(buys, sells...)
}
