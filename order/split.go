package order

import "sort"

// Split partitions resting orders by side. Buys come back sorted
// price-descending and sells price-ascending, ties keeping their input
// order, so index 0 is always the side's head.
func Split(orders []Resting) (buys, sells []Resting) {
	for _, o := range orders {
		switch o.Side {
		case Buy:
			buys = append(buys, o)
		case Sell:
			sells = append(sells, o)
		}
	}
	sort.SliceStable(buys, func(i, j int) bool {
		return buys[i].Price.GreaterThan(buys[j].Price)
	})
	sort.SliceStable(sells, func(i, j int) bool {
		return sells[i].Price.LessThan(sells[j].Price)
	})
	return buys, sells
}
