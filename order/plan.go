package order

// Plan is the batch action a decision produces: cancel everything
// resting on the named markets, then create the given levels. The zero
// value means leave the book alone.
type Plan struct {
	CancelAllMarketIDs []string
	Creates            []Level
}

// Empty reports whether the plan carries no action.
func (p Plan) Empty() bool {
	return len(p.CancelAllMarketIDs) == 0 && len(p.Creates) == 0
}
