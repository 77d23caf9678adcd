package cryptotax

import (
	"maps"
	"slices"
)

// Aggregate collapses tax events into at most one profit and one loss event
// per symbol.
//
// Symbols are sorted, the profit event comes before the loss event, and an
// aggregate with a zero quantity is omitted.
func Aggregate(events []TaxEvent) []TaxEvent {
	type pair struct{ profit, loss TaxEvent }
	bySymbol := make(map[string]*pair)
	add := func(sum *TaxEvent, e TaxEvent) {
		sum.Symbol = e.Symbol
		sum.Quantity = sum.Quantity.Add(e.Quantity)
		sum.Proceeds = sum.Proceeds.Add(e.Proceeds)
		sum.Cost = sum.Cost.Add(e.Cost)
	}
	for _, e := range events {
		p, exists := bySymbol[e.Symbol]
		if !exists {
			p = &pair{}
			bySymbol[e.Symbol] = p
		}
		if e.Gain().IsPositive() {
			add(&p.profit, e)
		} else {
			add(&p.loss, e)
		}
	}

	var aggregated []TaxEvent
	for _, symbol := range slices.Sorted(maps.Keys(bySymbol)) {
		p := bySymbol[symbol]
		for _, e := range []TaxEvent{p.profit, p.loss} {
			if e.Quantity.IsZero() {
				continue
			}
			aggregated = append(aggregated, e)
		}
	}
	return aggregated
}
