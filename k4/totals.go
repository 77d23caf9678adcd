package k4

import (
	"github.com/etnz/cryptotax"
)

// SectionTotal is the summed profit and loss of a section, to be reported
// on the main income tax form.
type SectionTotal struct {
	Section   SectionName
	Profit    cryptotax.Money
	Loss      cryptotax.Money
	ProfitBox string
	LossBox   string
}

// Totals are the section totals in form order.
type Totals []SectionTotal

// NewTotals sums profits and losses per section. Section A is only present
// with stock events.
func NewTotals(events, stocks []cryptotax.TaxEvent, isFiat func(string) bool) Totals {
	var fiat, other []cryptotax.TaxEvent
	for _, e := range events {
		if isFiat(e.Symbol) {
			fiat = append(fiat, e)
		} else {
			other = append(other, e)
		}
	}
	var totals Totals
	if len(stocks) > 0 {
		totals = append(totals, newTotal(SectionA, stocks))
	}
	return append(totals, newTotal(SectionC, fiat), newTotal(SectionD, other))
}

func newTotal(name SectionName, events []cryptotax.TaxEvent) SectionTotal {
	l := layouts[name]
	t := SectionTotal{
		Section:   name,
		Profit:    cryptotax.M(0, Currency),
		Loss:      cryptotax.M(0, Currency),
		ProfitBox: l.profitBox,
		LossBox:   l.lossBox,
	}
	for _, e := range events {
		t.Profit = t.Profit.Add(e.Profit())
		t.Loss = t.Loss.Add(e.Loss())
	}
	return t
}
