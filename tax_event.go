package cryptotax

import "time"

// TaxEvent is the realized result of one disposal.
type TaxEvent struct {
	Time     time.Time // zero for synthetic events.
	Quantity Quantity
	Symbol   string
	Proceeds Money // disposal value.
	Cost     Money // quantity times the average cost basis.
}

// Gain returns the realized gain, negative for a loss.
func (e TaxEvent) Gain() Money { return e.Proceeds.Sub(e.Cost) }

// Profit returns the gain if positive, zero otherwise.
func (e TaxEvent) Profit() Money {
	if g := e.Gain(); g.IsPositive() {
		return g
	}
	return M(0, e.Proceeds.Currency())
}

// Loss returns the opposite of the gain if negative, zero otherwise.
func (e TaxEvent) Loss() Money {
	if g := e.Gain(); g.IsNegative() {
		return g.Neg()
	}
	return M(0, e.Proceeds.Currency())
}
