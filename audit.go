package cryptotax

import "time"

// AuditEntry is a snapshot of one ledger mutation.
type AuditEntry struct {
	Time            time.Time
	Line            int
	Kind            TradeKind
	Symbol          string
	Quantity        Quantity // signed, negative for disposals.
	Price           Money    // value of one unit in this mutation.
	BalanceBefore   Quantity
	BalanceAfter    Quantity
	CostBasisBefore Money
	CostBasisAfter  Money
	TaxEvent        *TaxEvent // set for disposals only.
}

// Gain returns the realized gain of a disposal entry and true, or false for
// acquisitions.
func (a AuditEntry) Gain() (Money, bool) {
	if a.TaxEvent == nil {
		return Money{}, false
	}
	return a.TaxEvent.Gain(), true
}

// Holding is the end of run state of one asset.
type Holding struct {
	Symbol    string
	Balance   Quantity
	CostBasis Money
}

// TotalCost returns the total cost of the held balance.
func (h Holding) TotalCost() Money { return h.CostBasis.Mul(h.Balance) }
