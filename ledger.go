package cryptotax

import "fmt"

// Ledger holds the balance and the average cost basis of one asset.
//
// Only acquisitions change the average cost basis, disposals consume the
// balance at the current average.
type Ledger struct {
	symbol    string
	balance   Quantity
	costBasis Money    // average cost of one unit.
	overdraft Quantity // tolerated negative excursion of the balance.
}

// NewLedger creates an empty ledger for symbol. Costs are expressed in
// currency.
func NewLedger(symbol, currency string, maxOverdraft Quantity) *Ledger {
	return &Ledger{
		symbol:    symbol,
		costBasis: M(0, currency),
		overdraft: maxOverdraft,
	}
}

// Symbol returns the asset symbol.
func (l *Ledger) Symbol() string { return l.symbol }

// Balance returns the current quantity held.
func (l *Ledger) Balance() Quantity { return l.balance }

// CostBasis returns the current average cost of one unit.
func (l *Ledger) CostBasis() Money { return l.costBasis }

// Acquire adds quantity to the balance for a total value, and re-bases the
// average cost.
//
// It panics if quantity is not positive.
func (l *Ledger) Acquire(quantity Quantity, value Money) {
	if !quantity.IsPositive() {
		panic(fmt.Sprintf("acquire %s: non positive quantity %s", l.symbol, quantity))
	}
	newBalance := l.balance.Add(quantity)
	l.costBasis = l.costBasis.Mul(l.balance).Add(value).Div(newBalance)
	l.balance = newBalance
}

// Dispose removes quantity from the balance for a total value, and returns
// the realized tax event.
//
// A remaining balance below zero but within the overdraft tolerance is
// cleared to zero.
// It panics if quantity is not positive.
func (l *Ledger) Dispose(quantity Quantity, value Money) (TaxEvent, error) {
	if !quantity.IsPositive() {
		panic(fmt.Sprintf("dispose %s: non positive quantity %s", l.symbol, quantity))
	}
	remaining := l.balance.Sub(quantity)
	if remaining.LessThan(l.overdraft.Neg()) {
		return TaxEvent{}, &BalanceError{Symbol: l.symbol, Requested: quantity, Available: l.balance}
	}
	if remaining.IsNegative() {
		remaining = Q(0)
	}

	event := TaxEvent{
		Quantity: quantity,
		Symbol:   l.symbol,
		Proceeds: value,
		Cost:     l.costBasis.Mul(quantity),
	}
	l.balance = remaining
	return event, nil
}
