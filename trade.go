package cryptotax

import (
	"time"
)

// Leg is one side of a trade: a quantity of an asset and its value in the
// native currency.
type Leg struct {
	Symbol   string
	Quantity Quantity
	Value    *Money // nil when the source has no valuation for this leg.
}

// TradeEvent is one row of raw activity, already converted to the native
// currency.
type TradeEvent struct {
	Time     time.Time
	Kind     TradeKind
	Group    string // opaque classification, only used to exclude trades.
	Acquired *Leg   // nil when nothing is acquired.
	Disposed *Leg   // nil when nothing is disposed.
	Line     int    // source line, for diagnostics.
}

// NewLeg is a helper to create a valued leg.
func NewLeg(symbol string, quantity Quantity, value Money) *Leg {
	return &Leg{Symbol: symbol, Quantity: quantity, Value: &value}
}

// NewExchange creates an Exchange trade event.
func NewExchange(on time.Time, line int, acquired, disposed *Leg) TradeEvent {
	return TradeEvent{Time: on, Kind: Exchange, Acquired: acquired, Disposed: disposed, Line: line}
}

// NewIncome creates an Income trade event.
func NewIncome(on time.Time, line int, acquired *Leg) TradeEvent {
	return TradeEvent{Time: on, Kind: Income, Acquired: acquired, Line: line}
}

// NewGift creates a Gift trade event.
func NewGift(on time.Time, line int, acquired *Leg) TradeEvent {
	return TradeEvent{Time: on, Kind: Gift, Acquired: acquired, Line: line}
}

// NewDisposal creates a Disposal trade event.
func NewDisposal(on time.Time, line int, disposed *Leg) TradeEvent {
	return TradeEvent{Time: on, Kind: Disposal, Disposed: disposed, Line: line}
}

// WithGroup returns a copy of the event with its group set.
func (e TradeEvent) WithGroup(group string) TradeEvent {
	e.Group = group
	return e
}
