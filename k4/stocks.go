package k4

import (
	"fmt"
	"io"

	"github.com/etnz/cryptotax"
	"github.com/shopspring/decimal"
)

// stockEvent is the file format of a stock sale.
type stockEvent struct {
	Amount   decimal.Decimal `json:"amount"`
	Name     string          `json:"name"`
	Income   decimal.Decimal `json:"income"`
	CostBase decimal.Decimal `json:"costbase"`
}

// DecodeStockEvents reads the stock sales reported in section A, from a
// JSON document like:
//
//	{"trades": [{"amount": 10, "name": "ACME", "income": 1500, "costbase": 1000}]}
func DecodeStockEvents(r io.Reader) ([]cryptotax.TaxEvent, error) {
	var doc struct {
		Trades []stockEvent `json:"trades"`
	}
	if err := decodeJSON(r, &doc); err != nil {
		return nil, fmt.Errorf("cannot decode stock events: %w", err)
	}
	events := make([]cryptotax.TaxEvent, 0, len(doc.Trades))
	for i, t := range doc.Trades {
		if t.Name == "" {
			return nil, fmt.Errorf("stock event %d has no name", i)
		}
		events = append(events, cryptotax.TaxEvent{
			Quantity: cryptotax.Q(t.Amount),
			Symbol:   t.Name,
			Proceeds: cryptotax.M(t.Income, Currency),
			Cost:     cryptotax.M(t.CostBase, Currency),
		})
	}
	return events, nil
}
