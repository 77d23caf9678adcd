package cryptotax

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Rounding records a quantity whose integer rounding diverges materially.
type Rounding struct {
	Event   TaxEvent
	Rounded Quantity
}

// Divergence returns the relative rounding error.
func (r Rounding) Divergence() decimal.Decimal {
	return divergence(r.Event.Quantity.Decimal(), r.Rounded.Decimal())
}

func divergence(value, rounded decimal.Decimal) decimal.Decimal {
	return rounded.Sub(value).Abs().Div(value.Abs())
}

// AuditRounding returns the events whose quantity, once rounded to an
// integer, diverges by more than threshold (a ratio, 0.01 for 1%).
// Events with a zero quantity are never returned.
func AuditRounding(events []TaxEvent, threshold decimal.Decimal) []Rounding {
	var roundings []Rounding
	for _, e := range events {
		if e.Quantity.IsZero() {
			continue
		}
		rounded := e.Quantity.Round(0)
		if divergence(e.Quantity.Decimal(), rounded.Decimal()).GreaterThan(threshold) {
			roundings = append(roundings, Rounding{Event: e, Rounded: rounded})
		}
	}
	return roundings
}

// RoundingReport formats roundings as a disclosure text, one rounding per
// line.
//
// It fails with ErrDisclosureLimit if the text is longer than limit
// characters, a limit <= 0 means no limit.
func RoundingReport(roundings []Rounding, limit int) (string, error) {
	var b strings.Builder
	for _, r := range roundings {
		fmt.Fprintf(&b, "%s %s avrundat till %s.\n", r.Event.Quantity, r.Event.Symbol, r.Rounded)
	}
	text := b.String()
	if n := utf8.RuneCountInString(text); limit > 0 && n > limit {
		return text, fmt.Errorf("%w: %d characters for %d roundings, limit is %d", ErrDisclosureLimit, n, len(roundings), limit)
	}
	return text, nil
}

// RoundQuantities returns a copy of events with quantities rounded to integers.
func RoundQuantities(events []TaxEvent) []TaxEvent {
	rounded := make([]TaxEvent, len(events))
	for i, e := range events {
		e.Quantity = e.Quantity.Round(0)
		rounded[i] = e
	}
	return rounded
}

// RoundAmounts returns a copy of events with proceeds and cost rounded to
// integers.
func RoundAmounts(events []TaxEvent) []TaxEvent {
	rounded := make([]TaxEvent, len(events))
	for i, e := range events {
		e.Proceeds = e.Proceeds.Round(0)
		e.Cost = e.Cost.Round(0)
		rounded[i] = e
	}
	return rounded
}

// Prefix is a unit prefix used to report small quantities as integers.
type Prefix struct {
	Name   string
	Factor decimal.Decimal
}

// Prefixes are tried in order by ScaleQuantities.
var Prefixes = []Prefix{
	{"", decimal.NewFromInt(1)},
	{"milli", decimal.NewFromInt(1_000)},
	{"micro", decimal.NewFromInt(1_000_000)},
}

// ScaleQuantities converts quantities to integers, using for each non fiat
// symbol the first prefix whose worst relative rounding loss is below
// tolerance. It is RoundQuantities of PrefixQuantities.
func ScaleQuantities(events []TaxEvent, tolerance decimal.Decimal, isFiat func(string) bool) ([]TaxEvent, error) {
	prefixed, err := PrefixQuantities(events, tolerance, isFiat)
	if err != nil {
		return nil, err
	}
	return RoundQuantities(prefixed), nil
}

// PrefixQuantities returns a copy of events with the quantity of each non
// fiat symbol expressed with the first prefix whose worst relative rounding
// loss is below tolerance. The symbol is renamed with the prefix (milliBTC).
// Quantities are not rounded.
//
// It fails with ErrPrecisionLoss if no prefix fits a symbol.
func PrefixQuantities(events []TaxEvent, tolerance decimal.Decimal, isFiat func(string) bool) ([]TaxEvent, error) {
	chosen := make(map[string]Prefix)
	for _, e := range events {
		if isFiat(e.Symbol) {
			continue
		}
		if _, done := chosen[e.Symbol]; done {
			continue
		}
		prefix, ok := bestPrefix(events, e.Symbol, tolerance)
		if !ok {
			return nil, fmt.Errorf("%w for %s", ErrPrecisionLoss, e.Symbol)
		}
		chosen[e.Symbol] = prefix
	}

	prefixed := make([]TaxEvent, len(events))
	for i, e := range events {
		if prefix, ok := chosen[e.Symbol]; ok {
			e.Quantity = e.Quantity.Scale(prefix.Factor)
			e.Symbol = prefix.Name + e.Symbol
		}
		prefixed[i] = e
	}
	return prefixed, nil
}

// bestPrefix returns the first prefix keeping all symbol's events under tolerance.
func bestPrefix(events []TaxEvent, symbol string, tolerance decimal.Decimal) (Prefix, bool) {
	for _, prefix := range Prefixes {
		worst := decimal.Zero
		for _, e := range events {
			if e.Symbol != symbol || e.Quantity.IsZero() {
				continue
			}
			q := e.Quantity.Decimal().Mul(prefix.Factor)
			if loss := divergence(q, q.RoundBank(0)); loss.GreaterThan(worst) {
				worst = loss
			}
		}
		if worst.LessThan(tolerance) {
			return prefix, true
		}
	}
	return Prefix{}, false
}
