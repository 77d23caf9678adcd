package cryptotax

import (
	"fmt"
	"slices"

	"github.com/Rhymond/go-money"
)

// DefaultFiats are the currencies reported as fiat (K4 section C) by default.
var DefaultFiats = []string{"EUR", "USD", "SEK"}

// ValidateCurrency checks that code is a known ISO 4217 currency.
func ValidateCurrency(code string) error {
	if code == "" {
		return fmt.Errorf("currency is missing")
	}
	if money.GetCurrency(code) == nil {
		return fmt.Errorf("unknown currency %q", code)
	}
	return nil
}

// FiatSet tells whether a symbol is a fiat currency.
type FiatSet []string

// NewFiatSet returns a FiatSet of the given codes, or DefaultFiats if none.
func NewFiatSet(codes ...string) FiatSet {
	if len(codes) == 0 {
		codes = DefaultFiats
	}
	return FiatSet(slices.Clone(codes))
}

// IsFiat reports whether symbol is in the set.
func (f FiatSet) IsFiat(symbol string) bool { return slices.Contains(f, symbol) }
