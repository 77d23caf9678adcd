package cryptotax

import "fmt"

// TradeKind defines how a trade affects the asset ledgers.
type TradeKind int

const (
	// Exchange swaps an asset for another asset, or for the native currency.
	Exchange TradeKind = iota
	// Income receives an asset with a known acquisition value (mining, staking).
	Income
	// Gift receives an asset at zero cost.
	Gift
	// Disposal spends an asset without acquiring anything in return.
	Disposal
)

func (k TradeKind) String() string {
	switch k {
	case Exchange:
		return "exchange"
	case Income:
		return "income"
	case Gift:
		return "gift"
	case Disposal:
		return "disposal"
	default:
		return "unknown"
	}
}

// ParseTradeKind parses a string into a TradeKind.
func ParseTradeKind(s string) (TradeKind, error) {
	switch s {
	case "exchange":
		return Exchange, nil
	case "income":
		return Income, nil
	case "gift":
		return Gift, nil
	case "disposal":
		return Disposal, nil
	default:
		return 0, fmt.Errorf("unknown trade kind: %q", s)
	}
}
