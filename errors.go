package cryptotax

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientBalance is returned when a disposal exceeds the available
	// balance by more than the overdraft tolerance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrUnknownAsset is returned when disposing an asset that was never acquired.
	ErrUnknownAsset = errors.New("unknown asset")
	// ErrUnsorted is returned when trades are not in chronological order.
	ErrUnsorted = errors.New("trades are not sorted")
	// ErrInvalidTrade is returned when a trade misses a leg, a value, or has
	// a non positive quantity.
	ErrInvalidTrade = errors.New("invalid trade")
	// ErrPrecisionLoss is returned when no quantity prefix keeps the rounding
	// loss under the tolerance.
	ErrPrecisionLoss = errors.New("no prefix with low enough precision loss")
	// ErrDisclosureLimit is returned when a rounding disclosure text is too long.
	ErrDisclosureLimit = errors.New("disclosure text exceeds limit")
	// ErrNoRate is returned when no conversion rate is known for a date.
	ErrNoRate = errors.New("no conversion rate")
)

// BalanceError details an ErrInsufficientBalance.
type BalanceError struct {
	Symbol    string
	Requested Quantity
	Available Quantity
}

func (e *BalanceError) Error() string {
	return fmt.Sprintf("%v for %s: %s < %s", ErrInsufficientBalance, e.Symbol, e.Available, e.Requested)
}

func (e *BalanceError) Unwrap() error { return ErrInsufficientBalance }

// LineError locates an error in the trade source.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }

func (e *LineError) Unwrap() error { return e.Err }
