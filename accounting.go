package cryptotax

import (
	"fmt"
	"maps"
	"slices"

	"github.com/etnz/cryptotax/date"
)

// DefaultMaxOverdraft is the overdraft tolerance used when none is set.
var DefaultMaxOverdraft = Q(1e-9)

// holdingThreshold is the balance under which an asset is not reported as held.
var holdingThreshold = Q(1e-9)

// Options configures an AccountingSystem.
type Options struct {
	// Range is the reporting window; disposals inside it produce tax events.
	Range date.Range
	// MaxOverdraft is the tolerated excess of a disposal over the balance.
	// Nil means DefaultMaxOverdraft, zero means no tolerance.
	MaxOverdraft *Quantity
	// ExcludeGroups lists trade groups to ignore completely.
	ExcludeGroups []string
	// NativeCurrency is the currency all values are expressed in.
	NativeCurrency string
	// Audit enables the audit trail.
	Audit bool
}

// Result holds the outcome of a tax computation.
type Result struct {
	TaxEvents []TaxEvent   // disposals inside the range, in trade order.
	Audit     []AuditEntry // every ledger mutation if enabled.
	Holdings  []Holding    // assets held at the end, sorted by symbol.
}

// AccountingSystem computes average cost basis tax events from a trade history.
//
// It is stateless between runs: each ComputeTax call starts with empty ledgers.
type AccountingSystem struct {
	opts      Options
	overdraft Quantity
	exclude   map[string]struct{}
}

// NewAccountingSystem creates an accounting system and validates its options.
func NewAccountingSystem(opts Options) (*AccountingSystem, error) {
	if err := ValidateCurrency(opts.NativeCurrency); err != nil {
		return nil, fmt.Errorf("invalid native currency: %w", err)
	}
	if opts.Range.From.IsZero() || opts.Range.To.IsZero() {
		return nil, fmt.Errorf("reporting range is not set")
	}
	if opts.Range.To.Before(opts.Range.From) {
		return nil, fmt.Errorf("invalid reporting range %s", opts.Range)
	}
	overdraft := DefaultMaxOverdraft
	if opts.MaxOverdraft != nil {
		overdraft = *opts.MaxOverdraft
	}
	if overdraft.IsNegative() {
		return nil, fmt.Errorf("negative max overdraft %s", overdraft)
	}
	as := &AccountingSystem{opts: opts, overdraft: overdraft, exclude: make(map[string]struct{})}
	for _, g := range opts.ExcludeGroups {
		as.exclude[g] = struct{}{}
	}
	return as, nil
}

// run is the state of a single ComputeTax call.
type run struct {
	*AccountingSystem
	ledgers map[string]*Ledger
	result  Result
}

// ComputeTax processes trades in chronological order and returns the tax
// events of the reporting range.
//
// The first error aborts the computation, it is a *LineError pointing to the
// offending trade.
func (as *AccountingSystem) ComputeTax(trades []TradeEvent) (*Result, error) {
	r := &run{AccountingSystem: as, ledgers: make(map[string]*Ledger)}

	for i, trade := range trades {
		if i > 0 && trade.Time.Before(trades[i-1].Time) {
			return nil, &LineError{Line: trade.Line, Err: fmt.Errorf("%w: %s is before %s", ErrUnsorted, trade.Time, trades[i-1].Time)}
		}
		if date.Of(trade.Time).After(as.opts.Range.To) {
			// Trades are sorted, nothing else can be reported.
			break
		}
		if _, excluded := as.exclude[trade.Group]; excluded {
			continue
		}
		if err := r.apply(trade); err != nil {
			return nil, &LineError{Line: trade.Line, Err: err}
		}
	}

	for _, symbol := range slices.Sorted(maps.Keys(r.ledgers)) {
		l := r.ledgers[symbol]
		if l.Balance().GreaterThan(holdingThreshold) {
			r.result.Holdings = append(r.result.Holdings, Holding{Symbol: symbol, Balance: l.Balance(), CostBasis: l.CostBasis()})
		}
	}
	return &r.result, nil
}

// apply dispatches a trade to the ledgers.
func (r *run) apply(trade TradeEvent) error {
	switch trade.Kind {
	case Exchange:
		if trade.Acquired == nil && trade.Disposed == nil {
			return fmt.Errorf("%w: exchange without legs", ErrInvalidTrade)
		}
		if trade.Acquired != nil && !r.isNative(trade.Acquired.Symbol) {
			// The native leg is the most reliable valuation.
			valued := trade.Acquired
			if trade.Disposed != nil && r.isNative(trade.Disposed.Symbol) {
				valued = trade.Disposed
			}
			value, err := r.value(valued)
			if err != nil {
				return err
			}
			if err := r.acquire(trade, value); err != nil {
				return err
			}
		}
		if trade.Disposed != nil && !r.isNative(trade.Disposed.Symbol) {
			return r.dispose(trade)
		}
		return nil
	case Income:
		if trade.Acquired == nil {
			return fmt.Errorf("%w: income without acquired leg", ErrInvalidTrade)
		}
		if r.isNative(trade.Acquired.Symbol) {
			return nil
		}
		value, err := r.value(trade.Acquired)
		if err != nil {
			return err
		}
		return r.acquire(trade, value)
	case Gift:
		if trade.Acquired == nil {
			return fmt.Errorf("%w: gift without acquired leg", ErrInvalidTrade)
		}
		if r.isNative(trade.Acquired.Symbol) {
			return nil
		}
		return r.acquire(trade, M(0, r.opts.NativeCurrency))
	case Disposal:
		if trade.Disposed == nil {
			return fmt.Errorf("%w: disposal without disposed leg", ErrInvalidTrade)
		}
		if r.isNative(trade.Disposed.Symbol) {
			return nil
		}
		return r.dispose(trade)
	default:
		return fmt.Errorf("%w: unsupported trade kind %v", ErrInvalidTrade, trade.Kind)
	}
}

func (r *run) isNative(symbol string) bool { return symbol == r.opts.NativeCurrency }

// value returns the native currency value of a leg.
func (r *run) value(leg *Leg) (Money, error) {
	if leg.Value == nil {
		return Money{}, fmt.Errorf("%w: missing value for %s", ErrInvalidTrade, leg.Symbol)
	}
	if c := leg.Value.Currency(); c != "" && c != r.opts.NativeCurrency {
		return Money{}, fmt.Errorf("%w: value of %s in %s, want %s", ErrInvalidTrade, leg.Symbol, c, r.opts.NativeCurrency)
	}
	return M(leg.Value.Decimal(), r.opts.NativeCurrency), nil
}

// acquire credits the acquired leg of trade for value.
func (r *run) acquire(trade TradeEvent, value Money) error {
	leg := trade.Acquired
	if !leg.Quantity.IsPositive() {
		return fmt.Errorf("%w: non positive quantity %s %s", ErrInvalidTrade, leg.Quantity, leg.Symbol)
	}
	l, exists := r.ledgers[leg.Symbol]
	if !exists {
		l = NewLedger(leg.Symbol, r.opts.NativeCurrency, r.overdraft)
		r.ledgers[leg.Symbol] = l
	}
	balance, costBasis := l.Balance(), l.CostBasis()
	l.Acquire(leg.Quantity, value)
	r.audit(AuditEntry{
		Time:            trade.Time,
		Line:            trade.Line,
		Kind:            trade.Kind,
		Symbol:          leg.Symbol,
		Quantity:        leg.Quantity,
		Price:           value.Div(leg.Quantity),
		BalanceBefore:   balance,
		BalanceAfter:    l.Balance(),
		CostBasisBefore: costBasis,
		CostBasisAfter:  l.CostBasis(),
	})
	return nil
}

// dispose debits the disposed leg of trade and records its tax event if
// inside the range.
func (r *run) dispose(trade TradeEvent) error {
	leg := trade.Disposed
	if !leg.Quantity.IsPositive() {
		return fmt.Errorf("%w: non positive quantity %s %s", ErrInvalidTrade, leg.Quantity, leg.Symbol)
	}
	l, exists := r.ledgers[leg.Symbol]
	if !exists {
		return fmt.Errorf("%w: disposing %s which has not been acquired yet", ErrUnknownAsset, leg.Symbol)
	}
	value, err := r.value(leg)
	if err != nil {
		return err
	}
	balance, costBasis := l.Balance(), l.CostBasis()
	event, err := l.Dispose(leg.Quantity, value)
	if err != nil {
		return err
	}
	event.Time = trade.Time
	if r.opts.Range.Contains(date.Of(trade.Time)) {
		r.result.TaxEvents = append(r.result.TaxEvents, event)
	}
	r.audit(AuditEntry{
		Time:            trade.Time,
		Line:            trade.Line,
		Kind:            trade.Kind,
		Symbol:          leg.Symbol,
		Quantity:        leg.Quantity.Neg(),
		Price:           value.Div(leg.Quantity),
		BalanceBefore:   balance,
		BalanceAfter:    l.Balance(),
		CostBasisBefore: costBasis,
		CostBasisAfter:  l.CostBasis(),
		TaxEvent:        &event,
	})
	return nil
}

func (r *run) audit(entry AuditEntry) {
	if r.opts.Audit {
		r.result.Audit = append(r.result.Audit, entry)
	}
}
