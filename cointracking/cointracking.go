// Package cointracking decodes CoinTracking "Trade List" CSV exports into
// trade events.
package cointracking

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/etnz/cryptotax"
	"github.com/shopspring/decimal"
)

// DateFormat is the CoinTracking date layout.
const DateFormat = "02.01.2006 15:04"

// absent is the CoinTracking marker for an empty cell.
const absent = "-"

// DefaultKinds maps CoinTracking types to trade kinds. Types mapped to nil
// are ignored.
var DefaultKinds = map[string]*cryptotax.TradeKind{
	"Trade":           kind(cryptotax.Exchange),
	"Mining":          kind(cryptotax.Income),
	"Deposit":         kind(cryptotax.Income),
	"Income":          kind(cryptotax.Income),
	"Staking":         kind(cryptotax.Income),
	"Airdrop":         kind(cryptotax.Income),
	"Reward / Bonus":  kind(cryptotax.Income),
	"Interest Income": kind(cryptotax.Income),
	"Gift/Tip":        kind(cryptotax.Gift),
	"Spend":           kind(cryptotax.Disposal),
	"Donation":        kind(cryptotax.Disposal),
	"Gift":            kind(cryptotax.Disposal),
	"Lost":            kind(cryptotax.Disposal),
	"Stolen":          kind(cryptotax.Disposal),
	"Withdrawal":      nil,
}

func kind(k cryptotax.TradeKind) *cryptotax.TradeKind { return &k }

// Options configures the decoding.
type Options struct {
	// ValueCurrency is the currency of the "Value in XXX" columns, SEK by default.
	ValueCurrency string
	// NativeCurrency is the currency of the decoded values, ValueCurrency by default.
	NativeCurrency string
	// Rates converts values from ValueCurrency to NativeCurrency, values are
	// kept as is when nil.
	Rates cryptotax.RateConverter
	// Kinds overrides DefaultKinds.
	Kinds map[string]*cryptotax.TradeKind
	// Location of the trade times, UTC by default.
	Location *time.Location
}

// columns holds the index of the used columns.
type columns struct {
	date, kind, group              int
	buyCur, buyAmount, buyValue    int
	sellCur, sellAmount, sellValue int
}

func newColumns(header []string, valueColumn string) (columns, error) {
	indices := func(name string) []int {
		var idx []int
		for i, col := range header {
			if strings.TrimSpace(col) == name {
				idx = append(idx, i)
			}
		}
		return idx
	}
	var missing []string
	one := func(name string, n int) []int {
		idx := indices(name)
		if len(idx) < n {
			missing = append(missing, name)
			return make([]int, n)
		}
		return idx
	}
	cur, value := one("Cur.", 2), one(valueColumn, 2)
	c := columns{
		date:       one("Date", 1)[0],
		kind:       one("Type", 1)[0],
		group:      one("Group", 1)[0],
		buyAmount:  one("Buy", 1)[0],
		sellAmount: one("Sell", 1)[0],
		buyCur:     cur[0],
		sellCur:    cur[1],
		buyValue:   value[0],
		sellValue:  value[1],
	}
	if len(missing) > 0 {
		return columns{}, fmt.Errorf("missing columns %q", missing)
	}
	return c, nil
}

// Decode reads a CoinTracking CSV and returns its trades sorted
// chronologically. Lines are numbered from 1, the header being line 1.
func Decode(r io.Reader, opts Options) ([]cryptotax.TradeEvent, error) {
	if opts.ValueCurrency == "" {
		opts.ValueCurrency = "SEK"
	}
	if opts.NativeCurrency == "" {
		opts.NativeCurrency = opts.ValueCurrency
	}
	if opts.Kinds == nil {
		opts.Kinds = DefaultKinds
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.ValueCurrency != opts.NativeCurrency && opts.Rates == nil {
		return nil, fmt.Errorf("values in %s need rates to convert to %s", opts.ValueCurrency, opts.NativeCurrency)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read header: %w", err)
	}
	// Exports start with a UTF-8 byte order mark.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	cols, err := newColumns(header, "Value in "+opts.ValueCurrency)
	if err != nil {
		return nil, err
	}

	var trades []cryptotax.TradeEvent
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read trades: %w", err)
		}
		line, _ := reader.FieldPos(0)
		trade, keep, err := decodeRecord(record, cols, opts)
		if err != nil {
			return nil, &cryptotax.LineError{Line: line, Err: err}
		}
		if keep {
			trade.Line = line
			trades = append(trades, trade)
		}
	}

	// Exports list the latest trade first.
	slices.Reverse(trades)
	slices.SortStableFunc(trades, func(a, b cryptotax.TradeEvent) int { return a.Time.Compare(b.Time) })
	return trades, nil
}

// decodeRecord decodes a single row, keep is false for ignored types.
func decodeRecord(record []string, cols columns, opts Options) (trade cryptotax.TradeEvent, keep bool, err error) {
	cell := func(i int) string {
		if i >= len(record) {
			return absent
		}
		return strings.TrimSpace(record[i])
	}

	typ := cell(cols.kind)
	k, known := opts.Kinds[typ]
	if !known {
		return trade, false, fmt.Errorf("unknown trade type %q", typ)
	}
	if k == nil {
		return trade, false, nil
	}
	trade.Kind = *k

	trade.Time, err = time.ParseInLocation(DateFormat, cell(cols.date), opts.Location)
	if err != nil {
		return trade, false, fmt.Errorf("invalid date: %w", err)
	}
	if g := cell(cols.group); g != absent {
		trade.Group = g
	}

	var rate *decimal.Decimal
	if opts.Rates != nil {
		r, err := opts.Rates.Rate(trade.Time)
		if err != nil {
			return trade, false, err
		}
		rate = &r
	}

	trade.Acquired, err = decodeLeg(cell(cols.buyCur), cell(cols.buyAmount), cell(cols.buyValue), opts.NativeCurrency, rate)
	if err != nil {
		return trade, false, fmt.Errorf("invalid buy: %w", err)
	}
	trade.Disposed, err = decodeLeg(cell(cols.sellCur), cell(cols.sellAmount), cell(cols.sellValue), opts.NativeCurrency, rate)
	if err != nil {
		return trade, false, fmt.Errorf("invalid sell: %w", err)
	}
	return trade, true, nil
}

// decodeLeg decodes one side of a row, it returns nil when the currency or
// the amount is absent.
func decodeLeg(symbol, amount, value, native string, rate *decimal.Decimal) (*cryptotax.Leg, error) {
	if symbol == absent || amount == absent || symbol == "" || amount == "" {
		return nil, nil
	}
	q, err := cryptotax.ParseQuantity(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	leg := &cryptotax.Leg{Symbol: symbol, Quantity: q}
	if value == absent || value == "" {
		return leg, nil
	}
	v, err := cryptotax.ParseMoney(value, native)
	if err != nil {
		return nil, fmt.Errorf("invalid value %q: %w", value, err)
	}
	if rate != nil {
		v = v.Scale(*rate)
	}
	leg.Value = &v
	return leg, nil
}
