package cryptotax

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/cryptotax/date"
	"github.com/shopspring/decimal"
)

// RateConverter returns the factor converting values from a reporting
// currency into the native currency at a given time.
type RateConverter interface {
	Rate(on time.Time) (decimal.Decimal, error)
}

// RateHistory is a RateConverter backed by daily rates.
//
// The rate of a time is the rate of the latest day on or before it.
type RateHistory struct {
	rates date.History[float64]
}

// Append adds the rate of a day.
func (h *RateHistory) Append(on date.Date, rate float64) *RateHistory {
	h.rates.Append(on, rate)
	return h
}

// Len returns the number of days with a rate.
func (h *RateHistory) Len() int { return h.rates.Len() }

// Rate implements RateConverter.
func (h *RateHistory) Rate(on time.Time) (decimal.Decimal, error) {
	day := date.Of(on)
	rate, ok := h.rates.ValueAsOf(day)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w on %s, first known rate is on %s", ErrNoRate, day, h.rates.First())
	}
	return decimal.NewFromFloat(rate), nil
}

// DecodeRatesCSV reads daily rates from a CSV with a header row, the date
// in the first column and the rate in the second (like a "Date,Close"
// export).
func DecodeRatesCSV(r io.Reader) (*RateHistory, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	h := new(RateHistory)
	header := true
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read rates: %w", err)
		}
		if header {
			header = false
			continue
		}
		line, _ := reader.FieldPos(0)
		if len(record) < 2 {
			return nil, fmt.Errorf("line %d: want date and rate columns, got %d columns", line, len(record))
		}
		on, rate, err := parseRate(record[0], record[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		h.Append(on, rate)
	}
	return h, nil
}

// DecodeRatesJSON reads daily rates from a JSON document. The path is a
// JSONPath expression selecting the observations, each one an object with
// a "date" and a "value" (like "$.observations[*]").
func DecodeRatesJSON(r io.Reader, path string) (*RateHistory, error) {
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("cannot decode rates: %w", err)
	}
	selected, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("cannot select rates with %q: %w", path, err)
	}
	observations, ok := selected.([]any)
	if !ok {
		return nil, fmt.Errorf("rates path %q does not select a list", path)
	}

	h := new(RateHistory)
	for i, o := range observations {
		obs, ok := o.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("observation %d is not an object", i)
		}
		day, _ := obs["date"].(string)
		var value string
		switch v := obs["value"].(type) {
		case float64:
			value = strconv.FormatFloat(v, 'f', -1, 64)
		case string:
			value = v
		default:
			return nil, fmt.Errorf("observation %d: invalid value %v", i, obs["value"])
		}
		on, rate, err := parseRate(day, value)
		if err != nil {
			return nil, fmt.Errorf("observation %d: %w", i, err)
		}
		h.Append(on, rate)
	}
	return h, nil
}

func parseRate(day, value string) (date.Date, float64, error) {
	// Some exports carry a time part.
	day, _, _ = strings.Cut(strings.TrimSpace(day), " ")
	on, err := date.Parse(day)
	if err != nil {
		return date.Date{}, 0, err
	}
	rate, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return date.Date{}, 0, fmt.Errorf("invalid rate %q: %w", value, err)
	}
	return on, rate, nil
}
