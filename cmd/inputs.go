package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/cryptotax"
	"github.com/etnz/cryptotax/cointracking"
	"github.com/etnz/cryptotax/date"
	"github.com/etnz/cryptotax/k4"
)

// DecodeTrades reads the CoinTracking trades of the configuration.
func DecodeTrades(cfg *Config) ([]cryptotax.TradeEvent, error) {
	opts := cointracking.Options{
		ValueCurrency:  cfg.ValueCurrency,
		NativeCurrency: cfg.NativeCurrency,
	}
	if cfg.ValueCurrency != cfg.NativeCurrency {
		rates, err := DecodeRates(cfg.Rates)
		if err != nil {
			return nil, err
		}
		opts.Rates = rates
	}

	f, err := os.Open(cfg.Trades)
	if err != nil {
		return nil, fmt.Errorf("cannot open trades: %w", err)
	}
	defer f.Close()

	trades, err := cointracking.Decode(f, opts)
	if err != nil {
		return nil, fmt.Errorf("cannot decode trades %q: %w", cfg.Trades, err)
	}
	slog.Debug("trades loaded", "file", cfg.Trades, "count", len(trades))
	return trades, nil
}

// DecodeRates reads conversion rates, from JSON when the file has a .json
// extension and from CSV otherwise.
func DecodeRates(r Rates) (*cryptotax.RateHistory, error) {
	f, err := os.Open(r.File)
	if err != nil {
		return nil, fmt.Errorf("cannot open rates: %w", err)
	}
	defer f.Close()

	var h *cryptotax.RateHistory
	if strings.EqualFold(filepath.Ext(r.File), ".json") {
		path := r.Path
		if path == "" {
			path = "$.observations[*]"
		}
		h, err = cryptotax.DecodeRatesJSON(f, path)
	} else {
		h, err = cryptotax.DecodeRatesCSV(f)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot decode rates %q: %w", r.File, err)
	}
	slog.Debug("rates loaded", "file", r.File, "days", h.Len())
	return h, nil
}

// DecodeDetails reads the personal details.
func DecodeDetails(cfg *Config) (k4.PersonalDetails, error) {
	f, err := os.Open(cfg.PersonalDetails)
	if err != nil {
		return k4.PersonalDetails{}, fmt.Errorf("cannot open personal details: %w", err)
	}
	defer f.Close()
	return k4.DecodePersonalDetails(f)
}

// DecodeStocks reads the stock events if the file exists.
func DecodeStocks(cfg *Config) ([]cryptotax.TaxEvent, error) {
	f, err := os.Open(cfg.Stocks)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("no stock events", "file", cfg.Stocks)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open stock events: %w", err)
	}
	defer f.Close()
	return k4.DecodeStockEvents(f)
}

// computeTax runs the accounting of a year on the configured trades.
func computeTax(cfg *Config, year int, audit bool) (*cryptotax.Result, error) {
	overdraft, err := cfg.Overdraft()
	if err != nil {
		return nil, err
	}
	sys, err := cryptotax.NewAccountingSystem(cryptotax.Options{
		Range:          date.Year(year),
		MaxOverdraft:   &overdraft,
		ExcludeGroups:  cfg.ExcludeGroups,
		NativeCurrency: cfg.NativeCurrency,
		Audit:          audit,
	})
	if err != nil {
		return nil, err
	}
	trades, err := DecodeTrades(cfg)
	if err != nil {
		return nil, err
	}
	res, err := sys.ComputeTax(trades)
	if err != nil {
		return nil, fmt.Errorf("cannot compute tax for %d: %w", year, err)
	}
	slog.Debug("tax computed", "year", year, "tax_events", len(res.TaxEvents), "holdings", len(res.Holdings))
	return res, nil
}
