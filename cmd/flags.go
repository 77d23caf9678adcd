package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// taxFlags are the flags shared by the tax commands, set flags override
// the configuration file.
type taxFlags struct {
	trades        string
	excludeGroups string
	maxOverdraft  string
	usd           bool
}

func (t *taxFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&t.trades, "trades", "", "CoinTracking trade list CSV file (default from config)")
	f.StringVar(&t.excludeGroups, "exclude-groups", "", "Comma separated CoinTracking groups to exclude from the report")
	f.StringVar(&t.maxOverdraft, "max-overdraft", "", "Maximum overdraft allowed per asset, the balance is then set to zero (0 allows none)")
	f.BoolVar(&t.usd, "usd", false, "CoinTracking values are in USD, convert them with the configured rates")
}

// config loads the configuration file and applies the set flags.
func (t *taxFlags) config(f *flag.FlagSet) (*Config, error) {
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool)
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	if set["trades"] {
		cfg.Trades = t.trades
	}
	if set["exclude-groups"] {
		cfg.ExcludeGroups = splitList(t.excludeGroups)
	}
	if set["max-overdraft"] {
		cfg.MaxOverdraft = t.maxOverdraft
	}
	if t.usd {
		cfg.ValueCurrency = "USD"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// splitList splits a comma separated list, ignoring empty items.
func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// parseYear parses the single year argument of a tax command.
func parseYear(f *flag.FlagSet) (int, error) {
	if f.NArg() != 1 {
		return 0, fmt.Errorf("expecting exactly one year argument, got %d", f.NArg())
	}
	year, err := strconv.Atoi(f.Arg(0))
	if err != nil || year < 1 {
		return 0, fmt.Errorf("invalid year %q", f.Arg(0))
	}
	return year, nil
}

// writeFile creates path and writes it.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("cannot write %q: %w", path, err)
	}
	return f.Close()
}
