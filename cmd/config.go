package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/etnz/cryptotax"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by all commands.
//
// It is read from a YAML file where ${VAR} are expanded from the
// environment, a .env file in the working directory is loaded first.
type Config struct {
	NativeCurrency  string   `yaml:"native_currency"`
	ValueCurrency   string   `yaml:"value_currency"`
	Fiats           []string `yaml:"fiats"`
	ExcludeGroups   []string `yaml:"exclude_groups"`
	MaxOverdraft    string   `yaml:"max_overdraft"`
	Trades          string   `yaml:"trades"`
	Out             string   `yaml:"out"`
	PersonalDetails string   `yaml:"personal_details"`
	Stocks          string   `yaml:"stocks"`
	Rates           Rates    `yaml:"rates"`
}

// Rates locates the conversion rates from the value currency to the native
// currency.
type Rates struct {
	File string `yaml:"file"`
	// Path is the JSONPath of the observations in a JSON file, CSV is
	// assumed when empty.
	Path string `yaml:"path"`
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() *Config {
	return &Config{
		NativeCurrency:  "SEK",
		ValueCurrency:   "SEK",
		Fiats:           cryptotax.DefaultFiats,
		MaxOverdraft:    cryptotax.DefaultMaxOverdraft.String(),
		Trades:          "data/trades.csv",
		Out:             "out",
		PersonalDetails: "data/personal_details.json",
		Stocks:          "data/stocks.json",
		Rates:           Rates{File: "data/rates/usdsek.csv"},
	}
}

// LoadConfig reads the config file at path over the defaults. A missing
// file is not an error.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("no config file, using defaults", "path", path)
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config %q: %w", path, err)
	}
	slog.Debug("configuration loaded", "path", path, "native_currency", cfg.NativeCurrency, "value_currency", cfg.ValueCurrency)
	return cfg, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if err := cryptotax.ValidateCurrency(c.NativeCurrency); err != nil {
		return fmt.Errorf("native_currency: %w", err)
	}
	if err := cryptotax.ValidateCurrency(c.ValueCurrency); err != nil {
		return fmt.Errorf("value_currency: %w", err)
	}
	if _, err := c.Overdraft(); err != nil {
		return err
	}
	return nil
}

// Overdraft returns the parsed max overdraft.
func (c *Config) Overdraft() (cryptotax.Quantity, error) {
	q, err := cryptotax.ParseQuantity(c.MaxOverdraft)
	if err != nil {
		return q, fmt.Errorf("max_overdraft: %w", err)
	}
	if q.IsNegative() {
		return q, fmt.Errorf("max_overdraft: %s is negative", q)
	}
	return q, nil
}

// FiatSet returns the configured fiat currencies.
func (c *Config) FiatSet() cryptotax.FiatSet { return cryptotax.NewFiatSet(c.Fiats...) }

// percent converts a percentage into a ratio.
func percent(p float64) decimal.Decimal { return decimal.NewFromFloat(p).Shift(-2) }
