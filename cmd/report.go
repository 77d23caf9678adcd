package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/etnz/cryptotax"
	"github.com/etnz/cryptotax/date"
	"github.com/etnz/cryptotax/k4"
	"github.com/etnz/cryptotax/renderer"
	"github.com/google/subcommands"
)

const (
	formatSRU      = "sru"
	formatMarkdown = "md"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	taxFlags
	out                     string
	format                  string
	decimalSRU              bool
	coinReport              bool
	simplified              bool
	roundingReport          bool
	roundingReportThreshold float64
	prefixTolerance         float64
	disclosureLimit         int
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "generate the K4 form of a year" }
func (*reportCmd) Usage() string {
	return `k4tax report [-format sru|md] [-out <dir>] [-simplified] [-rounding-report] <year>

  Computes the capital gains of the year and generates the K4 form, either
  as SRU files to upload to Skatteverket or as a markdown preview.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	c.taxFlags.SetFlags(f)
	f.StringVar(&c.out, "out", "", "Output folder (default from config)")
	f.StringVar(&c.format, "format", formatSRU, "The file format of the generated report (sru, md)")
	f.BoolVar(&c.decimalSRU, "decimal-sru", false, "Report decimal quantities in sru mode (not supported by Skatteverket yet)")
	f.BoolVar(&c.coinReport, "coin-report", false, "Write the assets held at the end of the year with their cost basis in the out folder")
	f.BoolVar(&c.simplified, "simplified", false, "Report only two lines per asset: aggregated profit and loss")
	f.BoolVar(&c.roundingReport, "rounding-report", false, "Write the roundings, to paste in Övriga upplysningar, in the out folder")
	f.Float64Var(&c.roundingReportThreshold, "rounding-report-threshold", 1, "Difference in percent required for a rounding to be reported")
	f.Float64Var(&c.prefixTolerance, "prefix-tolerance", 0, "Report small quantities with a milli or micro prefix when rounding loses more than this percent (0 disables)")
	f.IntVar(&c.disclosureLimit, "disclosure-limit", 1000, "Maximum characters of the rounding report (0 disables)")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	year, err := parseYear(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing arguments: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.format != formatSRU && c.format != formatMarkdown {
		fmt.Fprintf(os.Stderr, "Error parsing format: unknown format %q\n", c.format)
		return subcommands.ExitUsageError
	}
	cfg, err := c.config(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.out != "" {
		cfg.Out = c.out
	}
	if cfg.NativeCurrency != k4.Currency {
		fmt.Fprintf(os.Stderr, "Error: K4 amounts are in %s, native currency is %s\n", k4.Currency, cfg.NativeCurrency)
		return subcommands.ExitUsageError
	}

	res, err := computeTax(cfg, year, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing tax: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := os.MkdirAll(cfg.Out, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output folder: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.coinReport {
		path := filepath.Join(cfg.Out, "coin_report.md")
		md := renderer.HoldingsMarkdown(date.Year(year).To, res.Holdings)
		if err := writeFile(path, func(w io.Writer) error { _, err := io.WriteString(w, md); return err }); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing coin report: %v\n", err)
			return subcommands.ExitFailure
		}
		slog.Info("coin report written", "file", path, "assets", len(res.Holdings))
	}

	events := res.TaxEvents
	if c.simplified {
		events = cryptotax.Aggregate(events)
	}

	isFiat := cfg.FiatSet().IsFiat
	if c.format == formatSRU && !c.decimalSRU {
		if c.prefixTolerance > 0 {
			events, err = cryptotax.PrefixQuantities(events, percent(c.prefixTolerance), isFiat)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error converting quantities: %v\n", err)
				return subcommands.ExitFailure
			}
		}
		// Roundings are audited in the unit reported in the SRU file.
		if c.roundingReport {
			roundings := cryptotax.AuditRounding(events, percent(c.roundingReportThreshold))
			text, err := cryptotax.RoundingReport(roundings, c.disclosureLimit)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error generating rounding report: %v\n", err)
				return subcommands.ExitFailure
			}
			path := filepath.Join(cfg.Out, "rounding_report.txt")
			if err := writeFile(path, func(w io.Writer) error { _, err := io.WriteString(w, text); return err }); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing rounding report: %v\n", err)
				return subcommands.ExitFailure
			}
			slog.Info("rounding report written", "file", path, "roundings", len(roundings))
		}
		events = cryptotax.RoundQuantities(events)
	}
	events = cryptotax.RoundAmounts(events)

	details, err := DecodeDetails(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading personal details: %v\n", err)
		return subcommands.ExitFailure
	}
	stocks, err := DecodeStocks(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading stock events: %v\n", err)
		return subcommands.ExitFailure
	}
	pages := k4.NewPages(year, details, events, stocks, isFiat)

	switch c.format {
	case formatSRU:
		info := filepath.Join(cfg.Out, k4.InfoFile)
		if err := writeFile(info, func(w io.Writer) error { return k4.EncodeInfo(w, details) }); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing SRU: %v\n", err)
			return subcommands.ExitFailure
		}
		blanketter := filepath.Join(cfg.Out, k4.BlanketterFile)
		generated := now()
		if err := writeFile(blanketter, func(w io.Writer) error { return k4.EncodeBlanketter(w, pages, generated) }); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing SRU: %v\n", err)
			return subcommands.ExitFailure
		}
		slog.Info("SRU files written", "info", info, "blanketter", blanketter, "pages", len(pages))
	case formatMarkdown:
		printMarkdown(renderer.GainsMarkdown(fmt.Sprintf("Tax Events %d", year), events))
		printMarkdown(renderer.PagesMarkdown(pages))
	}

	printMarkdown(renderer.TotalsMarkdown(k4.NewTotals(events, stocks, isFiat)))
	return subcommands.ExitSuccess
}
