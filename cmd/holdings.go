package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cryptotax/date"
	"github.com/etnz/cryptotax/renderer"
	"github.com/google/subcommands"
)

// holdingsCmd holds the flags for the 'holdings' subcommand.
type holdingsCmd struct {
	taxFlags
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "show the assets held at the end of a year" }
func (*holdingsCmd) Usage() string {
	return `k4tax holdings <year>

  Shows the assets held at the end of the year with their average cost
  basis, carried forward to the next year.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) { c.taxFlags.SetFlags(f) }

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	year, err := parseYear(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing arguments: %v\n", err)
		return subcommands.ExitUsageError
	}
	cfg, err := c.config(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	res, err := computeTax(cfg, year, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing tax: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.HoldingsMarkdown(date.Year(year).To, res.Holdings))
	return subcommands.ExitSuccess
}
