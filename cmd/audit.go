package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/etnz/cryptotax"
	"github.com/etnz/cryptotax/renderer"
	"github.com/google/subcommands"
)

// auditCmd holds the flags for the 'audit' subcommand.
type auditCmd struct {
	taxFlags
	asset string
}

func (*auditCmd) Name() string     { return "audit" }
func (*auditCmd) Synopsis() string { return "show every ledger mutation up to the end of a year" }
func (*auditCmd) Usage() string {
	return `k4tax audit [-asset <symbol>] <year>

  Replays the trades up to the end of the year and shows, for each ledger
  mutation, the balance and the average cost basis after it.
`
}

func (c *auditCmd) SetFlags(f *flag.FlagSet) {
	c.taxFlags.SetFlags(f)
	f.StringVar(&c.asset, "asset", "", "Only show the mutations of this asset")
}

func (c *auditCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	res, err := computeTax(cfg, year, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing tax: %v\n", err)
		return subcommands.ExitFailure
	}

	entries := res.Audit
	if c.asset != "" {
		entries = slices.DeleteFunc(entries, func(a cryptotax.AuditEntry) bool { return a.Symbol != c.asset })
	}
	printMarkdown(renderer.AuditMarkdown(fmt.Sprintf("Audit Trail %d", year), entries))
	return subcommands.ExitSuccess
}
