package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/cryptotax"
	"github.com/etnz/cryptotax/date"
)

// HoldingsMarkdown renders the assets held on a day with their cost basis.
func HoldingsMarkdown(on date.Date, holdings []cryptotax.Holding) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Holdings on %s\n\n", on)
	if len(holdings) == 0 {
		fmt.Fprint(&b, "No assets held.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Asset | Balance | Cost Basis | Total Cost |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|")

	total := cryptotax.M(0, holdings[0].CostBasis.Currency())
	for _, h := range holdings {
		total = total.Add(h.TotalCost())
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			h.Symbol,
			h.Balance,
			h.CostBasis,
			h.TotalCost(),
		)
	}
	fmt.Fprintf(&b, "| **%s** | | | **%s** |\n", "Total", total)

	return b.String()
}
