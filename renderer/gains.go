package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/cryptotax"
)

// GainsMarkdown renders the tax events of a report with their gain and the
// total gain.
func GainsMarkdown(title string, events []cryptotax.TaxEvent) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", title)
	if len(events) == 0 {
		fmt.Fprint(&b, "No disposals.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Date | Asset | Quantity | Proceeds | Cost | Gain |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|")

	total := cryptotax.M(0, events[0].Proceeds.Currency())
	for _, e := range events {
		total = total.Add(e.Gain())
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			day(e.Time),
			e.Symbol,
			e.Quantity,
			e.Proceeds,
			e.Cost,
			gain(e.Gain()),
		)
	}
	fmt.Fprintf(&b, "| **%s** | | | | | **%s** |\n", "Total", gain(total))

	return b.String()
}
