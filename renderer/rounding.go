package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/cryptotax"
)

// RoundingsMarkdown renders the roundings that diverge from the reported
// quantities.
func RoundingsMarkdown(roundings []cryptotax.Rounding) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Roundings\n\n")
	if len(roundings) == 0 {
		fmt.Fprint(&b, "No material rounding.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Asset | Quantity | Rounded | Divergence |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|")
	for _, r := range roundings {
		fmt.Fprintf(&b, "| %s | %s | %s | %s%% |\n",
			r.Event.Symbol,
			r.Event.Quantity,
			r.Rounded,
			r.Divergence().Shift(2).StringFixed(1),
		)
	}
	return b.String()
}
