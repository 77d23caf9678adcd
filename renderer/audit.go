package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/cryptotax"
)

// AuditMarkdown renders the audit trail, one row per ledger mutation.
func AuditMarkdown(title string, entries []cryptotax.AuditEntry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", title)
	if len(entries) == 0 {
		fmt.Fprint(&b, "No trades.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Date | Line | Asset | Kind | Quantity | Price | Balance | Cost Basis | Gain |")
	fmt.Fprintln(&b, "|:---|---:|:---|:---|---:|---:|---:|---:|---:|")

	for _, a := range entries {
		g := ""
		if v, ok := a.Gain(); ok {
			g = gain(v)
		}
		fmt.Fprintf(&b, "| %s | %d | %s | %s | %s | %s | %s | %s | %s |\n",
			day(a.Time),
			a.Line,
			a.Symbol,
			a.Kind,
			a.Quantity,
			a.Price,
			a.BalanceAfter,
			a.CostBasisAfter,
			g,
		)
	}
	return b.String()
}
