package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/cryptotax/k4"
)

var fieldToCell = strings.NewReplacer("|", "\\|")

// PagesMarkdown renders a preview of the K4 pages.
func PagesMarkdown(pages []k4.Page) string {
	var b strings.Builder
	for _, p := range pages {
		fmt.Fprintf(&b, "# K4 %d, page %d\n\n", p.Year, p.Number)
		fmt.Fprintf(&b, "%s, %s\n\n", p.Details.Name, p.Details.PersonalNumber)
		for _, s := range p.Sections {
			fmt.Fprintf(&b, "## Section %s\n\n", s.Name)
			fmt.Fprintln(&b, "| Amount | Name | Income | Cost | Profit | Loss |")
			fmt.Fprintln(&b, "|---:|:---|---:|---:|---:|---:|")
			for _, l := range s.Lines {
				fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
					l[0], fieldToCell.Replace(l[1]), l[2], l[3], l[4], l[5])
			}
			if s.Sums != [4]string{} {
				fmt.Fprintf(&b, "| **Sum** | | %s | %s | %s | %s |\n", s.Sums[0], s.Sums[1], s.Sums[2], s.Sums[3])
			}
			fmt.Fprintln(&b)
		}
	}
	return b.String()
}

// TotalsMarkdown renders the section totals to report on the income tax
// form.
func TotalsMarkdown(totals k4.Totals) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Totals\n\n")
	fmt.Fprintln(&b, "| Section | Summed Profit | Box | Summed Loss | Box |")
	fmt.Fprintln(&b, "|:---|---:|:---:|---:|:---:|")
	for _, t := range totals {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", t.Section, t.Profit, t.ProfitBox, t.Loss, t.LossBox)
	}
	return b.String()
}
