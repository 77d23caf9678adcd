// Package k4 builds the Swedish K4 form (capital gains from securities and
// other assets) from tax events and encodes it in the SRU transfer format
// accepted by Skatteverket.
//
// A K4 page has three sections used here:
//   - A: listed shares and funds, read from a stock events file.
//   - C: fiat currencies.
//   - D: other assets, crypto-assets included.
//
// Sections are filled in order, a new page starts when any section is full.
package k4

// Currency is the currency of all K4 amounts.
const Currency = "SEK"

// SectionName identifies a K4 section.
type SectionName string

const (
	SectionA SectionName = "A"
	SectionC SectionName = "C"
	SectionD SectionName = "D"
)

// layout describes where a section lives on the form.
type layout struct {
	lines     int    // max lines per page.
	base      int    // SRU code of the first field of the first line.
	sums      [4]int // SRU codes of the income, cost, profit and loss sums.
	profitBox string // box of the summed profit on the main form.
	lossBox   string // box of the summed loss on the main form.
}

var layouts = map[SectionName]layout{
	SectionA: {lines: 9, base: 3100, sums: [4]int{3300, 3301, 3304, 3305}, profitBox: "7.4", lossBox: "8.3"},
	SectionC: {lines: 7, base: 3310, sums: [4]int{3400, 3401, 3403, 3404}, profitBox: "7.2", lossBox: "8.1"},
	SectionD: {lines: 7, base: 3410, sums: [4]int{3500, 3501, 3503, 3504}, profitBox: "7.5", lossBox: "8.4"},
}

// sectionNames in form order.
var sectionNames = []SectionName{SectionA, SectionC, SectionD}
