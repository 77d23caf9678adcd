package k4

import (
	"github.com/etnz/cryptotax"
)

// Line is one row of a section: amount, name, income, cost, profit and
// loss. Empty fields are not reported.
type Line [6]string

// Section is the content of a section on one page.
type Section struct {
	Name  SectionName
	Lines []Line
	Sums  [4]string // income, cost, profit and loss, empty when not positive.
}

// Page is one K4 form.
type Page struct {
	Year     int
	Number   int // starting at 1.
	Details  PersonalDetails
	Sections []Section // only sections with lines, in form order.
}

// Section returns the section by name, if on the page.
func (p Page) Section(name SectionName) (Section, bool) {
	for _, s := range p.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

// NewPages distributes stock events in section A, fiat events in section C
// and the others in section D, starting a page until all events are placed.
func NewPages(year int, details PersonalDetails, events, stocks []cryptotax.TaxEvent, isFiat func(string) bool) []Page {
	queues := map[SectionName][]cryptotax.TaxEvent{SectionA: stocks}
	for _, e := range events {
		if isFiat(e.Symbol) {
			queues[SectionC] = append(queues[SectionC], e)
		} else {
			queues[SectionD] = append(queues[SectionD], e)
		}
	}

	var pages []Page
	for number := 1; ; number++ {
		page := Page{Year: year, Number: number, Details: details}
		for _, name := range sectionNames {
			l := layouts[name]
			queue := queues[name]
			n := min(l.lines, len(queue))
			if n == 0 {
				continue
			}
			page.Sections = append(page.Sections, newSection(name, queue[:n]))
			queues[name] = queue[n:]
		}
		if len(page.Sections) == 0 {
			return pages
		}
		pages = append(pages, page)
	}
}

func newSection(name SectionName, events []cryptotax.TaxEvent) Section {
	s := Section{Name: name}
	var sums [4]cryptotax.Money
	for _, e := range events {
		values := [4]cryptotax.Money{e.Proceeds, e.Cost, e.Profit(), e.Loss()}
		for i, v := range values {
			sums[i] = sums[i].Add(v)
		}
		s.Lines = append(s.Lines, Line{
			e.Quantity.String(),
			e.Symbol,
			e.Proceeds.Decimal().String(),
			e.Cost.Decimal().String(),
			positive(e.Profit()),
			positive(e.Loss()),
		})
	}
	for i, v := range sums {
		s.Sums[i] = positive(v)
	}
	return s
}

// positive formats m if positive, it returns "" otherwise.
func positive(m cryptotax.Money) string {
	if !m.IsPositive() {
		return ""
	}
	return m.Decimal().String()
}
